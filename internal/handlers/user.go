package handlers

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"foodapp/internal/database"
	"foodapp/internal/images"
)

type UpdateProfileRequest struct {
	Fullname string `json:"fullname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Contact  string `json:"contact"`
	// ProfilePicture is either a base64 data URI to upload or an existing URL.
	ProfilePicture string `json:"profilePicture"`
}

func CheckAuth(users database.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/v1/user/check-auth"
		defer handlePanic(c, route)

		userID, ok := requireUser(c, route)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		user, err := users.FindByID(ctx, userID)
		if errors.Is(err, database.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "User not found")
			return
		}
		if err != nil {
			log.Println("[AUTH] [ERROR] check-auth lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
	}
}

func UpdateProfile(users database.UserRepository, uploader images.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/v1/user/profile/update"
		defer handlePanic(c, route)

		userID, ok := requireUser(c, route)
		if !ok {
			return
		}

		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		user, err := users.FindByID(ctx, userID)
		if errors.Is(err, database.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "User not found")
			return
		}
		if err != nil {
			log.Println("[USER] [ERROR] profile lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		picture := strings.TrimSpace(req.ProfilePicture)
		previous := user.ProfilePicture
		if strings.HasPrefix(picture, "data:") {
			data, filename, err := images.DecodeDataURI(picture)
			if err != nil {
				respondAppError(c, route, err)
				return
			}
			url, err := uploader.Upload(c.Request.Context(), bytes.NewReader(data), filename)
			if err != nil {
				respondAppError(c, route, err)
				return
			}
			user.ProfilePicture = url
		} else if picture != "" {
			user.ProfilePicture = picture
		}

		user.Fullname = strings.TrimSpace(req.Fullname)
		user.Email = strings.ToLower(strings.TrimSpace(req.Email))
		user.Address = strings.TrimSpace(req.Address)
		user.City = strings.TrimSpace(req.City)
		user.Country = strings.TrimSpace(req.Country)
		user.Contact = strings.TrimSpace(req.Contact)
		user.UpdatedAt = time.Now()

		if err := users.Update(ctx, user); err != nil {
			if errors.Is(err, database.ErrDuplicate) {
				respondWithError(c, http.StatusBadRequest, route, "Email already in use")
				return
			}
			log.Println("[USER] [ERROR] profile update failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}
		if user.ProfilePicture != previous {
			images.Discard(uploader, previous)
		}

		log.Println("[USER] [INFO] profile updated:", user.ID.Hex())
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"user":    user,
			"message": "Profile updated successfully",
		})
	}
}
