package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"foodapp/internal/apperr"
)

const dbTimeout = 5 * time.Second

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
	}
}

// requestContext bounds store calls made while serving c.
func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), dbTimeout)
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

// respondAppError maps a classified error to its status code. Unclassified
// errors are logged in full and answered with a generic 500.
func respondAppError(c *gin.Context, route string, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.Internal {
		log.Printf("[%s] internal error: %v", route, err)
	}
	respondWithError(c, kind.HTTPStatus(), route, apperr.PublicMessage(err))
}

func respondValidationError(c *gin.Context, route string, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := lowerCamel(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			case "email":
				details = append(details, fmt.Sprintf("%s must be a valid email", field))
			case "min", "max":
				details = append(details, fmt.Sprintf("%s is out of range", field))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		log.Printf("[%s] returning error %d: validation failed %v", route, http.StatusBadRequest, details)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": strings.Join(details, ", "),
			"details": details,
		})
		return
	}

	respondWithError(c, http.StatusBadRequest, route, "invalid request body")
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// currentUserID returns the id UserAuth stored on the context.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, ok := c.Get("userId")
	if !ok {
		return primitive.NilObjectID, false
	}
	id, ok := value.(primitive.ObjectID)
	return id, ok && !id.IsZero()
}

func requireUser(c *gin.Context, route string) (primitive.ObjectID, bool) {
	id, ok := currentUserID(c)
	if !ok {
		respondWithError(c, http.StatusUnauthorized, route, "User not authenticated")
	}
	return id, ok
}
