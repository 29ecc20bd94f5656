package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"foodapp/internal/database"
	"foodapp/internal/images"
	"foodapp/internal/models"
)

func AddMenu(store *database.Store, uploader images.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/v1/menu"
		defer handlePanic(c, route)

		userID, ok := requireUser(c, route)
		if !ok {
			return
		}

		input, err := parseMenuForm(c)
		if err != nil {
			respondAppError(c, route, err)
			return
		}
		if !input.NameSet || !input.PriceSet {
			respondWithError(c, http.StatusBadRequest, route, "name and price are required")
			return
		}
		if input.Image == nil {
			respondWithError(c, http.StatusBadRequest, route, "Image is required")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		restaurant, err := store.Restaurants.FindByOwner(ctx, userID)
		if errors.Is(err, database.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "Restaurant not found")
			return
		}
		if err != nil {
			log.Println("[MENU] [ERROR] owner lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		imageURL, err := images.UploadFile(c.Request.Context(), uploader, input.Image)
		if err != nil {
			respondAppError(c, route, err)
			return
		}

		now := time.Now()
		menu := &models.Menu{
			Restaurant:  restaurant.ID,
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			Image:       imageURL,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := store.Menus.Create(ctx, menu); err != nil {
			images.Discard(uploader, imageURL)
			log.Println("[MENU] [ERROR] insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		log.Printf("[MENU] [INFO] menu %s added to restaurant %s", menu.ID.Hex(), restaurant.ID.Hex())
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Menu added successfully",
			"menu":    menu,
		})
	}
}

func EditMenu(store *database.Store, uploader images.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/v1/menu/:id"
		defer handlePanic(c, route)

		userID, ok := requireUser(c, route)
		if !ok {
			return
		}

		menuID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "Menu not found")
			return
		}

		input, err := parseMenuForm(c)
		if err != nil {
			respondAppError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		menu, err := store.Menus.FindByID(ctx, menuID)
		if errors.Is(err, database.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "Menu not found")
			return
		}
		if err != nil {
			log.Println("[MENU] [ERROR] lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		restaurant, err := store.Restaurants.FindByOwner(ctx, userID)
		if err != nil && !errors.Is(err, database.ErrNotFound) {
			log.Println("[MENU] [ERROR] owner lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}
		if restaurant == nil || restaurant.ID != menu.Restaurant {
			respondWithError(c, http.StatusForbidden, route, "You are not allowed to edit this menu")
			return
		}

		previousImage := menu.Image
		if input.Image != nil {
			imageURL, err := images.UploadFile(c.Request.Context(), uploader, input.Image)
			if err != nil {
				respondAppError(c, route, err)
				return
			}
			menu.Image = imageURL
		}
		if input.NameSet {
			menu.Name = input.Name
		}
		if input.DescriptionSet {
			menu.Description = input.Description
		}
		if input.PriceSet {
			menu.Price = input.Price
		}
		menu.UpdatedAt = time.Now()

		if err := store.Menus.Update(ctx, menu); err != nil {
			log.Println("[MENU] [ERROR] update failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}
		if menu.Image != previousImage {
			images.Discard(uploader, previousImage)
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Menu updated",
			"menu":    menu,
		})
	}
}
