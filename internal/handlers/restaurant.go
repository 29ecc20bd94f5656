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

func CreateRestaurant(store *database.Store, uploader images.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/v1/restaurant/create"
		defer handlePanic(c, route)

		userID, ok := requireUser(c, route)
		if !ok {
			return
		}

		input, err := parseRestaurantForm(c)
		if err != nil {
			respondAppError(c, route, err)
			return
		}
		if input.Image == nil {
			respondWithError(c, http.StatusBadRequest, route, "Image is required")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if _, err := store.Restaurants.FindByOwner(ctx, userID); err == nil {
			respondWithError(c, http.StatusBadRequest, route, "Restaurant already exist for this user")
			return
		} else if !errors.Is(err, database.ErrNotFound) {
			log.Println("[RESTAURANT] [ERROR] owner lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		imageURL, err := images.UploadFile(c.Request.Context(), uploader, input.Image)
		if err != nil {
			respondAppError(c, route, err)
			return
		}

		now := time.Now()
		restaurant := &models.Restaurant{
			User:           userID,
			RestaurantName: input.RestaurantName,
			City:           input.City,
			Country:        input.Country,
			DeliveryTime:   input.DeliveryTime,
			Cuisines:       input.Cuisines,
			ImageURL:       imageURL,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := store.Restaurants.Create(ctx, restaurant); err != nil {
			images.Discard(uploader, imageURL)
			if errors.Is(err, database.ErrDuplicate) {
				respondWithError(c, http.StatusBadRequest, route, "Restaurant already exist for this user")
				return
			}
			log.Println("[RESTAURANT] [ERROR] insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		log.Printf("[RESTAURANT] [INFO] restaurant %s created by %s", restaurant.ID.Hex(), userID.Hex())
		c.JSON(http.StatusCreated, gin.H{
			"success":    true,
			"message":    "Restaurant Added",
			"restaurant": restaurant,
		})
	}
}

// GetRestaurant returns the caller's own restaurant with its menus.
func GetRestaurant(store *database.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/v1/restaurant"
		defer handlePanic(c, route)

		userID, ok := requireUser(c, route)
		if !ok {
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
			log.Println("[RESTAURANT] [ERROR] owner lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		view, err := withMenus(c, store, restaurant)
		if err != nil {
			log.Println("[RESTAURANT] [ERROR] menu lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "restaurant": view})
	}
}

func UpdateRestaurant(store *database.Store, uploader images.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/v1/restaurant/update"
		defer handlePanic(c, route)

		userID, ok := requireUser(c, route)
		if !ok {
			return
		}

		input, err := parseRestaurantForm(c)
		if err != nil {
			respondAppError(c, route, err)
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
			log.Println("[RESTAURANT] [ERROR] owner lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		previousImage := restaurant.ImageURL
		if input.Image != nil {
			imageURL, err := images.UploadFile(c.Request.Context(), uploader, input.Image)
			if err != nil {
				respondAppError(c, route, err)
				return
			}
			restaurant.ImageURL = imageURL
		}

		restaurant.RestaurantName = input.RestaurantName
		restaurant.City = input.City
		restaurant.Country = input.Country
		restaurant.DeliveryTime = input.DeliveryTime
		restaurant.Cuisines = input.Cuisines
		restaurant.UpdatedAt = time.Now()

		if err := store.Restaurants.Update(ctx, restaurant); err != nil {
			log.Println("[RESTAURANT] [ERROR] update failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}
		if restaurant.ImageURL != previousImage {
			images.Discard(uploader, previousImage)
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"message":    "Restaurant updated",
			"restaurant": restaurant,
		})
	}
}

func SearchRestaurant(restaurants database.RestaurantRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/v1/restaurant/search/:searchText"
		defer handlePanic(c, route)

		skip, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondAppError(c, route, err)
			return
		}

		var cuisines []string
		if raw := c.Query("selectedCuisines"); raw != "" {
			cuisines = strings.Split(raw, ",")
		}
		search := models.RestaurantSearch{
			Text:     c.Param("searchText"),
			Query:    c.Query("searchQuery"),
			Cuisines: cuisines,
			Skip:     skip,
			Limit:    limit,
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		found, err := restaurants.Search(ctx, search)
		if err != nil {
			log.Println("[RESTAURANT] [ERROR] search failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    found,
			"page":    skip/limit + 1,
			"limit":   limit,
		})
	}
}

func GetSingleRestaurant(store *database.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/v1/restaurant/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "Restaurant not found")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		restaurant, err := store.Restaurants.FindByID(ctx, id)
		if errors.Is(err, database.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "Restaurant not found")
			return
		}
		if err != nil {
			log.Println("[RESTAURANT] [ERROR] lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		view, err := withMenus(c, store, restaurant)
		if err != nil {
			log.Println("[RESTAURANT] [ERROR] menu lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "restaurant": view})
	}
}

func withMenus(c *gin.Context, store *database.Store, restaurant *models.Restaurant) (models.RestaurantWithMenus, error) {
	ctx, cancel := requestContext(c)
	defer cancel()

	menus, err := store.Menus.ListByRestaurant(ctx, restaurant.ID)
	if err != nil {
		return models.RestaurantWithMenus{}, err
	}
	return models.RestaurantWithMenus{Restaurant: *restaurant, Menus: menus}, nil
}
