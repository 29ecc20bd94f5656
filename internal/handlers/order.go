package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodapp/internal/models"
	"foodapp/internal/orders"
)

// maxWebhookBytes bounds the webhook body read before signature checks.
const maxWebhookBytes = 65536

type checkoutItemRequest struct {
	MenuID   string `json:"menuId"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
}

type deliveryDetailsRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
}

type checkoutRequest struct {
	CartItems       []checkoutItemRequest  `json:"cartItems"`
	DeliveryDetails deliveryDetailsRequest `json:"deliveryDetails"`
	RestaurantID    string                 `json:"restaurantId" binding:"required"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func CreateCheckoutSession(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/v1/order/checkout/create-checkout-session"
		defer handlePanic(c, route)

		userID, ok := requireUser(c, route)
		if !ok {
			return
		}

		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		input := orders.CheckoutInput{
			RestaurantID: req.RestaurantID,
			DeliveryDetails: models.DeliveryDetails{
				Name:    req.DeliveryDetails.Name,
				Email:   req.DeliveryDetails.Email,
				Address: req.DeliveryDetails.Address,
				City:    req.DeliveryDetails.City,
			},
			CartItems: make([]orders.CheckoutItem, 0, len(req.CartItems)),
		}
		for _, item := range req.CartItems {
			input.CartItems = append(input.CartItems, orders.CheckoutItem{
				MenuID:   item.MenuID,
				Name:     item.Name,
				Image:    item.Image,
				Price:    item.Price,
				Quantity: item.Quantity,
			})
		}

		result, err := svc.CreateCheckoutSession(c.Request.Context(), userID, input)
		if err != nil {
			respondAppError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"session": gin.H{
				"id":  result.Session.ID,
				"url": result.Session.URL,
			},
			"totalAmount": result.TotalAmount,
		})
	}
}

// StripeWebhook reads the raw body so the signature is checked over the
// exact bytes the provider signed.
func StripeWebhook(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/v1/order/webhook"
		defer handlePanic(c, route)

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBytes)
		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			log.Println("[WEBHOOK] [ERROR] read body failed:", err)
			respondWithError(c, http.StatusBadRequest, route, "could not read webhook payload")
			return
		}

		result, err := svc.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
		if err != nil {
			log.Println("[WEBHOOK] [ERROR] event rejected:", err)
			respondAppError(c, route, err)
			return
		}

		if result.Order != nil && !result.Duplicate {
			log.Printf("[WEBHOOK] [INFO] %s handled, order %s", result.EventType, result.Order.ID.Hex())
		}
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}

func GetOrders(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/v1/order"
		defer handlePanic(c, route)

		userID, ok := requireUser(c, route)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		list, err := svc.ListUserOrders(ctx, userID)
		if err != nil {
			respondAppError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": list})
	}
}

func GetRestaurantOrders(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/v1/restaurant/orders"
		defer handlePanic(c, route)

		userID, ok := requireUser(c, route)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		list, err := svc.ListRestaurantOrders(ctx, userID)
		if err != nil {
			respondAppError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": list})
	}
}

func UpdateOrderStatus(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/v1/restaurant/orders/:orderId"
		defer handlePanic(c, route)

		userID, ok := requireUser(c, route)
		if !ok {
			return
		}

		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		status, err := svc.UpdateStatus(ctx, userID, c.Param("orderId"), req.Status)
		if err != nil {
			respondAppError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"status":  status,
			"message": "Status updated",
		})
	}
}
