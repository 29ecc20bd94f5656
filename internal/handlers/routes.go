package handlers

import (
	"github.com/gin-gonic/gin"

	"foodapp/internal/database"
	"foodapp/internal/images"
	"foodapp/internal/middleware"
	"foodapp/internal/notifier"
	"foodapp/internal/orders"
)

type Dependencies struct {
	Store    *database.Store
	Orders   *orders.Service
	Uploader images.Uploader
	Mailer   notifier.Mailer
	Auth     AuthConfig
}

// RegisterRoutes mounts the API under /api/v1 plus the health check.
func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	store := deps.Store
	auth := middleware.UserAuth(deps.Auth.Secret)

	r.GET("/health", Health(store.Ping))

	user := r.Group("/api/v1/user")
	{
		user.POST("/signup", Signup(store.Users, deps.Mailer, deps.Auth))
		user.POST("/login", Login(store.Users, deps.Auth))
		user.POST("/logout", Logout(deps.Auth))
		user.POST("/verify-email", VerifyEmail(store.Users, deps.Mailer))
		user.POST("/forgot-password", ForgotPassword(store.Users, deps.Mailer, deps.Auth))
		user.POST("/reset-password/:token", ResetPassword(store.Users, deps.Mailer))
		user.GET("/check-auth", auth, CheckAuth(store.Users))
		user.PUT("/profile/update", auth, UpdateProfile(store.Users, deps.Uploader))
	}

	restaurant := r.Group("/api/v1/restaurant")
	{
		restaurant.POST("/create", auth, CreateRestaurant(store, deps.Uploader))
		restaurant.GET("/", auth, GetRestaurant(store))
		restaurant.PUT("/update", auth, UpdateRestaurant(store, deps.Uploader))
		restaurant.GET("/orders", auth, GetRestaurantOrders(deps.Orders))
		restaurant.PUT("/orders/:orderId", auth, UpdateOrderStatus(deps.Orders))

		// Browsing is open to anonymous customers.
		restaurant.GET("/search/:searchText", SearchRestaurant(store.Restaurants))
		restaurant.GET("/:id", GetSingleRestaurant(store))
	}

	menu := r.Group("/api/v1/menu")
	menu.Use(auth)
	{
		menu.POST("/", AddMenu(store, deps.Uploader))
		menu.PUT("/:id", EditMenu(store, deps.Uploader))
	}

	order := r.Group("/api/v1/order")
	{
		order.POST("/webhook", StripeWebhook(deps.Orders))
		order.GET("/", auth, GetOrders(deps.Orders))
		order.POST("/checkout/create-checkout-session", auth, CreateCheckoutSession(deps.Orders))
	}
}
