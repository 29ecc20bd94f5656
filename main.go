package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"foodapp/internal/config"
	"foodapp/internal/database"
	"foodapp/internal/handlers"
	"foodapp/internal/images"
	"foodapp/internal/notifier"
	"foodapp/internal/orders"
	"foodapp/internal/payment"
)

func main() {
	config.Load()
	if missing := config.AppEnv.Validate(); len(missing) > 0 {
		log.Fatalf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("⚠️ user index warning: %v", err)
	}
	if err := database.EnsureRestaurantIndexes(db); err != nil {
		log.Printf("⚠️ restaurant index warning: %v", err)
	}
	if err := database.EnsureMenuIndexes(db); err != nil {
		log.Printf("⚠️ menu index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("⚠️ order index warning: %v", err)
	}

	store := database.NewStore(db)

	var uploader images.Uploader = images.NewLocal(config.AppEnv.Images.UploadDir, "/public/uploads")
	if config.AppEnv.Images.CloudinaryEnabled() {
		cld, err := images.NewCloudinary(
			config.AppEnv.Images.CloudName,
			config.AppEnv.Images.APIKey,
			config.AppEnv.Images.APISecret,
			config.AppEnv.Images.Folder,
		)
		if err != nil {
			log.Fatal(err)
		}
		uploader = cld
	} else {
		log.Println("⚠️ Cloudinary not configured, storing uploads in", config.AppEnv.Images.UploadDir)
	}

	var mailer notifier.Mailer = notifier.LogMailer{}
	if config.AppEnv.Email.SESEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		ses, err := notifier.NewSES(ctx, config.AppEnv.Email)
		cancel()
		if err != nil {
			log.Fatal(err)
		}
		mailer = ses
	} else {
		log.Println("⚠️ SES not configured, account emails are only logged")
	}

	provider := payment.NewStripe(config.AppEnv.Stripe.SecretKey, config.AppEnv.Stripe.WebhookSecret)
	orderService := orders.NewService(store, provider, orders.Config{
		Currency:         config.AppEnv.Stripe.Currency,
		FrontendURL:      config.AppEnv.FrontendURL,
		AllowedCountries: config.AppEnv.Stripe.AllowedCountries,
	})

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppEnv.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Static("/public/uploads", config.AppEnv.Images.UploadDir)

	handlers.RegisterRoutes(r, handlers.Dependencies{
		Store:    store,
		Orders:   orderService,
		Uploader: uploader,
		Mailer:   mailer,
		Auth: handlers.AuthConfig{
			Secret:          config.AppEnv.JWTSecret,
			TokenTTL:        config.AppEnv.TokenTTL,
			CookieSecure:    config.AppEnv.CookieSecure,
			VerificationTTL: config.AppEnv.VerificationTTL,
			ResetTTL:        config.AppEnv.ResetTTL,
			FrontendURL:     config.AppEnv.FrontendURL,
		},
	})

	if err := r.Run(":" + config.AppEnv.Port); err != nil {
		log.Fatal(err)
	}
}
