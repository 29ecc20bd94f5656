package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	Port         string
	MongoURI     string
	DBName       string
	JWTSecret    string
	TokenTTL     time.Duration
	CookieSecure bool
	FrontendURL  string
	CORSOrigins  []string

	Stripe StripeConfig
	Images ImageConfig
	Email  EmailConfig

	VerificationTTL time.Duration
	ResetTTL        time.Duration
}

type StripeConfig struct {
	SecretKey        string
	WebhookSecret    string
	Currency         string
	AllowedCountries []string
}

// ImageConfig selects Cloudinary when all three credentials are set and falls
// back to the local upload directory otherwise.
type ImageConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
	UploadDir string
}

func (c ImageConfig) CloudinaryEnabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

type EmailConfig struct {
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	SenderEmail        string
}

func (c EmailConfig) SESEnabled() bool {
	return c.SenderEmail != "" && c.AWSAccessKeyID != "" && c.AWSSecretAccessKey != ""
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		Port:         getEnvOrDefault("PORT", "8000"),
		MongoURI:     getEnvOrDefault("MONGO_URI", ""),
		DBName:       getEnvOrDefault("DB_NAME", "foodapp"),
		JWTSecret:    getEnvOrDefault("SECRET_KEY", ""),
		TokenTTL:     getDurationEnv("TOKEN_TTL_HOURS", 24, time.Hour),
		CookieSecure: getBoolEnv("COOKIE_SECURE", false),
		FrontendURL:  strings.TrimRight(getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"), "/"),
		CORSOrigins:  getListEnv("CORS_ORIGINS", []string{"http://localhost:5173"}),
		Stripe: StripeConfig{
			SecretKey:        getEnvOrDefault("STRIPE_SECRET_KEY", ""),
			WebhookSecret:    getEnvOrDefault("STRIPE_WEBHOOK_SECRET", ""),
			Currency:         strings.ToLower(getEnvOrDefault("CURRENCY", "inr")),
			AllowedCountries: getListEnv("ALLOWED_COUNTRIES", []string{"IN", "US", "GB", "CA"}),
		},
		Images: ImageConfig{
			CloudName: getEnvOrDefault("CLOUD_NAME", ""),
			APIKey:    getEnvOrDefault("API_KEY", ""),
			APISecret: getEnvOrDefault("API_SECRET", ""),
			Folder:    getEnvOrDefault("CLOUDINARY_FOLDER", "restaurant_images"),
			UploadDir: getEnvOrDefault("UPLOAD_DIR", "./public/uploads"),
		},
		Email: EmailConfig{
			AWSRegion:          getEnvOrDefault("AWS_REGION", "us-east-1"),
			AWSAccessKeyID:     getEnvOrDefault("AWS_ACCESS_KEY_ID", ""),
			AWSSecretAccessKey: getEnvOrDefault("AWS_SECRET_ACCESS_KEY", ""),
			SenderEmail:        getEnvOrDefault("AWS_SENDER_ADDRESS", ""),
		},
		VerificationTTL: getDurationEnv("VERIFICATION_TTL_HOURS", 24, time.Hour),
		ResetTTL:        getDurationEnv("RESET_TTL_MINUTES", 60, time.Minute),
	}
}

// Validate reports the settings the server cannot start without.
func (c Config) Validate() []string {
	var missing []string
	if c.MongoURI == "" {
		missing = append(missing, "MONGO_URI")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "SECRET_KEY")
	}
	if c.Stripe.SecretKey == "" {
		missing = append(missing, "STRIPE_SECRET_KEY")
	}
	if c.Stripe.WebhookSecret == "" {
		missing = append(missing, "STRIPE_WEBHOOK_SECRET")
	}
	return missing
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	out := make([]string, 0)
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
