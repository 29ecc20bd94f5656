package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetDurationEnvFallsBackOnInvalidValue(t *testing.T) {
	t.Setenv("TOKEN_TTL_HOURS", "abc")
	assert.Equal(t, 24*time.Hour, getDurationEnv("TOKEN_TTL_HOURS", 24, time.Hour))

	t.Setenv("TOKEN_TTL_HOURS", "-3")
	assert.Equal(t, 24*time.Hour, getDurationEnv("TOKEN_TTL_HOURS", 24, time.Hour))

	t.Setenv("TOKEN_TTL_HOURS", "2")
	assert.Equal(t, 2*time.Hour, getDurationEnv("TOKEN_TTL_HOURS", 24, time.Hour))
}

func TestGetListEnvTrimsAndDropsEmpty(t *testing.T) {
	t.Setenv("ALLOWED_COUNTRIES", " IN, ,US ,")
	assert.Equal(t, []string{"IN", "US"}, getListEnv("ALLOWED_COUNTRIES", []string{"GB"}))

	t.Setenv("ALLOWED_COUNTRIES", " , ")
	assert.Equal(t, []string{"GB"}, getListEnv("ALLOWED_COUNTRIES", []string{"GB"}))
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("FRONTEND_URL", "https://food.example.com/")
	t.Setenv("CURRENCY", "USD")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("STRIPE_SECRET_KEY", "")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "")
	t.Setenv("CLOUD_NAME", "")

	Load()

	assert.Equal(t, "mongodb://localhost:27017", AppEnv.MongoURI)
	assert.Equal(t, "https://food.example.com", AppEnv.FrontendURL)
	assert.Equal(t, "usd", AppEnv.Stripe.Currency)
	assert.True(t, AppEnv.CookieSecure)
	assert.False(t, AppEnv.Images.CloudinaryEnabled())
	assert.ElementsMatch(t, []string{"STRIPE_SECRET_KEY", "STRIPE_WEBHOOK_SECRET"}, AppEnv.Validate())
}
