package infra

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_RequiresMongoURI(t *testing.T) {
	t.Setenv("MONGODB_URI", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGODB_URI")
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "bloodaid", cfg.MongoDB)
	assert.Equal(t, "https://securetoken.google.com", cfg.IdentityIssuerBase)
	assert.Equal(t, "https://api.stripe.com/v1", cfg.StripeBaseURL)
	assert.Equal(t, "usd", cfg.PaymentCurrency)
	assert.Equal(t, 15*time.Second, cfg.HTTPReadTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.FirebaseProjectID)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("MONGODB_DB", "blood")
	t.Setenv("PORT", "9000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "10")
	t.Setenv("HTTP_READ_TIMEOUT_SECONDS", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "blood", cfg.MongoDB)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 10, cfg.RateLimitPerMin)
	assert.Equal(t, 5*time.Second, cfg.HTTPReadTimeout)
}
