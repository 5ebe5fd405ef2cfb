package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	Port               string
	MongoURI           string
	MongoDB            string
	FirebaseProjectID  string
	IdentityIssuerBase string
	StripeSecretKey    string
	StripeBaseURL      string
	PaymentCurrency    string
	GeoIPDBPath        string
	CORSOrigins        []string
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	RateLimitPerMin    int
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. A missing MONGODB_URI is the only fatal
// condition; the identity provider and payment processor may be left
// unconfigured, in which case the routes that need them fail per request.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		MongoURI:           os.Getenv("MONGODB_URI"),
		MongoDB:            getEnv("MONGODB_DB", "bloodaid"),
		FirebaseProjectID:  os.Getenv("FIREBASE_PROJECT_ID"),
		IdentityIssuerBase: getEnv("IDENTITY_ISSUER_BASE", "https://securetoken.google.com"),
		StripeSecretKey:    os.Getenv("STRIPE_SECRET_KEY"),
		StripeBaseURL:      getEnv("STRIPE_BASE_URL", "https://api.stripe.com/v1"),
		PaymentCurrency:    getEnv("PAYMENT_CURRENCY", "usd"),
		GeoIPDBPath:        os.Getenv("GEOIP_DB_PATH"),
		CORSOrigins:        splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitCSV(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
