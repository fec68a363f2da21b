package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port                string
	Env                 string
	MongoURL            string
	MongoDB             string
	RedisURL            string
	JWTSecret           string
	StripeSecretKey     string
	StripeWebhookKey    string
	Currency            string
	StoreURL            string // storefront base URL for checkout redirects
	ShippingRates       []string
	AllowedShipCountry  []string
	WebhookEventTTLDays int
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("APP_ENV", "development"),
		MongoURL:         getEnv("MONGODB_URL", "mongodb://localhost:27017"),
		MongoDB:          getEnv("MONGODB_DB", "bookrental"),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		StripeSecretKey:  os.Getenv("STRIPE_API_KEY"),
		StripeWebhookKey: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		Currency:         getEnv("CHECKOUT_CURRENCY", "usd"),
		StoreURL:         getEnv("ECOMMERCE_STORE_URL", "http://localhost:3000"),
	}

	if rate := os.Getenv("STRIPE_SHIPPING_RATE"); rate != "" {
		cfg.ShippingRates = []string{rate}
	}
	cfg.AllowedShipCountry = []string{"VN", "US"}
	cfg.WebhookEventTTLDays = 30

	if cfg.JWTSecret == "" || cfg.StripeSecretKey == "" || cfg.StripeWebhookKey == "" {
		return nil, fmt.Errorf("missing required environment variables")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
