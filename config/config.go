package config

import (
	"os"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Ledger   LedgerConfig
	Webhook  WebhookConfig
	Stripe   StripeConfig
	Admin    AdminConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret string
	AccessExpiry time.Duration
	Issuer       string
}

// LedgerConfig holds the platform commission policy. AffiliateRatePercent is
// the fixed rate every affiliate earns; representatives carry their own rate.
type LedgerConfig struct {
	AffiliateRatePercent decimal.Decimal
	Currency             string
}

// WebhookConfig secures the sale-event callback. The provider signs the raw
// body with HMAC-SHA256 using this shared secret.
type WebhookConfig struct {
	Secret string
}

type StripeConfig struct {
	BaseURL   string
	SecretKey string
}

type AdminConfig struct {
	Email    string
	Password string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getenv("PORT", "8088"),
			Env:          getenv("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             getenv("DATABASE_DSN", "tally:tally@tcp(localhost:3306)/tally?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret: getenv("JWT_ACCESS_SECRET", "change-me-in-production"),
			AccessExpiry: 12 * time.Hour,
			Issuer:       "tally",
		},
		Ledger: LedgerConfig{
			AffiliateRatePercent: decimalEnv("AFFILIATE_RATE_PERCENT", "40"),
			Currency:             getenv("SETTLEMENT_CURRENCY", "USD"),
		},
		Webhook: WebhookConfig{
			Secret: os.Getenv("SALE_WEBHOOK_SECRET"),
		},
		Stripe: StripeConfig{
			BaseURL:   getenv("STRIPE_BASE_URL", "https://api.stripe.com"),
			SecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		},
		Admin: AdminConfig{
			Email:    getenv("ADMIN_EMAIL", "admin@tally.local"),
			Password: getenv("ADMIN_PASSWORD", "admin"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func decimalEnv(key, fallback string) decimal.Decimal {
	v := getenv(key, fallback)
	d, err := decimal.NewFromString(v)
	if err != nil {
		d, _ = decimal.NewFromString(fallback)
	}
	return d
}
