package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/montasssar/EcommerceSnazzyWear/awsx"
)

// Config holds all environment variables for the storefront service.
type Config struct {
	Port string
	Env  string // "development" or "production"

	CORSAllowedOrigins []string // browser origins allowed to call this API

	JWTSecret  string
	AdminEmail string // account registered with this email gets the admin role

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	PostgresTimeZone string

	RedisURL    string
	CartBackend string // "redis" or "memory"

	ProductsTable string // DynamoDB table for the catalog

	S3Bucket    string
	S3KeyPrefix string
	S3Endpoint  string // non-empty when targeting localstack/minio

	StripeSecretKey    string
	StripeWebhookKey   string
	CheckoutSuccessURL string
	CheckoutCancelURL  string
	Currency           string

	CheckoutSNSTopicARN string
}

// LoadConfig loads environment variables into Config and validates them.
// A .env file is honored when present. If AWS_USE_SECRETS=true, sensitive
// values are read from Secrets Manager with env vars as fallback.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("APP_ENV", "development"),

		CORSAllowedOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"), ","),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		AdminEmail: os.Getenv("ADMIN_EMAIL"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone: getEnv("POSTGRES_TIMEZONE", "UTC"),

		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),
		CartBackend: getEnv("CART_BACKEND", "redis"),

		ProductsTable: getEnv("DYNAMODB_PRODUCTS_TABLE", "products"),

		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3KeyPrefix: getEnv("S3_KEY_PREFIX", "products/"),
		S3Endpoint:  os.Getenv("AWS_ENDPOINT"),

		StripeSecretKey:    os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookKey:   os.Getenv("STRIPE_WEBHOOK_SECRET"),
		CheckoutSuccessURL: getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:3000/success"),
		CheckoutCancelURL:  getEnv("CHECKOUT_CANCEL_URL", "http://localhost:3000/cancel"),
		Currency:           getEnv("CHECKOUT_CURRENCY", "usd"),

		CheckoutSNSTopicARN: os.Getenv("CHECKOUT_SNS_TOPIC_ARN"),
	}

	if os.Getenv("AWS_USE_SECRETS") == "true" {
		if awsCfg, err := awsx.LoadAWSConfig(context.Background()); err == nil {
			sm := awsx.NewSecretsClient(awsCfg, "storefront")

			if v, err := sm.GetSecret(context.Background(), "JWT_SECRET"); err == nil && v != "" {
				cfg.JWTSecret = v
			}
			if v, err := sm.GetSecret(context.Background(), "STRIPE_SECRET_KEY"); err == nil && v != "" {
				cfg.StripeSecretKey = v
			}
			if v, err := sm.GetSecret(context.Background(), "STRIPE_WEBHOOK_SECRET"); err == nil && v != "" {
				cfg.StripeWebhookKey = v
			}
			if v, err := sm.GetSecret(context.Background(), "POSTGRES_PASSWORD"); err == nil && v != "" {
				cfg.PostgresPassword = v
			}
		}
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	if cfg.PostgresUser == "" || cfg.PostgresPassword == "" || cfg.PostgresDB == "" || cfg.PostgresHost == "" {
		return nil, fmt.Errorf("missing required Postgres environment variables")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
