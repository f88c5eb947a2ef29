package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string
	Currency  string

	DB          DatabaseConfig
	Redis       RedisConfig
	Mongo       MongoConfig
	Stripe      StripeConfig
	MercadoPago MercadoPagoConfig
	S3          S3Config
	Checkout    CheckoutConfig
	Worker      WorkerConfig
}

// CheckoutConfig contains the redirect targets handed to the payment
// gateways for hosted checkout.
type CheckoutConfig struct {
	SuccessURL string
	FailureURL string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// MongoConfig contains connection parameters for the shop directory store.
type MongoConfig struct {
	URI      string
	Database string
}

// StripeConfig contains credentials for the Stripe gateway.
type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

// MercadoPagoConfig contains credentials for the Mercado Pago gateway.
type MercadoPagoConfig struct {
	AccessToken   string
	WebhookSecret string
}

// S3Config contains object storage configuration for product images.
type S3Config struct {
	Region          string
	Bucket          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	StatusCheckInterval   time.Duration
	StatusCheckStaleAfter time.Duration
	PaymentMaxAge         time.Duration
	CheckoutSessionTTL    time.Duration
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	cfg.Currency = getEnv("DEFAULT_CURRENCY", "EUR")

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Mongo (shop directory)
	cfg.Mongo = MongoConfig{
		URI:      getEnv("MONGO_URI", "mongodb://mongo:27017"),
		Database: getEnv("MONGO_DATABASE", "rifa_directory"),
	}

	// Payment gateways
	cfg.Stripe = StripeConfig{
		SecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
	}
	cfg.MercadoPago = MercadoPagoConfig{
		AccessToken:   getEnv("MERCADOPAGO_ACCESS_TOKEN", ""),
		WebhookSecret: getEnv("MERCADOPAGO_WEBHOOK_SECRET", ""),
	}

	// S3 (product images)
	cfg.S3 = S3Config{
		Region:          getEnv("S3_REGION", "eu-west-1"),
		Bucket:          getEnv("S3_BUCKET", "rifa-market-media"),
		Endpoint:        getEnv("S3_ENDPOINT", ""),
		AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
	}

	// Checkout redirects
	cfg.Checkout = CheckoutConfig{
		SuccessURL: getEnv("CHECKOUT_SUCCESS_URL", "https://rifamarket.example/checkout/success"),
		FailureURL: getEnv("CHECKOUT_FAILURE_URL", "https://rifamarket.example/checkout/failure"),
	}

	// Workers (durations)
	var err error
	if cfg.Worker.StatusCheckInterval, err = parseDurationEnv("STATUS_CHECK_INTERVAL", "30s"); err != nil {
		return nil, fmt.Errorf("invalid STATUS_CHECK_INTERVAL: %w", err)
	}
	if cfg.Worker.StatusCheckStaleAfter, err = parseDurationEnv("STATUS_CHECK_STALE_AFTER", "2m"); err != nil {
		return nil, fmt.Errorf("invalid STATUS_CHECK_STALE_AFTER: %w", err)
	}
	if cfg.Worker.PaymentMaxAge, err = parseDurationEnv("PAYMENT_MAX_AGE", "24h"); err != nil {
		return nil, fmt.Errorf("invalid PAYMENT_MAX_AGE: %w", err)
	}
	if cfg.Worker.CheckoutSessionTTL, err = parseDurationEnv("CHECKOUT_SESSION_TTL", "30m"); err != nil {
		return nil, fmt.Errorf("invalid CHECKOUT_SESSION_TTL: %w", err)
	}

	// Basic validation for DB parameters — keeps messages concise and helpful.
	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}

	// Validate JWT_SECRET
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for authentication")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
