package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port     string
	JWTKey   string
	Currency string

	AppBaseURL string // Public base URL used for checkout redirect targets

	PaymentApiURL        string // Payment gateway base URL
	PaymentApiKey        string // Payment gateway secret key
	PaymentWebhookSecret string // Shared secret for webhook signature checks

	IdentityApiURL string // Identity provider base URL
	IdentityApiKey string // Identity provider API key

	SendGridApiKey string
	EmailSender    string

	PendingReportHours int // Age in hours before a pending purchase is reported
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:     getEnv("PORT", "3000"),
		JWTKey:   getEnv("JWT_SECRET_KEY", "defaultSecret"),
		Currency: getEnv("CURRENCY", "USD"),

		AppBaseURL: getEnv("APP_BASE_URL", "http://localhost:5173"),

		PaymentApiURL:        getEnv("PAYMENT_API_URL", "https://api.sandbox.credpay.io/v1/"),
		PaymentApiKey:        getEnv("PAYMENT_API_KEY", "defaultSecret"),
		PaymentWebhookSecret: getEnv("PAYMENT_WEBHOOK_SECRET", "defaultSecret"),

		IdentityApiURL: getEnv("IDENTITY_API_URL", "https://api.identity.example.com/v1/"),
		IdentityApiKey: getEnv("IDENTITY_API_KEY", "defaultSecret"),

		SendGridApiKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "no-reply@example.com"),

		PendingReportHours: getEnvInt("PENDING_REPORT_HOURS", 24),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.PaymentWebhookSecret == "defaultSecret" {
		log.Println("Warning: Using default PAYMENT_WEBHOOK_SECRET. Update it in your environment.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
