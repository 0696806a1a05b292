package configs

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds every setting the application reads from the environment.
// It is loaded exactly once at startup; handlers and services go through
// the C singleton instead of os.Getenv.
type Config struct {
	Port       string
	CORSOrigin string

	DatabaseURL string
	JWTSecret   string

	CloudinaryURL string

	GatewayBaseURL   string
	GatewayKeyID     string
	GatewayKeySecret string

	BrevoAPIKey     string
	EmailSender     string
	EmailSenderName string

	AdminEmail     string
	AdminPassword  string
	AdminFirstName string
	AdminLastName  string

	FrontendURL string
}

// C is the process-wide configuration, set once by MustLoad.
var C *Config

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	cfg := &Config{
		Port:             getenv("PORT", "8080"),
		CORSOrigin:       getenv("CORS_ORIGIN", "http://localhost:5173"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		CloudinaryURL:    os.Getenv("CLOUDINARY_URL"),
		GatewayBaseURL:   getenv("PAYMENT_GATEWAY_BASE_URL", "https://api.razorpay.com"),
		GatewayKeyID:     os.Getenv("PAYMENT_GATEWAY_KEY_ID"),
		GatewayKeySecret: os.Getenv("PAYMENT_GATEWAY_KEY_SECRET"),
		BrevoAPIKey:      os.Getenv("BREVO_API_KEY"),
		EmailSender:      os.Getenv("EMAIL_SENDER"),
		EmailSenderName:  os.Getenv("EMAIL_SENDER_NAME"),
		AdminEmail:       os.Getenv("ADMIN_EMAIL"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
		AdminFirstName:   getenv("ADMIN_FIRST_NAME", "Platform"),
		AdminLastName:    getenv("ADMIN_LAST_NAME", "Admin"),
		FrontendURL:      getenv("FRONTEND_URL", "http://localhost:5173"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("required environment variable DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("required environment variable JWT_SECRET is not set")
	}
	return cfg, nil
}

// MustLoad loads the configuration and refuses to start without the
// required secrets.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("🔥 Failed to load configuration: %v", err)
	}
	C = cfg
	return cfg
}

// PaymentsEnabled reports whether the payment gateway credentials are
// present. Payment routes are only mounted when they are.
func (c *Config) PaymentsEnabled() bool {
	return c.GatewayKeyID != "" && c.GatewayKeySecret != ""
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
