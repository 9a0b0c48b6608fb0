package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries all runtime settings. It is constructed once in main and
// passed explicitly into the wiring; nothing reads the environment after
// Load returns.
type Config struct {
	MongoURI string
	DBName   string
	Port     string

	JWTSecret string

	RazorpayKeyID     string
	RazorpayKeySecret string

	RedisAddr         string
	PaymentRateLimit  int
	PaymentRateWindow time.Duration

	DeliveryEstimateDays int
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	return Config{
		MongoURI:             getEnvOrDefault("MONGO_URI", ""),
		DBName:               getEnvOrDefault("DB_NAME", "farmmarket"),
		Port:                 getEnvOrDefault("PORT", "8080"),
		JWTSecret:            getEnvOrDefault("JWT_SECRET", ""),
		RazorpayKeyID:        getEnvOrDefault("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret:    getEnvOrDefault("RAZORPAY_KEY_SECRET", ""),
		RedisAddr:            getEnvOrDefault("REDIS_ADDR", ""),
		PaymentRateLimit:     getIntEnv("PAYMENT_RATE_LIMIT", 10),
		PaymentRateWindow:    getDurationEnv("PAYMENT_RATE_WINDOW", 1, time.Minute),
		DeliveryEstimateDays: getIntEnv("DELIVERY_ESTIMATE_DAYS", 5),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
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
