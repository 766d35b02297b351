package config

import (
	"os"
	"strconv"
	"time"
)

type KitchenConfig struct {
	WebhookURL string
	AuthToken  string
}

type EmailConfig struct {
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	SenderEmail        string
	ManagerEmail       string
}

type BasketConfig struct {
	Backend   string // "session" (default) or "redis"
	RedisAddr string
	TTL       time.Duration
}

func LoadKitchenConfig() KitchenConfig {
	return KitchenConfig{
		WebhookURL: os.Getenv("KITCHEN_WEBHOOK_URL"),
		AuthToken:  os.Getenv("KITCHEN_WEBHOOK_TOKEN"),
	}
}

func LoadEmailConfig() EmailConfig {
	return EmailConfig{
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AWSRegion:          getEnvOrDefault("AWS_REGION", "us-east-1"),
		SenderEmail:        os.Getenv("AWS_SENDER_ADDRESS"),
		ManagerEmail:       os.Getenv("MANAGER_EMAIL"),
	}
}

func LoadBasketConfig() BasketConfig {
	ttl := 30 * time.Minute
	if v, err := strconv.Atoi(getEnvOrDefault("BASKET_TTL_MINUTES", "30")); err == nil && v > 0 {
		ttl = time.Duration(v) * time.Minute
	}

	return BasketConfig{
		Backend:   getEnvOrDefault("BASKET_BACKEND", "session"),
		RedisAddr: getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		TTL:       ttl,
	}
}

// LowStockThreshold is the on-hand quantity at or below which a finalized
// order triggers the manager alert.
func LowStockThreshold() int {
	if v, err := strconv.Atoi(getEnvOrDefault("LOW_STOCK_THRESHOLD", "0")); err == nil && v >= 0 {
		return v
	}
	return 0
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
