package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Payment     PaymentConfig
	Facilitator FacilitatorConfig
	Webhook     WebhookConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	Env            string
	PublicBaseURL  string
	AllowedOrigins []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL           string
	PASSWORD      string
	MembershipTTL time.Duration
}

// PaymentConfig describes the fixed price charged for waitlist access
type PaymentConfig struct {
	ServerWalletAddress string
	Network             string
	ChainID             int64
	AssetAddress        string
	AssetDecimals       int
	AssetName           string
	Price               string
	Token               string
}

// FacilitatorConfig holds settlement facilitator credentials
type FacilitatorConfig struct {
	URL       string
	APIKeyID  string
	SecretKey string
	Timeout   time.Duration
}

// WebhookConfig holds the payment status webhook settings.
// An empty SecretHash disables the webhook route.
type WebhookConfig struct {
	SecretHash string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Env:            getEnv("SERVER_ENV", "development"),
			PublicBaseURL:  strings.TrimRight(getEnv("PUBLIC_BASE_URL", ""), "/"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "waitlist-db"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			PASSWORD:      getEnv("REDIS_PASSWORD", ""),
			MembershipTTL: getEnvAsDuration("MEMBERSHIP_CACHE_TTL", 10*time.Minute),
		},
		Payment: PaymentConfig{
			ServerWalletAddress: getEnv("SERVER_WALLET_ADDRESS", ""),
			Network:             getEnv("PAYMENT_NETWORK", "base-sepolia"),
			ChainID:             int64(getEnvAsInt("PAYMENT_CHAIN_ID", 84532)),
			AssetAddress:        getEnv("PAYMENT_ASSET_ADDRESS", "0x036CbD53842c5426634e7929541eC2318f3dCF7e"),
			AssetDecimals:       getEnvAsInt("PAYMENT_ASSET_DECIMALS", 6),
			AssetName:           getEnv("PAYMENT_ASSET_NAME", "USDC"),
			Price:               getEnv("PAYMENT_PRICE", "0.1"),
			Token:               getEnv("PAYMENT_TOKEN", "USDC"),
		},
		Facilitator: FacilitatorConfig{
			URL:       strings.TrimRight(getEnv("FACILITATOR_URL", "https://x402.org/facilitator"), "/"),
			APIKeyID:  getEnv("FACILITATOR_API_KEY_ID", ""),
			SecretKey: getEnv("FACILITATOR_SECRET_KEY", ""),
			Timeout:   getEnvAsDuration("FACILITATOR_TIMEOUT", 0),
		},
		Webhook: WebhookConfig{
			SecretHash: getEnv("WEBHOOK_SECRET_HASH", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma separated value, dropping blanks
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
