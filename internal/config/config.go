package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPPort int

	DBConfig struct {
		DBHost     string `env:"STOREFRONT_DB_HOST"`
		DBPort     string `env:"STOREFRONT_DB_PORT"`
		DBUser     string `env:"STOREFRONT_DB_USER"`
		DBPassword string `env:"STOREFRONT_DB_PASSWORD"`
		DBName     string `env:"STOREFRONT_DB_NAME"`
		DBSSLMode  string `env:"STOREFRONT_DB_SSLMODE"`
	}
	MigrationsPath string `env:"MIGRATIONS_PATH"`

	RazorpayKeyID     string `env:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret string `env:"RAZORPAY_KEY_SECRET"`
	GatewayTimeout    time.Duration

	SpreadsheetID     string `env:"GOOGLE_SHEETS_ID"`
	SpreadsheetTab    string `env:"GOOGLE_SHEETS_TAB_NAME"`
	GoogleClientEmail string `env:"GOOGLE_CLIENT_EMAIL"`
	GooglePrivateKey  string `env:"GOOGLE_PRIVATE_KEY"`
	LedgerTimeout     time.Duration
	LedgerMaxRetries  uint64

	LinkRefreshInterval time.Duration
	LinkLookupTimeout   time.Duration

	KafkaURL                string `env:"KAFKA_BROKER_URL"`
	KafkaPaymentEventsTopic string `env:"KAFKA_PAYMENT_EVENTS_TOPIC"`

	AllowedOrigins []string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}

	portStr := getEnvOrDefault("HTTP_PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_PORT: %w", err)
	}
	cfg.HTTPPort = port

	cfg.DBConfig.DBHost = getEnvOrDefault("STOREFRONT_DB_HOST", "localhost")
	cfg.DBConfig.DBPort = getEnvOrDefault("STOREFRONT_DB_PORT", "5432")
	cfg.DBConfig.DBUser = getEnvOrDefault("STOREFRONT_DB_USER", "postgres")
	cfg.DBConfig.DBPassword = getEnvOrDefault("STOREFRONT_DB_PASSWORD", "postgres")
	cfg.DBConfig.DBName = getEnvOrDefault("STOREFRONT_DB_NAME", "storefront_db")
	cfg.DBConfig.DBSSLMode = getEnvOrDefault("STOREFRONT_DB_SSLMODE", "disable")
	cfg.MigrationsPath = getEnvOrDefault("MIGRATIONS_PATH", "file://migrations")

	cfg.RazorpayKeyID = os.Getenv("RAZORPAY_KEY_ID")
	cfg.RazorpayKeySecret = os.Getenv("RAZORPAY_KEY_SECRET")
	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		return nil, fmt.Errorf("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET are required")
	}

	cfg.GatewayTimeout, err = parseDurationEnv("GATEWAY_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	cfg.SpreadsheetID = os.Getenv("GOOGLE_SHEETS_ID")
	cfg.SpreadsheetTab = getEnvOrDefault("GOOGLE_SHEETS_TAB_NAME", "Sheet1")
	cfg.GoogleClientEmail = os.Getenv("GOOGLE_CLIENT_EMAIL")
	// Deployment environments store the key with escaped newlines.
	cfg.GooglePrivateKey = strings.ReplaceAll(os.Getenv("GOOGLE_PRIVATE_KEY"), `\n`, "\n")

	cfg.LedgerTimeout, err = parseDurationEnv("LEDGER_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	retriesStr := getEnvOrDefault("LEDGER_MAX_RETRIES", "2")
	retries, err := strconv.ParseUint(retriesStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid LEDGER_MAX_RETRIES: %w", err)
	}
	cfg.LedgerMaxRetries = retries

	cfg.LinkRefreshInterval, err = parseDurationEnv("LINK_REFRESH_INTERVAL", "15m")
	if err != nil {
		return nil, err
	}
	cfg.LinkLookupTimeout, err = parseDurationEnv("LINK_LOOKUP_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	cfg.KafkaURL = getEnvOrDefault("KAFKA_BROKER_URL", "localhost:9092")
	cfg.KafkaPaymentEventsTopic = getEnvOrDefault("KAFKA_PAYMENT_EVENTS_TOPIC", "payment_verified_events")

	cfg.AllowedOrigins = strings.Split(getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:3000"), ",")

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func parseDurationEnv(key, defaultValue string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnvOrDefault(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func (c *Config) GetDBConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBConfig.DBHost, c.DBConfig.DBPort, c.DBConfig.DBUser, c.DBConfig.DBPassword, c.DBConfig.DBName, c.DBConfig.DBSSLMode)
}

func (c *Config) GetDBMigrationConnectionString() string {
	return fmt.Sprintf("%s:%s@%s:%s/%s?sslmode=%s",
		c.DBConfig.DBUser, c.DBConfig.DBPassword, c.DBConfig.DBHost, c.DBConfig.DBPort, c.DBConfig.DBName, c.DBConfig.DBSSLMode)
}

func (c *Config) GetKafkaBrokers() []string {
	return []string{c.KafkaURL}
}
