package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultSeedURL is the public product-sale dataset.
const DefaultSeedURL = "https://s3.amazonaws.com/roxiler.com/product_transaction.json"

type Config struct {
	// HTTP Server
	Port           string   `validate:"required"`
	TrustedProxies []string `validate:"dive,cidr"`

	// Database
	SQLiteDBPath string `validate:"required"`

	// Seeding
	SeedSource  string `validate:"oneof=http sheets"`
	SeedURL     string `validate:"omitempty,url"`
	SeedTimeout time.Duration

	// AMQP (empty URL disables import events)
	AMQPURL        string
	AMQPExchange   string
	AMQPQueue      string
	AMQPRoutingKey string

	// Google Sheets seed source
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string

	// Logging
	LogLevel      string `validate:"oneof=debug info warn error"`
	LogFormat     string `validate:"oneof=text json"`
	LogFile       string
	LogMaxSizeMB  int `validate:"gte=0"`
	LogMaxBackups int `validate:"gte=0"`
	LogMaxAgeDays int `validate:"gte=0"`
}

func Load() *Config {
	cfg := &Config{
		Port:           getEnv("PORT", "3000"),
		TrustedProxies: getEnvList("TRUSTED_PROXIES"),
		SQLiteDBPath:   getEnv("SQLITE_DB_PATH", "./data/mydatabase.db"),

		SeedSource:  strings.ToLower(getEnv("SEED_SOURCE", "http")),
		SeedURL:     getEnv("SEED_URL", DefaultSeedURL),
		SeedTimeout: getEnvDuration("SEED_TIMEOUT", 60*time.Second),

		AMQPURL:        getEnv("AMQP_URL", ""),
		AMQPExchange:   getEnv("AMQP_EXCHANGE", "salesdash"),
		AMQPQueue:      getEnv("AMQP_QUEUE", ""),
		AMQPRoutingKey: getEnv("AMQP_ROUTING_KEY", "products.imported"),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:          getEnv("GOOGLE_SHEET_NAME", "Products"),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")),

		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:     strings.ToLower(getEnv("LOG_FORMAT", "text")),
		LogFile:       getEnv("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
	}

	return cfg
}

// AMQPEnabled reports whether import events should be published.
func (c *Config) AMQPEnabled() bool {
	return strings.TrimSpace(c.AMQPURL) != ""
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if err := validator.New().Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			for _, fieldErr := range validationErrors {
				errs = append(errs, fmt.Sprintf("invalid %s '%v': failed '%s' check", fieldErr.Field(), fieldErr.Value(), fieldErr.Tag()))
			}
		} else {
			errs = append(errs, err.Error())
		}
	}

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.SeedTimeout < time.Second {
		errs = append(errs, fmt.Sprintf("invalid seed timeout %v: must be at least 1 second", c.SeedTimeout))
	}

	switch c.SeedSource {
	case "http":
		if c.SeedURL == "" {
			errs = append(errs, "SEED_URL cannot be empty when using http seed source")
		}
	case "sheets":
		if c.GoogleSpreadsheetID == "" {
			errs = append(errs, "Google Spreadsheet ID is required when using sheets seed source")
		}
		hasJSON := c.GoogleServiceAccountJSON != ""
		hasFile := c.GoogleServiceAccountFile != ""
		if !hasJSON && !hasFile {
			errs = append(errs, "either GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE must be provided for sheets seed source")
		}
		if !hasJSON && hasFile {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errs = append(errs, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	}

	// Validate AMQP URL if provided
	if c.AMQPEnabled() {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPRoutingKey == "" {
			errs = append(errs, "AMQP routing key cannot be empty when AMQP URL is provided")
		}
	}

	if c.LogFile != "" && c.LogMaxSizeMB < 1 {
		errs = append(errs, fmt.Sprintf("invalid log max size %d: must be at least 1 MB when LOG_FILE is set", c.LogMaxSizeMB))
	}

	// Return combined errors
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvList splits a comma-separated value, dropping empty items.
func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
