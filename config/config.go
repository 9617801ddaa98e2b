package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Storage drivers accepted by STORAGE_DRIVER
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
	StorageS3       = "s3"
)

// Export drivers accepted by EXPORT_DRIVER
const (
	ExportLocal = "local"
	ExportS3    = "s3"
)

// DefaultTimezone is the zone order dates are displayed in
const DefaultTimezone = "Asia/Jakarta"

// Config holds all application configuration
type Config struct {
	Port               string
	GoEnv              string
	LogLevel           string
	AppTimezone        string
	StorageDriver      string
	StorageKey         string
	StorageDir         string
	DatabaseURL        string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	AWSRegion          string
	AWSS3Bucket        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	ExportDriver       string
	ExportDir          string
	CORSAllowedOrigins []string
}

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Try to load environment-specific file first
	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		if err := godotenv.Load(); err != nil {
			// On the workshop server variables are set directly,
			// so it's okay if .env files don't exist
			log.Printf("No .env file found, using system environment variables")
		}
	} else {
		log.Printf("Loaded configuration from %s", envFile)
	}

	return FromEnv()
}

// FromEnv builds the configuration from the current process environment
func FromEnv() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_DB must be an integer: %w", err)
	}

	config := &Config{
		Port:               getEnv("PORT", "8080"),
		GoEnv:              getEnv("GO_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		AppTimezone:        getEnv("APP_TIMEZONE", DefaultTimezone),
		StorageDriver:      strings.ToLower(getEnv("STORAGE_DRIVER", StorageFile)),
		StorageKey:         getEnv("STORAGE_KEY", "order-storage"),
		StorageDir:         getEnv("STORAGE_DIR", "./data"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            redisDB,
		AWSRegion:          getEnv("AWS_REGION", "ap-southeast-3"),
		AWSS3Bucket:        getEnv("AWS_S3_BUCKET", ""),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		ExportDriver:       strings.ToLower(getEnv("EXPORT_DRIVER", ExportLocal)),
		ExportDir:          getEnv("EXPORT_DIR", "./exports"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that the selected drivers have everything they need
func (c *Config) Validate() error {
	if c.StorageKey == "" {
		return fmt.Errorf("STORAGE_KEY is required")
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	switch c.StorageDriver {
	case StorageMemory, StorageFile, StorageSQLite, StorageRedis:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres storage driver")
		}
	case StorageS3:
		if c.AWSS3Bucket == "" {
			return fmt.Errorf("AWS_S3_BUCKET is required for the s3 storage driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	switch c.ExportDriver {
	case ExportLocal:
	case ExportS3:
		if c.AWSS3Bucket == "" {
			return fmt.Errorf("AWS_S3_BUCKET is required for the s3 export driver")
		}
	default:
		return fmt.Errorf("unknown EXPORT_DRIVER %q", c.ExportDriver)
	}

	return nil
}

// Location resolves APP_TIMEZONE, falling back to DefaultTimezone when unset
func (c *Config) Location() (*time.Location, error) {
	name := c.AppTimezone
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}

// UsesS3 reports whether any configured driver needs an S3 client
func (c *Config) UsesS3() bool {
	return c.StorageDriver == StorageS3 || c.ExportDriver == ExportS3
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
