package config

import (
	"os"
	"strconv"
)

// Supported values for DatabaseConfig.Driver.
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// DatabaseConfig holds document store connection settings.
type DatabaseConfig struct {
	Driver            string
	URI               string
	Name              string
	Collection        string
	ConnectTimeoutSec int
	MaxPoolSize       int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether an object storage endpoint was configured.
func (c MinIOConfig) Enabled() bool {
	return c.Endpoint != ""
}

// SeedConfig controls startup loading of restaurant records.
type SeedConfig struct {
	Enabled      bool
	File         string
	ObjectKey    string
	DropExisting bool
}

// QueryConfig holds the literal values some routes filter on.
type QueryConfig struct {
	ExcludedCity string
	FixedCuisine string
}

// LogConfig holds zap logger settings.
type LogConfig struct {
	Level  string
	Format string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost            string
	Port               string
	ShutdownTimeoutSec int
	Log                LogConfig
	Database           DatabaseConfig
	MinIO              MinIOConfig
	Seed               SeedConfig
	Query              QueryConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:            getEnv("APP_HOST", "localhost:3000"),
		Port:               getEnv("PORT", "3000"),
		ShutdownTimeoutSec: getEnvInt("SHUTDOWN_TIMEOUT_SEC", 10),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Database: DatabaseConfig{
			Driver:            getEnv("DB_DRIVER", DriverMongo),
			URI:               getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Name:              getEnv("MONGO_DATABASE", "restaurants"),
			Collection:        getEnv("MONGO_COLLECTION", "restaurants"),
			ConnectTimeoutSec: getEnvInt("MONGO_CONNECT_TIMEOUT_SEC", 10),
			MaxPoolSize:       getEnvInt("MONGO_MAX_POOL_SIZE", 0),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Seed: SeedConfig{
			Enabled:      getEnvBool("SEED_ENABLED", true),
			File:         getEnv("SEED_FILE", ""),
			ObjectKey:    getEnv("SEED_OBJECT_KEY", ""),
			DropExisting: getEnvBool("SEED_DROP_EXISTING", false),
		},
		Query: QueryConfig{
			ExcludedCity: getEnv("EXCLUDED_CITY", "Brooklyn"),
			FixedCuisine: getEnv("FIXED_CUISINE", "Delicatessen"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
