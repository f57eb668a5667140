package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if it exists (ignores error if not found)
	godotenv.Load()
}

// Storage backend names accepted by STORAGE_BACKEND.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	Port           string
	StorageBackend string
	DataPath       string
	DatabasePath   string
	UploadPath     string
	SeedPath       string
	MaxFileSize    int64
	CacheTTL       time.Duration
	LogLevel       string
	LogFormat      string
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8005"),
		StorageBackend: getEnv("STORAGE_BACKEND", BackendMemory),
		DataPath:       getEnv("DATA_PATH", "./data"),
		DatabasePath:   getEnv("DATABASE_PATH", "./data/terradash.db"),
		UploadPath:     getEnv("UPLOAD_PATH", "./uploads"),
		SeedPath:       getEnv("SEED_PATH", "./attached_assets"),
		MaxFileSize:    getEnvAsInt64("MAX_FILE_SIZE", 5<<20), // 5MB default
		CacheTTL:       time.Duration(getEnvAsInt64("CACHE_TTL_SECONDS", 60)) * time.Second,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}
