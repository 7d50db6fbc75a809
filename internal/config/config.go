package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings shared by the server and the reminder job.
type Config struct {
	DataFile          string
	TagsFile          string
	ImageDir          string
	LockTimeout       time.Duration
	LockRetry         time.Duration
	Port              string
	CORSOrigins       string
	ReapplyWindowDays int
	// Transactional holds the data file lock across each whole
	// load-modify-save instead of only around the physical read and write.
	Transactional bool
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load reads the configuration from the environment, falling back to defaults.
func Load() Config {
	return Config{
		DataFile:          GetEnv("DATA_FILE", "my_cards.csv"),
		TagsFile:          GetEnv("TAGS_FILE", "tags.json"),
		ImageDir:          GetEnv("IMAGE_DIR", "card_images"),
		LockTimeout:       GetDurationEnv("LOCK_TIMEOUT", 10*time.Second),
		LockRetry:         GetDurationEnv("LOCK_RETRY", 50*time.Millisecond),
		Port:              GetEnv("PORT", "3000"),
		CORSOrigins:       GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		ReapplyWindowDays: GetIntEnv("REAPPLY_WINDOW_DAYS", 60),
		Transactional:     GetBoolEnv("STORE_TRANSACTIONAL", false),
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && strings.TrimSpace(val) != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetBoolEnv returns a bool environment variable or a default value.
func GetBoolEnv(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil && d > 0 {
			return d
		}
		log.Printf("Invalid %s=%q, using default: %s", key, val, defaultVal)
	}
	return defaultVal
}
