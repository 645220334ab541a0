package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds every setting the service reads from the environment.
// It is built once in main and passed by reference; nothing else reads env vars.
type Config struct {
	Port     string
	MongoURI string
	DBName   string

	UploadDir        string
	MaxFileSize      int64
	MaxImagesPerWish int

	MaxWishesPerIPPerDay int
	RedisAddr            string

	CleanupIntervalMinutes   int
	SoftDeleteGracePeriodMin int
	MinFreeDiskBytes         uint64

	BaseURL string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, relying on environment variables")
	}

	return &Config{
		Port:     getEnv("PORT", "8000"),
		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:   getEnv("DB_NAME", "wishaday"),

		UploadDir:        getEnv("UPLOAD_DIR", "./uploads"),
		MaxFileSize:      getEnvInt64("MAX_FILE_SIZE", 2097152), // 2MB
		MaxImagesPerWish: getEnvInt("MAX_IMAGES_PER_WISH", 5),

		MaxWishesPerIPPerDay: getEnvInt("MAX_WISHES_PER_IP_PER_DAY", 10),
		RedisAddr:            getEnv("REDIS_ADDR", ""),

		CleanupIntervalMinutes:   getEnvInt("CLEANUP_INTERVAL_MINUTES", 30),
		SoftDeleteGracePeriodMin: getEnvInt("SOFT_DELETE_GRACE_PERIOD_MINUTES", 10),
		MinFreeDiskBytes:         uint64(getEnvInt64("MIN_FREE_DISK_BYTES", 104857600)), // 100MB

		BaseURL: getEnv("BASE_URL", "http://localhost:8000"),
	}
}

// MediaURL returns the public prefix image URLs are served under.
func (c *Config) MediaURL() string {
	return c.BaseURL + "/media"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		logrus.Warnf("Invalid value for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
		logrus.Warnf("Invalid value for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}
