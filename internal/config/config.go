package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const DefaultBaseURL = "http://localhost:8080/"

type Config struct {
	// Client
	BaseURL     string
	HTTPTimeout time.Duration

	// Dev backend
	HTTPPort      string
	DatabaseURL   string
	JWTSecret     string
	JWTExpiration time.Duration
	GeminiAPIKey  string
	AuthRateRPS   int
	AuthRateBurst int

	LogLevel string
}

// Load reads an optional .env file and then the process environment.
// Missing keys fall back to defaults; nothing here is fatal.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	return Config{
		BaseURL:       getEnv("LAWBLOX_BASE_URL", DefaultBaseURL),
		HTTPTimeout:   getEnvAsDuration("LAWBLOX_HTTP_TIMEOUT", 30*time.Second),
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", "lawblox.db"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTExpiration: getEnvAsDuration("JWT_EXPIRATION", 24*time.Hour),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		AuthRateRPS:   getEnvAsInt("AUTH_RATE_RPS", 5),
		AuthRateBurst: getEnvAsInt("AUTH_RATE_BURST", 10),
		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
	}
}

func (c Config) Debug() bool {
	return c.LogLevel == "DEBUG"
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
