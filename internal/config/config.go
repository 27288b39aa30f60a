package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	DatabaseURL         string
	RedisURL            string
	FrontendURL         string  // Frontend base URL (share links and QR codes point here)
	UploadDir           string  // Directory where gift images are deposited
	JWTSecret           string  // Secret key for JWT token signing
	JWTTTL              int     // JWT token expiration time in hours
	RateLimitRPS        float64 // Rate limit for general API endpoints (requests per second)
	RateLimitBurst      int
	RateLimitAuthRPS    float64 // Stricter limit for register/login
	RateLimitAuthBurst  int
	RateLimitReserveRPS float64 // Limit for the anonymous gift reservation endpoint
	RateLimitReserveBurst int
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		Port:                  getEnv("PORT", "8080"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		RedisURL:              getEnv("REDIS_URL", ""),
		FrontendURL:           getEnv("FRONTEND_URL", "http://localhost:3000"),
		UploadDir:             getEnv("UPLOAD_DIR", "uploads"),
		JWTSecret:             getEnv("JWT_SECRET", ""),
		JWTTTL:                getEnvInt("JWT_TTL_HOURS", 24),
		RateLimitRPS:          getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:        getEnvInt("RATE_LIMIT_BURST", 20),
		RateLimitAuthRPS:      getEnvFloat("RATE_LIMIT_AUTH_RPS", 5),
		RateLimitAuthBurst:    getEnvInt("RATE_LIMIT_AUTH_BURST", 10),
		RateLimitReserveRPS:   getEnvFloat("RATE_LIMIT_RESERVE_RPS", 5),
		RateLimitReserveBurst: getEnvInt("RATE_LIMIT_RESERVE_BURST", 10),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
