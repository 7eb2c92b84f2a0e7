package config

import (
	"os"
	"strconv"
)

// Helper function to get environment variable with fallback default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get environment variable as integer with fallback
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

// JWTSecret returns the HMAC key used to sign session tokens. Must be the
// same key in the auth usecase and the auth middleware.
func JWTSecret() []byte {
	return []byte(GetEnv("JWT_SECRET", "dev-secret-change-me"))
}
