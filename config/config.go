package config

import (
	"os"
	"strconv"
	"time"
)

// GetEnv returns the value of an environment variable or a fallback.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetEnvInt returns an integer environment variable or a fallback when the
// variable is unset or not a number.
func GetEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// StatusTTL is how long a transient status message stays visible.
func StatusTTL() time.Duration {
	return time.Duration(GetEnvInt("STATUS_TTL_SECONDS", 5)) * time.Second
}

// AppID scopes the food log collection. All documents written by this
// deployment live under this application identifier.
func AppID() string {
	return GetEnv("APP_ID", "wwgemini")
}
