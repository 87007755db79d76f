package utils

import (
	"os"
	"strconv"
	"time"
)

// GetEnvAsString retrieves an environment variable or returns a default value
func GetEnvAsString(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// GetEnvAsInt retrieves an environment variable and converts it to an integer
func GetEnvAsInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if result, err := strconv.Atoi(value); err == nil {
			return result
		}
	}
	return defaultVal
}

// GetEnvAsInt64 retrieves an environment variable and converts it to int64
func GetEnvAsInt64(key string, defaultVal int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if result, err := strconv.ParseInt(value, 10, 64); err == nil {
			return result
		}
	}
	return defaultVal
}

// GetEnvAsUint64 retrieves an environment variable and converts it to uint64
func GetEnvAsUint64(key string, defaultVal uint64) uint64 {
	if value, exists := os.LookupEnv(key); exists {
		if result, err := strconv.ParseUint(value, 10, 64); err == nil {
			return result
		}
	}
	return defaultVal
}

// GetEnvAsBool retrieves an environment variable and converts it to boolean
func GetEnvAsBool(key string, defaultVal bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if result, err := strconv.ParseBool(value); err == nil {
			return result
		}
	}
	return defaultVal
}

// GetEnvAsDuration retrieves an environment variable and converts it to Duration
func GetEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if result, err := time.ParseDuration(value); err == nil {
			return result
		}
	}
	return defaultVal
}
