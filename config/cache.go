package config

import (
	"main/utils"
	"time"
)

type CacheConfig struct {
	RedisURL string
	ListTTL  time.Duration
	DocTTL   time.Duration
}

func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		RedisURL: utils.GetEnvAsString("REDIS_URL", "redis://localhost:6379/0"),
		ListTTL:  utils.GetEnvAsDuration("CACHE_LIST_TTL", 2*time.Minute),
		DocTTL:   utils.GetEnvAsDuration("CACHE_DOC_TTL", 5*time.Minute),
	}
}
