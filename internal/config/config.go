package config

import (
	"os"
	"strconv"
	"time"
)

// Token store backends selectable via TOKEN_STORE.
const (
	TokenStoreMemory = "memory"
	TokenStoreRedis  = "redis"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env               string
	ServerPort        string
	MySQLDSN          string
	RedisAddr         string
	RedisDB           int
	RedisPass         string
	JWTSecret         string
	AccessTokenTTL    time.Duration
	RefreshTokenTTL   time.Duration
	TokenStore        string
	LogLevel          string
	AuthRatePerMinute int
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		Env:               getEnv("ENV", "development"),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		MySQLDSN:          getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/blog?charset=utf8mb4&parseTime=True&loc=UTC"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		JWTSecret:         getEnv("JWT_SECRET", "change-me"),
		AccessTokenTTL:    getEnvSeconds("ACCESS_TOKEN_TTL", 900),
		RefreshTokenTTL:   getEnvSeconds("REFRESH_TOKEN_TTL", 604800),
		TokenStore:        getEnv("TOKEN_STORE", TokenStoreMemory),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		AuthRatePerMinute: getEnvInt("AUTH_RATE_PER_MINUTE", 10),
	}
}

// IsDevelopment reports whether the process runs in development mode.
// Internal error messages are only surfaced to clients in development.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvSeconds(key string, def int) time.Duration {
	return time.Duration(getEnvInt(key, def)) * time.Second
}
