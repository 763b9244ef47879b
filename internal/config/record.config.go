package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"record-service/shared/logger"
	"record-service/shared/utils/errors"
)

type AppConfig struct {
	MongoURI       string
	DBName         string
	ConnectTimeout time.Duration

	Port     string
	LogLevel string

	AllowedOrigins []string

	// Rate limiting is enabled only when RedisAddr is set.
	RedisAddr  string
	RedisPass  string
	RateLimit  int
	RateWindow time.Duration
	RateBlock  time.Duration
}

func Load() AppConfig {
	return AppConfig{
		MongoURI:       os.Getenv("MONGODB_URI"),
		DBName:         os.Getenv("DB_NAME"),
		ConnectTimeout: getDuration("DB_CONNECT_TIMEOUT", 10*time.Second),

		Port:     getEnv("PORT", "3000"),
		LogLevel: getEnv("LOG_LEVEL", logger.DefaultLevel),

		AllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		RedisAddr:  getEnv("REDIS_ADDR", ""),
		RedisPass:  getEnv("REDIS_PASS", ""),
		RateLimit:  getInt("RATE_LIMIT", 100),
		RateWindow: getDuration("RATE_WINDOW", time.Minute),
		RateBlock:  getDuration("RATE_BLOCK", 10*time.Minute),
	}
}

// Validate reports missing settings that must stop the process before
// any connection attempt.
func (c AppConfig) Validate() error {
	if c.MongoURI == "" || c.DBName == "" {
		return xerrors.ErrMissingDBConfig
	}
	return nil
}

func (c AppConfig) HTTPAddr() string {
	return ":" + c.Port
}

func (c AppConfig) RateLimitEnabled() bool {
	return c.RedisAddr != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
