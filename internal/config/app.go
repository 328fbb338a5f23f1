package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"
)

type AppConfig struct {
	Name              string
	Env               string
	Port              string
	LogLevel          string
	LLMProvider       string
	OutputValidation  bool
	RateLimitMax      int
	HTTPClientTimeout time.Duration
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
		}
		appConfig = &AppConfig{
			Name:              getEnv("APP_NAME", "ai-resume"),
			Env:               env,
			Port:              getEnv("APP_PORT", ":5000"),
			LogLevel:          getEnv("LOG_LEVEL", "info"),
			LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
			OutputValidation:  getEnvBool("OUTPUT_VALIDATION", false),
			RateLimitMax:      getEnvInt("RATE_LIMIT_MAX", 50),
			HTTPClientTimeout: getEnvDuration("HTTP_CLIENT_TIMEOUT", 0),
		}
	})
	return appConfig
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("Warning: %s=%q is not an integer, using %d", key, v, def)
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("Warning: %s=%q is not a boolean, using %t", key, v, def)
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("Warning: %s=%q is not a duration, using %s", key, v, def)
	}
	return def
}
