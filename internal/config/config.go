package config

import (
	"os"
	"strconv"
	"time"
)

// AIConfig holds the chat-completion endpoint settings. Model, temperature
// and token budget are fixed product constants; only the key and endpoint
// come from the environment.
type AIConfig struct {
	APIKey      string
	APIURL      string
	Model       string
	Temperature float64
	MaxTokens   int
}

func NewAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:      getEnv("OPENROUTER_API_KEY", ""),
		APIURL:      getEnv("OPENROUTER_API_URL", "https://openrouter.ai/api/v1/chat/completions"),
		Model:       getEnv("AI_MODEL", "z-ai/glm-4.5-air:free"),
		Temperature: 0.7,
		MaxTokens:   1000,
	}
}

// CacheConfig holds the redis connection settings backing the memory wall.
type CacheConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

func NewCacheConfig() *CacheConfig {
	return &CacheConfig{
		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       0,
	}
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	SessionTimeout time.Duration
}

func NewServerConfig() *ServerConfig {
	timeout := 30 * time.Minute
	if raw := getEnv("SESSION_TIMEOUT_MINUTES", ""); raw != "" {
		if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
			timeout = time.Duration(minutes) * time.Minute
		}
	}

	return &ServerConfig{
		Port:           getEnv("PORT", "5050"),
		AllowedOrigins: []string{getEnv("ALLOWED_ORIGIN", "http://localhost:3000")},
		SessionTimeout: timeout,
	}
}

// CatalogConfig points at the landmark catalog source. CatalogSource is a
// local path or an http(s) URL; DatabaseURL switches to the
// Postgres-backed source when set.
type CatalogConfig struct {
	CatalogSource string
	DatabaseURL   string
}

func NewCatalogConfig() *CatalogConfig {
	return &CatalogConfig{
		CatalogSource: getEnv("CATALOG_SOURCE", "data/landmarks.json"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
