package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Search   SearchConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	Voyage string // embedding provider credential; empty forces text-only search
}

type AIConfig struct {
	EmbeddingBaseURL string
	EmbeddingModel   string
}

type SearchConfig struct {
	RateLimitWindowSec int
	RateLimitMax       int
	RateLimitBackend   string // "memory" or "redis"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			Voyage: getEnv("VOYAGE_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingBaseURL: getEnv("EMBEDDING_BASE_URL", "https://api.voyageai.com/v1/multimodalembeddings"),
			EmbeddingModel:   getEnv("EMBEDDING_MODEL", "voyage-multimodal-3"),
		},
		Search: SearchConfig{
			RateLimitWindowSec: getEnvAsInt("SEARCH_RATE_LIMIT_WINDOW_SEC", 60),
			RateLimitMax:       getEnvAsInt("SEARCH_RATE_LIMIT_MAX", 60),
			RateLimitBackend:   getEnv("SEARCH_RATE_LIMIT_BACKEND", "memory"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
