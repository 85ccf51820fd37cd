package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App AppConfig
	LLM LLMConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
	CatalogPath        string
}

type LLMConfig struct {
	BaseURL         string
	Model           string
	ClientTag       string
	APIKey          string // static token, used when no token endpoint is set
	TokenURL        string
	TokenCredential string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			CatalogPath:        getEnv("CATALOG_PATH", "catalog.json"),
		},
		LLM: LLMConfig{
			BaseURL:         getEnv("LLM_BASE_URL", "https://llmfoundry.straive.com/openai/v1"),
			Model:           getEnv("LLM_MODEL", "gpt-4.1-mini"),
			ClientTag:       getEnv("LLM_CLIENT_TAG", "llm-use-case-explorer"),
			APIKey:          getEnv("LLM_API_KEY", ""),
			TokenURL:        getEnv("LLM_TOKEN_URL", ""),
			TokenCredential: getEnv("LLM_TOKEN_CREDENTIAL", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
