package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Supabase   SupabaseConfig
	OpenRouter OpenRouterConfig
	Ai         AIConfig
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

// SupabaseConfig covers both JWT verification (auth is delegated to
// Supabase GoTrue) and the storage bucket that holds uploaded documents.
type SupabaseConfig struct {
	URL            string
	ServiceRoleKey string
	JWTSecret      string
	StorageBucket  string
}

type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	Referer string
	Title   string
}

type AIConfig struct {
	EmbeddingModel  string
	EmbeddingDims   int
	ChatModel       string
	ExtractionModel string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Supabase: SupabaseConfig{
			URL:            getEnv("SUPABASE_URL", ""),
			ServiceRoleKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
			JWTSecret:      getEnv("SUPABASE_JWT_SECRET", ""),
			StorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", "documents"),
		},
		OpenRouter: OpenRouterConfig{
			APIKey:  getEnv("OPENROUTER_API_KEY", ""),
			BaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			Referer: getEnv("OPENROUTER_REFERER", "http://localhost:3000"),
			Title:   getEnv("OPENROUTER_TITLE", "AI Estimator"),
		},
		Ai: AIConfig{
			EmbeddingModel:  getEnv("EMBEDDING_MODEL", "openai/text-embedding-3-small"),
			EmbeddingDims:   getEnvAsInt("EMBEDDING_DIMENSIONS", 1536),
			ChatModel:       getEnv("CHAT_MODEL", "anthropic/claude-sonnet-4"),
			ExtractionModel: getEnv("EXTRACTION_MODEL", "anthropic/claude-sonnet-4"),
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
