package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/docchat/docchat-backend/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8000"`

	// External service configuration
	GoogleAICfg GoogleAIConfig `envPrefix:"GOOGLE_AI_"`

	// Chat pipeline configuration
	ChatCfg ChatConfig `envPrefix:"CHAT_"`

	// File upload configuration
	FileUploadCfg FileUploadConfig `envPrefix:"FILE_UPLOAD_"`

	// Session configuration
	SessionCfg SessionConfig `envPrefix:"SESSION_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// GoogleAIConfig holds connection settings for the Google Generative
// Language API used for both embeddings and generation.
type GoogleAIConfig struct {
	HTTPClientConfig
	APIKey          string               `env:"API_KEY"`
	EmbedModel      string               `env:"EMBED_MODEL" envDefault:"embedding-001"`
	GenerateModel   string               `env:"GENERATE_MODEL" envDefault:"gemini-1.5-flash"`
	Temperature     float64              `env:"TEMPERATURE" envDefault:"0.7"`
	MaxOutputTokens int                  `env:"MAX_OUTPUT_TOKENS" envDefault:"1024"`
	Retry           pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// ChatConfig holds retrieval pipeline parameters.
type ChatConfig struct {
	ChunkSize    int `env:"CHUNK_SIZE" envDefault:"500"`
	ChunkOverlap int `env:"CHUNK_OVERLAP" envDefault:"100"`
	TopK         int `env:"TOP_K" envDefault:"4"`
	MemoryWindow int `env:"MEMORY_WINDOW" envDefault:"5"`
}

// SessionConfig holds session store parameters.
type SessionConfig struct {
	TTL             time.Duration `env:"TTL" envDefault:"1h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
	Url                   string        `env:"SERVICE_URL" envDefault:"https://generativelanguage.googleapis.com"`
}

// FileUploadConfig holds file upload limits
type FileUploadConfig struct {
	MaxFileSize int64  `env:"MAX_FILE_SIZE" envDefault:"16777216"` // 16 MiB
	UploadDir   string `env:"UPLOAD_DIR" envDefault:"uploads"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if !cfg.EnableMocks && cfg.GoogleAICfg.APIKey == "" {
		return fmt.Errorf("GOOGLE_AI_API_KEY must be set unless ENABLE_MOCKS is true")
	}

	if cfg.ChatCfg.ChunkSize < 1 {
		return fmt.Errorf("CHAT_CHUNK_SIZE must be positive, got %d", cfg.ChatCfg.ChunkSize)
	}

	if cfg.ChatCfg.ChunkOverlap < 0 || cfg.ChatCfg.ChunkOverlap >= cfg.ChatCfg.ChunkSize {
		return fmt.Errorf("CHAT_CHUNK_OVERLAP must be between 0 and CHAT_CHUNK_SIZE(%d), got %d",
			cfg.ChatCfg.ChunkSize, cfg.ChatCfg.ChunkOverlap)
	}

	if cfg.ChatCfg.TopK < 1 || cfg.ChatCfg.TopK > 50 {
		return fmt.Errorf("CHAT_TOP_K must be between 1 and 50, got %d", cfg.ChatCfg.TopK)
	}

	if cfg.ChatCfg.MemoryWindow < 1 || cfg.ChatCfg.MemoryWindow > 100 {
		return fmt.Errorf("CHAT_MEMORY_WINDOW must be between 1 and 100, got %d", cfg.ChatCfg.MemoryWindow)
	}

	if cfg.FileUploadCfg.MaxFileSize < 1 {
		return fmt.Errorf("FILE_UPLOAD_MAX_FILE_SIZE must be positive, got %d", cfg.FileUploadCfg.MaxFileSize)
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
