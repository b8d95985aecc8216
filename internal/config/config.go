package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"schema-designer-backend/internal/models"
)

// Store backends selectable through STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite3"
	BackendSupabase = "supabase"
)

// LLM providers selectable through LLM_PROVIDER.
const (
	ProviderOpenAI      = "openai"
	ProviderOllama      = "ollama"
	ProviderPlaceholder = "placeholder"
)

type Config struct {
	// Server
	Port           string        `env:"PORT" envDefault:"5000"`
	Environment    string        `env:"ENVIRONMENT" envDefault:"development"`
	BaseURL        string        `env:"BASE_URL" envDefault:"http://localhost:5000"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	ChatTimeout    time.Duration `env:"CHAT_TIMEOUT" envDefault:"5m"`

	// Text generation
	LLMProvider    string  `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey   string  `env:"OPENAI_API_KEY"`
	OpenAIModel    string  `env:"OPENAI_MODEL" envDefault:"gpt-4o"`
	OpenAIBaseURL  string  `env:"OPENAI_BASE_URL"`
	OllamaHost     string  `env:"OLLAMA_HOST" envDefault:"http://localhost:11434"`
	OllamaModel    string  `env:"OLLAMA_MODEL" envDefault:"llama3"`
	LLMTemperature float64 `env:"LLM_TEMPERATURE" envDefault:"0.7"`

	// Conversation
	GenerationThreshold int    `env:"GENERATION_THRESHOLD" envDefault:"3"`
	DefaultSchemaType   string `env:"DEFAULT_SCHEMA_TYPE" envDefault:"NoSQL"`

	// Persistence
	StoreBackend string `env:"STORE_BACKEND"`
	DatabaseURL  string `env:"DATABASE_URL"`
	PostgresURL  string `env:"POSTGRES_URL"`

	// Supabase
	SupabaseURL           string `env:"SUPABASE_URL"`
	SupabaseKey           string `env:"SUPABASE_KEY"`
	SupabaseStorageBucket string `env:"SUPABASE_STORAGE_BUCKET" envDefault:"schemas"`
}

// Load reads a .env file when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("no .env file found, using environment variables only")
		} else {
			slog.Warn("error loading .env file", "error", err)
		}
	}
	return Parse()
}

// Parse reads the configuration from the environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = cfg.PostgresURL
	}
	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.LLMProvider {
	case ProviderOpenAI, ProviderOllama, ProviderPlaceholder:
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q (supported: openai, ollama, placeholder)", c.LLMProvider)
	}
	if c.GenerationThreshold < 1 {
		return fmt.Errorf("GENERATION_THRESHOLD must be at least 1, got %d", c.GenerationThreshold)
	}
	if c.ChatTimeout <= 0 {
		return fmt.Errorf("CHAT_TIMEOUT must be positive, got %s", c.ChatTimeout)
	}
	if _, err := models.ParseSchemaType(c.DefaultSchemaType); err != nil {
		return fmt.Errorf("DEFAULT_SCHEMA_TYPE: %w", err)
	}

	switch c.Backend() {
	case BackendMemory:
	case BackendPostgres, BackendSQLite:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for STORE_BACKEND=%s", c.Backend())
		}
	case BackendSupabase:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_KEY are required for STORE_BACKEND=supabase")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (supported: memory, postgres, sqlite3, supabase)", c.StoreBackend)
	}

	if c.LLMProvider == ProviderOpenAI && c.OpenAIAPIKey == "" {
		slog.Warn("OPENAI_API_KEY is not set, chat requests will fail until it is configured")
	}
	if c.Backend() == BackendMemory {
		slog.Warn("no durable backend configured, projects are kept in memory only")
	}
	return nil
}

// Backend resolves STORE_BACKEND, inferring postgres from a database URL when unset.
func (c *Config) Backend() string {
	if c.StoreBackend != "" {
		return c.StoreBackend
	}
	if c.DatabaseURL != "" {
		return BackendPostgres
	}
	return BackendMemory
}

func (c *Config) SchemaType() models.SchemaType {
	t, err := models.ParseSchemaType(c.DefaultSchemaType)
	if err != nil {
		return models.SchemaTypeNoSQL
	}
	return t
}

// ArchiveEnabled reports whether schemas are mirrored to Supabase Storage.
func (c *Config) ArchiveEnabled() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != "" && c.SupabaseStorageBucket != ""
}
