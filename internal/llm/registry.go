package llm

import (
	"fmt"

	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"schema-designer-backend/internal/config"
)

// New creates the client for cfg.LLMProvider.
func New(cfg *config.Config) (*Client, error) {
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key not set. Set OPENAI_API_KEY or choose another LLM_PROVIDER")
		}
		opts := []openai.Option{
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.OpenAIModel),
		}
		if cfg.OpenAIBaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.OpenAIBaseURL))
		}
		model, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("could not create OpenAI client: %w", err)
		}
		return NewClient(config.ProviderOpenAI, model, cfg.LLMTemperature), nil

	case config.ProviderOllama:
		model, err := ollama.New(
			ollama.WithServerURL(cfg.OllamaHost),
			ollama.WithModel(cfg.OllamaModel),
		)
		if err != nil {
			return nil, fmt.Errorf("could not create Ollama client: %w", err)
		}
		return NewClient(config.ProviderOllama, model, cfg.LLMTemperature), nil

	case config.ProviderPlaceholder, "":
		return NewClient(config.ProviderPlaceholder, NewPlaceholder(), cfg.LLMTemperature), nil

	default:
		return nil, fmt.Errorf("unknown LLM provider %q. Supported: openai, ollama, placeholder", cfg.LLMProvider)
	}
}
