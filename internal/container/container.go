package container

import (
	"fmt"
	"net/http"

	"go-coin-analyzer/internal/config"
	"go-coin-analyzer/internal/provider"
	"go-coin-analyzer/internal/repository"
	"go-coin-analyzer/internal/service"
	"go-coin-analyzer/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config          *config.Config
	recognition     provider.RecognitionProvider
	analysisService service.CoinAnalysisService
	userRepository  repository.UserRepository
	handler         http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Build dependency graph
	recognition, err := buildProvider(cfg)
	if err != nil {
		return nil, err
	}

	userRepository := repository.NewMemoryUserRepository()
	analysisService := service.NewCoinAnalysisService(recognition, cfg.ProviderTimeout)
	handler := transport.NewHandler(analysisService, cfg)

	return &Container{
		config:          cfg,
		recognition:     recognition,
		analysisService: analysisService,
		userRepository:  userRepository,
		handler:         handler,
	}, nil
}

func buildProvider(cfg *config.Config) (provider.RecognitionProvider, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return provider.NewOpenAIEngine(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBase), nil
	case config.ProviderGemini:
		return provider.NewGeminiEngine(cfg.GeminiAPIKey, cfg.GeminiModel), nil
	default:
		return nil, fmt.Errorf("unknown recognition provider: %q", cfg.Provider)
	}
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Users returns the user repository
func (c *Container) Users() repository.UserRepository {
	return c.userRepository
}
