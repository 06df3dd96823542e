package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/promptlab/internal/config"
	"github.com/phrazzld/promptlab/internal/generation"
	"github.com/phrazzld/promptlab/internal/metrics"
	"github.com/phrazzld/promptlab/internal/platform/gemini"
	"github.com/phrazzld/promptlab/internal/platform/openai"
	"github.com/phrazzld/promptlab/internal/service"
)

// application holds the shared application dependencies.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	metrics *metrics.Collector

	enhancer *service.EnhancementOrchestrator
	images   *service.ImageService
}

// newApplication wires provider clients, services and metrics from cfg.
// A provider is created only when its API key is configured; Gemini is tried
// before OpenAI. geminiOpts are passed to the Gemini client.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	geminiOpts ...gemini.Option,
) (*application, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	catalog, err := generation.LoadPromptCatalog(cfg.LLM.PromptsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt catalog: %w", err)
	}

	collector := metrics.NewCollector(metrics.DefaultNamespace)

	var (
		strategies []service.Strategy
		imageGen   generation.ImageGenerator
		analyzer   generation.ImageAnalyzer
	)

	if cfg.LLM.GeminiEnabled() {
		client, err := gemini.NewClient(ctx, logger, cfg.LLM, geminiOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		strategy, err := newStrategy(catalog, generation.PromptSetGemini, client)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, strategy)
		imageGen, analyzer = client, client
	} else {
		logger.Warn("GEMINI_API_KEY not set; Gemini text enhancement and image endpoints are disabled")
	}

	if cfg.LLM.OpenAIEnabled() {
		client, err := openai.NewClient(logger, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
		}
		strategy, err := newStrategy(catalog, generation.PromptSetOpenAI, client)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, strategy)
	} else {
		logger.Warn("OPENAI_API_KEY not set; OpenAI fallback is disabled")
	}

	enhancer, err := service.NewEnhancementOrchestrator(logger, collector, strategies...)
	if err != nil {
		return nil, fmt.Errorf("failed to create enhancement orchestrator: %w", err)
	}

	images, err := service.NewImageService(logger, collector, imageGen, analyzer, catalog.ImageAnalysisInstruction())
	if err != nil {
		return nil, fmt.Errorf("failed to create image service: %w", err)
	}

	logger.Info("Text enhancement providers configured", "providers", enhancer.Providers())

	return &application{
		config:   cfg,
		logger:   logger,
		metrics:  collector,
		enhancer: enhancer,
		images:   images,
	}, nil
}

// newStrategy pairs gen with the named prompt set from catalog.
func newStrategy(catalog *generation.PromptCatalog, set string, gen generation.TextGenerator) (service.Strategy, error) {
	prompts, err := catalog.Set(set)
	if err != nil {
		return service.Strategy{}, fmt.Errorf("failed to load %s prompts: %w", gen.Name(), err)
	}
	return service.Strategy{Generator: gen, Prompts: prompts}, nil
}
