package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/promptlab/internal/domain"
	"github.com/phrazzld/promptlab/internal/generation"
	"github.com/phrazzld/promptlab/internal/platform/logger"
	"github.com/phrazzld/promptlab/internal/redact"
)

// Strategy pairs a provider with the prompts written for it.
type Strategy struct {
	Generator generation.TextGenerator
	Prompts   *generation.PromptSet
}

// enhancementState tracks the progress of one Enhance call.
type enhancementState int

const (
	stateNotStarted enhancementState = iota
	stateAttempting
	stateSucceeded
	stateExhaustedFailed
)

func (s enhancementState) String() string {
	switch s {
	case stateNotStarted:
		return "not_started"
	case stateAttempting:
		return "attempting"
	case stateSucceeded:
		return "succeeded"
	case stateExhaustedFailed:
		return "exhausted_failed"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// attemptOutcome is the result of running both steps against one provider.
// Exactly one of enhancement and err is set.
type attemptOutcome struct {
	enhancement *domain.Enhancement
	err         error
}

// EnhancementOrchestrator turns a raw prompt into an analysis and an
// image-ready rewrite, trying providers in order until one completes both
// steps. It holds no per-request state and is safe for concurrent use.
type EnhancementOrchestrator struct {
	strategies []Strategy
	logger     *slog.Logger
	recorder   AttemptRecorder
}

// NewEnhancementOrchestrator creates an orchestrator over strategies, in
// priority order. An empty list is allowed; Enhance then fails with
// generation.ErrNoProviderAvailable. A nil recorder discards metrics.
func NewEnhancementOrchestrator(
	logger *slog.Logger,
	recorder AttemptRecorder,
	strategies ...Strategy,
) (*EnhancementOrchestrator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	for i, s := range strategies {
		if s.Generator == nil {
			return nil, fmt.Errorf("%w: strategy %d has no generator", generation.ErrInvalidConfig, i)
		}
		if s.Prompts == nil {
			return nil, fmt.Errorf("%w: strategy %d (%s) has no prompts",
				generation.ErrInvalidConfig, i, s.Generator.Name())
		}
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}

	return &EnhancementOrchestrator{
		strategies: append([]Strategy(nil), strategies...),
		logger:     logger.With("component", "enhancement_orchestrator"),
		recorder:   recorder,
	}, nil
}

// Providers returns the provider names in attempt order.
func (o *EnhancementOrchestrator) Providers() []string {
	names := make([]string, len(o.strategies))
	for i, s := range o.strategies {
		names[i] = s.Generator.Name()
	}
	return names
}

// Enhance analyzes prompt and rewrites it for image generation.
//
// Providers are tried in order. For each, the analysis response is stripped
// of code fences and parsed; the enhancement request then embeds the prompt
// and the analysis fields. The first provider to complete both steps wins and
// nothing from earlier failed attempts is returned. When every provider
// fails the error wraps generation.ErrAllProvidersFailed and the last
// provider error.
func (o *EnhancementOrchestrator) Enhance(ctx context.Context, prompt string) (*domain.Enhancement, error) {
	if err := domain.ValidatePrompt(prompt); err != nil {
		return nil, err
	}

	log := o.requestLogger(ctx)

	if len(o.strategies) == 0 {
		log.WarnContext(ctx, "No text enhancement providers configured")
		o.recorder.RecordEnhancement("", OutcomeNoProvider)
		return nil, generation.ErrNoProviderAvailable
	}

	state := stateNotStarted
	log.DebugContext(ctx, "Enhancement started",
		"state", state.String(),
		"providers", len(o.strategies),
		"prompt_length", len(prompt))

	var lastErr error
	var lastProvider string

	for i, strategy := range o.strategies {
		if err := ctx.Err(); err != nil {
			log.WarnContext(ctx, "Enhancement aborted", "state", state.String(), "error", err)
			return nil, fmt.Errorf("enhancement aborted: %w", err)
		}

		name := strategy.Generator.Name()
		state = stateAttempting
		log.InfoContext(ctx, "Trying provider for text enhancement",
			"state", state.String(),
			"attempt", i+1,
			"provider", name)

		outcome := o.attempt(ctx, strategy, prompt)
		if outcome.err == nil {
			state = stateSucceeded
			log.InfoContext(ctx, "Prompt enhanced",
				"state", state.String(),
				"provider", name,
				"enhanced_length", len(outcome.enhancement.Enhanced))
			o.recorder.RecordEnhancement(name, OutcomeSuccess)
			return outcome.enhancement, nil
		}

		lastErr, lastProvider = outcome.err, name
		log.WarnContext(ctx, "Provider failed, falling back",
			"state", state.String(),
			"attempt", i+1,
			"provider", name,
			"error", redact.Error(outcome.err))
	}

	state = stateExhaustedFailed
	log.ErrorContext(ctx, "All text enhancement providers failed",
		"state", state.String(),
		"last_provider", lastProvider,
		"error", redact.Error(lastErr))
	o.recorder.RecordEnhancement("", OutcomeAllFailed)

	return nil, fmt.Errorf("%w: %s: %w", generation.ErrAllProvidersFailed, lastProvider, lastErr)
}

// attempt runs the analysis and enhancement steps against one provider.
func (o *EnhancementOrchestrator) attempt(ctx context.Context, s Strategy, prompt string) attemptOutcome {
	name := s.Generator.Name()

	analysisReq, err := s.Prompts.AnalysisRequest(prompt)
	if err != nil {
		return attemptOutcome{err: err}
	}

	start := time.Now()
	raw, err := s.Generator.Generate(ctx, analysisReq)
	var analysis domain.AnalysisResult
	if err == nil {
		analysis, err = generation.ParseAnalysis(raw)
	}
	o.recorder.RecordProviderCall(name, StepAnalysis, outcomeOf(err), time.Since(start))
	if err != nil {
		return attemptOutcome{err: fmt.Errorf("analysis: %w", err)}
	}

	o.requestLogger(ctx).DebugContext(ctx, "Prompt analyzed",
		"provider", name,
		"tone", analysis.Tone,
		"intent", analysis.Intent,
		"has_missing_details", analysis.MissingDetails != nil)

	enhancementReq, err := s.Prompts.EnhancementRequest(prompt, analysis)
	if err != nil {
		return attemptOutcome{err: err}
	}

	start = time.Now()
	enhanced, err := s.Generator.Generate(ctx, enhancementReq)
	var result *domain.Enhancement
	if err == nil {
		result, err = domain.NewEnhancement(analysis, enhanced, name)
	}
	o.recorder.RecordProviderCall(name, StepEnhancement, outcomeOf(err), time.Since(start))
	if err != nil {
		return attemptOutcome{err: fmt.Errorf("enhancement: %w", err)}
	}

	return attemptOutcome{enhancement: result}
}

// requestLogger prefers the request-scoped logger carried in ctx.
func (o *EnhancementOrchestrator) requestLogger(ctx context.Context) *slog.Logger {
	if l, ok := logger.FromContext(ctx); ok {
		return l.With("component", "enhancement_orchestrator")
	}
	return o.logger
}
