package service

import (
	"errors"
	"time"

	"github.com/phrazzld/promptlab/internal/generation"
)

// Provider call steps used as metric labels.
const (
	StepAnalysis        = "analysis"
	StepEnhancement     = "enhancement"
	StepImageGeneration = "image_generation"
	StepImageAnalysis   = "image_analysis"
)

// Outcome labels.
const (
	OutcomeSuccess         = "success"
	OutcomeError           = "error"
	OutcomeUnparseable     = "unparseable"
	OutcomeBlocked         = "blocked"
	OutcomeInvalidResponse = "invalid_response"
	OutcomeNoProvider      = "no_provider"
	OutcomeAllFailed       = "all_failed"
)

// AttemptRecorder receives one event per provider call and one per finished
// enhancement. *metrics.Collector implements it.
type AttemptRecorder interface {
	RecordProviderCall(provider, step, outcome string, duration time.Duration)
	RecordEnhancement(provider, outcome string)
}

// NopRecorder discards all events.
type NopRecorder struct{}

// RecordProviderCall implements AttemptRecorder.
func (NopRecorder) RecordProviderCall(string, string, string, time.Duration) {}

// RecordEnhancement implements AttemptRecorder.
func (NopRecorder) RecordEnhancement(string, string) {}

// outcomeOf classifies a provider call error into an outcome label.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, generation.ErrUnparseableAnalysis):
		return OutcomeUnparseable
	case errors.Is(err, generation.ErrContentBlocked):
		return OutcomeBlocked
	case errors.Is(err, generation.ErrInvalidResponse), errors.Is(err, generation.ErrNoImageReturned):
		return OutcomeInvalidResponse
	default:
		return OutcomeError
	}
}

// providerName returns the Name of v when it has one.
func providerName(v any) string {
	if named, ok := v.(interface{ Name() string }); ok {
		return named.Name()
	}
	return "unknown"
}
