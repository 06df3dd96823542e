package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/promptlab/internal/domain"
	"github.com/phrazzld/promptlab/internal/generation"
	"github.com/phrazzld/promptlab/internal/redact"
)

// NoTextReturned is the analysis result reported when the model answers
// without any text.
const NoTextReturned = "No text returned"

// ImageService generates images from prompts and describes uploaded images.
// Either provider may be nil when it is not configured; the matching
// operation then fails with generation.ErrImageProviderUnavailable.
type ImageService struct {
	generator   generation.ImageGenerator
	analyzer    generation.ImageAnalyzer
	instruction string
	logger      *slog.Logger
	recorder    AttemptRecorder
}

// NewImageService creates an ImageService. instruction is the fixed text sent
// with every image analysis request.
func NewImageService(
	logger *slog.Logger,
	recorder AttemptRecorder,
	generator generation.ImageGenerator,
	analyzer generation.ImageAnalyzer,
	instruction string,
) (*ImageService, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if analyzer != nil && strings.TrimSpace(instruction) == "" {
		return nil, fmt.Errorf("%w: image analysis instruction cannot be empty", generation.ErrInvalidConfig)
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}

	return &ImageService{
		generator:   generator,
		analyzer:    analyzer,
		instruction: instruction,
		logger:      logger.With("component", "image_service"),
		recorder:    recorder,
	}, nil
}

// GenerateImage produces an image for prompt.
func (s *ImageService) GenerateImage(ctx context.Context, prompt string) (*domain.GeneratedImage, error) {
	if err := domain.ValidatePrompt(prompt); err != nil {
		return nil, err
	}
	if s.generator == nil {
		return nil, generation.ErrImageProviderUnavailable
	}

	name := providerName(s.generator)
	start := time.Now()
	image, err := s.generator.GenerateImage(ctx, prompt)
	s.recorder.RecordProviderCall(name, StepImageGeneration, outcomeOf(err), time.Since(start))
	if err != nil {
		s.logger.ErrorContext(ctx, "Image generation failed",
			"provider", name,
			"error", redact.Error(err))
		return nil, newServiceError("image", "generate", err)
	}

	s.logger.InfoContext(ctx, "Image generated", "provider", name, "model", image.Model)
	return image, nil
}

// AnalyzeImage returns a generation prompt describing image. When the model
// returns no text the result is NoTextReturned.
func (s *ImageService) AnalyzeImage(ctx context.Context, image domain.ImageInput) (string, error) {
	if len(image.Data) == 0 {
		return "", domain.NewValidationError("base64Image", "is required", domain.ErrInvalidImage)
	}
	if s.analyzer == nil {
		return "", generation.ErrImageProviderUnavailable
	}

	name := providerName(s.analyzer)
	start := time.Now()
	text, err := s.analyzer.AnalyzeImage(ctx, s.instruction, image)
	s.recorder.RecordProviderCall(name, StepImageAnalysis, outcomeOf(err), time.Since(start))
	if err != nil {
		s.logger.ErrorContext(ctx, "Image analysis failed",
			"provider", name,
			"error", redact.Error(err))
		return "", newServiceError("image", "analyze", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		s.logger.WarnContext(ctx, "Image analysis returned no text", "provider", name)
		return NoTextReturned, nil
	}
	return text, nil
}
