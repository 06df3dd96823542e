package generation

import (
	"context"

	"github.com/phrazzld/promptlab/internal/domain"
)

// Request is a single provider call. System carries the instruction that
// chat-style providers send in the system role; User carries the content.
// Providers without a system role receive System as a system instruction
// when it is non-empty.
type Request struct {
	System string
	User   string
}

// TextGenerator is implemented by every provider client that can take part
// in prompt enhancement. Implementations perform exactly one outbound call per
// Generate invocation and never retry on their own.
type TextGenerator interface {
	// Name returns the provider name reported to callers (e.g. "Gemini").
	Name() string

	// Generate sends req to the provider and returns the raw response text.
	// Network and API errors are wrapped with ErrProviderCallFailed.
	Generate(ctx context.Context, req Request) (string, error)
}

// ImageGenerator produces an image from a text prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (*domain.GeneratedImage, error)
}

// ImageAnalyzer describes an image according to instruction.
type ImageAnalyzer interface {
	AnalyzeImage(ctx context.Context, instruction string, image domain.ImageInput) (string, error)
}
