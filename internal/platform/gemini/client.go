package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/promptlab/internal/config"
	"github.com/phrazzld/promptlab/internal/generation"
	"google.golang.org/genai"
)

// ProviderName is the provider name reported to callers.
const ProviderName = "Gemini"

// contentGenerator is the part of the genai SDK the client depends on.
// *genai.Models satisfies it.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Client calls the Gemini API for text generation, image generation and
// image analysis.
type Client struct {
	logger *slog.Logger
	models contentGenerator

	textModel   string
	imageModel  string
	visionModel string
}

// Option customizes a Client.
type Option func(*genai.ClientConfig)

// WithHTTPClient sets the HTTP client used by the SDK.
func WithHTTPClient(hc *http.Client) Option {
	return func(cc *genai.ClientConfig) {
		cc.HTTPClient = hc
	}
}

// WithBaseURL points the SDK at a different API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(cc *genai.ClientConfig) {
		cc.HTTPOptions.BaseURL = baseURL
	}
}

// NewClient creates a Gemini client from cfg. The API key and model names
// must be set.
func NewClient(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig, opts ...Option) (*Client, error) {
	if err := validateConfig(logger, cfg); err != nil {
		return nil, err
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(clientConfig)
	}

	sdk, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newClient(logger, cfg, sdk.Models), nil
}

func newClient(logger *slog.Logger, cfg config.LLMConfig, models contentGenerator) *Client {
	return &Client{
		logger:      logger.With("component", "gemini_client"),
		models:      models,
		textModel:   cfg.GeminiModel,
		imageModel:  cfg.GeminiImageModel,
		visionModel: cfg.GeminiVisionModel,
	}
}

func validateConfig(logger *slog.Logger, cfg config.LLMConfig) error {
	if logger == nil {
		return errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.GeminiModel == "" {
		return fmt.Errorf("%w: gemini model cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.GeminiImageModel == "" {
		return fmt.Errorf("%w: gemini image model cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.GeminiVisionModel == "" {
		return fmt.Errorf("%w: gemini vision model cannot be empty", generation.ErrInvalidConfig)
	}
	return nil
}

// call performs one GenerateContent request and checks the response for the
// failure shapes shared by every operation.
func (c *Client) call(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	cfg *genai.GenerateContentConfig,
) (*genai.Candidate, error) {
	c.logger.DebugContext(ctx, "Making Gemini API call", "model", model)

	resp, err := c.models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return nil, translateError(err)
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" &&
		resp.PromptFeedback.BlockReason != genai.BlockedReasonUnspecified {
		return nil, fmt.Errorf("%w: prompt blocked: %s", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, fmt.Errorf("%w: no candidates in response", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if isSafetyFinish(candidate.FinishReason) {
		return nil, fmt.Errorf("%w: finish reason %s", generation.ErrContentBlocked, candidate.FinishReason)
	}
	if candidate.Content == nil {
		return nil, fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	c.logger.DebugContext(ctx, "Gemini API call successful",
		"model", model,
		"parts", len(candidate.Content.Parts))
	return candidate, nil
}

func isSafetyFinish(reason genai.FinishReason) bool {
	switch reason {
	case genai.FinishReasonSafety,
		genai.FinishReasonBlocklist,
		genai.FinishReasonProhibitedContent,
		genai.FinishReasonImageSafety:
		return true
	default:
		return false
	}
}

// translateError wraps SDK errors with generation.ErrProviderCallFailed,
// keeping the HTTP status when the API reported one.
func translateError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", generation.ErrProviderCallFailed, err)
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: gemini API error (status %d): %s",
			generation.ErrProviderCallFailed, apiErr.Code, apiErr.Message)
	}
	return fmt.Errorf("%w: %v", generation.ErrProviderCallFailed, err)
}

// candidateText concatenates the non-thought text parts of a candidate.
func candidateText(candidate *genai.Candidate) string {
	var text string
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		text += part.Text
	}
	return text
}
