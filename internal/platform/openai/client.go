package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	oai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"github.com/phrazzld/promptlab/internal/config"
	"github.com/phrazzld/promptlab/internal/generation"
)

// ProviderName is the provider name reported to callers.
const ProviderName = "OpenAI"

// Client implements generation.TextGenerator using chat completions.
type Client struct {
	logger      *slog.Logger
	sdk         oai.Client
	model       string
	temperature float64
}

// Option customizes a Client.
type Option func(*[]option.RequestOption)

// WithHTTPClient sets the HTTP client used by the SDK.
func WithHTTPClient(hc *http.Client) Option {
	return func(opts *[]option.RequestOption) {
		*opts = append(*opts, option.WithHTTPClient(hc))
	}
}

// NewClient creates an OpenAI client from cfg.
func NewClient(logger *slog.Logger, cfg config.LLMConfig, opts ...Option) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.OpenAIModel == "" {
		return nil, fmt.Errorf("%w: openai model cannot be empty", generation.ErrInvalidConfig)
	}

	requestOpts := []option.RequestOption{
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithMaxRetries(0),
	}
	if cfg.OpenAIBaseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(cfg.OpenAIBaseURL))
	}
	for _, opt := range opts {
		opt(&requestOpts)
	}

	return &Client{
		logger:      logger.With("component", "openai_client"),
		sdk:         oai.NewClient(requestOpts...),
		model:       cfg.OpenAIModel,
		temperature: cfg.OpenAITemperature,
	}, nil
}

// Name returns ProviderName.
func (c *Client) Name() string {
	return ProviderName
}

// Generate sends req.System as the system message and req.User as the user
// message, returning the content of the first choice.
func (c *Client) Generate(ctx context.Context, req generation.Request) (string, error) {
	if strings.TrimSpace(req.User) == "" {
		return "", fmt.Errorf("%w: request content cannot be empty", generation.ErrInvalidConfig)
	}

	messages := make([]oai.ChatCompletionMessageParamUnion, 0, 2)
	if req.System != "" {
		messages = append(messages, oai.SystemMessage(req.System))
	}
	messages = append(messages, oai.UserMessage(req.User))

	c.logger.DebugContext(ctx, "Making OpenAI API call", "model", c.model)

	resp, err := c.sdk.Chat.Completions.New(ctx, oai.ChatCompletionNewParams{
		Model:       shared.ChatModel(c.model),
		Messages:    messages,
		Temperature: oai.Float(c.temperature),
	})
	if err != nil {
		return "", translateError(err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", generation.ErrInvalidResponse)
	}

	choice := resp.Choices[0]
	if choice.FinishReason == "content_filter" {
		return "", fmt.Errorf("%w: finish reason content_filter", generation.ErrContentBlocked)
	}
	if strings.TrimSpace(choice.Message.Content) == "" {
		if choice.Message.Refusal != "" {
			return "", fmt.Errorf("%w: model refused: %s", generation.ErrContentBlocked, choice.Message.Refusal)
		}
		return "", fmt.Errorf("%w: response contained no text", generation.ErrInvalidResponse)
	}

	c.logger.DebugContext(ctx, "OpenAI API call successful",
		"model", c.model,
		"finish_reason", choice.FinishReason)
	return choice.Message.Content, nil
}

// translateError wraps SDK errors with generation.ErrProviderCallFailed. The
// API's own error message is kept, matching what callers are shown when every
// provider fails.
func translateError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", generation.ErrProviderCallFailed, err)
	}
	var apiErr *oai.Error
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.StatusCode)
		}
		return fmt.Errorf("%w: openai API error (status %d): %s",
			generation.ErrProviderCallFailed, apiErr.StatusCode, msg)
	}
	return fmt.Errorf("%w: %v", generation.ErrProviderCallFailed, err)
}
