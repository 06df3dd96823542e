package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/phrazzld/promptlab/internal/generation"
	"google.golang.org/genai"
)

// Name returns ProviderName.
func (c *Client) Name() string {
	return ProviderName
}

// Generate sends req to the text model. req.User becomes the only content;
// a non-empty req.System is sent as the system instruction.
func (c *Client) Generate(ctx context.Context, req generation.Request) (string, error) {
	if strings.TrimSpace(req.User) == "" {
		return "", fmt.Errorf("%w: request content cannot be empty", generation.ErrInvalidConfig)
	}

	var cfg *genai.GenerateContentConfig
	if req.System != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		}
	}

	candidate, err := c.call(ctx, c.textModel, genai.Text(req.User), cfg)
	if err != nil {
		return "", err
	}

	text := candidateText(candidate)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: response contained no text", generation.ErrInvalidResponse)
	}
	return text, nil
}
