package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/phrazzld/promptlab/internal/domain"
	"github.com/phrazzld/promptlab/internal/generation"
	"google.golang.org/genai"
)

// analysisSafetySettings disables blocking for every adjustable harm category
// so that arbitrary user images can be described.
var analysisSafetySettings = []*genai.SafetySetting{
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockNone},
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockNone},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockNone},
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockNone},
}

// GenerateImage asks the image model for an image matching prompt. A file
// URI part is returned as soon as it is seen; otherwise the last inline
// image part is returned as a data URL.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (*domain.GeneratedImage, error) {
	if err := domain.ValidatePrompt(prompt); err != nil {
		return nil, err
	}

	candidate, err := c.call(ctx, c.imageModel, genai.Text(prompt), nil)
	if err != nil {
		return nil, err
	}

	image := extractImage(candidate)
	if image == "" {
		return nil, generation.ErrNoImageReturned
	}

	c.logger.InfoContext(ctx, "Image generated",
		"model", c.imageModel,
		"inline", strings.HasPrefix(image, "data:"))

	return &domain.GeneratedImage{
		Model:  c.imageModel,
		Prompt: prompt,
		Image:  image,
	}, nil
}

func extractImage(candidate *genai.Candidate) string {
	var image string
	for _, part := range candidate.Content.Parts {
		if part == nil {
			continue
		}
		if part.FileData != nil && part.FileData.FileURI != "" {
			return part.FileData.FileURI
		}
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			image = domain.DataURL(part.InlineData.Data, part.InlineData.MIMEType)
		}
	}
	return image
}

// AnalyzeImage sends instruction together with the inline image to the
// multimodal model and returns the trimmed response text. An empty string
// means the model answered without text.
func (c *Client) AnalyzeImage(ctx context.Context, instruction string, image domain.ImageInput) (string, error) {
	if len(image.Data) == 0 {
		return "", domain.NewValidationError("base64Image", "is required", domain.ErrInvalidImage)
	}
	if strings.TrimSpace(instruction) == "" {
		return "", fmt.Errorf("%w: analysis instruction cannot be empty", generation.ErrInvalidConfig)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(instruction),
			genai.NewPartFromBytes(image.Data, image.MIMEType),
		}, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{SafetySettings: analysisSafetySettings}

	candidate, err := c.call(ctx, c.visionModel, contents, cfg)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(candidateText(candidate)), nil
}
