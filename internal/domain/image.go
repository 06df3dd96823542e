package domain

import (
	"encoding/base64"
	"strings"
)

// DefaultImageMIMEType is used for inline image data that arrives without a
// MIME type.
const DefaultImageMIMEType = "image/png"

// GeneratedImage is the result of an image generation call. Image holds
// either a provider-hosted URI or a data URL built from inline bytes.
type GeneratedImage struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Image  string `json:"image"`
}

// ImageInput is an image submitted for analysis.
type ImageInput struct {
	Data     []byte
	MIMEType string
}

// NewImageInputFromBase64 decodes a base64 payload into an ImageInput.
// A data URL prefix ("data:image/png;base64,") is tolerated and stripped.
func NewImageInputFromBase64(encoded, mimeType string) (*ImageInput, error) {
	if strings.TrimSpace(mimeType) == "" {
		return nil, NewValidationError("mimeType", "is required", ErrInvalidImage)
	}

	payload := strings.TrimSpace(encoded)
	if i := strings.Index(payload, ";base64,"); i >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[i+len(";base64,"):]
	}
	if payload == "" {
		return nil, NewValidationError("base64Image", "is required", ErrInvalidImage)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, NewValidationError("base64Image", "is not valid base64", ErrInvalidImage)
	}

	return &ImageInput{Data: data, MIMEType: mimeType}, nil
}

// DataURL renders inline image bytes as a data URL.
func DataURL(data []byte, mimeType string) string {
	if mimeType == "" {
		mimeType = DefaultImageMIMEType
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
