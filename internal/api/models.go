package api

// EnhanceRequest is the body of POST /api/text/enhance.
type EnhanceRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// GenerateImageRequest is the body of POST /api/image/generate.
type GenerateImageRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// GenerateImageResponse is returned by POST /api/image/generate.
type GenerateImageResponse struct {
	Status string `json:"status"`
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Image  string `json:"image"`
}

// AnalyzeImageRequest is the body of POST /api/image/analyze. The nesting
// under formData matches what the frontend posts.
type AnalyzeImageRequest struct {
	FormData AnalyzeImageForm `json:"formData"`
}

// AnalyzeImageForm carries the uploaded image. Type must be "analyze".
type AnalyzeImageForm struct {
	Type        string `json:"type"        validate:"required,eq=analyze"`
	Base64Image string `json:"base64Image" validate:"required"`
	MIMEType    string `json:"mimeType"    validate:"required"`
}

// AnalyzeImageResponse is returned by POST /api/image/analyze.
type AnalyzeImageResponse struct {
	Result string `json:"result"`
}

// StatusImageGenerated is the status reported with every generated image.
const StatusImageGenerated = "Image generated successfully"
