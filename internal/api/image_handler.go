package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/promptlab/internal/api/shared"
	"github.com/phrazzld/promptlab/internal/domain"
	"github.com/phrazzld/promptlab/internal/platform/logger"
)

// ImageProcessor generates images and turns uploaded images into prompts.
// *service.ImageService implements it.
type ImageProcessor interface {
	GenerateImage(ctx context.Context, prompt string) (*domain.GeneratedImage, error)
	AnalyzeImage(ctx context.Context, image domain.ImageInput) (string, error)
}

// ImageHandler handles image generation and analysis requests.
type ImageHandler struct {
	images ImageProcessor
	logger *slog.Logger
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(images ImageProcessor, logger *slog.Logger) *ImageHandler {
	if images == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("image processor cannot be nil for ImageHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ImageHandler")
	}

	return &ImageHandler{
		images: images,
		logger: logger.With(slog.String("component", "image_handler")),
	}
}

// GenerateImage handles POST /api/image/generate requests.
func (h *ImageHandler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)

	var req GenerateImageRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		if shared.IsBodyTooLarge(err) {
			HandleAPIError(w, r, err, "")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgPromptRequired, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgPromptRequired, err)
		return
	}

	image, err := h.images.GenerateImage(r.Context(), req.Prompt)
	if err != nil {
		HandleAPIError(w, r, err, MsgGenerateFailed)
		return
	}

	log.Debug("image generated", slog.String("model", image.Model))
	shared.RespondWithJSON(w, r, http.StatusOK, GenerateImageResponse{
		Status: StatusImageGenerated,
		Model:  image.Model,
		Prompt: req.Prompt,
		Image:  image.Image,
	})
}

// AnalyzeImage handles POST /api/image/analyze requests.
func (h *ImageHandler) AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)

	var req AnalyzeImageRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		if shared.IsBodyTooLarge(err) {
			HandleAPIError(w, r, err, "")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidAnalyzeInput, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidAnalyzeInput, err)
		return
	}

	input, err := domain.NewImageInputFromBase64(req.FormData.Base64Image, req.FormData.MIMEType)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("analyzing image",
		slog.String("mime_type", input.MIMEType),
		slog.Int("bytes", len(input.Data)))

	result, err := h.images.AnalyzeImage(r.Context(), *input)
	if err != nil {
		HandleAPIError(w, r, err, MsgAnalyzeFailed)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AnalyzeImageResponse{Result: result})
}

func (h *ImageHandler) requestLogger(r *http.Request) *slog.Logger {
	if l, ok := logger.FromContext(r.Context()); ok {
		return l.With(slog.String("component", "image_handler"))
	}
	return h.logger
}
