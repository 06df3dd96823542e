package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/promptlab/internal/api/shared"
	"github.com/phrazzld/promptlab/internal/domain"
	"github.com/phrazzld/promptlab/internal/platform/logger"
)

// TextEnhancer produces an analysis and rewrite for a prompt.
// *service.EnhancementOrchestrator implements it.
type TextEnhancer interface {
	Enhance(ctx context.Context, prompt string) (*domain.Enhancement, error)
}

// TextHandler handles prompt enhancement requests.
type TextHandler struct {
	enhancer TextEnhancer
	logger   *slog.Logger
}

// NewTextHandler creates a new TextHandler
func NewTextHandler(enhancer TextEnhancer, logger *slog.Logger) *TextHandler {
	if enhancer == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("enhancer cannot be nil for TextHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TextHandler")
	}

	return &TextHandler{
		enhancer: enhancer,
		logger:   logger.With(slog.String("component", "text_handler")),
	}
}

// Enhance handles POST /api/text/enhance requests.
func (h *TextHandler) Enhance(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)

	var req EnhanceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		if shared.IsBodyTooLarge(err) {
			HandleAPIError(w, r, err, "")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequest, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgPromptRequired, err)
		return
	}

	log.Debug("enhancing prompt", slog.Int("prompt_length", len(req.Prompt)))

	result, err := h.enhancer.Enhance(r.Context(), req.Prompt)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("prompt enhanced", slog.String("provider", result.Provider))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

func (h *TextHandler) requestLogger(r *http.Request) *slog.Logger {
	if l, ok := logger.FromContext(r.Context()); ok {
		return l.With(slog.String("component", "text_handler"))
	}
	return h.logger
}
