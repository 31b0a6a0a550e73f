package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sedprefill/internal/trygdetid"
	"sedprefill/pkg/platform/httputil"
	"sedprefill/pkg/requestcontext"
)

// Service defines the timeline operation the transport layer needs.
type Service interface {
	Timeline(ctx context.Context, rinaCaseID, claimantPIN string) (trygdetid.Timeline, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/trygdetid/{rinaCaseID}", h.HandleTimeline)
}

// HandleTimeline handles GET /trygdetid/{rinaCaseID} requests. The optional
// claimantPin query parameter scopes the aggregation to one claimant.
func (h *Handler) HandleTimeline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rinaCaseID := chi.URLParam(r, "rinaCaseID")
	claimantPIN := r.URL.Query().Get("claimantPin")

	timeline, err := h.service.Timeline(ctx, rinaCaseID, claimantPIN)
	if err != nil {
		h.logger.ErrorContext(ctx, "timeline aggregation failed",
			"request_id", requestcontext.RequestID(ctx),
			"rina_case_id", rinaCaseID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, timeline)
}
