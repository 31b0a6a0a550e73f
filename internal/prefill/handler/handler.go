package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"sedprefill/internal/krav"
	"sedprefill/internal/models"
	"sedprefill/pkg/domain"
	"sedprefill/pkg/platform/httputil"
	"sedprefill/pkg/requestcontext"
)

// Service defines the prefill operations the transport layer needs.
type Service interface {
	DispatchAndPrefill(ctx context.Context, pc models.PrefillContext) (*models.SED, error)
	ClaimFacts(ctx context.Context, rinaCaseID, documentID, sakNummer string) (krav.Utland, error)
}

// Handler wires prefill endpoints to the prefill service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a prefill handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts prefill endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/sed/prefill", h.HandlePrefill)
	r.Get("/krav/{rinaCaseID}/{documentID}", h.HandleClaimFacts)
}

// PrefillRequest is the wire form of one prefill invocation.
// PartialPayloads carries caller-validated field data that replaces the
// computed value for its key ("nav", "pensjon", "adresse").
type PrefillRequest struct {
	SedType         string                     `json:"sedType"`
	BucType         string                     `json:"bucType"`
	ClaimantPIN     string                     `json:"claimantPIN"`
	SakNummer       string                     `json:"sakNummer"`
	RinaCaseID      string                     `json:"rinaCaseID"`
	AvdodPIN        string                     `json:"avdodPIN,omitempty"`
	VedtakID        string                     `json:"vedtakID,omitempty"`
	SkipKeys        []string                   `json:"skipKeys,omitempty"`
	PartialPayloads map[string]json.RawMessage `json:"partialPayloads,omitempty"`
}

// HandlePrefill handles POST /sed/prefill requests.
func (h *Handler) HandlePrefill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeJSON[PrefillRequest](w, r)
	if !ok {
		return
	}

	sedType, err := domain.ParseSedType(req.SedType)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	bucType, err := domain.ParseBucType(req.BucType)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	opts := []models.ContextOption{models.WithSkipKeys(req.SkipKeys...)}
	if req.AvdodPIN != "" {
		opts = append(opts, models.WithAvdod(req.AvdodPIN))
	}
	if req.VedtakID != "" {
		opts = append(opts, models.WithVedtakID(req.VedtakID))
	}
	for key, raw := range req.PartialPayloads {
		opts = append(opts, models.WithPartial(key, raw))
	}
	pc, err := models.NewPrefillContext(req.ClaimantPIN, req.SakNummer, req.RinaCaseID, sedType, bucType, opts...)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	sed, err := h.service.DispatchAndPrefill(ctx, pc)
	if err != nil {
		h.logger.ErrorContext(ctx, "prefill failed",
			"request_id", requestID,
			"sed_type", req.SedType,
			"rina_case_id", req.RinaCaseID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "prefill completed",
		"request_id", requestID,
		"sed_type", req.SedType,
		"rina_case_id", req.RinaCaseID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, sed)
}

// HandleClaimFacts handles GET /krav/{rinaCaseID}/{documentID} requests.
// sakNummer comes as an optional query parameter; without it the deferral
// seed is skipped.
func (h *Handler) HandleClaimFacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rinaCaseID := chi.URLParam(r, "rinaCaseID")
	documentID := chi.URLParam(r, "documentID")
	sakNummer := r.URL.Query().Get("sakNummer")

	facts, err := h.service.ClaimFacts(ctx, rinaCaseID, documentID, sakNummer)
	if err != nil {
		h.logger.ErrorContext(ctx, "claim facts failed",
			"request_id", requestcontext.RequestID(ctx),
			"rina_case_id", rinaCaseID,
			"document_id", documentID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, facts)
}
