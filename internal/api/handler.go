package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/phrazzld/degen-journal/internal/api/shared"
	"github.com/phrazzld/degen-journal/internal/journal"
	"github.com/phrazzld/degen-journal/internal/notes"
	"github.com/phrazzld/degen-journal/internal/platform/logger"
	"github.com/phrazzld/degen-journal/internal/redact"
)

// Handler serves the journal API.
type Handler struct {
	journal *journal.Journal
	notes   *notes.Catalog
	logger  *slog.Logger
}

// NewHandler creates a handler over j and the note catalog.
func NewHandler(j *journal.Journal, catalog *notes.Catalog, logger *slog.Logger) *Handler {
	if j == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("journal cannot be nil for Handler")
	}
	if catalog == nil {
		catalog, _ = notes.New(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		journal: j,
		notes:   catalog,
		logger:  logger.With(slog.String("component", "api")),
	}
}

// CommandResponse is returned by commands that only change progress.
type CommandResponse struct {
	Outcome  journal.Outcome      `json:"outcome"`
	Progress journal.ProgressView `json:"progress"`
}

// decodeAndValidate reads the body into req and validates it, writing a
// 400 response and returning false on failure.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if err := shared.DecodeJSON(w, r, req); err != nil {
		log.Debug("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}

// pathUUID parses the {id} URL parameter, writing a 400 response on failure.
func pathUUID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": h.journal.Version(),
	})
}
