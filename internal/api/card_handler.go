package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/degen-journal/internal/api/shared"
	"github.com/phrazzld/degen-journal/internal/domain"
	"github.com/phrazzld/degen-journal/internal/journal"
	"github.com/phrazzld/degen-journal/internal/platform/logger"
)

// ReviewRequest is the body of POST /api/cards/{id}/review.
type ReviewRequest struct {
	Quality *int `json:"quality" validate:"required,min=0,max=5"`
}

// ReviewResponse carries the rescheduled card.
type ReviewResponse struct {
	Card    *domain.Flashcard `json:"card"`
	Outcome journal.Outcome   `json:"outcome"`
}

// ListDueCards handles GET /api/cards/due.
func (h *Handler) ListDueCards(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, nonNil(h.journal.DueCards()))
}

// ReviewCard handles POST /api/cards/{id}/review.
func (h *Handler) ReviewCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := pathUUID(w, r)
	if !ok {
		return
	}
	var req ReviewRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	card, out, err := h.journal.ReviewCard(r.Context(), id, *req.Quality)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Debug("card reviewed",
		slog.String("card_id", id.String()),
		slog.Int("quality", *req.Quality),
		slog.Int("interval", card.Interval))
	shared.RespondWithJSON(w, r, http.StatusOK, ReviewResponse{Card: card, Outcome: out})
}
