package api

import (
	"net/http"

	"github.com/phrazzld/degen-journal/internal/api/shared"
)

// XPRequest is the body of POST /api/xp.
type XPRequest struct {
	Amount int    `json:"amount" validate:"gt=0,lte=100000"`
	Reason string `json:"reason" validate:"max=200"`
}

// GetProgress handles GET /api/progress.
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.journal.Progress())
}

// CheckIn handles POST /api/checkin.
func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	out, err := h.journal.CheckIn(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, CommandResponse{Outcome: out, Progress: h.journal.Progress()})
}

// AddXP handles POST /api/xp.
func (h *Handler) AddXP(w http.ResponseWriter, r *http.Request) {
	var req XPRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	out, err := h.journal.AddXP(r.Context(), req.Amount, req.Reason)
	if err != nil {
		respondError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, CommandResponse{Outcome: out, Progress: h.journal.Progress()})
}

// ListAchievements handles GET /api/achievements.
func (h *Handler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.journal.Achievements())
}
