package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/degen-journal/internal/api/shared"
	"github.com/phrazzld/degen-journal/internal/domain"
	"github.com/phrazzld/degen-journal/internal/journal"
)

// SkillResponse carries a skill after a command.
type SkillResponse struct {
	Skill   domain.SkillNode `json:"skill"`
	Outcome journal.Outcome  `json:"outcome"`
}

// ListSkills handles GET /api/skills.
func (h *Handler) ListSkills(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.journal.Skills())
}

// StartSkill handles POST /api/skills/{id}/start.
func (h *Handler) StartSkill(w http.ResponseWriter, r *http.Request) {
	node, out, err := h.journal.StartSkill(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, SkillResponse{Skill: node, Outcome: out})
}

// CompleteSkill handles POST /api/skills/{id}/complete.
func (h *Handler) CompleteSkill(w http.ResponseWriter, r *http.Request) {
	node, out, err := h.journal.CompleteSkill(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, SkillResponse{Skill: node, Outcome: out})
}
