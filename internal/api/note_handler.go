package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/degen-journal/internal/api/shared"
	"github.com/phrazzld/degen-journal/internal/domain"
	"github.com/phrazzld/degen-journal/internal/platform/logger"
)

// NoteSummary is a note without its content.
type NoteSummary struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category,omitempty"`
	Subcategory string   `json:"subcategory,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Progress    int        `json:"progress"`
	LastViewed  *time.Time `json:"last_viewed,omitempty"`
	Read        bool       `json:"read"`
}

// NoteResponse is a full note with its resolved connections. Progress is
// the tracked value when one was recorded.
type NoteResponse struct {
	domain.Note
	LastViewed *time.Time    `json:"last_viewed,omitempty"`
	Read       bool          `json:"read"`
	Related    []NoteSummary `json:"related"`
}

// NoteProgressRequest is the body of PUT /api/notes/{id}/progress.
type NoteProgressRequest struct {
	Progress *int `json:"progress" validate:"required,min=0,max=100"`
}

// NoteProgressResponse is the recorded progress of one note.
type NoteProgressResponse struct {
	NoteID string `json:"note_id"`
	domain.NoteProgress
}

// noteState is the reader's state across all notes.
type noteState struct {
	read     map[string]bool
	progress map[string]domain.NoteProgress
}

func (h *Handler) noteState() noteState {
	st := noteState{read: make(map[string]bool), progress: h.journal.NotesProgress()}
	for _, id := range h.journal.Progress().NotesRead {
		st.read[id] = true
	}
	return st
}

// progressOf returns the tracked progress of n, falling back to the
// frontmatter value.
func (st noteState) progressOf(n domain.Note) (int, *time.Time) {
	np, ok := st.progress[n.ID]
	if !ok {
		return n.Progress, nil
	}
	viewed := np.LastViewed
	return np.Progress, &viewed
}

func summarize(n domain.Note, st noteState) NoteSummary {
	pct, viewed := st.progressOf(n)
	return NoteSummary{
		ID:          n.ID,
		Title:       n.Title,
		Category:    n.Category,
		Subcategory: n.Subcategory,
		Tags:        n.Tags,
		Progress:    pct,
		LastViewed:  viewed,
		Read:        st.read[n.ID],
	}
}

// ListNotes handles GET /api/notes, optionally filtered by ?category=.
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	st := h.noteState()
	list := h.notes.List(r.URL.Query().Get("category"))
	out := make([]NoteSummary, 0, len(list))
	for _, n := range list {
		out = append(out, summarize(n, st))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// GetNote handles GET /api/notes/{id}.
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	n, err := h.notes.Get(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	related, err := h.notes.Related(id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	st := h.noteState()
	resp := NoteResponse{Note: n, Read: st.read[n.ID], Related: make([]NoteSummary, 0, len(related))}
	resp.Progress, resp.LastViewed = st.progressOf(n)
	for _, rel := range related {
		resp.Related = append(resp.Related, summarize(rel, st))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// ReadNote handles POST /api/notes/{id}/read.
func (h *Handler) ReadNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id := chi.URLParam(r, "id")
	if _, err := h.notes.Get(id); err != nil {
		respondError(w, r, err)
		return
	}
	out, err := h.journal.ReadNote(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Debug("note read", slog.String("note_id", id), slog.Bool("first_read", out.XPGained > 0))
	shared.RespondWithJSON(w, r, http.StatusOK, CommandResponse{Outcome: out, Progress: h.journal.Progress()})
}

// UpdateNoteProgress handles PUT /api/notes/{id}/progress.
func (h *Handler) UpdateNoteProgress(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.notes.Get(id); err != nil {
		respondError(w, r, err)
		return
	}

	var req NoteProgressRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	np, _, err := h.journal.UpdateNoteProgress(r.Context(), id, *req.Progress)
	if err != nil {
		respondError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NoteProgressResponse{NoteID: id, NoteProgress: np})
}

// ListNoteCards handles GET /api/notes/{id}/cards.
func (h *Handler) ListNoteCards(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.notes.Get(id); err != nil {
		respondError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, nonNil(h.journal.CardsByNote(id)))
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
