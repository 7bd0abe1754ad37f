package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/degen-journal/internal/api/middleware"
)

// NewRouter wires every route to h.
func NewRouter(h *Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.NewTraceMiddleware(logger))
	r.Use(chimw.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/progress", h.GetProgress)
		r.Post("/checkin", h.CheckIn)
		r.Post("/xp", h.AddXP)
		r.Get("/achievements", h.ListAchievements)

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", h.ListNotes)
			r.Get("/{id}", h.GetNote)
			r.Post("/{id}/read", h.ReadNote)
			r.Put("/{id}/progress", h.UpdateNoteProgress)
			r.Get("/{id}/cards", h.ListNoteCards)
		})

		r.Get("/cards/due", h.ListDueCards)
		r.Post("/cards/{id}/review", h.ReviewCard)

		r.Route("/skills", func(r chi.Router) {
			r.Get("/", h.ListSkills)
			r.Post("/{id}/start", h.StartSkill)
			r.Post("/{id}/complete", h.CompleteSkill)
		})

		r.Route("/trades", func(r chi.Router) {
			r.Get("/", h.ListTrades)
			r.Post("/", h.OpenTrade)
			r.Get("/stats", h.TradeStats)
			r.Get("/{id}", h.GetTrade)
			r.Patch("/{id}", h.AnnotateTrade)
			r.Post("/{id}/close", h.CloseTrade)
		})
	})

	r.Get("/health", h.Health)
	return r
}
