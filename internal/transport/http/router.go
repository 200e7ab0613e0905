package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Routes assembles the API router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/session/login", h.login)
		r.Post("/session/logout", h.logout)

		r.Get("/view", h.viewState)
		r.Post("/view/navigate", h.navigate)

		r.Get("/discover/current", h.currentCandidate)
		r.Post("/discover/like", h.like)
		r.Post("/discover/pass", h.pass)

		r.Get("/matches", h.matches)
		r.Post("/matches/{matchID}/open", h.openChat)

		r.Post("/chat/back", h.back)
		r.Get("/chat/{matchID}/messages", h.history)
		r.Post("/chat/{matchID}/messages", h.sendMessage)

		r.Post("/reports", h.fileReport)
		r.Get("/admin/reports", h.listReports)
		r.Post("/admin/reports/{reportID}/resolve", h.resolveReport)
		r.Post("/admin/ban", h.ban)

		r.Post("/assist/icebreakers", h.icebreakers)
		r.Post("/assist/advice", h.advice)
		r.Post("/assist/compatibility", h.compatibility)

		r.Post("/celebration/dismiss", h.dismissCelebration)

		r.Get("/profile", h.getProfile)
		r.Put("/profile", h.updateProfile)
		r.Post("/onboarding/complete", h.completeOnboarding)
	})

	return r
}
