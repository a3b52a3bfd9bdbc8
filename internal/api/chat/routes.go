package chat

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers document chat routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/upload", h.Upload)

	r.Route("/session/{id}", func(r chi.Router) {
		r.Post("/chat", h.Chat)
		r.Post("/clear", h.Clear)
		r.Get("/status", h.Status)
	})
}
