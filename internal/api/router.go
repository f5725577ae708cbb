package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter creates and configures the HTTP router
func NewRouter(h *Handler, allowedOrigins []string, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(NewCORS(allowedOrigins).Handler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/system/health", h.Health)
		r.Post("/compare", h.Compare)
		r.Post("/breakeven", h.BreakEven)

		r.Route("/bundles", func(r chi.Router) {
			r.Get("/", h.ListBundles)
			r.Post("/", h.CreateBundle)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(ValidateIDMiddleware)
				r.Get("/", h.GetBundle)
				r.Delete("/", h.DeleteBundle)
				r.Post("/compare", h.CompareBundle)
			})
		})
	})

	return r
}
