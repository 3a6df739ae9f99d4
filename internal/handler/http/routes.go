package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the chi router with all routes and middleware of the REST API.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/params", h.params)
	})

	// routes behind JWT authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/salt", h.generateSalt)

		r.Post("/api/items", h.createItem)
		r.Get("/api/items", h.listItems)
		r.Get("/api/items/{id}", h.getItem)

		r.With(h.uploadHashing).Post("/api/items/{id}/chunks", h.uploadChunks)
		r.Get("/api/items/{id}/chunks", h.downloadChunks)
	})

	return router
}
