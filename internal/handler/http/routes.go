package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/ping", h.ping)
		r.Get("/api/version/", h.getServerVersion)
	})

	router.Route("/api/collections/{collection}/documents", func(r chi.Router) {
		r.Use(h.auth)

		r.With(withGZip).Get("/", h.listDocuments)
		r.With(h.verifyHash).Put("/{id}", h.putDocument)
		r.Delete("/{id}", h.deleteDocument)
	})

	router.MethodNotAllowed(h.methodNotAllowed)

	return router
}
