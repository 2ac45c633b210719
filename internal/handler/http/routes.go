package http

import (
	"net/http"

	"github.com/beezetrack/beezetrack-server/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Get("/health", h.health)

	// uploaded package images are public by their stored name
	uploads := http.StripPrefix(store.PublicUploadsPrefix+"/", http.FileServer(http.Dir(h.uploadsDir)))
	router.Get(store.PublicUploadsPrefix+"/*", uploads.ServeHTTP)

	router.Route("/api/auth", func(r chi.Router) {
		// routes without authorization
		r.Post("/register", h.register)
		r.Post("/login", h.login)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/me", h.me)
			r.Put("/profile", h.updateProfile)
			r.Put("/password", h.updatePassword)
		})
	})

	router.Route("/api/deliveries", func(r chi.Router) {
		// public lookup by tracking number
		r.Post("/track", h.track)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Post("/", h.createDelivery)
			r.Get("/", h.listDeliveries)
			r.Get("/statistics", h.statistics)
			r.Get("/{deliveryID}", h.getDelivery)
			r.Put("/{deliveryID}/status", h.updateStatus)
			r.Post("/{deliveryID}/image", h.uploadImage)
		})
	})

	return router
}
