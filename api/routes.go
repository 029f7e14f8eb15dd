package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type rateLimits struct {
	login   *RateLimiter
	contact *RateLimiter
}

func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware, limits rateLimits) {
	r.Get("/health", handlers.healthHandler.health())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		setupPublicRoutes(r, handlers, limits)

		r.Route("/admin", func(r chi.Router) {
			r.Use(authMiddleware.authenticate)
			setupAdminRoutes(r, handlers)
		})
	})
}

// setupPublicRoutes sets up the routes the public site reads, plus contact and login
func setupPublicRoutes(r chi.Router, handlers *routeHandlers, limits rateLimits) {
	for _, collection := range collections {
		h := handlers.publicCollections[collection]
		r.Get("/"+collection, h.list())
		r.Get("/"+collection+"/{id}", h.get())
	}

	r.With(limits.contact.Limit).Post("/contact", handlers.contactHandler.submit())

	r.Route("/auth", func(r chi.Router) {
		r.With(limits.login.Limit).Post("/login", handlers.authHandler.login())
		r.Post("/logout", handlers.authHandler.logout())
		r.Get("/session", handlers.authHandler.session())
	})
}

// setupAdminRoutes sets up all routes behind the admin session
func setupAdminRoutes(r chi.Router, handlers *routeHandlers) {
	for _, collection := range collections {
		h := handlers.adminCollections[collection]
		r.Route("/"+collection, func(r chi.Router) {
			r.Get("/", h.list())
			r.Post("/", h.create())
			r.Post("/reorder", h.reorder())
			r.Get("/{id}", h.get())
			r.Put("/{id}", h.update())
			r.Delete("/{id}", h.delete())
		})
	}

	r.Get("/queries", handlers.queryHandler.getAllQueries())
	r.Put("/queries/{id}", handlers.queryHandler.updateQueryStatus())
	r.Delete("/queries/{id}", handlers.queryHandler.deleteQuery())

	r.Get("/summary", handlers.adminHandler.summary())
	r.Post("/uploads", handlers.adminHandler.upload())
}
