package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// RouteOptions tune the router.
type RouteOptions struct {
	RequestTimeout time.Duration
	MaxConcurrent  int
}

func SetupRoutes(handler *Handler, opts RouteOptions) *chi.Mux {
	r := chi.NewRouter()

	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}

	// Setup middleware
	for _, middleware := range SetupMiddleware(handler.logger, opts.RequestTimeout) {
		r.Use(middleware)
	}

	// JSON content type
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// Health check endpoint
	r.Get("/health", handler.HealthCheck)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		if opts.MaxConcurrent > 0 {
			r.With(RunLimitMiddleware(opts.MaxConcurrent)).Post("/maps", handler.GenerateMap)
		} else {
			r.Post("/maps", handler.GenerateMap)
		}

		// Archive routes only exist when a store is configured
		if handler.store != nil {
			r.Get("/runs", handler.ListRuns)
			r.Get("/runs/{id}", handler.GetRun)
		}
	})

	return r
}
