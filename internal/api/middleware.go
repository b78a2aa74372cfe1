package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/VoidMesh/tilegen/internal/logging"
)

// maxBodyBytes caps request bodies; generation requests are a few hundred bytes.
const maxBodyBytes = 1 << 20

func SetupMiddleware(logger logging.LoggerInterface, timeout time.Duration) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// Request ID for tracing
		middleware.RequestID,

		// Logging middleware
		RequestLogger(logger),

		// Recovery middleware
		middleware.Recoverer,

		// CORS middleware for public API
		cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Run-ID", "X-Seed"},
			AllowCredentials: false,
			MaxAge:           300,
		}),

		middleware.RequestSize(maxBodyBytes),

		// Timeout middleware
		middleware.Timeout(timeout),
	}
}

// RequestLogger logs one line per request through the application logger.
func RequestLogger(logger logging.LoggerInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// RunLimitMiddleware bounds concurrent generation runs, queueing a backlog of
// twice the limit for up to a minute.
func RunLimitMiddleware(concurrent int) func(http.Handler) http.Handler {
	return middleware.ThrottleBacklog(concurrent, concurrent*2, time.Minute)
}
