package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/paveup/paveup/internal/config"
)

// NewRouter creates a new HTTP router with all routes configured.
func NewRouter(cfg *config.Config, handler *Handler) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health check (not rate limited)
		r.Get("/health", handler.HealthCheck)

		r.Group(func(r chi.Router) {
			r.Use(RateLimitMiddleware(cfg.RateLimits.RequestsPerMinute))

			// Reference data
			r.Get("/authorities", handler.ListAuthorities)
			r.Get("/authorities/{key}", handler.GetAuthority)
			r.Get("/categories", handler.ListCategories)

			// Report flow
			r.Post("/classify", handler.ClassifyImage)
			r.Post("/reports", handler.SubmitReport)
			r.Post("/geocode/reverse", handler.ReverseGeocode)
		})
	})

	// Landing page listing the endpoints
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>PaveUp - Civic Issue Reporting</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 800px; margin: 50px auto; padding: 20px; }
        h1 { color: #2563eb; }
        code { background: #f1f5f9; padding: 2px 6px; border-radius: 4px; }
        .endpoint { margin: 10px 0; }
    </style>
</head>
<body>
    <h1>PaveUp API</h1>
    <p>Civic issue reporting API is running. Use the API endpoints below:</p>

    <h2>Endpoints</h2>
    <div class="endpoint"><code>GET /api/v1/health</code> - Health check</div>
    <div class="endpoint"><code>GET /api/v1/authorities</code> - List government authorities</div>
    <div class="endpoint"><code>GET /api/v1/authorities/{key}</code> - Get one authority</div>
    <div class="endpoint"><code>GET /api/v1/categories</code> - List issue categories with routing</div>
    <div class="endpoint"><code>POST /api/v1/classify</code> - Analyze an uploaded photo (multipart, field "photo")</div>
    <div class="endpoint"><code>POST /api/v1/reports</code> - Submit a report</div>
    <div class="endpoint"><code>POST /api/v1/geocode/reverse</code> - Reverse geocode coordinates</div>
</body>
</html>`))
	})

	return r
}
