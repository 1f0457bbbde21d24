package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SergeyShmatok/postagg/internal/handler"
	mw "github.com/SergeyShmatok/postagg/shared/middleware"
	"github.com/SergeyShmatok/postagg/shared/middleware/metrics"
)

type Options struct {
	AllowedOrigins []string
	// Registry receives the HTTP metrics and backs /metrics.
	Registry *prometheus.Registry
}

// New creates the slow API router.
func New(h *handler.Handler, opts Options) http.Handler {
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(metrics.NewRecorder(opts.Registry).Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Traceparent", "Tracestate"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Use(mw.JSONAPIHeaders(false))
		r.Get("/slow/posts", h.GetPosts)
		r.Get("/slow/posts/{id}/comments", h.GetComments)
		r.Get("/authors/{id}", h.GetAuthor)
	})

	return r
}
