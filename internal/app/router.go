package app

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/pronounce/internal/config"
	"github.com/heartmarshall/pronounce/internal/transport/middleware"
	"github.com/heartmarshall/pronounce/internal/transport/rest"
)

// NewRouter builds the HTTP handler tree with the full middleware chain.
// gatherer backs the metrics endpoint when metrics are enabled.
func NewRouter(cfg *config.Config, r *Resolver, gatherer prometheus.Gatherer, limiter *middleware.RateLimiter, logger *slog.Logger) http.Handler {
	pronounce := rest.NewPronounceHandler(r.Service, cfg.Resolver.CacheMaxAge, logger)

	health := rest.NewHealthHandler(nil, BuildVersion())
	if r.Breakers != nil {
		health = rest.NewHealthHandler(r.Breakers, BuildVersion())
	}

	mux := http.NewServeMux()
	mux.Handle("GET /api/pronounce", limiter.Limit()(pronounce))
	mux.Handle("GET /.netlify/functions/pronounce", limiter.Limit()(pronounce))
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)
	if cfg.Metrics.Enabled() {
		mux.Handle("GET "+cfg.Metrics.Path, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	)(mux)
}
