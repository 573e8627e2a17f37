package app

import (
	"log/slog"
	"slices"

	"github.com/heartmarshall/pronounce/internal/adapter/provider/breaker"
	"github.com/heartmarshall/pronounce/internal/adapter/provider/mediawiki"
	"github.com/heartmarshall/pronounce/internal/config"
	"github.com/heartmarshall/pronounce/internal/metrics"
	"github.com/heartmarshall/pronounce/internal/service/pronunciation"
)

// Resolver is the assembled lookup pipeline shared by the server and the CLI.
type Resolver struct {
	Service *pronunciation.Service
	// Breakers is nil when circuit breaking is disabled.
	Breakers *breaker.Provider
}

// NewResolver wires the content-API client, the optional circuit breakers
// and the pronunciation service from cfg.
func NewResolver(cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) *Resolver {
	client := mediawiki.NewClient(cfg.Resolver, m, logger)
	shared := cfg.Resolver.SharedRepository()

	r := &Resolver{}
	svcCfg := pronunciation.Config{
		Sources:    cfg.Resolver.Sources,
		SharedRepo: shared,
	}

	if cfg.Breaker.Enabled() {
		known := append(slices.Clone(cfg.Resolver.Sources), shared)
		r.Breakers = breaker.New(client, cfg.Breaker, known, m, logger)
		r.Service = pronunciation.NewService(logger, r.Breakers, svcCfg, m)
	} else {
		r.Service = pronunciation.NewService(logger, client, svcCfg, m)
	}

	return r
}
