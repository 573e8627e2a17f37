// Package breaker wraps a content-API provider with one circuit breaker per
// reference source, so a failing host is skipped quickly instead of being
// queried for every variant of every word.
package breaker

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/sony/gobreaker"

	"github.com/heartmarshall/pronounce/internal/config"
	"github.com/heartmarshall/pronounce/internal/domain"
	"github.com/heartmarshall/pronounce/internal/provider"
)

type mediaProvider interface {
	PageMedia(ctx context.Context, source domain.ReferenceSource, title string) (*provider.PageMedia, error)
	FileInfo(ctx context.Context, source domain.ReferenceSource, fileTitle string) (*provider.FileInfo, error)
}

type transitionRecorder interface {
	ObserveBreakerTransition(source, to string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveBreakerTransition(string, string) {}

// SourceState is the breaker state of one reference source.
type SourceState struct {
	Source string
	State  string
}

// Provider decorates a mediaProvider with per-source circuit breakers.
// Open breakers fail fast with gobreaker.ErrOpenState; callers treat that
// like any other upstream failure.
type Provider struct {
	next     mediaProvider
	cfg      config.BreakerConfig
	metrics  transitionRecorder
	log      *slog.Logger
	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

// New creates a Provider. Breakers for known are created eagerly so they
// show up in health output before first use; others are created on demand.
func New(next mediaProvider, cfg config.BreakerConfig, known []domain.ReferenceSource, rec transitionRecorder, logger *slog.Logger) *Provider {
	if rec == nil {
		rec = nopRecorder{}
	}
	p := &Provider{
		next:     next,
		cfg:      cfg,
		metrics:  rec,
		log:      logger.With("adapter", "breaker"),
		breakers: make(map[string]*gobreaker.CircuitBreaker, len(known)),
	}
	for _, s := range known {
		p.breaker(s.Name)
	}
	return p
}

// PageMedia runs the wrapped PageMedia call through the source's breaker.
func (p *Provider) PageMedia(ctx context.Context, source domain.ReferenceSource, title string) (*provider.PageMedia, error) {
	res, err := p.breaker(source.Name).Execute(func() (interface{}, error) {
		return p.next.PageMedia(ctx, source, title)
	})
	if err != nil {
		return nil, err
	}
	return res.(*provider.PageMedia), nil
}

// FileInfo runs the wrapped FileInfo call through the source's breaker.
func (p *Provider) FileInfo(ctx context.Context, source domain.ReferenceSource, fileTitle string) (*provider.FileInfo, error) {
	res, err := p.breaker(source.Name).Execute(func() (interface{}, error) {
		return p.next.FileInfo(ctx, source, fileTitle)
	})
	if err != nil {
		return nil, err
	}
	return res.(*provider.FileInfo), nil
}

// States returns the current breaker state of every known source, sorted by name.
func (p *Provider) States() []SourceState {
	p.mu.Lock()
	defer p.mu.Unlock()

	states := make([]SourceState, 0, len(p.breakers))
	for name, cb := range p.breakers {
		states = append(states, SourceState{Source: name, State: cb.State().String()})
	}
	sort.Slice(states, func(i, j int) bool { return states[i].Source < states[j].Source })
	return states
}

func (p *Provider) breaker(name string) *gobreaker.CircuitBreaker {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cb, ok := p.breakers[name]; ok {
		return cb
	}

	threshold := p.cfg.FailureThreshold
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: p.cfg.HalfOpenRequests,
		Timeout:     p.cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// A caller giving up says nothing about the host.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			p.log.Warn("circuit breaker state change",
				slog.String("source", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			p.metrics.ObserveBreakerTransition(name, to.String())
		},
	})
	p.breakers[name] = cb
	return cb
}
