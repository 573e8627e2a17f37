package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/heartmarshall/pronounce/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be >= 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	if err := c.Resolver.validate(); err != nil {
		return fmt.Errorf("resolver: %w", err)
	}

	if c.Breaker.Enabled() && c.Breaker.FailureThreshold == 0 {
		return fmt.Errorf("breaker.failure_threshold must be > 0 when enabled")
	}

	if c.Metrics.Enabled() && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with / (got %q)", c.Metrics.Path)
	}

	return nil
}

func (r *ResolverConfig) validate() error {
	sources, err := ParseSources(r.SourcesRaw)
	if err != nil {
		return fmt.Errorf("sources: %w", err)
	}
	if len(sources) == 0 {
		return fmt.Errorf("sources: at least one reference source is required")
	}
	r.Sources = sources

	if strings.TrimSpace(r.SharedRepoName) == "" {
		return fmt.Errorf("shared_repo_name is required")
	}
	r.SharedRepoURL = strings.TrimRight(strings.TrimSpace(r.SharedRepoURL), "/")
	if err := validateBaseURL(r.SharedRepoURL); err != nil {
		return fmt.Errorf("shared_repo_url: %w", err)
	}
	for _, s := range sources {
		if s.Name == r.SharedRepoName && s.BaseURL != r.SharedRepoURL {
			return fmt.Errorf("shared_repo_name %q names source %s with a different url", s.Name, s.BaseURL)
		}
	}
	if !strings.HasPrefix(r.APIPath, "/") {
		return fmt.Errorf("api_path must start with / (got %q)", r.APIPath)
	}
	if r.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be > 0 (got %v)", r.RequestTimeout)
	}
	if r.CacheMaxAge < 0 {
		return fmt.Errorf("cache_max_age must be >= 0 (got %v)", r.CacheMaxAge)
	}

	return nil
}

// ParseSources parses a comma-separated list of name=baseURL pairs
// (e.g. "huwiktionary=https://hu.wiktionary.org,enwiktionary=https://en.wiktionary.org")
// preserving order. Duplicate names are rejected. An empty string returns a nil slice.
func ParseSources(raw string) ([]domain.ReferenceSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	sources := make([]domain.ReferenceSource, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		name, base, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		base = strings.TrimRight(strings.TrimSpace(base), "/")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid source %q: want name=url", p)
		}
		if err := validateBaseURL(base); err != nil {
			return nil, fmt.Errorf("source %q: %w", name, err)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate source name %q", name)
		}
		seen[name] = struct{}{}
		sources = append(sources, domain.ReferenceSource{Name: name, BaseURL: base})
	}

	return sources, nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("url %q has no host", raw)
	}
	return nil
}
