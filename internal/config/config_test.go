package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/pronounce/internal/domain"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  shutdown_timeout: "5s"

log:
  level: "debug"
  format: "text"

rate_limit:
  requests_per_minute: 30

resolver:
  sources: "huwiktionary=https://hu.wiktionary.org, enwiktionary=https://en.wiktionary.org/"
  shared_repo_name: "commons"
  shared_repo_url: "https://commons.wikimedia.org"
  request_timeout: "3s"
  cache_max_age: "12h"

breaker:
  failure_threshold: 3
  open_timeout: "10s"

metrics:
  disabled: true
`

func TestLoad_ValidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 30, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, 3*time.Second, cfg.Resolver.RequestTimeout)
	assert.Equal(t, 12*time.Hour, cfg.Resolver.CacheMaxAge)
	assert.Equal(t, uint32(3), cfg.Breaker.FailureThreshold)
	assert.False(t, cfg.Metrics.Enabled())
	assert.True(t, cfg.Breaker.Enabled())

	assert.Equal(t, []domain.ReferenceSource{
		{Name: "huwiktionary", BaseURL: "https://hu.wiktionary.org"},
		{Name: "enwiktionary", BaseURL: "https://en.wiktionary.org"},
	}, cfg.Resolver.Sources)
	assert.Equal(t, domain.ReferenceSource{Name: "commons", BaseURL: "https://commons.wikimedia.org"},
		cfg.Resolver.SharedRepository())
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("RESOLVER_SOURCES", "enwiktionary=https://en.wiktionary.org")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	require.Len(t, cfg.Resolver.Sources, 1)
	assert.Equal(t, "enwiktionary", cfg.Resolver.Sources[0].Name)
}

func TestLoad_YAMLDisablesBreaker(t *testing.T) {
	path := writeYAML(t, t.TempDir(), `
resolver:
  sources: "huwiktionary=https://hu.wiktionary.org"

breaker:
  disabled: true

metrics:
  disabled: true
`)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Breaker.Enabled())
	assert.False(t, cfg.Metrics.Enabled())
}

func TestLoad_ENVDisablesMetrics(t *testing.T) {
	path := writeYAML(t, t.TempDir(), `
resolver:
  sources: "huwiktionary=https://hu.wiktionary.org"
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("METRICS_DISABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Metrics.Enabled())
	assert.True(t, cfg.Breaker.Enabled())
}

func TestLoadFile_EmptyPathUsesConfigPath(t *testing.T) {
	path := writeYAML(t, t.TempDir(), `
resolver:
  sources: "xx=https://xx.example.org"
`)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, []domain.ReferenceSource{{Name: "xx", BaseURL: "https://xx.example.org"}},
		cfg.Resolver.Sources)
}

func TestLoadFile_EmptyPathMissingConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := LoadFile("")
	require.Error(t, err)
}

func TestLoad_NoFile_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "/w/api.php", cfg.Resolver.APIPath)
	assert.Equal(t, 24*time.Hour, cfg.Resolver.CacheMaxAge)
	require.Len(t, cfg.Resolver.Sources, 2)
	assert.Equal(t, "huwiktionary", cfg.Resolver.Sources[0].Name)
	assert.Equal(t, "enwiktionary", cfg.Resolver.Sources[1].Name)
	assert.Equal(t, "commons", cfg.Resolver.SharedRepoName)
}

func TestLoadFile_ExplicitPathNotFound(t *testing.T) {
	_, err := LoadFile("/nonexistent/config.yaml")
	require.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "negative rate limit", mutate: func(c *Config) { c.RateLimit.RequestsPerMinute = -1 }, wantErr: true},
		{name: "rate limit disabled", mutate: func(c *Config) { c.RateLimit.RequestsPerMinute = 0 }},
		{name: "no sources", mutate: func(c *Config) { c.Resolver.SourcesRaw = " " }, wantErr: true},
		{name: "bad source url", mutate: func(c *Config) { c.Resolver.SourcesRaw = "x=ftp://host" }, wantErr: true},
		{name: "empty shared repo name", mutate: func(c *Config) { c.Resolver.SharedRepoName = "" }, wantErr: true},
		{name: "bad shared repo url", mutate: func(c *Config) { c.Resolver.SharedRepoURL = "commons" }, wantErr: true},
		{name: "api path without slash", mutate: func(c *Config) { c.Resolver.APIPath = "w/api.php" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.Resolver.RequestTimeout = 0 }, wantErr: true},
		{name: "breaker zero threshold", mutate: func(c *Config) { c.Breaker.FailureThreshold = 0 }, wantErr: true},
		{name: "breaker disabled zero threshold", mutate: func(c *Config) {
			c.Breaker.Disabled = true
			c.Breaker.FailureThreshold = 0
		}},
		{name: "metrics path", mutate: func(c *Config) { c.Metrics.Path = "metrics" }, wantErr: true},
		{name: "metrics disabled bad path", mutate: func(c *Config) {
			c.Metrics.Disabled = true
			c.Metrics.Path = "metrics"
		}},
		{name: "shared repo name clashes with source", mutate: func(c *Config) {
			c.Resolver.SharedRepoName = "enwiktionary"
		}, wantErr: true},
		{name: "shared repo is a listed source", mutate: func(c *Config) {
			c.Resolver.SharedRepoName = "enwiktionary"
			c.Resolver.SharedRepoURL = "https://en.wiktionary.org/"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_TrimsSharedRepoURL(t *testing.T) {
	cfg := validConfig()
	cfg.Resolver.SharedRepoURL = " https://commons.wikimedia.org/ "

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "https://commons.wikimedia.org", cfg.Resolver.SharedRepository().BaseURL)
}

func TestParseSources(t *testing.T) {
	t.Run("keeps order", func(t *testing.T) {
		got, err := ParseSources("b=https://b.example,a=http://a.example/")
		require.NoError(t, err)
		assert.Equal(t, []domain.ReferenceSource{
			{Name: "b", BaseURL: "https://b.example"},
			{Name: "a", BaseURL: "http://a.example"},
		}, got)
	})

	t.Run("empty", func(t *testing.T) {
		got, err := ParseSources("")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("skips blank items", func(t *testing.T) {
		got, err := ParseSources("a=https://a.example,,")
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("missing separator", func(t *testing.T) {
		_, err := ParseSources("https://a.example")
		assert.Error(t, err)
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := ParseSources("a=https://a.example,a=https://b.example")
		assert.Error(t, err)
	})
}

// validConfig returns a Config that passes all validation checks.
func validConfig() Config {
	return Config{
		Server:    ServerConfig{Port: 8080},
		RateLimit: RateLimitConfig{RequestsPerMinute: 60},
		Resolver: ResolverConfig{
			SourcesRaw:     "huwiktionary=https://hu.wiktionary.org,enwiktionary=https://en.wiktionary.org",
			SharedRepoName: "commons",
			SharedRepoURL:  "https://commons.wikimedia.org",
			APIPath:        "/w/api.php",
			RequestTimeout: 5 * time.Second,
			CacheMaxAge:    24 * time.Hour,
		},
		Breaker: BreakerConfig{FailureThreshold: 5},
		Metrics: MetricsConfig{Path: "/metrics"},
	}
}
