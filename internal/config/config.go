package config

import (
	"time"

	"github.com/heartmarshall/pronounce/internal/domain"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Resolver  ResolverConfig  `yaml:"resolver"`
	Breaker   BreakerConfig   `yaml:"breaker"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP request limits for the HTTP surface.
// A zero RequestsPerMinute disables limiting.
type RateLimitConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATE_LIMIT_RPM"     env-default:"120"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP" env-default:"5m"`
}

// ResolverConfig holds the reference sources and upstream request settings.
type ResolverConfig struct {
	// SourcesRaw is an ordered, comma-separated list of name=baseURL pairs.
	// Earlier sources are tried first.
	SourcesRaw     string        `yaml:"sources"          env:"RESOLVER_SOURCES"          env-default:"huwiktionary=https://hu.wiktionary.org,enwiktionary=https://en.wiktionary.org"`
	SharedRepoName string        `yaml:"shared_repo_name" env:"RESOLVER_SHARED_REPO_NAME" env-default:"commons"`
	SharedRepoURL  string        `yaml:"shared_repo_url"  env:"RESOLVER_SHARED_REPO_URL"  env-default:"https://commons.wikimedia.org"`
	APIPath        string        `yaml:"api_path"         env:"RESOLVER_API_PATH"         env-default:"/w/api.php"`
	UserAgent      string        `yaml:"user_agent"       env:"RESOLVER_USER_AGENT"       env-default:"magyar-notes/1.0 (pronunciation-audio)"`
	RequestTimeout time.Duration `yaml:"request_timeout"  env:"RESOLVER_REQUEST_TIMEOUT"  env-default:"8s"`
	CacheMaxAge    time.Duration `yaml:"cache_max_age"    env:"RESOLVER_CACHE_MAX_AGE"    env-default:"24h"`

	// Sources is parsed from SourcesRaw during validation.
	Sources []domain.ReferenceSource `yaml:"-" env:"-"`
}

// SharedRepository returns the federated media repository consulted when
// the originating source cannot resolve a file.
func (c ResolverConfig) SharedRepository() domain.ReferenceSource {
	return domain.ReferenceSource{Name: c.SharedRepoName, BaseURL: c.SharedRepoURL}
}

// BreakerConfig holds per-host circuit breaker settings. Breakers are on
// unless Disabled is set.
type BreakerConfig struct {
	Disabled         bool          `yaml:"disabled"          env:"BREAKER_DISABLED"`
	FailureThreshold uint32        `yaml:"failure_threshold" env:"BREAKER_FAILURE_THRESHOLD" env-default:"5"`
	OpenTimeout      time.Duration `yaml:"open_timeout"      env:"BREAKER_OPEN_TIMEOUT"      env-default:"30s"`
	HalfOpenRequests uint32        `yaml:"half_open_requests" env:"BREAKER_HALF_OPEN_REQUESTS" env-default:"1"`
}

// MetricsConfig holds Prometheus exposition settings. The endpoint is
// served unless Disabled is set.
type MetricsConfig struct {
	Disabled bool   `yaml:"disabled" env:"METRICS_DISABLED"`
	Path     string `yaml:"path"     env:"METRICS_PATH"     env-default:"/metrics"`
}

// Enabled reports whether circuit breaking is on.
func (c BreakerConfig) Enabled() bool { return !c.Disabled }

// Enabled reports whether the metrics endpoint is served.
func (c MetricsConfig) Enabled() bool { return !c.Disabled }
