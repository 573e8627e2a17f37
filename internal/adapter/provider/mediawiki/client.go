package mediawiki

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/pronounce/internal/config"
	"github.com/heartmarshall/pronounce/internal/domain"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// All errors returned by Client wrap domain.ErrUpstream.
var (
	// ErrUnexpectedStatus is returned for non-2xx responses.
	ErrUnexpectedStatus = fmt.Errorf("%w: unexpected status", domain.ErrUpstream)
	// ErrMalformedResponse is returned when the body is not valid JSON.
	ErrMalformedResponse = fmt.Errorf("%w: malformed response", domain.ErrUpstream)
	// ErrAPI is returned when the API answers with an error object.
	ErrAPI = fmt.Errorf("%w: api error", domain.ErrUpstream)
)

type upstreamRecorder interface {
	ObserveUpstream(source, kind string, code int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveUpstream(string, string, int) {}

// Client performs read-only queries against MediaWiki-style content APIs.
// One Client serves every reference source; the source is chosen per call.
type Client struct {
	apiPath    string
	userAgent  string
	timeout    time.Duration
	httpClient *http.Client
	metrics    upstreamRecorder
	log        *slog.Logger
}

// NewClient creates a Client from resolver settings. rec may be nil.
func NewClient(cfg config.ResolverConfig, rec upstreamRecorder, logger *slog.Logger) *Client {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Client{
		apiPath:    cfg.APIPath,
		userAgent:  cfg.UserAgent,
		timeout:    cfg.RequestTimeout,
		httpClient: &http.Client{},
		metrics:    rec,
		log:        logger.With("adapter", "mediawiki"),
	}
}

// Query issues a GET against the source's API endpoint with the given
// parameters plus format=json and origin=*. Each call is bounded by the
// configured request timeout in addition to ctx.
func (c *Client) Query(ctx context.Context, source domain.ReferenceSource, params url.Values) (gjson.Result, error) {
	kind := params.Get("prop")

	q := make(url.Values, len(params)+2)
	for k, v := range params {
		q[k] = v
	}
	q.Set("format", "json")
	q.Set("origin", "*")

	reqURL := source.BaseURL + c.apiPath + "?" + q.Encode()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("mediawiki: create request: %w: %w", domain.ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Api-User-Agent", c.userAgent)
	}

	c.log.DebugContext(ctx, "mediawiki request",
		slog.String("source", source.Name),
		slog.String("prop", kind),
		slog.String("titles", params.Get("titles")),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(source.Name, kind, 0)
		return gjson.Result{}, fmt.Errorf("mediawiki: %s: %w: request failed: %w", source.Name, domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	c.metrics.ObserveUpstream(source.Name, kind, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return gjson.Result{}, fmt.Errorf("mediawiki: %s: %w %d", source.Name, ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("mediawiki: %s: %w: read body: %w", source.Name, domain.ErrUpstream, err)
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("mediawiki: %s: %w", source.Name, ErrMalformedResponse)
	}

	result := gjson.ParseBytes(body)
	if apiErr := result.Get("error"); apiErr.Exists() {
		return gjson.Result{}, fmt.Errorf("mediawiki: %s: %w: %s: %s",
			source.Name, ErrAPI, apiErr.Get("code").String(), apiErr.Get("info").String())
	}

	return result, nil
}

// singlePage returns the one entry of query.pages. The collection is keyed
// by a page id that is not known in advance (negative for missing pages),
// so the first entry is taken regardless of its key. formatversion=2
// responses carry an array instead and are handled the same way.
func singlePage(result gjson.Result) (gjson.Result, bool) {
	pages := result.Get("query.pages")
	if !pages.IsObject() && !pages.IsArray() {
		return gjson.Result{}, false
	}

	var page gjson.Result
	found := false
	pages.ForEach(func(_, value gjson.Result) bool {
		page = value
		found = true
		return false
	})
	return page, found
}

// isMissing reports whether a page entry describes a page that does not exist.
func isMissing(page gjson.Result) bool {
	return page.Get("missing").Exists() || page.Get("invalid").Exists()
}
