package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/pronounce/internal/config"
)

func limitedHandler(t *testing.T, perMinute int) (*RateLimiter, http.Handler) {
	t.Helper()
	rl := NewRateLimiter(config.RateLimitConfig{RequestsPerMinute: perMinute, CleanupInterval: time.Minute})
	t.Cleanup(rl.Stop)
	return rl, rl.Limit()(okHandler)
}

func hit(h http.Handler, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/pronounce?word=alma", nil)
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	t.Parallel()

	_, h := limitedHandler(t, 10)

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, hit(h, "1.2.3.4:1234").Code, "request %d should be allowed", i)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	t.Parallel()

	_, h := limitedHandler(t, 5)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(h, "1.2.3.4:1234").Code)
	}

	rec := hit(h, "1.2.3.4:9999")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "13", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())
}

func TestRateLimiter_DifferentIPsIndependent(t *testing.T) {
	t.Parallel()

	_, h := limitedHandler(t, 1)

	assert.Equal(t, http.StatusOK, hit(h, "1.1.1.1:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "1.1.1.1:2").Code)
	assert.Equal(t, http.StatusOK, hit(h, "2.2.2.2:1").Code)
}

func TestRateLimiter_Disabled(t *testing.T) {
	t.Parallel()

	_, h := limitedHandler(t, 0)

	for i := 0; i < 100; i++ {
		assert.Equal(t, http.StatusOK, hit(h, "1.2.3.4:1234").Code)
	}
}

func TestBucket_Refill(t *testing.T) {
	t.Parallel()

	now := time.Now()
	b := &bucket{tokens: 0, maxTokens: 60, refillRate: 1, lastRefill: now}

	assert.False(t, b.allow(now))
	assert.True(t, b.allow(now.Add(1500*time.Millisecond)))
	assert.False(t, b.allow(now.Add(1600*time.Millisecond)))
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	t.Parallel()

	rl, h := limitedHandler(t, 10)
	hit(h, "1.2.3.4:1234")

	rl.evictIdle(time.Now())
	_, ok := rl.buckets.Load("1.2.3.4")
	assert.True(t, ok, "fresh bucket must survive")

	rl.evictIdle(time.Now().Add(3 * time.Minute))
	_, ok = rl.buckets.Load("1.2.3.4")
	assert.False(t, ok, "idle bucket must be evicted")
}
