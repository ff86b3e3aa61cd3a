// AngelaMos | 2026
// ratelimit_test.go

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableRedis forces the limiter onto its in-process fallback.
func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()

	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestRateLimiterFallsBackLocally(t *testing.T) {
	rl := NewRateLimiter(unreachableRedis(t), RateLimitConfig{
		Limit:   PerMinute(1, 1),
		KeyFunc: KeyByIPAndEndpoint,
	})
	h := rl.Handler(okHandler)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
	req.RemoteAddr = "10.0.0.1:5555"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "RATE_LIMITED")

	other := httptest.NewRequest(http.MethodPost, "/v1/auth/register", nil)
	other.RemoteAddr = "10.0.0.1:5555"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBucketSetRefillsAndSweeps(t *testing.T) {
	s := newBucketSet(PerMinute(60, 2))
	start := time.Date(2024, time.July, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, s.take("a", start).Allowed)
	assert.Equal(t, 1, s.take("a", start).Allowed)

	denied := s.take("a", start)
	assert.Equal(t, 0, denied.Allowed)
	assert.Equal(t, time.Second, denied.RetryAfter)

	assert.Equal(t, 1, s.take("a", start.Add(time.Second)).Allowed)
	assert.Equal(t, 1, s.take("b", start).Allowed)

	s.take("c", start.Add(time.Hour))
	assert.Len(t, s.buckets, 1)
}

func TestKeyFuncs(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/assets/E100", nil)
	req.RemoteAddr = "192.0.2.1:4000"
	assert.Equal(t, "ratelimit:ip:192.0.2.1", KeyByIP(req))
	assert.Equal(t, "ratelimit:ip:192.0.2.1:endpoint:/v1/assets/{employeeID}", KeyByIPAndEndpoint(req))

	req.Header.Set("X-Real-IP", "203.0.113.5")
	assert.Equal(t, "ratelimit:ip:203.0.113.5", KeyByIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 198.51.100.7")
	assert.Equal(t, "ratelimit:ip:198.51.100.7", KeyByIP(req))

	reports := httptest.NewRequest(http.MethodGet, "/v1/reports/active", nil)
	reports.RemoteAddr = "192.0.2.1:4000"
	assert.Equal(t, "ratelimit:ip:192.0.2.1:endpoint:/v1/reports/{kind}", KeyByIPAndEndpoint(reports))
}
