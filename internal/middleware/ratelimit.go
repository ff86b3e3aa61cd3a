// AngelaMos | 2026
// ratelimit.go

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/carterperez-dev/asset-portal/internal/core"
)

type RateLimitConfig struct {
	Limit   redis_rate.Limit
	KeyFunc func(*http.Request) string
}

// RateLimiter meters requests in redis. While redis is unreachable each
// replica meters on its own with an in-process token bucket.
type RateLimiter struct {
	shared *redis_rate.Limiter
	local  *bucketSet
	cfg    RateLimitConfig
}

func NewRateLimiter(rdb *redis.Client, cfg RateLimitConfig) *RateLimiter {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = KeyByIP
	}

	return &RateLimiter{
		shared: redis_rate.NewLimiter(rdb),
		local:  newBucketSet(cfg.Limit),
		cfg:    cfg,
	}
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res := rl.take(r.Context(), rl.cfg.KeyFunc(r))

		h := w.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(rl.cfg.Limit.Rate))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

		if res.Allowed > 0 {
			next.ServeHTTP(w, r)
			return
		}

		wait := max(int(res.RetryAfter.Seconds()), 1)
		h.Set("Retry-After", strconv.Itoa(wait))
		core.JSON(w, http.StatusTooManyRequests, core.Response{
			Success: false,
			Error: &core.ErrorBody{
				Code:    "RATE_LIMITED",
				Message: fmt.Sprintf("too many requests, retry in %ds", wait),
			},
		})
	})
}

func (rl *RateLimiter) take(ctx context.Context, key string) *redis_rate.Result {
	res, err := rl.shared.Allow(ctx, key, rl.cfg.Limit)
	if err == nil {
		return res
	}

	slog.DebugContext(ctx, "shared rate limiter unavailable, metering locally",
		"key", key,
		"error", err,
	)
	return rl.local.take(key, time.Now())
}

// KeyByIP buckets by the client address, trusting the last hop appended to
// X-Forwarded-For by the fronting proxy.
func KeyByIP(r *http.Request) string {
	ip := r.Header.Get("X-Real-IP")
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		ip = strings.TrimSpace(hops[len(hops)-1])
	}

	if ip == "" {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		ip = host
	}

	return "ratelimit:ip:" + ip
}

// KeyByIPAndEndpoint gives each route its own bucket per client, so a burst
// of failed logins does not starve the rest of the API.
func KeyByIPAndEndpoint(r *http.Request) string {
	return KeyByIP(r) + ":endpoint:" + routePattern(r.URL.Path)
}

// routePattern folds the record segment of /assets/{employeeID} and
// /reports/{kind} so every record shares one bucket.
func routePattern(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i := 1; i < len(parts); i++ {
		switch parts[i-1] {
		case "assets":
			parts[i] = "{employeeID}"
		case "reports":
			parts[i] = "{kind}"
		}
	}
	return "/" + strings.Join(parts, "/")
}

func PerMinute(rate, burst int) redis_rate.Limit {
	return redis_rate.Limit{
		Rate:   rate,
		Burst:  burst,
		Period: time.Minute,
	}
}

const idleBucketTTL = 10 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// bucketSet is the in-process fallback. Idle buckets are swept on access.
type bucketSet struct {
	mu        sync.Mutex
	limit     redis_rate.Limit
	buckets   map[string]*bucket
	lastSweep time.Time
}

func newBucketSet(limit redis_rate.Limit) *bucketSet {
	return &bucketSet{
		limit:   limit,
		buckets: make(map[string]*bucket),
	}
}

func (s *bucketSet) take(key string, now time.Time) *redis_rate.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) > idleBucketTTL {
		for k, b := range s.buckets {
			if now.Sub(b.lastSeen) > idleBucketTTL {
				delete(s.buckets, k)
			}
		}
		s.lastSweep = now
	}

	perToken := s.limit.Period / time.Duration(max(s.limit.Rate, 1))

	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rate.Every(perToken), s.limit.Burst)}
		s.buckets[key] = b
	}
	b.lastSeen = now

	res := &redis_rate.Result{Limit: s.limit, RetryAfter: -1}
	if b.limiter.AllowN(now, 1) {
		res.Allowed = 1
	} else {
		res.RetryAfter = perToken
	}
	res.Remaining = max(int(b.limiter.TokensAt(now)), 0)
	res.ResetAfter = perToken

	return res
}
