// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/asset-portal/internal/core"
	"github.com/carterperez-dev/asset-portal/internal/report"
)

type LedgerTotals interface {
	Totals(ctx context.Context) (*report.Totals, error)
}

type Pinger func(ctx context.Context) error

// Sources is everything the operator view reads. Ledger is required; the
// rest are reported when present.
type Sources struct {
	Ledger     LedgerTotals
	UserCount  func(ctx context.Context) (int, error)
	DBPing     Pinger
	DBStats    func() sql.DBStats
	RedisPing  Pinger
	RedisStats func() *redis.PoolStats
	Now        func() time.Time
}

type Handler struct {
	src     Sources
	started time.Time
}

func NewHandler(src Sources) *Handler {
	if src.Now == nil {
		src.Now = time.Now
	}
	return &Handler{src: src, started: src.Now()}
}

// RegisterRoutes mounts the operator view. Any signed in user may read it;
// there are no elevated roles.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.With(authenticator).Get("/admin/stats", h.Stats)
}

// Stats reports ledger and account totals first, then the health of the
// store and cache behind them. Totals are skipped while the store is down
// so the view still renders during an outage.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp := OperatorStats{
		Store:      storeStatus(ctx, h.src.DBPing, h.src.DBStats),
		Cache:      cacheStatus(ctx, h.src.RedisPing, h.src.RedisStats),
		Uptime:     h.src.Now().Sub(h.started).Truncate(time.Second).String(),
		GoVersion:  runtime.Version(),
		Goroutines: runtime.NumGoroutine(),
	}

	if resp.Store.Reachable {
		totals, err := h.src.Ledger.Totals(ctx)
		if err != nil {
			core.JSONError(w, fmt.Errorf("operator stats: %w", err))
			return
		}
		resp.Ledger = totals

		if h.src.UserCount != nil {
			n, err := h.src.UserCount(ctx)
			if err != nil {
				core.JSONError(w, fmt.Errorf("operator stats: %w", err))
				return
			}
			resp.Accounts = &n
		}
	}

	core.OK(w, resp)
}

func reachable(ctx context.Context, ping Pinger) bool {
	return ping == nil || ping(ctx) == nil
}

func storeStatus(ctx context.Context, ping Pinger, stats func() sql.DBStats) StoreStatus {
	st := StoreStatus{Reachable: reachable(ctx, ping)}
	if stats != nil {
		s := stats()
		st.Pool = &StorePool{
			Open:         s.OpenConnections,
			InUse:        s.InUse,
			Idle:         s.Idle,
			Waits:        s.WaitCount,
			WaitDuration: s.WaitDuration.String(),
		}
	}
	return st
}

func cacheStatus(ctx context.Context, ping Pinger, stats func() *redis.PoolStats) CacheStatus {
	st := CacheStatus{Reachable: reachable(ctx, ping)}
	if stats != nil {
		if s := stats(); s != nil {
			st.Pool = &CachePool{
				Total:    s.TotalConns,
				Idle:     s.IdleConns,
				Hits:     s.Hits,
				Misses:   s.Misses,
				Timeouts: s.Timeouts,
			}
		}
	}
	return st
}

type OperatorStats struct {
	Ledger     *report.Totals `json:"ledger,omitempty"`
	Accounts   *int           `json:"registered_users,omitempty"`
	Store      StoreStatus    `json:"store"`
	Cache      CacheStatus    `json:"cache"`
	Uptime     string         `json:"uptime"`
	GoVersion  string         `json:"go_version"`
	Goroutines int            `json:"goroutines"`
}

type StoreStatus struct {
	Reachable bool       `json:"reachable"`
	Pool      *StorePool `json:"pool,omitempty"`
}

type StorePool struct {
	Open         int    `json:"open"`
	InUse        int    `json:"in_use"`
	Idle         int    `json:"idle"`
	Waits        int64  `json:"waits"`
	WaitDuration string `json:"wait_duration"`
}

type CacheStatus struct {
	Reachable bool       `json:"reachable"`
	Pool      *CachePool `json:"pool,omitempty"`
}

type CachePool struct {
	Total    uint32 `json:"total"`
	Idle     uint32 `json:"idle"`
	Hits     uint32 `json:"hits"`
	Misses   uint32 `json:"misses"`
	Timeouts uint32 `json:"timeouts"`
}
