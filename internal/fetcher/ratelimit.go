package fetcher

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// HostRateLimiter applies a global request rate plus a minimum gap between
// requests to the same host.
type HostRateLimiter struct {
	global    *rate.Limiter
	hostDelay time.Duration

	mu         sync.Mutex
	nextAccess map[string]time.Time
}

// NewHostRateLimiter creates a limiter. rps <= 0 disables the global limit
// and hostDelay <= 0 disables the per-host gap.
func NewHostRateLimiter(rps float64, burst int, hostDelay time.Duration) *HostRateLimiter {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &HostRateLimiter{
		global:     rate.NewLimiter(limit, max(burst, 1)),
		hostDelay:  hostDelay,
		nextAccess: make(map[string]time.Time),
	}
}

// Wait blocks until a request to host is allowed or ctx is done.
func (r *HostRateLimiter) Wait(ctx context.Context, host string) error {
	if err := r.global.Wait(ctx); err != nil {
		return err
	}
	if r.hostDelay <= 0 {
		return nil
	}

	// Reserve the slot under the lock so concurrent callers queue up.
	r.mu.Lock()
	now := time.Now()
	r.prune(now)
	slot := r.nextAccess[host]
	if slot.Before(now) {
		slot = now
	}
	r.nextAccess[host] = slot.Add(r.hostDelay)
	r.mu.Unlock()

	wait := time.Until(slot)
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// prune drops hosts whose next slot has passed; they behave exactly like
// hosts never seen. Callers hold mu.
func (r *HostRateLimiter) prune(now time.Time) {
	for host, next := range r.nextAccess {
		if !next.After(now) {
			delete(r.nextAccess, host)
		}
	}
}

// tracked returns the number of hosts with a pending slot.
func (r *HostRateLimiter) tracked() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.nextAccess)
}

// CanAccess reports whether host could be requested right now without
// waiting on its per-host gap.
func (r *HostRateLimiter) CanAccess(host string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !time.Now().Before(r.nextAccess[host])
}
