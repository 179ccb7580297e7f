package crawl

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/phylotext"
	"golang.org/x/time/rate"
)

// DefaultRequestInterval is the minimum spacing between two requests to the
// same host.
const DefaultRequestInterval = 500 * time.Millisecond

var _ phylotext.HostLimiter = (*HostLimiter)(nil)

// HostLimiter spaces requests per host using token buckets with a burst of 1.
// Hosts are compared case-insensitively.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	every    rate.Limit
}

// NewHostLimiter creates a HostLimiter that allows one request per interval
// to each host. A non-positive interval disables limiting.
func NewHostLimiter(interval time.Duration) *HostLimiter {
	every := rate.Inf
	if interval > 0 {
		every = rate.Every(interval)
	}
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		every:    every,
	}
}

// Wait blocks until a request to host is allowed.
// Returns an error if the context is canceled before the wait completes.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	host = strings.ToLower(host)

	l.mu.Lock()
	limiter, ok := l.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(l.every, 1)
		l.limiters[host] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}
