package fetch

import (
	"context"
	"sync"

	"github.com/seaward/citetrack"
	"golang.org/x/time/rate"
)

var _ citetrack.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter enforces a per-domain request rate using token buckets.
// Each domain gets its own limiter, so requests to different domains
// proceed concurrently while any single domain sees at most rps
// requests per second.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// NewDomainLimiter returns a limiter allowing rps requests per second
// per domain with a burst of 1. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    1,
	}
}

// Wait blocks until the domain's rate limit admits a request, or the
// context is canceled.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if d.rps <= 0 {
		return ctx.Err()
	}

	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), d.burst)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
