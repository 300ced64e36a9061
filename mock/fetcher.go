// Package mock provides hand-written mocks for the domain interfaces.
package mock

import (
	"context"

	"github.com/seaward/citetrack"
)

var _ citetrack.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of citetrack.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ citetrack.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of citetrack.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
