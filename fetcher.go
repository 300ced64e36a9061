package citetrack

import "context"

// Fetcher retrieves page content from URLs.
// Implementations may use plain HTTP or browser automation for
// JavaScript-rendered pages.
type Fetcher interface {
	// Fetch retrieves the raw HTML for the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases underlying resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// DomainLimiter rate-limits requests per domain.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain,
	// or the context is canceled.
	Wait(ctx context.Context, domain string) error
}
