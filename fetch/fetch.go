// Package fetch orchestrates bulk retrieval of citation URLs: fixed-size
// batches, a bounded worker pool per batch, per-domain rate limiting,
// and per-batch persistence so partial progress survives a crash.
package fetch

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/seaward/citetrack"
	"golang.org/x/sync/errgroup"
)

// PersistFunc persists one completed batch. It is called after the
// batch's pool has fully drained, so it never runs concurrently with
// fetches of the same batch.
type PersistFunc func(batch int, citations []*citetrack.Citation) error

// Result holds the outcome of a bulk fetch.
type Result struct {
	Fetched int // citations with page content
	Failed  int // citations recorded with an error marker
	Batches int
}

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types.
const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during a bulk fetch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
}

// ProgressFunc is a callback for reporting fetch progress.
type ProgressFunc func(event ProgressEvent)

// Engine coordinates the fetch pipeline for a list of citation URLs.
type Engine struct {
	Fetcher   citetrack.Fetcher
	Extractor citetrack.Extractor
	Limiter   citetrack.DomainLimiter
	Config    citetrack.Config

	// RetryDelays overrides the backoff schedule; nil uses
	// DefaultRetryDelays. Tests pass zero delays.
	RetryDelays []time.Duration
}

// FetchAll retrieves every referenced URL, producing one citation per
// input in input order. Per-URL failures are recorded as marker content
// on that citation and never abort the run; only context cancellation
// or a persist failure stops it early.
func (e *Engine) FetchAll(ctx context.Context, refs []*citetrack.Citation, persist PersistFunc, progress ProgressFunc) (*Result, error) {
	cfg := e.Config
	if cfg.Workers <= 0 {
		cfg.Workers = citetrack.DefaultWorkers
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = citetrack.DefaultBatchSize
	}
	if cfg.MaxContentLen <= 0 {
		cfg.MaxContentLen = citetrack.DefaultMaxContentLen
	}

	total := len(refs)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	res := &Result{}
	var completed atomic.Int64

	for start := 0; start < total; start += cfg.BatchSize {
		end := min(start+cfg.BatchSize, total)
		batch := refs[start:end]
		res.Batches++

		out := make([]*citetrack.Citation, len(batch))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Workers)
		for i, ref := range batch {
			g.Go(func() error {
				citation := e.process(gctx, ref, cfg)
				out[i] = citation

				event := ProgressEvent{
					Type:      ProgressCompleted,
					Completed: int(completed.Add(1)),
					Total:     total,
					URL:       ref.URL,
				}
				if citation.Failed() {
					event.Type = ProgressFailed
				}
				if progress != nil {
					progress(event)
				}
				return nil
			})
		}
		_ = g.Wait()

		if err := ctx.Err(); err != nil {
			return res, err
		}

		for _, citation := range out {
			if citation.Failed() {
				res.Failed++
			} else {
				res.Fetched++
			}
		}

		if persist != nil {
			if err := persist(res.Batches, out); err != nil {
				return res, fmt.Errorf("persist batch %d: %w", res.Batches, err)
			}
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return res, nil
}

// process fetches and cleans a single citation URL. Failures become
// marker content, not errors.
func (e *Engine) process(ctx context.Context, ref *citetrack.Citation, cfg citetrack.Config) *citetrack.Citation {
	out := &citetrack.Citation{
		DocPath:   ref.DocPath,
		URL:       ref.URL,
		FetchedAt: time.Now().UTC(),
	}

	domain := hostOf(ref.URL)
	if e.Limiter != nil {
		if err := e.Limiter.Wait(ctx, domain); err != nil {
			out.Content = Marker(err)
			return out
		}
	}

	delays := e.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetry(ctx, ref.URL, e.Fetcher.Fetch, delays)

	// Jittered delay after each fetch to reduce upstream rate limiting.
	e.pause(ctx, cfg)

	if err != nil {
		out.Content = Marker(err)
		return out
	}

	extracted, err := e.Extractor.Extract(html)
	if err != nil {
		out.Content = Marker(err)
		return out
	}

	out.Content = BuildContent(domain, extracted.Text, cfg.MaxContentLen)
	return out
}

// pause sleeps a random duration in [DelayMin, DelayMax], or returns
// early on context cancellation.
func (e *Engine) pause(ctx context.Context, cfg citetrack.Config) {
	if cfg.DelayMax <= 0 {
		return
	}
	d := cfg.DelayMin
	if span := cfg.DelayMax - cfg.DelayMin; span > 0 {
		d += rand.N(span)
	}
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

// BuildContent assembles stored citation content: the source domain
// prefix plus the cleaned text truncated to maxLen characters.
func BuildContent(domain, text string, maxLen int) string {
	if r := []rune(text); len(r) > maxLen {
		text = string(r[:maxLen])
	}
	return fmt.Sprintf("[Source: %s] %s", domain, text)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
