// Package bloom tracks which citation URLs have already been collected.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// SeenFilter records URLs as they are discovered so later documents do
// not re-emit links already collected. It is a Bloom filter, so Seen may
// rarely report true for a URL that was never added; a dropped duplicate
// candidate is an acceptable trade for bounded memory across large
// document sets. Safe for concurrent use.
type SeenFilter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewSeenFilter sizes the filter for n expected URLs at the given false
// positive rate.
func NewSeenFilter(n uint, fpRate float64) *SeenFilter {
	return &SeenFilter{f: bloom.NewWithEstimates(n, fpRate)}
}

// Seen reports whether url was already recorded, and records it. The
// first call for a URL returns false, subsequent calls return true.
func (s *SeenFilter) Seen(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f.TestString(url) {
		return true
	}
	s.f.AddString(url)
	return false
}

// Count returns the approximate number of distinct URLs recorded.
func (s *SeenFilter) Count() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint(s.f.ApproximatedSize())
}
