// Package bloom remembers which article URLs a download run has visited.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/xornal"
)

// Sizing used by NewSeenSet. A full category run is a few thousand articles.
const (
	DefaultCapacity = 100_000
	DefaultFPRate   = 0.0001
)

var _ xornal.SeenSet = (*Filter)(nil)

// Filter wraps a Bloom filter for article URL deduplication.
type Filter struct {
	f *bloom.BloomFilter
}

// NewSeenSet creates a Filter sized for DefaultCapacity URLs at DefaultFPRate.
func NewSeenSet() *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(DefaultCapacity, DefaultFPRate),
	}
}

// TestAndAdd reports whether the URL might have been recorded, then records it.
// False positives are possible; false negatives are not.
func (f *Filter) TestAndAdd(url string) bool {
	return f.f.TestAndAddString(url)
}
