// Package bloom provides probabilistic link deduplication for listing
// sweeps. Paginated searches revisit the same articles across pages and
// time ranges; the filter drops repeats cheaply before the pipeline's
// exact URL deduplication.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// SweepFilter remembers links seen during one search sweep.
type SweepFilter struct {
	f *bloom.BloomFilter
}

// NewSweepFilter creates a filter sized for n expected links with the
// given false positive rate.
func NewSweepFilter(n uint, fpRate float64) *SweepFilter {
	return &SweepFilter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Seen records the link and reports whether it was already present.
// False positives are possible; false negatives are not, so a dropped
// link is at worst a repeat the exact dedup would have dropped anyway.
func (f *SweepFilter) Seen(url string) bool {
	return f.f.TestAndAddString(url)
}

// EstimatedCount returns the approximate number of links recorded.
func (f *SweepFilter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
