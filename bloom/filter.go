// Package bloom pre-screens object IDs for duplicates using a Bloom filter.
package bloom

import (
	"encoding/binary"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter tracks the object IDs seen during an import.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected IDs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records id.
func (f *Filter) Add(id int) {
	f.f.Add(key(id))
}

// Test returns true if id might have been added.
// False positives are possible; false negatives are not.
func (f *Filter) Test(id int) bool {
	return f.f.Test(key(id))
}

// TestAndAdd records id and reports whether it might have been added before.
func (f *Filter) TestAndAdd(id int) bool {
	return f.f.TestAndAdd(key(id))
}

// EstimatedCount returns the approximate number of IDs in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

func key(id int) []byte {
	return binary.BigEndian.AppendUint64(nil, uint64(id))
}
