package freq

import (
	"github.com/huynhanx03/go-sketch/pkg/datastructs/bloom"
	"github.com/huynhanx03/go-sketch/pkg/datastructs/sketch"
	"github.com/huynhanx03/go-sketch/pkg/hash"
)

const doorkeeperFpRate = 0.01

// Frequency implements TinyLFU-style frequency counting for cache admission.
// It combines an 8-bit count-min sketch for frequency estimation with a Bloom
// filter as a "doorkeeper" that filters first-time accesses, and halves the
// sketch every sample window so estimates favor recent traffic.
// NOT thread-safe.
type Frequency[K hash.Key] struct {
	freq       *sketch.Sketch8[K]
	door       *bloom.Bloom
	incr       int64
	resetAfter int64
}

// New creates a frequency counter sized for the given number of distinct
// keys. sampleFactor scales the reset window relative to capacity; values
// below 1 are treated as 1.
func New[K hash.Key](capacity int, sampleFactor int64) (*Frequency[K], error) {
	if sampleFactor < 1 {
		sampleFactor = 1
	}
	cms, err := sketch.New[K, uint8](capacity, 0.95, 1.0)
	if err != nil {
		return nil, err
	}
	door, err := bloom.New(uint64(capacity), doorkeeperFpRate)
	if err != nil {
		return nil, err
	}
	return &Frequency[K]{
		freq:       cms,
		door:       door,
		resetAfter: int64(capacity) * sampleFactor,
	}, nil
}

// Record records an access to the given key.
func (f *Frequency[K]) Record(key K) {
	f.incr++
	if f.incr >= f.resetAfter {
		f.freq.Reset()
		f.door.Clear()
		f.incr = 0
	}

	if f.door.AddIfNotHas(hash.Sum64(key)) {
		f.freq.Increment(key)
	}
}

// Estimate returns the estimated access frequency of a key.
func (f *Frequency[K]) Estimate(key K) int64 {
	hits := int64(f.freq.Estimate(key))
	if f.door.Has(hash.Sum64(key)) {
		hits++
	}
	return hits
}

// Clear resets all frequency data, including the sketch's hash seeds.
func (f *Frequency[K]) Clear() {
	f.freq.Clear()
	f.door.Clear()
	f.incr = 0
}
