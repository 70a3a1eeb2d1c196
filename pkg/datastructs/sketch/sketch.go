package sketch

import (
	"math/rand"
	"time"

	"github.com/huynhanx03/go-sketch/pkg/hash"
)

// largePrime is the odd modulus used to combine the two base hashes into the
// offsets of rows beyond the first two (Kirsch-Mitzenmacher double hashing).
// It is the largest prime below 2^64.
const largePrime = 0xffffffffffffffc5

// Sketch is a count-min sketch with conservative update: an add touches only
// the cells currently tied for the minimum across rows, which keeps
// overestimation lower than incrementing every row. Estimates never
// underestimate; they can only overestimate through collisions.
// NOT thread-safe.
type Sketch[K hash.Key, C Counter] struct {
	rows     [][]C
	offsets  []uint64 // per-row offsets remembered between the two Add passes
	seeds    [2]uint64
	mask     uint64
	resetIdx uint64
	rng      *rand.Rand
}

// Type aliases matching the four counter widths a sketch is commonly
// instantiated with.
type (
	Sketch8[K hash.Key]  = Sketch[K, uint8]
	Sketch16[K hash.Key] = Sketch[K, uint16]
	Sketch32[K hash.Key] = Sketch[K, uint32]
	Sketch64[K hash.Key] = Sketch[K, uint64]
)

// New creates a sketch sized for the expected number of distinct keys
// (capacity), a confidence probability in (0, 1), and an absolute error
// tolerance. It fails with a sizing error when the parameters are out of
// range or imply an unrepresentably wide structure.
func New[K hash.Key, C Counter](capacity int, probability, tolerance float64) (*Sketch[K, C], error) {
	source := rand.New(rand.NewSource(time.Now().UnixNano()))
	return NewWithRand[K, C](capacity, probability, tolerance, source)
}

// NewWithRand is New with an explicit randomness source for drawing the hash
// seeds. The source is retained: Clear re-draws seeds from it. Deterministic
// sources give reproducible offset mappings.
func NewWithRand[K hash.Key, C Counter](capacity int, probability, tolerance float64, source *rand.Rand) (*Sketch[K, C], error) {
	if err := validateParams(capacity, probability, tolerance); err != nil {
		return nil, err
	}
	width, err := optimalWidth(capacity, tolerance)
	if err != nil {
		return nil, err
	}
	kNum := optimalKNum(probability)

	rows := make([][]C, kNum)
	for i := range rows {
		rows[i] = make([]C, width)
	}
	s := &Sketch[K, C]{
		rows:    rows,
		offsets: make([]uint64, kNum),
		mask:    uint64(width - 1),
		rng:     source,
	}
	s.reseed()
	return s, nil
}

// Width returns the number of counter columns per row.
func (s *Sketch[K, C]) Width() int {
	return int(s.mask) + 1
}

// Depth returns the number of rows.
func (s *Sketch[K, C]) Depth() int {
	return len(s.rows)
}

// Add applies a conservative update of the given amount for the key.
// Counters saturate at the counter type's maximum, they never wrap.
func (s *Sketch[K, C]) Add(key K, amount C) {
	var hashes [2]uint64
	lowest := maxOf[C]()
	for ki := range s.rows {
		off := s.offset(&hashes, key, ki)
		s.offsets[ki] = off
		if v := s.rows[ki][off]; v < lowest {
			lowest = v
		}
	}
	for ki := range s.rows {
		off := s.offsets[ki]
		if s.rows[ki][off] == lowest {
			s.rows[ki][off] = satAdd(s.rows[ki][off], amount)
		}
	}
}

// Increment is Add(key, 1).
func (s *Sketch[K, C]) Increment(key K) {
	s.Add(key, 1)
}

// Estimate returns the estimated frequency of the key: the minimum counter
// value across rows. Read-only.
func (s *Sketch[K, C]) Estimate(key K) C {
	var hashes [2]uint64
	lowest := maxOf[C]()
	for ki := range s.rows {
		off := s.offset(&hashes, key, ki)
		if v := s.rows[ki][off]; v < lowest {
			lowest = v
		}
	}
	return lowest
}

// Reset halves every counter value and rewinds the decay cursor. Hash seeds
// are unchanged, so keys keep their offsets. Periodic resets let estimates
// track recent activity instead of all-time totals.
func (s *Sketch[K, C]) Reset() {
	for _, row := range s.rows {
		for i := range row {
			row[i] >>= 1
		}
	}
	s.resetIdx = 0
}

// ResetNext halves the single column under the decay cursor across all rows,
// then advances the cursor. It returns the new cursor position; swept is true
// when the cursor wrapped to the start, meaning a full sweep just completed.
// Calling it Width times is equivalent to one Reset, amortized.
func (s *Sketch[K, C]) ResetNext() (next int, swept bool) {
	idx := s.resetIdx
	for _, row := range s.rows {
		row[idx] >>= 1
	}
	s.resetIdx = (idx + 1) & s.mask
	return int(s.resetIdx), s.resetIdx == 0
}

// Clear zeroes every counter, rewinds the decay cursor, and draws fresh hash
// seeds. Unlike Reset this destroys all history and changes the offset
// mapping of every key going forward.
func (s *Sketch[K, C]) Clear() {
	for _, row := range s.rows {
		for i := range row {
			row[i] = 0
		}
	}
	s.resetIdx = 0
	s.reseed()
}

func (s *Sketch[K, C]) reseed() {
	s.seeds[0] = s.rng.Uint64()
	s.seeds[1] = s.rng.Uint64()
}

// offset maps the key to a column for row ki. Rows 0 and 1 hash the key under
// their own seed and cache the raw hash; later rows combine the two cached
// hashes, so a point operation costs exactly two real hash evaluations
// regardless of depth.
func (s *Sketch[K, C]) offset(hashes *[2]uint64, key K, ki int) uint64 {
	if ki < 2 {
		h := hash.Sum64Seeded(key, s.seeds[ki])
		hashes[ki] = h
		return h & s.mask
	}
	return (hashes[0] + (uint64(ki)*hashes[1])%largePrime) & s.mask
}
