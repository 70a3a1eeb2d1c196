package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-metro"
)

// Key is the set of key types the hashing helpers accept.
type Key interface {
	uint64 | string | []byte | byte | int | uint | int32 | uint32 | int64
}

// Sum64 generates an unkeyed 64-bit hash for the given key using xxhash.
// The mapping is stable across processes and runs.
func Sum64[K Key](key K) uint64 {
	keyAsAny := any(key)
	switch k := keyAsAny.(type) {
	case string:
		return xxhash.Sum64String(k)
	case []byte:
		return xxhash.Sum64(k)
	default:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], numeric(keyAsAny))
		return xxhash.Sum64(buf[:])
	}
}

// Sum64Seeded generates a 64-bit hash for the given key under the given seed
// using metro. Distinct seeds give independently distributed hash families,
// which is what lets a sketch re-draw its hash functions on clear.
func Sum64Seeded[K Key](key K, seed uint64) uint64 {
	keyAsAny := any(key)
	switch k := keyAsAny.(type) {
	case string:
		return metro.Hash64Str(k, seed)
	case []byte:
		return metro.Hash64(k, seed)
	default:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], numeric(keyAsAny))
		return metro.Hash64(buf[:], seed)
	}
}

// numeric folds every integer key type into a uint64. Integer keys are hashed
// through their 8-byte encoding rather than used raw, so that masking the hash
// down to a column index does not alias dense key ranges.
func numeric(key any) uint64 {
	switch k := key.(type) {
	case uint64:
		return k
	case byte:
		return uint64(k)
	case uint:
		return uint64(k)
	case int:
		return uint64(k)
	case int32:
		return uint64(k)
	case uint32:
		return uint64(k)
	case int64:
		return uint64(k)
	default:
		panic("hash: key type not supported")
	}
}
