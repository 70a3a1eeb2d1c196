package utils

import (
	"github.com/pkg/errors"
)

const (
	bitSize       = 32 << (^uint(0) >> 63)
	maxIntHeadBit = 1 << (bitSize - 2)
)

// IsPowerOfTwo reports whether the given n is a power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// CeilToPowerOfTwo returns n if it is a power-of-two, otherwise the
// next-highest power-of-two. It returns an error when no such power of two is
// representable in an int.
func CeilToPowerOfTwo(n int) (int, error) {
	if n&maxIntHeadBit != 0 && n > maxIntHeadBit {
		return 0, errors.Errorf("utils: no power of two >= %d fits in an int", n)
	}

	if n <= 2 {
		return 2, nil
	}

	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	n++

	return n, nil
}
