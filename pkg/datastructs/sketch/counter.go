package sketch

import (
	"unsafe"
)

// Counter is the set of counter cell widths a sketch can be instantiated
// with. Narrower counters trade headroom before saturation for memory.
type Counter interface {
	uint8 | uint16 | uint32 | uint64
}

// maxOf returns the largest value representable by the counter type.
func maxOf[C Counter]() C {
	return ^C(0)
}

// sizeOf returns the counter width in bytes.
func sizeOf[C Counter]() int {
	var c C
	return int(unsafe.Sizeof(c))
}

// satAdd adds amount to v, clamping at the counter maximum instead of
// wrapping.
func satAdd[C Counter](v, amount C) C {
	if v > maxOf[C]()-amount {
		return maxOf[C]()
	}
	return v + amount
}
