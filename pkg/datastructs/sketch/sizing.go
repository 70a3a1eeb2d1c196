package sketch

import (
	"math"

	"github.com/pkg/errors"

	"github.com/huynhanx03/go-sketch/pkg/utils"
)

// validateParams checks the user-facing accuracy parameters. Everything else
// in this package is error-free once construction has succeeded.
func validateParams(capacity int, probability, tolerance float64) error {
	if capacity <= 0 {
		return errors.Errorf("sketch: capacity must be positive, got %d", capacity)
	}
	if probability <= 0 || probability >= 1 {
		return errors.Errorf("sketch: probability must be in (0, 1), got %g", probability)
	}
	if tolerance <= 0 {
		return errors.Errorf("sketch: tolerance must be positive, got %g", tolerance)
	}
	return nil
}

// optimalWidth derives the column count: the next power of two at or above
// round(2/e) where e = tolerance/capacity, never below 2.
func optimalWidth(capacity int, tolerance float64) (int, error) {
	e := tolerance / float64(capacity)
	w := math.Round(2 / e)
	if w >= float64(maxIntHead) {
		return 0, errors.Errorf("sketch: width %g for capacity %d and tolerance %g is too large", w, capacity, tolerance)
	}
	width := 2
	if w > 2 {
		width = int(w)
	}
	return utils.CeilToPowerOfTwo(width)
}

const maxIntHead = 1 << 62

// optimalKNum derives the row count from the target confidence probability.
func optimalKNum(probability float64) int {
	k := int(math.Log(1-probability) / math.Log(0.5))
	if k < 1 {
		return 1
	}
	return k
}

// EstimateMemory returns the counter storage in bytes a sketch with the given
// parameters would allocate, without allocating one. Useful for capacity
// planning before committing to a configuration.
func EstimateMemory[C Counter](capacity int, probability, tolerance float64) (int, error) {
	if err := validateParams(capacity, probability, tolerance); err != nil {
		return 0, err
	}
	width, err := optimalWidth(capacity, tolerance)
	if err != nil {
		return 0, err
	}
	return width * optimalKNum(probability) * sizeOf[C](), nil
}
