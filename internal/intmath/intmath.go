// Package intmath provides the integer arithmetic shared by the containers:
// Python-style index normalisation and geometric capacity steps.
package intmath

import (
	"errors"

	"golang.org/x/exp/constraints"
)

// ErrOverflow is returned if a capacity computation would have overflowed
// its type.
var ErrOverflow = errors.New("overflow")

// Normalize maps a negative index `i` onto `i+n`, leaving non-negative
// indices untouched. The result is not bounds-checked.
func Normalize[T constraints.Signed](i, n T) T {
	if i < 0 {
		return i + n
	}
	return i
}

// InRange reports whether `lo <= i < hi`.
func InRange[T constraints.Integer](i, lo, hi T) bool {
	return lo <= i && i < hi
}

// GrowTo returns the smallest `base*factor^k` (k >= 0) that is `>= target`.
// A `base` of zero is treated as one. It returns [ErrOverflow] if no such
// value is representable.
func GrowTo[T constraints.Signed](base, factor, target T) (T, error) {
	if base <= 0 {
		base = 1
	}
	if factor < 2 {
		factor = 2
	}
	c := base
	for c < target {
		next := c * factor
		if next/factor != c {
			return 0, ErrOverflow
		}
		c = next
	}
	return c, nil
}

// ShrinkStep returns `max(c/factor, floor)`.
func ShrinkStep[T constraints.Integer](c, factor, floor T) T {
	if s := c / factor; s > floor {
		return s
	}
	return floor
}
