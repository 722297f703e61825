package seq

import (
	"fmt"

	"github.com/pavanmanishd/seq/internal/intmath"
)

// checkIndex normalises a negative index against length n and validates it
// against [0, n), or [0, n] if inclusive is set (insert positions).
func checkIndex(i, n int, inclusive bool) (int, error) {
	j := intmath.Normalize(i, n)
	hi := n
	if inclusive {
		hi++
	}
	if !intmath.InRange(j, 0, hi) {
		return 0, fmt.Errorf("%w: %d out of range for length %d", ErrIndex, i, n)
	}
	return j, nil
}

func emptyError(op string) error {
	return fmt.Errorf("%w: %s", ErrEmpty, op)
}

// Equal returns a matcher reporting whether an element equals key, for use
// with the RemoveFunc and IndexFunc methods.
func Equal[T comparable](key T) func(T) bool {
	return func(x T) bool { return x == key }
}
