package seq

import "errors"

// Kind identifies one of the failure kinds a container operation can report.
type Kind int

// Failure kinds, grouped as lookup, size and memory failures.
const (
	KindNone Kind = iota
	KindIndex
	KindKey
	KindEmpty
	KindOverflow
	KindAlloc
	KindResize
)

var kindNames = [...]string{
	KindNone:     "none",
	KindIndex:    "index",
	KindKey:      "key",
	KindEmpty:    "empty",
	KindOverflow: "overflow",
	KindAlloc:    "alloc",
	KindResize:   "resize",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// kindError is a sentinel that also matches its group sentinel under
// [errors.Is].
type kindError struct {
	kind  Kind
	msg   string
	group error
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Is(target error) bool {
	return e.group != nil && target == e.group
}

// Group sentinels. Every leaf error below matches exactly one of them.
var (
	ErrLookup = errors.New("lookup failure")
	ErrSize   = errors.New("size failure")
	ErrMemory = errors.New("memory failure")
)

// Leaf sentinels returned (wrapped) by container operations.
var (
	// ErrIndex is returned when an index is out of bounds after negative
	// normalisation.
	ErrIndex error = &kindError{KindIndex, "invalid element index", ErrLookup}
	// ErrKey is returned when a searched-for value is not present.
	ErrKey error = &kindError{KindKey, "key not found", ErrLookup}
	// ErrEmpty is returned by pop, front, back and top on an empty container.
	ErrEmpty error = &kindError{KindEmpty, "container is empty", ErrSize}
	// ErrOverflow is returned by a push on a bounded adapter at its limit.
	ErrOverflow error = &kindError{KindOverflow, "container overflow", ErrSize}
	// ErrAlloc is returned when an initial or assignment allocation fails.
	ErrAlloc error = &kindError{KindAlloc, "memory allocation failed", ErrMemory}
	// ErrResize is returned when a growth or shrink reallocation fails.
	ErrResize error = &kindError{KindResize, "resize failed", ErrMemory}
)

// KindOf returns the failure kind carried by err, or [KindNone] if err does
// not wrap one of the leaf sentinels.
func KindOf(err error) Kind {
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.kind
	}
	return KindNone
}
