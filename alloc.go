package seq

import (
	"fmt"
	"runtime"
	"unsafe"
)

// allocSlice returns a zeroed []T of length n. It fails with kind (ErrAlloc
// or ErrResize) if n exceeds limit (when limit > 0) or if the runtime refuses
// the allocation.
func allocSlice[T any](n, limit int, kind error) (s []T, err error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative length %d", kind, n)
	}
	if limit > 0 && n > limit {
		return nil, fmt.Errorf("%w: %d slots exceeds limit of %d", kind, n, limit)
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		// Only runtime failures such as "makeslice: len out of range" are
		// allocation failures; anything else is a bug and keeps unwinding.
		re, ok := r.(runtime.Error)
		if !ok {
			panic(r)
		}
		s, err = nil, fmt.Errorf("%w: %v", kind, re)
	}()
	return make([]T, n), nil
}

// sizeOf returns the in-memory size of one T in bytes.
func sizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}
