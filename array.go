package seq

import "slices"

// Array is a fixed-length buffer. It never reallocates: Insert shifts later
// elements up and drops the last one, and Erase shifts them down and zeroes
// the freed slot.
type Array[T any] struct {
	buf []T
}

// NewArray creates an Array of n zero elements. It returns ErrAlloc if the
// buffer cannot be allocated.
func NewArray[T any](n int) (*Array[T], error) {
	buf, err := allocSlice[T](n, 0, ErrAlloc)
	if err != nil {
		return nil, err
	}
	return &Array[T]{buf: buf}, nil
}

// ArrayFrom creates an Array of the given length holding a copy of src.
// A length of 0 means len(src); extra slots are zero and surplus source
// elements are dropped.
func ArrayFrom[T any](src []T, length int) (*Array[T], error) {
	if length <= 0 {
		length = len(src)
	}
	a, err := NewArray[T](length)
	if err != nil {
		return nil, err
	}
	copy(a.buf, src)
	return a, nil
}

// Clone returns a deep copy.
func (a *Array[T]) Clone() (*Array[T], error) {
	return ArrayFrom(a.buf, len(a.buf))
}

// Len returns the fixed length.
func (a *Array[T]) Len() int { return len(a.buf) }

// Size returns the size of the buffer in bytes.
func (a *Array[T]) Size() int { return len(a.buf) * sizeOf[T]() }

// At returns the element at index i. Negative indices count from the end.
func (a *Array[T]) At(i int) (T, error) {
	j, err := checkIndex(i, len(a.buf), false)
	if err != nil {
		var zero T
		return zero, err
	}
	return a.buf[j], nil
}

// Set replaces the element at index i.
func (a *Array[T]) Set(i int, x T) error {
	j, err := checkIndex(i, len(a.buf), false)
	if err != nil {
		return err
	}
	a.buf[j] = x
	return nil
}

// Insert places x at index i, shifting later elements up by one. The last
// element falls off the end.
func (a *Array[T]) Insert(i int, x T) error {
	j, err := checkIndex(i, len(a.buf), false)
	if err != nil {
		return err
	}
	copy(a.buf[j+1:], a.buf[j:len(a.buf)-1])
	a.buf[j] = x
	return nil
}

// Erase removes and returns the element at index i, shifting later elements
// down and zeroing the last slot.
func (a *Array[T]) Erase(i int) (T, error) {
	j, err := checkIndex(i, len(a.buf), false)
	if err != nil {
		var zero T
		return zero, err
	}
	x := a.buf[j]
	a.shiftOut(j)
	return x, nil
}

func (a *Array[T]) shiftOut(j int) {
	var zero T
	copy(a.buf[j:], a.buf[j+1:])
	a.buf[len(a.buf)-1] = zero
}

// RemoveFunc erases the first element satisfying match and reports whether
// one was found.
func (a *Array[T]) RemoveFunc(match func(T) bool) bool {
	j := slices.IndexFunc(a.buf, match)
	if j < 0 {
		return false
	}
	a.shiftOut(j)
	return true
}

// Assign copies xs over the leading elements, ignoring any beyond Len().
func (a *Array[T]) Assign(xs ...T) {
	copy(a.buf, xs)
}

// Values returns a copy of the elements in order.
func (a *Array[T]) Values() []T {
	return slices.Clone(a.buf)
}
