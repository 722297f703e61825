package seq

import (
	"fmt"
	"iter"
	"slices"

	"go.uber.org/zap"

	"github.com/pavanmanishd/seq/internal/intmath"
)

// Vector is a contiguous, growable and shrinkable array.
//
// Capacity grows by the resize factor when a push finds the buffer full, and
// shrinks by the same factor when a removal leaves fewer than
// capacity/factor elements, never below MinCapacity. A Vector whose capacity
// was chosen explicitly (WithCapacity or Resize with manual set) does not
// shrink automatically.
//
// Every reallocation allocates the new buffer before touching the old one,
// so a failed reallocation leaves the Vector unchanged.
//
// The zero value is an empty Vector with default settings and no buffer, so
// it reports Cap() == 0 without manual capacity; the first push allocates
// MinCapacity slots. A Vector left behind by Move is in the same state.
// A Vector is not safe for concurrent use.
type Vector[T any] struct {
	buf     []T // len(buf) is the capacity
	n       int // 0 <= n <= len(buf)
	factor  int // >= 2 once initialised
	manual  bool
	limit   int // 0 means unlimited
	log     *zap.Logger
	grows   int
	shrinks int
}

// NewVector creates an empty Vector. By default it has MinCapacity slots and
// a resize factor of DefaultResizeFactor. It returns ErrAlloc if the buffer
// cannot be allocated.
func NewVector[T any](opts ...Option) (*Vector[T], error) {
	cfg := newConfig(opts)
	buf, err := allocSlice[T](cfg.capacity, cfg.maxCapacity, ErrAlloc)
	if err != nil {
		return nil, err
	}
	return &Vector[T]{
		buf:    buf,
		factor: cfg.factor,
		manual: cfg.capacitySet,
		limit:  cfg.maxCapacity,
		log:    cfg.log,
	}, nil
}

// VectorFrom creates a Vector holding a copy of src. Unless a larger
// capacity is requested with WithCapacity, the capacity is the smallest
// MinCapacity*factor^k strictly greater than len(src).
func VectorFrom[T any](src []T, opts ...Option) (*Vector[T], error) {
	cfg := newConfig(opts)

	capacity := cfg.capacity
	manual := cfg.capacitySet
	if !cfg.capacitySet || capacity < len(src) {
		c, err := intmath.GrowTo(MinCapacity, cfg.factor, len(src)+1)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAlloc, err)
		}
		capacity, manual = c, false
	}

	buf, err := allocSlice[T](capacity, cfg.maxCapacity, ErrAlloc)
	if err != nil {
		return nil, err
	}
	n := copy(buf, src)
	return &Vector[T]{
		buf:    buf,
		n:      n,
		factor: cfg.factor,
		manual: manual,
		limit:  cfg.maxCapacity,
		log:    cfg.log,
	}, nil
}

// VectorOf creates a Vector holding xs, with default settings.
func VectorOf[T any](xs ...T) (*Vector[T], error) {
	return VectorFrom(xs)
}

// lazyInit gives a zero-value Vector its default settings.
func (v *Vector[T]) lazyInit() {
	if v.factor == 0 {
		v.factor = DefaultResizeFactor
	}
	if v.log == nil {
		v.log = zap.NewNop()
	}
}

// Len returns the number of elements in the Vector.
func (v *Vector[T]) Len() int {
	return v.n
}

// Cap returns the number of allocated element slots.
func (v *Vector[T]) Cap() int {
	return len(v.buf)
}

// IsEmpty reports whether the Vector has no elements.
func (v *Vector[T]) IsEmpty() bool {
	return v.n == 0
}

// Manual reports whether automatic shrinking is disabled.
func (v *Vector[T]) Manual() bool {
	return v.manual
}

// ResizeFactor returns the growth/shrink multiplier.
func (v *Vector[T]) ResizeFactor() int {
	if v.factor == 0 {
		return DefaultResizeFactor
	}
	return v.factor
}

// SetResizeFactor changes the growth/shrink multiplier. Values below 2 are
// raised to 2.
func (v *Vector[T]) SetResizeFactor(f int) {
	v.factor = clampFactor(f)
}

// Size returns the size of the allocated buffer in bytes.
func (v *Vector[T]) Size() int {
	return len(v.buf) * sizeOf[T]()
}

// realloc moves the elements into a new buffer of newCap slots. On failure
// the Vector is unchanged and the returned error wraps kind.
func (v *Vector[T]) realloc(newCap int, kind error) error {
	buf, err := allocSlice[T](newCap, v.limit, kind)
	if err != nil {
		v.log.Warn("vector reallocation failed",
			zap.Int("from", len(v.buf)),
			zap.Int("to", newCap),
			zap.Error(err),
		)
		return err
	}
	v.adopt(buf)
	return nil
}

// adopt copies the live elements into buf and makes it the Vector's buffer.
func (v *Vector[T]) adopt(buf []T) {
	copy(buf, v.buf[:v.n])
	v.log.Debug("vector reallocated",
		zap.Int("len", v.n),
		zap.Int("from", len(v.buf)),
		zap.Int("to", len(buf)),
	)
	v.buf = buf
}

// grow makes room for one more element.
func (v *Vector[T]) grow() error {
	v.lazyInit()
	c := len(v.buf)
	if v.n < c {
		return nil
	}
	next := c * v.factor
	if c == 0 {
		next = MinCapacity
	} else if next/v.factor != c {
		return fmt.Errorf("%w: capacity %d cannot grow by %d", ErrResize, c, v.factor)
	}
	if err := v.realloc(next, ErrResize); err != nil {
		return err
	}
	v.grows++
	return nil
}

// shrinkPlan returns the smaller buffer the Vector should move into once it
// holds `after` elements, or nil if no shrink is due. The caller commits the
// removal and then passes the buffer to commitShrink.
func (v *Vector[T]) shrinkPlan(after int) ([]T, error) {
	v.lazyInit()
	c := len(v.buf)
	if v.manual || c <= MinCapacity || after >= c/v.factor {
		return nil, nil
	}
	return allocSlice[T](intmath.ShrinkStep(c, v.factor, MinCapacity), v.limit, ErrResize)
}

func (v *Vector[T]) commitShrink(buf []T) {
	if buf == nil {
		return
	}
	v.adopt(buf)
	v.shrinks++
}

// PushBack appends x. It is amortised O(1).
func (v *Vector[T]) PushBack(x T) error {
	if err := v.grow(); err != nil {
		return err
	}
	v.buf[v.n] = x
	v.n++
	return nil
}

// PushFront prepends x, shifting every element. It is O(n).
func (v *Vector[T]) PushFront(x T) error {
	return v.Insert(0, x)
}

// Insert places x at index i, shifting later elements up by one. Negative
// indices count from the end; i may equal Len().
func (v *Vector[T]) Insert(i int, x T) error {
	j, err := checkIndex(i, v.n, true)
	if err != nil {
		return err
	}
	if err := v.grow(); err != nil {
		return err
	}
	copy(v.buf[j+1:v.n+1], v.buf[j:v.n])
	v.buf[j] = x
	v.n++
	return nil
}

// PopBack removes and returns the last element.
func (v *Vector[T]) PopBack() (T, error) {
	if v.n == 0 {
		var zero T
		return zero, emptyError("pop back")
	}
	return v.erase(v.n - 1)
}

// PopFront removes and returns the first element. It is O(n).
func (v *Vector[T]) PopFront() (T, error) {
	if v.n == 0 {
		var zero T
		return zero, emptyError("pop front")
	}
	return v.erase(0)
}

// Erase removes and returns the element at index i, shifting later elements
// down by one.
func (v *Vector[T]) Erase(i int) (T, error) {
	j, err := checkIndex(i, v.n, false)
	if err != nil {
		var zero T
		return zero, err
	}
	return v.erase(j)
}

// erase removes the element at a validated index j.
func (v *Vector[T]) erase(j int) (T, error) {
	var zero T
	buf, err := v.shrinkPlan(v.n - 1)
	if err != nil {
		return zero, err
	}
	x := v.buf[j]
	copy(v.buf[j:v.n-1], v.buf[j+1:v.n])
	v.n--
	v.buf[v.n] = zero
	v.commitShrink(buf)
	return x, nil
}

// At returns the element at index i. Negative indices count from the end.
func (v *Vector[T]) At(i int) (T, error) {
	j, err := checkIndex(i, v.n, false)
	if err != nil {
		var zero T
		return zero, err
	}
	return v.buf[j], nil
}

// Set replaces the element at index i.
func (v *Vector[T]) Set(i int, x T) error {
	j, err := checkIndex(i, v.n, false)
	if err != nil {
		return err
	}
	v.buf[j] = x
	return nil
}

// Front returns the first element.
func (v *Vector[T]) Front() (T, error) {
	if v.n == 0 {
		var zero T
		return zero, emptyError("front")
	}
	return v.buf[0], nil
}

// Back returns the last element.
func (v *Vector[T]) Back() (T, error) {
	if v.n == 0 {
		var zero T
		return zero, emptyError("back")
	}
	return v.buf[v.n-1], nil
}

// IndexFunc returns the index of the first element satisfying match, or -1.
func (v *Vector[T]) IndexFunc(match func(T) bool) int {
	return slices.IndexFunc(v.buf[:v.n], match)
}

// RemoveFunc removes the first element satisfying match and reports whether
// one was found.
func (v *Vector[T]) RemoveFunc(match func(T) bool) (bool, error) {
	i := v.IndexFunc(match)
	if i < 0 {
		return false, nil
	}
	if _, err := v.erase(i); err != nil {
		return false, err
	}
	return true, nil
}

// Resize reallocates the buffer to the smallest MinCapacity*factor^k slots
// that hold max(target, Len()) elements. If manual is set, automatic
// shrinking is disabled until Resize is called with manual unset or the
// Vector is cleared.
func (v *Vector[T]) Resize(target int, manual bool) error {
	v.lazyInit()
	c, err := intmath.GrowTo(MinCapacity, v.factor, max(target, v.n))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrResize, err)
	}
	if c != len(v.buf) {
		if err := v.realloc(c, ErrResize); err != nil {
			return err
		}
	}
	v.manual = manual
	return nil
}

// reserve grows the buffer once so that it holds total elements.
func (v *Vector[T]) reserve(total int) error {
	v.lazyInit()
	if total <= len(v.buf) {
		return nil
	}
	c, err := intmath.GrowTo(MinCapacity, v.factor, total)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrResize, err)
	}
	if err := v.realloc(c, ErrResize); err != nil {
		return err
	}
	v.grows++
	return nil
}

// Extend appends a copy of every element of other, reallocating at most
// once. other is not modified and may be v itself.
func (v *Vector[T]) Extend(other *Vector[T]) error {
	if other == nil || other.n == 0 {
		return nil
	}
	m := other.n
	if err := v.reserve(v.n + m); err != nil {
		return err
	}
	copy(v.buf[v.n:v.n+m], other.buf[:m])
	v.n += m
	return nil
}

// Concat returns a new Vector holding the elements of a followed by those of
// b. Neither input is modified. A nil input counts as empty.
func Concat[T any](a, b *Vector[T]) (*Vector[T], error) {
	if a == nil {
		c, err := NewVector[T]()
		if err != nil {
			return nil, err
		}
		if err := c.Extend(b); err != nil {
			return nil, err
		}
		return c, nil
	}
	c, err := a.Clone()
	if err != nil {
		return nil, err
	}
	if err := c.Extend(b); err != nil {
		return nil, err
	}
	return c, nil
}

// Clone returns a deep copy with its own buffer and the same capacity and
// settings.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	buf, err := allocSlice[T](len(v.buf), v.limit, ErrAlloc)
	if err != nil {
		return nil, err
	}
	copy(buf, v.buf[:v.n])
	c := *v
	c.buf = buf
	c.grows, c.shrinks = 0, 0
	return &c, nil
}

// Move transfers the buffer to a new Vector and leaves v as an empty zero
// Vector.
func (v *Vector[T]) Move() *Vector[T] {
	m := *v
	*v = Vector[T]{}
	return &m
}

// Assign replaces the contents with xs. The buffer is reallocated to the
// smallest MinCapacity*factor^k strictly greater than len(xs), and automatic
// shrinking is re-enabled. On failure the Vector is unchanged.
func (v *Vector[T]) Assign(xs ...T) error {
	v.lazyInit()
	c, err := intmath.GrowTo(MinCapacity, v.factor, len(xs)+1)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAlloc, err)
	}
	buf, err := allocSlice[T](c, v.limit, ErrAlloc)
	if err != nil {
		return err
	}
	v.n = copy(buf, xs)
	v.buf = buf
	v.manual = false
	return nil
}

// Clear removes every element, keeping the buffer, and re-enables automatic
// shrinking.
func (v *Vector[T]) Clear() {
	clear(v.buf[:v.n])
	v.n = 0
	v.manual = false
}

// Values returns a copy of the elements in order.
func (v *Vector[T]) Values() []T {
	return slices.Clone(v.buf[:v.n])
}

// All returns an iterator over index-element pairs in order.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := range v.n {
			if !yield(i, v.buf[i]) {
				return
			}
		}
	}
}
