package seq

import (
	"fmt"
	"iter"
)

// dnode is a doubly-linked node. next owns the following node; prev is a
// back-reference used only for traversal.
type dnode[T any] struct {
	val  T
	next *dnode[T]
	prev *dnode[T]
}

// DList is a doubly-linked sequence. Pushes and pops at either end are O(1).
// Indexed operations walk from whichever end is nearer, so they cost
// O(min(i, n-i)).
//
// Nodes are carved from the DList's own chunked arena and recycled on
// removal. The zero value is an empty DList with default settings.
// A DList is not safe for concurrent use.
type DList[T any] struct {
	head  *dnode[T]
	tail  *dnode[T] // non-owning
	n     int
	nodes arena[dnode[T]]
}

// NewDList creates an empty DList. Only WithMaxNodes, WithChunkSize and
// WithLogger apply.
func NewDList[T any](opts ...Option) *DList[T] {
	return &DList[T]{nodes: newArena[dnode[T]](newConfig(opts))}
}

// DListFrom creates a DList holding a copy of src.
func DListFrom[T any](src []T, opts ...Option) (*DList[T], error) {
	l := NewDList[T](opts...)
	for _, x := range src {
		if err := l.PushBack(x); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// DListOf creates a DList holding xs, with default settings.
func DListOf[T any](xs ...T) (*DList[T], error) {
	return DListFrom(xs)
}

// Len returns the number of elements in the DList.
func (l *DList[T]) Len() int {
	return l.n
}

// IsEmpty reports whether the DList has no elements.
func (l *DList[T]) IsEmpty() bool {
	return l.n == 0
}

func (l *DList[T]) newNode(x T) (*dnode[T], error) {
	nd, err := l.nodes.alloc()
	if err != nil {
		return nil, err
	}
	nd.val = x
	return nd, nil
}

// PushBack appends x.
func (l *DList[T]) PushBack(x T) error {
	nd, err := l.newNode(x)
	if err != nil {
		return err
	}
	if l.tail == nil {
		l.head = nd
	} else {
		l.tail.next = nd
		nd.prev = l.tail
	}
	l.tail = nd
	l.n++
	return nil
}

// PushFront prepends x.
func (l *DList[T]) PushFront(x T) error {
	nd, err := l.newNode(x)
	if err != nil {
		return err
	}
	if l.head == nil {
		l.tail = nd
	} else {
		l.head.prev = nd
		nd.next = l.head
	}
	l.head = nd
	l.n++
	return nil
}

// PopFront removes and returns the first element.
func (l *DList[T]) PopFront() (T, error) {
	if l.n == 0 {
		var zero T
		return zero, emptyError("pop front")
	}
	return l.unlink(l.head), nil
}

// PopBack removes and returns the last element.
func (l *DList[T]) PopBack() (T, error) {
	if l.n == 0 {
		var zero T
		return zero, emptyError("pop back")
	}
	return l.unlink(l.tail), nil
}

// unlink detaches nd from its neighbours, releases it and returns its value.
func (l *DList[T]) unlink(nd *dnode[T]) T {
	if nd.prev == nil {
		l.head = nd.next
	} else {
		nd.prev.next = nd.next
	}
	if nd.next == nil {
		l.tail = nd.prev
	} else {
		nd.next.prev = nd.prev
	}
	l.n--
	x := nd.val
	l.nodes.release(nd)
	return x
}

// nodeAt returns the node at validated index i, walking from the head if
// i < n/2 and from the tail otherwise.
func (l *DList[T]) nodeAt(i int) *dnode[T] {
	if i < l.n/2 {
		nd := l.head
		for range i {
			nd = nd.next
		}
		return nd
	}
	nd := l.tail
	for j := l.n - 1; j > i; j-- {
		nd = nd.prev
	}
	return nd
}

// At returns the element at index i. Negative indices count from the end.
func (l *DList[T]) At(i int) (T, error) {
	j, err := checkIndex(i, l.n, false)
	if err != nil {
		var zero T
		return zero, err
	}
	return l.nodeAt(j).val, nil
}

// Set replaces the element at index i.
func (l *DList[T]) Set(i int, x T) error {
	j, err := checkIndex(i, l.n, false)
	if err != nil {
		return err
	}
	l.nodeAt(j).val = x
	return nil
}

// Front returns the first element.
func (l *DList[T]) Front() (T, error) {
	if l.n == 0 {
		var zero T
		return zero, emptyError("front")
	}
	return l.head.val, nil
}

// Back returns the last element.
func (l *DList[T]) Back() (T, error) {
	if l.n == 0 {
		var zero T
		return zero, emptyError("back")
	}
	return l.tail.val, nil
}

// Insert places x at index i. Negative indices count from the end; i may
// equal Len().
func (l *DList[T]) Insert(i int, x T) error {
	j, err := checkIndex(i, l.n, true)
	if err != nil {
		return err
	}
	switch j {
	case 0:
		return l.PushFront(x)
	case l.n:
		return l.PushBack(x)
	}
	left := l.nodeAt(j - 1)
	nd, err := l.newNode(x)
	if err != nil {
		return err
	}
	right := left.next
	nd.prev, nd.next = left, right
	left.next = nd
	right.prev = nd
	l.n++
	return nil
}

// Erase removes and returns the element at index i.
func (l *DList[T]) Erase(i int) (T, error) {
	j, err := checkIndex(i, l.n, false)
	if err != nil {
		var zero T
		return zero, err
	}
	switch j {
	case 0:
		return l.PopFront()
	case l.n - 1:
		return l.PopBack()
	}
	return l.unlink(l.nodeAt(j)), nil
}

// IndexFunc returns the position of the first element satisfying match, or
// an error wrapping ErrKey.
func (l *DList[T]) IndexFunc(match func(T) bool) (int, error) {
	i := 0
	for nd := l.head; nd != nil; nd = nd.next {
		if match(nd.val) {
			return i, nil
		}
		i++
	}
	return -1, fmt.Errorf("%w: no matching element among %d", ErrKey, l.n)
}

// RemoveFunc removes the first element satisfying match, or returns an
// error wrapping ErrKey if there is none.
func (l *DList[T]) RemoveFunc(match func(T) bool) error {
	for nd := l.head; nd != nil; nd = nd.next {
		if match(nd.val) {
			l.unlink(nd)
			return nil
		}
	}
	return fmt.Errorf("%w: no matching element among %d", ErrKey, l.n)
}

// Extend moves every node of other to the end of l in O(1). other is left
// empty. Spliced nodes count towards l's node limit but never fail.
func (l *DList[T]) Extend(other *DList[T]) {
	if other == nil || other == l || other.n == 0 {
		return
	}
	if l.tail == nil {
		l.head = other.head
	} else {
		l.tail.next = other.head
		other.head.prev = l.tail
	}
	l.tail = other.tail
	l.n += other.n
	l.nodes.adopt(other.n)

	other.head, other.tail, other.n = nil, nil, 0
	other.nodes.abandon()
}

// ExtendCopy appends a copy of every element of other, which is not
// modified and may be l itself. On failure l is unchanged.
func (l *DList[T]) ExtendCopy(other *DList[T]) error {
	if other == nil || other.n == 0 {
		return nil
	}
	if lim := l.nodes.limit; lim > 0 && l.nodes.live+other.n > lim {
		return fmt.Errorf("%w: %d more nodes exceed limit of %d", ErrAlloc, other.n, lim)
	}

	oldN := l.n
	nd := other.head
	for range other.n {
		if err := l.PushBack(nd.val); err != nil {
			for l.n > oldN {
				l.unlink(l.tail)
			}
			return err
		}
		nd = nd.next
	}
	return nil
}

// Clone returns a deep copy with freshly allocated nodes and the same
// settings.
func (l *DList[T]) Clone() (*DList[T], error) {
	c := &DList[T]{nodes: l.nodes.fresh()}
	if err := c.ExtendCopy(l); err != nil {
		return nil, err
	}
	return c, nil
}

// Assign replaces the contents with xs, keeping the settings. The new
// chain is built before the old one is dropped, so on failure l is
// unchanged.
func (l *DList[T]) Assign(xs ...T) error {
	c := DList[T]{nodes: l.nodes.fresh()}
	for _, x := range xs {
		if err := c.PushBack(x); err != nil {
			return err
		}
	}
	*l = c
	return nil
}

// Move transfers the chain to a new DList and leaves l empty with the same
// settings.
func (l *DList[T]) Move() *DList[T] {
	m := *l
	*l = DList[T]{nodes: l.nodes.fresh()}
	return &m
}

// Clear releases every node exactly once and leaves the DList empty.
func (l *DList[T]) Clear() {
	for nd := l.head; nd != nil; {
		next := nd.next
		l.nodes.release(nd)
		nd = next
	}
	l.head, l.tail, l.n = nil, nil, 0
	l.nodes.rewind()
}

// Values returns a copy of the elements in order.
func (l *DList[T]) Values() []T {
	out := make([]T, 0, l.n)
	for nd := l.head; nd != nil; nd = nd.next {
		out = append(out, nd.val)
	}
	return out
}

// All returns an iterator over index-element pairs from head to tail.
func (l *DList[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := 0
		for nd := l.head; nd != nil; nd = nd.next {
			if !yield(i, nd.val) {
				return
			}
			i++
		}
	}
}

// Backward returns an iterator over index-element pairs from tail to head.
func (l *DList[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := l.n - 1
		for nd := l.tail; nd != nil; nd = nd.prev {
			if !yield(i, nd.val) {
				return
			}
			i--
		}
	}
}
