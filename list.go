package seq

import (
	"fmt"
	"iter"
)

// snode is a singly-linked node. Its next link owns the following node.
type snode[T any] struct {
	val  T
	next *snode[T]
}

// List is a singly-linked sequence. Pushes at either end and PopFront are
// O(1); PopBack and indexed operations walk forward from the head and are
// O(n).
//
// Nodes are carved from the List's own chunked arena and recycled on
// removal. The zero value is an empty List with default settings.
// A List is not safe for concurrent use.
type List[T any] struct {
	head  *snode[T]
	tail  *snode[T] // non-owning; last node of the chain
	n     int
	nodes arena[snode[T]]
}

// NewList creates an empty List. Only WithMaxNodes, WithChunkSize and
// WithLogger apply.
func NewList[T any](opts ...Option) *List[T] {
	return &List[T]{nodes: newArena[snode[T]](newConfig(opts))}
}

// ListFrom creates a List holding a copy of src.
func ListFrom[T any](src []T, opts ...Option) (*List[T], error) {
	l := NewList[T](opts...)
	for _, x := range src {
		if err := l.PushBack(x); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// ListOf creates a List holding xs, with default settings.
func ListOf[T any](xs ...T) (*List[T], error) {
	return ListFrom(xs)
}

// Len returns the number of elements in the List.
func (l *List[T]) Len() int {
	return l.n
}

// IsEmpty reports whether the List has no elements.
func (l *List[T]) IsEmpty() bool {
	return l.n == 0
}

func (l *List[T]) newNode(x T) (*snode[T], error) {
	nd, err := l.nodes.alloc()
	if err != nil {
		return nil, err
	}
	nd.val = x
	return nd, nil
}

// PushBack appends x.
func (l *List[T]) PushBack(x T) error {
	nd, err := l.newNode(x)
	if err != nil {
		return err
	}
	if l.tail == nil {
		l.head = nd
	} else {
		l.tail.next = nd
	}
	l.tail = nd
	l.n++
	return nil
}

// PushFront prepends x.
func (l *List[T]) PushFront(x T) error {
	nd, err := l.newNode(x)
	if err != nil {
		return err
	}
	nd.next = l.head
	l.head = nd
	if l.tail == nil {
		l.tail = nd
	}
	l.n++
	return nil
}

// PopFront removes and returns the first element.
func (l *List[T]) PopFront() (T, error) {
	if l.n == 0 {
		var zero T
		return zero, emptyError("pop front")
	}
	nd := l.head
	l.head = nd.next
	if l.head == nil {
		l.tail = nil
	}
	l.n--
	x := nd.val
	l.nodes.release(nd)
	return x, nil
}

// PopBack removes and returns the last element. It walks from the head to
// find the new tail.
func (l *List[T]) PopBack() (T, error) {
	if l.n == 0 {
		var zero T
		return zero, emptyError("pop back")
	}
	if l.n == 1 {
		return l.PopFront()
	}
	prev := l.nodeAt(l.n - 2)
	nd := l.tail
	prev.next = nil
	l.tail = prev
	l.n--
	x := nd.val
	l.nodes.release(nd)
	return x, nil
}

// nodeAt walks forward to the node at validated index i.
func (l *List[T]) nodeAt(i int) *snode[T] {
	nd := l.head
	for range i {
		nd = nd.next
	}
	return nd
}

// At returns the element at index i. Negative indices count from the end.
func (l *List[T]) At(i int) (T, error) {
	j, err := checkIndex(i, l.n, false)
	if err != nil {
		var zero T
		return zero, err
	}
	return l.nodeAt(j).val, nil
}

// Set replaces the element at index i.
func (l *List[T]) Set(i int, x T) error {
	j, err := checkIndex(i, l.n, false)
	if err != nil {
		return err
	}
	l.nodeAt(j).val = x
	return nil
}

// Front returns the first element.
func (l *List[T]) Front() (T, error) {
	if l.n == 0 {
		var zero T
		return zero, emptyError("front")
	}
	return l.head.val, nil
}

// Back returns the last element.
func (l *List[T]) Back() (T, error) {
	if l.n == 0 {
		var zero T
		return zero, emptyError("back")
	}
	return l.tail.val, nil
}

// Insert places x at index i. Negative indices count from the end; i may
// equal Len().
func (l *List[T]) Insert(i int, x T) error {
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
	prev := l.nodeAt(j - 1)
	nd, err := l.newNode(x)
	if err != nil {
		return err
	}
	nd.next = prev.next
	prev.next = nd
	l.n++
	return nil
}

// Erase removes and returns the element at index i.
func (l *List[T]) Erase(i int) (T, error) {
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
	prev := l.nodeAt(j - 1)
	nd := prev.next
	prev.next = nd.next
	l.n--
	x := nd.val
	l.nodes.release(nd)
	return x, nil
}

// IndexFunc returns the position of the first element satisfying match, or
// an error wrapping ErrKey.
func (l *List[T]) IndexFunc(match func(T) bool) (int, error) {
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
func (l *List[T]) RemoveFunc(match func(T) bool) error {
	var prev *snode[T]
	for nd := l.head; nd != nil; prev, nd = nd, nd.next {
		if !match(nd.val) {
			continue
		}
		if prev == nil {
			l.head = nd.next
		} else {
			prev.next = nd.next
		}
		if nd == l.tail {
			l.tail = prev
		}
		l.n--
		l.nodes.release(nd)
		return nil
	}
	return fmt.Errorf("%w: no matching element among %d", ErrKey, l.n)
}

// Extend moves every node of other to the end of l in O(1). other is left
// empty. Spliced nodes count towards l's node limit but never fail.
func (l *List[T]) Extend(other *List[T]) {
	if other == nil || other == l || other.n == 0 {
		return
	}
	if l.tail == nil {
		l.head = other.head
	} else {
		l.tail.next = other.head
	}
	l.tail = other.tail
	l.n += other.n
	l.nodes.adopt(other.n)

	other.head, other.tail, other.n = nil, nil, 0
	other.nodes.abandon()
}

// ExtendCopy appends a copy of every element of other, which is not
// modified and may be l itself. On failure l is unchanged.
func (l *List[T]) ExtendCopy(other *List[T]) error {
	if other == nil || other.n == 0 {
		return nil
	}
	if lim := l.nodes.limit; lim > 0 && l.nodes.live+other.n > lim {
		return fmt.Errorf("%w: %d more nodes exceed limit of %d", ErrAlloc, other.n, lim)
	}

	oldTail, oldN := l.tail, l.n
	nd := other.head
	for range other.n {
		if err := l.PushBack(nd.val); err != nil {
			l.truncate(oldTail, oldN)
			return err
		}
		nd = nd.next
	}
	return nil
}

// truncate releases every node after tail, restoring length n.
func (l *List[T]) truncate(tail *snode[T], n int) {
	var nd *snode[T]
	if tail == nil {
		nd, l.head = l.head, nil
	} else {
		nd, tail.next = tail.next, nil
	}
	for nd != nil {
		next := nd.next
		l.nodes.release(nd)
		nd = next
	}
	l.tail, l.n = tail, n
}

// Clone returns a deep copy with freshly allocated nodes and the same
// settings.
func (l *List[T]) Clone() (*List[T], error) {
	c := &List[T]{nodes: l.nodes.fresh()}
	if err := c.ExtendCopy(l); err != nil {
		return nil, err
	}
	return c, nil
}

// Assign replaces the contents with xs, keeping the settings. The new
// chain is built before the old one is dropped, so on failure l is
// unchanged.
func (l *List[T]) Assign(xs ...T) error {
	c := List[T]{nodes: l.nodes.fresh()}
	for _, x := range xs {
		if err := c.PushBack(x); err != nil {
			return err
		}
	}
	*l = c
	return nil
}

// Move transfers the chain to a new List and leaves l empty with the same
// settings.
func (l *List[T]) Move() *List[T] {
	m := *l
	*l = List[T]{nodes: l.nodes.fresh()}
	return &m
}

// Clear releases every node exactly once and leaves the List empty.
func (l *List[T]) Clear() {
	for nd := l.head; nd != nil; {
		next := nd.next
		l.nodes.release(nd)
		nd = next
	}
	l.head, l.tail, l.n = nil, nil, 0
	l.nodes.rewind()
}

// Values returns a copy of the elements in order.
func (l *List[T]) Values() []T {
	out := make([]T, 0, l.n)
	for nd := l.head; nd != nil; nd = nd.next {
		out = append(out, nd.val)
	}
	return out
}

// All returns an iterator over index-element pairs from head to tail.
func (l *List[T]) All() iter.Seq2[int, T] {
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
