package seq

import (
	"errors"
	"fmt"
)

// Sequence is the capability set a Queue or Stack needs from its backing
// container. *Vector, *List and *DList all implement it.
type Sequence[T any] interface {
	PushBack(T) error
	PopBack() (T, error)
	PopFront() (T, error)
	Front() (T, error)
	Back() (T, error)
	Len() int
	Clear()
}

var (
	_ Sequence[int] = (*Vector[int])(nil)
	_ Sequence[int] = (*List[int])(nil)
	_ Sequence[int] = (*DList[int])(nil)
)

// bounded is the part shared by Queue and Stack: an exclusively owned
// backing container and an optional length limit.
type bounded[T any] struct {
	c      Sequence[T]
	maxLen int // 0 means unbounded
}

// clone deep-copies the backing container. Only *Vector, *List and *DList
// backings can be copied.
func (b *bounded[T]) clone() (bounded[T], error) {
	var c Sequence[T]
	switch s := b.c.(type) {
	case *Vector[T]:
		v, err := s.Clone()
		if err != nil {
			return bounded[T]{}, err
		}
		c = v
	case *List[T]:
		l, err := s.Clone()
		if err != nil {
			return bounded[T]{}, err
		}
		c = l
	case *DList[T]:
		l, err := s.Clone()
		if err != nil {
			return bounded[T]{}, err
		}
		c = l
	default:
		return bounded[T]{}, fmt.Errorf("%w: cannot copy a %T backing", errors.ErrUnsupported, b.c)
	}
	return bounded[T]{c: c, maxLen: b.maxLen}, nil
}

// move hands the elements to a new bounded and leaves b empty. A backing
// other than *Vector, *List or *DList moves as a whole and b gets a fresh
// one from empty.
func (b *bounded[T]) move(empty func() Sequence[T]) bounded[T] {
	var c Sequence[T]
	switch s := b.c.(type) {
	case *Vector[T]:
		c = s.Move()
	case *List[T]:
		c = s.Move()
	case *DList[T]:
		c = s.Move()
	default:
		c, b.c = b.c, empty()
	}
	return bounded[T]{c: c, maxLen: b.maxLen}
}

func (b *bounded[T]) push(x T) error {
	if b.maxLen > 0 && b.c.Len() >= b.maxLen {
		return fmt.Errorf("%w: length limit %d reached", ErrOverflow, b.maxLen)
	}
	return b.c.PushBack(x)
}

// A Queue is a FIFO adapter over a backing Sequence.
type Queue[T any] struct {
	bounded[T]
}

// NewQueue creates a Queue backed by a List. A maxLength of 0 leaves the
// Queue unbounded.
func NewQueue[T any](maxLength int) *Queue[T] {
	return NewQueueOn[T](NewList[T](), maxLength)
}

// NewQueueOn creates a Queue backed by c, which it takes ownership of.
func NewQueueOn[T any](c Sequence[T], maxLength int) *Queue[T] {
	return &Queue[T]{bounded[T]{c: c, maxLen: max(maxLength, 0)}}
}

// Push adds x at the back. It returns an error wrapping ErrOverflow if the
// Queue is at its length limit.
func (q *Queue[T]) Push(x T) error {
	return q.push(x)
}

// Pop removes and returns the element at the front.
func (q *Queue[T]) Pop() (T, error) {
	if q.c.Len() == 0 {
		var zero T
		return zero, emptyError("queue pop")
	}
	return q.c.PopFront()
}

// Front returns the oldest element.
func (q *Queue[T]) Front() (T, error) {
	return q.c.Front()
}

// Back returns the newest element.
func (q *Queue[T]) Back() (T, error) {
	return q.c.Back()
}

// Len returns the number of queued elements.
func (q *Queue[T]) Len() int { return q.c.Len() }

// IsEmpty reports whether the Queue has no elements.
func (q *Queue[T]) IsEmpty() bool { return q.c.Len() == 0 }

// MaxLength returns the length limit, or 0 if unbounded.
func (q *Queue[T]) MaxLength() int { return q.maxLen }

// Clear removes every element.
func (q *Queue[T]) Clear() { q.c.Clear() }

// Clone returns an independent deep copy with the same length limit. It
// fails with errors.ErrUnsupported if the backing is not a *Vector, *List
// or *DList.
func (q *Queue[T]) Clone() (*Queue[T], error) {
	b, err := q.clone()
	if err != nil {
		return nil, err
	}
	return &Queue[T]{b}, nil
}

// Move transfers the elements to a new Queue and leaves q empty with the
// same length limit.
func (q *Queue[T]) Move() *Queue[T] {
	return &Queue[T]{q.move(func() Sequence[T] { return NewList[T]() })}
}

// A Stack is a LIFO adapter over a backing Sequence.
type Stack[T any] struct {
	bounded[T]
}

// NewStack creates a Stack backed by a DList. A maxLength of 0 leaves the
// Stack unbounded.
func NewStack[T any](maxLength int) *Stack[T] {
	return NewStackOn[T](NewDList[T](), maxLength)
}

// NewStackOn creates a Stack backed by c, which it takes ownership of.
func NewStackOn[T any](c Sequence[T], maxLength int) *Stack[T] {
	return &Stack[T]{bounded[T]{c: c, maxLen: max(maxLength, 0)}}
}

// Push adds x on top. It returns an error wrapping ErrOverflow if the Stack
// is at its length limit.
func (s *Stack[T]) Push(x T) error {
	return s.push(x)
}

// Pop removes and returns the top element.
func (s *Stack[T]) Pop() (T, error) {
	if s.c.Len() == 0 {
		var zero T
		return zero, emptyError("stack pop")
	}
	return s.c.PopBack()
}

// Top returns the top element.
func (s *Stack[T]) Top() (T, error) {
	if s.c.Len() == 0 {
		var zero T
		return zero, emptyError("stack top")
	}
	return s.c.Back()
}

// Len returns the number of stacked elements.
func (s *Stack[T]) Len() int { return s.c.Len() }

// IsEmpty reports whether the Stack has no elements.
func (s *Stack[T]) IsEmpty() bool { return s.c.Len() == 0 }

// MaxLength returns the length limit, or 0 if unbounded.
func (s *Stack[T]) MaxLength() int { return s.maxLen }

// Clear removes every element.
func (s *Stack[T]) Clear() { s.c.Clear() }

// Clone returns an independent deep copy with the same length limit. It
// fails with errors.ErrUnsupported if the backing is not a *Vector, *List
// or *DList.
func (s *Stack[T]) Clone() (*Stack[T], error) {
	b, err := s.clone()
	if err != nil {
		return nil, err
	}
	return &Stack[T]{b}, nil
}

// Move transfers the elements to a new Stack and leaves s empty with the
// same length limit.
func (s *Stack[T]) Move() *Stack[T] {
	return &Stack[T]{s.move(func() Sequence[T] { return NewDList[T]() })}
}
