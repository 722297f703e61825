// Package seq implements generic sequence containers for Go.
//
// # Overview
//
// The package provides:
//
//   - Vector: a contiguous array that grows and shrinks by a resize factor
//   - List: a singly-linked sequence with O(1) pushes at both ends
//   - DList: a doubly-linked sequence with O(1) pushes and pops at both ends
//   - Array: a fixed-length buffer with shift-based insert and erase
//   - Queue and Stack: bounded FIFO and LIFO adapters over any Sequence
//
// # Basic Usage
//
//	v, err := seq.NewVector[int]()
//	if err != nil {
//		return err
//	}
//	v.PushBack(1)
//	v.PushBack(2)
//	last, _ := v.At(-1) // negative indices count from the end
//
//	l, _ := seq.DListOf(1, 2, 3)
//	l.Insert(1, 99) // [1 99 2 3]
//
//	q := seq.NewQueue[string](10) // at most 10 elements
//	if err := q.Push("job"); errors.Is(err, seq.ErrOverflow) {
//		// queue full
//	}
//
// # Errors
//
// Every failure wraps exactly one of ErrIndex, ErrKey, ErrEmpty, ErrOverflow,
// ErrAlloc or ErrResize, each of which also matches its group (ErrLookup,
// ErrSize or ErrMemory) under errors.Is. KindOf recovers the kind for use in
// a switch.
//
// # Memory Layout
//
// A Vector owns a single buffer. When a push finds it full, a new buffer of
// capacity*factor slots is allocated and the elements are copied over; when
// a removal leaves fewer than capacity/factor elements, the buffer shrinks by
// the same factor, never below MinCapacity. A reallocation that fails leaves
// the Vector as it was.
//
// List and DList nodes are carved from a per-list arena that allocates
// chunks of node slots (default 64) and recycles removed nodes. Each node is
// owned by exactly one forward link; DList back-links are used only for
// traversal.
//
// # Performance Characteristics
//
//   - Vector.PushBack: O(1) amortized
//   - Vector.PushFront, Insert, Erase: O(n)
//   - List.PopBack and indexed access: O(n)
//   - DList indexed access: O(min(i, n-i))
//   - List/DList Extend: O(1), the source is left empty
//
// # Thread Safety
//
// No container is safe for concurrent use.
//
// # Metrics and Monitoring
//
//	m := v.Metrics()
//	fmt.Printf("Utilization: %.2f%%\n", m.Utilization*100)
//	fmt.Printf("Grows: %d, shrinks: %d\n", m.Grows, m.Shrinks)
//
// Pass WithLogger to have reallocations reported through a zap logger.
package seq
