package seq

import (
	"fmt"

	"go.uber.org/zap"
)

// chunk is a block of node slots handed out in order.
type chunk[N any] struct {
	slots  []N
	offset int // next unused slot
}

// arena is a chunked node allocator. Slots are bump-allocated from the
// current chunk, and released nodes are recycled through a free list.
// Chunks are never moved or resized, so a *N stays valid for as long as the
// node is linked.
//
// An arena's chunks only ever hold nodes of the one list that owns the
// arena. When a list hands its chain to another list, its arena abandons the
// chunks instead of reusing them.
type arena[N any] struct {
	chunks    []chunk[N]
	cur       int // index into chunks; meaningful only if len(chunks) > 0
	chunkSize int
	free      []*N
	live      int
	limit     int // 0 means unlimited
	log       *zap.Logger
}

func newArena[N any](cfg config) arena[N] {
	return arena[N]{
		chunkSize: cfg.chunkSize,
		limit:     cfg.maxNodes,
		log:       cfg.log,
	}
}

// fresh returns an empty arena with the same settings.
func (a *arena[N]) fresh() arena[N] {
	return arena[N]{
		chunkSize: a.chunkSize,
		limit:     a.limit,
		log:       a.log,
	}
}

func (a *arena[N]) logger() *zap.Logger {
	if a.log == nil {
		return zap.NewNop()
	}
	return a.log
}

// alloc returns a pointer to a zeroed node slot.
func (a *arena[N]) alloc() (*N, error) {
	if a.limit > 0 && a.live >= a.limit {
		return nil, fmt.Errorf("%w: node limit of %d reached", ErrAlloc, a.limit)
	}

	// Fast path: recycle a released node
	if n := len(a.free); n > 0 {
		p := a.free[n-1]
		a.free[n-1] = nil
		a.free = a.free[:n-1]
		a.live++
		return p, nil
	}

	// Bump path: next slot of the current chunk
	if len(a.chunks) > 0 {
		c := &a.chunks[a.cur]
		if c.offset < len(c.slots) {
			p := &c.slots[c.offset]
			c.offset++
			a.live++
			return p, nil
		}
	}

	return a.allocSlow()
}

// allocSlow moves to the next chunk with room, growing if none is left.
func (a *arena[N]) allocSlow() (*N, error) {
	for a.cur+1 < len(a.chunks) {
		a.cur++
		if c := &a.chunks[a.cur]; c.offset < len(c.slots) {
			p := &c.slots[c.offset]
			c.offset++
			a.live++
			return p, nil
		}
	}
	if err := a.grow(); err != nil {
		return nil, err
	}
	c := &a.chunks[a.cur]
	p := &c.slots[c.offset]
	c.offset++
	a.live++
	return p, nil
}

// grow appends a new chunk of chunkSize slots and makes it current.
func (a *arena[N]) grow() error {
	size := a.chunkSize
	if size <= 0 {
		size = DefaultChunkSize
		a.chunkSize = size
	}
	slots, err := allocSlice[N](size, 0, ErrAlloc)
	if err != nil {
		a.logger().Warn("node chunk allocation failed", zap.Int("slots", size), zap.Error(err))
		return err
	}
	a.chunks = append(a.chunks, chunk[N]{slots: slots})
	a.cur = len(a.chunks) - 1
	a.logger().Debug("node chunk allocated",
		zap.Int("chunk", a.cur),
		zap.Int("slots", size),
	)
	return nil
}

// release zeroes a node and returns it to the free list. Each linked node
// must be released exactly once.
func (a *arena[N]) release(p *N) {
	var zero N
	*p = zero
	a.free = append(a.free, p)
	a.live--
}

// rewind makes every slot of the arena's own chunks reusable. It must only
// be called when no node is live.
func (a *arena[N]) rewind() {
	for i := range a.chunks {
		a.chunks[i].offset = 0
	}
	clear(a.free)
	a.free = a.free[:0]
	a.cur = 0
}

// abandon forgets every chunk without reusing them, after the nodes they
// hold were handed to another list.
func (a *arena[N]) abandon() {
	*a = a.fresh()
}

// adopt accounts for n nodes spliced in from another list's arena.
func (a *arena[N]) adopt(n int) {
	a.live += n
}
