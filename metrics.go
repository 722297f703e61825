package seq

// slotsInUse returns how many slots of the arena's own chunks have been
// handed out, including ones since released to the free list.
func (a *arena[N]) slotsInUse() int {
	sum := 0
	for _, c := range a.chunks {
		sum += c.offset
	}
	return sum
}

// capacity returns the total number of slots across the arena's own chunks.
func (a *arena[N]) capacity() int {
	sum := 0
	for _, c := range a.chunks {
		sum += len(c.slots)
	}
	return sum
}

// utilization returns the ratio of handed-out slots to capacity (0.0 to
// 1.0), or 0 if the arena has no chunks.
func (a *arena[N]) utilization() float64 {
	capacity := a.capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.slotsInUse()) / float64(capacity)
}

func (a *arena[N]) metrics(n int) ListMetrics {
	return ListMetrics{
		Len:         n,
		NodesLive:   a.live,
		NodesFree:   len(a.free),
		NumChunks:   len(a.chunks),
		ChunkSize:   a.chunkSize,
		Capacity:    a.capacity(),
		Utilization: a.utilization(),
	}
}

// ListMetrics is a snapshot of a List's or DList's node storage.
type ListMetrics struct {
	Len         int     // Elements in the list
	NodesLive   int     // Nodes currently linked, including spliced-in ones
	NodesFree   int     // Released nodes waiting for reuse
	NumChunks   int     // Chunks owned by the list's arena
	ChunkSize   int     // Slots per chunk
	Capacity    int     // Slots across owned chunks
	Utilization float64 // Ratio of handed-out slots to Capacity (0.0-1.0)
}

// Metrics returns a snapshot of the List's node storage.
func (l *List[T]) Metrics() ListMetrics {
	return l.nodes.metrics(l.n)
}

// Metrics returns a snapshot of the DList's node storage.
func (l *DList[T]) Metrics() ListMetrics {
	return l.nodes.metrics(l.n)
}

// VectorMetrics is a snapshot of a Vector's buffer.
type VectorMetrics struct {
	Len         int     // Elements present
	Cap         int     // Allocated slots
	Bytes       int     // Buffer size in bytes
	Utilization float64 // Len / Cap (0.0-1.0)
	Grows       int     // Reallocations to a larger buffer
	Shrinks     int     // Automatic reallocations to a smaller buffer
}

// Metrics returns a snapshot of the Vector's buffer.
func (v *Vector[T]) Metrics() VectorMetrics {
	m := VectorMetrics{
		Len:     v.n,
		Cap:     len(v.buf),
		Bytes:   v.Size(),
		Grows:   v.grows,
		Shrinks: v.shrinks,
	}
	if m.Cap > 0 {
		m.Utilization = float64(m.Len) / float64(m.Cap)
	}
	return m
}
