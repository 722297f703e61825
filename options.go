package seq

import "go.uber.org/zap"

const (
	// MinCapacity is the capacity floor a Vector never shrinks below.
	MinCapacity = 8
	// DefaultResizeFactor is the growth and shrink multiplier of a Vector.
	DefaultResizeFactor = 2
	// DefaultChunkSize is the number of node slots a list slab allocates at
	// once.
	DefaultChunkSize = 64
)

// config collects the settings shared by every container constructor.
type config struct {
	capacity    int
	capacitySet bool
	factor      int
	maxCapacity int // 0 means unlimited
	maxNodes    int // 0 means unlimited
	chunkSize   int
	log         *zap.Logger
}

func defaultConfig() config {
	return config{
		capacity:  MinCapacity,
		factor:    DefaultResizeFactor,
		chunkSize: DefaultChunkSize,
		log:       zap.NewNop(),
	}
}

func newConfig(opts []Option) config {
	c := defaultConfig()
	for _, o := range opts {
		o(&c)
	}
	return c
}

// An Option configures a container at construction.
type Option func(*config)

// WithCapacity requests an explicit initial Vector capacity. Any value other
// than MinCapacity, including one below it, switches the Vector to manual
// capacity so that it does not shrink automatically. Negative values are
// ignored.
func WithCapacity(n int) Option {
	return func(c *config) {
		if n < 0 {
			return
		}
		c.capacity = n
		c.capacitySet = n != MinCapacity
	}
}

// WithResizeFactor sets the Vector growth/shrink multiplier. Values below 2
// are raised to 2.
func WithResizeFactor(f int) Option {
	return func(c *config) {
		c.factor = clampFactor(f)
	}
}

// WithMaxCapacity caps the number of element slots a Vector may allocate.
// Allocations above the cap fail with ErrAlloc or ErrResize. Zero disables
// the cap.
func WithMaxCapacity(n int) Option {
	return func(c *config) {
		c.maxCapacity = max(n, 0)
	}
}

// WithMaxNodes caps the number of nodes a List or DList may hold live at
// once. Pushes beyond the cap fail with ErrAlloc. Zero disables the cap.
func WithMaxNodes(n int) Option {
	return func(c *config) {
		c.maxNodes = max(n, 0)
	}
}

// WithChunkSize sets how many node slots a list allocates per chunk.
// If n <= 0, DefaultChunkSize is used.
func WithChunkSize(n int) Option {
	return func(c *config) {
		if n <= 0 {
			n = DefaultChunkSize
		}
		c.chunkSize = n
	}
}

// WithLogger attaches a logger that receives reallocation events at debug
// level and allocation failures at warn level. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

func clampFactor(f int) int {
	if f < 2 {
		return 2
	}
	return f
}
