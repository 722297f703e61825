package workload

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pavanmanishd/seq"
)

// Result is the outcome of replaying a workload.
type Result struct {
	Container string `yaml:"container"`
	Len       int    `yaml:"len"`
	Values    []int  `yaml:"values"`
	// Returned holds the value produced by every pop, get, find, front,
	// back and top that succeeded, in order.
	Returned []int          `yaml:"returned,omitempty"`
	Errors   []OpError      `yaml:"errors,omitempty"`
	Metrics  map[string]any `yaml:"metrics,omitempty"`
}

// OpError records an operation that failed. Failures are part of the
// result, not a reason to stop the replay.
type OpError struct {
	Step    int    `yaml:"step"`
	Op      string `yaml:"op"`
	Kind    string `yaml:"kind"`
	Message string `yaml:"message"`
}

// target is a container under replay.
type target interface {
	// apply performs op and returns the value it produced, if any.
	apply(op Op) (val int, ok bool, err error)
	values() []int
	len() int
	metrics() map[string]any
}

// Run replays cfg against a freshly built container. It returns an error
// only if cfg is invalid, the initial values cannot be loaded, or ctx is
// done.
func Run(ctx context.Context, cfg *Config, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	t, err := build(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", cfg.Container, err)
	}
	log.Info("Replaying workload",
		zap.String("container", cfg.Container),
		zap.Int("initial", len(cfg.Values)),
		zap.Int("ops", len(cfg.Ops)),
	)

	res := &Result{Container: cfg.Container}
	for i, op := range cfg.Ops {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		val, ok, err := t.apply(op)
		if err != nil {
			kind := seq.KindOf(err)
			log.Debug("Operation failed",
				zap.Int("step", i),
				zap.String("op", op.Op),
				zap.Stringer("kind", kind),
				zap.Error(err),
			)
			res.Errors = append(res.Errors, OpError{Step: i, Op: op.Op, Kind: kind.String(), Message: err.Error()})
			continue
		}
		if ok {
			res.Returned = append(res.Returned, val)
		}
	}

	res.Len = t.len()
	res.Values = t.values()
	res.Metrics = t.metrics()
	log.Info("Workload finished",
		zap.Int("len", res.Len),
		zap.Int("errors", len(res.Errors)),
	)
	return res, nil
}

func options(cfg *Config, log *zap.Logger) []seq.Option {
	opts := []seq.Option{seq.WithLogger(log)}
	if cfg.Capacity > 0 {
		opts = append(opts, seq.WithCapacity(cfg.Capacity))
	}
	if cfg.ResizeFactor > 0 {
		opts = append(opts, seq.WithResizeFactor(cfg.ResizeFactor))
	}
	if cfg.MaxCapacity > 0 {
		opts = append(opts, seq.WithMaxCapacity(cfg.MaxCapacity))
	}
	if cfg.MaxNodes > 0 {
		opts = append(opts, seq.WithMaxNodes(cfg.MaxNodes))
	}
	if cfg.ChunkSize > 0 {
		opts = append(opts, seq.WithChunkSize(cfg.ChunkSize))
	}
	return opts
}

func build(cfg *Config, log *zap.Logger) (target, error) {
	opts := options(cfg, log)
	switch cfg.Container {
	case Vector:
		v, err := seq.VectorFrom(cfg.Values, opts...)
		if err != nil {
			return nil, err
		}
		return &vectorTarget{v}, nil
	case List:
		l, err := seq.ListFrom(cfg.Values, opts...)
		if err != nil {
			return nil, err
		}
		return &listTarget{l}, nil
	case DList:
		l, err := seq.DListFrom(cfg.Values, opts...)
		if err != nil {
			return nil, err
		}
		return &listTarget{l}, nil
	case Array:
		a, err := seq.ArrayFrom(cfg.Values, cfg.Length)
		if err != nil {
			return nil, err
		}
		return &arrayTarget{a}, nil
	case Queue, Stack:
		return buildAdapter(cfg, opts)
	}
	return nil, fmt.Errorf("%w: unknown container %q", ErrInvalid, cfg.Container)
}

func buildAdapter(cfg *Config, opts []seq.Option) (target, error) {
	backing := cfg.Backing
	if backing == "" {
		backing = List
		if cfg.Container == Stack {
			backing = DList
		}
	}

	var (
		c   seq.Sequence[int]
		met func() map[string]any
	)
	switch backing {
	case Vector:
		v, err := seq.NewVector[int](opts...)
		if err != nil {
			return nil, err
		}
		c, met = v, (&vectorTarget{v}).metrics
	case List:
		l := seq.NewList[int](opts...)
		c, met = l, (&listTarget{l}).metrics
	case DList:
		l := seq.NewDList[int](opts...)
		c, met = l, (&listTarget{l}).metrics
	}

	t := &adapterTarget{backing: c, met: met}
	if cfg.Container == Queue {
		q := seq.NewQueueOn(c, cfg.MaxLength)
		t.push, t.pop, t.peek = q.Push, q.Pop, q.Front
		t.back = q.Back
	} else {
		s := seq.NewStackOn(c, cfg.MaxLength)
		t.push, t.pop, t.peek = s.Push, s.Pop, s.Top
	}
	for _, x := range cfg.Values {
		if err := t.push(x); err != nil {
			return nil, err
		}
	}
	return t, nil
}

type vectorTarget struct {
	v *seq.Vector[int]
}

func (t *vectorTarget) apply(op Op) (int, bool, error) {
	v := t.v
	switch op.Op {
	case "push_back":
		return 0, false, v.PushBack(op.Value)
	case "push_front":
		return 0, false, v.PushFront(op.Value)
	case "pop_back":
		return produced(v.PopBack())
	case "pop_front":
		return produced(v.PopFront())
	case "insert":
		return 0, false, v.Insert(op.Index, op.Value)
	case "erase":
		return produced(v.Erase(op.Index))
	case "set":
		return 0, false, v.Set(op.Index, op.Value)
	case "get":
		return produced(v.At(op.Index))
	case "remove":
		found, err := v.RemoveFunc(seq.Equal(op.Value))
		if err == nil && !found {
			err = notFound(op.Value)
		}
		return 0, false, err
	case "find":
		i := v.IndexFunc(seq.Equal(op.Value))
		if i < 0 {
			return 0, false, notFound(op.Value)
		}
		return i, true, nil
	case "resize":
		return 0, false, v.Resize(op.Target, op.Manual)
	case "clear":
		v.Clear()
		return 0, false, nil
	case "front":
		return produced(v.Front())
	case "back":
		return produced(v.Back())
	}
	return 0, false, unsupported(Vector, op)
}

func (t *vectorTarget) values() []int { return t.v.Values() }
func (t *vectorTarget) len() int      { return t.v.Len() }

func (t *vectorTarget) metrics() map[string]any {
	m := t.v.Metrics()
	return map[string]any{
		"cap":         m.Cap,
		"bytes":       m.Bytes,
		"utilization": m.Utilization,
		"grows":       m.Grows,
		"shrinks":     m.Shrinks,
		"manual":      t.v.Manual(),
	}
}

// linked is the method set shared by *seq.List and *seq.DList.
type linked interface {
	PushBack(int) error
	PushFront(int) error
	PopBack() (int, error)
	PopFront() (int, error)
	Insert(int, int) error
	Erase(int) (int, error)
	Set(int, int) error
	At(int) (int, error)
	Front() (int, error)
	Back() (int, error)
	RemoveFunc(func(int) bool) error
	IndexFunc(func(int) bool) (int, error)
	Clear()
	Len() int
	Values() []int
	Metrics() seq.ListMetrics
}

type listTarget struct {
	l linked
}

func (t *listTarget) apply(op Op) (int, bool, error) {
	l := t.l
	switch op.Op {
	case "push_back":
		return 0, false, l.PushBack(op.Value)
	case "push_front":
		return 0, false, l.PushFront(op.Value)
	case "pop_back":
		return produced(l.PopBack())
	case "pop_front":
		return produced(l.PopFront())
	case "insert":
		return 0, false, l.Insert(op.Index, op.Value)
	case "erase":
		return produced(l.Erase(op.Index))
	case "set":
		return 0, false, l.Set(op.Index, op.Value)
	case "get":
		return produced(l.At(op.Index))
	case "remove":
		return 0, false, l.RemoveFunc(seq.Equal(op.Value))
	case "find":
		return produced(l.IndexFunc(seq.Equal(op.Value)))
	case "clear":
		l.Clear()
		return 0, false, nil
	case "front":
		return produced(l.Front())
	case "back":
		return produced(l.Back())
	}
	return 0, false, unsupported("list", op)
}

func (t *listTarget) values() []int { return t.l.Values() }
func (t *listTarget) len() int      { return t.l.Len() }

func (t *listTarget) metrics() map[string]any {
	m := t.l.Metrics()
	return map[string]any{
		"nodes_live":  m.NodesLive,
		"nodes_free":  m.NodesFree,
		"chunks":      m.NumChunks,
		"chunk_size":  m.ChunkSize,
		"capacity":    m.Capacity,
		"utilization": m.Utilization,
	}
}

type arrayTarget struct {
	a *seq.Array[int]
}

func (t *arrayTarget) apply(op Op) (int, bool, error) {
	a := t.a
	switch op.Op {
	case "get":
		return produced(a.At(op.Index))
	case "set":
		return 0, false, a.Set(op.Index, op.Value)
	case "insert":
		return 0, false, a.Insert(op.Index, op.Value)
	case "erase":
		return produced(a.Erase(op.Index))
	case "remove":
		if !a.RemoveFunc(seq.Equal(op.Value)) {
			return 0, false, notFound(op.Value)
		}
		return 0, false, nil
	case "find":
		for i, x := range a.Values() {
			if x == op.Value {
				return i, true, nil
			}
		}
		return 0, false, notFound(op.Value)
	}
	return 0, false, unsupported(Array, op)
}

func (t *arrayTarget) values() []int { return t.a.Values() }
func (t *arrayTarget) len() int      { return t.a.Len() }

func (t *arrayTarget) metrics() map[string]any {
	return map[string]any{"bytes": t.a.Size()}
}

// adapterTarget replays against a Queue or Stack. back is nil for a Stack.
type adapterTarget struct {
	backing seq.Sequence[int]
	met     func() map[string]any
	push    func(int) error
	pop     func() (int, error)
	peek    func() (int, error)
	back    func() (int, error)
}

func (t *adapterTarget) apply(op Op) (int, bool, error) {
	switch op.Op {
	case "push":
		return 0, false, t.push(op.Value)
	case "pop":
		return produced(t.pop())
	case "front", "top":
		return produced(t.peek())
	case "back":
		if t.back != nil {
			return produced(t.back())
		}
	case "clear":
		t.backing.Clear()
		return 0, false, nil
	}
	return 0, false, unsupported("adapter", op)
}

func (t *adapterTarget) len() int { return t.backing.Len() }

func (t *adapterTarget) values() []int {
	if v, ok := t.backing.(interface{ Values() []int }); ok {
		return v.Values()
	}
	return nil
}

func (t *adapterTarget) metrics() map[string]any { return t.met() }

func produced(x int, err error) (int, bool, error) {
	if err != nil {
		return 0, false, err
	}
	return x, true, nil
}

func notFound(x int) error {
	return fmt.Errorf("%w: %d", seq.ErrKey, x)
}

func unsupported(container string, op Op) error {
	return fmt.Errorf("%w: %s does not support %q", ErrInvalid, container, op.Op)
}
