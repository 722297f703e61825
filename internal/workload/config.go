// Package workload describes scripted container workloads in YAML and
// replays them against the seq containers.
package workload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Container names accepted in Config.Container and Config.Backing.
const (
	Vector = "vector"
	List   = "list"
	DList  = "dlist"
	Array  = "array"
	Queue  = "queue"
	Stack  = "stack"
)

// ErrInvalid is returned by Validate, and by Load and Run through it, for a
// workload that cannot be replayed.
var ErrInvalid = errors.New("invalid workload")

// Config is a workload file.
type Config struct {
	Container string `yaml:"container"`
	// Backing selects the Sequence behind a queue or stack. Empty means the
	// adapter's default.
	Backing      string `yaml:"backing,omitempty"`
	ResizeFactor int    `yaml:"resize_factor,omitempty"`
	Capacity     int    `yaml:"capacity,omitempty"`
	MaxCapacity  int    `yaml:"max_capacity,omitempty"`
	MaxLength    int    `yaml:"max_length,omitempty"`
	MaxNodes     int    `yaml:"max_nodes,omitempty"`
	ChunkSize    int    `yaml:"chunk_size,omitempty"`
	// Length is the fixed length of an array. Zero means len(Values).
	Length int   `yaml:"length,omitempty"`
	Values []int `yaml:"values,omitempty"`
	Ops    []Op  `yaml:"ops"`
}

// Op is one step of a workload. Index and Value are used by the operations
// that take them. Target is the new capacity for resize, and Manual marks
// that capacity as pinned.
type Op struct {
	Op     string `yaml:"op"`
	Index  int    `yaml:"index,omitempty"`
	Value  int    `yaml:"value,omitempty"`
	Target int    `yaml:"target,omitempty"`
	Manual bool   `yaml:"manual,omitempty"`
}

// supported lists the operations each container accepts.
var supported = map[string][]string{
	Vector: {"push_back", "push_front", "pop_back", "pop_front", "insert", "erase", "set", "get", "remove", "find", "resize", "clear", "front", "back"},
	List:   {"push_back", "push_front", "pop_back", "pop_front", "insert", "erase", "set", "get", "remove", "find", "clear", "front", "back"},
	DList:  {"push_back", "push_front", "pop_back", "pop_front", "insert", "erase", "set", "get", "remove", "find", "clear", "front", "back"},
	Array:  {"get", "set", "insert", "erase", "remove", "find"},
	Queue:  {"push", "pop", "front", "back", "clear"},
	Stack:  {"push", "pop", "top", "clear"},
}

// Supports reports whether container accepts op.
func Supports(container, op string) bool {
	return slices.Contains(supported[container], op)
}

// Validate checks that the container is known and accepts every op.
func (c *Config) Validate() error {
	if _, ok := supported[c.Container]; !ok {
		return fmt.Errorf("%w: unknown container %q", ErrInvalid, c.Container)
	}
	switch c.Backing {
	case "":
	case Vector, List, DList:
		if c.Container != Queue && c.Container != Stack {
			return fmt.Errorf("%w: backing only applies to queue and stack, not %s", ErrInvalid, c.Container)
		}
	default:
		return fmt.Errorf("%w: unknown backing %q", ErrInvalid, c.Backing)
	}
	if c.Container == Array && c.Length == 0 && len(c.Values) == 0 {
		return fmt.Errorf("%w: array needs a length or initial values", ErrInvalid)
	}
	for i, op := range c.Ops {
		if !Supports(c.Container, op.Op) {
			return fmt.Errorf("%w: op %d: %s does not support %q", ErrInvalid, i, c.Container, op.Op)
		}
	}
	return nil
}

// Parse decodes and validates a workload. Unknown keys are rejected so a
// misspelled field fails instead of silently defaulting to zero.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: failed to parse workload: %w", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and validates a workload file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workload: %w", err)
	}
	return Parse(data)
}

// Synthetic returns a workload that pushes n values and then removes them
// all, using the container's natural push and pop.
func Synthetic(container string, n int) *Config {
	push, pop := "push_back", "pop_back"
	switch container {
	case Queue, Stack:
		push, pop = "push", "pop"
	case List:
		pop = "pop_front"
	}
	cfg := &Config{Container: container, Ops: make([]Op, 0, 2*n)}
	for i := range n {
		cfg.Ops = append(cfg.Ops, Op{Op: push, Value: i})
	}
	for range n {
		cfg.Ops = append(cfg.Ops, Op{Op: pop})
	}
	return cfg
}
