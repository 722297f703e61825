package seq

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var cmpEquateEmpty = cmpopts.EquateEmpty()

// checkVector asserts the capacity invariants of v.
func checkVector[T any](t *testing.T, v *Vector[T]) {
	t.Helper()
	if v.n < 0 || v.n > len(v.buf) {
		t.Fatalf("invariant 0 <= len <= cap violated: len = %d, cap = %d", v.n, len(v.buf))
	}
	if !v.manual && len(v.buf) != 0 && len(v.buf) < MinCapacity {
		t.Fatalf("cap = %d below MinCapacity without manual override", len(v.buf))
	}
}

func newIntVector(t *testing.T, opts ...Option) *Vector[int] {
	t.Helper()
	v, err := NewVector[int](opts...)
	require.NoError(t, err, "NewVector()")
	return v
}

func TestNewVector(t *testing.T) {
	tests := []struct {
		name       string
		opts       []Option
		wantCap    int
		wantFactor int
		wantManual bool
	}{
		{"defaults", nil, MinCapacity, DefaultResizeFactor, false},
		{"explicit min capacity", []Option{WithCapacity(MinCapacity)}, MinCapacity, 2, false},
		{"explicit larger capacity", []Option{WithCapacity(20)}, 20, 2, true},
		{"explicit smaller capacity", []Option{WithCapacity(2)}, 2, 2, true},
		{"negative capacity ignored", []Option{WithCapacity(-5)}, MinCapacity, 2, false},
		{"resize factor", []Option{WithResizeFactor(3)}, MinCapacity, 3, false},
		{"resize factor clamped", []Option{WithResizeFactor(1)}, MinCapacity, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newIntVector(t, tt.opts...)
			assert.Equal(t, tt.wantCap, v.Cap(), "Cap()")
			assert.Equal(t, tt.wantFactor, v.ResizeFactor(), "ResizeFactor()")
			assert.Equal(t, tt.wantManual, v.Manual(), "Manual()")
			assert.Zero(t, v.Len(), "Len()")
			assert.True(t, v.IsEmpty(), "IsEmpty()")
		})
	}
}

func TestNewVectorAllocFailure(t *testing.T) {
	_, err := NewVector[int](WithCapacity(64), WithMaxCapacity(32))
	require.ErrorIs(t, err, ErrAlloc)
	require.ErrorIs(t, err, ErrMemory)
}

func TestVectorFrom(t *testing.T) {
	tests := []struct {
		name    string
		src     []int
		opts    []Option
		wantCap int
	}{
		{"empty", nil, nil, 8},
		{"below floor", []int{1, 2, 3}, nil, 8},
		{"exactly floor", make([]int, 8), nil, 16},
		{"factor 3", make([]int, 8), []Option{WithResizeFactor(3)}, 24},
		{"larger explicit capacity", []int{1, 2}, []Option{WithCapacity(50)}, 50},
		{"explicit capacity too small", make([]int, 9), []Option{WithCapacity(4)}, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := VectorFrom(tt.src, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCap, v.Cap(), "Cap()")
			assert.Equal(t, len(tt.src), v.Len(), "Len()")
			if diff := cmp.Diff(tt.src, v.Values(), cmpEquateEmpty); diff != "" {
				t.Errorf("Values() diff (-want +got):\n%s", diff)
			}
			checkVector(t, v)
		})
	}

	src := []int{1, 2, 3}
	v, err := VectorFrom(src)
	require.NoError(t, err)
	src[0] = 100
	got, _ := v.At(0)
	assert.Equal(t, 1, got, "VectorFrom() must copy its source")
}

func TestVectorGrowShrinkScenario(t *testing.T) {
	v := newIntVector(t)
	require.Equal(t, 8, v.Cap())

	for i := range 9 {
		require.NoError(t, v.PushBack(i))
		checkVector(t, v)
	}
	assert.Equal(t, 16, v.Cap(), "Cap() after 9 pushes")
	assert.Equal(t, 1, v.Metrics().Grows, "Grows after 9 pushes")

	for v.Len() > 3 {
		_, err := v.PopBack()
		require.NoError(t, err)
		checkVector(t, v)
	}
	assert.Equal(t, 8, v.Cap(), "Cap() after popping to 3")
	assert.Equal(t, 1, v.Metrics().Shrinks, "Shrinks after popping to 3")
	if diff := cmp.Diff([]int{0, 1, 2}, v.Values()); diff != "" {
		t.Errorf("Values() diff (-want +got):\n%s", diff)
	}
}

func TestVectorShrinkRespectsFloorAndFactor(t *testing.T) {
	v := newIntVector(t, WithResizeFactor(4))
	for i := range 33 {
		require.NoError(t, v.PushBack(i))
	}
	require.Equal(t, 128, v.Cap()) // 8 -> 32 -> 128

	for v.Len() > 0 {
		_, err := v.PopFront()
		require.NoError(t, err)
		checkVector(t, v)
	}
	assert.Equal(t, MinCapacity, v.Cap(), "Cap() once empty")
}

func TestVectorRoundTrip(t *testing.T) {
	v := newIntVector(t)
	for i := range 20 {
		require.NoError(t, v.PushBack(i))
	}
	beforeLen, beforeCap := v.Len(), v.Cap()

	require.NoError(t, v.PushBack(99))
	got, err := v.PopBack()
	require.NoError(t, err)
	assert.Equal(t, 99, got)
	assert.Equal(t, beforeLen, v.Len())
	assert.Equal(t, beforeCap, v.Cap())
}

func TestVectorNegativeIndexing(t *testing.T) {
	v, err := VectorOf(10, 20, 30, 40)
	require.NoError(t, err)
	n := v.Len()

	last, err := v.At(-1)
	require.NoError(t, err)
	want, _ := v.At(n - 1)
	assert.Equal(t, want, last, "v[-1] == v[n-1]")

	first, err := v.At(-n)
	require.NoError(t, err)
	want, _ = v.At(0)
	assert.Equal(t, want, first, "v[-n] == v[0]")

	for _, i := range []int{-n - 1, n} {
		_, err := v.At(i)
		assert.ErrorIsf(t, err, ErrIndex, "At(%d)", i)
		assert.ErrorIsf(t, err, ErrLookup, "At(%d)", i)
		assert.ErrorIsf(t, v.Set(i, 0), ErrIndex, "Set(%d)", i)
		_, err = v.Erase(i)
		assert.ErrorIsf(t, err, ErrIndex, "Erase(%d)", i)
	}

	require.NoError(t, v.Set(-2, 33))
	got, _ := v.At(2)
	assert.Equal(t, 33, got)
}

func TestVectorInsertErase(t *testing.T) {
	v, err := VectorOf(1, 2, 3)
	require.NoError(t, err)

	steps := []struct {
		name string
		do   func() error
		want []int
	}{
		{"insert middle", func() error { return v.Insert(1, 9) }, []int{1, 9, 2, 3}},
		{"insert at len", func() error { return v.Insert(4, 7) }, []int{1, 9, 2, 3, 7}},
		{"insert negative", func() error { return v.Insert(-1, 5) }, []int{1, 9, 2, 3, 5, 7}},
		{"push front", func() error { return v.PushFront(0) }, []int{0, 1, 9, 2, 3, 5, 7}},
		{"erase middle", func() error { _, err := v.Erase(2); return err }, []int{0, 1, 2, 3, 5, 7}},
		{"erase last", func() error { _, err := v.Erase(-1); return err }, []int{0, 1, 2, 3, 5}},
		{"pop front", func() error { _, err := v.PopFront(); return err }, []int{1, 2, 3, 5}},
	}

	for _, s := range steps {
		require.NoError(t, s.do(), s.name)
		if diff := cmp.Diff(s.want, v.Values()); diff != "" {
			t.Fatalf("after %s, Values() diff (-want +got):\n%s", s.name, diff)
		}
		checkVector(t, v)
	}

	assert.ErrorIs(t, v.Insert(6, 0), ErrIndex, "Insert past len+1")
	assert.ErrorIs(t, v.Insert(-6, 0), ErrIndex, "Insert before -len")
}

func TestVectorInsertGrows(t *testing.T) {
	v := newIntVector(t)
	for i := range 8 {
		require.NoError(t, v.PushBack(i))
	}
	require.NoError(t, v.Insert(4, 100))
	assert.Equal(t, 16, v.Cap())
	if diff := cmp.Diff([]int{0, 1, 2, 3, 100, 4, 5, 6, 7}, v.Values()); diff != "" {
		t.Errorf("Values() diff (-want +got):\n%s", diff)
	}
}

func TestVectorEmpty(t *testing.T) {
	v := newIntVector(t)

	_, err := v.PopBack()
	assert.ErrorIs(t, err, ErrEmpty, "PopBack()")
	assert.ErrorIs(t, err, ErrSize, "PopBack()")
	_, err = v.PopFront()
	assert.ErrorIs(t, err, ErrEmpty, "PopFront()")
	_, err = v.Front()
	assert.ErrorIs(t, err, ErrEmpty, "Front()")
	_, err = v.Back()
	assert.ErrorIs(t, err, ErrEmpty, "Back()")
}

func TestVectorFrontBack(t *testing.T) {
	v, err := VectorOf("a", "b", "c")
	require.NoError(t, err)

	front, err := v.Front()
	require.NoError(t, err)
	back, err := v.Back()
	require.NoError(t, err)
	assert.Equal(t, "a", front)
	assert.Equal(t, "c", back)
}

func TestVectorRemoveFunc(t *testing.T) {
	v, err := VectorOf(1, 5, 5, 2)
	require.NoError(t, err)

	found, err := v.RemoveFunc(Equal(5))
	require.NoError(t, err)
	assert.True(t, found)
	if diff := cmp.Diff([]int{1, 5, 2}, v.Values()); diff != "" {
		t.Errorf("Values() diff (-want +got):\n%s", diff)
	}

	found, err = v.RemoveFunc(Equal(9))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 3, v.Len())

	assert.Equal(t, 2, v.IndexFunc(Equal(2)))
	assert.Equal(t, -1, v.IndexFunc(Equal(9)))
}

func TestVectorResize(t *testing.T) {
	v := newIntVector(t)
	for i := range 5 {
		require.NoError(t, v.PushBack(i))
	}

	require.NoError(t, v.Resize(40, true))
	assert.Equal(t, 64, v.Cap(), "Resize(40) capacity")
	assert.True(t, v.Manual())

	// Manual capacity suppresses automatic shrinking.
	for v.Len() > 1 {
		_, err := v.PopBack()
		require.NoError(t, err)
	}
	assert.Equal(t, 64, v.Cap(), "Cap() with manual capacity")

	// Resize never drops below the current length.
	require.NoError(t, v.PushBack(1))
	require.NoError(t, v.Resize(0, false))
	assert.Equal(t, MinCapacity, v.Cap())
	assert.False(t, v.Manual())
	assert.Equal(t, 2, v.Len())

	for i := range 20 {
		require.NoError(t, v.PushBack(i))
	}
	require.NoError(t, v.Resize(3, false))
	assert.Equal(t, 32, v.Cap(), "Resize(3) with 22 elements")
	assert.Equal(t, 22, v.Len())
}

func TestVectorManualCapacity(t *testing.T) {
	v := newIntVector(t, WithCapacity(20))
	for i := range 21 {
		require.NoError(t, v.PushBack(i))
	}
	assert.Equal(t, 40, v.Cap(), "growth from an explicit capacity")

	for v.Len() > 0 {
		_, err := v.PopBack()
		require.NoError(t, err)
	}
	assert.Equal(t, 40, v.Cap(), "no automatic shrink with explicit capacity")

	v.Clear()
	assert.False(t, v.Manual(), "Clear() re-enables shrinking")
}

func TestVectorSmallExplicitCapacity(t *testing.T) {
	v := newIntVector(t, WithCapacity(1))
	for i := range 3 {
		require.NoError(t, v.PushBack(i))
		checkVector(t, v)
	}
	assert.Equal(t, 4, v.Cap())
}

func TestVectorResizeFailureKeepsState(t *testing.T) {
	v := newIntVector(t, WithMaxCapacity(8))
	for i := range 8 {
		require.NoError(t, v.PushBack(i))
	}
	before := v.Values()

	err := v.PushBack(8)
	require.ErrorIs(t, err, ErrResize)
	require.ErrorIs(t, err, ErrMemory)
	assert.Equal(t, KindResize, KindOf(err))

	assert.ErrorIs(t, v.Insert(0, -1), ErrResize)
	assert.ErrorIs(t, v.Resize(100, true), ErrResize)
	assert.False(t, v.Manual(), "failed Resize must not switch to manual capacity")

	assert.Equal(t, 8, v.Cap())
	if diff := cmp.Diff(before, v.Values()); diff != "" {
		t.Errorf("Values() changed by failed reallocation (-want +got):\n%s", diff)
	}
}

func TestVectorExtend(t *testing.T) {
	a, err := VectorOf(1, 2, 3)
	require.NoError(t, err)
	b, err := VectorFrom([]int{4, 5, 6, 7, 8, 9})
	require.NoError(t, err)

	require.NoError(t, a.Extend(b))
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5, 6, 7, 8, 9}, a.Values()); diff != "" {
		t.Errorf("Values() diff (-want +got):\n%s", diff)
	}
	assert.Equal(t, 16, a.Cap())
	assert.Equal(t, 1, a.Metrics().Grows, "Extend reallocates once")
	assert.Equal(t, 6, b.Len(), "Extend leaves the source intact")

	require.NoError(t, a.Extend(a))
	assert.Equal(t, 18, a.Len())
	got, _ := a.At(9)
	assert.Equal(t, 1, got)

	require.NoError(t, a.Extend(nil))
	assert.Equal(t, 18, a.Len())
}

func TestConcat(t *testing.T) {
	a, _ := VectorOf(1, 2)
	b, _ := VectorOf(3)

	c, err := Concat(a, b)
	require.NoError(t, err)
	if diff := cmp.Diff([]int{1, 2, 3}, c.Values()); diff != "" {
		t.Errorf("Concat() diff (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 1, b.Len())
}

func TestConcatNil(t *testing.T) {
	b, _ := VectorOf(3, 4)

	c, err := Concat(nil, b)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, c.Values())
	assert.Equal(t, MinCapacity, c.Cap())

	c, err = Concat(b, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, c.Values())

	c, err = Concat[int](nil, nil)
	require.NoError(t, err)
	assert.Zero(t, c.Len())
	checkVector(t, c)
}

func TestVectorCloneIndependent(t *testing.T) {
	v, _ := VectorOf(1, 2, 3)
	c, err := v.Clone()
	require.NoError(t, err)

	require.NoError(t, c.Set(0, 100))
	require.NoError(t, c.PushBack(4))

	got, _ := v.At(0)
	assert.Equal(t, 1, got)
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, v.Cap(), c.Cap())
}

func TestVectorMove(t *testing.T) {
	v, _ := VectorOf(1, 2, 3)
	m := v.Move()

	if diff := cmp.Diff([]int{1, 2, 3}, m.Values()); diff != "" {
		t.Errorf("moved Values() diff (-want +got):\n%s", diff)
	}
	assert.Zero(t, v.Len())
	assert.Zero(t, v.Cap())
	assert.False(t, v.Manual(), "moved-from Vector is a zero Vector")

	// The moved-from Vector is a usable zero value.
	require.NoError(t, v.PushBack(7))
	assert.Equal(t, MinCapacity, v.Cap())
	got, _ := m.At(0)
	assert.Equal(t, 1, got, "source reuse must not touch the moved buffer")
}

func TestVectorZeroValue(t *testing.T) {
	var v Vector[string]
	assert.Zero(t, v.Cap(), "zero Vector has no buffer")
	assert.False(t, v.Manual())
	_, err := v.PopBack()
	require.ErrorIs(t, err, ErrEmpty)

	require.NoError(t, v.PushFront("b"))
	require.NoError(t, v.PushFront("a"))
	assert.Equal(t, DefaultResizeFactor, v.ResizeFactor())
	if diff := cmp.Diff([]string{"a", "b"}, v.Values()); diff != "" {
		t.Errorf("Values() diff (-want +got):\n%s", diff)
	}
}

func TestVectorAssign(t *testing.T) {
	v := newIntVector(t, WithCapacity(100))
	require.NoError(t, v.Assign(1, 2, 3))
	assert.Equal(t, MinCapacity, v.Cap())
	assert.False(t, v.Manual())
	if diff := cmp.Diff([]int{1, 2, 3}, v.Values()); diff != "" {
		t.Errorf("Values() diff (-want +got):\n%s", diff)
	}

	limited := newIntVector(t, WithMaxCapacity(8))
	require.NoError(t, limited.PushBack(1))
	err := limited.Assign(make([]int, 8)...)
	require.ErrorIs(t, err, ErrAlloc)
	assert.Equal(t, 1, limited.Len(), "failed Assign leaves contents unchanged")
}

func TestVectorSize(t *testing.T) {
	v := newIntVector(t)
	assert.Equal(t, MinCapacity*sizeOf[int](), v.Size())
	v.SetResizeFactor(0)
	assert.Equal(t, 2, v.ResizeFactor())
}

func TestVectorAll(t *testing.T) {
	v, _ := VectorOf(5, 6, 7, 8)
	var idx, vals []int
	for i, x := range v.All() {
		if i == 3 {
			break
		}
		idx = append(idx, i)
		vals = append(vals, x)
	}
	assert.Equal(t, []int{0, 1, 2}, idx)
	assert.Equal(t, []int{5, 6, 7}, vals)
}

func TestVectorLogsReallocations(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	v := newIntVector(t, WithLogger(zap.New(core)), WithMaxCapacity(16))

	for i := range 16 {
		require.NoError(t, v.PushBack(i))
	}
	require.Error(t, v.PushBack(16))

	assert.Equal(t, 1, logs.FilterMessage("vector reallocated").Len())
	assert.Equal(t, 1, logs.FilterMessage("vector reallocation failed").Len())
}

func TestVectorRandomOps(t *testing.T) {
	rng := rand.New(rand.NewPCG(0, 0)) //nolint:gosec // Reproducibility is useful in tests

	v := newIntVector(t)
	var want []int
	for i := range 2000 {
		switch op := rng.IntN(6); {
		case op < 2 || len(want) == 0:
			require.NoError(t, v.PushBack(i))
			want = append(want, i)
		case op == 2:
			j := rng.IntN(len(want) + 1)
			require.NoError(t, v.Insert(j, i))
			want = slices.Insert(want, j, i)
		case op == 3:
			got, err := v.PopBack()
			require.NoError(t, err)
			require.Equal(t, want[len(want)-1], got)
			want = want[:len(want)-1]
		case op == 4:
			j := rng.IntN(len(want))
			got, err := v.Erase(j - len(want)) // negative form
			require.NoError(t, err)
			require.Equal(t, want[j], got)
			want = slices.Delete(want, j, j+1)
		default:
			got, err := v.PopFront()
			require.NoError(t, err)
			require.Equal(t, want[0], got)
			want = want[1:]
		}
		checkVector(t, v)
	}

	if diff := cmp.Diff(want, v.Values(), cmpEquateEmpty); diff != "" {
		t.Errorf("Values() diff (-want +got):\n%s", diff)
	}
}

func TestVectorErrorKinds(t *testing.T) {
	v := newIntVector(t)
	_, err := v.At(0)
	assert.Equal(t, KindIndex, KindOf(err))
	assert.False(t, errors.Is(err, ErrSize))
}
