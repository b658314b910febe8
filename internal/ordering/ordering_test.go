package ordering

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore keeps a single day's orders in memory.
type memStore struct {
	orders map[uuid.UUID]int
}

func newMemStore(n int) (*memStore, []uuid.UUID) {
	s := &memStore{orders: map[uuid.UUID]int{}}
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
		s.orders[ids[i]] = i
	}
	return s, ids
}

func (m *memStore) ListIDsByDay(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(m.orders))
	for id := range m.orders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return m.orders[ids[i]] < m.orders[ids[j]] })
	return ids, nil
}

func (m *memStore) MaxOrder(_ context.Context, _ uuid.UUID) (int, bool, error) {
	if len(m.orders) == 0 {
		return 0, false, nil
	}
	max := -1
	for _, o := range m.orders {
		if o > max {
			max = o
		}
	}
	return max, true, nil
}

func (m *memStore) ShiftOrders(_ context.Context, _ uuid.UUID, delta int) error {
	for id := range m.orders {
		m.orders[id] += delta
	}
	return nil
}

func (m *memStore) SetOrders(_ context.Context, _ uuid.UUID, ids []uuid.UUID) error {
	for i, id := range ids {
		m.orders[id] = i
	}
	return nil
}

func (m *memStore) values() []int {
	out := make([]int, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out
}

func TestNextOrder(t *testing.T) {
	assert.Equal(t, 0, NextOrder(nil))
	assert.Equal(t, 3, NextOrder([]int{0, 1, 2}))
	assert.Equal(t, 6, NextOrder([]int{5, 0}))
}

func TestIsDense(t *testing.T) {
	assert.True(t, IsDense(nil))
	assert.True(t, IsDense([]int{2, 0, 1}))
	assert.False(t, IsDense([]int{0, 2}))
	assert.False(t, IsDense([]int{0, 0}))
	assert.False(t, IsDense([]int{-1, 0}))
}

func TestValidatePermutation(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	assert.NoError(t, ValidatePermutation([]uuid.UUID{a, b, c}, []uuid.UUID{c, a, b}))
	assert.ErrorIs(t, ValidatePermutation([]uuid.UUID{a, b}, []uuid.UUID{a}), ErrNotPermutation)
	assert.ErrorIs(t, ValidatePermutation([]uuid.UUID{a, b}, []uuid.UUID{a, a}), ErrNotPermutation)
	assert.ErrorIs(t, ValidatePermutation([]uuid.UUID{a, b}, []uuid.UUID{a, c}), ErrNotPermutation)
}

func TestMove(t *testing.T) {
	in := []string{"A", "B", "C"}

	got, err := Move(in, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, got)
	assert.Equal(t, []string{"A", "B", "C"}, in, "input must not be modified")

	got, err = Move(in, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "A"}, got)

	got, err = Move(in, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, in, got)

	_, err = Move(in, 3, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestInsertAtAndRemove(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	assert.Equal(t, []uuid.UUID{a, c, b}, InsertAt([]uuid.UUID{a, b}, 1, c))
	assert.Equal(t, []uuid.UUID{a, b, c}, InsertAt([]uuid.UUID{a, b}, 99, c))
	assert.Equal(t, []uuid.UUID{c, a, b}, InsertAt([]uuid.UUID{a, b}, -4, c))
	assert.Equal(t, []uuid.UUID{a, c}, Remove([]uuid.UUID{a, b, c}, b))
}

func TestService_InsertAtEnd(t *testing.T) {
	ctx := context.Background()
	svc := NewService()

	empty, _ := newMemStore(0)
	order, err := svc.InsertAtEnd(ctx, empty, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0, order)

	store, _ := newMemStore(3)
	order, err = svc.InsertAtEnd(ctx, store, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 3, order)
}

func TestService_InsertAtStartShiftsDay(t *testing.T) {
	ctx := context.Background()
	store, ids := newMemStore(2)

	order, err := NewService().InsertAtStart(ctx, store, uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 0, order)
	assert.Equal(t, 1, store.orders[ids[0]])
	assert.Equal(t, 2, store.orders[ids[1]])
}

func TestService_Renumber(t *testing.T) {
	ctx := context.Background()
	store, ids := newMemStore(3)
	svc := NewService()

	require.NoError(t, svc.Renumber(ctx, store, uuid.New(), []uuid.UUID{ids[2], ids[0], ids[1]}))
	assert.Equal(t, 0, store.orders[ids[2]])
	assert.Equal(t, 1, store.orders[ids[0]])
	assert.Equal(t, 2, store.orders[ids[1]])
	assert.True(t, IsDense(store.values()))

	err := svc.Renumber(ctx, store, uuid.New(), []uuid.UUID{ids[0]})
	assert.ErrorIs(t, err, ErrNotPermutation)
}

func TestService_CompactClosesGaps(t *testing.T) {
	ctx := context.Background()
	store, ids := newMemStore(3)
	delete(store.orders, ids[1])

	require.NoError(t, NewService().Compact(ctx, store, uuid.New()))
	assert.Equal(t, 0, store.orders[ids[0]])
	assert.Equal(t, 1, store.orders[ids[2]])
}
