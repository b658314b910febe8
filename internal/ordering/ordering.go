// Package ordering keeps the items of an itinerary day in a dense sequence:
// orders are exactly 0..n-1 with no gaps or duplicates. Only two insertion
// policies exist, append (InsertAtEnd) and prepend (InsertAtStart); any other
// placement is done by inserting and then renumbering the whole day.
package ordering

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotPermutation  = errors.New("ordered ids must list every item of the day exactly once")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// NextOrder is the append position after the given orders.
func NextOrder(orders []int) int {
	next := 0
	for _, o := range orders {
		if o+1 > next {
			next = o + 1
		}
	}
	return next
}

// IsDense reports whether orders is a permutation of 0..len(orders)-1.
func IsDense(orders []int) bool {
	seen := make([]bool, len(orders))
	for _, o := range orders {
		if o < 0 || o >= len(orders) || seen[o] {
			return false
		}
		seen[o] = true
	}
	return true
}

// ValidatePermutation checks that proposed holds exactly the ids of current.
func ValidatePermutation(current, proposed []uuid.UUID) error {
	if len(current) != len(proposed) {
		return fmt.Errorf("%w: got %d ids, day has %d items", ErrNotPermutation, len(proposed), len(current))
	}
	want := make(map[uuid.UUID]struct{}, len(current))
	for _, id := range current {
		want[id] = struct{}{}
	}
	for _, id := range proposed {
		if _, ok := want[id]; !ok {
			return fmt.Errorf("%w: %s is unknown or repeated", ErrNotPermutation, id)
		}
		delete(want, id)
	}
	return nil
}

// Move returns a copy of s with the element at from relocated to index to.
func Move[T any](s []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(s) || to < 0 || to >= len(s) {
		return nil, fmt.Errorf("%w: move %d -> %d in %d items", ErrIndexOutOfRange, from, to, len(s))
	}
	out := make([]T, 0, len(s))
	out = append(out, s[:from]...)
	out = append(out, s[from+1:]...)

	moved := s[from]
	out = append(out[:to], append([]T{moved}, out[to:]...)...)
	return out, nil
}

// InsertAt returns a copy of s with v inserted at index, clamped to [0, len(s)].
func InsertAt[T any](s []T, index int, v T) []T {
	if index < 0 {
		index = 0
	}
	if index > len(s) {
		index = len(s)
	}
	out := make([]T, 0, len(s)+1)
	out = append(out, s[:index]...)
	out = append(out, v)
	return append(out, s[index:]...)
}

// Remove returns a copy of s without the first element matching id.
func Remove(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	removed := false
	for _, v := range ids {
		if !removed && v == id {
			removed = true
			continue
		}
		out = append(out, v)
	}
	return out
}

// Store is the per-day persistence the Service needs.
type Store interface {
	ListIDsByDay(ctx context.Context, dayID uuid.UUID) ([]uuid.UUID, error)
	MaxOrder(ctx context.Context, dayID uuid.UUID) (int, bool, error)
	ShiftOrders(ctx context.Context, dayID uuid.UUID, delta int) error
	SetOrders(ctx context.Context, dayID uuid.UUID, orderedIDs []uuid.UUID) error
}

// Service computes and applies day positions. It holds no state; pass it
// a Store bound to the caller's transaction.
type Service struct{}

func NewService() *Service { return &Service{} }

// InsertAtEnd returns max(order)+1, or 0 for an empty day.
func (s *Service) InsertAtEnd(ctx context.Context, store Store, dayID uuid.UUID) (int, error) {
	max, ok, err := store.MaxOrder(ctx, dayID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return max + 1, nil
}

// InsertAtStart shifts every existing item of the day up by one and returns 0.
func (s *Service) InsertAtStart(ctx context.Context, store Store, dayID uuid.UUID) (int, error) {
	if err := store.ShiftOrders(ctx, dayID, 1); err != nil {
		return 0, err
	}
	return 0, nil
}

// Renumber assigns order = index for the whole day. orderedIDs must be a
// permutation of the day's current items.
func (s *Service) Renumber(ctx context.Context, store Store, dayID uuid.UUID, orderedIDs []uuid.UUID) error {
	current, err := store.ListIDsByDay(ctx, dayID)
	if err != nil {
		return err
	}
	if err := ValidatePermutation(current, orderedIDs); err != nil {
		return err
	}
	return store.SetOrders(ctx, dayID, orderedIDs)
}

// Compact renumbers the day in its current order, closing any gaps.
func (s *Service) Compact(ctx context.Context, store Store, dayID uuid.UUID) error {
	current, err := store.ListIDsByDay(ctx, dayID)
	if err != nil {
		return err
	}
	return store.SetOrders(ctx, dayID, current)
}
