package reorder

import (
	"github.com/google/uuid"

	"itinera/internal/ordering"
)

// Item is the client's view of one entry in a day.
type Item struct {
	ID    uuid.UUID `json:"id"`
	Kind  string    `json:"kind"`
	Order int       `json:"order"`
}

func clone(items []Item) []Item {
	return append([]Item(nil), items...)
}

// Renumber sets Order to each item's index.
func Renumber(items []Item) []Item {
	out := clone(items)
	for i := range out {
		out[i].Order = i
	}
	return out
}

// Apply moves the item at from to index to and renumbers the day.
func Apply(items []Item, from, to int) ([]Item, error) {
	moved, err := ordering.Move(clone(items), from, to)
	if err != nil {
		return nil, err
	}
	return Renumber(moved), nil
}

// Rollback returns the last acknowledged order of the day, restored after
// a failed commit.
func Rollback(confirmed []Item) []Item {
	return Renumber(confirmed)
}

// Without drops id from the day and renumbers it.
func Without(items []Item, id uuid.UUID) ([]Item, bool) {
	out := make([]Item, 0, len(items))
	found := false
	for _, it := range items {
		if it.ID == id {
			found = true
			continue
		}
		out = append(out, it)
	}
	return Renumber(out), found
}

func ids(items []Item) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}
