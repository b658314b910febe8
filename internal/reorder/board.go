// Package reorder is the client side of day reordering: an optimistic
// per-day board that applies a drag locally, persists it, and rolls back
// when persistence fails.
package reorder

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"itinera/internal/ordering"
)

type State int

const (
	Idle State = iota
	Dragging
	Committing
	RollingBack
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Committing:
		return "committing"
	case RollingBack:
		return "rolling_back"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var (
	// ErrCommitFailed wraps the persister error after the board rolled back.
	ErrCommitFailed = errors.New("reorder commit failed")
	// ErrBusy rejects a transition the current state does not allow.
	ErrBusy = errors.New("reorder board busy")
)

// Persister saves board changes. APIClient is the HTTP implementation.
type Persister interface {
	ReorderDay(ctx context.Context, itineraryID, dayID uuid.UUID, orderedItemIDs []uuid.UUID) error
	MoveItem(ctx context.Context, itemID, targetDayID uuid.UUID) error
}

// Board holds one day's items as the user sees them. Only the latest
// commit decides what the user sees: a failure of an older commit changes
// nothing, and a failure of the latest one restores the last order the
// server acknowledged.
type Board struct {
	itineraryID uuid.UUID
	dayID       uuid.UUID
	persister   Persister
	log         *zap.Logger

	mu    sync.Mutex
	state State
	items []Item
	seq   uint64

	// confirmed is the day as of the newest successful commit, or as loaded.
	confirmed    []Item
	confirmedSeq uint64
	// pending maps each in-flight commit to the order it sent.
	pending map[uint64][]Item
	// rolledBackAt is the seq whose failure last reset items to confirmed.
	rolledBackAt uint64

	// OnStateChange, when set, sees every transition. It runs with the
	// board locked and must not call back into it.
	OnStateChange func(from, to State)
}

func NewBoard(itineraryID, dayID uuid.UUID, items []Item, persister Persister, log *zap.Logger) *Board {
	return &Board{
		itineraryID: itineraryID,
		dayID:       dayID,
		persister:   persister,
		log:         log,
		items:       Renumber(items),
		confirmed:   Renumber(items),
		pending:     make(map[uint64][]Item),
	}
}

func (b *Board) setState(s State) {
	if b.state == s {
		return
	}
	prev := b.state
	b.state = s
	if b.OnStateChange != nil {
		b.OnStateChange(prev, s)
	}
}

// settledState is where the board rests when no drag is open.
func (b *Board) settledState() State {
	if len(b.pending) > 0 {
		return Committing
	}
	return Idle
}

func (b *Board) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Board) Items() []Item {
	b.mu.Lock()
	defer b.mu.Unlock()
	return clone(b.items)
}

// BeginDrag opens a drag. A drag may start while an earlier commit is still
// in flight; that commit is then superseded by the next one.
func (b *Board) BeginDrag() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != Idle && b.state != Committing {
		return fmt.Errorf("%w: cannot start a drag while %s", ErrBusy, b.state)
	}
	b.setState(Dragging)
	return nil
}

func (b *Board) CancelDrag() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != Dragging {
		return
	}
	b.setState(b.settledState())
}

// Drop finishes the drag by moving the item at from to index to. A drop in
// place persists nothing.
func (b *Board) Drop(ctx context.Context, from, to int) error {
	b.mu.Lock()
	if b.state != Dragging {
		state := b.state
		b.mu.Unlock()
		return fmt.Errorf("%w: drop while %s", ErrBusy, state)
	}
	if from == to {
		b.setState(b.settledState())
		b.mu.Unlock()
		return nil
	}

	next, err := Apply(b.items, from, to)
	if err != nil {
		b.setState(b.settledState())
		b.mu.Unlock()
		return err
	}
	b.items = next
	seq := b.beginCommit()
	b.mu.Unlock()

	err = b.persister.ReorderDay(ctx, b.itineraryID, b.dayID, ids(next))
	return b.finishCommit(seq, err)
}

// MoveOut removes itemID from this day optimistically and asks the server to
// append it to targetDayID.
func (b *Board) MoveOut(ctx context.Context, itemID, targetDayID uuid.UUID) error {
	b.mu.Lock()
	if b.state != Idle && b.state != Committing {
		state := b.state
		b.mu.Unlock()
		return fmt.Errorf("%w: move while %s", ErrBusy, state)
	}
	next, found := Without(b.items, itemID)
	if !found {
		b.mu.Unlock()
		return fmt.Errorf("item %s is not on this day: %w", itemID, ordering.ErrIndexOutOfRange)
	}
	b.items = next
	seq := b.beginCommit()
	b.mu.Unlock()

	err := b.persister.MoveItem(ctx, itemID, targetDayID)
	return b.finishCommit(seq, err)
}

// Append adds an item that arrived from another day at the end. The server
// already holds it, so every rollback target gains it too.
func (b *Board) Append(item Item) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = appendItem(b.items, item)
	b.confirmed = appendItem(b.confirmed, item)
	for seq, sent := range b.pending {
		b.pending[seq] = appendItem(sent, item)
	}
}

func appendItem(items []Item, item Item) []Item {
	return Renumber(ordering.InsertAt(items, len(items), item))
}

// Reset replaces the board with server state, for example after a reload.
func (b *Board) Reset(items []Item) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = Renumber(items)
	b.confirmed = Renumber(items)
	b.confirmedSeq = b.seq
	b.rolledBackAt = 0
}

func (b *Board) beginCommit() uint64 {
	b.seq++
	b.pending[b.seq] = clone(b.items)
	b.setState(Committing)
	return b.seq
}

func (b *Board) finishCommit(seq uint64, err error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	sent := b.pending[seq]
	delete(b.pending, seq)
	if err == nil && seq > b.confirmedSeq {
		b.confirmed = sent
		b.confirmedSeq = seq
	}

	if seq != b.seq {
		b.log.Debug("discarding stale reorder commit",
			zap.String("day_id", b.dayID.String()),
			zap.Uint64("seq", seq),
			zap.Uint64("latest", b.seq),
			zap.Error(err))
		if b.state != Dragging {
			// The latest commit already failed and showed the old baseline;
			// this older one landed, so the server now holds its order.
			if err == nil && b.rolledBackAt == b.seq {
				b.items = clone(b.confirmed)
			}
			b.setState(b.settledState())
		}
		return nil
	}

	if err == nil {
		if b.state != Dragging {
			b.setState(b.settledState())
		}
		return nil
	}

	dragging := b.state == Dragging
	b.setState(RollingBack)
	b.items = Rollback(b.confirmed)
	b.rolledBackAt = seq
	if dragging {
		// The open drag continues from the restored day.
		b.setState(Dragging)
	} else {
		b.setState(b.settledState())
	}
	b.log.Warn("reorder commit failed, rolled back",
		zap.String("day_id", b.dayID.String()),
		zap.Uint64("seq", seq),
		zap.Uint64("confirmed_seq", b.confirmedSeq),
		zap.Error(err))
	return fmt.Errorf("%w: %w", ErrCommitFailed, err)
}
