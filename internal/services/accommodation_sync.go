package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	dbm "itinera/internal/models/db_models"
	"itinera/internal/ordering"
	"itinera/internal/repositories"
	"itinera/pkg/utils"
)

const (
	otelScope     = "itinera/sync"
	metricCreated = "itinera.sync.items.created"
	metricDeleted = "itinera.sync.items.deleted"

	DefaultCheckInTime  = "15:00"
	DefaultCheckOutTime = "11:00"
)

// SyncResult counts what one engine call did to an accommodation's items.
type SyncResult struct {
	Changed   bool
	Created   int
	Deleted   int
	CheckIns  int
	CheckOuts int
	Stays     int
}

// ResolveDays returns the days whose date falls within [checkIn, checkOut]
// by calendar date, in day-number order.
func ResolveDays(days []dbm.ItineraryDay, checkIn, checkOut time.Time) []dbm.ItineraryDay {
	from, to := utils.StoredDate(checkIn), utils.StoredDate(checkOut)

	out := make([]dbm.ItineraryDay, 0, len(days))
	for _, d := range days {
		date := utils.StoredDate(d.Date)
		if date.Before(from) || date.After(to) {
			continue
		}
		out = append(out, d)
	}
	sortDaysByNumber(out)
	return out
}

// Classify picks the derived item kind for a day of the stay. Check-in is
// tested first, so a same-day stay yields a check-in only.
func Classify(day, checkIn, checkOut time.Time) dbm.ItemKind {
	switch {
	case utils.SameStoredDate(day, checkIn):
		return dbm.ItemKindAccommodationCheckIn
	case utils.SameStoredDate(day, checkOut):
		return dbm.ItemKindAccommodationCheckOut
	default:
		return dbm.ItemKindAccommodationStay
	}
}

func DefaultStartTime(kind dbm.ItemKind) *string {
	var t string
	switch kind {
	case dbm.ItemKindAccommodationCheckIn:
		t = DefaultCheckInTime
	case dbm.ItemKindAccommodationCheckOut:
		t = DefaultCheckOutTime
	default:
		return nil
	}
	return &t
}

// AccommodationSyncEngine keeps the derived check-in, check-out and stay
// items of an accommodation in line with its dates. Every method expects
// repositories bound to the caller's transaction.
type AccommodationSyncEngine struct {
	ordering *ordering.Service
	log      *zap.Logger

	tracer     trace.Tracer
	cntCreated metric.Int64Counter
	cntDeleted metric.Int64Counter
}

func NewAccommodationSyncEngine(ord *ordering.Service, log *zap.Logger) *AccommodationSyncEngine {
	meter := otel.Meter(otelScope)

	mustCounter := func(name, desc string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc))
		if err != nil {
			log.Error("creating OTel counter", zap.String("name", name), zap.Error(err))
			return noop.Int64Counter{}
		}
		return c
	}

	return &AccommodationSyncEngine{
		ordering:   ord,
		log:        log,
		tracer:     otel.Tracer(otelScope),
		cntCreated: mustCounter(metricCreated, "Derived accommodation items created"),
		cntDeleted: mustCounter(metricDeleted, "Derived accommodation items deleted"),
	}
}

// PlaceItem inserts one derived item into day. Check-outs go first in the
// day; check-ins and stays are appended.
func (e *AccommodationSyncEngine) PlaceItem(ctx context.Context,
	repos repositories.Repositories,
	day dbm.ItineraryDay,
	accommodation *dbm.Accommodation,
	kind dbm.ItemKind) (*dbm.ItineraryItem, error) {

	var (
		order int
		err   error
	)
	if kind == dbm.ItemKindAccommodationCheckOut {
		order, err = e.ordering.InsertAtStart(ctx, repos.Items, day.ID)
	} else {
		order, err = e.ordering.InsertAtEnd(ctx, repos.Items, day.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("positioning %s on day %d: %w", kind, day.DayNumber, err)
	}

	accommodationID := accommodation.ID
	item := &dbm.ItineraryItem{
		DayID:           day.ID,
		Kind:            kind,
		AccommodationID: &accommodationID,
		Order:           order,
		StartTime:       DefaultStartTime(kind),
	}
	if err := repos.Items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("creating %s on day %d: %w", kind, day.DayNumber, err)
	}
	return item, nil
}

// CreateItemsForAccommodation derives one item per day the stay touches.
func (e *AccommodationSyncEngine) CreateItemsForAccommodation(ctx context.Context,
	repos repositories.Repositories,
	accommodation *dbm.Accommodation) (SyncResult, error) {

	ctx, span := e.tracer.Start(ctx, "sync.create_items",
		trace.WithAttributes(attribute.String("accommodation.id", accommodation.ID.String())))
	defer span.End()

	var result SyncResult

	days, err := repos.Itineraries.ListDays(ctx, accommodation.ItineraryID)
	if err != nil {
		span.RecordError(err)
		return result, fmt.Errorf("listing days: %w", err)
	}

	// One day at a time: each placement reads the day's current max order.
	for _, day := range ResolveDays(days, accommodation.CheckIn, accommodation.CheckOut) {
		kind := Classify(day.Date, accommodation.CheckIn, accommodation.CheckOut)
		if _, err := e.PlaceItem(ctx, repos, day, accommodation, kind); err != nil {
			span.RecordError(err)
			return result, err
		}

		result.Created++
		switch kind {
		case dbm.ItemKindAccommodationCheckIn:
			result.CheckIns++
		case dbm.ItemKindAccommodationCheckOut:
			result.CheckOuts++
		default:
			result.Stays++
		}
	}
	result.Changed = result.Created > 0

	e.cntCreated.Add(ctx, int64(result.Created))
	e.log.Debug("derived accommodation items",
		zap.String("accommodation_id", accommodation.ID.String()),
		zap.Int("created", result.Created))
	return result, nil
}

// SyncItemsForAccommodation rebuilds the derived items when the stay's
// check-in or check-out date changed. Same dates are a no-op.
func (e *AccommodationSyncEngine) SyncItemsForAccommodation(ctx context.Context,
	repos repositories.Repositories,
	accommodation *dbm.Accommodation,
	prevCheckIn, prevCheckOut time.Time) (SyncResult, error) {

	if utils.SameStoredDate(prevCheckIn, accommodation.CheckIn) && utils.SameStoredDate(prevCheckOut, accommodation.CheckOut) {
		return SyncResult{}, nil
	}

	deleted, err := e.DeleteItemsForAccommodation(ctx, repos, accommodation.ID)
	if err != nil {
		return SyncResult{}, err
	}

	result, err := e.CreateItemsForAccommodation(ctx, repos, accommodation)
	if err != nil {
		return SyncResult{}, err
	}
	result.Deleted = deleted.Deleted
	result.Changed = true
	return result, nil
}

// DeleteItemsForAccommodation removes every derived item of the stay and
// compacts the days they were on.
func (e *AccommodationSyncEngine) DeleteItemsForAccommodation(ctx context.Context,
	repos repositories.Repositories,
	accommodationID uuid.UUID) (SyncResult, error) {

	ctx, span := e.tracer.Start(ctx, "sync.delete_items",
		trace.WithAttributes(attribute.String("accommodation.id", accommodationID.String())))
	defer span.End()

	items, err := repos.Items.ListByAccommodation(ctx, accommodationID)
	if err != nil {
		span.RecordError(err)
		return SyncResult{}, fmt.Errorf("listing derived items: %w", err)
	}
	if len(items) == 0 {
		return SyncResult{}, nil
	}

	deleted, err := repos.Items.DeleteByAccommodation(ctx, accommodationID)
	if err != nil {
		span.RecordError(err)
		return SyncResult{}, fmt.Errorf("deleting derived items: %w", err)
	}

	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, it := range items {
		if _, ok := seen[it.DayID]; ok {
			continue
		}
		seen[it.DayID] = struct{}{}
		if err := e.ordering.Compact(ctx, repos.Items, it.DayID); err != nil {
			span.RecordError(err)
			return SyncResult{}, fmt.Errorf("compacting day %s: %w", it.DayID, err)
		}
	}

	e.cntDeleted.Add(ctx, deleted)
	return SyncResult{Changed: true, Deleted: int(deleted)}, nil
}
