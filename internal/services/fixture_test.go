package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dbm "itinera/internal/models/db_models"
	"itinera/internal/models/request_models"
	resp "itinera/internal/models/response_models"
	"itinera/internal/ordering"
	"itinera/internal/repositories"
	"itinera/internal/testutil"
	mem "itinera/pkg/memcache"
)

type fixture struct {
	db        *gorm.DB
	repos     repositories.Repositories
	projectID uuid.UUID

	itineraries    ItineraryServiceInterface
	items          ItemServiceInterface
	accommodations AccommodationServiceInterface
	flights        FlightServiceInterface
	places         PlaceServiceInterface
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.OpenDB(t)
	return newFixtureWithUoW(t, db, repositories.NewUnitOfWork(db))
}

func newFixtureWithUoW(t *testing.T, db *gorm.DB, uow repositories.UnitOfWork) *fixture {
	t.Helper()
	log := zap.NewNop()
	repos := repositories.NewRepositories(db)
	cache := mem.NewInMemoryItineraryCache(time.Minute, log)
	ord := ordering.NewService()
	engine := NewAccommodationSyncEngine(ord, log)

	return &fixture{
		db:             db,
		repos:          repos,
		projectID:      uuid.New(),
		itineraries:    NewItineraryService(repos, uow, cache, log),
		items:          NewItemService(repos, uow, ord, cache, log),
		accommodations: NewAccommodationService(repos, uow, engine, cache, log),
		flights:        NewFlightService(repos, cache, log),
		places:         NewPlaceService(repos, log),
	}
}

func (f *fixture) createItinerary(t *testing.T, start, end string) *resp.ItineraryDetailResponse {
	t.Helper()
	out, err := f.itineraries.CreateItinerary(context.Background(), request_models.CreateItineraryRequest{
		ProjectID: f.projectID.String(),
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)
	return out
}

func (f *fixture) seedPlace(t *testing.T, projectID uuid.UUID, name string) uuid.UUID {
	t.Helper()
	place := &dbm.Place{ProjectID: projectID, Name: name, Category: "sight"}
	require.NoError(t, f.db.Create(place).Error)
	return place.ID
}

func (f *fixture) addPlace(t *testing.T, dayID string, name string) *resp.ItemResponse {
	t.Helper()
	placeID := f.seedPlace(t, f.projectID, name)
	out, err := f.items.AddItem(context.Background(), uuid.MustParse(dayID), request_models.AddItemRequest{
		PlaceID: placeID.String(),
	})
	require.NoError(t, err)
	return out
}

func (f *fixture) createStay(t *testing.T, itineraryID, checkIn, checkOut string) *resp.AccommodationResponse {
	t.Helper()
	out, err := f.accommodations.CreateAccommodation(context.Background(), uuid.MustParse(itineraryID),
		request_models.AccommodationRequest{Name: "Hotel", CheckIn: checkIn, CheckOut: checkOut})
	require.NoError(t, err)
	return out
}

// dayItems returns the stored items of a day in order.
func (f *fixture) dayItems(t *testing.T, dayID string) []dbm.ItineraryItem {
	t.Helper()
	items, err := f.repos.Items.ListByDay(context.Background(), uuid.MustParse(dayID))
	require.NoError(t, err)
	return items
}

func (f *fixture) requireDense(t *testing.T, dayID string) {
	t.Helper()
	items := f.dayItems(t, dayID)
	orders := make([]int, 0, len(items))
	for _, it := range items {
		orders = append(orders, it.Order)
	}
	require.True(t, ordering.IsDense(orders), "orders not dense: %v", orders)
}

func itemIDs(items []dbm.ItineraryItem) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}

func itemKinds(items []dbm.ItineraryItem) []dbm.ItemKind {
	kinds := make([]dbm.ItemKind, 0, len(items))
	for _, it := range items {
		kinds = append(kinds, it.Kind)
	}
	return kinds
}

// faultyUnitOfWork fails the n-th item insert inside a transaction.
type faultyUnitOfWork struct {
	db        *gorm.DB
	failAfter int
}

func (u *faultyUnitOfWork) Do(ctx context.Context, fn func(repos repositories.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := repositories.NewRepositories(tx)
		repos.Items = &failingItems{ItemRepository: repos.Items, left: u.failAfter}
		return fn(repos)
	})
}

type failingItems struct {
	repositories.ItemRepository
	left int
}

var errDiskFull = errors.New("disk full")

func (f *failingItems) Create(ctx context.Context, item *dbm.ItineraryItem) error {
	if f.left == 0 {
		return errDiskFull
	}
	f.left--
	return f.ItemRepository.Create(ctx, item)
}
