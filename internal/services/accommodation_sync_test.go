package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	dbm "itinera/internal/models/db_models"
	"itinera/internal/models/request_models"
	"itinera/internal/ordering"
	"itinera/internal/repositories"
	"itinera/pkg/utils"
)

func date(s string) time.Time {
	t, err := time.Parse(utils.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func tripDays(start string, n int) []dbm.ItineraryDay {
	base := date(start)
	days := make([]dbm.ItineraryDay, n)
	for i := range days {
		days[i] = dbm.ItineraryDay{DayNumber: i + 1, Date: base.AddDate(0, 0, i)}
	}
	return days
}

func TestResolveDays(t *testing.T) {
	days := tripDays("2025-06-01", 5)

	got := ResolveDays(days, date("2025-06-02"), date("2025-06-04"))
	require.Len(t, got, 3)
	assert.Equal(t, 2, got[0].DayNumber)
	assert.Equal(t, 4, got[2].DayNumber)

	// Time of day does not matter, only the calendar date.
	got = ResolveDays(days, date("2025-06-02").Add(22*time.Hour), date("2025-06-03").Add(time.Hour))
	require.Len(t, got, 2)

	// Stays reaching outside the trip only touch the days that exist.
	got = ResolveDays(days, date("2025-05-28"), date("2025-06-01"))
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].DayNumber)

	assert.Empty(t, ResolveDays(days, date("2025-07-01"), date("2025-07-03")))
}

func TestResolveDays_SortsByDayNumber(t *testing.T) {
	days := tripDays("2025-06-01", 3)
	days[0], days[2] = days[2], days[0]

	got := ResolveDays(days, date("2025-06-01"), date("2025-06-03"))
	require.Len(t, got, 3)
	for i, d := range got {
		assert.Equal(t, i+1, d.DayNumber)
	}
}

func TestClassify(t *testing.T) {
	ci, co := date("2025-06-01"), date("2025-06-03")

	assert.Equal(t, dbm.ItemKindAccommodationCheckIn, Classify(date("2025-06-01"), ci, co))
	assert.Equal(t, dbm.ItemKindAccommodationStay, Classify(date("2025-06-02"), ci, co))
	assert.Equal(t, dbm.ItemKindAccommodationCheckOut, Classify(date("2025-06-03"), ci, co))

	// Same-day stay: check-in wins.
	assert.Equal(t, dbm.ItemKindAccommodationCheckIn, Classify(ci, ci, ci))
}

func TestDefaultStartTime(t *testing.T) {
	require.NotNil(t, DefaultStartTime(dbm.ItemKindAccommodationCheckIn))
	assert.Equal(t, "15:00", *DefaultStartTime(dbm.ItemKindAccommodationCheckIn))
	assert.Equal(t, "11:00", *DefaultStartTime(dbm.ItemKindAccommodationCheckOut))
	assert.Nil(t, DefaultStartTime(dbm.ItemKindAccommodationStay))
	assert.Nil(t, DefaultStartTime(dbm.ItemKindPlace))
}

// Postgres drivers hand timestamptz values back in time.Local; west of UTC a
// stored midnight reads as the previous evening.
func TestStoredDatesReadInLocalZone(t *testing.T) {
	edt := time.FixedZone("EDT", -4*3600)
	days := tripDays("2026-05-01", 3)
	for i := range days {
		days[i].Date = days[i].Date.In(edt)
	}
	ci, co := date("2026-05-01").In(edt), date("2026-05-02").In(edt)

	got := ResolveDays(days, ci, co)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].DayNumber)
	assert.Equal(t, 2, got[1].DayNumber)
	assert.Equal(t, dbm.ItemKindAccommodationCheckIn, Classify(got[0].Date, ci, co))
	assert.Equal(t, dbm.ItemKindAccommodationCheckOut, Classify(got[1].Date, ci, co))

	// The same stored dates, one copy read back locally, are unchanged.
	engine := NewAccommodationSyncEngine(ordering.NewService(), zap.NewNop())
	acc := &dbm.Accommodation{CheckIn: date("2026-05-01"), CheckOut: date("2026-05-02")}
	result, err := engine.SyncItemsForAccommodation(context.Background(), repositories.Repositories{}, acc, ci, co)
	require.NoError(t, err)
	assert.False(t, result.Changed)
}

func TestAfterFindNormalizesDates(t *testing.T) {
	edt := time.FixedZone("EDT", -4*3600)
	acc := &dbm.Accommodation{CheckIn: date("2026-05-01").In(edt), CheckOut: date("2026-05-03").In(edt)}
	require.NoError(t, acc.AfterFind(nil))
	assert.Equal(t, "2026-05-01", BuildAccommodationResponse(acc).CheckIn)
	assert.Equal(t, time.UTC, acc.CheckIn.Location())

	day := &dbm.ItineraryDay{Date: date("2026-05-01").In(edt)}
	require.NoError(t, day.AfterFind(nil))
	assert.Equal(t, date("2026-05-01"), day.Date)
}

func TestCreateAccommodation_NightsProduceItems(t *testing.T) {
	cases := []struct {
		name      string
		checkIn   string
		checkOut  string
		kinds     []dbm.ItemKind
		checkOuts int
	}{
		{"three nights", "2025-06-01", "2025-06-04", []dbm.ItemKind{
			dbm.ItemKindAccommodationCheckIn,
			dbm.ItemKindAccommodationStay,
			dbm.ItemKindAccommodationStay,
			dbm.ItemKindAccommodationCheckOut,
		}, 1},
		{"one night", "2025-06-02", "2025-06-03", []dbm.ItemKind{
			dbm.ItemKindAccommodationCheckIn,
			dbm.ItemKindAccommodationCheckOut,
		}, 1},
		{"same day", "2025-06-02", "2025-06-02", []dbm.ItemKind{
			dbm.ItemKindAccommodationCheckIn,
		}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			it := f.createItinerary(t, "2025-06-01", "2025-06-05")

			acc := f.createStay(t, it.ID, tc.checkIn, tc.checkOut)
			require.NotNil(t, acc.Sync)
			assert.Equal(t, len(tc.kinds), acc.Sync.Created)
			assert.Equal(t, tc.checkOuts, acc.Sync.CheckOuts)

			items, err := f.repos.Items.ListByAccommodation(context.Background(), uuid.MustParse(acc.ID))
			require.NoError(t, err)
			require.Len(t, items, len(tc.kinds))

			byDay := map[uuid.UUID]dbm.ItemKind{}
			for _, item := range items {
				byDay[item.DayID] = item.Kind
			}
			first := f.dayIndex(t, it.ID, tc.checkIn)
			for i, want := range tc.kinds {
				assert.Equal(t, want, byDay[uuid.MustParse(it.Days[first+i].ID)], "day %d", first+i+1)
			}
		})
	}
}

func (f *fixture) dayIndex(t *testing.T, itineraryID, day string) int {
	t.Helper()
	days, err := f.repos.Itineraries.ListDays(context.Background(), uuid.MustParse(itineraryID))
	require.NoError(t, err)
	for i, d := range days {
		if utils.FormatDate(d.Date) == day {
			return i
		}
	}
	t.Fatalf("no day %s", day)
	return -1
}

func TestCreateAccommodation_DefaultTimes(t *testing.T) {
	f := newFixture(t)
	it := f.createItinerary(t, "2025-06-01", "2025-06-03")

	f.createStay(t, it.ID, "2025-06-01", "2025-06-03")

	checkIn := f.dayItems(t, it.Days[0].ID)[0]
	stay := f.dayItems(t, it.Days[1].ID)[0]
	checkOut := f.dayItems(t, it.Days[2].ID)[0]

	require.NotNil(t, checkIn.StartTime)
	assert.Equal(t, "15:00", *checkIn.StartTime)
	assert.Nil(t, stay.StartTime)
	require.NotNil(t, checkOut.StartTime)
	assert.Equal(t, "11:00", *checkOut.StartTime)
}

func TestCreateAccommodation_CheckOutGoesFirst(t *testing.T) {
	f := newFixture(t)
	it := f.createItinerary(t, "2025-06-01", "2025-06-03")
	day1 := it.Days[0].ID

	a := f.addPlace(t, day1, "Museum")
	b := f.addPlace(t, day1, "Market")
	require.Equal(t, 0, a.Order)
	require.Equal(t, 1, b.Order)

	// Checks in before the trip and out on day 1.
	f.createStay(t, it.ID, "2025-05-30", "2025-06-01")

	items := f.dayItems(t, day1)
	require.Len(t, items, 3)
	assert.Equal(t, dbm.ItemKindAccommodationCheckOut, items[0].Kind)
	assert.Equal(t, 0, items[0].Order)
	assert.Equal(t, a.ID, items[1].ID.String())
	assert.Equal(t, 1, items[1].Order)
	assert.Equal(t, b.ID, items[2].ID.String())
	assert.Equal(t, 2, items[2].Order)
}

func TestCreateAccommodation_CheckInAppends(t *testing.T) {
	f := newFixture(t)
	it := f.createItinerary(t, "2025-06-01", "2025-06-03")
	day1 := it.Days[0].ID
	f.addPlace(t, day1, "Museum")

	f.createStay(t, it.ID, "2025-06-01", "2025-06-02")

	items := f.dayItems(t, day1)
	require.Len(t, items, 2)
	assert.Equal(t, dbm.ItemKindPlace, items[0].Kind)
	assert.Equal(t, dbm.ItemKindAccommodationCheckIn, items[1].Kind)
	assert.Equal(t, 1, items[1].Order)
}

func TestCreateAccommodation_Validation(t *testing.T) {
	f := newFixture(t)
	it := f.createItinerary(t, "2025-06-01", "2025-06-03")

	_, err := f.accommodations.CreateAccommodation(context.Background(), uuid.MustParse(it.ID),
		request_models.AccommodationRequest{Name: "Hotel", CheckIn: "2025-06-03", CheckOut: "2025-06-01"})
	require.ErrorIs(t, err, utils.ErrValidation)
	var ve *utils.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "check_out", ve.Field)

	_, err = f.accommodations.CreateAccommodation(context.Background(), uuid.New(),
		request_models.AccommodationRequest{Name: "Hotel", CheckIn: "2025-06-01", CheckOut: "2025-06-02"})
	assert.ErrorIs(t, err, utils.ErrItineraryNotFound)
}

func TestUpdateAccommodation_SameDatesIsNoop(t *testing.T) {
	f := newFixture(t)
	it := f.createItinerary(t, "2025-06-01", "2025-06-05")
	acc := f.createStay(t, it.ID, "2025-06-01", "2025-06-03")
	accID := uuid.MustParse(acc.ID)

	before, err := f.repos.Items.ListByAccommodation(context.Background(), accID)
	require.NoError(t, err)

	updated, err := f.accommodations.UpdateAccommodation(context.Background(), accID, request_models.AccommodationRequest{
		Name:     "Renamed",
		CheckIn:  "2025-06-01T18:30:00Z",
		CheckOut: "2025-06-03",
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.False(t, updated.Sync.Changed)

	after, err := f.repos.Items.ListByAccommodation(context.Background(), accID)
	require.NoError(t, err)
	assert.ElementsMatch(t, itemIDs(before), itemIDs(after))
}

func TestUpdateAccommodation_ChangedDatesRecreate(t *testing.T) {
	f := newFixture(t)
	it := f.createItinerary(t, "2025-06-01", "2025-06-05")
	f.addPlace(t, it.Days[1].ID, "Temple")
	acc := f.createStay(t, it.ID, "2025-06-01", "2025-06-03")
	accID := uuid.MustParse(acc.ID)

	before, err := f.repos.Items.ListByAccommodation(context.Background(), accID)
	require.NoError(t, err)

	updated, err := f.accommodations.UpdateAccommodation(context.Background(), accID, request_models.AccommodationRequest{
		Name:     "Hotel",
		CheckIn:  "2025-06-03",
		CheckOut: "2025-06-05",
	})
	require.NoError(t, err)
	assert.True(t, updated.Sync.Changed)
	assert.Equal(t, 3, updated.Sync.Deleted)
	assert.Equal(t, 3, updated.Sync.Created)

	after, err := f.repos.Items.ListByAccommodation(context.Background(), accID)
	require.NoError(t, err)
	require.Len(t, after, 3)
	for _, id := range itemIDs(before) {
		assert.NotContains(t, itemIDs(after), id)
	}

	// Day 2 lost its stay item and kept the place, still dense.
	day2 := f.dayItems(t, it.Days[1].ID)
	assert.Equal(t, []dbm.ItemKind{dbm.ItemKindPlace}, itemKinds(day2))
	for _, d := range it.Days {
		f.requireDense(t, d.ID)
	}
}

func TestUpdateAccommodation_FailedSyncRollsBack(t *testing.T) {
	f := newFixture(t)
	it := f.createItinerary(t, "2025-06-01", "2025-06-05")
	acc := f.createStay(t, it.ID, "2025-06-01", "2025-06-03")
	accID := uuid.MustParse(acc.ID)

	before, err := f.repos.Items.ListByAccommodation(context.Background(), accID)
	require.NoError(t, err)

	faulty := newFixtureWithUoW(t, f.db, &faultyUnitOfWork{db: f.db, failAfter: 1})
	_, err = faulty.accommodations.UpdateAccommodation(context.Background(), accID, request_models.AccommodationRequest{
		Name:     "Hotel",
		CheckIn:  "2025-06-02",
		CheckOut: "2025-06-05",
	})
	require.ErrorIs(t, err, utils.ErrSyncFailed)

	after, err := f.repos.Items.ListByAccommodation(context.Background(), accID)
	require.NoError(t, err)
	assert.ElementsMatch(t, itemIDs(before), itemIDs(after))

	stored, err := f.accommodations.GetAccommodation(context.Background(), accID)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", stored.CheckIn)
}

func TestDeleteAccommodation_CompactsDays(t *testing.T) {
	f := newFixture(t)
	it := f.createItinerary(t, "2025-06-01", "2025-06-03")
	day2 := it.Days[1].ID

	f.addPlace(t, day2, "Lake")
	acc := f.createStay(t, it.ID, "2025-06-01", "2025-06-03")
	f.addPlace(t, day2, "Night market")
	require.Len(t, f.dayItems(t, day2), 3)

	require.NoError(t, f.accommodations.DeleteAccommodation(context.Background(), uuid.MustParse(acc.ID)))

	for _, d := range it.Days {
		f.requireDense(t, d.ID)
	}
	assert.Equal(t, []dbm.ItemKind{dbm.ItemKindPlace, dbm.ItemKindPlace}, itemKinds(f.dayItems(t, day2)))
	assert.Empty(t, f.dayItems(t, it.Days[0].ID))

	_, err := f.accommodations.GetAccommodation(context.Background(), uuid.MustParse(acc.ID))
	assert.ErrorIs(t, err, utils.ErrAccommodationNotFound)

	err = f.accommodations.DeleteAccommodation(context.Background(), uuid.MustParse(acc.ID))
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestListAccommodations(t *testing.T) {
	f := newFixture(t)
	it := f.createItinerary(t, "2025-06-01", "2025-06-05")
	f.createStay(t, it.ID, "2025-06-03", "2025-06-05")
	f.createStay(t, it.ID, "2025-06-01", "2025-06-03")

	list, err := f.accommodations.ListAccommodations(context.Background(), uuid.MustParse(it.ID))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2025-06-01", list[0].CheckIn)

	_, err = f.accommodations.ListAccommodations(context.Background(), uuid.New())
	assert.ErrorIs(t, err, utils.ErrItineraryNotFound)
}
