package services

import (
	"sort"

	"github.com/google/uuid"

	dbm "itinera/internal/models/db_models"
	resp "itinera/internal/models/response_models"
	"itinera/pkg/utils"
)

func uuidPtrString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func sortDaysByNumber(days []dbm.ItineraryDay) {
	sort.SliceStable(days, func(i, j int) bool { return days[i].DayNumber < days[j].DayNumber })
}

// sortItems orders a day's items for display; ties fall back to creation.
func sortItems(items []dbm.ItineraryItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Order != items[j].Order {
			return items[i].Order < items[j].Order
		}
		return items[i].CreatedAt < items[j].CreatedAt
	})
}

func BuildItemResponse(item *dbm.ItineraryItem) resp.ItemResponse {
	return resp.ItemResponse{
		ID:              item.ID.String(),
		DayID:           item.DayID.String(),
		Kind:            string(item.Kind),
		PlaceID:         uuidPtrString(item.PlaceID),
		AccommodationID: uuidPtrString(item.AccommodationID),
		Order:           item.Order,
		StartTime:       item.StartTime,
		Note:            item.Note,
	}
}

// BuildDayItemsResponse renders a day's items with positions taken from
// their sorted index, so a gap left by an interrupted write never reaches
// the client.
func BuildDayItemsResponse(items []dbm.ItineraryItem) []resp.ItemResponse {
	sorted := append([]dbm.ItineraryItem(nil), items...)
	sortItems(sorted)

	out := make([]resp.ItemResponse, 0, len(sorted))
	for i := range sorted {
		r := BuildItemResponse(&sorted[i])
		r.Order = i
		out = append(out, r)
	}
	return out
}

func BuildAccommodationResponse(a *dbm.Accommodation) resp.AccommodationResponse {
	return resp.AccommodationResponse{
		ID:          a.ID.String(),
		ItineraryID: a.ItineraryID.String(),
		Name:        a.Name,
		Address:     a.Address,
		Latitude:    a.Latitude,
		Longitude:   a.Longitude,
		CheckIn:     utils.FormatDate(a.CheckIn),
		CheckOut:    utils.FormatDate(a.CheckOut),
		Note:        a.Note,
	}
}

func BuildFlightResponse(f *dbm.Flight) resp.FlightResponse {
	return resp.FlightResponse{
		ID:            f.ID.String(),
		ItineraryID:   f.ItineraryID.String(),
		DepartureCity: f.DepartureCity,
		ArrivalCity:   f.ArrivalCity,
		Carrier:       f.Carrier,
		FlightNumber:  f.FlightNumber,
		DepartureAt:   utils.FormatRFC3339(f.DepartureAt),
		ArrivalAt:     utils.FormatRFC3339(f.ArrivalAt),
		Note:          f.Note,
	}
}

func buildSyncSummary(r SyncResult) *resp.SyncSummary {
	return &resp.SyncSummary{
		Changed:   r.Changed,
		Created:   r.Created,
		Deleted:   r.Deleted,
		CheckIns:  r.CheckIns,
		CheckOuts: r.CheckOuts,
		Stays:     r.Stays,
	}
}

func BuildItineraryDetailResponse(it *dbm.Itinerary) *resp.ItineraryDetailResponse {
	out := &resp.ItineraryDetailResponse{
		ID:             it.ID.String(),
		ProjectID:      it.ProjectID.String(),
		Title:          it.Title,
		StartDate:      utils.FormatDate(it.StartDate),
		EndDate:        utils.FormatDate(it.EndDate),
		TotalDays:      len(it.Days),
		Days:           make([]resp.ItineraryDayResponse, 0, len(it.Days)),
		Accommodations: make([]resp.AccommodationResponse, 0, len(it.Accommodations)),
		Flights:        make([]resp.FlightResponse, 0, len(it.Flights)),
	}

	days := append([]dbm.ItineraryDay(nil), it.Days...)
	sortDaysByNumber(days)
	for _, d := range days {
		out.TotalItems += len(d.Items)
		out.Days = append(out.Days, resp.ItineraryDayResponse{
			ID:        d.ID.String(),
			DayNumber: d.DayNumber,
			Date:      utils.FormatDate(d.Date),
			Items:     BuildDayItemsResponse(d.Items),
		})
	}
	for i := range it.Accommodations {
		out.Accommodations = append(out.Accommodations, BuildAccommodationResponse(&it.Accommodations[i]))
	}
	for i := range it.Flights {
		out.Flights = append(out.Flights, BuildFlightResponse(&it.Flights[i]))
	}
	return out
}
