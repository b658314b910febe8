package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	dbm "itinera/internal/models/db_models"
	"itinera/internal/models/request_models"
	resp "itinera/internal/models/response_models"
	"itinera/internal/repositories"
	mem "itinera/pkg/memcache"
	"itinera/pkg/utils"
)

type FlightServiceInterface interface {
	CreateFlight(ctx context.Context, itineraryID uuid.UUID, req request_models.FlightRequest) (*resp.FlightResponse, error)
	UpdateFlight(ctx context.Context, flightID uuid.UUID, req request_models.FlightRequest) (*resp.FlightResponse, error)
	DeleteFlight(ctx context.Context, flightID uuid.UUID) error
	ListFlights(ctx context.Context, itineraryID uuid.UUID) ([]resp.FlightResponse, error)
}

// FlightService manages flights. Flights never touch day ordering.
type FlightService struct {
	repos repositories.Repositories
	cache mem.ItineraryCache
	log   *zap.Logger
}

func NewFlightService(repos repositories.Repositories, cache mem.ItineraryCache, log *zap.Logger) FlightServiceInterface {
	return &FlightService{repos: repos, cache: cache, log: log}
}

func applyFlight(f *dbm.Flight, req request_models.FlightRequest) error {
	departure := strings.TrimSpace(req.DepartureCity)
	arrival := strings.TrimSpace(req.ArrivalCity)
	if departure == "" {
		return utils.NewValidationError("departure_city", "is required")
	}
	if arrival == "" {
		return utils.NewValidationError("arrival_city", "is required")
	}
	departAt, err := time.Parse(time.RFC3339, req.DepartureAt)
	if err != nil {
		return utils.NewValidationError("departure_at", "must be an RFC3339 timestamp")
	}
	arriveAt, err := time.Parse(time.RFC3339, req.ArrivalAt)
	if err != nil {
		return utils.NewValidationError("arrival_at", "must be an RFC3339 timestamp")
	}
	if arriveAt.Before(departAt) {
		return utils.NewValidationError("arrival_at", "must not be before departure_at")
	}

	f.DepartureCity = departure
	f.ArrivalCity = arrival
	f.Carrier = optionalText(req.Carrier)
	f.FlightNumber = optionalText(req.FlightNumber)
	f.DepartureAt = departAt
	f.ArrivalAt = arriveAt
	f.Note = optionalText(req.Note)
	return nil
}

func (s *FlightService) CreateFlight(ctx context.Context, itineraryID uuid.UUID, req request_models.FlightRequest) (*resp.FlightResponse, error) {
	flight := &dbm.Flight{ItineraryID: itineraryID}
	if err := applyFlight(flight, req); err != nil {
		return nil, err
	}

	itinerary, err := s.repos.Itineraries.GetByID(ctx, itineraryID)
	if err != nil {
		return nil, persistenceErr(s.log, "loading itinerary", err)
	}
	if itinerary == nil {
		return nil, utils.ErrItineraryNotFound
	}

	if err := s.repos.Flights.Create(ctx, flight); err != nil {
		return nil, persistenceErr(s.log, "creating flight", err)
	}

	s.cache.Invalidate(ctx, itineraryID)
	out := BuildFlightResponse(flight)
	return &out, nil
}

func (s *FlightService) UpdateFlight(ctx context.Context, flightID uuid.UUID, req request_models.FlightRequest) (*resp.FlightResponse, error) {
	flight, err := s.repos.Flights.GetByID(ctx, flightID)
	if err != nil {
		return nil, persistenceErr(s.log, "loading flight", err)
	}
	if flight == nil {
		return nil, utils.ErrFlightNotFound
	}
	if err := applyFlight(flight, req); err != nil {
		return nil, err
	}

	if err := s.repos.Flights.Update(ctx, flight); err != nil {
		return nil, persistenceErr(s.log, "updating flight", notFoundAs(err, utils.ErrFlightNotFound))
	}

	s.cache.Invalidate(ctx, flight.ItineraryID)
	out := BuildFlightResponse(flight)
	return &out, nil
}

func (s *FlightService) DeleteFlight(ctx context.Context, flightID uuid.UUID) error {
	flight, err := s.repos.Flights.GetByID(ctx, flightID)
	if err != nil {
		return persistenceErr(s.log, "loading flight", err)
	}
	if flight == nil {
		return utils.ErrFlightNotFound
	}

	if err := s.repos.Flights.Delete(ctx, flightID); err != nil {
		return persistenceErr(s.log, "deleting flight", notFoundAs(err, utils.ErrFlightNotFound))
	}

	s.cache.Invalidate(ctx, flight.ItineraryID)
	return nil
}

func (s *FlightService) ListFlights(ctx context.Context, itineraryID uuid.UUID) ([]resp.FlightResponse, error) {
	itinerary, err := s.repos.Itineraries.GetByID(ctx, itineraryID)
	if err != nil {
		return nil, persistenceErr(s.log, "loading itinerary", err)
	}
	if itinerary == nil {
		return nil, utils.ErrItineraryNotFound
	}

	flights, err := s.repos.Flights.ListByItinerary(ctx, itineraryID)
	if err != nil {
		return nil, persistenceErr(s.log, "listing flights", err)
	}
	out := make([]resp.FlightResponse, 0, len(flights))
	for i := range flights {
		out = append(out, BuildFlightResponse(&flights[i]))
	}
	return out, nil
}
