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

type AccommodationServiceInterface interface {
	CreateAccommodation(ctx context.Context, itineraryID uuid.UUID, req request_models.AccommodationRequest) (*resp.AccommodationResponse, error)
	UpdateAccommodation(ctx context.Context, accommodationID uuid.UUID, req request_models.AccommodationRequest) (*resp.AccommodationResponse, error)
	DeleteAccommodation(ctx context.Context, accommodationID uuid.UUID) error
	GetAccommodation(ctx context.Context, accommodationID uuid.UUID) (*resp.AccommodationResponse, error)
	ListAccommodations(ctx context.Context, itineraryID uuid.UUID) ([]resp.AccommodationResponse, error)
}

type AccommodationService struct {
	repos  repositories.Repositories
	uow    repositories.UnitOfWork
	engine *AccommodationSyncEngine
	cache  mem.ItineraryCache
	log    *zap.Logger
}

func NewAccommodationService(repos repositories.Repositories,
	uow repositories.UnitOfWork,
	engine *AccommodationSyncEngine,
	cache mem.ItineraryCache,
	log *zap.Logger) AccommodationServiceInterface {
	return &AccommodationService{repos: repos, uow: uow, engine: engine, cache: cache, log: log}
}

type stayDates struct {
	checkIn  time.Time
	checkOut time.Time
}

func parseStay(req request_models.AccommodationRequest) (stayDates, error) {
	if strings.TrimSpace(req.Name) == "" {
		return stayDates{}, utils.NewValidationError("name", "is required")
	}
	if req.CheckIn == "" {
		return stayDates{}, utils.NewValidationError("check_in", "is required")
	}
	if req.CheckOut == "" {
		return stayDates{}, utils.NewValidationError("check_out", "is required")
	}
	ci, err := utils.ParseDateOrTime(req.CheckIn)
	if err != nil {
		return stayDates{}, utils.NewValidationError("check_in", err.Error())
	}
	co, err := utils.ParseDateOrTime(req.CheckOut)
	if err != nil {
		return stayDates{}, utils.NewValidationError("check_out", err.Error())
	}
	if utils.DateOnly(co).Before(utils.DateOnly(ci)) {
		return stayDates{}, utils.NewValidationError("check_out", "must not be before check_in")
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return stayDates{}, utils.NewValidationError("latitude", "latitude and longitude go together")
	}
	if req.Latitude != nil && (*req.Latitude < -90 || *req.Latitude > 90) {
		return stayDates{}, utils.NewValidationError("latitude", "must be within [-90, 90]")
	}
	if req.Longitude != nil && (*req.Longitude < -180 || *req.Longitude > 180) {
		return stayDates{}, utils.NewValidationError("longitude", "must be within [-180, 180]")
	}
	return stayDates{checkIn: ci, checkOut: co}, nil
}

func applyAccommodation(a *dbm.Accommodation, req request_models.AccommodationRequest, stay stayDates) {
	a.Name = strings.TrimSpace(req.Name)
	a.Address = optionalText(req.Address)
	a.Latitude = req.Latitude
	a.Longitude = req.Longitude
	a.CheckIn = utils.DateOnly(stay.checkIn)
	a.CheckOut = utils.DateOnly(stay.checkOut)
	a.Note = optionalText(req.Note)
}

func (s *AccommodationService) CreateAccommodation(ctx context.Context, itineraryID uuid.UUID, req request_models.AccommodationRequest) (*resp.AccommodationResponse, error) {
	stay, err := parseStay(req)
	if err != nil {
		return nil, err
	}

	accommodation := &dbm.Accommodation{ItineraryID: itineraryID}
	applyAccommodation(accommodation, req, stay)

	var result SyncResult
	err = s.uow.Do(ctx, func(repos repositories.Repositories) error {
		itinerary, err := repos.Itineraries.GetByID(ctx, itineraryID)
		if err != nil {
			return err
		}
		if itinerary == nil {
			return utils.ErrItineraryNotFound
		}
		if err := repos.Accommodations.Create(ctx, accommodation); err != nil {
			return err
		}

		result, err = s.engine.CreateItemsForAccommodation(ctx, repos, accommodation)
		if err != nil {
			return syncErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, persistenceErr(s.log, "creating accommodation", err)
	}

	s.cache.Invalidate(ctx, itineraryID)
	s.log.Info("accommodation created",
		zap.String("accommodation_id", accommodation.ID.String()),
		zap.Int("derived_items", result.Created))

	out := BuildAccommodationResponse(accommodation)
	out.Sync = buildSyncSummary(result)
	return &out, nil
}

func (s *AccommodationService) UpdateAccommodation(ctx context.Context, accommodationID uuid.UUID, req request_models.AccommodationRequest) (*resp.AccommodationResponse, error) {
	stay, err := parseStay(req)
	if err != nil {
		return nil, err
	}

	var (
		accommodation *dbm.Accommodation
		result        SyncResult
	)
	err = s.uow.Do(ctx, func(repos repositories.Repositories) error {
		current, err := repos.Accommodations.GetByID(ctx, accommodationID)
		if err != nil {
			return err
		}
		if current == nil {
			return utils.ErrAccommodationNotFound
		}
		prevCheckIn, prevCheckOut := current.CheckIn, current.CheckOut

		applyAccommodation(current, req, stay)
		if err := repos.Accommodations.Update(ctx, current); err != nil {
			return notFoundAs(err, utils.ErrAccommodationNotFound)
		}
		accommodation = current

		result, err = s.engine.SyncItemsForAccommodation(ctx, repos, current, prevCheckIn, prevCheckOut)
		if err != nil {
			return syncErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, persistenceErr(s.log, "updating accommodation", err)
	}

	s.cache.Invalidate(ctx, accommodation.ItineraryID)
	out := BuildAccommodationResponse(accommodation)
	out.Sync = buildSyncSummary(result)
	return &out, nil
}

func (s *AccommodationService) DeleteAccommodation(ctx context.Context, accommodationID uuid.UUID) error {
	var itineraryID uuid.UUID
	err := s.uow.Do(ctx, func(repos repositories.Repositories) error {
		accommodation, err := repos.Accommodations.GetByID(ctx, accommodationID)
		if err != nil {
			return err
		}
		if accommodation == nil {
			return utils.ErrAccommodationNotFound
		}
		itineraryID = accommodation.ItineraryID

		if _, err := s.engine.DeleteItemsForAccommodation(ctx, repos, accommodation.ID); err != nil {
			return syncErr(err)
		}
		return notFoundAs(repos.Accommodations.Delete(ctx, accommodation.ID), utils.ErrAccommodationNotFound)
	})
	if err != nil {
		return persistenceErr(s.log, "deleting accommodation", err)
	}

	s.cache.Invalidate(ctx, itineraryID)
	return nil
}

func (s *AccommodationService) GetAccommodation(ctx context.Context, accommodationID uuid.UUID) (*resp.AccommodationResponse, error) {
	accommodation, err := s.repos.Accommodations.GetByID(ctx, accommodationID)
	if err != nil {
		return nil, persistenceErr(s.log, "loading accommodation", err)
	}
	if accommodation == nil {
		return nil, utils.ErrAccommodationNotFound
	}
	out := BuildAccommodationResponse(accommodation)
	return &out, nil
}

func (s *AccommodationService) ListAccommodations(ctx context.Context, itineraryID uuid.UUID) ([]resp.AccommodationResponse, error) {
	itinerary, err := s.repos.Itineraries.GetByID(ctx, itineraryID)
	if err != nil {
		return nil, persistenceErr(s.log, "loading itinerary", err)
	}
	if itinerary == nil {
		return nil, utils.ErrItineraryNotFound
	}

	accommodations, err := s.repos.Accommodations.ListByItinerary(ctx, itineraryID)
	if err != nil {
		return nil, persistenceErr(s.log, "listing accommodations", err)
	}
	out := make([]resp.AccommodationResponse, 0, len(accommodations))
	for i := range accommodations {
		out = append(out, BuildAccommodationResponse(&accommodations[i]))
	}
	return out, nil
}
