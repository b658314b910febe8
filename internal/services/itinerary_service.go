package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dbm "itinera/internal/models/db_models"
	"itinera/internal/models/request_models"
	resp "itinera/internal/models/response_models"
	"itinera/internal/repositories"
	mem "itinera/pkg/memcache"
	"itinera/pkg/utils"
)

// MaxTripDays bounds the number of generated days per itinerary.
const MaxTripDays = 366

type ItineraryServiceInterface interface {
	CreateItinerary(ctx context.Context, req request_models.CreateItineraryRequest) (*resp.ItineraryDetailResponse, error)
	GetItineraryDetails(ctx context.Context, itineraryID uuid.UUID) (*resp.ItineraryDetailResponse, error)
	GetItineraryByProject(ctx context.Context, projectID uuid.UUID) (*resp.ItineraryDetailResponse, error)
	UpdateItineraryTitle(ctx context.Context, itineraryID uuid.UUID, title *string) error
	DeleteItinerary(ctx context.Context, itineraryID uuid.UUID) error
}

type ItineraryService struct {
	repos repositories.Repositories
	uow   repositories.UnitOfWork
	cache mem.ItineraryCache
	log   *zap.Logger
}

func NewItineraryService(repos repositories.Repositories,
	uow repositories.UnitOfWork,
	cache mem.ItineraryCache,
	log *zap.Logger) ItineraryServiceInterface {
	return &ItineraryService{repos: repos, uow: uow, cache: cache, log: log}
}

// BuildDays lays out one day per calendar date in [start, end], numbered
// from 1.
func BuildDays(start, end time.Time) []dbm.ItineraryDay {
	n := utils.InclusiveDays(start, end)
	base := utils.DateOnly(start)

	days := make([]dbm.ItineraryDay, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, dbm.ItineraryDay{
			DayNumber: i + 1,
			Date:      base.AddDate(0, 0, i),
		})
	}
	return days
}

func normalizeTitle(title *string) *string {
	if title == nil {
		return nil
	}
	t := strings.TrimSpace(*title)
	if t == "" {
		return nil
	}
	return &t
}

func (s *ItineraryService) CreateItinerary(ctx context.Context, req request_models.CreateItineraryRequest) (*resp.ItineraryDetailResponse, error) {
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return nil, utils.NewValidationError("project_id", "must be a UUID")
	}
	if req.StartDate == "" {
		return nil, utils.NewValidationError("start_date", "is required")
	}
	if req.EndDate == "" {
		return nil, utils.NewValidationError("end_date", "is required")
	}
	start, err := utils.ParseDateOrTime(req.StartDate)
	if err != nil {
		return nil, utils.NewValidationError("start_date", err.Error())
	}
	end, err := utils.ParseDateOrTime(req.EndDate)
	if err != nil {
		return nil, utils.NewValidationError("end_date", err.Error())
	}
	if utils.DateOnly(end).Before(utils.DateOnly(start)) {
		return nil, utils.NewValidationError("end_date", "must not be before start_date")
	}
	if utils.InclusiveDays(start, end) > MaxTripDays {
		return nil, utils.NewValidationError("end_date", fmt.Sprintf("trip cannot exceed %d days", MaxTripDays))
	}

	itinerary := &dbm.Itinerary{
		ProjectID: projectID,
		Title:     normalizeTitle(req.Title),
		StartDate: utils.DateOnly(start),
		EndDate:   utils.DateOnly(end),
		Days:      BuildDays(start, end),
	}

	err = s.uow.Do(ctx, func(repos repositories.Repositories) error {
		existing, err := repos.Itineraries.GetByProjectID(ctx, projectID)
		if err != nil {
			return err
		}
		if existing != nil {
			return utils.ErrItineraryExists
		}
		return repos.Itineraries.Create(ctx, itinerary)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, utils.ErrItineraryExists
	}
	if err != nil {
		return nil, persistenceErr(s.log, "creating itinerary", err)
	}

	s.log.Info("itinerary created",
		zap.String("itinerary_id", itinerary.ID.String()),
		zap.Int("days", len(itinerary.Days)))

	return BuildItineraryDetailResponse(itinerary), nil
}

func (s *ItineraryService) GetItineraryDetails(ctx context.Context, itineraryID uuid.UUID) (*resp.ItineraryDetailResponse, error) {
	if cached, ok := s.cache.Get(ctx, itineraryID); ok {
		return cached, nil
	}

	gen := s.cache.Generation(ctx, itineraryID)
	itinerary, err := s.repos.Itineraries.GetDetails(ctx, itineraryID)
	if err != nil {
		return nil, persistenceErr(s.log, "loading itinerary", err)
	}
	if itinerary == nil {
		return nil, utils.ErrItineraryNotFound
	}

	out := BuildItineraryDetailResponse(itinerary)
	s.cache.Set(ctx, itineraryID, gen, out)
	return out, nil
}

func (s *ItineraryService) GetItineraryByProject(ctx context.Context, projectID uuid.UUID) (*resp.ItineraryDetailResponse, error) {
	itinerary, err := s.repos.Itineraries.GetByProjectID(ctx, projectID)
	if err != nil {
		return nil, persistenceErr(s.log, "loading itinerary by project", err)
	}
	if itinerary == nil {
		return nil, utils.ErrItineraryNotFound
	}
	return s.GetItineraryDetails(ctx, itinerary.ID)
}

func (s *ItineraryService) UpdateItineraryTitle(ctx context.Context, itineraryID uuid.UUID, title *string) error {
	err := s.repos.Itineraries.UpdateTitle(ctx, itineraryID, normalizeTitle(title))
	if err != nil {
		return persistenceErr(s.log, "updating itinerary title", notFoundAs(err, utils.ErrItineraryNotFound))
	}
	s.cache.Invalidate(ctx, itineraryID)
	return nil
}

func (s *ItineraryService) DeleteItinerary(ctx context.Context, itineraryID uuid.UUID) error {
	err := s.uow.Do(ctx, func(repos repositories.Repositories) error {
		return notFoundAs(repos.Itineraries.Delete(ctx, itineraryID), utils.ErrItineraryNotFound)
	})
	if err != nil {
		return persistenceErr(s.log, "deleting itinerary", err)
	}
	s.cache.Invalidate(ctx, itineraryID)
	return nil
}
