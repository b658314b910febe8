package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	dbm "itinera/internal/models/db_models"
	resp "itinera/internal/models/response_models"
	"itinera/internal/repositories"
	"itinera/pkg/utils"
)

const MaxPlacePageSize = 100

// PlaceServiceInterface reads the places an itinerary can reference.
type PlaceServiceInterface interface {
	GetPlace(ctx context.Context, id uuid.UUID) (*resp.Place, error)
	ListProjectPlaces(ctx context.Context, projectID uuid.UUID, page, pageSize int) ([]resp.Place, error)
}

type PlaceService struct {
	repos repositories.Repositories
	log   *zap.Logger
}

func NewPlaceService(repos repositories.Repositories, log *zap.Logger) PlaceServiceInterface {
	return &PlaceService{repos: repos, log: log}
}

func buildPlaceResponse(p *dbm.Place) resp.Place {
	return resp.Place{
		ID:        p.ID.String(),
		ProjectID: p.ProjectID.String(),
		Name:      p.Name,
		Category:  p.Category,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
	}
}

func (s *PlaceService) GetPlace(ctx context.Context, id uuid.UUID) (*resp.Place, error) {
	place, err := s.repos.Places.GetByID(ctx, id)
	if err != nil {
		return nil, persistenceErr(s.log, "loading place", err)
	}
	if place == nil {
		return nil, utils.ErrPlaceNotFound
	}
	out := buildPlaceResponse(place)
	return &out, nil
}

func (s *PlaceService) ListProjectPlaces(ctx context.Context, projectID uuid.UUID, page, pageSize int) ([]resp.Place, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > MaxPlacePageSize {
		return nil, utils.ErrInvalidPageSize
	}

	places, err := s.repos.Places.ListByProject(ctx, projectID, page, pageSize)
	if err != nil {
		return nil, persistenceErr(s.log, "listing places", err)
	}

	out := make([]resp.Place, 0, len(places))
	for i := range places {
		out = append(out, buildPlaceResponse(&places[i]))
	}
	return out, nil
}
