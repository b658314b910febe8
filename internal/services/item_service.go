package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	dbm "itinera/internal/models/db_models"
	"itinera/internal/models/request_models"
	resp "itinera/internal/models/response_models"
	"itinera/internal/ordering"
	"itinera/internal/repositories"
	mem "itinera/pkg/memcache"
	"itinera/pkg/utils"
)

type ItemServiceInterface interface {
	AddItem(ctx context.Context, dayID uuid.UUID, req request_models.AddItemRequest) (*resp.ItemResponse, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, req request_models.UpdateItemRequest) (*resp.ItemResponse, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	ListDayItems(ctx context.Context, dayID uuid.UUID) ([]resp.ItemResponse, error)
	ReorderItems(ctx context.Context, itineraryID, dayID uuid.UUID, orderedItemIDs []uuid.UUID) ([]resp.ItemResponse, error)
	MoveItemToDay(ctx context.Context, itemID, targetDayID uuid.UUID) (*resp.ItemResponse, error)
}

type ItemService struct {
	repos    repositories.Repositories
	uow      repositories.UnitOfWork
	ordering *ordering.Service
	cache    mem.ItineraryCache
	log      *zap.Logger
}

func NewItemService(repos repositories.Repositories,
	uow repositories.UnitOfWork,
	ord *ordering.Service,
	cache mem.ItineraryCache,
	log *zap.Logger) ItemServiceInterface {
	return &ItemService{repos: repos, uow: uow, ordering: ord, cache: cache, log: log}
}

// optionalText turns "" into a cleared (nil) value.
func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func parseStartTime(s *string) (*string, error) {
	v := optionalText(s)
	if v == nil {
		return nil, nil
	}
	norm, err := utils.NormalizeTimeOfDay(*v)
	if err != nil {
		return nil, utils.NewValidationError("start_time", err.Error())
	}
	return &norm, nil
}

func indexOf(ids []uuid.UUID, id uuid.UUID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// placeAt renumbers the day so id sits at position (clamped to the day).
func (s *ItemService) placeAt(ctx context.Context, repos repositories.Repositories, dayID, id uuid.UUID, position int) error {
	ids, err := repos.Items.ListIDsByDay(ctx, dayID)
	if err != nil {
		return err
	}
	from := indexOf(ids, id)
	if from < 0 {
		return utils.ErrItemNotFound
	}
	if position > len(ids)-1 {
		position = len(ids) - 1
	}
	reordered, err := ordering.Move(ids, from, position)
	if err != nil {
		return err
	}
	return s.ordering.Renumber(ctx, repos.Items, dayID, reordered)
}

func (s *ItemService) AddItem(ctx context.Context, dayID uuid.UUID, req request_models.AddItemRequest) (*resp.ItemResponse, error) {
	placeID, err := uuid.Parse(req.PlaceID)
	if err != nil {
		return nil, utils.NewValidationError("place_id", "must be a UUID")
	}
	if req.Order != nil && *req.Order < 0 {
		return nil, utils.NewValidationError("order", "must not be negative")
	}
	startTime, err := parseStartTime(req.StartTime)
	if err != nil {
		return nil, err
	}

	var (
		item        *dbm.ItineraryItem
		itineraryID uuid.UUID
	)
	err = s.uow.Do(ctx, func(repos repositories.Repositories) error {
		day, err := repos.Itineraries.GetDay(ctx, dayID)
		if err != nil {
			return err
		}
		if day == nil {
			return utils.ErrDayNotFound
		}
		itinerary, err := repos.Itineraries.GetByID(ctx, day.ItineraryID)
		if err != nil {
			return err
		}
		if itinerary == nil {
			return utils.ErrItineraryNotFound
		}
		itineraryID = itinerary.ID

		place, err := repos.Places.GetByID(ctx, placeID)
		if err != nil {
			return err
		}
		if place == nil {
			return utils.ErrPlaceNotFound
		}
		if place.ProjectID != itinerary.ProjectID {
			return utils.NewValidationError("place_id", "place belongs to another project")
		}

		order, err := s.ordering.InsertAtEnd(ctx, repos.Items, day.ID)
		if err != nil {
			return err
		}
		item = &dbm.ItineraryItem{
			DayID:     day.ID,
			Kind:      dbm.ItemKindPlace,
			PlaceID:   &placeID,
			Order:     order,
			StartTime: startTime,
			Note:      optionalText(req.Note),
		}
		if err := repos.Items.Create(ctx, item); err != nil {
			return err
		}

		if req.Order != nil && *req.Order < order {
			if err := s.placeAt(ctx, repos, day.ID, item.ID, *req.Order); err != nil {
				return err
			}
			item.Order = *req.Order
		}
		return nil
	})
	if err != nil {
		return nil, persistenceErr(s.log, "adding item", err)
	}

	s.cache.Invalidate(ctx, itineraryID)
	out := BuildItemResponse(item)
	return &out, nil
}

func (s *ItemService) UpdateItem(ctx context.Context, itemID uuid.UUID, req request_models.UpdateItemRequest) (*resp.ItemResponse, error) {
	fields := map[string]interface{}{}
	if req.StartTime != nil {
		startTime, err := parseStartTime(req.StartTime)
		if err != nil {
			return nil, err
		}
		fields["start_time"] = startTime
	}
	if req.Note != nil {
		fields["note"] = optionalText(req.Note)
	}
	if req.Order != nil && *req.Order < 0 {
		return nil, utils.NewValidationError("order", "must not be negative")
	}

	var (
		updated     *dbm.ItineraryItem
		itineraryID uuid.UUID
	)
	err := s.uow.Do(ctx, func(repos repositories.Repositories) error {
		item, err := repos.Items.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return utils.ErrItemNotFound
		}
		day, err := repos.Itineraries.GetDay(ctx, item.DayID)
		if err != nil {
			return err
		}
		if day == nil {
			return utils.ErrDayNotFound
		}
		itineraryID = day.ItineraryID

		if err := repos.Items.UpdateFields(ctx, item.ID, fields); err != nil {
			return notFoundAs(err, utils.ErrItemNotFound)
		}

		if req.Order != nil {
			ids, err := repos.Items.ListIDsByDay(ctx, item.DayID)
			if err != nil {
				return err
			}
			if *req.Order > len(ids)-1 {
				return utils.NewValidationError("order", "is past the end of the day")
			}
			if err := s.placeAt(ctx, repos, item.DayID, item.ID, *req.Order); err != nil {
				return err
			}
		}

		updated, err = repos.Items.GetByID(ctx, item.ID)
		return err
	})
	if err != nil {
		return nil, persistenceErr(s.log, "updating item", err)
	}

	s.cache.Invalidate(ctx, itineraryID)
	out := BuildItemResponse(updated)
	return &out, nil
}

func (s *ItemService) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	var itineraryID uuid.UUID
	err := s.uow.Do(ctx, func(repos repositories.Repositories) error {
		item, err := repos.Items.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return utils.ErrItemNotFound
		}
		day, err := repos.Itineraries.GetDay(ctx, item.DayID)
		if err != nil {
			return err
		}
		if day == nil {
			return utils.ErrDayNotFound
		}
		itineraryID = day.ItineraryID

		if err := repos.Items.Delete(ctx, item.ID); err != nil {
			return notFoundAs(err, utils.ErrItemNotFound)
		}
		return s.ordering.Compact(ctx, repos.Items, item.DayID)
	})
	if err != nil {
		return persistenceErr(s.log, "deleting item", err)
	}

	s.cache.Invalidate(ctx, itineraryID)
	return nil
}

func (s *ItemService) ListDayItems(ctx context.Context, dayID uuid.UUID) ([]resp.ItemResponse, error) {
	day, err := s.repos.Itineraries.GetDay(ctx, dayID)
	if err != nil {
		return nil, persistenceErr(s.log, "loading day", err)
	}
	if day == nil {
		return nil, utils.ErrDayNotFound
	}
	items, err := s.repos.Items.ListByDay(ctx, dayID)
	if err != nil {
		return nil, persistenceErr(s.log, "listing day items", err)
	}
	return BuildDayItemsResponse(items), nil
}

// ReorderItems renumbers a whole day in one transaction. orderedItemIDs
// must list every item of the day exactly once.
func (s *ItemService) ReorderItems(ctx context.Context, itineraryID, dayID uuid.UUID, orderedItemIDs []uuid.UUID) ([]resp.ItemResponse, error) {
	var items []dbm.ItineraryItem
	err := s.uow.Do(ctx, func(repos repositories.Repositories) error {
		day, err := repos.Itineraries.GetDay(ctx, dayID)
		if err != nil {
			return err
		}
		if day == nil || day.ItineraryID != itineraryID {
			return utils.ErrDayNotFound
		}

		if err := s.ordering.Renumber(ctx, repos.Items, dayID, orderedItemIDs); err != nil {
			if errors.Is(err, ordering.ErrNotPermutation) {
				return utils.NewValidationError("ordered_item_ids", err.Error())
			}
			return err
		}

		items, err = repos.Items.ListByDay(ctx, dayID)
		return err
	})
	if err != nil {
		return nil, persistenceErr(s.log, "reordering items", err)
	}

	s.cache.Invalidate(ctx, itineraryID)
	return BuildDayItemsResponse(items), nil
}

// MoveItemToDay appends a place item to another day of the same itinerary
// and compacts the day it left, in one transaction.
func (s *ItemService) MoveItemToDay(ctx context.Context, itemID, targetDayID uuid.UUID) (*resp.ItemResponse, error) {
	var (
		moved       *dbm.ItineraryItem
		itineraryID uuid.UUID
	)
	err := s.uow.Do(ctx, func(repos repositories.Repositories) error {
		item, err := repos.Items.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return utils.ErrItemNotFound
		}
		if item.Kind.IsDerived() {
			return utils.NewValidationError("item_id", "accommodation items follow their stay dates and cannot change day")
		}

		source, err := repos.Itineraries.GetDay(ctx, item.DayID)
		if err != nil {
			return err
		}
		if source == nil {
			return utils.ErrDayNotFound
		}
		target, err := repos.Itineraries.GetDay(ctx, targetDayID)
		if err != nil {
			return err
		}
		if target == nil {
			return utils.ErrDayNotFound
		}
		if target.ItineraryID != source.ItineraryID {
			return utils.NewValidationError("target_day_id", "day belongs to another itinerary")
		}
		itineraryID = source.ItineraryID

		if target.ID == source.ID {
			moved = item
			return nil
		}

		order, err := s.ordering.InsertAtEnd(ctx, repos.Items, target.ID)
		if err != nil {
			return err
		}
		if err := repos.Items.UpdateFields(ctx, item.ID, map[string]interface{}{
			"day_id":     target.ID,
			"sort_order": order,
		}); err != nil {
			return notFoundAs(err, utils.ErrItemNotFound)
		}
		if err := s.ordering.Compact(ctx, repos.Items, source.ID); err != nil {
			return err
		}

		moved, err = repos.Items.GetByID(ctx, item.ID)
		return err
	})
	if err != nil {
		return nil, persistenceErr(s.log, "moving item", err)
	}

	s.cache.Invalidate(ctx, itineraryID)
	out := BuildItemResponse(moved)
	return &out, nil
}
