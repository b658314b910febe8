package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	dbm "itinera/internal/models/db_models"
)

type ItemRepository interface {
	Create(ctx context.Context, item *dbm.ItineraryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*dbm.ItineraryItem, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error

	ListByDay(ctx context.Context, dayID uuid.UUID) ([]dbm.ItineraryItem, error)
	ListByAccommodation(ctx context.Context, accommodationID uuid.UUID) ([]dbm.ItineraryItem, error)
	DeleteByAccommodation(ctx context.Context, accommodationID uuid.UUID) (int64, error)

	// Day ordering primitives, see ordering.Store.
	ListIDsByDay(ctx context.Context, dayID uuid.UUID) ([]uuid.UUID, error)
	MaxOrder(ctx context.Context, dayID uuid.UUID) (int, bool, error)
	ShiftOrders(ctx context.Context, dayID uuid.UUID, delta int) error
	SetOrders(ctx context.Context, dayID uuid.UUID, orderedIDs []uuid.UUID) error
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *dbm.ItineraryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) GetByID(ctx context.Context, id uuid.UUID) (*dbm.ItineraryItem, error) {
	var item dbm.ItineraryItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = nowUnix()

	res := r.db.WithContext(ctx).
		Model(&dbm.ItineraryItem{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *itemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&dbm.ItineraryItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *itemRepository) ListByDay(ctx context.Context, dayID uuid.UUID) ([]dbm.ItineraryItem, error) {
	var items []dbm.ItineraryItem
	err := r.db.WithContext(ctx).
		Where("day_id = ?", dayID).
		Order("sort_order ASC, created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) ListByAccommodation(ctx context.Context, accommodationID uuid.UUID) ([]dbm.ItineraryItem, error) {
	var items []dbm.ItineraryItem
	err := r.db.WithContext(ctx).
		Where("accommodation_id = ?", accommodationID).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) DeleteByAccommodation(ctx context.Context, accommodationID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("accommodation_id = ?", accommodationID).
		Delete(&dbm.ItineraryItem{})
	return res.RowsAffected, res.Error
}

func (r *itemRepository) ListIDsByDay(ctx context.Context, dayID uuid.UUID) ([]uuid.UUID, error) {
	items, err := r.ListByDay(ctx, dayID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids, nil
}

func (r *itemRepository) MaxOrder(ctx context.Context, dayID uuid.UUID) (int, bool, error) {
	var max sql.NullInt64
	err := r.db.WithContext(ctx).
		Model(&dbm.ItineraryItem{}).
		Select("MAX(sort_order)").
		Where("day_id = ?", dayID).
		Row().
		Scan(&max)
	if err != nil {
		return 0, false, err
	}
	if !max.Valid {
		return 0, false, nil
	}
	return int(max.Int64), true, nil
}

func (r *itemRepository) ShiftOrders(ctx context.Context, dayID uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).
		Model(&dbm.ItineraryItem{}).
		Where("day_id = ?", dayID).
		UpdateColumn("sort_order", gorm.Expr("sort_order + ?", delta)).Error
}

func (r *itemRepository) SetOrders(ctx context.Context, dayID uuid.UUID, orderedIDs []uuid.UUID) error {
	db := r.db.WithContext(ctx)
	for i, id := range orderedIDs {
		res := db.Model(&dbm.ItineraryItem{}).
			Where("id = ? AND day_id = ?", id, dayID).
			UpdateColumn("sort_order", i)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("item %s not in day %s: %w", id, dayID, gorm.ErrRecordNotFound)
		}
	}
	return nil
}
