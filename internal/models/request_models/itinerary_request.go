package request_models

type CreateItineraryRequest struct {
	ProjectID string  `json:"project_id" binding:"required,uuid"`
	Title     *string `json:"title"`
	// YYYY-MM-DD or RFC3339
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

type UpdateItineraryRequest struct {
	Title *string `json:"title"`
}

type AddItemRequest struct {
	PlaceID string `json:"place_id" binding:"required,uuid"`
	// Order is the wanted position; omitted means append.
	Order     *int    `json:"order"`
	StartTime *string `json:"start_time"` // HH:MM
	Note      *string `json:"note"`
}

// UpdateItemRequest fields left nil are unchanged; an empty StartTime or
// Note clears the value.
type UpdateItemRequest struct {
	Order     *int    `json:"order"`
	StartTime *string `json:"start_time"`
	Note      *string `json:"note"`
}

type ReorderItemsRequest struct {
	OrderedItemIDs []string `json:"ordered_item_ids" binding:"required"`
}

type MoveItemRequest struct {
	TargetDayID string `json:"target_day_id" binding:"required,uuid"`
}
