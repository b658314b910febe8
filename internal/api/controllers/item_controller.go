package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"itinera/internal/models/request_models"
	"itinera/internal/services"
	"itinera/pkg/utils"
)

type ItemController struct {
	itemService services.ItemServiceInterface
}

func NewItemController(itemService services.ItemServiceInterface) *ItemController {
	return &ItemController{
		itemService: itemService,
	}
}

// AddItem godoc
// @Summary Add a place to a day
// @Description Appends the place, or inserts it at order when given
// @Tags Items
// @Accept json
// @Produce json
// @Param dayId path string true "Day ID"
// @Param request body request_models.AddItemRequest true "Place ID, optional order, start time, note"
// @Success 201 {object} response_models.ItemResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /days/{dayId}/items [post]
func (i *ItemController) AddItem(c *gin.Context) {
	dayID, ok := uuidParam(c, "dayId")
	if !ok {
		return
	}
	var req request_models.AddItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := i.itemService.AddItem(c.Request.Context(), dayID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondWithStatus(c, http.StatusCreated, item, "Item added successfully")
}

// ListDayItems godoc
// @Summary List the items of a day in order
// @Tags Items
// @Produce json
// @Param dayId path string true "Day ID"
// @Success 200 {array} response_models.ItemResponse
// @Security BearerAuth
// @Router /days/{dayId}/items [get]
func (i *ItemController) ListDayItems(c *gin.Context) {
	dayID, ok := uuidParam(c, "dayId")
	if !ok {
		return
	}

	items, err := i.itemService.ListDayItems(c.Request.Context(), dayID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, items, "Items fetched successfully")
}

// UpdateItem godoc
// @Summary Update an item
// @Description Changes order, start time or note. Empty strings clear start time and note.
// @Tags Items
// @Accept json
// @Produce json
// @Param itemId path string true "Item ID"
// @Param request body request_models.UpdateItemRequest true "Fields to change"
// @Success 200 {object} response_models.ItemResponse
// @Security BearerAuth
// @Router /items/{itemId} [patch]
func (i *ItemController) UpdateItem(c *gin.Context) {
	itemID, ok := uuidParam(c, "itemId")
	if !ok {
		return
	}
	var req request_models.UpdateItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := i.itemService.UpdateItem(c.Request.Context(), itemID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, item, "Item updated successfully")
}

// DeleteItem godoc
// @Summary Delete an item
// @Tags Items
// @Param itemId path string true "Item ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /items/{itemId} [delete]
func (i *ItemController) DeleteItem(c *gin.Context) {
	itemID, ok := uuidParam(c, "itemId")
	if !ok {
		return
	}

	if err := i.itemService.DeleteItem(c.Request.Context(), itemID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Item deleted successfully")
}

// ReorderItems godoc
// @Summary Reorder a day
// @Description ordered_item_ids must list every item of the day exactly once
// @Tags Items
// @Accept json
// @Produce json
// @Param itineraryId path string true "Itinerary ID"
// @Param dayId path string true "Day ID"
// @Param request body request_models.ReorderItemsRequest true "Item IDs in their new order"
// @Success 200 {array} response_models.ItemResponse
// @Security BearerAuth
// @Router /itineraries/{itineraryId}/days/{dayId}/order [put]
func (i *ItemController) ReorderItems(c *gin.Context) {
	itineraryID, ok := uuidParam(c, "itineraryId")
	if !ok {
		return
	}
	dayID, ok := uuidParam(c, "dayId")
	if !ok {
		return
	}
	var req request_models.ReorderItemsRequest
	if !bindJSON(c, &req) {
		return
	}

	ids := make([]uuid.UUID, 0, len(req.OrderedItemIDs))
	for _, raw := range req.OrderedItemIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.HandleServiceError(c, utils.NewValidationError("ordered_item_ids", "contains a value that is not a UUID"))
			return
		}
		ids = append(ids, id)
	}

	items, err := i.itemService.ReorderItems(c.Request.Context(), itineraryID, dayID, ids)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, items, "Items reordered successfully")
}

// MoveItem godoc
// @Summary Move a place item to another day
// @Description The item is appended to the target day
// @Tags Items
// @Accept json
// @Produce json
// @Param itemId path string true "Item ID"
// @Param request body request_models.MoveItemRequest true "Target day"
// @Success 200 {object} response_models.ItemResponse
// @Security BearerAuth
// @Router /items/{itemId}/move [post]
func (i *ItemController) MoveItem(c *gin.Context) {
	itemID, ok := uuidParam(c, "itemId")
	if !ok {
		return
	}
	var req request_models.MoveItemRequest
	if !bindJSON(c, &req) {
		return
	}

	targetDayID, err := uuid.Parse(req.TargetDayID)
	if err != nil {
		utils.HandleServiceError(c, utils.NewValidationError("target_day_id", "must be a UUID"))
		return
	}

	item, err := i.itemService.MoveItemToDay(c.Request.Context(), itemID, targetDayID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, item, "Item moved successfully")
}
