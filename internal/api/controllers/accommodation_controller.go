package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"itinera/internal/models/request_models"
	"itinera/internal/services"
	"itinera/pkg/utils"
)

type AccommodationController struct {
	accommodationService services.AccommodationServiceInterface
}

func NewAccommodationController(accommodationService services.AccommodationServiceInterface) *AccommodationController {
	return &AccommodationController{
		accommodationService: accommodationService,
	}
}

// CreateAccommodation godoc
// @Summary Add a stay
// @Description Creates the stay and its check-in, overnight and check-out items
// @Tags Accommodations
// @Accept json
// @Produce json
// @Param itineraryId path string true "Itinerary ID"
// @Param request body request_models.AccommodationRequest true "Stay"
// @Success 201 {object} response_models.AccommodationResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse "Derived items could not be synchronized"
// @Security BearerAuth
// @Router /itineraries/{itineraryId}/accommodations [post]
func (a *AccommodationController) CreateAccommodation(c *gin.Context) {
	itineraryID, ok := uuidParam(c, "itineraryId")
	if !ok {
		return
	}
	var req request_models.AccommodationRequest
	if !bindJSON(c, &req) {
		return
	}

	accommodation, err := a.accommodationService.CreateAccommodation(c.Request.Context(), itineraryID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondWithStatus(c, http.StatusCreated, accommodation, "Accommodation created successfully")
}

// ListAccommodations godoc
// @Summary List the stays of an itinerary
// @Tags Accommodations
// @Produce json
// @Param itineraryId path string true "Itinerary ID"
// @Success 200 {array} response_models.AccommodationResponse
// @Security BearerAuth
// @Router /itineraries/{itineraryId}/accommodations [get]
func (a *AccommodationController) ListAccommodations(c *gin.Context) {
	itineraryID, ok := uuidParam(c, "itineraryId")
	if !ok {
		return
	}

	accommodations, err := a.accommodationService.ListAccommodations(c.Request.Context(), itineraryID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, accommodations, "Accommodations fetched successfully")
}

func (a *AccommodationController) GetAccommodation(c *gin.Context) {
	accommodationID, ok := uuidParam(c, "accommodationId")
	if !ok {
		return
	}

	accommodation, err := a.accommodationService.GetAccommodation(c.Request.Context(), accommodationID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, accommodation, "Accommodation fetched successfully")
}

// UpdateAccommodation godoc
// @Summary Replace a stay
// @Description Derived items are rebuilt when the check-in or check-out date changes
// @Tags Accommodations
// @Accept json
// @Produce json
// @Param accommodationId path string true "Accommodation ID"
// @Param request body request_models.AccommodationRequest true "Stay"
// @Success 200 {object} response_models.AccommodationResponse
// @Security BearerAuth
// @Router /accommodations/{accommodationId} [put]
func (a *AccommodationController) UpdateAccommodation(c *gin.Context) {
	accommodationID, ok := uuidParam(c, "accommodationId")
	if !ok {
		return
	}
	var req request_models.AccommodationRequest
	if !bindJSON(c, &req) {
		return
	}

	accommodation, err := a.accommodationService.UpdateAccommodation(c.Request.Context(), accommodationID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, accommodation, "Accommodation updated successfully")
}

// DeleteAccommodation godoc
// @Summary Delete a stay and its derived items
// @Tags Accommodations
// @Param accommodationId path string true "Accommodation ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /accommodations/{accommodationId} [delete]
func (a *AccommodationController) DeleteAccommodation(c *gin.Context) {
	accommodationID, ok := uuidParam(c, "accommodationId")
	if !ok {
		return
	}

	if err := a.accommodationService.DeleteAccommodation(c.Request.Context(), accommodationID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Accommodation deleted successfully")
}
