package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"itinera/internal/models/request_models"
	"itinera/internal/services"
	"itinera/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
	}
}

// CreateItinerary godoc
// @Summary Create itinerary
// @Description Create the itinerary of a project with one day per date between start_date and end_date
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.CreateItineraryRequest true "Project ID, dates, optional title"
// @Success 201 {object} response_models.ItineraryDetailResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itineraries [post]
func (i *ItineraryController) CreateItinerary(c *gin.Context) {
	var req request_models.CreateItineraryRequest
	if !bindJSON(c, &req) {
		return
	}

	itinerary, err := i.itineraryService.CreateItinerary(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondWithStatus(c, http.StatusCreated, itinerary, "Itinerary created successfully")
}

// GetItinerary godoc
// @Summary Get itinerary details
// @Tags Itinerary
// @Produce json
// @Param itineraryId path string true "Itinerary ID"
// @Success 200 {object} response_models.ItineraryDetailResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itineraries/{itineraryId} [get]
func (i *ItineraryController) GetItinerary(c *gin.Context) {
	itineraryID, ok := uuidParam(c, "itineraryId")
	if !ok {
		return
	}

	itinerary, err := i.itineraryService.GetItineraryDetails(c.Request.Context(), itineraryID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Itinerary fetched successfully")
}

// GetItineraryByProject godoc
// @Summary Get the itinerary of a project
// @Tags Itinerary
// @Produce json
// @Param projectId path string true "Project ID"
// @Success 200 {object} response_models.ItineraryDetailResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /projects/{projectId}/itinerary [get]
func (i *ItineraryController) GetItineraryByProject(c *gin.Context) {
	projectID, ok := uuidParam(c, "projectId")
	if !ok {
		return
	}

	itinerary, err := i.itineraryService.GetItineraryByProject(c.Request.Context(), projectID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Itinerary fetched successfully")
}

// UpdateItinerary godoc
// @Summary Rename itinerary
// @Description An empty or missing title clears it
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param itineraryId path string true "Itinerary ID"
// @Param request body request_models.UpdateItineraryRequest true "Title"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itineraries/{itineraryId} [patch]
func (i *ItineraryController) UpdateItinerary(c *gin.Context) {
	itineraryID, ok := uuidParam(c, "itineraryId")
	if !ok {
		return
	}
	var req request_models.UpdateItineraryRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := i.itineraryService.UpdateItineraryTitle(c.Request.Context(), itineraryID, req.Title); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Itinerary updated successfully")
}

// DeleteItinerary godoc
// @Summary Delete itinerary
// @Description Deletes the itinerary with its days, items, accommodations and flights
// @Tags Itinerary
// @Param itineraryId path string true "Itinerary ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itineraries/{itineraryId} [delete]
func (i *ItineraryController) DeleteItinerary(c *gin.Context) {
	itineraryID, ok := uuidParam(c, "itineraryId")
	if !ok {
		return
	}

	if err := i.itineraryService.DeleteItinerary(c.Request.Context(), itineraryID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Itinerary deleted successfully")
}
