package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"itinera/internal/models/request_models"
	"itinera/internal/services"
	"itinera/pkg/utils"
)

type FlightController struct {
	flightService services.FlightServiceInterface
}

func NewFlightController(flightService services.FlightServiceInterface) *FlightController {
	return &FlightController{
		flightService: flightService,
	}
}

// CreateFlight godoc
// @Summary Add a flight
// @Tags Flights
// @Accept json
// @Produce json
// @Param itineraryId path string true "Itinerary ID"
// @Param request body request_models.FlightRequest true "Flight"
// @Success 201 {object} response_models.FlightResponse
// @Security BearerAuth
// @Router /itineraries/{itineraryId}/flights [post]
func (f *FlightController) CreateFlight(c *gin.Context) {
	itineraryID, ok := uuidParam(c, "itineraryId")
	if !ok {
		return
	}
	var req request_models.FlightRequest
	if !bindJSON(c, &req) {
		return
	}

	flight, err := f.flightService.CreateFlight(c.Request.Context(), itineraryID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondWithStatus(c, http.StatusCreated, flight, "Flight created successfully")
}

func (f *FlightController) ListFlights(c *gin.Context) {
	itineraryID, ok := uuidParam(c, "itineraryId")
	if !ok {
		return
	}

	flights, err := f.flightService.ListFlights(c.Request.Context(), itineraryID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, flights, "Flights fetched successfully")
}

// UpdateFlight godoc
// @Summary Replace a flight
// @Tags Flights
// @Accept json
// @Produce json
// @Param flightId path string true "Flight ID"
// @Param request body request_models.FlightRequest true "Flight"
// @Success 200 {object} response_models.FlightResponse
// @Security BearerAuth
// @Router /flights/{flightId} [put]
func (f *FlightController) UpdateFlight(c *gin.Context) {
	flightID, ok := uuidParam(c, "flightId")
	if !ok {
		return
	}
	var req request_models.FlightRequest
	if !bindJSON(c, &req) {
		return
	}

	flight, err := f.flightService.UpdateFlight(c.Request.Context(), flightID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, flight, "Flight updated successfully")
}

func (f *FlightController) DeleteFlight(c *gin.Context) {
	flightID, ok := uuidParam(c, "flightId")
	if !ok {
		return
	}

	if err := f.flightService.DeleteFlight(c.Request.Context(), flightID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Flight deleted successfully")
}
