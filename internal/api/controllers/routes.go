package controllers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts every itinerary endpoint behind auth.
func RegisterRoutes(r gin.IRouter,
	auth gin.HandlerFunc,
	itineraryController *ItineraryController,
	itemController *ItemController,
	accommodationController *AccommodationController,
	flightController *FlightController,
	placesController *PlacesController) {

	api := r.Group("", auth)

	itineraries := api.Group("/itineraries")
	itineraries.POST("", itineraryController.CreateItinerary)
	itineraries.GET("/:itineraryId", itineraryController.GetItinerary)
	itineraries.PATCH("/:itineraryId", itineraryController.UpdateItinerary)
	itineraries.DELETE("/:itineraryId", itineraryController.DeleteItinerary)
	itineraries.PUT("/:itineraryId/days/:dayId/order", itemController.ReorderItems)
	itineraries.POST("/:itineraryId/accommodations", accommodationController.CreateAccommodation)
	itineraries.GET("/:itineraryId/accommodations", accommodationController.ListAccommodations)
	itineraries.POST("/:itineraryId/flights", flightController.CreateFlight)
	itineraries.GET("/:itineraryId/flights", flightController.ListFlights)

	api.GET("/projects/:projectId/itinerary", itineraryController.GetItineraryByProject)
	api.GET("/projects/:projectId/places", placesController.ListProjectPlaces)
	api.GET("/places/:placeId", placesController.GetPlace)

	days := api.Group("/days")
	days.POST("/:dayId/items", itemController.AddItem)
	days.GET("/:dayId/items", itemController.ListDayItems)

	items := api.Group("/items")
	items.PATCH("/:itemId", itemController.UpdateItem)
	items.DELETE("/:itemId", itemController.DeleteItem)
	items.POST("/:itemId/move", itemController.MoveItem)

	accommodations := api.Group("/accommodations")
	accommodations.GET("/:accommodationId", accommodationController.GetAccommodation)
	accommodations.PUT("/:accommodationId", accommodationController.UpdateAccommodation)
	accommodations.DELETE("/:accommodationId", accommodationController.DeleteAccommodation)

	flights := api.Group("/flights")
	flights.PUT("/:flightId", flightController.UpdateFlight)
	flights.DELETE("/:flightId", flightController.DeleteFlight)
}
