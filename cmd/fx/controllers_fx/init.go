package controllers_fx

import (
	"go.uber.org/fx"

	"itinera/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewItemController),
	fx.Provide(controllers.NewAccommodationController),
	fx.Provide(controllers.NewFlightController),
	fx.Provide(controllers.NewPlacesController))
