package itinerary_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"itinera/internal/ordering"
	"itinera/internal/repositories"
	"itinera/internal/services"
)

var Module = fx.Provide(
	provideRepositories,
	provideUnitOfWork,
	ordering.NewService,
	services.NewAccommodationSyncEngine,
	services.NewItineraryService,
	services.NewItemService,
	services.NewAccommodationService,
	services.NewFlightService,
	services.NewPlaceService,
)

func provideRepositories(db *gorm.DB) repositories.Repositories {
	return repositories.NewRepositories(db)
}

func provideUnitOfWork(db *gorm.DB) repositories.UnitOfWork {
	return repositories.NewUnitOfWork(db)
}
