package itinerary_fx

import (
	"go.uber.org/fx"
	"wayfarer/internal/engine"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

var Module = fx.Provide(
	provideItineraryService)

func provideItineraryService(
	catalog services.CatalogProviderInterface,
	eta services.ETAServiceInterface,
	scorer engine.PreferenceScorer,
	cfg *utils.Config,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(catalog, eta, scorer, cfg)
}
