package catalog_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"wayfarer/internal/repositories"
	"wayfarer/internal/services"
)

var Module = fx.Provide(
	providePoiRepo, provideCatalogService, provideCatalogProvider)

func providePoiRepo(db *gorm.DB) repositories.POIRepository {
	return repositories.NewPOIRepository(db)
}

func provideCatalogService(poiRepo repositories.POIRepository) services.CatalogServiceInterface {
	return services.NewCatalogService(poiRepo)
}

func provideCatalogProvider(catalog services.CatalogServiceInterface) services.CatalogProviderInterface {
	return catalog
}
