package engine_fx

import (
	"time"

	"go.uber.org/fx"
	"wayfarer/internal/engine"
	"wayfarer/internal/services"
	"wayfarer/pkg/memcache"
	"wayfarer/pkg/utils"
)

var Module = fx.Provide(
	provideScorer, provideETACache, provideRoutesClient, provideETAService)

func provideScorer() engine.PreferenceScorer {
	return engine.NewHeuristicPrefScorer()
}

func provideETACache() memcache.ETACacheInterface {
	return memcache.NewETACache()
}

func provideRoutesClient(cfg *utils.Config) services.RoutesClientInterface {
	if !cfg.UseLiveRoutes || cfg.RoutesAPIKey == "" {
		return nil
	}
	return services.NewGoogleRoutesClient(cfg.RoutesAPIKey, time.Duration(cfg.RoutesTimeoutMS)*time.Millisecond)
}

func provideETAService(cache memcache.ETACacheInterface, client services.RoutesClientInterface, cfg *utils.Config) services.ETAServiceInterface {
	return services.NewETAService(cache, client, cfg)
}
