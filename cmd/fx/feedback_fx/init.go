package feedback_fx

import (
	"go.uber.org/fx"
	"wayfarer/internal/engine"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

var Module = fx.Provide(
	provideFeedbackService)

func provideFeedbackService(
	catalog services.CatalogProviderInterface,
	eta services.ETAServiceInterface,
	scorer engine.PreferenceScorer,
	cfg *utils.Config,
) services.FeedbackServiceInterface {
	return services.NewFeedbackService(catalog, eta, scorer, cfg)
}
