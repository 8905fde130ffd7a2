package controllers_fx

import (
	"go.uber.org/fx"
	"wayfarer/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAuthController),
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewFeedbackController),
	fx.Provide(controllers.NewCatalogController),
	fx.Provide(controllers.NewSemanticController))
