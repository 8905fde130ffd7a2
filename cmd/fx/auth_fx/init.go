package auth_fx

import (
	"go.uber.org/fx"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

var Module = fx.Provide(
	provideAuthService)

func provideAuthService(cfg *utils.Config) services.AuthServiceInterface {
	return services.NewAuthService(cfg)
}
