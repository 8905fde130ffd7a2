package db_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"wayfarer/internal/infra"
	"wayfarer/pkg/utils"
)

var Module = fx.Provide(
	provideConfig, provideDB)

func provideConfig() *utils.Config {
	return utils.LoadConfig()
}

func provideDB() *gorm.DB {
	return infra.InitPostgresql()
}
