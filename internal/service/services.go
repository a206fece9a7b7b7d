package service

import (
	"github.com/MKhiriev/fitgrit/internal/config"
	"github.com/MKhiriev/fitgrit/internal/logger"
	"github.com/MKhiriev/fitgrit/internal/store"
)

// Services bundles every business-logic service the handlers depend on.
type Services struct {
	AuthService   AuthService
	LogService    LogService
	RecipeService RecipeService
	StatsService  StatsService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:   NewAuthService(storages.UserRepository, storages.SessionRepository, cfg.Auth, cfg.Defaults, logger),
		LogService:    NewLogService(storages.LogRepository, logger),
		RecipeService: NewRecipeService(storages.RecipeRepository, logger),
		StatsService:  NewStatsService(storages.LogRepository, logger),
	}
}
