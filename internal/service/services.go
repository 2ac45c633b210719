package service

import (
	"github.com/beezetrack/beezetrack-server/internal/config"
	"github.com/beezetrack/beezetrack-server/internal/logger"
	"github.com/beezetrack/beezetrack-server/internal/store"
)

// Services aggregates every domain service exposed to the transport layer.
type Services struct {
	AuthService     AuthService
	DeliveryService DeliveryService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:     NewAuthService(storages.UserRepository, cfg.App, logger),
		DeliveryService: NewDeliveryService(storages.DeliveryRepository, storages.ImageFileStorage, logger),
	}
}
