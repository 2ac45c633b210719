package handler

import (
	"github.com/beezetrack/beezetrack-server/internal/config"
	"github.com/beezetrack/beezetrack-server/internal/handler/http"
	"github.com/beezetrack/beezetrack-server/internal/logger"
	"github.com/beezetrack/beezetrack-server/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg.Storage.Files.UploadsDir, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
