package http

import (
	"github.com/beezetrack/beezetrack-server/internal/logger"
	"github.com/beezetrack/beezetrack-server/internal/service"
)

type Handler struct {
	services *service.Services

	// uploadsDir is the on-disk directory served under the public
	// uploads prefix.
	uploadsDir string

	logger *logger.Logger
}

func NewHandler(services *service.Services, uploadsDir string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:   services,
		uploadsDir: uploadsDir,
		logger:     logger,
	}
}
