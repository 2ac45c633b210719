package store

import (
	"context"

	"github.com/beezetrack/beezetrack-server/internal/config"
	"github.com/beezetrack/beezetrack-server/internal/logger"
)

// Storages aggregates every persistence backend used by the server:
// the two SQLite-backed repositories and the package-image file store.
type Storages struct {
	UserRepository     UserRepository
	DeliveryRepository DeliveryRepository
	ImageFileStorage   ImageFileStorage
}

// NewStorages opens the SQLite database, runs the embedded migrations, and
// wires all repositories. The returned handle is constructed once at
// startup and injected into the service layer.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectSQLite(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, err
	}

	imageStorage, err := NewImageFileStorage(cfg.Files, log)
	if err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository:     NewUserRepository(db, log),
		DeliveryRepository: NewDeliveryRepository(db, log),
		ImageFileStorage:   imageStorage,
	}, nil
}
