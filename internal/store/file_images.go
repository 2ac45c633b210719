package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/beezetrack/beezetrack-server/internal/config"
	"github.com/beezetrack/beezetrack-server/internal/logger"
)

// PublicUploadsPrefix is the URL path uploaded package images are served
// back from by the HTTP layer.
const PublicUploadsPrefix = "/static/uploads"

// imageFileStorage persists uploaded package images on the local
// filesystem under a configured root directory. Filenames are generated by
// the caller with a random unique component, so concurrent uploads never
// collide; orphaned files from failed record updates are not cleaned up.
type imageFileStorage struct {
	rootDir string
	logger  *logger.Logger
}

// NewImageFileStorage constructs an [ImageFileStorage] rooted at the
// configured uploads directory, creating the directory if it is missing.
func NewImageFileStorage(cfg config.Files, logger *logger.Logger) (ImageFileStorage, error) {
	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating uploads directory: %w", err)
	}

	logger.Debug().Str("dir", cfg.UploadsDir).Msg("creating image file storage")
	return &imageFileStorage{
		rootDir: cfg.UploadsDir,
		logger:  logger,
	}, nil
}

// SaveImage writes content to rootDir/filename and returns the public URL
// path the image is served back from. The caller is responsible for
// supplying an already sanitized, collision-resistant filename.
func (s *imageFileStorage) SaveImage(ctx context.Context, filename string, content io.Reader) (string, error) {
	log := logger.FromContext(ctx)

	dst, err := os.Create(filepath.Join(s.rootDir, filename))
	if err != nil {
		log.Err(err).Str("func", "*imageFileStorage.SaveImage").Msg("error creating image file")
		return "", fmt.Errorf("error creating image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, content); err != nil {
		log.Err(err).Str("func", "*imageFileStorage.SaveImage").Msg("error writing image file")
		return "", fmt.Errorf("error writing image file: %w", err)
	}

	return path.Join(PublicUploadsPrefix, filename), nil
}
