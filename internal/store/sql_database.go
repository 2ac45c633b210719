package store

import (
	"database/sql"

	"github.com/beezetrack/beezetrack-server/internal/logger"
	"github.com/beezetrack/beezetrack-server/migrations"
)

// DB wraps the shared *sql.DB handle. It is constructed once at startup
// and injected into repositories; there is no lazily-initialized global
// connection anywhere in the request path.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies the embedded goose migrations, bringing the schema up to
// the current version. Safe to call on every startup.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
