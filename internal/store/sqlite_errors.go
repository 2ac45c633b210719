package store

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// sqliteError extracts the extended result code from a go-sqlite3 driver
// error, or 0 when err did not originate from the driver. Used to classify
// constraint violations into sentinel errors.
func sqliteError(err error) sqlite3.ErrNoExtended {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode
	}

	return 0
}
