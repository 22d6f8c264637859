package store

import (
	"database/sql"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
)

// DB wraps a database/sql pool together with the schema migrator of its
// dialect and an optional driver error classifier.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	migrate            func(*sql.DB) error
	logger             *logger.Logger
}

// Migrate applies pending schema migrations for the dialect of db.
func (db *DB) Migrate() error {
	return db.migrate(db.DB)
}
