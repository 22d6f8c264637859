package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-offline-sync/internal/config"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
)

// ClientStorages groups the client-side repositories that share one SQLite
// database and one change feed.
type ClientStorages struct {
	// Records holds the synchronized records of all collections.
	Records LocalRecordRepository
	// Tombstones holds deletions not yet confirmed by the remote store.
	Tombstones LocalTombstoneRepository
	// Sessions holds per-owner session metadata.
	Sessions LocalSessionRepository
	// Changes publishes an event after every record or tombstone mutation.
	Changes ChangeNotifier

	db *DB
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Wires the repositories to a fresh change feed.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new client storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newClientStorages(db, logger), nil
}

func newClientStorages(db *DB, logger *logger.Logger) *ClientStorages {
	feed := NewChangeFeed()
	return &ClientStorages{
		Records:    NewLocalRecordRepository(db, feed, logger),
		Tombstones: NewLocalTombstoneRepository(db, feed, logger),
		Sessions:   NewLocalSessionRepository(db, logger),
		Changes:    feed,
		db:         db,
	}
}

// Close releases the underlying database.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
