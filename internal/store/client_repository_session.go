package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
)

type localSessionRepository struct {
	*DB
	logger *logger.Logger
}

// NewLocalSessionRepository constructs the SQLite-backed
// [LocalSessionRepository]. Session writes do not publish change events.
func NewLocalSessionRepository(db *DB, logger *logger.Logger) LocalSessionRepository {
	return &localSessionRepository{
		DB:     db,
		logger: logger,
	}
}

// GetLastSync returns nil when the owner has never completed a sync.
func (l *localSessionRepository) GetLastSync(ctx context.Context, ownerID string) (*time.Time, error) {
	query, args, err := buildGetLastSyncQuery(ownerID)
	if err != nil {
		return nil, err
	}

	var at time.Time
	err = l.DB.QueryRowContext(ctx, query, args...).Scan(&at)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localSessionRepository.GetLastSync").
			Str("owner_id", ownerID).
			Msg("failed to read last sync timestamp")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return &at, nil
}

func (l *localSessionRepository) SetLastSync(ctx context.Context, ownerID string, at time.Time) error {
	query, args, err := buildSetLastSyncQuery(ownerID, at.UTC())
	if err != nil {
		return err
	}

	if _, err := l.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localSessionRepository.SetLastSync").
			Str("owner_id", ownerID).
			Msg("failed to store last sync timestamp")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
