package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/models"
)

type localTombstoneRepository struct {
	*DB
	feed   ChangeNotifier
	logger *logger.Logger
}

// NewLocalTombstoneRepository constructs the SQLite-backed
// [LocalTombstoneRepository]. Tombstones are keyed by (owner, collection, id).
func NewLocalTombstoneRepository(db *DB, feed ChangeNotifier, logger *logger.Logger) LocalTombstoneRepository {
	return &localTombstoneRepository{
		DB:     db,
		feed:   feed,
		logger: logger,
	}
}

func (l *localTombstoneRepository) List(ctx context.Context, ownerID string) ([]models.DeletionTombstone, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListTombstonesQuery(ownerID)
	if err != nil {
		return nil, err
	}

	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "localTombstoneRepository.List").
			Str("owner_id", ownerID).
			Msg("failed to execute query for listing tombstones")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	tombstones := make([]models.DeletionTombstone, 0, 8)
	for rows.Next() {
		var (
			t          models.DeletionTombstone
			collection string
		)
		if scanErr := rows.Scan(&t.ID, &collection, &t.OwnerID, &t.CreatedAt); scanErr != nil {
			log.Err(scanErr).
				Str("func", "localTombstoneRepository.List").
				Str("owner_id", ownerID).
				Msg("failed to scan tombstone row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		t.Collection = models.CollectionName(collection)
		tombstones = append(tombstones, t)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return tombstones, nil
}

func (l *localTombstoneRepository) Count(ctx context.Context, ownerID string) (int, error) {
	query, args, err := buildCountTombstonesQuery(ownerID)
	if err != nil {
		return 0, err
	}

	var count int
	if err := l.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localTombstoneRepository.Count").
			Str("owner_id", ownerID).
			Msg("failed to count tombstones")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}

// Add records a tombstone. Adding the same tombstone twice keeps one row.
func (l *localTombstoneRepository) Add(ctx context.Context, tombstone models.DeletionTombstone) error {
	query, args, err := buildAddTombstoneQuery(tombstone)
	if err != nil {
		return err
	}

	if _, err := l.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localTombstoneRepository.Add").
			Str("collection", tombstone.Collection.String()).
			Str("id", tombstone.ID).
			Msg("failed to insert tombstone")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	l.feed.Publish(models.ChangeEvent{Collection: tombstone.Collection, OwnerID: tombstone.OwnerID})
	return nil
}

func (l *localTombstoneRepository) Remove(ctx context.Context, tombstone models.DeletionTombstone) error {
	query, args, err := buildRemoveTombstoneQuery(tombstone)
	if err != nil {
		return err
	}

	result, err := l.DB.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localTombstoneRepository.Remove").
			Str("collection", tombstone.Collection.String()).
			Str("id", tombstone.ID).
			Msg("failed to delete tombstone")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	// removing an absent tombstone is a no-op and changes no counts
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return nil
	}
	l.feed.Publish(models.ChangeEvent{Collection: tombstone.Collection, OwnerID: tombstone.OwnerID})
	return nil
}
