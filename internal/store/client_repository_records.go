package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/models"
)

// localRecordRepository is the SQLite-backed [LocalRecordRepository].
// All collections share the sync_records table, keyed by
// (owner_id, collection, id), so owners never share a row.
type localRecordRepository struct {
	*DB
	feed   ChangeNotifier
	logger *logger.Logger
}

// NewLocalRecordRepository constructs a [LocalRecordRepository] that
// publishes a change event on feed after every successful mutation.
func NewLocalRecordRepository(db *DB, feed ChangeNotifier, logger *logger.Logger) LocalRecordRepository {
	return &localRecordRepository{
		DB:     db,
		feed:   feed,
		logger: logger,
	}
}

func (l *localRecordRepository) ListByOwner(ctx context.Context, collection models.CollectionName, ownerID string) ([]models.SyncRecord, error) {
	return l.list(ctx, "localRecordRepository.ListByOwner", collection, ownerID)
}

func (l *localRecordRepository) ListByOwnerAndStatus(ctx context.Context, collection models.CollectionName, ownerID string, statuses ...models.SyncStatus) ([]models.SyncRecord, error) {
	if len(statuses) == 0 {
		return []models.SyncRecord{}, nil
	}
	return l.list(ctx, "localRecordRepository.ListByOwnerAndStatus", collection, ownerID, statuses...)
}

func (l *localRecordRepository) list(ctx context.Context, fn string, collection models.CollectionName, ownerID string, statuses ...models.SyncStatus) ([]models.SyncRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListRecordsQuery(collection, ownerID, statuses...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to create query")
		return nil, err
	}

	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", fn).
			Str("collection", collection.String()).
			Str("owner_id", ownerID).
			Msg("failed to execute query for listing local records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.SyncRecord, 0, 16)
	for rows.Next() {
		record, scanErr := scanRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", fn).
				Str("collection", collection.String()).
				Str("owner_id", ownerID).
				Msg("failed to scan local record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", fn).
			Str("collection", collection.String()).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}

func (l *localRecordRepository) CountByOwnerAndStatus(ctx context.Context, collection models.CollectionName, ownerID string, status models.SyncStatus) (int, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountRecordsQuery(collection, ownerID, status)
	if err != nil {
		return 0, err
	}

	var count int
	if err := l.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.CountByOwnerAndStatus").
			Str("collection", collection.String()).
			Str("status", string(status)).
			Msg("failed to count local records")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

func (l *localRecordRepository) Upsert(ctx context.Context, record models.SyncRecord) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertRecordQuery(record)
	if err != nil {
		return err
	}

	if _, err := l.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.Upsert").
			Str("collection", record.Collection.String()).
			Str("id", record.ID).
			Msg("failed to execute upsert for local record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	l.feed.Publish(models.ChangeEvent{Collection: record.Collection, OwnerID: record.OwnerID})
	return nil
}

// BulkUpsert writes records in one transaction. Records are stored under
// collection regardless of their own Collection field.
func (l *localRecordRepository) BulkUpsert(ctx context.Context, collection models.CollectionName, records []models.SyncRecord) error {
	if len(records) == 0 {
		return nil
	}
	log := logger.FromContext(ctx)

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.BulkUpsert").
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	owners := make(map[string]struct{}, 1)
	for i, record := range records {
		record.Collection = collection
		query, args, err := buildUpsertRecordQuery(record)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "localRecordRepository.BulkUpsert").
				Str("collection", collection.String()).
				Str("id", record.ID).
				Int("iteration", i).
				Msg("failed to execute upsert inside transaction")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		owners[record.OwnerID] = struct{}{}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "localRecordRepository.BulkUpsert").
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	for owner := range owners {
		l.feed.Publish(models.ChangeEvent{Collection: collection, OwnerID: owner})
	}
	return nil
}

// UpdateStatus changes only sync_status and sync_error; the payload and
// updated_at of the record are preserved.
func (l *localRecordRepository) UpdateStatus(ctx context.Context, collection models.CollectionName, ownerID, id string, status models.SyncStatus, syncErr *string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateStatusQuery(collection, ownerID, id, status, syncErr)
	if err != nil {
		return err
	}

	result, err := l.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.UpdateStatus").
			Str("collection", collection.String()).
			Str("id", id).
			Msg("failed to execute status update")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if rowsAffected == 0 {
		log.Warn().
			Str("func", "localRecordRepository.UpdateStatus").
			Str("collection", collection.String()).
			Str("id", id).
			Msg("no rows affected during status update: record not found")
		return fmt.Errorf("%w (collection=%s, id=%s)", ErrRecordNotFound, collection, id)
	}

	l.feed.Publish(models.ChangeEvent{Collection: collection, OwnerID: ownerID})
	return nil
}

func (l *localRecordRepository) MarkSynced(ctx context.Context, record models.SyncRecord) error {
	log := logger.FromContext(ctx)

	query, args, err := buildMarkSyncedQuery(record)
	if err != nil {
		return err
	}

	result, err := l.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.MarkSynced").
			Str("collection", record.Collection.String()).
			Str("id", record.ID).
			Msg("failed to execute synced update")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w (collection=%s, id=%s)", ErrRecordChanged, record.Collection, record.ID)
	}

	l.feed.Publish(models.ChangeEvent{Collection: record.Collection, OwnerID: record.OwnerID})
	return nil
}

// Delete removes a record; deleting an absent record is not an error.
func (l *localRecordRepository) Delete(ctx context.Context, collection models.CollectionName, ownerID, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteRecordsQuery(collection, ownerID, id)
	if err != nil {
		return err
	}

	if _, err := l.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.Delete").
			Str("collection", collection.String()).
			Str("id", id).
			Msg("failed to execute delete for local record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	l.feed.Publish(models.ChangeEvent{Collection: collection, OwnerID: ownerID})
	return nil
}

func (l *localRecordRepository) BulkDelete(ctx context.Context, collection models.CollectionName, ownerID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	log := logger.FromContext(ctx)

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.BulkDelete").
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	query, args, err := buildDeleteRecordsQuery(collection, ownerID, ids...)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.BulkDelete").
			Str("collection", collection.String()).
			Int("ids", len(ids)).
			Msg("failed to execute bulk delete inside transaction")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "localRecordRepository.BulkDelete").
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	l.feed.Publish(models.ChangeEvent{Collection: collection, OwnerID: ownerID})
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.SyncRecord, error) {
	var (
		record     models.SyncRecord
		collection string
		status     string
		payload    []byte
		syncErr    sql.NullString
	)

	if err := row.Scan(
		&record.ID,
		&collection,
		&record.OwnerID,
		&payload,
		&status,
		&syncErr,
		&record.UpdatedAt,
	); err != nil {
		return models.SyncRecord{}, err
	}

	record.Collection = models.CollectionName(collection)
	record.SyncStatus = models.SyncStatus(status)
	record.Payload = json.RawMessage(payload)
	if syncErr.Valid {
		msg := syncErr.String
		record.SyncError = &msg
	}
	return record, nil
}
