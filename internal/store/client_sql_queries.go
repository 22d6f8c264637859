// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-offline-sync/models"
)

const (
	recordsTable    = "sync_records"
	tombstonesTable = "deletion_tombstones"
	sessionsTable   = "sync_sessions"
)

var recordColumns = []string{
	"id",
	"collection",
	"owner_id",
	"payload",
	"sync_status",
	"sync_error",
	"updated_at",
}

// sqlite speaks "?" placeholders.
var sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func buildListRecordsQuery(collection models.CollectionName, ownerID string, statuses ...models.SyncStatus) (string, []any, error) {
	where := sq.Eq{
		"collection": string(collection),
		"owner_id":   ownerID,
	}
	if len(statuses) > 0 {
		values := make([]string, 0, len(statuses))
		for _, s := range statuses {
			values = append(values, string(s))
		}
		where["sync_status"] = values
	}

	query, args, err := sqlite.
		Select(recordColumns...).
		From(recordsTable).
		Where(where).
		OrderBy("updated_at", "id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildCountRecordsQuery(collection models.CollectionName, ownerID string, status models.SyncStatus) (string, []any, error) {
	query, args, err := sqlite.
		Select("COUNT(*)").
		From(recordsTable).
		Where(sq.Eq{
			"collection":  string(collection),
			"owner_id":    ownerID,
			"sync_status": string(status),
		}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildUpsertRecordQuery(r models.SyncRecord) (string, []any, error) {
	query, args, err := sqlite.
		Insert(recordsTable).
		Columns(recordColumns...).
		Values(
			r.ID,
			string(r.Collection),
			r.OwnerID,
			[]byte(r.Payload),
			string(r.SyncStatus),
			r.SyncError,
			r.UpdatedAt.UTC(),
		).
		Suffix(`ON CONFLICT (owner_id, collection, id) DO UPDATE SET
			payload     = excluded.payload,
			sync_status = excluded.sync_status,
			sync_error  = excluded.sync_error,
			updated_at  = excluded.updated_at`).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildUpdateStatusQuery(collection models.CollectionName, ownerID, id string, status models.SyncStatus, syncErr *string) (string, []any, error) {
	query, args, err := sqlite.
		Update(recordsTable).
		Set("sync_status", string(status)).
		Set("sync_error", syncErr).
		Where(sq.Eq{
			"collection": string(collection),
			"owner_id":   ownerID,
			"id":         id,
		}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildMarkSyncedQuery matches the record on its updated_at as well, so a
// row rewritten since it was read is left untouched.
func buildMarkSyncedQuery(r models.SyncRecord) (string, []any, error) {
	query, args, err := sqlite.
		Update(recordsTable).
		Set("sync_status", string(models.StatusSynced)).
		Set("sync_error", nil).
		Where(sq.Eq{
			"owner_id":   r.OwnerID,
			"collection": string(r.Collection),
			"id":         r.ID,
			"updated_at": r.UpdatedAt.UTC(),
		}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteRecordsQuery(collection models.CollectionName, ownerID string, ids ...string) (string, []any, error) {
	where := sq.Eq{
		"collection": string(collection),
		"owner_id":   ownerID,
	}
	if len(ids) == 1 {
		where["id"] = ids[0]
	} else {
		where["id"] = ids
	}

	query, args, err := sqlite.
		Delete(recordsTable).
		Where(where).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildListTombstonesQuery(ownerID string) (string, []any, error) {
	query, args, err := sqlite.
		Select("id", "collection", "owner_id", "created_at").
		From(tombstonesTable).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildCountTombstonesQuery(ownerID string) (string, []any, error) {
	query, args, err := sqlite.
		Select("COUNT(*)").
		From(tombstonesTable).
		Where(sq.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildAddTombstoneQuery(t models.DeletionTombstone) (string, []any, error) {
	query, args, err := sqlite.
		Insert(tombstonesTable).
		Columns("owner_id", "collection", "id", "created_at").
		Values(t.OwnerID, string(t.Collection), t.ID, t.CreatedAt.UTC()).
		Suffix("ON CONFLICT (owner_id, collection, id) DO NOTHING").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildRemoveTombstoneQuery(t models.DeletionTombstone) (string, []any, error) {
	query, args, err := sqlite.
		Delete(tombstonesTable).
		Where(sq.Eq{
			"owner_id":   t.OwnerID,
			"collection": string(t.Collection),
			"id":         t.ID,
		}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildGetLastSyncQuery(ownerID string) (string, []any, error) {
	query, args, err := sqlite.
		Select("last_sync_at").
		From(sessionsTable).
		Where(sq.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSetLastSyncQuery(ownerID string, at any) (string, []any, error) {
	query, args, err := sqlite.
		Insert(sessionsTable).
		Columns("owner_id", "last_sync_at").
		Values(ownerID, at).
		Suffix("ON CONFLICT (owner_id) DO UPDATE SET last_sync_at = excluded.last_sync_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
