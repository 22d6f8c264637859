package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-offline-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalRecordRepository is the owner-scoped record store of one device.
// Every method filters by owner; the collection selects the logical table.
type LocalRecordRepository interface {
	ListByOwner(ctx context.Context, collection models.CollectionName, ownerID string) ([]models.SyncRecord, error)
	ListByOwnerAndStatus(ctx context.Context, collection models.CollectionName, ownerID string, statuses ...models.SyncStatus) ([]models.SyncRecord, error)
	CountByOwnerAndStatus(ctx context.Context, collection models.CollectionName, ownerID string, status models.SyncStatus) (int, error)
	Upsert(ctx context.Context, record models.SyncRecord) error
	BulkUpsert(ctx context.Context, collection models.CollectionName, records []models.SyncRecord) error
	UpdateStatus(ctx context.Context, collection models.CollectionName, ownerID, id string, status models.SyncStatus, syncErr *string) error
	// MarkSynced marks record synced only if its stored updated_at still
	// equals record.UpdatedAt; otherwise it returns ErrRecordChanged.
	MarkSynced(ctx context.Context, record models.SyncRecord) error
	Delete(ctx context.Context, collection models.CollectionName, ownerID, id string) error
	BulkDelete(ctx context.Context, collection models.CollectionName, ownerID string, ids []string) error
}

// LocalTombstoneRepository stores pending remote deletions.
type LocalTombstoneRepository interface {
	List(ctx context.Context, ownerID string) ([]models.DeletionTombstone, error)
	Count(ctx context.Context, ownerID string) (int, error)
	Add(ctx context.Context, tombstone models.DeletionTombstone) error
	Remove(ctx context.Context, tombstone models.DeletionTombstone) error
}

// LocalSessionRepository persists per-owner session metadata.
type LocalSessionRepository interface {
	GetLastSync(ctx context.Context, ownerID string) (*time.Time, error)
	SetLastSync(ctx context.Context, ownerID string, at time.Time) error
}

// ChangeNotifier fans out local store mutations to subscribers.
type ChangeNotifier interface {
	Subscribe() (<-chan models.ChangeEvent, func())
	Publish(event models.ChangeEvent)
}
