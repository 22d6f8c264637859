package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/store"
	"github.com/MKhiriev/go-offline-sync/models"
)

type pullPipeline struct {
	records    store.LocalRecordRepository
	tombstones store.LocalTombstoneRepository
	caps       capabilityTable

	logger *logger.Logger
}

func newPullPipeline(storages *store.ClientStorages, caps capabilityTable, logger *logger.Logger) *pullPipeline {
	return &pullPipeline{
		records:    storages.Records,
		tombstones: storages.Tombstones,
		caps:       caps,
		logger:     logger,
	}
}

func (p *pullPipeline) Pull(ctx context.Context, ownerID string) error {
	log := p.logger

	tombstoned, err := p.pendingDeletions(ctx, ownerID)
	if err != nil {
		return &PullReconciliationError{Collection: models.PullOrder[0], Err: err}
	}

	for _, collection := range models.PullOrder {
		if err = p.reconcile(ctx, collection, ownerID, tombstoned); err != nil {
			log.Err(err).Str("func", "pullPipeline.Pull").Str("collection", collection.String()).Msg("pull aborted")
			return &PullReconciliationError{Collection: collection, Err: err}
		}
	}

	log.Info().Str("func", "pullPipeline.Pull").Str("owner_id", ownerID).Msg("pull pass finished")
	return nil
}

// reconcile makes the local copy of one collection equal to the remote
// snapshot: local ids absent remotely are deleted, every remote document is
// stored as synced.
func (p *pullPipeline) reconcile(ctx context.Context, collection models.CollectionName, ownerID string, tombstoned map[tombstoneKey]struct{}) error {
	capability, ok := p.caps.lookup(collection)
	if !ok {
		return ErrUnknownCollection
	}
	if capability.fetch == nil {
		return nil
	}

	remote, err := capability.fetch(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("fetch remote snapshot: %w", err)
	}

	local, err := p.records.ListByOwner(ctx, collection, ownerID)
	if err != nil {
		return fmt.Errorf("list local records: %w", err)
	}

	remoteIDs := make(map[string]struct{}, len(remote))
	upserts := make([]models.SyncRecord, 0, len(remote))
	for _, doc := range remote {
		if doc.OwnerID == "" {
			doc.OwnerID = ownerID
		}
		if doc.OwnerID != ownerID {
			return fmt.Errorf("%w: %s", ErrForeignDocument, doc.ID)
		}
		remoteIDs[doc.ID] = struct{}{}

		// a pending remote delete must not be undone by the snapshot
		if _, gone := tombstoned[tombstoneKey{collection, doc.ID}]; gone {
			continue
		}
		upserts = append(upserts, doc.ToSyncRecord(collection))
	}

	var stale []string
	for _, record := range local {
		if _, ok := remoteIDs[record.ID]; !ok {
			stale = append(stale, record.ID)
		}
	}

	if len(stale) > 0 {
		if err = p.records.BulkDelete(ctx, collection, ownerID, stale); err != nil {
			return fmt.Errorf("delete local orphans: %w", err)
		}
	}
	if len(upserts) > 0 {
		if err = p.records.BulkUpsert(ctx, collection, upserts); err != nil {
			return fmt.Errorf("store remote snapshot: %w", err)
		}
	}

	p.logger.Debug().Str("func", "pullPipeline.reconcile").
		Str("collection", collection.String()).
		Int("remote", len(remote)).
		Int("deleted", len(stale)).
		Msg("collection reconciled")
	return nil
}

type tombstoneKey struct {
	collection models.CollectionName
	id         string
}

func (p *pullPipeline) pendingDeletions(ctx context.Context, ownerID string) (map[tombstoneKey]struct{}, error) {
	tombstones, err := p.tombstones.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tombstones: %w", err)
	}
	out := make(map[tombstoneKey]struct{}, len(tombstones))
	for _, t := range tombstones {
		out[tombstoneKey{t.Collection, t.ID}] = struct{}{}
	}
	return out, nil
}
