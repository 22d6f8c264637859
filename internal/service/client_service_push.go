package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/store"
	"github.com/MKhiriev/go-offline-sync/models"
)

type pushPipeline struct {
	records    store.LocalRecordRepository
	tombstones store.LocalTombstoneRepository
	caps       capabilityTable

	logger *logger.Logger
}

func newPushPipeline(storages *store.ClientStorages, caps capabilityTable, logger *logger.Logger) *pushPipeline {
	return &pushPipeline{
		records:    storages.Records,
		tombstones: storages.Tombstones,
		caps:       caps,
		logger:     logger,
	}
}

func (p *pushPipeline) Push(ctx context.Context, ownerID string, includeErrorItems bool) models.PushReport {
	log := p.logger
	var report models.PushReport

	statuses := []models.SyncStatus{models.StatusPending}
	if includeErrorItems {
		statuses = append(statuses, models.StatusError)
	}

	for _, collection := range models.PushOrder {
		capability, ok := p.caps.lookup(collection)
		if !ok || capability.push == nil {
			continue
		}

		records, err := p.records.ListByOwnerAndStatus(ctx, collection, ownerID, statuses...)
		if err != nil {
			log.Err(err).Str("func", "pushPipeline.Push").Str("collection", collection.String()).Msg("error listing records to push")
			continue
		}

		for _, record := range records {
			if p.pushRecord(ctx, capability, record) {
				report.Synced++
			} else {
				report.Failed++
			}
		}
	}

	p.replayTombstones(ctx, ownerID, &report)

	log.Info().Str("func", "pushPipeline.Push").
		Str("owner_id", ownerID).
		Int("synced", report.Synced).
		Int("failed", report.Failed).
		Int("tombstones_removed", report.TombstonesRemoved).
		Int("tombstones_failed", report.TombstonesFailed).
		Msg("push pass finished")

	return report
}

// pushRecord uploads one record and records the outcome on it. It reports
// whether the remote write succeeded.
func (p *pushPipeline) pushRecord(ctx context.Context, capability collectionCapability, record models.SyncRecord) bool {
	log := p.logger

	if err := capability.push(ctx, record.ToDocument()); err != nil {
		cause := err.Error()
		log.Warn().Err(err).Str("func", "pushPipeline.pushRecord").
			Str("collection", record.Collection.String()).
			Str("id", record.ID).
			Msg("remote write failed")

		if err = p.records.UpdateStatus(ctx, record.Collection, record.OwnerID, record.ID, models.StatusError, &cause); err != nil {
			log.Err(err).Str("func", "pushPipeline.pushRecord").Str("id", record.ID).Msg("error marking record as failed")
		}
		return false
	}

	err := p.records.MarkSynced(ctx, record)
	switch {
	case errors.Is(err, store.ErrRecordChanged):
		// saved or deleted while the write was in flight; a newer save stays pending
		log.Debug().Str("func", "pushPipeline.pushRecord").Str("id", record.ID).Msg("record changed during upload")
	case err != nil:
		log.Err(err).Str("func", "pushPipeline.pushRecord").Str("id", record.ID).Msg("error marking record as synced")
	}
	return true
}

func (p *pushPipeline) replayTombstones(ctx context.Context, ownerID string, report *models.PushReport) {
	log := p.logger

	tombstones, err := p.tombstones.List(ctx, ownerID)
	if err != nil {
		log.Err(err).Str("func", "pushPipeline.replayTombstones").Msg("error listing tombstones")
		return
	}

	for _, tombstone := range tombstones {
		capability, ok := p.caps.lookup(tombstone.Collection)
		if ok && capability.delete != nil {
			if err = capability.delete(ctx, tombstone.OwnerID, tombstone.ID); err != nil {
				report.TombstonesFailed++
				log.Warn().Err(err).Str("func", "pushPipeline.replayTombstones").
					Str("collection", tombstone.Collection.String()).
					Str("id", tombstone.ID).
					Msg("remote delete failed, tombstone kept")
				continue
			}
		}

		if err = p.tombstones.Remove(ctx, tombstone); err != nil {
			report.TombstonesFailed++
			log.Err(err).Str("func", "pushPipeline.replayTombstones").Str("id", tombstone.ID).Msg("error removing tombstone")
			continue
		}
		report.TombstonesRemoved++
	}
}
