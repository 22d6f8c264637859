package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/store"
	"github.com/MKhiriev/go-offline-sync/internal/utils"
	"github.com/MKhiriev/go-offline-sync/models"
)

var ErrInvalidPayload = errors.New("payload is not valid JSON")

type clientRecordService struct {
	records    store.LocalRecordRepository
	tombstones store.LocalTombstoneRepository
	ids        *utils.UUIDGenerator
	now        func() time.Time

	logger *logger.Logger
}

// NewClientRecordService creates the local write path.
func NewClientRecordService(storages *store.ClientStorages, logger *logger.Logger) ClientRecordService {
	return &clientRecordService{
		records:    storages.Records,
		tombstones: storages.Tombstones,
		ids:        utils.NewUUIDGenerator(),
		now:        time.Now,
		logger:     logger,
	}
}

// Save implements ClientRecordService. The organization profile is a
// singleton keyed by its owner, so an empty id resolves to ownerID there.
func (s *clientRecordService) Save(ctx context.Context, collection models.CollectionName, ownerID, id string, payload any) (models.SyncRecord, error) {
	if !collection.Valid() {
		return models.SyncRecord{}, fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	if ownerID == "" {
		return models.SyncRecord{}, ErrNoOwner
	}

	data, err := encodePayload(payload)
	if err != nil {
		return models.SyncRecord{}, err
	}

	if id == "" {
		if collection == models.CollectionOrganization {
			id = ownerID
		} else {
			id = s.ids.Generate()
		}
	}

	record := models.SyncRecord{
		ID:         id,
		Collection: collection,
		OwnerID:    ownerID,
		Payload:    data,
		SyncStatus: models.StatusPending,
		UpdatedAt:  s.now().UTC(),
	}
	if err = s.records.Upsert(ctx, record); err != nil {
		return models.SyncRecord{}, fmt.Errorf("save %s/%s: %w", collection, id, err)
	}
	// a save after a delete brings the record back, so the pending remote
	// delete must not be replayed after this upload
	if err = s.tombstones.Remove(ctx, models.DeletionTombstone{ID: id, Collection: collection, OwnerID: ownerID}); err != nil {
		return models.SyncRecord{}, fmt.Errorf("clear tombstone %s/%s: %w", collection, id, err)
	}

	s.logger.Debug().Str("func", "clientRecordService.Save").
		Str("collection", collection.String()).
		Str("id", id).
		Msg("record saved as pending")
	return record, nil
}

// Delete implements ClientRecordService. The tombstone is written before
// the local row is removed, so an interrupted delete is still propagated.
func (s *clientRecordService) Delete(ctx context.Context, collection models.CollectionName, ownerID, id string) error {
	if !collection.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	if ownerID == "" {
		return ErrNoOwner
	}

	tombstone := models.DeletionTombstone{
		ID:         id,
		Collection: collection,
		OwnerID:    ownerID,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.tombstones.Add(ctx, tombstone); err != nil {
		return fmt.Errorf("record tombstone %s/%s: %w", collection, id, err)
	}
	if err := s.records.Delete(ctx, collection, ownerID, id); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *clientRecordService) List(ctx context.Context, collection models.CollectionName, ownerID string) ([]models.SyncRecord, error) {
	if !collection.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	return s.records.ListByOwner(ctx, collection, ownerID)
}

func encodePayload(payload any) (json.RawMessage, error) {
	switch p := payload.(type) {
	case json.RawMessage:
		if !json.Valid(p) {
			return nil, ErrInvalidPayload
		}
		return p, nil
	case []byte:
		if !json.Valid(p) {
			return nil, ErrInvalidPayload
		}
		return p, nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return data, nil
}
