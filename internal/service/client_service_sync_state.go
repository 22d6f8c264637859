package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/store"
	"github.com/MKhiriev/go-offline-sync/models"
)

type syncStateStore struct {
	records    store.LocalRecordRepository
	tombstones store.LocalTombstoneRepository
	changes    store.ChangeNotifier

	mu     sync.RWMutex
	owner  string
	latest models.SyncCounts

	subsMu sync.Mutex
	subs   map[int]chan models.SyncCounts
	nextID int

	logger *logger.Logger
}

// NewSyncStateStore builds a SyncStateStore over the client storages.
func NewSyncStateStore(storages *store.ClientStorages, logger *logger.Logger) SyncStateStore {
	return &syncStateStore{
		records:    storages.Records,
		tombstones: storages.Tombstones,
		changes:    storages.Changes,
		subs:       make(map[int]chan models.SyncCounts),
		logger:     logger,
	}
}

func (s *syncStateStore) Counts(ctx context.Context, ownerID string) (models.SyncCounts, error) {
	var counts models.SyncCounts
	if ownerID == "" {
		return counts, nil
	}

	for _, collection := range models.AllCollections() {
		pending, err := s.records.CountByOwnerAndStatus(ctx, collection, ownerID, models.StatusPending)
		if err != nil {
			return models.SyncCounts{}, fmt.Errorf("count pending %s: %w", collection, err)
		}
		failed, err := s.records.CountByOwnerAndStatus(ctx, collection, ownerID, models.StatusError)
		if err != nil {
			return models.SyncCounts{}, fmt.Errorf("count errors %s: %w", collection, err)
		}
		counts.PendingCount += pending
		counts.ErrorCount += failed
	}

	tombstones, err := s.tombstones.Count(ctx, ownerID)
	if err != nil {
		return models.SyncCounts{}, fmt.Errorf("count tombstones: %w", err)
	}
	counts.PendingCount += tombstones

	return counts, nil
}

func (s *syncStateStore) SetOwner(ownerID string) {
	s.mu.Lock()
	changed := s.owner != ownerID
	s.owner = ownerID
	if changed {
		s.latest = models.SyncCounts{}
	}
	s.mu.Unlock()

	if changed {
		s.publish(models.SyncCounts{})
	}
}

func (s *syncStateStore) Refresh(ctx context.Context) (models.SyncCounts, error) {
	s.mu.RLock()
	owner := s.owner
	s.mu.RUnlock()

	counts, err := s.Counts(ctx, owner)
	if err != nil {
		s.logger.Err(err).Str("func", "syncStateStore.Refresh").Str("owner_id", owner).Msg("error computing sync counts")
		return s.Latest(), err
	}

	s.mu.Lock()
	if s.owner != owner {
		// owner switched while counting; the result is stale
		s.mu.Unlock()
		return s.Latest(), nil
	}
	changed := s.latest != counts
	s.latest = counts
	s.mu.Unlock()

	if changed {
		s.publish(counts)
	}
	return counts, nil
}

func (s *syncStateStore) Latest() models.SyncCounts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

func (s *syncStateStore) Subscribe() (<-chan models.SyncCounts, func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan models.SyncCounts, 1)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
			close(ch)
		})
	}
}

func (s *syncStateStore) Run(ctx context.Context) {
	events, cancel := s.changes.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			// the feed coalesces events, so one for another owner may stand
			// in for ours; always recount for the current owner
			_, _ = s.Refresh(ctx)
		}
	}
}

func (s *syncStateStore) publish(counts models.SyncCounts) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, ch := range s.subs {
		sendLatest(ch, counts)
	}
}
