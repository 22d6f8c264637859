package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-offline-sync/models"
)

// ConnectivityMonitor tracks whether the remote store is reachable.
// It defaults to online until told otherwise.
type ConnectivityMonitor interface {
	// IsOnline returns the current state.
	IsOnline() bool

	// SetOnline records the state. Subscribers are notified only on a
	// transition.
	SetOnline(online bool)

	// Subscribe returns a channel that receives the new state after each
	// transition, and a function that unsubscribes and closes the channel.
	// Slow subscribers only see the latest state.
	Subscribe() (<-chan bool, func())
}

// SyncStateStore aggregates pending and error counts for the current owner.
type SyncStateStore interface {
	// Counts computes the backlog of ownerID across all collections.
	// Tombstones are counted as pending.
	Counts(ctx context.Context, ownerID string) (models.SyncCounts, error)

	// SetOwner switches the observed partition. An empty owner means no
	// authenticated user; counts become zero.
	SetOwner(ownerID string)

	// Refresh recomputes counts for the current owner and publishes them to
	// subscribers when they changed.
	Refresh(ctx context.Context) (models.SyncCounts, error)

	// Latest returns the last computed counts without touching the store.
	Latest() models.SyncCounts

	// Subscribe returns a channel of count updates and an unsubscribe
	// function. Slow subscribers only see the latest counts.
	Subscribe() (<-chan models.SyncCounts, func())

	// Run consumes the local store change feed and refreshes counts for
	// the current owner until ctx is done.
	Run(ctx context.Context)
}

// PushPipeline propagates local pending changes and deletions to the remote
// store.
type PushPipeline interface {
	// Push uploads every Pending record of ownerID, plus Error records when
	// includeErrorItems is set, then replays tombstones. It never fails as a
	// whole: per-item outcomes are recorded on the records themselves.
	Push(ctx context.Context, ownerID string, includeErrorItems bool) models.PushReport
}

// PullPipeline makes the remote snapshot authoritative locally.
type PullPipeline interface {
	// Pull reconciles every collection of ownerID against the remote store.
	// The first failure aborts the pass and is returned as
	// *PullReconciliationError; collections already reconciled stay
	// committed.
	Pull(ctx context.Context, ownerID string) error
}

// SyncCoordinator owns the sync lock and decides when push and pull run.
type SyncCoordinator interface {
	// OnConnectivityChange records the new state and re-evaluates the backlog
	// and the session-start pull.
	OnConnectivityChange(ctx context.Context, online bool)

	// OnAuthChange switches the authenticated owner. An empty ownerID means
	// logged out.
	OnAuthChange(ctx context.Context, ownerID string)

	// CheckBacklog starts an automatic push when there is pending work, the
	// remote is reachable and no sync is in flight.
	CheckBacklog(ctx context.Context)

	// ForceSync runs push (including errored items) followed by a full pull.
	// When a sync is already running it only emits a notice and returns nil.
	ForceSync(ctx context.Context) error

	// Status returns a snapshot for UI collaborators.
	Status(ctx context.Context) models.StatusReport

	// State returns the current state machine state.
	State() models.SyncState

	// Run consumes connectivity transitions and count updates until ctx is
	// done.
	Run(ctx context.Context)

	// Tick is the periodic safety net: backlog check followed by the
	// session-start pull check.
	Tick(ctx context.Context)
}

// ClientRecordService is the local write path used by the domain layer.
// Writes never talk to the network; the coordinator propagates them.
type ClientRecordService interface {
	// Save stores payload under id (a new UUIDv7 when id is empty) and marks
	// the record pending.
	Save(ctx context.Context, collection models.CollectionName, ownerID, id string, payload any) (models.SyncRecord, error)

	// Delete removes the record locally and records a tombstone so the remote
	// copy is deleted on the next push.
	Delete(ctx context.Context, collection models.CollectionName, ownerID, id string) error

	// List returns every local record of ownerID in collection.
	List(ctx context.Context, collection models.CollectionName, ownerID string) ([]models.SyncRecord, error)
}

// Notifier receives transient user-facing notices.
type Notifier interface {
	Notify(notice models.Notice)
}

// ClientSyncJob defines the contract for a background worker that
// periodically calls SyncCoordinator.Tick.
type ClientSyncJob interface {
	// Start launches the background goroutine. It ticks every interval,
	// defaulting to 5 minutes if interval is zero or negative. Any previously
	// running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}
