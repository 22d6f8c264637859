package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/mock"
	"github.com/MKhiriev/go-offline-sync/internal/store"
	"github.com/MKhiriev/go-offline-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// login binds owner while offline so that no sync runs as a side effect,
// then reports the remote as reachable without notifying the coordinator.
func (e *testEngine) login(t *testing.T, ownerID string) {
	t.Helper()
	e.services.Connectivity.SetOnline(false)
	e.coord.OnAuthChange(context.Background(), ownerID)
	e.services.Connectivity.SetOnline(true)
}

func (e *testEngine) initialPullDone() bool {
	e.coord.mu.Lock()
	defer e.coord.mu.Unlock()
	return e.coord.initialPullDone
}

func indexOf(calls []string, call string) int {
	for i, c := range calls {
		if c == call {
			return i
		}
	}
	return -1
}

// ── offline then reconnect ───────────────────────────────────────────────────

func TestCoordinator_OfflineEditPushedOnReconnect(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	e.services.Connectivity.SetOnline(false)
	e.coord.OnAuthChange(ctx, owner)
	e.save(t, models.CollectionProposals, owner, "p1")

	counts, err := e.services.SyncState.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.PendingCount)
	assert.Empty(t, e.remote.callLog())

	status := e.coord.Status(ctx)
	assert.False(t, status.IsOnline)
	assert.Equal(t, 1, status.PendingCount)
	assert.Nil(t, status.LastSyncTimestamp)

	e.coord.OnConnectivityChange(ctx, true)

	r, ok := e.record(t, models.CollectionProposals, owner, "p1")
	require.True(t, ok)
	assert.Equal(t, models.StatusSynced, r.SyncStatus)
	assert.True(t, e.remote.has(models.CollectionProposals, "p1"))

	status = e.coord.Status(ctx)
	assert.True(t, status.IsOnline)
	assert.False(t, status.IsSyncing)
	assert.Zero(t, status.PendingCount)
	require.NotNil(t, status.LastSyncTimestamp)
	assert.True(t, e.initialPullDone())
	assert.Equal(t, models.SyncIdle, e.coord.State())
}

func TestCoordinator_OfflineTriggersDoNothing(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	e.services.Connectivity.SetOnline(false)
	e.coord.OnAuthChange(ctx, owner)
	e.save(t, models.CollectionClients, owner, "c1")

	e.coord.CheckBacklog(ctx)
	e.coord.Tick(ctx)
	e.coord.OnConnectivityChange(ctx, false)

	assert.Empty(t, e.remote.callLog())
	r, _ := e.record(t, models.CollectionClients, owner, "c1")
	assert.Equal(t, models.StatusPending, r.SyncStatus)
}

// ── force sync ───────────────────────────────────────────────────────────────

func TestCoordinator_ForceSyncPushesThenPulls(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	e.login(t, owner)
	e.save(t, models.CollectionProposals, owner, "p2")
	e.remote.put(models.CollectionProposals, owner, "p3", `{"name":"p3"}`)

	require.NoError(t, e.coord.ForceSync(ctx))

	calls := e.remote.callLog()
	up := indexOf(calls, "upsert:proposals/p2")
	fetch := indexOf(calls, "fetch:proposals")
	require.NotEqual(t, -1, up)
	require.NotEqual(t, -1, fetch)
	assert.Less(t, up, fetch)

	assert.Equal(t, []string{"p2", "p3"}, e.ids(t, models.CollectionProposals, owner))
	for _, id := range []string{"p2", "p3"} {
		r, _ := e.record(t, models.CollectionProposals, owner, id)
		assert.Equal(t, models.StatusSynced, r.SyncStatus, id)
	}
	assert.Equal(t, []string{NoticeManualStart, NoticeSyncCompleted}, e.notices.messages())
	assert.True(t, e.initialPullDone())
}

func TestCoordinator_ForceSyncRetriesErrorItems(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	e.login(t, owner)
	e.save(t, models.CollectionItems, owner, "i1")
	e.remote.setFailUpsert("i1", errors.New("quota exceeded"))

	e.coord.CheckBacklog(ctx)
	r, _ := e.record(t, models.CollectionItems, owner, "i1")
	require.Equal(t, models.StatusError, r.SyncStatus)

	e.remote.setFailUpsert("i1", nil)
	e.coord.CheckBacklog(ctx)
	r, _ = e.record(t, models.CollectionItems, owner, "i1")
	assert.Equal(t, models.StatusError, r.SyncStatus)

	require.NoError(t, e.coord.ForceSync(ctx))
	r, _ = e.record(t, models.CollectionItems, owner, "i1")
	assert.Equal(t, models.StatusSynced, r.SyncStatus)
}

func TestCoordinator_ForceSyncPullFailure(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	e.login(t, owner)
	e.remote.setFailFetch(models.CollectionItems, errors.New("gateway timeout"))

	err := e.coord.ForceSync(ctx)

	var pullErr *PullReconciliationError
	require.ErrorAs(t, err, &pullErr)
	assert.Equal(t, models.CollectionItems, pullErr.Collection)
	assert.Equal(t, []string{NoticeManualStart, NoticePullFailed}, e.notices.messages())
	assert.False(t, e.initialPullDone())
	assert.False(t, e.coord.Status(ctx).IsSyncing)
	assert.Equal(t, models.SyncIdle, e.coord.State())
}

func TestCoordinator_ForceSyncOfflineOrSignedOut(t *testing.T) {
	ctx := context.Background()

	t.Run("signed out", func(t *testing.T) {
		e := newTestEngine(t)
		require.NoError(t, e.coord.ForceSync(ctx))
		assert.Equal(t, []string{NoticeCannotSync}, e.notices.messages())
		assert.Empty(t, e.remote.callLog())
	})

	t.Run("offline", func(t *testing.T) {
		e := newTestEngine(t)
		e.login(t, owner)
		e.services.Connectivity.SetOnline(false)
		require.NoError(t, e.coord.ForceSync(ctx))
		assert.Equal(t, []string{NoticeCannotSync}, e.notices.messages())
		assert.Empty(t, e.remote.callLog())
		assert.False(t, e.coord.locked.Load())
	})
}

// ── guard ────────────────────────────────────────────────────────────────────

func TestCoordinator_LockedTriggersTouchNothing(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	// no EXPECT calls: any store or remote access fails the test
	storages := &store.ClientStorages{
		Records:    mock.NewMockLocalRecordRepository(ctrl),
		Tombstones: mock.NewMockLocalTombstoneRepository(ctrl),
		Sessions:   mock.NewMockLocalSessionRepository(ctrl),
		Changes:    mock.NewMockChangeNotifier(ctrl),
	}
	remote := mock.NewMockRemoteStore(ctrl)
	caps := newCapabilityTable(remote)
	notices := &noticeRecorder{}

	coord := NewSyncCoordinator(
		NewConnectivityMonitor(logger.Nop()),
		NewSyncStateStore(storages, logger.Nop()),
		newPushPipeline(storages, caps, logger.Nop()),
		newPullPipeline(storages, caps, logger.Nop()),
		storages.Sessions,
		notices,
		logger.Nop(),
	).(*syncCoordinator)
	coord.owner = owner
	coord.locked.Store(true)

	require.NoError(t, coord.ForceSync(ctx))
	coord.CheckBacklog(ctx)
	coord.Tick(ctx)

	assert.Equal(t, []string{NoticeAlreadySyncing}, notices.messages())
	assert.True(t, coord.Status(ctx).IsSyncing)
}

// ── mutual exclusion ─────────────────────────────────────────────────────────

func TestCoordinator_SecondTriggerWhileSyncing(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	e.login(t, owner)
	e.save(t, models.CollectionClients, owner, "c1")

	hold := make(chan struct{})
	e.remote.mu.Lock()
	e.remote.hold = hold
	e.remote.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- e.coord.ForceSync(ctx) }()

	require.Eventually(t, func() bool { return e.remote.inFlight.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, models.SyncPushing, e.coord.State())
	assert.True(t, e.coord.Status(ctx).IsSyncing)

	require.NoError(t, e.coord.ForceSync(ctx))
	e.coord.CheckBacklog(ctx)
	e.coord.Tick(ctx)
	assert.Equal(t, 1, len(e.remote.callLog()))

	close(hold)
	require.NoError(t, <-done)

	assert.Equal(t, []string{NoticeManualStart, NoticeAlreadySyncing, NoticeSyncCompleted}, e.notices.messages())
	assert.EqualValues(t, 1, e.remote.maxInFlight.Load())
	assert.Equal(t, models.SyncIdle, e.coord.State())
}

func TestCoordinator_ConcurrentTriggersNeverOverlap(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	e.login(t, owner)
	e.remote.put(models.CollectionClients, owner, "remote-1", `{"name":"remote-1"}`)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rnd := rand.New(rand.NewSource(seed))
			for i := 0; i < 20; i++ {
				switch rnd.Intn(4) {
				case 0:
					_ = e.coord.ForceSync(ctx)
				case 1:
					e.coord.CheckBacklog(ctx)
				case 2:
					e.coord.Tick(ctx)
				default:
					_, err := e.services.RecordService.Save(ctx, models.CollectionItems, owner, "", map[string]int{"n": i})
					assert.NoError(t, err)
				}
			}
		}(int64(g))
	}
	wg.Wait()

	assert.LessOrEqual(t, e.remote.maxInFlight.Load(), int32(1))
	assert.False(t, e.coord.Status(ctx).IsSyncing)
	assert.Equal(t, models.SyncIdle, e.coord.State())
}

// ── session-start pull ───────────────────────────────────────────────────────

func TestCoordinator_InitialPullRetriedByTick(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	e.login(t, owner)
	e.remote.put(models.CollectionClients, owner, "c1", `{"name":"c1"}`)
	e.remote.setFailFetch(models.CollectionClients, errors.New("connection reset"))

	e.coord.Tick(ctx)
	assert.False(t, e.initialPullDone())
	assert.Equal(t, []string{NoticePullFailed}, e.notices.messages())
	assert.Empty(t, e.ids(t, models.CollectionClients, owner))

	e.remote.setFailFetch(models.CollectionClients, nil)
	e.coord.Tick(ctx)
	assert.True(t, e.initialPullDone())
	assert.Equal(t, []string{"c1"}, e.ids(t, models.CollectionClients, owner))

	fetches := e.remote.count("fetch:clients")
	e.coord.Tick(ctx)
	assert.Equal(t, fetches, e.remote.count("fetch:clients"))
}

func TestCoordinator_LoginPushesBeforeInitialPull(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	e.save(t, models.CollectionClients, owner, "offline-1")

	e.coord.OnAuthChange(ctx, owner)

	calls := e.remote.callLog()
	assert.Less(t, indexOf(calls, "upsert:clients/offline-1"), indexOf(calls, "fetch:clients"))
	assert.Equal(t, []string{"offline-1"}, e.ids(t, models.CollectionClients, owner))
	assert.True(t, e.initialPullDone())
}

func TestCoordinator_OwnerChangeRepulls(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	e.remote.put(models.CollectionClients, owner, "mine", `{}`)
	e.remote.put(models.CollectionClients, "owner-2", "theirs", `{}`)

	e.coord.OnAuthChange(ctx, owner)
	require.True(t, e.initialPullDone())
	assert.Equal(t, []string{"mine"}, e.ids(t, models.CollectionClients, owner))

	e.coord.OnAuthChange(ctx, owner)
	assert.Equal(t, 1, e.remote.count("fetch:clients"))

	e.coord.OnAuthChange(ctx, "owner-2")
	assert.True(t, e.initialPullDone())
	assert.Equal(t, 2, e.remote.count("fetch:clients"))
	assert.Equal(t, []string{"theirs"}, e.ids(t, models.CollectionClients, "owner-2"))
	// the first owner's records stay on the device
	assert.Equal(t, []string{"mine"}, e.ids(t, models.CollectionClients, owner))

	e.coord.OnAuthChange(ctx, "")
	e.remote.resetCalls()
	e.coord.Tick(ctx)
	e.coord.CheckBacklog(ctx)
	assert.Empty(t, e.remote.callLog())
	assert.False(t, e.initialPullDone())
	assert.Nil(t, e.coord.Status(ctx).LastSyncTimestamp)
}

// ── last sync timestamp ──────────────────────────────────────────────────────

func TestCoordinator_LastSyncPersisted(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	at := time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)
	e.coord.now = func() time.Time { return at }
	e.login(t, owner)

	require.NoError(t, e.coord.ForceSync(ctx))

	stored, err := e.storages.Sessions.GetLastSync(ctx, owner)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, at.Equal(*stored))

	// a fresh engine over the same database sees the persisted value
	other := NewClientServices(e.storages, newFakeRemote(), nil, logger.Nop())
	other.Connectivity.SetOnline(false)
	other.Coordinator.OnAuthChange(ctx, owner)

	last := other.Coordinator.Status(ctx).LastSyncTimestamp
	require.NotNil(t, last)
	assert.True(t, at.Equal(*last))
}

// ── event loop ───────────────────────────────────────────────────────────────

func TestCoordinator_RunPushesLocalChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	e := newTestEngine(t)
	e.login(t, owner)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); e.services.SyncState.Run(ctx) }()
	go func() { defer wg.Done(); e.coord.Run(ctx) }()
	// let both loops subscribe
	time.Sleep(50 * time.Millisecond)

	e.save(t, models.CollectionItems, owner, "i1")
	require.Eventually(t, func() bool {
		return e.remote.has(models.CollectionItems, "i1")
	}, 2*time.Second, 10*time.Millisecond)

	e.services.Connectivity.SetOnline(false)
	e.save(t, models.CollectionItems, owner, "i2")
	time.Sleep(100 * time.Millisecond)
	assert.False(t, e.remote.has(models.CollectionItems, "i2"))

	e.services.Connectivity.SetOnline(true)
	require.Eventually(t, func() bool {
		return e.remote.has(models.CollectionItems, "i2")
	}, 2*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		return e.services.SyncState.Latest().PendingCount == 0
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	wg.Wait()
}
