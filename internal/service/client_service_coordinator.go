// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/store"
	"github.com/MKhiriev/go-offline-sync/models"
)

// Notice texts emitted by the coordinator.
const (
	NoticeAlreadySyncing = "Sync already in progress."
	NoticeManualStart    = "Starting manual sync..."
	NoticeSyncCompleted  = "Sync completed!"
	NoticePullFailed     = "Failed to fetch data from the cloud."
	NoticeCannotSync     = "You are offline or signed out. Sync is unavailable."
)

type syncCoordinator struct {
	connectivity ConnectivityMonitor
	state        SyncStateStore
	push         PushPipeline
	pull         PullPipeline
	sessions     store.LocalSessionRepository
	notifier     Notifier
	now          func() time.Time

	locked atomic.Bool
	phase  atomic.Int32

	mu              sync.Mutex
	owner           string
	initialPullDone bool
	lastSync        *time.Time

	logger *logger.Logger
}

// NewSyncCoordinator wires a coordinator. It starts with no owner; call
// OnAuthChange to begin syncing. A nil notifier discards notices.
func NewSyncCoordinator(
	connectivity ConnectivityMonitor,
	state SyncStateStore,
	push PushPipeline,
	pull PullPipeline,
	sessions store.LocalSessionRepository,
	notifier Notifier,
	logger *logger.Logger,
) SyncCoordinator {
	if notifier == nil {
		notifier = NotifierFunc(func(models.Notice) {})
	}
	return &syncCoordinator{
		connectivity: connectivity,
		state:        state,
		push:         push,
		pull:         pull,
		sessions:     sessions,
		notifier:     notifier,
		now:          time.Now,
		logger:       logger,
	}
}

func (c *syncCoordinator) OnConnectivityChange(ctx context.Context, online bool) {
	c.connectivity.SetOnline(online)
	if !online {
		return
	}
	c.CheckBacklog(ctx)
	c.checkInitialPull(ctx)
}

func (c *syncCoordinator) OnAuthChange(ctx context.Context, ownerID string) {
	c.mu.Lock()
	changed := c.owner != ownerID
	if changed {
		c.owner = ownerID
		c.initialPullDone = false
		c.lastSync = nil
	}
	c.mu.Unlock()

	if changed {
		c.logger.Info().Str("func", "syncCoordinator.OnAuthChange").Str("owner_id", ownerID).Msg("owner changed")
		c.state.SetOwner(ownerID)
		c.loadLastSync(ctx, ownerID)
	}
	if ownerID == "" {
		return
	}

	_, _ = c.state.Refresh(ctx)
	c.CheckBacklog(ctx)
	c.checkInitialPull(ctx)
}

func (c *syncCoordinator) CheckBacklog(ctx context.Context) {
	owner, ok := c.guard()
	if !ok || c.locked.Load() {
		return
	}

	counts, err := c.state.Counts(ctx, owner)
	if err != nil {
		c.logger.Err(err).Str("func", "syncCoordinator.CheckBacklog").Msg("error reading backlog")
		return
	}
	if counts.PendingCount == 0 {
		return
	}

	if err = c.tryLock(); err != nil {
		return
	}
	defer c.unlock()

	c.runPush(ctx, owner, false)
}

func (c *syncCoordinator) ForceSync(ctx context.Context) error {
	if err := c.tryLock(); err != nil {
		c.notify(models.NoticeInfo, NoticeAlreadySyncing)
		return nil
	}
	defer c.unlock()

	owner, ok := c.guard()
	if !ok {
		c.notify(models.NoticeError, NoticeCannotSync)
		return nil
	}

	c.notify(models.NoticeInfo, NoticeManualStart)
	c.runPush(ctx, owner, true)
	if err := c.runPull(ctx, owner); err != nil {
		c.notify(models.NoticeError, NoticePullFailed)
		return err
	}
	c.notify(models.NoticeInfo, NoticeSyncCompleted)
	return nil
}

func (c *syncCoordinator) Status(ctx context.Context) models.StatusReport {
	counts := c.state.Latest()

	c.mu.Lock()
	var last *time.Time
	if c.lastSync != nil {
		t := *c.lastSync
		last = &t
	}
	c.mu.Unlock()

	return models.StatusReport{
		IsOnline:          c.connectivity.IsOnline(),
		IsSyncing:         c.locked.Load(),
		PendingCount:      counts.PendingCount,
		ErrorCount:        counts.ErrorCount,
		LastSyncTimestamp: last,
	}
}

func (c *syncCoordinator) State() models.SyncState {
	return models.SyncState(c.phase.Load())
}

func (c *syncCoordinator) Run(ctx context.Context) {
	online, cancelOnline := c.connectivity.Subscribe()
	defer cancelOnline()
	counts, cancelCounts := c.state.Subscribe()
	defer cancelCounts()

	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-online:
			if !ok {
				return
			}
			c.OnConnectivityChange(ctx, v)
		case n, ok := <-counts:
			if !ok {
				return
			}
			if n.PendingCount > 0 {
				c.CheckBacklog(ctx)
			}
		}
	}
}

// Tick pushes before the session-start pull so that records written before
// the first pull are uploaded instead of being reconciled away.
func (c *syncCoordinator) Tick(ctx context.Context) {
	c.CheckBacklog(ctx)
	c.checkInitialPull(ctx)
}

// checkInitialPull runs the session-start pull once per owner.
func (c *syncCoordinator) checkInitialPull(ctx context.Context) {
	owner, ok := c.guard()
	if !ok || c.locked.Load() {
		return
	}

	c.mu.Lock()
	done := c.initialPullDone
	c.mu.Unlock()
	if done {
		return
	}

	if err := c.tryLock(); err != nil {
		return
	}
	defer c.unlock()

	if err := c.runPull(ctx, owner); err != nil {
		c.notify(models.NoticeError, NoticePullFailed)
	}
}

// guard returns the current owner when a sync may start at all: someone is
// authenticated and the remote is reachable. The lock is checked separately.
func (c *syncCoordinator) guard() (string, bool) {
	c.mu.Lock()
	owner := c.owner
	c.mu.Unlock()

	if owner == "" || !c.connectivity.IsOnline() {
		return owner, false
	}
	return owner, true
}

func (c *syncCoordinator) tryLock() error {
	if !c.locked.CompareAndSwap(false, true) {
		return ErrAlreadySyncing
	}
	return nil
}

func (c *syncCoordinator) unlock() {
	c.phase.Store(int32(models.SyncIdle))
	c.locked.Store(false)
}

// runPush must be called with the lock held.
func (c *syncCoordinator) runPush(ctx context.Context, owner string, includeErrorItems bool) {
	c.phase.Store(int32(models.SyncPushing))
	c.push.Push(ctx, owner, includeErrorItems)
	c.markSynced(ctx, owner, false)
	_, _ = c.state.Refresh(ctx)
}

// runPull must be called with the lock held.
func (c *syncCoordinator) runPull(ctx context.Context, owner string) error {
	c.phase.Store(int32(models.SyncPulling))
	if err := c.pull.Pull(ctx, owner); err != nil {
		c.logger.Err(err).Str("func", "syncCoordinator.runPull").Str("owner_id", owner).Msg("pull failed")
		return err
	}
	c.markSynced(ctx, owner, true)
	_, _ = c.state.Refresh(ctx)
	return nil
}

func (c *syncCoordinator) markSynced(ctx context.Context, owner string, pulled bool) {
	at := c.now().UTC()

	c.mu.Lock()
	if c.owner != owner {
		// logged out or switched owner mid-pass
		c.mu.Unlock()
		return
	}
	c.lastSync = &at
	if pulled {
		c.initialPullDone = true
	}
	c.mu.Unlock()

	if err := c.sessions.SetLastSync(ctx, owner, at); err != nil {
		c.logger.Err(err).Str("func", "syncCoordinator.markSynced").Msg("error persisting last sync time")
	}
}

func (c *syncCoordinator) loadLastSync(ctx context.Context, owner string) {
	if owner == "" {
		return
	}
	last, err := c.sessions.GetLastSync(ctx, owner)
	if err != nil {
		c.logger.Err(err).Str("func", "syncCoordinator.loadLastSync").Msg("error loading last sync time")
		return
	}

	c.mu.Lock()
	if c.owner == owner && c.lastSync == nil {
		c.lastSync = last
	}
	c.mu.Unlock()
}

func (c *syncCoordinator) notify(level models.NoticeLevel, msg string) {
	c.notifier.Notify(models.Notice{Level: level, Message: msg})
}
