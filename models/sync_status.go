// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// SyncState is the state of the sync coordinator's state machine.
type SyncState int

const (
	// SyncIdle means neither a push nor a pull is in flight.
	SyncIdle SyncState = iota
	// SyncPushing means a push pass holds the sync lock.
	SyncPushing
	// SyncPulling means a pull pass holds the sync lock.
	SyncPulling
)

func (s SyncState) String() string {
	switch s {
	case SyncPushing:
		return "pushing"
	case SyncPulling:
		return "pulling"
	default:
		return "idle"
	}
}

// SyncCounts aggregates the backlog of one owner across all collections.
// Tombstones are always counted as pending.
type SyncCounts struct {
	PendingCount int `json:"pending_count"`
	ErrorCount   int `json:"error_count"`
}

// StatusReport is the snapshot returned to UI collaborators.
type StatusReport struct {
	IsOnline          bool       `json:"is_online"`
	IsSyncing         bool       `json:"is_syncing"`
	PendingCount      int        `json:"pending_count"`
	ErrorCount        int        `json:"error_count"`
	LastSyncTimestamp *time.Time `json:"last_sync_timestamp,omitempty"`
}

// PushReport summarizes one push pass. Push never fails as a whole, so the
// report is the only outcome callers observe.
type PushReport struct {
	Synced            int
	Failed            int
	TombstonesRemoved int
	TombstonesFailed  int
}

// IndicatorTone is the visual emphasis of the sync indicator.
type IndicatorTone int

const (
	ToneDefault IndicatorTone = iota
	ToneSecondary
	ToneDestructive
)

// Indicator is the presentation-independent rendering of a StatusReport.
type Indicator struct {
	Label        string
	Tooltip      string
	Tone         IndicatorTone
	ShowPending  bool
	CanForceSync bool
}

// Indicator derives label, tooltip and tone for r. Errors take precedence
// over being offline, which takes precedence over syncing and pending.
func (r StatusReport) Indicator(now time.Time) Indicator {
	ind := Indicator{
		ShowPending:  r.PendingCount > 0 && !r.IsSyncing,
		CanForceSync: r.IsOnline && !r.IsSyncing,
	}

	switch {
	case r.ErrorCount > 0:
		ind.Label = "Error"
	case !r.IsOnline:
		ind.Label = "Offline"
	case r.IsSyncing:
		ind.Label = "Syncing..."
	case r.PendingCount > 0:
		ind.Label = "Pending"
	default:
		ind.Label = "Synced"
	}

	switch {
	case r.ErrorCount > 0 || !r.IsOnline:
		ind.Tone = ToneDestructive
	case r.IsSyncing || r.PendingCount > 0:
		ind.Tone = ToneSecondary
	default:
		ind.Tone = ToneDefault
	}

	ind.Tooltip = r.tooltip(now)
	return ind
}

func (r StatusReport) tooltip(now time.Time) string {
	switch {
	case r.ErrorCount > 0:
		return fmt.Sprintf("%d item(s) failed to sync. Try forcing a sync.", r.ErrorCount)
	case !r.IsOnline:
		return "You are offline. Changes will be synced once you reconnect."
	case r.IsSyncing:
		if r.PendingCount > 0 {
			return fmt.Sprintf("Syncing %d item(s)...", r.PendingCount)
		}
		return "Syncing..."
	case r.PendingCount == 1:
		return "1 item pending sync."
	case r.PendingCount > 1:
		return fmt.Sprintf("%d items pending sync.", r.PendingCount)
	case r.LastSyncTimestamp != nil:
		return "Synced. Last time: " + humanize.RelTime(*r.LastSyncTimestamp, now, "ago", "from now")
	default:
		return "Connected and synced."
	}
}

// NoticeLevel classifies a transient notice.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeError
)

// Notice is a transient, non-blocking message for the user.
type Notice struct {
	Level   NoticeLevel
	Message string
}
