// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// Document is the remote, authoritative representation of a record.
type Document struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToSyncRecord converts a remote document into a local record that is
// already in sync with the remote store.
func (d Document) ToSyncRecord(collection CollectionName) SyncRecord {
	return SyncRecord{
		ID:         d.ID,
		Collection: collection,
		OwnerID:    d.OwnerID,
		Payload:    d.Data,
		SyncStatus: StatusSynced,
		SyncError:  nil,
		UpdatedAt:  d.UpdatedAt,
	}
}
