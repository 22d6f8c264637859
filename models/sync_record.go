// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// SyncStatus is the synchronization state of a single local record.
type SyncStatus string

const (
	// StatusPending marks a record changed locally and not yet confirmed remotely.
	StatusPending SyncStatus = "pending"
	// StatusSynced marks a record that matches the remote document.
	StatusSynced SyncStatus = "synced"
	// StatusError marks a record whose last remote write failed.
	StatusError SyncStatus = "error"
)

// Valid reports whether s is one of the known statuses.
func (s SyncStatus) Valid() bool {
	return s == StatusPending || s == StatusSynced || s == StatusError
}

// SyncRecord is a locally stored document together with its sync metadata.
//
// Identity is (Collection, ID). Payload is opaque to the sync engine: it is
// produced by the domain layer and forwarded as-is to the remote store.
type SyncRecord struct {
	ID         string          `json:"id"`
	Collection CollectionName  `json:"collection"`
	OwnerID    string          `json:"owner_id"`
	Payload    json.RawMessage `json:"payload"`
	SyncStatus SyncStatus      `json:"sync_status"`
	// SyncError holds a human-readable cause of the last failed push.
	// It is nil unless SyncStatus is StatusError.
	SyncError *string   `json:"sync_error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToDocument converts the record into its remote representation.
func (r SyncRecord) ToDocument() Document {
	return Document{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Data:      r.Payload,
		UpdatedAt: r.UpdatedAt,
	}
}

// DecodePayload unmarshals the opaque payload of r into a value of type T.
func DecodePayload[T any](r SyncRecord) (T, error) {
	var v T
	if len(r.Payload) == 0 {
		return v, fmt.Errorf("record %s/%s has empty payload", r.Collection, r.ID)
	}
	if err := json.Unmarshal(r.Payload, &v); err != nil {
		return v, fmt.Errorf("decode payload of %s/%s: %w", r.Collection, r.ID, err)
	}
	return v, nil
}

// RecordIDs returns the ids of records in their original order.
func RecordIDs(records []SyncRecord) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	return ids
}
