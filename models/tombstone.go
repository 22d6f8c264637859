// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// DeletionTombstone is a durable marker meaning "this id must no longer
// exist remotely". It is recorded when a record is deleted locally and kept
// until the remote delete call succeeds.
type DeletionTombstone struct {
	ID         string         `json:"id"`
	Collection CollectionName `json:"collection"`
	OwnerID    string         `json:"owner_id"`
	CreatedAt  time.Time      `json:"created_at"`
}
