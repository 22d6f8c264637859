// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// DocumentsResponse is the full per-owner snapshot of one collection as
// returned by GET /api/collections/{collection}/documents.
type DocumentsResponse struct {
	// Collection echoes the requested collection name.
	Collection CollectionName `json:"collection"`

	// Documents holds every document owned by the authenticated user.
	Documents []Document `json:"documents"`

	// Length is the number of entries in Documents.
	Length int `json:"length"`
}
