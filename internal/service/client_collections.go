// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-offline-sync/internal/adapter"
	"github.com/MKhiriev/go-offline-sync/models"
)

// collectionCapability is the remote behavior of one collection. A nil
// function means the collection does not support the operation.
type collectionCapability struct {
	push   func(ctx context.Context, doc models.Document) error
	fetch  func(ctx context.Context, ownerID string) ([]models.Document, error)
	delete func(ctx context.Context, ownerID, id string) error
}

type capabilityTable map[models.CollectionName]collectionCapability

// newCapabilityTable binds every known collection to remote. The
// organization profile is never deleted remotely: it is a singleton that is
// overwritten, so its tombstones are dropped without a remote call.
func newCapabilityTable(remote adapter.RemoteStore) capabilityTable {
	full := func(c models.CollectionName) collectionCapability {
		return collectionCapability{
			push: func(ctx context.Context, doc models.Document) error {
				return remote.UpsertOne(ctx, c, doc)
			},
			fetch: func(ctx context.Context, ownerID string) ([]models.Document, error) {
				return remote.FetchAllForOwner(ctx, c, ownerID)
			},
			delete: func(ctx context.Context, ownerID, id string) error {
				return remote.DeleteOne(ctx, c, ownerID, id)
			},
		}
	}

	organization := full(models.CollectionOrganization)
	organization.delete = nil

	return capabilityTable{
		models.CollectionOrganization: organization,
		models.CollectionClients:      full(models.CollectionClients),
		models.CollectionItems:        full(models.CollectionItems),
		models.CollectionProposals:    full(models.CollectionProposals),
	}
}

func (t capabilityTable) lookup(c models.CollectionName) (collectionCapability, bool) {
	capability, ok := t[c]
	return capability, ok
}
