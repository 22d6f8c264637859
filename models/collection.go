// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// CollectionName identifies one of the independently synchronized record
// collections. The set is closed: only the constants below are valid.
type CollectionName string

const (
	// CollectionOrganization holds the single organization profile of an owner.
	CollectionOrganization CollectionName = "organization"
	// CollectionClients holds customer records.
	CollectionClients CollectionName = "clients"
	// CollectionItems holds catalog items (materials, services) used in proposals.
	CollectionItems CollectionName = "items"
	// CollectionProposals holds quotes referencing clients and items.
	CollectionProposals CollectionName = "proposals"
)

// PushOrder is the order in which collections are uploaded: parent-like
// collections first so that dependents never reference missing documents.
var PushOrder = []CollectionName{
	CollectionOrganization,
	CollectionClients,
	CollectionItems,
	CollectionProposals,
}

// PullOrder is the order in which collections are reconciled during a pull.
var PullOrder = []CollectionName{
	CollectionClients,
	CollectionItems,
	CollectionProposals,
	CollectionOrganization,
}

// AllCollections lists every known collection.
func AllCollections() []CollectionName {
	out := make([]CollectionName, len(PushOrder))
	copy(out, PushOrder)
	return out
}

// Valid reports whether c belongs to the closed collection set.
func (c CollectionName) Valid() bool {
	switch c {
	case CollectionOrganization, CollectionClients, CollectionItems, CollectionProposals:
		return true
	}
	return false
}

// String implements [fmt.Stringer].
func (c CollectionName) String() string {
	return string(c)
}
