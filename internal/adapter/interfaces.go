// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the remote document service.
//
// The primary abstraction is [ServerAdapter], which decouples the sync
// pipelines from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) for document traffic and a gRPC
// health probe ([NewGRPCProber]) that can replace the HTTP ping for
// connectivity detection.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrForbidden] for 403, [ErrUnauthorized] for 401). Per-item
// failures are wrapped in [RemoteWriteError] and [RemoteDeleteError].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-offline-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// RemoteStore is the per-collection remote document store. The remote store
// is the system of record: a fetched snapshot is authoritative.
type RemoteStore interface {
	// FetchAllForOwner returns the full snapshot of collection for ownerID.
	// There is no delta or cursor support.
	FetchAllForOwner(ctx context.Context, collection models.CollectionName, ownerID string) ([]models.Document, error)

	// UpsertOne creates or replaces doc in collection. Failures are returned
	// as *[RemoteWriteError].
	UpsertOne(ctx context.Context, collection models.CollectionName, doc models.Document) error

	// DeleteOne removes the document id from collection. Deleting an absent
	// document succeeds. Failures are returned as *[RemoteDeleteError].
	DeleteOne(ctx context.Context, collection models.CollectionName, ownerID, id string) error
}

// ConnectivityProber checks whether the remote service is reachable.
type ConnectivityProber interface {
	// Ping returns nil when the remote service answered.
	Ping(ctx context.Context) error
}

// ServerAdapter defines transport-agnostic communication with the remote
// document service. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to the
// sentinel values defined in this package.
type ServerAdapter interface {
	RemoteStore
	ConnectivityProber

	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Version returns the build version reported by the server.
	Version(ctx context.Context) (string, error)
}
