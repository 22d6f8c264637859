// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header does not use the Bearer scheme.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the Bearer scheme carries no token.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)

// Request validation errors of the document routes.
var (
	ErrMissingHash        = errors.New("missing `HashSHA256` header")
	ErrIntegrityCheck     = errors.New("integrity check failed")
	ErrDocumentIDMismatch = errors.New("document id in body does not match path")
)
