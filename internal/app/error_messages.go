// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the human-readable messages the document server puts
// into HTTP error bodies.
//
// Internal error text never reaches clients; handlers translate every
// failure into one of these messages.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgNoOwnerIDProvided is returned when the request carries no owner.
	MsgNoOwnerIDProvided = "no owner ID provided"

	// MsgNoDocumentIDProvided is returned when a write names no document.
	MsgNoDocumentIDProvided = "no document ID provided"

	// MsgAccessDenied is returned when the caller addresses another owner's
	// partition or a document owned by someone else.
	MsgAccessDenied = "access denied"

	// MsgUnknownCollection is returned for a collection outside the fixed set.
	MsgUnknownCollection = "unknown collection"

	// MsgVersionIsNotSpecified is returned when the server was started
	// without a build version.
	MsgVersionIsNotSpecified = "version is not specified"
)
