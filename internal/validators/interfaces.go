// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds input validation for values crossing the server
// boundary.
//
// A Validator checks a value, optionally restricted to a set of named fields,
// and returns one of the sentinel errors of this package. Services wrap the
// result into their own taxonomy.
package validators

import "context"

// Validator validates an arbitrary input value.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
