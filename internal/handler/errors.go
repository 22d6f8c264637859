// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

var (
	// errNoHandlersAreCreated is returned by NewHandlers when the server
	// configuration names neither an HTTP nor a gRPC address.
	errNoHandlersAreCreated = errors.New("no handlers are created")

	// errSharedAddress is returned when the document API and the health
	// endpoint are configured on the same address; only one of them could
	// bind it.
	errSharedAddress = errors.New("http and grpc handlers are configured on the same address")
)
