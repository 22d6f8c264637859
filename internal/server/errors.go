// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// errNoServersAreCreated is returned by NewServer when the configuration
	// names neither an HTTP nor a gRPC address.
	errNoServersAreCreated = errors.New("no servers are created")

	// errNoServersToRun is returned by run on a server built without any
	// transport.
	errNoServersToRun = errors.New("no servers to run")
)
