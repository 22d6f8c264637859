// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

// envParsers overrides the env library's parsers for the interval settings.
var envParsers = map[reflect.Type]env.ParserFunc{
	reflect.TypeOf(time.Duration(0)): parseInterval,
}

// parseEnv populates cfg from environment variables. Fields are mapped via
// their `env` and `envPrefix` tags defined on [StructuredConfig].
func parseEnv(cfg any) error {
	if err := env.ParseWithOptions(cfg, env.Options{FuncMap: envParsers}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}

// parseInterval accepts a Go duration ("90s", "1h30m") or a bare number of
// seconds, which is how sync and probe periods are usually written in
// deployment manifests.
func parseInterval(value string) (any, error) {
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return nil, fmt.Errorf("negative interval %q", value)
		}
		return time.Duration(seconds) * time.Second, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return nil, fmt.Errorf("invalid interval %q: %w", value, err)
	}
	return d, nil
}
