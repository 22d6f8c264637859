// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-offline-sync/internal/adapter"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/service"
)

const defaultProbeInterval = 10 * time.Second

// ConnectivityProbeWorker pings the remote on a fixed interval and feeds the
// result into the connectivity monitor. The first probe runs immediately.
type ConnectivityProbeWorker struct {
	prober   adapter.ConnectivityProber
	monitor  service.ConnectivityMonitor
	interval time.Duration
	timeout  time.Duration

	logger *logger.Logger
}

// NewConnectivityProbeWorker creates a probe worker. Each probe is bounded by
// timeout, or by interval when timeout is not positive.
func NewConnectivityProbeWorker(
	prober adapter.ConnectivityProber,
	monitor service.ConnectivityMonitor,
	interval, timeout time.Duration,
	logger *logger.Logger,
) *ConnectivityProbeWorker {
	if interval <= 0 {
		interval = defaultProbeInterval
	}
	if timeout <= 0 || timeout > interval {
		timeout = interval
	}
	return &ConnectivityProbeWorker{
		prober:   prober,
		monitor:  monitor,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
	}
}

func (w *ConnectivityProbeWorker) Run(ctx context.Context) {
	t := time.NewTicker(w.interval)
	defer t.Stop()

	for {
		w.probe(ctx)

		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

func (w *ConnectivityProbeWorker) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	err := w.prober.Ping(probeCtx)
	if ctx.Err() != nil {
		// shutting down; the result says nothing about the remote
		return
	}

	online := err == nil
	if online != w.monitor.IsOnline() {
		w.logger.Info().Err(err).Bool("online", online).Str("func", "ConnectivityProbeWorker.probe").Msg("connectivity changed")
	}
	w.monitor.SetOnline(online)
}
