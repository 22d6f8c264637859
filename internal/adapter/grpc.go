// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// GRPCProber is a [ConnectivityProber] backed by the standard grpc.health.v1
// service. The connection is created lazily by gRPC and re-established on
// demand, so one prober lives for the whole process.
type GRPCProber struct {
	conn   *grpc.ClientConn
	health healthpb.HealthClient
}

// NewGRPCProber creates a prober for address (host:port).
func NewGRPCProber(address string) (*GRPCProber, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrEmptyAddress
	}

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("create grpc client: %w", err)
	}

	return &GRPCProber{conn: conn, health: healthpb.NewHealthClient(conn)}, nil
}

// Ping reports nil only when the server answers SERVING.
func (p *GRPCProber) Ping(ctx context.Context) error {
	resp, err := p.health.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return fmt.Errorf("grpc health check: %w", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("grpc health status %s", resp.GetStatus())
	}
	return nil
}

// Close releases the underlying connection.
func (p *GRPCProber) Close() error {
	return p.conn.Close()
}
