package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-offline-sync/internal/adapter"
	"github.com/MKhiriev/go-offline-sync/internal/config"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/service"
	"github.com/MKhiriev/go-offline-sync/internal/store"
	"github.com/MKhiriev/go-offline-sync/internal/tui"
	"github.com/MKhiriev/go-offline-sync/internal/utils"
	"github.com/MKhiriev/go-offline-sync/internal/workers"
	"github.com/MKhiriev/go-offline-sync/models"
)

const noticeQueueSize = 16

type App struct {
	services *service.ClientServices
	ui       UI
	workers  *workers.Workers
	ownerID  string
	cfg      config.ClientWorkers

	closers []io.Closer
	logger  *logger.Logger
}

// NewApp opens the local store, connects the remote adapter and wires the
// sync engine, its workers and the status UI. The owner is the subject of
// the configured token.
func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*App, error) {
	ownerID, err := utils.ParseOwnerIDFromJWT(cfg.App.Token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	remote, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	app := &App{
		ownerID: ownerID,
		cfg:     cfg.Workers,
		closers: []io.Closer{storages},
		logger:  logger,
	}

	var prober adapter.ConnectivityProber = remote
	if cfg.Adapter.GRPCAddress != "" {
		grpcProber, err := adapter.NewGRPCProber(cfg.Adapter.GRPCAddress)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("create grpc prober: %w", err)
		}
		prober = grpcProber
		app.closers = append(app.closers, grpcProber)
	}

	notices := service.NewNoticeQueue(noticeQueueSize)
	app.services = service.NewClientServices(storages, remote, notices, logger)
	app.ui = tui.New(app.services.Coordinator, notices.C(), buildInfo, logger)
	app.workers = app.newWorkers(prober, cfg.Adapter)

	logger.Info().Str("owner_id", ownerID).Bool("grpc_probe", cfg.Adapter.GRPCAddress != "").Msg("client app created")
	return app, nil
}

func (a *App) newWorkers(prober adapter.ConnectivityProber, adapterCfg config.ClientAdapter) *workers.Workers {
	return workers.NewWorkers(
		workers.Func(a.services.SyncState.Run),
		workers.Func(a.services.Coordinator.Run),
		workers.NewConnectivityProbeWorker(prober, a.services.Connectivity, a.cfg.ProbeInterval, adapterCfg.RequestTimeout, a.logger),
		// session start: backlog push followed by the initial pull
		workers.Func(func(ctx context.Context) {
			a.services.Coordinator.OnAuthChange(ctx, a.ownerID)
		}),
	)
}

// Run blocks until the user quits or the process receives SIGINT/SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.run(ctx)
}

func (a *App) run(ctx context.Context) error {
	defer a.close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workersDone := make(chan struct{})
	go func() {
		a.workers.Run(ctx)
		close(workersDone)
	}()

	a.services.SyncJob.Start(ctx, a.cfg.SyncInterval)

	err := a.ui.Run(ctx)

	a.services.SyncJob.Stop()
	cancel()
	<-workersDone

	if errors.Is(err, tui.ErrUserQuit) {
		a.logger.Info().Msg("client stopped by user")
		return nil
	}
	return err
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Err(err).Str("func", "App.close").Msg("error releasing resource")
		}
	}
	a.closers = nil
}
