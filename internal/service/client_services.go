package service

import (
	"github.com/MKhiriev/go-offline-sync/internal/adapter"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/store"
)

// ClientServices groups the sync engine components of one device.
type ClientServices struct {
	Connectivity  ConnectivityMonitor
	SyncState     SyncStateStore
	Coordinator   SyncCoordinator
	RecordService ClientRecordService
	SyncJob       ClientSyncJob
}

// NewClientServices wires the engine over the local storages and the remote
// store. Notices from the coordinator go to notifier.
func NewClientServices(storages *store.ClientStorages, remote adapter.RemoteStore, notifier Notifier, logger *logger.Logger) *ClientServices {
	caps := newCapabilityTable(remote)

	connectivity := NewConnectivityMonitor(logger)
	state := NewSyncStateStore(storages, logger)
	coordinator := NewSyncCoordinator(
		connectivity,
		state,
		newPushPipeline(storages, caps, logger),
		newPullPipeline(storages, caps, logger),
		storages.Sessions,
		notifier,
		logger,
	)

	return &ClientServices{
		Connectivity:  connectivity,
		SyncState:     state,
		Coordinator:   coordinator,
		RecordService: NewClientRecordService(storages, logger),
		SyncJob:       NewClientSyncJob(coordinator),
	}
}
