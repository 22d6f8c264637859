package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-offline-sync/internal/adapter"
	"github.com/MKhiriev/go-offline-sync/internal/config"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/store"
	"github.com/MKhiriev/go-offline-sync/models"
	"github.com/stretchr/testify/require"
)

// fakeRemote is an in-memory RemoteStore with failure injection. It records
// every call and the peak number of concurrent calls.
type fakeRemote struct {
	mu         sync.Mutex
	docs       map[models.CollectionName]map[string]models.Document
	failUpsert map[string]error
	failDelete map[string]error
	failFetch  map[models.CollectionName]error
	calls      []string

	// hold, when set, is received from inside every call
	hold chan struct{}

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		docs:       make(map[models.CollectionName]map[string]models.Document),
		failUpsert: make(map[string]error),
		failDelete: make(map[string]error),
		failFetch:  make(map[models.CollectionName]error),
	}
}

func (f *fakeRemote) enter(call string) func() {
	n := f.inFlight.Add(1)
	for {
		peak := f.maxInFlight.Load()
		if n <= peak || f.maxInFlight.CompareAndSwap(peak, n) {
			break
		}
	}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	hold := f.hold
	f.mu.Unlock()
	if hold != nil {
		<-hold
	}
	return func() { f.inFlight.Add(-1) }
}

func (f *fakeRemote) FetchAllForOwner(_ context.Context, c models.CollectionName, ownerID string) ([]models.Document, error) {
	defer f.enter("fetch:" + c.String())()
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failFetch[c]; err != nil {
		return nil, err
	}
	out := []models.Document{}
	for _, d := range f.docs[c] {
		if d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRemote) UpsertOne(_ context.Context, c models.CollectionName, doc models.Document) error {
	defer f.enter("upsert:" + c.String() + "/" + doc.ID)()
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failUpsert[doc.ID]; err != nil {
		return &adapter.RemoteWriteError{Collection: c, ID: doc.ID, Err: err}
	}
	if f.docs[c] == nil {
		f.docs[c] = make(map[string]models.Document)
	}
	doc.UpdatedAt = doc.UpdatedAt.UTC().Truncate(time.Millisecond)
	f.docs[c][doc.ID] = doc
	return nil
}

func (f *fakeRemote) DeleteOne(_ context.Context, c models.CollectionName, _ string, id string) error {
	defer f.enter("delete:" + c.String() + "/" + id)()
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failDelete[id]; err != nil {
		return &adapter.RemoteDeleteError{Collection: c, ID: id, Err: err}
	}
	delete(f.docs[c], id)
	return nil
}

func (f *fakeRemote) put(c models.CollectionName, owner, id, data string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.docs[c] == nil {
		f.docs[c] = make(map[string]models.Document)
	}
	f.docs[c][id] = models.Document{
		ID: id, OwnerID: owner, Data: []byte(data),
		UpdatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeRemote) has(c models.CollectionName, id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.docs[c][id]
	return ok
}

func (f *fakeRemote) setFailUpsert(id string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.failUpsert, id)
		return
	}
	f.failUpsert[id] = err
}

func (f *fakeRemote) setFailDelete(id string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.failDelete, id)
		return
	}
	f.failDelete[id] = err
}

func (f *fakeRemote) setFailFetch(c models.CollectionName, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.failFetch, c)
		return
	}
	f.failFetch[c] = err
}

func (f *fakeRemote) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeRemote) resetCalls() {
	f.mu.Lock()
	f.calls = nil
	f.mu.Unlock()
}

func (f *fakeRemote) count(prefix string) int {
	n := 0
	for _, c := range f.callLog() {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

// noticeRecorder collects notices in order.
type noticeRecorder struct {
	mu      sync.Mutex
	notices []models.Notice
}

func (r *noticeRecorder) Notify(n models.Notice) {
	r.mu.Lock()
	r.notices = append(r.notices, n)
	r.mu.Unlock()
}

func (r *noticeRecorder) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.notices))
	for _, n := range r.notices {
		out = append(out, n.Message)
	}
	return out
}

type testEngine struct {
	storages *store.ClientStorages
	remote   *fakeRemote
	notices  *noticeRecorder
	services *ClientServices
	coord    *syncCoordinator
}

func newTestStorages(t *testing.T) *store.ClientStorages {
	t.Helper()
	cfg := config.ClientStorage{DB: config.ClientDB{DSN: filepath.Join(t.TempDir(), "client.db")}}
	s, err := store.NewClientStorages(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()
	storages := newTestStorages(t)
	remote := newFakeRemote()
	notices := &noticeRecorder{}
	services := NewClientServices(storages, remote, notices, logger.Nop())

	return &testEngine{
		storages: storages,
		remote:   remote,
		notices:  notices,
		services: services,
		coord:    services.Coordinator.(*syncCoordinator),
	}
}

func (e *testEngine) save(t *testing.T, c models.CollectionName, owner, id string) {
	t.Helper()
	_, err := e.services.RecordService.Save(context.Background(), c, owner, id, map[string]string{"name": id})
	require.NoError(t, err)
}

func (e *testEngine) record(t *testing.T, c models.CollectionName, owner, id string) (models.SyncRecord, bool) {
	t.Helper()
	records, err := e.storages.Records.ListByOwner(context.Background(), c, owner)
	require.NoError(t, err)
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	return models.SyncRecord{}, false
}

func (e *testEngine) ids(t *testing.T, c models.CollectionName, owner string) []string {
	t.Helper()
	records, err := e.storages.Records.ListByOwner(context.Background(), c, owner)
	require.NoError(t, err)
	ids := models.RecordIDs(records)
	sort.Strings(ids)
	return ids
}

// snapshot renders every local record of owner in a comparable form.
func (e *testEngine) snapshot(t *testing.T, owner string) []string {
	t.Helper()
	var out []string
	for _, c := range models.AllCollections() {
		records, err := e.storages.Records.ListByOwner(context.Background(), c, owner)
		require.NoError(t, err)
		for _, r := range records {
			syncErr := "<nil>"
			if r.SyncError != nil {
				syncErr = *r.SyncError
			}
			out = append(out, fmt.Sprintf("%s/%s %s %s %s %s", c, r.ID, r.SyncStatus, r.Payload, syncErr, r.UpdatedAt.UTC().Format(time.RFC3339Nano)))
		}
	}
	sort.Strings(out)
	return out
}
