package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/mock"
	"github.com/MKhiriev/go-offline-sync/internal/service"
	"github.com/MKhiriev/go-offline-sync/internal/utils"
	"github.com/MKhiriev/go-offline-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testOwner   = "owner-1"
	testToken   = "valid-token"
	testHashKey = "test-hash-key"
)

type testServer struct {
	handler   *Handler
	router    http.Handler
	auth      *mock.MockAuthService
	documents *mock.MockDocumentService
	appInfo   *mock.MockAppInfoService
	hasher    *utils.Hasher
}

// newTestServer wires a Handler over gomock services. The auth mock accepts
// testToken for testOwner and rejects everything else.
func newTestServer(t *testing.T, hashKey string) *testServer {
	t.Helper()
	ctrl := gomock.NewController(t)

	auth := mock.NewMockAuthService(ctrl)
	auth.EXPECT().ParseToken(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, token string) (models.Token, error) {
			if token != testToken {
				return models.Token{}, service.ErrTokenIsExpiredOrInvalid
			}
			return models.Token{SignedString: token, OwnerID: testOwner}, nil
		}).AnyTimes()

	documents := mock.NewMockDocumentService(ctrl)
	appInfo := mock.NewMockAppInfoService(ctrl)
	hasher := utils.NewHasher(hashKey)

	h := NewHandler(&service.Services{
		AuthService:     auth,
		DocumentService: documents,
		AppInfoService:  appInfo,
	}, hasher, logger.Nop())

	return &testServer{
		handler:   h,
		router:    h.Init(),
		auth:      auth,
		documents: documents,
		appInfo:   appInfo,
		hasher:    hasher,
	}
}

func (s *testServer) do(t *testing.T, method, target string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func bearer() map[string]string {
	return map[string]string{"Authorization": "Bearer " + testToken}
}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_StoresDependencies(t *testing.T) {
	services := &service.Services{}
	hasher := utils.NewHasher("k")
	log := logger.Nop()

	h := NewHandler(services, hasher, log)

	require.NotNil(t, h)
	assert.Same(t, services, h.services)
	assert.Same(t, hasher, h.hasher)
	assert.Equal(t, log, h.logger)
}

// ─────────────────────────────────────────────
// Init — route registration
// ─────────────────────────────────────────────

func TestInit_RegistersRoutes(t *testing.T) {
	s := newTestServer(t, "")
	s.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.0.0").AnyTimes()

	routes := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/ping", http.StatusNoContent},
		{http.MethodGet, "/api/version/", http.StatusOK},
		// protected routes answer 401 without a token, which proves they exist
		{http.MethodGet, "/api/collections/clients/documents", http.StatusUnauthorized},
		{http.MethodPut, "/api/collections/clients/documents/c1", http.StatusUnauthorized},
		{http.MethodDelete, "/api/collections/clients/documents/c1", http.StatusUnauthorized},
	}
	for _, tc := range routes {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := s.do(t, tc.method, tc.path, nil, nil)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestInit_UnknownRouteReturns404(t *testing.T) {
	s := newTestServer(t, "")

	rec := s.do(t, http.MethodGet, "/api/nonexistent", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInit_WrongMethodReturns404(t *testing.T) {
	s := newTestServer(t, "")

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/version/"},
		{http.MethodPost, "/api/ping"},
		{http.MethodPost, "/api/collections/clients/documents/c1"},
	} {
		rec := s.do(t, tc.method, tc.path, nil, bearer())
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestInit_TraceIDHeader(t *testing.T) {
	s := newTestServer(t, "")

	rec := s.do(t, http.MethodGet, "/api/ping", nil, nil)
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))

	rec = s.do(t, http.MethodGet, "/api/ping", nil, map[string]string{traceIDHeader: "trace-42"})
	assert.Equal(t, "trace-42", rec.Header().Get(traceIDHeader))
}
