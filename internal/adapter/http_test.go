// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-offline-sync/internal/config"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/utils"
	"github.com/MKhiriev/go-offline-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHashKey = "testhashkey"

// newTestAdapter builds an httpServerAdapter pointed at the test server.
func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 2 * time.Second}
	appCfg := config.ClientApp{HashKey: testHashKey, Token: " test-token "}

	a, err := NewHTTPServerAdapter(adapterCfg, appCfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

// ── Token ───────────────────────────────────────────────────────────────────

func TestToken_InitialFromConfigAndSet(t *testing.T) {
	a := newTestAdapter(t, "http://localhost:1")
	assert.Equal(t, "test-token", a.Token())

	a.SetToken("other")
	assert.Equal(t, "other", a.Token())
}

func TestNewHTTPServerAdapter_InvalidAddress(t *testing.T) {
	_, err := NewHTTPServerAdapter(config.ClientAdapter{}, config.ClientApp{}, logger.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyAddress)
}

// ── Ping / Version ──────────────────────────────────────────────────────────

func TestPing_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/ping", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, newTestAdapter(t, srv.URL).Ping(context.Background()))
}

func TestPing_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	assert.Error(t, newTestAdapter(t, url).Ping(context.Background()))
}

func TestPing_BadGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).Ping(context.Background())
	assert.ErrorIs(t, err, ErrBadGateway)
}

func TestVersion_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version/", r.URL.Path)
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("v1.2.3\n"))
	}))
	defer srv.Close()

	v, err := newTestAdapter(t, srv.URL).Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", v)
}

// ── FetchAllForOwner ────────────────────────────────────────────────────────

func TestFetchAllForOwner_Success(t *testing.T) {
	docs := []models.Document{
		{ID: "a", OwnerID: "o1", Data: json.RawMessage(`{"n":1}`), UpdatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "c", OwnerID: "o1", Data: json.RawMessage(`{"n":3}`), UpdatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/collections/clients/documents", r.URL.Path)
		assert.Equal(t, "o1", r.URL.Query().Get("owner_id"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(models.DocumentsResponse{
			Collection: models.CollectionClients, Documents: docs, Length: len(docs),
		})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).FetchAllForOwner(context.Background(), models.CollectionClients, "o1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.JSONEq(t, `{"n":3}`, string(got[1].Data))
	assert.True(t, got[1].UpdatedAt.Equal(docs[1].UpdatedAt))
}

func TestFetchAllForOwner_EmptyIsNotNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"collection":"items","documents":null,"length":0}`))
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).FetchAllForOwner(context.Background(), models.CollectionItems, "o1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFetchAllForOwner_WrongCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"collection":"items","documents":[],"length":0}`))
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).FetchAllForOwner(context.Background(), models.CollectionClients, "o1")
	assert.Error(t, err)
}

func TestFetchAllForOwner_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).FetchAllForOwner(context.Background(), models.CollectionClients, "o1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestFetchAllForOwner_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("owner mismatch"))
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).FetchAllForOwner(context.Background(), models.CollectionClients, "o2")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Contains(t, err.Error(), "owner mismatch")
}

// ── UpsertOne ───────────────────────────────────────────────────────────────

func TestUpsertOne_SendsBodyAndHash(t *testing.T) {
	doc := models.Document{ID: "p1", OwnerID: "o1", Data: json.RawMessage(`{"title":"Roof"}`)}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/collections/proposals/documents/p1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.True(t, utils.NewHasher(testHashKey).Verify(body, r.Header.Get(utils.HashHeader)))

		var got models.Document
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "p1", got.ID)
		assert.JSONEq(t, `{"title":"Roof"}`, string(got.Data))

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, newTestAdapter(t, srv.URL).UpsertOne(context.Background(), models.CollectionProposals, doc))
}

func TestUpsertOne_NoHashWithoutKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get(utils.HashHeader))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a, err := NewHTTPServerAdapter(config.ClientAdapter{HTTPAddress: srv.URL}, config.ClientApp{}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, a.UpsertOne(context.Background(), models.CollectionItems, models.Document{ID: "i1"}))
}

func TestUpsertOne_BadRequestIsRemoteWriteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("invalid document"))
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).UpsertOne(context.Background(), models.CollectionClients, models.Document{ID: "c1"})
	require.Error(t, err)

	var rwe *RemoteWriteError
	require.True(t, errors.As(err, &rwe))
	assert.Equal(t, models.CollectionClients, rwe.Collection)
	assert.Equal(t, "c1", rwe.ID)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestUpsertOne_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := newTestAdapter(t, url).UpsertOne(context.Background(), models.CollectionClients, models.Document{ID: "c1"})
	var rwe *RemoteWriteError
	assert.True(t, errors.As(err, &rwe))
}

// ── DeleteOne ───────────────────────────────────────────────────────────────

func TestDeleteOne_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/collections/items/documents/i9", r.URL.Path)
		assert.Equal(t, "o1", r.URL.Query().Get("owner_id"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, newTestAdapter(t, srv.URL).DeleteOne(context.Background(), models.CollectionItems, "o1", "i9"))
}

func TestDeleteOne_NotFoundKeepsFailure(t *testing.T) {
	// an unknown collection or an unrouted path answers 404 as well
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unknown collection", http.StatusNotFound)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).DeleteOne(context.Background(), models.CollectionItems, "o1", "i9")
	var rde *RemoteDeleteError
	require.True(t, errors.As(err, &rde))
	assert.Equal(t, models.CollectionItems, rde.Collection)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteOne_InternalServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).DeleteOne(context.Background(), models.CollectionItems, "o1", "i9")
	var rde *RemoteDeleteError
	require.True(t, errors.As(err, &rde))
	assert.Equal(t, "i9", rde.ID)
	assert.ErrorIs(t, err, ErrInternalServerError)
}

// ── mapHTTPError ────────────────────────────────────────────────────────────

func TestMapHTTPError_KnownStatuses(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusInternalServerError, ErrInternalServerError},
		{http.StatusBadGateway, ErrBadGateway},
		{http.StatusServiceUnavailable, ErrServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tt.status)
			}))
			defer srv.Close()

			err := newTestAdapter(t, srv.URL).Ping(context.Background())
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "nope")
		})
	}
}

func TestMapHTTPError_UnknownStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418")
}

// ── normalizeBaseURL ─────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid http", "http://localhost:8080", "http://localhost:8080", false},
		{"no scheme", "localhost:8080", "http://localhost:8080", false},
		{"trailing slash", "http://localhost:8080/", "http://localhost:8080", false},
		{"empty", "", "", true},
		{"no host", "http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
