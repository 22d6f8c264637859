package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-offline-sync/internal/config"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/utils"
	"github.com/MKhiriev/go-offline-sync/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	hasher *utils.Hasher

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress,
// configures the underlying HTTP client with the resolved base URL and request
// timeout, and sets up the HMAC hasher used for body integrity headers.
// appCfg.Token, when present, becomes the initial bearer token.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	a := &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		hasher: utils.NewHasher(appCfg.HashKey),
		logger: logger,
	}
	a.SetToken(appCfg.Token)

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	h.token = strings.TrimSpace(token)
	h.mu.Unlock()
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Ping implements [ConnectivityProber] via GET /api/ping. Any transport error
// or non-2xx answer counts as unreachable.
func (h *httpServerAdapter) Ping(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get("/api/ping")
	if err != nil {
		return fmt.Errorf("ping request: %w", err)
	}
	return mapHTTPError(resp)
}

// Version implements [ServerAdapter] via GET /api/version/.
func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.String()), nil
}

// FetchAllForOwner implements [RemoteStore]. It GETs
// /api/collections/{collection}/documents. The server scopes the result to the
// bearer token subject; ownerID is sent as a query parameter so that a token
// for a different owner is rejected instead of silently answering with the
// wrong partition.
func (h *httpServerAdapter) FetchAllForOwner(ctx context.Context, collection models.CollectionName, ownerID string) ([]models.Document, error) {
	resp, err := h.authedRequest(ctx).
		SetPathParam("collection", collection.String()).
		SetQueryParam("owner_id", ownerID).
		Get("/api/collections/{collection}/documents")
	if err != nil {
		return nil, fmt.Errorf("fetch %s request: %w", collection, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var dr models.DocumentsResponse
	if err = json.Unmarshal(resp.Body(), &dr); err != nil {
		return nil, fmt.Errorf("decode %s documents: %w", collection, err)
	}
	if dr.Collection != "" && dr.Collection != collection {
		return nil, fmt.Errorf("fetch %s: server answered for collection %q", collection, dr.Collection)
	}
	if dr.Documents == nil {
		return []models.Document{}, nil
	}
	return dr.Documents, nil
}

// UpsertOne implements [RemoteStore]. It PUTs doc to
// /api/collections/{collection}/documents/{id} with the HashSHA256 integrity
// header computed over the exact request body.
func (h *httpServerAdapter) UpsertOne(ctx context.Context, collection models.CollectionName, doc models.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return &RemoteWriteError{Collection: collection, ID: doc.ID, Err: fmt.Errorf("encode document: %w", err)}
	}

	req := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParams(map[string]string{"collection": collection.String(), "id": doc.ID}).
		SetBody(body)
	if sum := h.hasher.SumHex(body); sum != "" {
		req.SetHeader(utils.HashHeader, sum)
	}

	resp, err := req.Put("/api/collections/{collection}/documents/{id}")
	if err != nil {
		return &RemoteWriteError{Collection: collection, ID: doc.ID, Err: err}
	}
	if err = mapHTTPError(resp); err != nil {
		return &RemoteWriteError{Collection: collection, ID: doc.ID, Err: err}
	}
	return nil
}

// DeleteOne implements [RemoteStore]. It sends
// DELETE /api/collections/{collection}/documents/{id}; the server answers 204
// whether or not the document existed. Any other status, 404 included, means
// the delete was not applied and fails with a [RemoteDeleteError].
func (h *httpServerAdapter) DeleteOne(ctx context.Context, collection models.CollectionName, ownerID, id string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParams(map[string]string{"collection": collection.String(), "id": id}).
		SetQueryParam("owner_id", ownerID).
		Delete("/api/collections/{collection}/documents/{id}")
	if err != nil {
		return &RemoteDeleteError{Collection: collection, ID: id, Err: err}
	}
	if err = mapHTTPError(resp); err != nil {
		return &RemoteDeleteError{Collection: collection, ID: id, Err: err}
	}
	return nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
