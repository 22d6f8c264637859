//go:build integration

package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/MKhiriev/go-offline-sync/internal/config"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/models"
)

func setupPostgres(t *testing.T) *Storages {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("sync_test"),
		postgres.WithUsername("sync"),
		postgres.WithPassword("sync"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := NewStorages(ctx, config.Storage{DB: config.DB{DSN: dsn}}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestDocumentRepository_Postgres(t *testing.T) {
	s := setupPostgres(t)
	repo := s.DocumentRepository
	ctx := context.Background()

	stored, err := repo.Upsert(ctx, models.CollectionClients, models.Document{ID: "a", OwnerID: "u1", Data: json.RawMessage(`{"name":"Ann"}`)})
	require.NoError(t, err)
	assert.False(t, stored.UpdatedAt.IsZero())

	_, err = repo.Upsert(ctx, models.CollectionClients, models.Document{ID: "a", OwnerID: "u1", Data: json.RawMessage(`{"name":"Anna"}`)})
	require.NoError(t, err)

	// another owner cannot take over the id
	_, err = repo.Upsert(ctx, models.CollectionClients, models.Document{ID: "a", OwnerID: "u2", Data: json.RawMessage(`{}`)})
	assert.ErrorIs(t, err, ErrDocumentOwnerMismatch)

	docs, err := repo.ListByOwner(ctx, models.CollectionClients, "u1")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.JSONEq(t, `{"name":"Anna"}`, string(docs[0].Data))

	other, err := repo.ListByOwner(ctx, models.CollectionClients, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, repo.Delete(ctx, models.CollectionClients, "u1", "a"))
	require.NoError(t, repo.Delete(ctx, models.CollectionClients, "u1", "a"))

	docs, err = repo.ListByOwner(ctx, models.CollectionClients, "u1")
	require.NoError(t, err)
	assert.Empty(t, docs)
}
