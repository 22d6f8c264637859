// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/models"
)

// documentRepository is the PostgreSQL-backed implementation of
// [DocumentRepository] over the "documents" table. Statements that fail
// with a retryable driver error (see [PostgresErrorClassifier]) are
// attempted again with a short exponential backoff.
type documentRepository struct {
	*DB
	retry  RetryConfig
	logger *logger.Logger
}

// NewDocumentRepository constructs a [DocumentRepository] backed by the
// provided database connection and logger.
func NewDocumentRepository(db *DB, logger *logger.Logger) DocumentRepository {
	return &documentRepository{
		DB:     db,
		retry:  QueryRetryDefaults(),
		logger: logger,
	}
}

// ListByOwner returns every document of collection owned by ownerID,
// ordered by id. Returns an empty slice when nothing is stored.
func (d *documentRepository) ListByOwner(ctx context.Context, collection models.CollectionName, ownerID string) ([]models.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListDocumentsQuery(collection, ownerID)
	if err != nil {
		log.Err(err).Str("func", "documentRepository.ListByOwner").Msg("failed to create query")
		return nil, err
	}

	var docs []models.Document
	err = withRetry(ctx, d.retry, d.errorClassificator, "list documents", func(ctx context.Context) error {
		var queryErr error
		docs, queryErr = d.queryDocuments(ctx, query, args)
		return queryErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.ListByOwner").
			Str("collection", collection.String()).
			Str("owner_id", ownerID).
			Str("pg_code", postgresError(err)).
			Msg("failed to list documents")
		return nil, err
	}

	return docs, nil
}

func (d *documentRepository) queryDocuments(ctx context.Context, query string, args []any) ([]models.Document, error) {
	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	docs := make([]models.Document, 0, 50)
	for rows.Next() {
		doc, scanErr := scanDocument(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		docs = append(docs, doc)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return docs, nil
}

// Upsert inserts or replaces a document and returns the stored row. It
// fails with [ErrDocumentOwnerMismatch] when the id is taken by another owner.
func (d *documentRepository) Upsert(ctx context.Context, collection models.CollectionName, doc models.Document) (models.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertDocumentQuery(collection, doc)
	if err != nil {
		log.Err(err).Str("func", "documentRepository.Upsert").Msg("failed to create query")
		return models.Document{}, err
	}

	var stored models.Document
	err = withRetry(ctx, d.retry, d.errorClassificator, "upsert document", func(ctx context.Context) error {
		var scanErr error
		stored, scanErr = scanDocument(d.DB.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		log.Warn().
			Str("func", "documentRepository.Upsert").
			Str("collection", collection.String()).
			Str("id", doc.ID).
			Str("owner_id", doc.OwnerID).
			Msg("document id is owned by another user")
		return models.Document{}, ErrDocumentOwnerMismatch
	}
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.Upsert").
			Str("collection", collection.String()).
			Str("id", doc.ID).
			Str("pg_code", postgresError(err)).
			Msg("failed to execute upsert for document")
		return models.Document{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return stored, nil
}

// Delete removes the owner's document. Deleting an absent document succeeds.
func (d *documentRepository) Delete(ctx context.Context, collection models.CollectionName, ownerID, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteDocumentQuery(collection, ownerID, id)
	if err != nil {
		log.Err(err).Str("func", "documentRepository.Delete").Msg("failed to create query")
		return err
	}

	var rowsAffected int64
	err = withRetry(ctx, d.retry, d.errorClassificator, "delete document", func(ctx context.Context) error {
		result, execErr := d.DB.ExecContext(ctx, query, args...)
		if execErr != nil {
			return execErr
		}
		rowsAffected, execErr = result.RowsAffected()
		return execErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.Delete").
			Str("collection", collection.String()).
			Str("id", id).
			Str("pg_code", postgresError(err)).
			Msg("failed to execute delete for document")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	log.Debug().
		Str("func", "documentRepository.Delete").
		Str("collection", collection.String()).
		Str("id", id).
		Int64("rows_affected", rowsAffected).
		Msg("document deleted")
	return nil
}

func scanDocument(row rowScanner) (models.Document, error) {
	var (
		doc  models.Document
		data []byte
	)
	if err := row.Scan(&doc.ID, &doc.OwnerID, &data, &doc.UpdatedAt); err != nil {
		return models.Document{}, err
	}
	doc.Data = json.RawMessage(data)
	return doc, nil
}
