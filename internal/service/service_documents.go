// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/store"
	"github.com/MKhiriev/go-offline-sync/internal/validators"
	"github.com/MKhiriev/go-offline-sync/models"
)

// documentService is the server-side document store. Every operation is
// scoped to the owner taken from the verified token, never from the body.
type documentService struct {
	documents store.DocumentRepository
	validator validators.Validator

	logger *logger.Logger
}

func NewDocumentService(documents store.DocumentRepository, logger *logger.Logger) DocumentService {
	return &documentService{
		documents: documents,
		validator: validators.NewDocumentValidator(),
		logger:    logger,
	}
}

func (s *documentService) List(ctx context.Context, collection models.CollectionName, ownerID string) ([]models.Document, error) {
	if err := validateScope(collection, ownerID); err != nil {
		return nil, err
	}

	docs, err := s.documents.ListByOwner(ctx, collection, ownerID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "documentService.List").
			Str("collection", collection.String()).
			Msg("error listing documents")
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

func (s *documentService) Put(ctx context.Context, collection models.CollectionName, ownerID string, doc models.Document) (models.Document, error) {
	if err := validateScope(collection, ownerID); err != nil {
		return models.Document{}, err
	}

	doc.ID = strings.TrimSpace(doc.ID)
	if doc.OwnerID != "" && doc.OwnerID != ownerID {
		return models.Document{}, ErrUnauthorizedAccessToDifferentUserData
	}
	doc.OwnerID = ownerID

	if len(doc.Data) == 0 {
		doc.Data = json.RawMessage("{}")
	}
	if err := s.validator.Validate(ctx, doc); err != nil {
		return models.Document{}, validationError(err)
	}

	saved, err := s.documents.Upsert(ctx, collection, doc)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "documentService.Put").
			Str("collection", collection.String()).
			Str("id", doc.ID).
			Msg("error storing document")
		return models.Document{}, fmt.Errorf("store document: %w", err)
	}
	return saved, nil
}

func (s *documentService) Delete(ctx context.Context, collection models.CollectionName, ownerID, id string) error {
	if err := validateScope(collection, ownerID); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return ErrValidationNoDocumentID
	}

	if err := s.documents.Delete(ctx, collection, ownerID, id); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "documentService.Delete").
			Str("collection", collection.String()).
			Str("id", id).
			Msg("error deleting document")
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// validationError maps validator sentinels onto the service taxonomy.
func validationError(err error) error {
	if errors.Is(err, validators.ErrInvalidDocumentID) {
		return fmt.Errorf("%w: %w", ErrValidationNoDocumentID, err)
	}
	return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
}

func validateScope(collection models.CollectionName, ownerID string) error {
	if !collection.Valid() {
		return ErrInvalidCollection
	}
	if ownerID == "" {
		return ErrValidationNoOwnerID
	}
	return nil
}
