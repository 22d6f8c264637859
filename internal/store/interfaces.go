package store

import (
	"context"

	"github.com/MKhiriev/go-offline-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// DocumentRepository is the server-side document store. All operations are
// scoped by the owner carried in the request token.
type DocumentRepository interface {
	ListByOwner(ctx context.Context, collection models.CollectionName, ownerID string) ([]models.Document, error)
	Upsert(ctx context.Context, collection models.CollectionName, doc models.Document) (models.Document, error)
	Delete(ctx context.Context, collection models.CollectionName, ownerID, id string) error
}

// ErrorClassificator decides whether a failed database operation may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
