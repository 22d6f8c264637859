package service

import (
	"context"

	"github.com/MKhiriev/go-offline-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// DocumentService is the owner-scoped remote document store served over HTTP.
type DocumentService interface {
	// List returns every document of ownerID in collection.
	List(ctx context.Context, collection models.CollectionName, ownerID string) ([]models.Document, error)
	// Put creates or replaces doc and returns the stored version.
	Put(ctx context.Context, collection models.CollectionName, ownerID string, doc models.Document) (models.Document, error)
	// Delete removes the document if present; deleting an absent id succeeds.
	Delete(ctx context.Context, collection models.CollectionName, ownerID, id string) error
}

type AuthService interface {
	CreateToken(ctx context.Context, ownerID string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
