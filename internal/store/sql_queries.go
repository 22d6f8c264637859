package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-offline-sync/models"
)

const documentsTable = "documents"

var postgres = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func buildListDocumentsQuery(collection models.CollectionName, ownerID string) (string, []any, error) {
	query, args, err := postgres.
		Select("id", "owner_id", "data", "updated_at").
		From(documentsTable).
		Where(sq.Eq{
			"collection": string(collection),
			"owner_id":   ownerID,
		}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildUpsertDocumentQuery never moves a document between owners: on an id
// owned by someone else the conflict branch updates nothing and no row is
// returned.
func buildUpsertDocumentQuery(collection models.CollectionName, doc models.Document) (string, []any, error) {
	query, args, err := postgres.
		Insert(documentsTable).
		Columns("collection", "id", "owner_id", "data", "updated_at").
		Values(string(collection), doc.ID, doc.OwnerID, []byte(doc.Data), sq.Expr("NOW()")).
		Suffix(`ON CONFLICT (collection, id) DO UPDATE SET
			data       = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at
		WHERE documents.owner_id = EXCLUDED.owner_id
		RETURNING id, owner_id, data, updated_at`).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteDocumentQuery(collection models.CollectionName, ownerID, id string) (string, []any, error) {
	query, args, err := postgres.
		Delete(documentsTable).
		Where(sq.Eq{
			"collection": string(collection),
			"id":         id,
			"owner_id":   ownerID,
		}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
