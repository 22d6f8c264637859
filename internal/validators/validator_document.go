package validators

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/MKhiriev/go-offline-sync/models"
)

// Field names accepted by [DocumentValidator].
const (
	FieldID      = "id"
	FieldOwnerID = "owner_id"
	FieldData    = "data"
)

// MaxDocumentIDLength bounds ids accepted from clients.
const MaxDocumentIDLength = 255

type DocumentValidator struct {
}

func NewDocumentValidator() Validator {
	return &DocumentValidator{}
}

func (v *DocumentValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Document:
		return v.validateDocument(ctx, value, fields...)
	case *models.Document:
		return v.validateDocument(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *DocumentValidator) validateDocument(_ context.Context, doc models.Document, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldOwnerID, FieldData}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(doc.ID) == "" {
				return ErrInvalidDocumentID
			}
			if len(doc.ID) > MaxDocumentIDLength {
				return ErrDocumentIDTooLong
			}
		case FieldOwnerID:
			if strings.TrimSpace(doc.OwnerID) == "" {
				return ErrInvalidOwnerID
			}
		case FieldData:
			if !json.Valid(doc.Data) {
				return ErrInvalidPayloadJSON
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
