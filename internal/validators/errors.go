package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidDocumentID  = errors.New("invalid document id")
	ErrDocumentIDTooLong  = errors.New("document id is too long")
	ErrInvalidOwnerID     = errors.New("invalid owner id")
	ErrInvalidPayloadJSON = errors.New("document data is not valid JSON")
)
