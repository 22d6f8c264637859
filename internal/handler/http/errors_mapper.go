package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-offline-sync/internal/app"
	"github.com/MKhiriev/go-offline-sync/internal/service"
	"github.com/MKhiriev/go-offline-sync/internal/store"
)

type errorResponse struct {
	status  int
	message string
}

var errorResponseMap = map[error]errorResponse{
	service.ErrInvalidDataProvided:                   {http.StatusBadRequest, app.MsgInvalidDataProvided},
	service.ErrTokenIsExpiredOrInvalid:               {http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	service.ErrInvalidCollection:                     {http.StatusNotFound, app.MsgUnknownCollection},
	service.ErrValidationNoOwnerID:                   {http.StatusUnauthorized, app.MsgNoOwnerIDProvided},
	service.ErrValidationNoDocumentID:                {http.StatusBadRequest, app.MsgNoDocumentIDProvided},
	service.ErrUnauthorizedAccessToDifferentUserData: {http.StatusForbidden, app.MsgAccessDenied},
	service.ErrVersionIsNotSpecified:                 {http.StatusBadRequest, app.MsgVersionIsNotSpecified},

	store.ErrDocumentOwnerMismatch: {http.StatusForbidden, app.MsgAccessDenied},

	store.ErrBuildingSQLQuery:     {http.StatusInternalServerError, app.MsgInternalServerError},
	store.ErrExecutingQuery:       {http.StatusInternalServerError, app.MsgInternalServerError},
	store.ErrBeginningTransaction: {http.StatusInternalServerError, app.MsgInternalServerError},
	store.ErrCommitingTransaction: {http.StatusInternalServerError, app.MsgInternalServerError},
	store.ErrExecutingStatement:   {http.StatusInternalServerError, app.MsgInternalServerError},
	store.ErrScanningRow:          {http.StatusInternalServerError, app.MsgInternalServerError},
	store.ErrScanningRows:         {http.StatusInternalServerError, app.MsgInternalServerError},
}

// responseFromError resolves err against the sentinel table. Ownership
// sentinels are checked first since they may wrap validation errors.
func responseFromError(err error) errorResponse {
	for _, target := range []error{store.ErrDocumentOwnerMismatch, service.ErrUnauthorizedAccessToDifferentUserData} {
		if errors.Is(err, target) {
			return errorResponseMap[target]
		}
	}
	for target, resp := range errorResponseMap {
		if errors.Is(err, target) {
			return resp
		}
	}
	return errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}
}

func statusFromError(err error) int {
	return responseFromError(err).status
}

// writeError answers with the public message mapped from err.
func writeError(w http.ResponseWriter, err error) {
	resp := responseFromError(err)
	http.Error(w, resp.message, resp.status)
}
