package adapter

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-offline-sync/models"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
	ErrServiceUnavailable  = errors.New("service unavailable")

	ErrEmptyAddress = errors.New("empty address")
)

// RemoteWriteError reports a failed upsert of one document.
type RemoteWriteError struct {
	Collection models.CollectionName
	ID         string
	Err        error
}

func (e *RemoteWriteError) Error() string {
	return fmt.Sprintf("remote write %s/%s: %v", e.Collection, e.ID, e.Err)
}

func (e *RemoteWriteError) Unwrap() error {
	return e.Err
}

// RemoteDeleteError reports a failed delete of one document.
type RemoteDeleteError struct {
	Collection models.CollectionName
	ID         string
	Err        error
}

func (e *RemoteDeleteError) Error() string {
	return fmt.Sprintf("remote delete %s/%s: %v", e.Collection, e.ID, e.Err)
}

func (e *RemoteDeleteError) Unwrap() error {
	return e.Err
}
