package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-offline-sync/models"
)

var (
	// ErrAlreadySyncing is returned by the coordinator lock when a push or
	// pull is already in flight.
	ErrAlreadySyncing = errors.New("sync already in progress")

	ErrNoOwner           = errors.New("no authenticated owner")
	ErrUnknownCollection = errors.New("unknown collection")
	ErrForeignDocument   = errors.New("remote document belongs to another owner")
)

// PullReconciliationError reports the collection whose reconciliation
// aborted a pull pass.
type PullReconciliationError struct {
	Collection models.CollectionName
	Err        error
}

func (e *PullReconciliationError) Error() string {
	return fmt.Sprintf("pull %s: %v", e.Collection, e.Err)
}

func (e *PullReconciliationError) Unwrap() error {
	return e.Err
}
