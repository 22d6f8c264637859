package service

import "errors"

var (
	ErrInvalidDataProvided   = errors.New("invalid data provided")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrInvalidCollection                     = errors.New("invalid collection")
	ErrValidationNoOwnerID                   = errors.New("no owner ID was given")
	ErrValidationNoDocumentID                = errors.New("no document ID was given")
	ErrUnauthorizedAccessToDifferentUserData = errors.New("unauthorized access to different user data")
)
