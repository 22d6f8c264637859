package client

import "errors"

// ErrInvalidToken is returned by NewApp when the configured bearer token has
// no readable owner.
var ErrInvalidToken = errors.New("invalid client token")
