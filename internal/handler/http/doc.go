// Package http implements the REST surface of the document server.
//
// Every route under /api/collections/{collection}/documents is owner scoped:
// the owner comes from the verified bearer token, never from the request
// body. Document writes carry a HashSHA256 header that is checked against
// the shared HMAC key when one is configured.
package http
