package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/MKhiriev/go-offline-sync/internal/utils"
)

// verifyHash checks the HashSHA256 header against the HMAC of the exact
// request body. Without a configured hasher every request passes.
func (h *Handler) verifyHash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.hasher == nil {
			next.ServeHTTP(w, r)
			return
		}

		h.logger.Debug().Str("func", "*Handler.verifyHash").Msg("checking hash begins")

		hashFromRequest := r.Header.Get(utils.HashHeader)
		if hashFromRequest == "" {
			h.logger.Error().Str("func", "*Handler.verifyHash").Msg(ErrMissingHash.Error())
			http.Error(w, ErrMissingHash.Error(), http.StatusBadRequest)
			return
		}

		// read bytes from body
		body, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Err(err).Str("func", "*Handler.verifyHash").Msg("failed to read request body")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		if !h.hasher.Verify(body, hashFromRequest) {
			h.logger.Error().Str("func", "*Handler.verifyHash").
				Str("hash from request", hashFromRequest).
				Str("hashed body", h.hasher.SumHex(body)).
				Msg("hashes are not equal")
			http.Error(w, ErrIntegrityCheck.Error(), http.StatusBadRequest)
			return
		}

		h.logger.Debug().Str("func", "*Handler.verifyHash").
			Str("hash from request", hashFromRequest).
			Msg("hashes are equal")

		next.ServeHTTP(w, r)
	})
}
