// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"time"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const traceIDHeader = "X-Trace-ID"

// withTraceID puts a child logger carrying the request trace id into the
// request context. An incoming X-Trace-ID is reused, otherwise a UUID is
// generated. The id is echoed in the response header.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(l.WithContext(r.Context())))
	})
}

// withLogging writes one access log line per request. Document routes also
// log the collection and, once authenticated, the owner.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		uri := r.RequestURI
		method := r.Method

		lw := &responseWriter{ResponseWriter: w}
		// the auth middleware stores the owner on a derived request; it
		// reports back through this holder
		scope := &requestScope{}
		next.ServeHTTP(lw, r.WithContext(withRequestScope(r.Context(), scope)))

		event := logger.FromRequest(r).Info().
			Str("uri", uri).
			Str("method", method).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size)
		if scope.collection != "" {
			event = event.Str("collection", scope.collection)
		}
		if scope.ownerID != "" {
			event = event.Str("owner_id", scope.ownerID)
		}
		event.Send()
	})
}

// responseWriter records the status code and body size of a response.
// WriteHeader is forwarded to the underlying writer at most once.
type responseWriter struct {
	http.ResponseWriter

	status      int
	wroteHeader bool
	size        int
}

func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// methodNotAllowed answers 404 for a known path requested with an
// unregistered method, so that route existence is not revealed.
func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	logger.FromRequest(r).Debug().
		Str("func", "*Handler.methodNotAllowed").
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("method is not registered for route")
	http.NotFound(w, r)
}

type requestScopeKey struct{}

type requestScope struct {
	collection string
	ownerID    string
}

func withRequestScope(ctx context.Context, scope *requestScope) context.Context {
	return context.WithValue(ctx, requestScopeKey{}, scope)
}

// scopeFromRequest reports the collection and owner of an authenticated
// document request to withLogging.
func scopeFromRequest(r *http.Request) {
	scope, ok := r.Context().Value(requestScopeKey{}).(*requestScope)
	if !ok {
		return
	}
	scope.collection = chi.URLParam(r, "collection")
	if ownerID, ok := utils.GetOwnerIDFromContext(r.Context()); ok {
		scope.ownerID = ownerID
	}
}
