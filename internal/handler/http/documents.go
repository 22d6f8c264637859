// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-offline-sync/internal/app"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/service"
	"github.com/MKhiriev/go-offline-sync/internal/utils"
	"github.com/MKhiriev/go-offline-sync/models"
	"github.com/go-chi/chi/v5"
)

// listDocuments answers with the full snapshot of one collection for the
// authenticated owner.
func (h *Handler) listDocuments(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	collection, ownerID, ok := h.documentScope(w, r)
	if !ok {
		return
	}

	docs, err := h.services.DocumentService.List(r.Context(), collection, ownerID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listDocuments").Msg("error listing documents")
		writeError(w, err)
		return
	}

	if _, err = utils.WriteJSON(w, models.DocumentsResponse{
		Collection: collection,
		Documents:  docs,
		Length:     len(docs),
	}, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.listDocuments").Msg("error writing response")
	}
}

// putDocument creates or replaces one document. The id comes from the path;
// a body id, when present, must match it.
func (h *Handler) putDocument(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	collection, ownerID, ok := h.documentScope(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var doc models.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		log.Err(err).Str("func", "*Handler.putDocument").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}
	if doc.ID != "" && doc.ID != id {
		log.Error().Str("func", "*Handler.putDocument").
			Str("path_id", id).
			Str("body_id", doc.ID).
			Msg(ErrDocumentIDMismatch.Error())
		http.Error(w, ErrDocumentIDMismatch.Error(), http.StatusBadRequest)
		return
	}
	doc.ID = id

	saved, err := h.services.DocumentService.Put(r.Context(), collection, ownerID, doc)
	if err != nil {
		log.Err(err).Str("func", "*Handler.putDocument").Str("id", id).Msg("error storing document")
		writeError(w, err)
		return
	}

	if _, err = utils.WriteJSON(w, saved, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.putDocument").Msg("error writing response")
	}
}

// deleteDocument removes one document. Deleting a missing document succeeds.
func (h *Handler) deleteDocument(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	collection, ownerID, ok := h.documentScope(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.services.DocumentService.Delete(r.Context(), collection, ownerID, id); err != nil {
		log.Err(err).Str("func", "*Handler.deleteDocument").Str("id", id).Msg("error deleting document")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// documentScope resolves the collection from the path and the owner from the
// verified token. An owner_id query parameter naming someone else is refused.
func (h *Handler) documentScope(w http.ResponseWriter, r *http.Request) (models.CollectionName, string, bool) {
	log := logger.FromRequest(r)

	collection := models.CollectionName(chi.URLParam(r, "collection"))
	if !collection.Valid() {
		log.Error().Str("func", "*Handler.documentScope").Str("collection", collection.String()).Msg("unknown collection")
		writeError(w, service.ErrInvalidCollection)
		return "", "", false
	}

	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		log.Error().Str("func", "*Handler.documentScope").Msg("no owner in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return "", "", false
	}

	if requested := r.URL.Query().Get("owner_id"); requested != "" && requested != ownerID {
		log.Error().Str("func", "*Handler.documentScope").
			Str("owner_id", ownerID).
			Str("requested_owner_id", requested).
			Msg("owner mismatch")
		err := service.ErrUnauthorizedAccessToDifferentUserData
		writeError(w, err)
		return "", "", false
	}

	return collection, ownerID, true
}
