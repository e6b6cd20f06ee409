package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"livedocs/internal/access"
	"livedocs/internal/document/model"
	"livedocs/internal/document/service"
	"livedocs/middleware"
	"livedocs/pkg/logger"

	"github.com/go-chi/chi/v5"
)

type DocumentHandler struct {
	Docs    *service.DocumentService
	Sharing *service.SharingService
}

func NewDocumentHandler(docs *service.DocumentService, sharing *service.SharingService) *DocumentHandler {
	return &DocumentHandler{Docs: docs, Sharing: sharing}
}

func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)

	doc, err := h.Docs.Create(r.Context(), actor)
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to create document: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)

	docs, err := h.Sharing.ListAccessibleDocuments(r.Context(), actor.Email)
	if err != nil {
		logger.Sugar.Errorf("Error fetching documents: %v", err)
		writeError(w, err)
		return
	}
	if docs == nil {
		docs = []*model.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	actor := actorFrom(r)

	doc, err := h.Docs.Get(r.Context(), docID, actor.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) RenameDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	var req model.RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	doc, err := h.Docs.Rename(r.Context(), docID, req.Title)
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to rename doc %s: %v", docID, err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	if err := h.Docs.Delete(r.Context(), docID); err != nil {
		logger.Sugar.Errorf("Handler: Failed to delete document %s: %v", docID, err)
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DocumentHandler) UpdateAccess(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	var req model.UpdateAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	role, err := access.ParseRole(req.Role)
	if err != nil {
		writeError(w, err)
		return
	}

	actor := actorFrom(r)
	doc, err := h.Sharing.GrantOrUpdateAccess(r.Context(), docID, req.Email, role, actor)
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to update access on doc %s: %v", docID, err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) RemoveAccess(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	email := r.URL.Query().Get("email")
	if email == "" {
		http.Error(w, "Missing email parameter", http.StatusBadRequest)
		return
	}

	doc, err := h.Sharing.RemoveAccess(r.Context(), docID, email)
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to remove access on doc %s: %v", docID, err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	actor := actorFrom(r)

	emails, err := h.Docs.ListUsers(r.Context(), docID, actor.Email, r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, err)
		return
	}
	if emails == nil {
		emails = []string{}
	}
	writeJSON(w, http.StatusOK, emails)
}

func actorFrom(r *http.Request) model.UserInfo {
	id, _ := middleware.IdentityFromContext(r.Context())
	return model.UserInfo{ID: id.UserID, Name: id.Name, Email: id.Email, Avatar: id.Avatar}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrAccessDenied), errors.Is(err, model.ErrSelfRemovalForbidden):
		status = http.StatusForbidden
	case errors.Is(err, access.ErrInvalidRole):
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}
