package handler

import (
	"net/http"

	"livedocs/internal/document/model"
	"livedocs/internal/document/service"
	"livedocs/pkg/logger"

	"github.com/go-chi/chi/v5"
)

type NotificationHandler struct {
	Service *service.NotificationService
}

func NewNotificationHandler(s *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: s}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)

	notifications, err := h.Service.List(r.Context(), actor.Email)
	if err != nil {
		logger.Sugar.Errorf("Error fetching notifications: %v", err)
		writeError(w, err)
		return
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}
	writeJSON(w, http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	actor := actorFrom(r)

	if err := h.Service.MarkRead(r.Context(), id, actor.Email); err != nil {
		logger.Sugar.Errorf("Handler: Failed to mark notification %s read: %v", id, err)
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
