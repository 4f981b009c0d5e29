package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/contactware/backend/internal/model"
	"github.com/contactware/backend/internal/repository"
	"github.com/contactware/backend/internal/service"
)

// MessageHandler serves the admin endpoints for received messages.
type MessageHandler struct {
	svc service.MessageService
}

func NewMessageHandler(svc service.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// List handles GET /api/admin/pages/{id}/messages.
// Supports status (all|unread|read), limit and offset query parameters.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.svc.List(r.Context(), r.PathValue("id"), listOptions(r))
	if err != nil {
		slog.Error("message list failed", "error", err, "page_id", r.PathValue("id"))
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	if messages == nil {
		messages = []*model.ContactMessage{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

// Get handles GET /api/admin/messages/{id}. Viewing a message marks it read.
func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	msg, err := h.svc.View(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		slog.Error("message view failed", "error", err, "message_id", r.PathValue("id"))
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// Delete handles DELETE /api/admin/messages/{id}.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
