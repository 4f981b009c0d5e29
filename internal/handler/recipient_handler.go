package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/contactware/backend/internal/model"
	"github.com/contactware/backend/internal/repository"
	"github.com/contactware/backend/internal/service"
)

// RecipientHandler serves the admin CRUD endpoints for contact recipients.
type RecipientHandler struct {
	svc service.RecipientService
}

func NewRecipientHandler(svc service.RecipientService) *RecipientHandler {
	return &RecipientHandler{svc: svc}
}

// List handles GET /api/admin/pages/{id}/recipients.
func (h *RecipientHandler) List(w http.ResponseWriter, r *http.Request) {
	recipients, err := h.svc.ListByPage(r.Context(), r.PathValue("id"))
	if err != nil {
		slog.Error("recipient list failed", "error", err, "page_id", r.PathValue("id"))
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	if recipients == nil {
		recipients = []*model.ContactRecipient{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"recipients": recipients})
}

// Get handles GET /api/admin/recipients/{id}.
func (h *RecipientHandler) Get(w http.ResponseWriter, r *http.Request) {
	recipient, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		slog.Error("recipient get failed", "error", err, "recipient_id", r.PathValue("id"))
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, recipient)
}

// Create handles POST /api/admin/pages/{id}/recipients.
func (h *RecipientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var recipient model.ContactRecipient
	if err := json.NewDecoder(r.Body).Decode(&recipient); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	recipient.PageID = r.PathValue("id")

	if err := h.svc.Create(r.Context(), &recipient); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &recipient)
}

// Update handles PUT /api/admin/recipients/{id}.
func (h *RecipientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var recipient model.ContactRecipient
	if err := json.NewDecoder(r.Body).Decode(&recipient); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	recipient.ID = r.PathValue("id")

	if err := h.svc.Update(r.Context(), &recipient); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &recipient)
}

// Delete handles DELETE /api/admin/recipients/{id}.
func (h *RecipientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
