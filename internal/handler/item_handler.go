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

// ItemHandler serves the admin CRUD endpoints for contact info components
// and the items inside them.
type ItemHandler struct {
	svc service.ItemService
}

func NewItemHandler(svc service.ItemService) *ItemHandler {
	return &ItemHandler{svc: svc}
}

// ListComponents handles GET /api/admin/pages/{id}/components.
func (h *ItemHandler) ListComponents(w http.ResponseWriter, r *http.Request) {
	components, err := h.svc.ListComponentsByPage(r.Context(), r.PathValue("id"))
	if err != nil {
		slog.Error("component list failed", "error", err, "page_id", r.PathValue("id"))
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	if components == nil {
		components = []*model.ContactComponent{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"components": components})
}

// CreateComponent handles POST /api/admin/pages/{id}/components.
func (h *ItemHandler) CreateComponent(w http.ResponseWriter, r *http.Request) {
	var component model.ContactComponent
	if err := json.NewDecoder(r.Body).Decode(&component); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	component.PageID = r.PathValue("id")

	if err := h.svc.CreateComponent(r.Context(), &component); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &component)
}

// UpdateComponent handles PUT /api/admin/components/{id}.
func (h *ItemHandler) UpdateComponent(w http.ResponseWriter, r *http.Request) {
	var component model.ContactComponent
	if err := json.NewDecoder(r.Body).Decode(&component); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	component.ID = r.PathValue("id")

	if err := h.svc.UpdateComponent(r.Context(), &component); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &component)
}

// DeleteComponent handles DELETE /api/admin/components/{id}.
func (h *ItemHandler) DeleteComponent(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteComponent(r.Context(), r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListItems handles GET /api/admin/components/{id}/items.
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListItems(r.Context(), r.PathValue("id"))
	if err != nil {
		slog.Error("item list failed", "error", err, "component_id", r.PathValue("id"))
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	if items == nil {
		items = []*model.ContactItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// GetItem handles GET /api/admin/items/{id}.
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.GetItem(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		slog.Error("item get failed", "error", err, "item_id", r.PathValue("id"))
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// CreateItem handles POST /api/admin/components/{id}/items.
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var item model.ContactItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	item.ComponentID = r.PathValue("id")

	if err := h.svc.CreateItem(r.Context(), &item); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &item)
}

// UpdateItem handles PUT /api/admin/items/{id}.
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var item model.ContactItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	item.ID = r.PathValue("id")

	if err := h.svc.UpdateItem(r.Context(), &item); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &item)
}

// DeleteItem handles DELETE /api/admin/items/{id}.
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteItem(r.Context(), r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
