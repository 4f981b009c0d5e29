package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/contactware/backend/internal/model"
	"github.com/contactware/backend/internal/repository"
	"github.com/contactware/backend/internal/service"
)

// respondServiceError maps service-layer errors onto the admin JSON API.
func respondServiceError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation_failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error")
	}
}

// listOptions parses status/limit/offset query parameters with the same
// bounds the admin UI uses.
func listOptions(r *http.Request) model.MessageListOptions {
	opts := model.MessageListOptions{
		Status: r.URL.Query().Get("status"),
		Limit:  20,
		Offset: 0,
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 100 {
			opts.Limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			opts.Offset = n
		}
	}
	return opts
}
