package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Shravan-Padale771/QuickBackend/internal/model"
)

// AdminService abstracts the administrative pass-through operations.
type AdminService interface {
	ListMessages(ctx context.Context) ([]model.Message, error)
	DeleteMessage(ctx context.Context, id int64) error
}

// AdminHandler provides the shared-secret gated list/delete endpoints.
type AdminHandler struct {
	svc AdminService
}

// NewAdminHandler builds an AdminHandler.
func NewAdminHandler(svc AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// List handles GET /admin/messages.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.svc.ListMessages(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// Delete handles DELETE /admin/messages/{id}.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.svc.DeleteMessage(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
