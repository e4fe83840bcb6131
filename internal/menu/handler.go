package menu

import (
	"net/http"

	"foodcourt-be/internal/utils"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// GetMenu handles GET /api/menu.
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.GetMenu(r.Context())
	if err != nil {
		utils.WriteJSONError(w, "Database error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, m)
}
