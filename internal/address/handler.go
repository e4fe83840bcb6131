package address

import (
	"net/http"

	"foodcourt-be/internal/utils"

	"github.com/gorilla/mux"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /api/addresses/{userId}.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.ToUint(mux.Vars(r)["userId"])
	if err != nil {
		utils.WriteJSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	book, err := h.svc.List(r.Context(), userID)
	if err != nil {
		utils.WriteJSONError(w, "Database error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, book)
}
