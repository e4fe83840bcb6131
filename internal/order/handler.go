package order

import (
	"errors"
	"net/http"
	"strconv"

	"foodcourt-be/internal/utils"

	"github.com/gorilla/mux"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Place handles POST /api/orders.
func (h *Handler) Place(w http.ResponseWriter, r *http.Request) {
	var input PlaceInput
	if !utils.DecodeJSON(w, r, &input) {
		return
	}

	order, err := h.svc.Place(r.Context(), input)
	switch {
	case errors.Is(err, ErrNoAddress),
		errors.Is(err, ErrMissingContact),
		errors.Is(err, ErrEmptyCart):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrUnauthorized):
		utils.WriteJSONError(w, err.Error(), http.StatusUnauthorized)
	case err != nil:
		utils.WriteJSONError(w, "Database error", http.StatusInternalServerError)
	default:
		utils.WriteJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"orderId": order.ID,
		})
	}
}

// History handles GET /api/orders/{userId}?limit=N.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.ToUint(mux.Vars(r)["userId"])
	if err != nil {
		utils.WriteJSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	summaries, err := h.svc.History(r.Context(), userID, limit)
	if err != nil {
		utils.WriteJSONError(w, "Database error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, summaries)
}
