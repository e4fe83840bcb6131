package user

import (
	"errors"
	"net/http"

	"foodcourt-be/internal/utils"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type otpRequest struct {
	Mobile string `json:"mobile"`
}

type verifyRequest struct {
	Mobile string `json:"mobile"`
	OTP    string `json:"otp"`
}

// SendOTP handles POST /api/auth/otp.
func (h *Handler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if !utils.DecodeJSON(w, r, &req) {
		return
	}

	err := h.svc.RequestOTP(r.Context(), req.Mobile)
	switch {
	case errors.Is(err, ErrMobileRequired):
		utils.WriteJSONError(w, "Mobile required", http.StatusBadRequest)
	case errors.Is(err, ErrDispatchFailed):
		utils.WriteJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Failed to send WhatsApp message",
		})
	case err != nil:
		utils.WriteJSONError(w, "DB Error", http.StatusInternalServerError)
	default:
		utils.WriteJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "OTP sent via WhatsApp",
		})
	}
}

// VerifyOTP handles POST /api/auth/verify. The three failure modes stay
// distinguishable for the client.
func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if !utils.DecodeJSON(w, r, &req) {
		return
	}

	u, token, err := h.svc.Verify(r.Context(), req.Mobile, req.OTP)
	switch {
	case errors.Is(err, ErrNotFound):
		utils.WriteJSON(w, http.StatusNotFound, map[string]any{
			"message": "User not found",
		})
	case errors.Is(err, ErrCodeMismatch):
		utils.WriteJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Invalid OTP",
		})
	case errors.Is(err, ErrCodeExpired):
		utils.WriteJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "OTP Expired",
		})
	case err != nil:
		utils.WriteJSONError(w, "DB Error", http.StatusInternalServerError)
	default:
		utils.WriteJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"userId":  u.ID,
			"mobile":  u.Mobile,
			"token":   token,
			"message": "Login successful",
		})
	}
}
