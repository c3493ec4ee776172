package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vitalsign-api/internal/application/credreset"
	"github.com/vitalsign-api/internal/application/directory"
	"github.com/vitalsign-api/internal/domain"
)

// AuthHandler handles the credential-recovery endpoints.
type AuthHandler struct {
	reset credreset.Service
	dir   directory.Service
}

func NewAuthHandler(reset credreset.Service, dir directory.Service) *AuthHandler {
	return &AuthHandler{reset: reset, dir: dir}
}

type resetPasswordRequest struct {
	UserID      string `json:"userId"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

type requestResetRequest struct {
	UserID string `json:"userId"`
}

// ResetPassword exchanges a verification code for a credential update.
// POST /auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || req.Code == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "userId, code and newPassword are required")
		return
	}

	err := h.reset.ResetPassword(r.Context(), req.UserID, req.Code, req.NewPassword)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, ResetEnvelope{Success: true, Message: "Password updated successfully"})
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, "userId, code and newPassword are required")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Invalid or expired verification code")
	case errors.Is(err, domain.ErrUpdateFailed):
		slog.Error("password reset rejected", "op", "ResetPassword", "user_id", req.UserID, "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to update password")
	default:
		slog.Error("password reset failed", "op", "ResetPassword", "user_id", req.UserID, "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// RequestReset issues and delivers a fresh verification code.
// POST /auth/request-reset
func (h *AuthHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	var req requestResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	if err := h.reset.RequestReset(r.Context(), req.UserID); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Verification code sent"})
}

// VerifyExists reports whether a user id is known.
// GET /auth/verify?userId=...
func (h *AuthHandler) VerifyExists(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	u, err := h.dir.LookupByID(r.Context(), userID)
	if err != nil {
		slog.Error("existence check failed", "op", "VerifyExists", "user_id", userID, "err", err)
		writeJSON(w, http.StatusInternalServerError, ExistsEnvelope{Exists: false, Error: "Internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, ExistsEnvelope{Exists: u != nil})
}
