package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vitalsign-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ResetEnvelope wraps password-reset responses.
type ResetEnvelope struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ExistsEnvelope wraps user-existence responses. Exists is always present so
// clients can degrade to false on server errors.
type ExistsEnvelope struct {
	Exists bool   `json:"exists"`
	Error  string `json:"error,omitempty"`
}

// CacheItemEnvelope wraps cache reads. Result is null when the key is absent.
type CacheItemEnvelope struct {
	Result *string `json:"result"`
	Error  string  `json:"error,omitempty"`
}

// UserEnvelope wraps a user profile plus its completion score.
type UserEnvelope struct {
	User              *domain.User `json:"user"`
	ProfileCompletion int          `json:"profile_completion"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// httpError maps domain sentinel errors onto status codes with short
// human-readable messages. Anything unrecognised is logged and reported as a
// generic internal error so infrastructure details never leak.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, "invalid request")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict")
	default:
		slog.Error("request failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
