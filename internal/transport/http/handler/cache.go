package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vitalsign-api/internal/application/cache"
	"github.com/vitalsign-api/internal/domain"
)

// CacheHandler exposes the shared KV store as an ad-hoc cache.
type CacheHandler struct {
	svc cache.Service
}

func NewCacheHandler(svc cache.Service) *CacheHandler {
	return &CacheHandler{svc: svc}
}

type saveItemRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// GetItem serves the configured cache key. GET /cache/item
func (h *CacheHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	value, found, err := h.svc.GetItem(r.Context())
	if err != nil {
		slog.Error("cache read failed", "op", "GetItem", "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch data")
		return
	}
	env := CacheItemEnvelope{}
	if found {
		env.Result = &value
	}
	writeJSON(w, http.StatusOK, env)
}

// SaveItem writes through to the KV store. POST /cache/item
func (h *CacheHandler) SaveItem(w http.ResponseWriter, r *http.Request) {
	var req saveItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.SaveItem(r.Context(), req.Key, req.Value); err != nil {
		if errors.Is(err, domain.ErrBadRequest) {
			writeError(w, http.StatusBadRequest, "key is required")
			return
		}
		slog.Error("cache write failed", "op", "SaveItem", "key", req.Key, "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to save data")
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Data saved successfully"})
}
