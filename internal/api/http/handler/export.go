package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/reflora/server/internal/logger"
	"github.com/reflora/server/internal/model"
)

// exportService produces and serves portability exports.
type exportService interface {
	ExportUser(ctx context.Context, userID int64) (string, error)
	DownloadExport(ctx context.Context, key string) (io.ReadCloser, error)
	DeleteExport(ctx context.Context, key string) error
}

// Export handles data portability requests for the authenticated user.
type Export struct {
	service        exportService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewExport creates an Export handler.
func NewExport(service exportService, contextManager model.ContextManager, l *logger.Logger) *Export {
	return &Export{
		service:        service,
		contextManager: contextManager,
		logger:         l,
	}
}

type createExportResponse struct {
	Key string `json:"key"`
}

// ownsExportKey reports whether the key was issued for userID. Export keys
// embed the owner id, so a caller can only reach their own documents; a
// foreign key reads as absent, never as forbidden.
func ownsExportKey(userID int64, key string) bool {
	return strings.HasPrefix(key, fmt.Sprintf("exports/user-%d-", userID))
}

// Create builds a portability export of the calling user's decrypted data
// and returns the storage key it was uploaded under.
func (h *Export) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	key, err := h.service.ExportUser(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, createExportResponse{Key: key})
}

// Download streams a previously created export document back to its owner.
func (h *Export) Download(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	key := r.PathValue("key")
	if key == "" {
		writeError(w, h.logger, model.NewValidationError("key", "must not be empty"))
		return
	}
	if !ownsExportKey(userID, key) {
		writeError(w, h.logger, model.ErrNotFound)
		return
	}

	body, err := h.service.DownloadExport(r.Context(), key)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		h.logger.Error("failed to stream export", "key", key, "error", err)
	}
}

// Delete removes an export document owned by the caller.
func (h *Export) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	key := r.PathValue("key")
	if key == "" {
		writeError(w, h.logger, model.NewValidationError("key", "must not be empty"))
		return
	}
	if !ownsExportKey(userID, key) {
		writeError(w, h.logger, model.ErrNotFound)
		return
	}

	if err := h.service.DeleteExport(r.Context(), key); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
