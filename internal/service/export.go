package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/reflora/server/internal/logger"
	"github.com/reflora/server/internal/model"
)

// Export produces portability exports: a snapshot of a user's decrypted
// profile written to object storage.
type Export struct {
	users   *User
	storage model.Storage
	logger  *logger.Logger
}

// NewExport creates a new Export service.
func NewExport(users *User, storage model.Storage, logger *logger.Logger) *Export {
	return &Export{
		users:   users,
		storage: storage,
		logger:  logger,
	}
}

type exportDocument struct {
	ExportedAt time.Time      `json:"exported_at"`
	User       model.UserView `json:"user"`
}

// ExportUser reconstructs the user's plaintext profile, uploads it as a
// JSON document and returns the object key.
func (s *Export) ExportUser(ctx context.Context, userID int64) (string, error) {
	view, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}

	doc := exportDocument{
		ExportedAt: time.Now().UTC(),
		User:       view,
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal export document: %w", err)
	}

	key := fmt.Sprintf("exports/user-%d-%s.json", userID, uuid.NewString())
	if err := s.storage.Upload(ctx, key, bytes.NewReader(body)); err != nil {
		return "", fmt.Errorf("failed to upload export: %w", err)
	}

	s.logger.Info("Export service: user export created", "user_id", userID, "key", key)

	return key, nil
}

// DownloadExport streams a previously created export document.
func (s *Export) DownloadExport(ctx context.Context, key string) (io.ReadCloser, error) {
	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to check export: %w", err)
	}
	if !exists {
		return nil, model.ErrNotFound
	}

	reader, err := s.storage.Download(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to download export: %w", err)
	}

	return reader, nil
}

// DeleteExport removes an export document.
func (s *Export) DeleteExport(ctx context.Context, key string) error {
	if err := s.storage.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete export: %w", err)
	}

	return nil
}
