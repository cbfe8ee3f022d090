// Package keystore persists per-user private keys in an embedded SQLite
// database, separate from the relational store holding the encrypted rows.
package keystore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/reflora/server/internal/model"
)

//go:embed migrations/*.sql
var migrations embed.FS

var _ model.KeyStore = (*Store)(nil)

// Store is a SQLite-backed KeyStore with explicit lifecycle: opened once at
// startup and closed at shutdown.
type Store struct {
	db *sql.DB
}

// Open opens the SQLite database at dsn and applies migrations. The single
// connection serializes concurrent writers, so an upsert followed by a read
// for the same user id observes the written value.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open key database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate key database: %w", err)
	}

	return &Store{db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, "migrations")
}

// Put stores the private key for userID, replacing any previous one.
func (s *Store) Put(ctx context.Context, userID int64, privateKeyPEM string) error {
	query := `INSERT INTO user_keys (user_id, private_key) VALUES (?, ?)
			  ON CONFLICT(user_id) DO UPDATE SET private_key = excluded.private_key`

	if _, err := s.db.ExecContext(ctx, query, userID, privateKeyPEM); err != nil {
		return &model.KeyStoreError{Op: "put", Err: err}
	}

	return nil
}

// Get returns the private key for userID, or model.ErrNotFound when the
// user has no key.
func (s *Store) Get(ctx context.Context, userID int64) (string, error) {
	query := `SELECT private_key FROM user_keys WHERE user_id = ?`

	var privateKeyPEM string
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&privateKeyPEM)
	if errors.Is(err, sql.ErrNoRows) {
		return "", model.ErrNotFound
	}
	if err != nil {
		return "", &model.KeyStoreError{Op: "get", Err: err}
	}

	return privateKeyPEM, nil
}

// Delete removes the private key for userID. Deleting an absent key is a
// no-op success.
func (s *Store) Delete(ctx context.Context, userID int64) error {
	query := `DELETE FROM user_keys WHERE user_id = ?`

	if _, err := s.db.ExecContext(ctx, query, userID); err != nil {
		return &model.KeyStoreError{Op: "delete", Err: err}
	}

	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
