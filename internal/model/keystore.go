package model

import "context"

// KeyStore persists one PEM-encoded private key per user id in a durable
// embedded store. Get returns ErrNotFound when no key exists for the id;
// callers treat absence as "skip this user", not as a failure. Put is an
// idempotent upsert and Delete of an absent key is a no-op success.
type KeyStore interface {
	Put(ctx context.Context, userID int64, privateKeyPEM string) error
	Get(ctx context.Context, userID int64) (string, error)
	Delete(ctx context.Context, userID int64) error
	Close() error
}
