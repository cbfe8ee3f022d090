package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by stores when the requested row or key is absent.
	// Absence is a normal outcome for lookups, not an internal failure.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken is returned when a user is provisioned with an email
	// that already belongs to another user.
	ErrEmailTaken = errors.New("email already taken")

	// ErrInvalidCredentials is returned when a login password check fails.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError describes malformed caller input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// EncryptionError wraps a failure to encrypt a PII field. Encryption
// failures abort the whole provisioning request.
type EncryptionError struct {
	Err error
}

func (e *EncryptionError) Error() string {
	return fmt.Sprintf("encryption failed: %v", e.Err)
}

func (e *EncryptionError) Unwrap() error {
	return e.Err
}

// DecryptionError wraps a failure to decrypt a stored ciphertext: malformed
// encoding, mismatched parameters or a wrong private key. Callers doing bulk
// reconstruction recover from it per record instead of failing the batch.
type DecryptionError struct {
	Err error
}

func (e *DecryptionError) Error() string {
	return fmt.Sprintf("decryption failed: %v", e.Err)
}

func (e *DecryptionError) Unwrap() error {
	return e.Err
}

// KeyStoreError wraps a key store infrastructure failure (storage
// unavailable, write rejected). It is distinct from ErrNotFound.
type KeyStoreError struct {
	Op  string
	Err error
}

func (e *KeyStoreError) Error() string {
	return fmt.Sprintf("key store %s: %v", e.Op, e.Err)
}

func (e *KeyStoreError) Unwrap() error {
	return e.Err
}

// IsDecryptionError reports whether err is classified as a DecryptionError.
func IsDecryptionError(err error) bool {
	var de *DecryptionError
	return errors.As(err, &de)
}
