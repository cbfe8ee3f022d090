package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// EmailDigester produces a deterministic keyed digest of an email address.
// The digest is stored next to the ciphertext and used only for the
// create-time uniqueness check: it is not reversible, but equal emails map
// to equal digests, which leaks equality patterns to the relational store.
// Login deliberately does not use it and keeps the linear decrypt-and-scan.
type EmailDigester struct {
	secret []byte
}

// NewEmailDigester creates a digester keyed with the given server secret.
func NewEmailDigester(secret string) *EmailDigester {
	return &EmailDigester{secret: []byte(secret)}
}

// Digest returns the hex HMAC-SHA256 of the normalized email.
func (d *EmailDigester) Digest(email string) string {
	mac := hmac.New(sha256.New, d.secret)
	mac.Write([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(mac.Sum(nil))
}
