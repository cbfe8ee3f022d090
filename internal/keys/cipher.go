package keys

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/reflora/server/internal/model"
)

// MaxPlaintextLen is the RSA-OAEP payload bound for a 2048-bit modulus with
// SHA-256: k - 2*hLen - 2 bytes. Longer PII fields must be rejected by
// validation upstream, never truncated.
const MaxPlaintextLen = KeySize/8 - 2*sha256.Size - 2

// Encrypt encrypts the UTF-8 bytes of plaintext under the given public key
// using OAEP with SHA-256 for both the hash and MGF1, no label. The
// ciphertext is hex-encoded for storage in text columns.
func Encrypt(publicPEM, plaintext string) (string, error) {
	if len(plaintext) > MaxPlaintextLen {
		return "", &model.EncryptionError{
			Err: fmt.Errorf("plaintext is %d bytes, OAEP bound is %d", len(plaintext), MaxPlaintextLen),
		}
	}

	key, err := parsePublicKey(publicPEM)
	if err != nil {
		return "", &model.EncryptionError{Err: err}
	}

	ciphertext, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, key, []byte(plaintext), nil)
	if err != nil {
		return "", &model.EncryptionError{Err: err}
	}

	return hex.EncodeToString(ciphertext), nil
}

// Decrypt decodes a hex ciphertext and decrypts it with the matching OAEP
// parameters. Malformed encoding, mismatched parameters or a ciphertext
// produced under a different keypair all surface as a DecryptionError,
// which bulk callers recover from per record.
func Decrypt(privatePEM, ciphertextHex string) (string, error) {
	key, err := parsePrivateKey(privatePEM)
	if err != nil {
		return "", &model.DecryptionError{Err: err}
	}

	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return "", &model.DecryptionError{Err: fmt.Errorf("failed to decode ciphertext: %w", err)}
	}

	plaintext, err := rsa.DecryptOAEP(sha256.New(), nil, key, ciphertext, nil)
	if err != nil {
		return "", &model.DecryptionError{Err: err}
	}

	return string(plaintext), nil
}
