// Package keys implements per-user RSA key generation and the OAEP cipher
// used to protect PII fields at rest.
package keys

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

const (
	// KeySize is the RSA modulus size in bits for every user keypair.
	KeySize = 2048

	privateKeyType = "PRIVATE KEY"
	publicKeyType  = "PUBLIC KEY"
)

// GenerateKeyPair produces a fresh RSA-2048 keypair and returns the private
// key as an unencrypted PKCS#8 PEM block and the public key as a
// SubjectPublicKeyInfo PEM block. It only fails when the secure random
// source or the marshalling of a freshly generated key fails.
func GenerateKeyPair() (privatePEM string, publicPEM string, err error) {
	key, err := rsa.GenerateKey(rand.Reader, KeySize)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate rsa key: %w", err)
	}

	privateDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal private key: %w", err)
	}

	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal public key: %w", err)
	}

	privatePEM = string(pem.EncodeToMemory(&pem.Block{Type: privateKeyType, Bytes: privateDER}))
	publicPEM = string(pem.EncodeToMemory(&pem.Block{Type: publicKeyType, Bytes: publicDER}))

	return privatePEM, publicPEM, nil
}

func parsePrivateKey(privatePEM string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(privatePEM))
	if block == nil {
		return nil, fmt.Errorf("no PEM block in private key material")
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is not RSA")
	}

	return key, nil
}

func parsePublicKey(publicPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicPEM))
	if block == nil {
		return nil, fmt.Errorf("no PEM block in public key material")
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key is not RSA")
	}

	return key, nil
}
