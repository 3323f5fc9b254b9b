// Package fieldcrypt encrypts individual record fields at rest.
//
// Every call to Encrypt draws a fresh random nonce, and the nonce travels
// with the ciphertext, so equal plaintexts produce unrelated tokens.
// Tokens have the form "v1.<base64url(nonce || sealed)>"; the sealed part is
// XChaCha20-Poly1305 under a key derived from the configured secret via
// HKDF-SHA256.
package fieldcrypt

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const (
	tokenPrefix = "v1."
	hkdfInfo    = "gradtracker field encryption v1"
)

var (
	// ErrMalformed is returned for tokens that cannot be decoded or authenticated.
	ErrMalformed = errors.New("fieldcrypt: malformed ciphertext")
	// ErrEmptyKey is returned when no secret is configured.
	ErrEmptyKey = errors.New("fieldcrypt: key must not be empty")
)

var encoding = base64.RawURLEncoding

// Cipher seals and opens field values. Safe for concurrent use.
type Cipher struct {
	aead  cipher.AEAD
	nonce io.Reader
}

// New derives a field cipher from the shared secret.
func New(secret string) (*Cipher, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrEmptyKey
	}

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo)), key); err != nil {
		return nil, fmt.Errorf("fieldcrypt: derive key: %w", err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("fieldcrypt: init aead: %w", err)
	}

	return &Cipher{aead: aead, nonce: rand.Reader}, nil
}

// Encrypt seals plaintext under a fresh random nonce.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	ns := c.aead.NonceSize()
	buf := make([]byte, ns, ns+len(plaintext)+c.aead.Overhead())
	if _, err := io.ReadFull(c.nonce, buf); err != nil {
		return "", fmt.Errorf("fieldcrypt: read nonce: %w", err)
	}

	sealed := c.aead.Seal(buf, buf[:ns], []byte(plaintext), nil)
	return tokenPrefix + encoding.EncodeToString(sealed), nil
}

// Decrypt opens a token produced by Encrypt. Any decoding or authentication
// failure yields ErrMalformed.
func (c *Cipher) Decrypt(token string) (string, error) {
	raw, ok := strings.CutPrefix(strings.TrimSpace(token), tokenPrefix)
	if !ok {
		return "", ErrMalformed
	}

	data, err := encoding.DecodeString(raw)
	if err != nil {
		return "", ErrMalformed
	}

	ns := c.aead.NonceSize()
	if len(data) < ns+c.aead.Overhead() {
		return "", ErrMalformed
	}

	plain, err := c.aead.Open(nil, data[:ns], data[ns:], nil)
	if err != nil {
		return "", ErrMalformed
	}
	return string(plain), nil
}
