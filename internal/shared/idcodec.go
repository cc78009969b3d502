package shared

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// IDCodec turns record ids into opaque URL tokens and back. Tokens are sealed
// with XChaCha20-Poly1305 so a tampered token fails to open.
type IDCodec struct {
	key [chacha20poly1305.KeySize]byte
}

// NewIDCodec derives the sealing key from secret.
func NewIDCodec(secret string) (*IDCodec, error) {
	if secret == "" {
		return nil, fmt.Errorf("id codec: secret must be provided")
	}
	return &IDCodec{key: sha256.Sum256([]byte(secret))}, nil
}

// Encode seals id into a URL-safe token.
func (c *IDCodec) Encode(id string) (string, error) {
	aead, err := chacha20poly1305.NewX(c.key[:])
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(id)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := aead.Seal(nonce, nonce, []byte(id), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// MustEncode is Encode for template use; it returns an empty token on failure.
func (c *IDCodec) MustEncode(id string) string {
	token, err := c.Encode(id)
	if err != nil {
		return ""
	}
	return token
}

// Decode opens a token produced by Encode. Any malformed or tampered token
// yields ErrInvalidID.
func (c *IDCodec) Decode(token string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", ErrInvalidID
	}
	aead, err := chacha20poly1305.NewX(c.key[:])
	if err != nil {
		return "", err
	}
	if len(raw) < aead.NonceSize()+aead.Overhead() {
		return "", ErrInvalidID
	}
	nonce, sealed := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil || len(plain) == 0 {
		return "", ErrInvalidID
	}
	return string(plain), nil
}
