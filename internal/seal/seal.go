// Package seal encrypts messages under a key agreed with ECDH.
package seal

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the required key length.
const KeySize = chacha20poly1305.KeySize

// ErrOpen is returned when a ciphertext fails authentication.
var ErrOpen = errors.New("seal: message authentication failed")

// Box seals and opens messages with XChaCha20-Poly1305. Each sealed message
// carries its own random 24-byte nonce, so a Box can be reused for any number
// of messages and is safe for concurrent use.
type Box struct {
	aead cipher.AEAD
}

// New returns a Box for a 32-byte key such as an ecdh.SharedKey.
func New(key []byte) (*Box, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("seal: key is %d bytes, want %d", len(key), KeySize)
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	return &Box{aead: aead}, nil
}

// Seal encrypts plaintext and authenticates it together with aad. The result
// is nonce || ciphertext || tag.
func (b *Box) Seal(plaintext, aad []byte) ([]byte, error) {
	nonceSize := b.aead.NonceSize()
	out := make([]byte, nonceSize, nonceSize+len(plaintext)+b.aead.Overhead())
	if _, err := rand.Read(out); err != nil {
		return nil, fmt.Errorf("seal: reading nonce: %w", err)
	}
	return b.aead.Seal(out, out, plaintext, aad), nil
}

// Open reverses Seal. Any modification of the ciphertext or a different aad
// yields ErrOpen.
func (b *Box) Open(ciphertext, aad []byte) ([]byte, error) {
	nonceSize := b.aead.NonceSize()
	if len(ciphertext) < nonceSize+b.aead.Overhead() {
		return nil, ErrOpen
	}
	nonce, body := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := b.aead.Open(nil, nonce, body, aad)
	if err != nil {
		return nil, ErrOpen
	}
	return plaintext, nil
}
