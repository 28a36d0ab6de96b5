// Package sealed encrypts values before they reach an underlying store so a
// shared machine does not expose the bearer token or cached customer data.
package sealed

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"

	"github.com/jrsteele09/go-crm-workspace/storage"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const keyInfo = "crm-workspace storage v1"

var _ storage.Store = (*Store)(nil)

type Store struct {
	inner storage.Store
	aead  cipher.AEAD
}

// New derives an XChaCha20-Poly1305 key from secret with HKDF-SHA256.
func New(inner storage.Store, secret string) (*Store, error) {
	if secret == "" {
		return nil, errors.New("[sealed.New] secret is required")
	}

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, errors.Wrap(err, "[sealed.New] derive key")
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, errors.Wrap(err, "[sealed.New] cipher")
	}
	return &Store{inner: inner, aead: aead}, nil
}

// Get reports values that fail to open as absent. They were written under a
// different secret or were tampered with; either way they are unusable.
func (s *Store) Get(key string) (string, bool, error) {
	raw, ok, err := s.inner.Get(key)
	if err != nil || !ok {
		return "", false, err
	}

	blob, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(blob) < s.aead.NonceSize() {
		log.Warn().Str("key", key).Msg("discarding unreadable sealed value")
		return "", false, nil
	}

	nonce, ciphertext := blob[:s.aead.NonceSize()], blob[s.aead.NonceSize():]
	plain, err := s.aead.Open(nil, nonce, ciphertext, []byte(key))
	if err != nil {
		log.Warn().Str("key", key).Msg("discarding sealed value that failed authentication")
		return "", false, nil
	}
	return string(plain), true, nil
}

func (s *Store) Set(key, value string) error {
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(value)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return errors.Wrap(err, "[sealed.Set] nonce")
	}
	blob := s.aead.Seal(nonce, nonce, []byte(value), []byte(key))
	return s.inner.Set(key, base64.StdEncoding.EncodeToString(blob))
}

func (s *Store) Remove(key string) error {
	return s.inner.Remove(key)
}
