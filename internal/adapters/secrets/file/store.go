package file

import (
	"bytes"
	"context"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/bnema/riot-accounts-cli/internal/ports"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	storeDirMode  = 0o700
	secretFileMod = 0o600

	keyFileName   = ".store.key"
	secretSuffix  = ".enc"
	formatVersion = "ras1"
)

// Store keeps each secret in its own file under root, sealed with
// XChaCha20-Poly1305. The key is generated on first write and stored next to
// the secrets with owner-only permissions.
type Store struct {
	root string
	mu   sync.RWMutex
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathForKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	aead, err := s.loadAEAD(true)
	if err != nil {
		return err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}

	var sealed bytes.Buffer
	sealed.WriteString(formatVersion)
	sealed.Write(nonce)
	sealed.Write(aead.Seal(nil, nonce, []byte(value), []byte(key)))

	if err := os.MkdirAll(filepath.Dir(path), storeDirMode); err != nil {
		return fmt.Errorf("create file secret directory: %w", err)
	}

	if err := os.WriteFile(path, sealed.Bytes(), secretFileMod); err != nil {
		return fmt.Errorf("write file secret %q: %w", key, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := s.pathForKey(key)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("file secret %q: %w", key, domain.ErrSecretNotFound)
		}
		return "", fmt.Errorf("read file secret %q: %w", key, err)
	}

	aead, err := s.loadAEAD(false)
	if err != nil {
		return "", err
	}

	if !bytes.HasPrefix(data, []byte(formatVersion)) || len(data) < len(formatVersion)+aead.NonceSize() {
		return "", fmt.Errorf("file secret %q: unrecognized format", key)
	}
	data = data[len(formatVersion):]

	plain, err := aead.Open(nil, data[:aead.NonceSize()], data[aead.NonceSize():], []byte(key))
	if err != nil {
		return "", fmt.Errorf("decrypt file secret %q: %w", key, err)
	}

	return string(plain), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathForKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete file secret %q: %w", key, err)
	}

	return nil
}

// loadAEAD loads the store key, creating it when create is set.
func (s *Store) loadAEAD(create bool) (cipher.AEAD, error) {
	keyPath := filepath.Join(s.root, keyFileName)

	key, err := os.ReadFile(keyPath)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist) && create:
		key = make([]byte, chacha20poly1305.KeySize)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate store key: %w", err)
		}
		if err := os.MkdirAll(s.root, storeDirMode); err != nil {
			return nil, fmt.Errorf("create file secret directory: %w", err)
		}
		if err := os.WriteFile(keyPath, key, secretFileMod); err != nil {
			return nil, fmt.Errorf("write store key: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("store key %s is missing", keyPath)
	default:
		return nil, fmt.Errorf("read store key: %w", err)
	}

	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("store key %s has invalid length %d", keyPath, len(key))
	}

	return chacha20poly1305.NewX(key)
}

func (s *Store) pathForKey(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", errors.New("secret key is empty")
	}

	cleaned := filepath.Clean(trimmed)
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") || cleaned == "." || cleaned == keyFileName {
		return "", fmt.Errorf("invalid secret key %q", key)
	}

	return filepath.Join(s.root, cleaned+secretSuffix), nil
}
