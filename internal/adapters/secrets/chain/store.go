package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/riot-accounts-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/riot-accounts-cli/internal/adapters/secrets/pass"
	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/bnema/riot-accounts-cli/internal/ports"
)

var errNilBackend = errors.New("secret store backend is nil")

// Store reads and writes through a preferred backend and keeps a second one
// for when the first is unusable. A password written while pass was missing
// lives in the fallback, so reads and deletes consult both.
type Store struct {
	preferred ports.SecretStore
	fallback  ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

func New(preferred, fallback ports.SecretStore) (*Store, error) {
	if preferred == nil || fallback == nil {
		return nil, errNilBackend
	}

	return &Store{preferred: preferred, fallback: fallback}, nil
}

// NewPassFirstWithEncryptedFileFallback prefers the user's pass store and
// falls back to the encrypted file store under fileRoot.
func NewPassFirstWithEncryptedFileFallback(fileRoot string) (*Store, error) {
	return New(passstore.NewStore(passstore.Config{}), filestore.NewStore(fileRoot))
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.preferred.Put(ctx, key, value)
	if err == nil {
		// Drop any copy left in the fallback by an earlier write.
		if delErr := s.fallback.Delete(ctx, key); delErr != nil && !isNotFound(delErr) && !isCancel(delErr) {
			return fmt.Errorf("remove stale fallback secret: %w", delErr)
		}
		return nil
	}
	if isCancel(err) {
		return err
	}

	if fallbackErr := s.fallback.Put(ctx, key, value); fallbackErr != nil {
		return errors.Join(
			fmt.Errorf("preferred backend: %w", err),
			fmt.Errorf("fallback backend: %w", fallbackErr),
		)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.preferred.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if isCancel(err) {
		return "", err
	}

	value, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr == nil {
		return value, nil
	}

	return "", errors.Join(
		fmt.Errorf("preferred backend: %w", err),
		fmt.Errorf("fallback backend: %w", fallbackErr),
	)
}

// Delete removes key from both backends. A key missing from a backend counts
// as removed there.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.preferred.Delete(ctx, key)
	if isCancel(err) {
		return err
	}
	if isNotFound(err) || errors.Is(err, passstore.ErrUnavailable) {
		err = nil
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	if isNotFound(fallbackErr) {
		fallbackErr = nil
	}

	switch {
	case err != nil && fallbackErr != nil:
		return errors.Join(
			fmt.Errorf("preferred backend: %w", err),
			fmt.Errorf("fallback backend: %w", fallbackErr),
		)
	case err != nil:
		return fmt.Errorf("preferred backend: %w", err)
	case fallbackErr != nil:
		return fmt.Errorf("fallback backend: %w", fallbackErr)
	default:
		return nil
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrSecretNotFound)
}

func isCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
