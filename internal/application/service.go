package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/bnema/riot-accounts-cli/internal/ports"
)

const credentialKeyPrefix = "riot/accounts/"

// CredentialKey is the secret-store key holding an account's password.
func CredentialKey(id domain.AccountID) string {
	return credentialKeyPrefix + string(id) + "/password"
}

type Service struct {
	repo  ports.AccountRepository
	store ports.SecretStore
	clock ports.Clock
}

func NewService(repo ports.AccountRepository, store ports.SecretStore, clock ports.Clock) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Service{
		repo:  repo,
		store: store,
		clock: clock,
	}
}

func (s *Service) AddAccount(ctx context.Context, command AddAccountCommand) (domain.Account, error) {
	account := domain.Account{
		ID:          domain.AccountID(strings.TrimSpace(string(command.ID))),
		DisplayName: command.DisplayName,
		Username:    strings.TrimSpace(command.Username),
	}
	if err := account.Validate(); err != nil {
		return domain.Account{}, err
	}

	if _, err := s.repo.GetByID(ctx, account.ID); err == nil {
		return domain.Account{}, fmt.Errorf("account %s already exists", account.ID)
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return domain.Account{}, fmt.Errorf("get account by id: %w", err)
	}

	if existing, err := s.repo.GetByDisplayName(ctx, account.DisplayName); err == nil {
		return domain.Account{}, fmt.Errorf("%w: %q is used by account %s", domain.ErrDuplicateDisplayName, account.DisplayName, existing.ID)
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return domain.Account{}, fmt.Errorf("get account by display name: %w", err)
	}

	account.CreatedAt = s.clock.Now().UTC()
	if command.Password != "" {
		account.CredentialRef = CredentialKey(account.ID)
		if err := s.store.Put(ctx, account.CredentialRef, command.Password); err != nil {
			return domain.Account{}, fmt.Errorf("store account credential: %w", err)
		}
	}

	if err := s.repo.Save(ctx, account); err != nil {
		if account.CredentialRef != "" {
			if rollbackErr := s.store.Delete(ctx, account.CredentialRef); rollbackErr != nil {
				return domain.Account{}, fmt.Errorf("save account and rollback stored credential: %w", errors.Join(err, rollbackErr))
			}
		}
		return domain.Account{}, fmt.Errorf("save account: %w", err)
	}

	return account, nil
}

func (s *Service) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	return accounts, nil
}

// ResolveAccount finds an account by ID first, then by display name.
func (s *Service) ResolveAccount(ctx context.Context, ref string) (domain.Account, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Account{}, fmt.Errorf("%w: empty account reference", domain.ErrAccountNotFound)
	}

	account, err := s.repo.GetByID(ctx, domain.AccountID(ref))
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return domain.Account{}, fmt.Errorf("get account by id: %w", err)
	}

	account, err = s.repo.GetByDisplayName(ctx, ref)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.Account{}, fmt.Errorf("%w: %q", domain.ErrAccountNotFound, ref)
		}
		return domain.Account{}, fmt.Errorf("get account by display name: %w", err)
	}

	return account, nil
}

// UpdateAccount edits an account's display name and username. It returns the
// account as it was before the change along with the saved result.
func (s *Service) UpdateAccount(ctx context.Context, command UpdateAccountCommand) (domain.Account, domain.Account, error) {
	previous, err := s.repo.GetByID(ctx, command.ID)
	if err != nil {
		return domain.Account{}, domain.Account{}, fmt.Errorf("get account by id: %w", err)
	}

	updated := previous
	if command.DisplayName != nil {
		updated.DisplayName = *command.DisplayName
	}
	if command.Username != nil {
		updated.Username = strings.TrimSpace(*command.Username)
	}
	if err := updated.Validate(); err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	if updated.DisplayName != previous.DisplayName {
		existing, err := s.repo.GetByDisplayName(ctx, updated.DisplayName)
		switch {
		case err == nil && existing.ID != updated.ID:
			return domain.Account{}, domain.Account{}, fmt.Errorf("%w: %q is used by account %s", domain.ErrDuplicateDisplayName, updated.DisplayName, existing.ID)
		case err != nil && !errors.Is(err, domain.ErrAccountNotFound):
			return domain.Account{}, domain.Account{}, fmt.Errorf("get account by display name: %w", err)
		}
	}

	if updated.DisplayName == previous.DisplayName && updated.Username == previous.Username {
		return previous, updated, nil
	}

	if err := s.repo.Save(ctx, updated); err != nil {
		return domain.Account{}, domain.Account{}, fmt.Errorf("save account: %w", err)
	}

	return previous, updated, nil
}

// RemoveAccount deletes the account record and its stored credential. Snapshots are left alone.
func (s *Service) RemoveAccount(ctx context.Context, id domain.AccountID) error {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get account by id: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	if account.CredentialRef == "" {
		return nil
	}

	if err := s.store.Delete(ctx, account.CredentialRef); err != nil && !errors.Is(err, domain.ErrSecretNotFound) {
		if restoreErr := s.repo.Save(ctx, account); restoreErr != nil {
			return fmt.Errorf("delete account credential and restore account: %w", errors.Join(err, restoreErr))
		}
		return fmt.Errorf("delete account credential: %w", err)
	}

	return nil
}

func (s *Service) Credential(ctx context.Context, id domain.AccountID) (string, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("get account by id: %w", err)
	}
	if account.CredentialRef == "" {
		return "", fmt.Errorf("%w: account %s has no stored credential", domain.ErrSecretNotFound, id)
	}

	value, err := s.store.Get(ctx, account.CredentialRef)
	if err != nil {
		return "", fmt.Errorf("get account credential: %w", err)
	}

	return value, nil
}

// SetCredential stores a new password for the account, replacing any previous secret entry.
func (s *Service) SetCredential(ctx context.Context, command SetCredentialCommand) error {
	if command.Password == "" {
		return fmt.Errorf("password is required")
	}

	account, err := s.repo.GetByID(ctx, command.ID)
	if err != nil {
		return fmt.Errorf("get account by id: %w", err)
	}
	original := account
	key := CredentialKey(account.ID)

	if err := s.store.Put(ctx, key, command.Password); err != nil {
		return fmt.Errorf("store account credential: %w", err)
	}

	if account.CredentialRef == key {
		return nil
	}

	account.CredentialRef = key
	if err := s.repo.Save(ctx, account); err != nil {
		if rollbackErr := s.store.Delete(ctx, key); rollbackErr != nil {
			return fmt.Errorf("save account credential and rollback stored secret: %w", errors.Join(err, rollbackErr))
		}
		return fmt.Errorf("save account credential: %w", err)
	}

	if original.CredentialRef == "" {
		return nil
	}
	if err := s.store.Delete(ctx, original.CredentialRef); err != nil && !errors.Is(err, domain.ErrSecretNotFound) {
		var rollbackErr error
		if restoreErr := s.repo.Save(ctx, original); restoreErr != nil {
			rollbackErr = errors.Join(rollbackErr, restoreErr)
		}
		if newSecretDeleteErr := s.store.Delete(ctx, key); newSecretDeleteErr != nil {
			rollbackErr = errors.Join(rollbackErr, newSecretDeleteErr)
		}
		if rollbackErr != nil {
			return fmt.Errorf("delete previous credential and rollback update: %w", errors.Join(err, rollbackErr))
		}
		return fmt.Errorf("delete previous credential: %w", err)
	}

	return nil
}

// MarkUsed stamps LastUsed after a successful switch.
func (s *Service) MarkUsed(ctx context.Context, id domain.AccountID) error {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get account by id: %w", err)
	}

	now := s.clock.Now().UTC()
	account.LastUsed = &now

	if err := s.repo.Save(ctx, account); err != nil {
		return fmt.Errorf("save account last used: %w", err)
	}

	return nil
}
