package application

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	tomlrepo "github.com/bnema/riot-accounts-cli/internal/adapters/repo/toml"
	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/bnema/riot-accounts-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var serviceNow = time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC)

func TestServiceAddAccountStoresCredential(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	store := mocks.NewMockSecretStore(t)
	clock := mocks.NewMockClock(t)
	service := NewService(repo, store, clock)

	clock.EXPECT().Now().Return(serviceNow)
	repo.EXPECT().GetByID(mockAnyContext(), domain.AccountID("1")).Return(domain.Account{}, domain.ErrAccountNotFound)
	repo.EXPECT().GetByDisplayName(mockAnyContext(), "Main").Return(domain.Account{}, domain.ErrAccountNotFound)
	store.EXPECT().Put(mockAnyContext(), "riot/accounts/1/password", "hunter2").Return(nil)

	want := domain.Account{
		ID:            "1",
		DisplayName:   "Main",
		Username:      "main@example.com",
		CredentialRef: "riot/accounts/1/password",
		CreatedAt:     serviceNow,
	}
	repo.EXPECT().Save(mockAnyContext(), want).Return(nil)

	account, err := service.AddAccount(context.Background(), AddAccountCommand{
		ID:          "1",
		DisplayName: "Main",
		Username:    " main@example.com ",
		Password:    "hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, want, account)
}

func TestServiceAddAccountWithoutPasswordSkipsSecretStore(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	store := mocks.NewMockSecretStore(t)
	clock := mocks.NewMockClock(t)
	service := NewService(repo, store, clock)

	clock.EXPECT().Now().Return(serviceNow)
	repo.EXPECT().GetByID(mockAnyContext(), domain.AccountID("2")).Return(domain.Account{}, domain.ErrAccountNotFound)
	repo.EXPECT().GetByDisplayName(mockAnyContext(), "Smurf").Return(domain.Account{}, domain.ErrAccountNotFound)
	repo.EXPECT().Save(mockAnyContext(), domain.Account{
		ID:          "2",
		DisplayName: "Smurf",
		Username:    "smurf@example.com",
		CreatedAt:   serviceNow,
	}).Return(nil)

	account, err := service.AddAccount(context.Background(), AddAccountCommand{ID: "2", DisplayName: "Smurf", Username: "smurf@example.com"})
	require.NoError(t, err)
	assert.Empty(t, account.CredentialRef)
}

func TestServiceAddAccountRejectsInvalidDisplayName(t *testing.T) {
	service := NewService(mocks.NewMockAccountRepository(t), mocks.NewMockSecretStore(t), mocks.NewMockClock(t))

	_, err := service.AddAccount(context.Background(), AddAccountCommand{ID: "1", DisplayName: "../etc", Username: "main@example.com"})
	require.ErrorIs(t, err, domain.ErrInvalidDisplayName)
}

func TestServiceAddAccountRejectsDuplicates(t *testing.T) {
	t.Run("id", func(t *testing.T) {
		repo := mocks.NewMockAccountRepository(t)
		service := NewService(repo, mocks.NewMockSecretStore(t), mocks.NewMockClock(t))

		repo.EXPECT().GetByID(mockAnyContext(), domain.AccountID("1")).Return(domain.Account{ID: "1"}, nil)

		_, err := service.AddAccount(context.Background(), AddAccountCommand{ID: "1", DisplayName: "Main", Username: "main@example.com"})
		require.ErrorContains(t, err, "account 1 already exists")
	})

	t.Run("display name", func(t *testing.T) {
		repo := mocks.NewMockAccountRepository(t)
		service := NewService(repo, mocks.NewMockSecretStore(t), mocks.NewMockClock(t))

		repo.EXPECT().GetByID(mockAnyContext(), domain.AccountID("2")).Return(domain.Account{}, domain.ErrAccountNotFound)
		repo.EXPECT().GetByDisplayName(mockAnyContext(), "Main").Return(domain.Account{ID: "1", DisplayName: "main"}, nil)

		_, err := service.AddAccount(context.Background(), AddAccountCommand{ID: "2", DisplayName: "Main", Username: "other@example.com"})
		require.ErrorIs(t, err, domain.ErrDuplicateDisplayName)
	})
}

func TestServiceAddAccountCompensatesSecretWhenSaveFails(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	store := mocks.NewMockSecretStore(t)
	clock := mocks.NewMockClock(t)
	service := NewService(repo, store, clock)

	saveErr := errors.New("save failed")
	clock.EXPECT().Now().Return(serviceNow)
	repo.EXPECT().GetByID(mockAnyContext(), domain.AccountID("1")).Return(domain.Account{}, domain.ErrAccountNotFound)
	repo.EXPECT().GetByDisplayName(mockAnyContext(), "Main").Return(domain.Account{}, domain.ErrAccountNotFound)
	store.EXPECT().Put(mockAnyContext(), "riot/accounts/1/password", "hunter2").Return(nil)
	repo.EXPECT().Save(mockAnyContext(), mock.AnythingOfType("domain.Account")).Return(saveErr)
	store.EXPECT().Delete(mockAnyContext(), "riot/accounts/1/password").Return(nil)

	_, err := service.AddAccount(context.Background(), AddAccountCommand{ID: "1", DisplayName: "Main", Username: "main@example.com", Password: "hunter2"})
	require.ErrorIs(t, err, saveErr)
}

func TestServiceAddAccountReportsRollbackFailure(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	store := mocks.NewMockSecretStore(t)
	clock := mocks.NewMockClock(t)
	service := NewService(repo, store, clock)

	saveErr := errors.New("save failed")
	rollbackErr := errors.New("rollback failed")
	clock.EXPECT().Now().Return(serviceNow)
	repo.EXPECT().GetByID(mockAnyContext(), domain.AccountID("1")).Return(domain.Account{}, domain.ErrAccountNotFound)
	repo.EXPECT().GetByDisplayName(mockAnyContext(), "Main").Return(domain.Account{}, domain.ErrAccountNotFound)
	store.EXPECT().Put(mockAnyContext(), "riot/accounts/1/password", "hunter2").Return(nil)
	repo.EXPECT().Save(mockAnyContext(), mock.AnythingOfType("domain.Account")).Return(saveErr)
	store.EXPECT().Delete(mockAnyContext(), "riot/accounts/1/password").Return(rollbackErr)

	_, err := service.AddAccount(context.Background(), AddAccountCommand{ID: "1", DisplayName: "Main", Username: "main@example.com", Password: "hunter2"})
	require.ErrorIs(t, err, saveErr)
	require.ErrorIs(t, err, rollbackErr)
}

func TestServiceResolveAccount(t *testing.T) {
	main := domain.Account{ID: "1", DisplayName: "Main", Username: "main@example.com"}

	t.Run("by id", func(t *testing.T) {
		repo := mocks.NewMockAccountRepository(t)
		service := NewService(repo, nil, mocks.NewMockClock(t))
		repo.EXPECT().GetByID(mockAnyContext(), domain.AccountID("1")).Return(main, nil)

		account, err := service.ResolveAccount(context.Background(), " 1 ")
		require.NoError(t, err)
		assert.Equal(t, main, account)
	})

	t.Run("by display name", func(t *testing.T) {
		repo := mocks.NewMockAccountRepository(t)
		service := NewService(repo, nil, mocks.NewMockClock(t))
		repo.EXPECT().GetByID(mockAnyContext(), domain.AccountID("main")).Return(domain.Account{}, domain.ErrAccountNotFound)
		repo.EXPECT().GetByDisplayName(mockAnyContext(), "main").Return(main, nil)

		account, err := service.ResolveAccount(context.Background(), "main")
		require.NoError(t, err)
		assert.Equal(t, main, account)
	})

	t.Run("unknown", func(t *testing.T) {
		repo := mocks.NewMockAccountRepository(t)
		service := NewService(repo, nil, mocks.NewMockClock(t))
		repo.EXPECT().GetByID(mockAnyContext(), domain.AccountID("ghost")).Return(domain.Account{}, domain.ErrAccountNotFound)
		repo.EXPECT().GetByDisplayName(mockAnyContext(), "ghost").Return(domain.Account{}, domain.ErrAccountNotFound)

		_, err := service.ResolveAccount(context.Background(), "ghost")
		require.ErrorIs(t, err, domain.ErrAccountNotFound)
		assert.ErrorContains(t, err, `"ghost"`)
	})

	t.Run("empty", func(t *testing.T) {
		service := NewService(mocks.NewMockAccountRepository(t), nil, mocks.NewMockClock(t))

		_, err := service.ResolveAccount(context.Background(), "  ")
		require.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
}

func TestServiceUpdateAccountRenames(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	service := NewService(repo, mocks.NewMockSecretStore(t), nil)

	existing := domain.Account{ID: "1", DisplayName: "Main", Username: "main@example.com", CredentialRef: "riot/accounts/1/password"}
	want := existing
	want.DisplayName = "Main EUW"
	want.Username = "main.euw@example.com"

	repo.EXPECT().GetByID(mockAnyContext(), domain.AccountID("1")).Return(existing, nil).Once()
	repo.EXPECT().GetByDisplayName(mockAnyContext(), "Main EUW").Return(domain.Account{}, domain.ErrAccountNotFound).Once()
	repo.EXPECT().Save(mockAnyContext(), want).Return(nil).Once()

	name, username := "Main EUW", " main.euw@example.com "
	previous, updated, err := service.UpdateAccount(context.Background(), UpdateAccountCommand{
		ID:          "1",
		DisplayName: &name,
		Username:    &username,
	})
	require.NoError(t, err)
	assert.Equal(t, existing, previous)
	assert.Equal(t, want, updated)
}

func TestServiceUpdateAccountRejectsTakenDisplayName(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	service := NewService(repo, mocks.NewMockSecretStore(t), nil)

	repo.EXPECT().GetByID(mockAnyContext(), domain.AccountID("1")).Return(domain.Account{ID: "1", DisplayName: "Main", Username: "main@example.com"}, nil).Once()
	repo.EXPECT().GetByDisplayName(mockAnyContext(), "Smurf").Return(domain.Account{ID: "2", DisplayName: "Smurf"}, nil).Once()

	name := "Smurf"
	_, _, err := service.UpdateAccount(context.Background(), UpdateAccountCommand{ID: "1", DisplayName: &name})
	require.ErrorIs(t, err, domain.ErrDuplicateDisplayName)
}

func TestServiceUpdateAccountValidatesAndSkipsNoop(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	service := NewService(repo, mocks.NewMockSecretStore(t), nil)

	existing := domain.Account{ID: "1", DisplayName: "Main", Username: "main@example.com"}
	repo.EXPECT().GetByID(mockAnyContext(), domain.AccountID("1")).Return(existing, nil).Twice()

	empty := "  "
	_, _, err := service.UpdateAccount(context.Background(), UpdateAccountCommand{ID: "1", Username: &empty})
	require.Error(t, err)

	same := "main@example.com"
	previous, updated, err := service.UpdateAccount(context.Background(), UpdateAccountCommand{ID: "1", Username: &same})
	require.NoError(t, err)
	assert.Equal(t, previous, updated)
}

func TestServiceRemoveAccountDeletesCredential(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewService(repo, store, mocks.NewMockClock(t))

	account := domain.Account{ID: "1", DisplayName: "Main", Username: "main@example.com", CredentialRef: "riot/accounts/1/password"}
	repo.EXPECT().GetByID(mockAnyContext(), domain.AccountID("1")).Return(account, nil)
	repo.EXPECT().Delete(mockAnyContext(), domain.AccountID("1")).Return(nil)
	store.EXPECT().Delete(mockAnyContext(), "riot/accounts/1/password").Return(nil)

	require.NoError(t, service.RemoveAccount(context.Background(), "1"))
}

func TestServiceRemoveAccountToleratesMissingSecret(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewService(repo, store, mocks.NewMockClock(t))

	account := domain.Account{ID: "1", DisplayName: "Main", Username: "main@example.com", CredentialRef: "riot/accounts/1/password"}
	repo.EXPECT().GetByID(mockAnyContext(), domain.AccountID("1")).Return(account, nil)
	repo.EXPECT().Delete(mockAnyContext(), domain.AccountID("1")).Return(nil)
	store.EXPECT().Delete(mockAnyContext(), "riot/accounts/1/password").Return(domain.ErrSecretNotFound)

	require.NoError(t, service.RemoveAccount(context.Background(), "1"))
}

func TestServiceRemoveAccountRestoresRecordWhenSecretDeleteFails(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewService(repo, store, mocks.NewMockClock(t))

	deleteErr := errors.New("pass unavailable")
	account := domain.Account{ID: "1", DisplayName: "Main", Username: "main@example.com", CredentialRef: "riot/accounts/1/password"}
	repo.EXPECT().GetByID(mockAnyContext(), domain.AccountID("1")).Return(account, nil)
	repo.EXPECT().Delete(mockAnyContext(), domain.AccountID("1")).Return(nil)
	store.EXPECT().Delete(mockAnyContext(), "riot/accounts/1/password").Return(deleteErr)
	repo.EXPECT().Save(mockAnyContext(), account).Return(nil)

	err := service.RemoveAccount(context.Background(), "1")
	require.ErrorIs(t, err, deleteErr)
}

func TestServiceCredential(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewService(repo, store, mocks.NewMockClock(t))

	repo.EXPECT().GetByID(mockAnyContext(), domain.AccountID("1")).Return(domain.Account{ID: "1", CredentialRef: "riot/accounts/1/password"}, nil)
	repo.EXPECT().GetByID(mockAnyContext(), domain.AccountID("2")).Return(domain.Account{ID: "2"}, nil)
	store.EXPECT().Get(mockAnyContext(), "riot/accounts/1/password").Return("hunter2", nil)

	value, err := service.Credential(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", value)

	_, err = service.Credential(context.Background(), "2")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestServiceSetCredentialFirstTime(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewService(repo, store, mocks.NewMockClock(t))

	account := domain.Account{ID: "1", DisplayName: "Main", Username: "main@example.com"}
	repo.EXPECT().GetByID(mockAnyContext(), domain.AccountID("1")).Return(account, nil)
	store.EXPECT().Put(mockAnyContext(), "riot/accounts/1/password", "new").Return(nil)
	updated := account
	updated.CredentialRef = "riot/accounts/1/password"
	repo.EXPECT().Save(mockAnyContext(), updated).Return(nil)

	require.NoError(t, service.SetCredential(context.Background(), SetCredentialCommand{ID: "1", Password: "new"}))
}

func TestServiceSetCredentialOverwritesSameKey(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewService(repo, store, mocks.NewMockClock(t))

	account := domain.Account{ID: "1", DisplayName: "Main", Username: "main@example.com", CredentialRef: "riot/accounts/1/password"}
	repo.EXPECT().GetByID(mockAnyContext(), domain.AccountID("1")).Return(account, nil)
	store.EXPECT().Put(mockAnyContext(), "riot/accounts/1/password", "new").Return(nil)

	require.NoError(t, service.SetCredential(context.Background(), SetCredentialCommand{ID: "1", Password: "new"}))
}

func TestServiceSetCredentialRotatesLegacyRef(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewService(repo, store, mocks.NewMockClock(t))

	account := domain.Account{ID: "1", DisplayName: "Main", Username: "main@example.com", CredentialRef: "legacy/main"}
	repo.EXPECT().GetByID(mockAnyContext(), domain.AccountID("1")).Return(account, nil)
	store.EXPECT().Put(mockAnyContext(), "riot/accounts/1/password", "new").Return(nil)
	updated := account
	updated.CredentialRef = "riot/accounts/1/password"
	repo.EXPECT().Save(mockAnyContext(), updated).Return(nil)
	store.EXPECT().Delete(mockAnyContext(), "legacy/main").Return(nil)

	require.NoError(t, service.SetCredential(context.Background(), SetCredentialCommand{ID: "1", Password: "new"}))
}

func TestServiceSetCredentialRollsBackWhenOldSecretDeleteFails(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewService(repo, store, mocks.NewMockClock(t))

	deleteErr := errors.New("delete failed")
	account := domain.Account{ID: "1", DisplayName: "Main", Username: "main@example.com", CredentialRef: "legacy/main"}
	repo.EXPECT().GetByID(mockAnyContext(), domain.AccountID("1")).Return(account, nil)
	store.EXPECT().Put(mockAnyContext(), "riot/accounts/1/password", "new").Return(nil)
	updated := account
	updated.CredentialRef = "riot/accounts/1/password"
	repo.EXPECT().Save(mockAnyContext(), updated).Return(nil).Once()
	store.EXPECT().Delete(mockAnyContext(), "legacy/main").Return(deleteErr)
	repo.EXPECT().Save(mockAnyContext(), account).Return(nil).Once()
	store.EXPECT().Delete(mockAnyContext(), "riot/accounts/1/password").Return(nil)

	err := service.SetCredential(context.Background(), SetCredentialCommand{ID: "1", Password: "new"})
	require.ErrorIs(t, err, deleteErr)
}

func TestServiceSetCredentialRequiresPassword(t *testing.T) {
	service := NewService(mocks.NewMockAccountRepository(t), mocks.NewMockSecretStore(t), mocks.NewMockClock(t))

	err := service.SetCredential(context.Background(), SetCredentialCommand{ID: "1"})
	require.ErrorContains(t, err, "password is required")
}

func TestServiceMarkUsed(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	clock := mocks.NewMockClock(t)
	service := NewService(repo, nil, clock)

	account := domain.Account{ID: "1", DisplayName: "Main", Username: "main@example.com"}
	clock.EXPECT().Now().Return(serviceNow)
	repo.EXPECT().GetByID(mockAnyContext(), domain.AccountID("1")).Return(account, nil)
	repo.EXPECT().Save(mockAnyContext(), mock.MatchedBy(func(saved domain.Account) bool {
		return saved.LastUsed != nil && saved.LastUsed.Equal(serviceNow)
	})).Return(nil)

	require.NoError(t, service.MarkUsed(context.Background(), "1"))
}

func TestServiceAccountsPersistAcrossServiceInstances(t *testing.T) {
	t.Parallel()

	repo, err := tomlrepo.NewRepository(filepath.Join(t.TempDir(), "accounts.toml"))
	require.NoError(t, err)

	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(serviceNow)

	serviceA := NewService(repo, nil, clock)
	_, err = serviceA.AddAccount(context.Background(), AddAccountCommand{ID: "1", DisplayName: "Main", Username: "main@example.com"})
	require.NoError(t, err)
	_, err = serviceA.AddAccount(context.Background(), AddAccountCommand{ID: "2", DisplayName: "Smurf", Username: "smurf@example.com"})
	require.NoError(t, err)
	require.NoError(t, serviceA.MarkUsed(context.Background(), "2"))

	serviceB := NewService(repo, nil, mocks.NewMockClock(t))
	account, err := serviceB.ResolveAccount(context.Background(), "smurf")
	require.NoError(t, err)
	assert.Equal(t, domain.AccountID("2"), account.ID)
	require.NotNil(t, account.LastUsed)
	assert.True(t, account.LastUsed.Equal(serviceNow))

	accounts, err := serviceB.ListAccounts(context.Background())
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
}

func mockAnyContext() interface{} {
	return mock.Anything
}
