package toml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) (*Repository, string) {
	t.Helper()

	accountsPath := filepath.Join(t.TempDir(), "accounts.toml")
	repo, err := NewRepository(accountsPath)
	require.NoError(t, err)
	return repo, accountsPath
}

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)

	created := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)
	lastUsed := created.Add(3 * time.Hour)
	first := domain.Account{
		ID:            "1",
		DisplayName:   "Main",
		Username:      "main@example.com",
		CredentialRef: "riot/accounts/1/password",
		CreatedAt:     created,
		LastUsed:      &lastUsed,
	}
	second := domain.Account{
		ID:          "2",
		DisplayName: "Smurf",
		Username:    "smurf@example.com",
		CreatedAt:   created,
	}

	require.NoError(t, repo.Save(context.Background(), first))
	require.NoError(t, repo.Save(context.Background(), second))

	got, err := repo.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Account{first, second}, accounts)
}

func TestRepositorySaveUpdatesInPlace(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)

	account := domain.Account{ID: "1", DisplayName: "Main", Username: "main@example.com"}
	require.NoError(t, repo.Save(context.Background(), account))

	account.Username = "renamed@example.com"
	require.NoError(t, repo.Save(context.Background(), account))

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "renamed@example.com", accounts[0].Username)
}

func TestRepositorySaveRejectsDuplicateDisplayName(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)

	require.NoError(t, repo.Save(context.Background(), domain.Account{ID: "1", DisplayName: "Main", Username: "a"}))

	err := repo.Save(context.Background(), domain.Account{ID: "2", DisplayName: "main", Username: "b"})
	require.ErrorIs(t, err, domain.ErrDuplicateDisplayName)
}

func TestRepositoryGetByDisplayName(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)
	require.NoError(t, repo.Save(context.Background(), domain.Account{ID: "1", DisplayName: "Main", Username: "a"}))

	got, err := repo.GetByDisplayName(context.Background(), "Main")
	require.NoError(t, err)
	assert.Equal(t, domain.AccountID("1"), got.ID)

	got, err = repo.GetByDisplayName(context.Background(), "MAIN")
	require.NoError(t, err)
	assert.Equal(t, domain.AccountID("1"), got.ID)

	_, err = repo.GetByDisplayName(context.Background(), "Smurf")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestRepositoryDelete(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)
	require.NoError(t, repo.Save(context.Background(), domain.Account{ID: "1", DisplayName: "Main", Username: "a"}))
	require.NoError(t, repo.Save(context.Background(), domain.Account{ID: "2", DisplayName: "Smurf", Username: "b"}))

	require.NoError(t, repo.Delete(context.Background(), "1"))

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, domain.AccountID("2"), accounts[0].ID)

	require.ErrorIs(t, repo.Delete(context.Background(), "1"), domain.ErrAccountNotFound)
}

func TestRepositoryReadsHandWrittenFile(t *testing.T) {
	t.Parallel()

	accountsPath := filepath.Join(t.TempDir(), "accounts.toml")
	require.NoError(t, os.WriteFile(accountsPath, []byte(strings.Join([]string{
		"version = 1",
		"",
		"[[accounts]]",
		"id = \"1\"",
		"display_name = \"Main\"",
		"username = \"main@example.com\"",
		"last_used = \"not-a-time\"",
		"",
	}, "\n")), 0o600))

	repo, err := NewRepository(accountsPath)
	require.NoError(t, err)

	account, err := repo.GetByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Main", account.DisplayName)
	assert.True(t, account.CreatedAt.IsZero())
	assert.Nil(t, account.LastUsed)
}

func TestRepositorySaveCreatesDirectoryAndEnforcesPermissions(t *testing.T) {
	t.Parallel()

	accountsPath := filepath.Join(t.TempDir(), ".riot-accounts", "accounts.toml")
	repo, err := NewRepository(accountsPath)
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), domain.Account{ID: "1", DisplayName: "Main", Username: "a"}))

	info, err := os.Stat(accountsPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	dirInfo, err := os.Stat(filepath.Dir(accountsPath))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())
}

func TestNewRepositoryRejectsEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := NewRepository("  ")
	require.ErrorContains(t, err, "accounts path is empty")
}

func TestRepositoryMissingFileBehaviors(t *testing.T) {
	t.Parallel()

	repo, err := NewRepository(filepath.Join(t.TempDir(), "missing", "accounts.toml"))
	require.NoError(t, err)

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accounts)

	_, err = repo.GetByID(context.Background(), "1")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestRepositoryListMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	repo, accountsPath := newTestRepository(t)
	require.NoError(t, os.WriteFile(accountsPath, []byte("accounts = ["), 0o600))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode accounts file")
}

func TestRepositorySaveCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Save(ctx, domain.Account{ID: "1", DisplayName: "Main"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRepositoryConcurrentSavesAcrossInstancesPreserveBothAccounts(t *testing.T) {
	t.Parallel()

	accountsPath := filepath.Join(t.TempDir(), "accounts.toml")

	newRepo := func() *Repository {
		repo, err := NewRepository(accountsPath)
		require.NoError(t, err)
		return repo
	}

	repoA := newRepo()
	repoB := newRepo()

	const perRepoWrites = 100
	start := make(chan struct{})
	errCh := make(chan error, perRepoWrites*2)
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		<-start
		for i := 0; i < perRepoWrites; i++ {
			id := "a-" + strconv.Itoa(i)
			errCh <- repoA.Save(context.Background(), domain.Account{ID: domain.AccountID(id), DisplayName: id, Username: "a"})
		}
	}()

	go func() {
		defer wg.Done()
		<-start
		for i := 0; i < perRepoWrites; i++ {
			id := "b-" + strconv.Itoa(i)
			errCh <- repoB.Save(context.Background(), domain.Account{ID: domain.AccountID(id), DisplayName: id, Username: "b"})
		}
	}()

	close(start)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	accounts, err := repoA.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, accounts, perRepoWrites*2)
}

func TestRepositorySaveSerializedTOMLIncludesVersion(t *testing.T) {
	t.Parallel()

	repo, accountsPath := newTestRepository(t)

	require.NoError(t, repo.Save(context.Background(), domain.Account{ID: "1", DisplayName: "Main", Username: "a"}))

	data, err := os.ReadFile(accountsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "display_name = 'Main'")
}

func TestRepositoryFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	repo, accountsPath := newTestRepository(t)
	require.NoError(t, os.WriteFile(accountsPath, []byte(strings.Join([]string{
		"version = 999",
		"",
		"accounts = []",
		"",
	}, "\n")), 0o600))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported accounts schema version")
}
