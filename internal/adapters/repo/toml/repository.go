package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/bnema/riot-accounts-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	accountsFileMode = 0o600
	accountsDirMode  = 0o700
	tempFilePattern  = ".accounts-*.toml.tmp"
)

// Repository stores accounts in a single TOML file. Writes go through a temp
// file and a rename; instances sharing a path share a lock.
type Repository struct {
	accountsPath string
	mu           *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.AccountRepository = (*Repository)(nil)

func NewRepository(accountsPath string) (*Repository, error) {
	if strings.TrimSpace(accountsPath) == "" {
		return nil, errors.New("accounts path is empty")
	}
	accountsPath, err := normalizeAccountsPath(accountsPath)
	if err != nil {
		return nil, err
	}

	return &Repository{accountsPath: accountsPath, mu: lockForPath(accountsPath)}, nil
}

func (r *Repository) Save(ctx context.Context, account domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	file.applyDefaults()

	encoded := toSchema(account)
	for _, entry := range file.Accounts {
		if entry.ID != encoded.ID && strings.EqualFold(entry.DisplayName, encoded.DisplayName) {
			return fmt.Errorf("%w: %q", domain.ErrDuplicateDisplayName, account.DisplayName)
		}
	}

	updated := false
	for i := range file.Accounts {
		if file.Accounts[i].ID == encoded.ID {
			file.Accounts[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Accounts = append(file.Accounts, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := r.writeSchema(file); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, id domain.AccountID) (domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Account{}, err
	}
	file.applyDefaults()

	for _, entry := range file.Accounts {
		if entry.ID == string(id) {
			return fromSchema(entry), nil
		}
	}

	return domain.Account{}, domain.ErrAccountNotFound
}

// GetByDisplayName prefers an exact match and falls back to a
// case-insensitive one.
func (r *Repository) GetByDisplayName(ctx context.Context, displayName string) (domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Account{}, err
	}

	for _, entry := range file.Accounts {
		if entry.DisplayName == displayName {
			return fromSchema(entry), nil
		}
	}
	for _, entry := range file.Accounts {
		if strings.EqualFold(entry.DisplayName, displayName) {
			return fromSchema(entry), nil
		}
	}

	return domain.Account{}, domain.ErrAccountNotFound
}

func (r *Repository) Delete(ctx context.Context, id domain.AccountID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	kept := file.Accounts[:0]
	found := false
	for _, entry := range file.Accounts {
		if entry.ID == string(id) {
			found = true
			continue
		}
		kept = append(kept, entry)
	}
	if !found {
		return domain.ErrAccountNotFound
	}
	file.Accounts = kept

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) List(ctx context.Context) ([]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}
	file.applyDefaults()

	accounts := make([]domain.Account, 0, len(file.Accounts))
	for _, entry := range file.Accounts {
		accounts = append(accounts, fromSchema(entry))
	}

	return accounts, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.accountsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read accounts file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode accounts file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeAccountsPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve accounts path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.accountsPath), accountsDirMode); err != nil {
		return fmt.Errorf("create accounts directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode accounts file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.accountsPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp accounts file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp accounts file: %w", err)
	}

	if err := tempFile.Chmod(accountsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp accounts file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp accounts file: %w", err)
	}

	if err := os.Rename(tempName, r.accountsPath); err != nil {
		return fmt.Errorf("replace accounts file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.accountsPath, accountsFileMode); err != nil {
		return fmt.Errorf("chmod accounts file: %w", err)
	}

	return nil
}

func toSchema(account domain.Account) accountSchema {
	encoded := accountSchema{
		ID:            string(account.ID),
		DisplayName:   account.DisplayName,
		Username:      account.Username,
		CredentialRef: account.CredentialRef,
		CreatedAt:     formatTime(account.CreatedAt),
	}
	if account.LastUsed != nil {
		encoded.LastUsed = formatTime(*account.LastUsed)
	}

	return encoded
}

func fromSchema(account accountSchema) domain.Account {
	decoded := domain.Account{
		ID:            domain.AccountID(account.ID),
		DisplayName:   account.DisplayName,
		Username:      account.Username,
		CredentialRef: account.CredentialRef,
		CreatedAt:     parseTime(account.CreatedAt),
	}
	if lastUsed := parseTime(account.LastUsed); !lastUsed.IsZero() {
		decoded.LastUsed = &lastUsed
	}

	return decoded
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
