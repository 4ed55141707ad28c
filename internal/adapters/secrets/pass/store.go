package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path"
	"strings"

	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/bnema/riot-accounts-cli/internal/ports"
)

var ErrUnavailable = errors.New("pass command unavailable")

const (
	// DefaultPrefix namespaces every entry inside the user's password store.
	DefaultPrefix = "riot-accounts"
	defaultBinary = "pass"

	notInStoreMessage = "is not in the password store"
)

type Config struct {
	// Binary is the pass executable; looked up on PATH when not absolute.
	Binary string
	// Prefix is prepended to every key as a pass folder.
	Prefix string
	// StoreDir overrides PASSWORD_STORE_DIR for the child process.
	StoreDir string
}

type invocation struct {
	args  []string
	input string
}

type runFunc func(ctx context.Context, inv invocation) (stdout string, stderr string, err error)

type Store struct {
	prefix string
	run    runFunc
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(cfg Config) *Store {
	if cfg.Binary == "" {
		cfg.Binary = defaultBinary
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}

	return &Store{
		prefix: strings.Trim(cfg.Prefix, "/"),
		run:    commandRunner(cfg.Binary, cfg.StoreDir),
	}
}

// Entry returns the pass path that holds key.
func (s *Store) Entry(key string) string {
	return path.Join(s.prefix, strings.TrimLeft(key, "/"))
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("pass put %q: password must be a single line", key)
	}

	entry := s.Entry(key)
	_, stderr, err := s.run(ctx, invocation{
		args:  []string{"insert", "--multiline", "--force", entry},
		input: value + "\n",
	})
	if err != nil {
		return wrap("put", entry, err, stderr)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	entry := s.Entry(key)
	stdout, stderr, err := s.run(ctx, invocation{args: []string{"show", entry}})
	if err != nil {
		return "", wrap("get", entry, err, stderr)
	}

	// Only the first line is the password; pass users often append notes below it.
	first, _, _ := strings.Cut(stdout, "\n")
	return strings.TrimSuffix(first, "\r"), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entry := s.Entry(key)
	_, stderr, err := s.run(ctx, invocation{args: []string{"rm", "--force", entry}})
	if err != nil {
		return wrap("delete", entry, err, stderr)
	}

	return nil
}

func commandRunner(binary, storeDir string) runFunc {
	return func(ctx context.Context, inv invocation) (string, string, error) {
		resolved, err := exec.LookPath(binary)
		if err != nil {
			if errors.Is(err, exec.ErrNotFound) {
				return "", "", ErrUnavailable
			}
			return "", "", fmt.Errorf("locate %s: %w", binary, err)
		}

		cmd := exec.CommandContext(ctx, resolved, inv.args...)
		if inv.input != "" {
			cmd.Stdin = strings.NewReader(inv.input)
		}
		if storeDir != "" {
			cmd.Env = append(os.Environ(), "PASSWORD_STORE_DIR="+storeDir)
		}

		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		err = cmd.Run()
		return stdout.String(), strings.TrimSpace(stderr.String()), err
	}
}

func wrap(op, entry string, err error, stderr string) error {
	switch {
	case strings.Contains(stderr, notInStoreMessage):
		return fmt.Errorf("pass %s %q: %w", op, entry, domain.ErrSecretNotFound)
	case stderr == "":
		return fmt.Errorf("pass %s %q: %w", op, entry, err)
	default:
		return fmt.Errorf("pass %s %q: %w: %s", op, entry, err, stderr)
	}
}
