package ports

import (
	"context"
	"io"

	"github.com/bnema/riot-accounts-cli/internal/domain"
)

type SessionStore interface {
	Backup(ctx context.Context, account domain.Account, sourceRunning bool) (domain.Snapshot, error)
	Restore(ctx context.Context, displayName string) error
	ClearLive(ctx context.Context) ([]domain.ClearedItem, error)
	SnapshotExists(displayName string) bool
	Get(ctx context.Context, displayName string) (domain.Snapshot, error)
	List(ctx context.Context) ([]domain.Snapshot, error)
	Delete(ctx context.Context, displayName string) error
	Rename(ctx context.Context, from, to string) error
	Export(ctx context.Context, displayName string, w io.Writer) error
	Import(ctx context.Context, displayName string, r io.Reader) (domain.Snapshot, error)
}
