package ports

import (
	"context"

	"github.com/bnema/riot-accounts-cli/internal/domain"
)

type HistoryRepository interface {
	Append(ctx context.Context, record domain.SwitchRecord) error
	List(ctx context.Context, limit int) ([]domain.SwitchRecord, error)
	// LastSuccessful returns domain.ErrAccountNotFound when no switch has succeeded yet.
	LastSuccessful(ctx context.Context) (domain.SwitchRecord, error)
}
