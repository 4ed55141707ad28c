package ports

import (
	"context"

	"github.com/bnema/riot-accounts-cli/internal/domain"
)

// ProcessController controls the client's process family. Enumeration never fails the caller:
// an enumeration error reads as "nothing running".
type ProcessController interface {
	ListRunning(ctx context.Context) []domain.Process
	IsRunning(ctx context.Context) bool
	TerminateAll(ctx context.Context) domain.Termination
	Start(ctx context.Context) error
}
