package ports

import (
	"context"

	"github.com/bnema/riot-accounts-cli/internal/domain"
)

type LoginDetector interface {
	HasActiveSession(ctx context.Context) bool
	Inspect(ctx context.Context) domain.LoginState
}
