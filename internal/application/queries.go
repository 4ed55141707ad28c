package application

import (
	"time"

	"github.com/bnema/riot-accounts-cli/internal/domain"
)

// AccountStatus is one account row of a status query.
type AccountStatus struct {
	Account     domain.Account
	HasSnapshot bool
	Snapshot    *domain.Snapshot
	Active      bool
}

type Status struct {
	Accounts  []AccountStatus
	Login     domain.LoginState
	Processes []domain.Process
	// ActiveAccount is set when the live session maps to a known account.
	ActiveAccount *domain.Account
	CheckedAt     time.Time
}

func (s Status) Running() bool {
	return len(s.Processes) > 0
}
