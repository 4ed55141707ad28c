package domain

import "time"

type SwitchOutcome string

const (
	SwitchOutcomeRestored            SwitchOutcome = "restored"
	SwitchOutcomeAwaitingManualLogin SwitchOutcome = "awaiting_manual_login"
	SwitchOutcomeFailed              SwitchOutcome = "failed"
)

type SwitchRecord struct {
	ID          string
	AccountID   AccountID
	DisplayName string
	Outcome     SwitchOutcome
	BackedUpAs  string
	Success     bool
	Message     string
	StartedAt   time.Time
	FinishedAt  time.Time
}

func (r SwitchRecord) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
