package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/bnema/riot-accounts-cli/internal/logging"
	"github.com/bnema/riot-accounts-cli/internal/ports"
	"github.com/sirupsen/logrus"
)

const DefaultSettleDelay = 3 * time.Second

type Phase string

const (
	PhaseIdle                Phase = "idle"
	PhaseDetecting           Phase = "detecting"
	PhaseBackingUp           Phase = "backing_up"
	PhaseStopping            Phase = "stopping"
	PhaseClearing            Phase = "clearing"
	PhaseRestoring           Phase = "restoring"
	PhaseAwaitingManualLogin Phase = "awaiting_manual_login"
	PhaseRestarting          Phase = "restarting"
	PhaseDone                Phase = "done"
)

// SwitchError is returned when a switch aborts. Phase is the phase that failed.
type SwitchError struct {
	Phase Phase
	Err   error
}

func (e *SwitchError) Error() string {
	return fmt.Sprintf("switch failed while %s: %v", strings.ReplaceAll(string(e.Phase), "_", " "), e.Err)
}

func (e *SwitchError) Unwrap() error {
	return e.Err
}

// SwitchReport describes what a switch did. It is filled even when the switch fails.
type SwitchReport struct {
	Target      domain.Account
	Phases      []Phase
	Outcome     domain.SwitchOutcome
	WasRunning  bool
	Login       domain.LoginState
	BackedUp    *domain.Snapshot
	Termination domain.Termination
	Cleared     []domain.ClearedItem
	Restarted   bool
	// PartialState is set when the live directory may hold a mix of old and new session files.
	PartialState bool
	Warnings     []string
	Message      string
	StartedAt    time.Time
	FinishedAt   time.Time

	observe func(Phase)
}

func (r *SwitchReport) enter(phase Phase) {
	r.Phases = append(r.Phases, phase)
	if r.observe != nil {
		r.observe(phase)
	}
}

type switchOptions struct {
	onPhase func(Phase)
}

type SwitchOption func(*switchOptions)

// OnPhase registers fn to be called as the switch enters each phase, on the
// switching goroutine.
func OnPhase(fn func(Phase)) SwitchOption {
	return func(o *switchOptions) {
		o.onPhase = fn
	}
}

func (r *SwitchReport) phase() Phase {
	if len(r.Phases) == 0 {
		return PhaseIdle
	}
	return r.Phases[len(r.Phases)-1]
}

func (r *SwitchReport) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

type BackupResult struct {
	Snapshot domain.Snapshot
	Login    domain.LoginState
	// Mismatch is set when the live session is identified as a different user than the account.
	Mismatch bool
}

type LogoutReport struct {
	WasRunning  bool
	Termination domain.Termination
	Cleared     []domain.ClearedItem
}

type SwitcherDeps struct {
	Accounts  ports.AccountRepository
	Processes ports.ProcessController
	Sessions  ports.SessionStore
	Detector  ports.LoginDetector
	// History is optional.
	History ports.HistoryRepository
	Clock   ports.Clock
	Logger  logrus.FieldLogger
}

type SwitcherConfig struct {
	SettleDelay                  time.Duration
	AttributeUnknownToLastActive bool
}

type Switcher struct {
	accounts  ports.AccountRepository
	processes ports.ProcessController
	sessions  ports.SessionStore
	detector  ports.LoginDetector
	history   ports.HistoryRepository
	clock     ports.Clock
	cfg       SwitcherConfig
	logger    *logrus.Entry

	sleep func(time.Duration)
	mu    sync.Mutex
}

func NewSwitcher(deps SwitcherDeps, cfg SwitcherConfig) *Switcher {
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	if cfg.SettleDelay < 0 {
		cfg.SettleDelay = 0
	}

	return &Switcher{
		accounts:  deps.Accounts,
		processes: deps.Processes,
		sessions:  deps.Sessions,
		detector:  deps.Detector,
		history:   deps.History,
		clock:     deps.Clock,
		cfg:       cfg,
		logger:    logging.Component(deps.Logger, "switch"),
		sleep:     time.Sleep,
	}
}

// Switch makes target the active account. Caller cancellation is honored until
// the client is about to be stopped; after that the switch runs to completion.
func (s *Switcher) Switch(ctx context.Context, target domain.Account, opts ...SwitchOption) (SwitchReport, error) {
	var options switchOptions
	for _, opt := range opts {
		opt(&options)
	}

	report := SwitchReport{Target: target, StartedAt: s.clock.Now(), observe: options.onPhase}
	if !s.mu.TryLock() {
		report.Outcome = domain.SwitchOutcomeFailed
		report.FinishedAt = report.StartedAt
		return report, domain.ErrSwitchInProgress
	}
	defer s.mu.Unlock()

	report.enter(PhaseIdle)
	log := s.logger.WithField("account", target.DisplayName)

	err := s.run(ctx, target, &report, log)
	report.FinishedAt = s.clock.Now()
	if err != nil {
		report.Outcome = domain.SwitchOutcomeFailed
		report.Message = err.Error()
		if report.PartialState {
			report.Message += "; the client configuration may need manual repair"
		}
		log.WithError(err).WithField("phase", report.phase()).Error("switch failed")
	} else {
		log.WithField("outcome", report.Outcome).Info("switch finished")
	}

	s.record(ctx, report, err == nil)
	return report, err
}

func (s *Switcher) run(ctx context.Context, target domain.Account, report *SwitchReport, log *logrus.Entry) error {
	if err := domain.ValidateDisplayName(target.DisplayName); err != nil {
		return &SwitchError{Phase: PhaseIdle, Err: err}
	}

	report.enter(PhaseDetecting)
	report.WasRunning = s.processes.IsRunning(ctx)
	report.Login = s.detector.Inspect(ctx)
	log.WithFields(logrus.Fields{
		"running": report.WasRunning,
		"login":   report.Login.Kind,
	}).Debug("detected client state")

	if report.WasRunning && report.Login.Active() {
		report.enter(PhaseBackingUp)
		s.backupOutgoing(ctx, report)
	}

	if err := ctx.Err(); err != nil {
		return &SwitchError{Phase: report.phase(), Err: err}
	}
	ctx = context.WithoutCancel(ctx)

	if report.WasRunning {
		report.enter(PhaseStopping)
		report.Termination = s.processes.TerminateAll(ctx)
		if len(report.Termination.Denied) > 0 {
			report.warn("not allowed to stop %s", strings.Join(report.Termination.Denied, ", "))
		}
		for _, p := range report.Termination.Survivors {
			report.warn("%s (pid %d) is still running", p.Name, p.PID)
		}
		s.sleep(s.cfg.SettleDelay)
	}

	report.enter(PhaseClearing)
	cleared, err := s.sessions.ClearLive(ctx)
	report.Cleared = cleared
	if err != nil {
		report.PartialState = true
		return &SwitchError{Phase: PhaseClearing, Err: err}
	}

	if s.sessions.SnapshotExists(target.DisplayName) {
		report.enter(PhaseRestoring)
		if err := s.sessions.Restore(ctx, target.DisplayName); err != nil {
			report.PartialState = errors.Is(err, domain.ErrPartialState)
			return &SwitchError{Phase: PhaseRestoring, Err: err}
		}
		report.Outcome = domain.SwitchOutcomeRestored
		report.Message = fmt.Sprintf("Switched to %s.", target.DisplayName)
	} else {
		report.enter(PhaseAwaitingManualLogin)
		report.Outcome = domain.SwitchOutcomeAwaitingManualLogin
		report.Message = fmt.Sprintf(
			"No saved session for %s. Log in as %s with \"Stay signed in\" checked, then run `ra backup %s` to save it.",
			target.DisplayName, target.Username, target.ID,
		)
	}

	report.enter(PhaseRestarting)
	if err := s.processes.Start(ctx); err != nil {
		report.warn("could not start the client: %v", err)
	} else {
		report.Restarted = true
	}

	report.enter(PhaseDone)
	return nil
}

func (s *Switcher) backupOutgoing(ctx context.Context, report *SwitchReport) {
	outgoing, ok, err := s.resolveOutgoing(ctx, report.Login)
	if err != nil {
		report.warn("skipped backup: %v", err)
		return
	}
	if !ok {
		report.warn("skipped backup: current session (%s) does not match a stored account", report.Login.Describe())
		return
	}

	snapshot, err := s.sessions.Backup(ctx, outgoing, true)
	if err != nil {
		report.warn("backup of %s failed: %v", outgoing.DisplayName, err)
		return
	}
	report.BackedUp = &snapshot
}

// resolveOutgoing maps the live session to a stored account.
func (s *Switcher) resolveOutgoing(ctx context.Context, login domain.LoginState) (domain.Account, bool, error) {
	switch login.Kind {
	case domain.LoginIdentified:
		accounts, err := s.accounts.List(ctx)
		if err != nil {
			return domain.Account{}, false, fmt.Errorf("list accounts: %w", err)
		}
		for _, account := range accounts {
			if account.SameUser(login.Identity) {
				return account, true, nil
			}
		}
		return domain.Account{}, false, nil
	case domain.LoginActiveUnknown:
		if !s.cfg.AttributeUnknownToLastActive {
			return domain.Account{}, false, nil
		}
		return s.lastActive(ctx)
	default:
		return domain.Account{}, false, nil
	}
}

func (s *Switcher) lastActive(ctx context.Context) (domain.Account, bool, error) {
	if s.history == nil {
		return domain.Account{}, false, nil
	}

	record, err := s.history.LastSuccessful(ctx)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return domain.Account{}, false, nil
	}
	if err != nil {
		return domain.Account{}, false, fmt.Errorf("read switch history: %w", err)
	}

	account, err := s.accounts.GetByID(ctx, record.AccountID)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return domain.Account{}, false, nil
	}
	if err != nil {
		return domain.Account{}, false, fmt.Errorf("get account by id: %w", err)
	}

	return account, true, nil
}

func (s *Switcher) record(ctx context.Context, report SwitchReport, success bool) {
	if s.history == nil {
		return
	}

	record := domain.SwitchRecord{
		AccountID:   report.Target.ID,
		DisplayName: report.Target.DisplayName,
		Outcome:     report.Outcome,
		Success:     success,
		Message:     report.Message,
		StartedAt:   report.StartedAt,
		FinishedAt:  report.FinishedAt,
	}
	if report.BackedUp != nil {
		record.BackedUpAs = report.BackedUp.DisplayName
	}

	if err := s.history.Append(context.WithoutCancel(ctx), record); err != nil {
		s.logger.WithError(err).Warn("could not record switch history")
	}
}

// Backup saves the live session as the account's snapshot.
func (s *Switcher) Backup(ctx context.Context, account domain.Account) (BackupResult, error) {
	if !s.mu.TryLock() {
		return BackupResult{}, domain.ErrSwitchInProgress
	}
	defer s.mu.Unlock()

	login := s.detector.Inspect(ctx)
	if !login.Active() {
		return BackupResult{Login: login}, domain.ErrNoActiveSession
	}

	result := BackupResult{
		Login:    login,
		Mismatch: login.Kind == domain.LoginIdentified && !account.SameUser(login.Identity),
	}
	if result.Mismatch {
		s.logger.WithFields(logrus.Fields{
			"account":  account.DisplayName,
			"identity": login.Identity,
		}).Warn("live session belongs to a different user")
	}

	snapshot, err := s.sessions.Backup(ctx, account, s.processes.IsRunning(ctx))
	if err != nil {
		return result, fmt.Errorf("backup %s: %w", account.DisplayName, err)
	}
	result.Snapshot = snapshot

	return result, nil
}

// ForceLogout stops the client if needed and removes the live session files.
func (s *Switcher) ForceLogout(ctx context.Context) (LogoutReport, error) {
	if !s.mu.TryLock() {
		return LogoutReport{}, domain.ErrSwitchInProgress
	}
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return LogoutReport{}, err
	}
	ctx = context.WithoutCancel(ctx)

	report := LogoutReport{WasRunning: s.processes.IsRunning(ctx)}
	if report.WasRunning {
		report.Termination = s.processes.TerminateAll(ctx)
		s.sleep(s.cfg.SettleDelay)
	}

	cleared, err := s.sessions.ClearLive(ctx)
	report.Cleared = cleared
	if err != nil {
		return report, fmt.Errorf("clear live session: %w", err)
	}

	return report, nil
}

func (s *Switcher) ClearSession(ctx context.Context) ([]domain.ClearedItem, error) {
	if !s.mu.TryLock() {
		return nil, domain.ErrSwitchInProgress
	}
	defer s.mu.Unlock()

	cleared, err := s.sessions.ClearLive(ctx)
	if err != nil {
		return cleared, fmt.Errorf("clear live session: %w", err)
	}
	return cleared, nil
}

func (s *Switcher) IsRunning(ctx context.Context) bool {
	return s.processes.IsRunning(ctx)
}

func (s *Switcher) IsLoggedIn(ctx context.Context) bool {
	return s.detector.HasActiveSession(ctx)
}

// CurrentIdentity returns the login description and false when no session is active.
func (s *Switcher) CurrentIdentity(ctx context.Context) (string, bool) {
	login := s.detector.Inspect(ctx)
	if !login.Active() {
		return "", false
	}
	return login.Describe(), true
}

// RenameSnapshot moves an account's saved session to its new display name. A
// missing snapshot is not an error.
func (s *Switcher) RenameSnapshot(ctx context.Context, from, to string) error {
	if !s.mu.TryLock() {
		return domain.ErrSwitchInProgress
	}
	defer s.mu.Unlock()

	if from == to || !s.sessions.SnapshotExists(from) {
		return nil
	}
	if err := s.sessions.Rename(ctx, from, to); err != nil {
		return fmt.Errorf("rename snapshot: %w", err)
	}
	return nil
}

func (s *Switcher) HasSnapshot(displayName string) bool {
	return s.sessions.SnapshotExists(displayName)
}

func (s *Switcher) Launch(ctx context.Context) error {
	if err := s.processes.Start(ctx); err != nil {
		return fmt.Errorf("launch client: %w", err)
	}
	return nil
}

// Status gathers a read-only view of accounts, snapshots, login state and processes.
func (s *Switcher) Status(ctx context.Context) (Status, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("list accounts: %w", err)
	}

	snapshots, err := s.sessions.List(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("list snapshots: %w", err)
	}
	byName := make(map[string]domain.Snapshot, len(snapshots))
	for _, snapshot := range snapshots {
		byName[snapshot.DisplayName] = snapshot
	}

	status := Status{
		Login:     s.detector.Inspect(ctx),
		Processes: s.processes.ListRunning(ctx),
		CheckedAt: s.clock.Now(),
	}

	var activeID domain.AccountID
	if status.Login.Active() {
		activeID = s.activeAccountID(ctx, status.Login, accounts)
	}

	status.Accounts = make([]AccountStatus, 0, len(accounts))
	for _, account := range accounts {
		row := AccountStatus{Account: account, Active: activeID != "" && account.ID == activeID}
		if snapshot, ok := byName[account.DisplayName]; ok {
			row.HasSnapshot = true
			row.Snapshot = &snapshot
		}
		if row.Active {
			active := account
			status.ActiveAccount = &active
		}
		status.Accounts = append(status.Accounts, row)
	}

	return status, nil
}

func (s *Switcher) activeAccountID(ctx context.Context, login domain.LoginState, accounts []domain.Account) domain.AccountID {
	if login.Kind == domain.LoginIdentified {
		for _, account := range accounts {
			if account.SameUser(login.Identity) {
				return account.ID
			}
		}
		return ""
	}

	if s.history == nil {
		return ""
	}
	record, err := s.history.LastSuccessful(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrAccountNotFound) {
			s.logger.WithError(err).Debug("could not read switch history")
		}
		return ""
	}
	return record.AccountID
}
