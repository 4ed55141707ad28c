package domain

import "errors"

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrSecretNotFound       = errors.New("secret not found")
	ErrDuplicateDisplayName = errors.New("display name already in use")
	ErrInvalidDisplayName   = errors.New("invalid display name")

	// Process control.
	ErrProcessSignalDenied  = errors.New("insufficient privilege to signal process")
	ErrProcessVanished      = errors.New("process exited before it could be signaled")
	ErrLaunchTargetNotFound = errors.New("client launch target not found")

	// Session state.
	ErrLiveDirectoryMissing = errors.New("live configuration directory does not exist")
	ErrSnapshotMissing      = errors.New("no session snapshot for account")
	ErrCopyFailed           = errors.New("session copy failed")
	ErrNoActiveSession      = errors.New("no active session")
	ErrSwitchInProgress     = errors.New("another switch is in progress")

	// ErrPartialState means a failed restore could not put the previous live
	// directory back; the client configuration needs manual attention.
	ErrPartialState = errors.New("live session directory left in a partial state")
)
