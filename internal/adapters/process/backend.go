package process

import "context"

// candidate is an OS process as seen by a backend, before allow-list matching.
type candidate struct {
	PID  int
	Name string
	Exe  string
	Args []string
}

// backend is the OS-specific half of the controller. Signal methods return
// domain.ErrProcessVanished or domain.ErrProcessSignalDenied where the OS
// reports those conditions.
type backend interface {
	processes(ctx context.Context) ([]candidate, error)
	terminate(ctx context.Context, pid int) error
	kill(ctx context.Context, pid int) error
}
