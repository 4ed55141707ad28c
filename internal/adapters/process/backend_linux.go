//go:build linux

package process

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/prometheus/procfs"
	"golang.org/x/sys/unix"
)

type procfsBackend struct {
	mountPoint string
}

func newBackend() backend {
	return procfsBackend{mountPoint: procfs.DefaultMountPoint}
}

func (b procfsBackend) processes(ctx context.Context) ([]candidate, error) {
	fs, err := procfs.NewFS(b.mountPoint)
	if err != nil {
		return nil, fmt.Errorf("open procfs: %w", err)
	}

	procs, err := fs.AllProcs()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	candidates := make([]candidate, 0, len(procs))
	for _, p := range procs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Processes can exit mid-scan; keep whatever attributes are still readable.
		comm, _ := p.Comm()
		exe, _ := p.Executable()
		args, _ := p.CmdLine()
		if comm == "" && exe == "" && len(args) == 0 {
			continue
		}

		candidates = append(candidates, candidate{PID: p.PID, Name: comm, Exe: exe, Args: args})
	}

	return candidates, nil
}

func (procfsBackend) terminate(_ context.Context, pid int) error {
	return signal(pid, unix.SIGTERM)
}

func (procfsBackend) kill(_ context.Context, pid int) error {
	return signal(pid, unix.SIGKILL)
}

func signal(pid int, sig unix.Signal) error {
	err := unix.Kill(pid, sig)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, unix.ESRCH):
		return domain.ErrProcessVanished
	case errors.Is(err, unix.EPERM):
		return domain.ErrProcessSignalDenied
	default:
		return fmt.Errorf("signal %s to pid %d: %w", sig, pid, err)
	}
}
