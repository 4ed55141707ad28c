//go:build !linux

package process

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/shirou/gopsutil/v4/process"
)

type gopsutilBackend struct{}

func newBackend() backend {
	return gopsutilBackend{}
}

func (gopsutilBackend) processes(ctx context.Context) ([]candidate, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	candidates := make([]candidate, 0, len(procs))
	for _, p := range procs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name, _ := p.NameWithContext(ctx)
		exe, _ := p.ExeWithContext(ctx)
		args, _ := p.CmdlineSliceWithContext(ctx)
		if name == "" && exe == "" && len(args) == 0 {
			continue
		}

		candidates = append(candidates, candidate{PID: int(p.Pid), Name: name, Exe: exe, Args: args})
	}

	return candidates, nil
}

func (gopsutilBackend) terminate(ctx context.Context, pid int) error {
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return classify(ctx, p, pid, err)
	}
	return classify(ctx, p, pid, p.TerminateWithContext(ctx))
}

func (gopsutilBackend) kill(ctx context.Context, pid int) error {
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return classify(ctx, p, pid, err)
	}
	return classify(ctx, p, pid, p.KillWithContext(ctx))
}

func classify(ctx context.Context, p *process.Process, pid int, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, process.ErrorProcessNotRunning):
		return domain.ErrProcessVanished
	case errors.Is(err, os.ErrPermission):
		return domain.ErrProcessSignalDenied
	}

	if p != nil {
		if running, runErr := p.IsRunningWithContext(ctx); runErr == nil && !running {
			return domain.ErrProcessVanished
		}
	}

	return fmt.Errorf("signal pid %d: %w", pid, err)
}
