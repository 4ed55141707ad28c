package process

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/bnema/riot-accounts-cli/internal/logging"
	"github.com/bnema/riot-accounts-cli/internal/ports"
	"github.com/sirupsen/logrus"
)

const DefaultGraceInterval = 2 * time.Second

type Config struct {
	// GraceInterval is how long TerminateAll waits between the graceful
	// signal and the forceful kill.
	GraceInterval time.Duration
	// InstallPath is the Riot Client launch target.
	InstallPath string
	// Launcher runs InstallPath when set (wine on Linux, open on macOS).
	Launcher   string
	LaunchArgs []string
}

type Controller struct {
	cfg     Config
	backend backend
	matcher matcher
	logger  *logrus.Entry
	sleep   func(time.Duration)
	start   func(*exec.Cmd) error
	stat    func(string) (os.FileInfo, error)
}

var _ ports.ProcessController = (*Controller)(nil)

func NewController(cfg Config, logger logrus.FieldLogger) *Controller {
	return newController(cfg, newBackend(), logger)
}

func newController(cfg Config, b backend, logger logrus.FieldLogger) *Controller {
	if cfg.GraceInterval <= 0 {
		cfg.GraceInterval = DefaultGraceInterval
	}

	return &Controller{
		cfg:     cfg,
		backend: b,
		matcher: newMatcher(ClientProcessNames),
		logger:  logging.Component(logger, "process"),
		sleep:   time.Sleep,
		start:   startDetached,
		stat:    os.Stat,
	}
}

// ListRunning re-enumerates the OS process table on every call. Enumeration
// failures are logged and reported as an empty set.
func (c *Controller) ListRunning(ctx context.Context) []domain.Process {
	candidates, err := c.backend.processes(ctx)
	if err != nil {
		c.logger.WithError(err).Warn("process enumeration failed")
		return nil
	}

	var matched []domain.Process
	for _, cand := range candidates {
		name, ok := c.matcher.match(cand)
		if !ok {
			continue
		}
		matched = append(matched, domain.Process{PID: cand.PID, Name: name, Path: cand.Exe})
	}

	return matched
}

func (c *Controller) IsRunning(ctx context.Context) bool {
	return len(c.ListRunning(ctx)) > 0
}

// TerminateAll signals every matching process, waits the grace interval, then
// kills whatever is still alive. Each per-process failure is independent.
func (c *Controller) TerminateAll(ctx context.Context) domain.Termination {
	var result domain.Termination

	running := c.ListRunning(ctx)
	if len(running) == 0 {
		return result
	}

	for _, p := range running {
		err := c.backend.terminate(ctx, p.PID)
		if c.record(&result, p, err, "terminate") {
			result.Signaled = append(result.Signaled, p.Name)
		}
	}

	c.sleep(c.cfg.GraceInterval)

	for _, p := range c.ListRunning(ctx) {
		err := c.backend.kill(ctx, p.PID)
		switch {
		case err == nil:
			result.Killed = append(result.Killed, p.Name)
		case errors.Is(err, domain.ErrProcessVanished):
		default:
			c.record(&result, p, err, "kill")
			result.Survivors = append(result.Survivors, p)
		}
	}

	c.logger.WithFields(logrus.Fields{
		"signaled":  len(result.Signaled),
		"killed":    len(result.Killed),
		"denied":    len(result.Denied),
		"survivors": len(result.Survivors),
	}).Debug("terminate finished")

	return result
}

// record classifies a signal error and reports whether the signal was delivered.
func (c *Controller) record(result *domain.Termination, p domain.Process, err error, action string) bool {
	fields := logrus.Fields{"pid": p.PID, "name": p.Name, "action": action}

	switch {
	case err == nil:
		return true
	case errors.Is(err, domain.ErrProcessVanished):
		c.logger.WithFields(fields).Debug("process already exited")
	case errors.Is(err, domain.ErrProcessSignalDenied):
		c.logger.WithFields(fields).Warn("permission denied")
		result.Denied = append(result.Denied, p.Name)
	default:
		c.logger.WithFields(fields).WithError(err).Warn("signal failed")
	}
	return false
}

// Start launches the Riot Client without waiting for it.
func (c *Controller) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := c.cfg.InstallPath
	if target == "" {
		return fmt.Errorf("%w: no install path configured", domain.ErrLaunchTargetNotFound)
	}
	if _, err := c.stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrLaunchTargetNotFound, target)
		}
		return fmt.Errorf("stat launch target: %w", err)
	}

	cmd, err := c.command(target)
	if err != nil {
		return err
	}

	if err := c.start(cmd); err != nil {
		return fmt.Errorf("start riot client: %w", err)
	}

	c.logger.WithField("target", target).Info("riot client started")
	return nil
}

func (c *Controller) command(target string) (*exec.Cmd, error) {
	name := target
	args := append([]string(nil), c.cfg.LaunchArgs...)

	if c.cfg.Launcher != "" {
		launcher, err := exec.LookPath(c.cfg.Launcher)
		if err != nil {
			return nil, fmt.Errorf("%w: launcher %q: %v", domain.ErrLaunchTargetNotFound, c.cfg.Launcher, err)
		}
		name = launcher
		args = append([]string{target}, args...)
	}

	cmd := exec.Command(name, args...)
	cmd.Dir = filepath.Dir(target)
	return cmd, nil
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
