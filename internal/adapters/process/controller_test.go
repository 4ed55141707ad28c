package process

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu           sync.Mutex
	snapshots    [][]candidate
	listErr      error
	terminateErr map[int]error
	killErr      map[int]error
	terminated   []int
	killed       []int
}

func (f *fakeBackend) processes(context.Context) ([]candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.snapshots) == 0 {
		return nil, nil
	}
	current := f.snapshots[0]
	if len(f.snapshots) > 1 {
		f.snapshots = f.snapshots[1:]
	}
	return current, nil
}

func (f *fakeBackend) terminate(_ context.Context, pid int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.terminated = append(f.terminated, pid)
	return f.terminateErr[pid]
}

func (f *fakeBackend) kill(_ context.Context, pid int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.killed = append(f.killed, pid)
	return f.killErr[pid]
}

func newTestController(t *testing.T, b backend, cfg Config) (*Controller, *[]time.Duration) {
	t.Helper()

	c := newController(cfg, b, nil)
	var slept []time.Duration
	c.sleep = func(d time.Duration) { slept = append(slept, d) }
	return c, &slept
}

func TestListRunningMatchesAllowList(t *testing.T) {
	t.Parallel()

	b := &fakeBackend{snapshots: [][]candidate{{
		{PID: 10, Name: "RiotClientServi", Exe: ""},
		{PID: 11, Name: "wine64-preloader", Args: []string{`C:\Riot Games\Riot Client\RiotClientUx.exe`}},
		{PID: 12, Name: "VALORANT.EXE"},
		{PID: 13, Name: "bash", Exe: "/usr/bin/bash"},
		{PID: 14, Name: "LeagueClient", Exe: "/opt/league/LeagueClient.exe"},
		{PID: 15, Name: "RiotClientThing"},
		{PID: 16, Name: "League of Legen"},
	}}}
	c, _ := newTestController(t, b, Config{})

	got := c.ListRunning(context.Background())

	assert.Equal(t, []domain.Process{
		{PID: 10, Name: "RiotClientServices.exe"},
		{PID: 11, Name: "RiotClientUx.exe"},
		{PID: 12, Name: "VALORANT.exe"},
		{PID: 14, Name: "LeagueClient.exe", Path: "/opt/league/LeagueClient.exe"},
		{PID: 16, Name: "League of Legends.exe"},
	}, got)
}

func TestListRunningEnumerationErrorIsEmpty(t *testing.T) {
	t.Parallel()

	c, _ := newTestController(t, &fakeBackend{listErr: errors.New("boom")}, Config{})

	assert.Empty(t, c.ListRunning(context.Background()))
	assert.False(t, c.IsRunning(context.Background()))
}

func TestTerminateAllEmptySetDoesNotWait(t *testing.T) {
	t.Parallel()

	c, slept := newTestController(t, &fakeBackend{}, Config{})

	result := c.TerminateAll(context.Background())

	assert.True(t, result.Empty())
	assert.Empty(t, *slept)
}

func TestTerminateAllGracefulThenForceful(t *testing.T) {
	t.Parallel()

	b := &fakeBackend{
		snapshots: [][]candidate{
			{{PID: 1, Name: "RiotClientServices.exe"}, {PID: 2, Name: "RiotClientUx.exe"}},
			{{PID: 2, Name: "RiotClientUx.exe"}},
		},
	}
	c, slept := newTestController(t, b, Config{GraceInterval: 500 * time.Millisecond})

	result := c.TerminateAll(context.Background())

	assert.Equal(t, []int{1, 2}, b.terminated)
	assert.Equal(t, []int{2}, b.killed)
	assert.Equal(t, []time.Duration{500 * time.Millisecond}, *slept)
	assert.Equal(t, []string{"RiotClientServices.exe", "RiotClientUx.exe"}, result.Signaled)
	assert.Equal(t, []string{"RiotClientUx.exe"}, result.Killed)
	assert.Empty(t, result.Survivors)
}

func TestTerminateAllFailuresAreIndependent(t *testing.T) {
	t.Parallel()

	b := &fakeBackend{
		snapshots: [][]candidate{
			{{PID: 1, Name: "RiotClientServices.exe"}, {PID: 2, Name: "LeagueClient.exe"}, {PID: 3, Name: "VALORANT.exe"}},
			{{PID: 2, Name: "LeagueClient.exe"}, {PID: 3, Name: "VALORANT.exe"}},
		},
		terminateErr: map[int]error{
			1: domain.ErrProcessVanished,
			2: domain.ErrProcessSignalDenied,
		},
		killErr: map[int]error{
			2: domain.ErrProcessSignalDenied,
			3: domain.ErrProcessVanished,
		},
	}
	c, _ := newTestController(t, b, Config{})

	result := c.TerminateAll(context.Background())

	assert.Equal(t, []int{1, 2, 3}, b.terminated)
	assert.Equal(t, []int{2, 3}, b.killed)
	assert.Equal(t, []string{"VALORANT.exe"}, result.Signaled)
	assert.Empty(t, result.Killed)
	assert.Equal(t, []string{"LeagueClient.exe", "LeagueClient.exe"}, result.Denied)
	assert.Equal(t, []domain.Process{{PID: 2, Name: "LeagueClient.exe"}}, result.Survivors)
}

func TestTerminateAllDefaultGrace(t *testing.T) {
	t.Parallel()

	b := &fakeBackend{snapshots: [][]candidate{{{PID: 1, Name: "VALORANT.exe"}}, {}}}
	c, slept := newTestController(t, b, Config{})

	c.TerminateAll(context.Background())

	assert.Equal(t, []time.Duration{DefaultGraceInterval}, *slept)
}

func TestStartMissingTarget(t *testing.T) {
	t.Parallel()

	c, _ := newTestController(t, &fakeBackend{}, Config{})
	err := c.Start(context.Background())
	require.ErrorIs(t, err, domain.ErrLaunchTargetNotFound)

	c, _ = newTestController(t, &fakeBackend{}, Config{InstallPath: filepath.Join(t.TempDir(), "missing.exe")})
	err = c.Start(context.Background())
	require.ErrorIs(t, err, domain.ErrLaunchTargetNotFound)
}

func TestStartLaunchesDetached(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "RiotClientServices.exe")
	require.NoError(t, os.WriteFile(target, []byte("stub"), 0o700))

	c, _ := newTestController(t, &fakeBackend{}, Config{InstallPath: target, LaunchArgs: []string{"--launch-product=valorant"}})
	var started *exec.Cmd
	c.start = func(cmd *exec.Cmd) error {
		started = cmd
		return nil
	}

	require.NoError(t, c.Start(context.Background()))
	require.NotNil(t, started)
	assert.Equal(t, target, started.Path)
	assert.Equal(t, []string{target, "--launch-product=valorant"}, started.Args)
	assert.Equal(t, filepath.Dir(target), started.Dir)
}

func TestStartWrapsLaunchFailure(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "RiotClientServices.exe")
	require.NoError(t, os.WriteFile(target, []byte("stub"), 0o700))

	c, _ := newTestController(t, &fakeBackend{}, Config{InstallPath: target})
	c.start = func(*exec.Cmd) error { return errors.New("exec format error") }

	err := c.Start(context.Background())
	require.ErrorContains(t, err, "start riot client")
	assert.NotErrorIs(t, err, domain.ErrLaunchTargetNotFound)
}

func TestStartMissingLauncher(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "RiotClientServices.exe")
	require.NoError(t, os.WriteFile(target, []byte("stub"), 0o700))

	c, _ := newTestController(t, &fakeBackend{}, Config{InstallPath: target, Launcher: "definitely-not-a-launcher-binary"})
	c.start = func(*exec.Cmd) error {
		t.Fatal("start must not be called")
		return nil
	}

	require.ErrorIs(t, c.Start(context.Background()), domain.ErrLaunchTargetNotFound)
}
