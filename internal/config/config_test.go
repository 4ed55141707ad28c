package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatformDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		goos         string
		home         string
		localAppData string
		want         Platform
	}{
		{
			name:         "windows uses LOCALAPPDATA",
			goos:         "windows",
			home:         `C:\Users\ana`,
			localAppData: `C:\Users\ana\AppData\Local`,
			want: Platform{
				LiveDir:     `C:\Users\ana\AppData\Local\Riot Games\Riot Client`,
				InstallPath: `C:\Riot Games\Riot Client\RiotClientServices.exe`,
			},
		},
		{
			name: "windows falls back to home AppData",
			goos: "windows",
			home: `C:\Users\ana\`,
			want: Platform{
				LiveDir:     `C:\Users\ana\AppData\Local\Riot Games\Riot Client`,
				InstallPath: `C:\Riot Games\Riot Client\RiotClientServices.exe`,
			},
		},
		{
			name: "darwin",
			goos: "darwin",
			home: "/Users/ana",
			want: Platform{
				LiveDir:     "/Users/ana/Library/Application Support/Riot Games/Riot Client",
				InstallPath: "/Applications/Riot Games/Riot Client.app",
				Launcher:    "open",
			},
		},
		{
			name: "linux",
			goos: "linux",
			home: "/home/ana",
			want: Platform{
				LiveDir:     "/home/ana/.config/Riot Games/Riot Client",
				InstallPath: "/home/ana/.local/share/Riot Games/Riot Client/RiotClientServices.exe",
				Launcher:    "wine",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, PlatformDefaults(tt.goos, tt.home, tt.localAppData))
		})
	}
}

func TestLoadForDefaults(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	cfg, err := LoadFor(viper.New(), "linux", home, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, DirName), cfg.Paths.Home)
	assert.Equal(t, filepath.Join(home, ".config", "Riot Games", "Riot Client"), cfg.Paths.LiveDir)
	assert.Equal(t, filepath.Join(home, DirName, "snapshots"), cfg.Paths.SnapshotRoot)
	assert.Equal(t, filepath.Join(home, DirName, "accounts.toml"), cfg.Paths.Accounts)
	assert.Equal(t, filepath.Join(home, DirName, "history.db"), cfg.Paths.HistoryDB)
	assert.Equal(t, filepath.Join(home, DirName, "secrets"), cfg.Paths.Secrets)
	assert.Equal(t, 2*time.Second, cfg.Process.GraceInterval)
	assert.Equal(t, 3*time.Second, cfg.Switch.SettleDelay)
	assert.False(t, cfg.Switch.AttributeUnknownToLastActive)
	assert.Equal(t, 5*time.Second, cfg.Status.Interval)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "wine", cfg.Client.Launcher)
	assert.Equal(t, SecretsBackendAuto, cfg.Secrets.Backend)
}

func TestLoadForReadsConfigFile(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	dataDir := filepath.Join(home, DirName)
	require.NoError(t, os.MkdirAll(dataDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "config.toml"), []byte(`
[paths]
live_dir = "~/riot/live"

[process]
grace_interval = "500ms"

[switch]
settle_delay = "1s"
attribute_unknown_to_last_active = true

[client]
launch_args = ["--launch-product=valorant"]

[log]
level = "debug"
`), 0o600))

	cfg, err := LoadFor(viper.New(), "linux", home, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "riot", "live"), cfg.Paths.LiveDir)
	assert.Equal(t, 500*time.Millisecond, cfg.Process.GraceInterval)
	assert.Equal(t, time.Second, cfg.Switch.SettleDelay)
	assert.True(t, cfg.Switch.AttributeUnknownToLastActive)
	assert.Equal(t, []string{"--launch-product=valorant"}, cfg.Client.LaunchArgs)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadForRejectsBrokenConfig(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	dataDir := filepath.Join(home, DirName)
	require.NoError(t, os.MkdirAll(dataDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "config.toml"), []byte("[paths\n"), 0o600))

	_, err := LoadFor(viper.New(), "linux", home, "")
	require.ErrorContains(t, err, "read config file")
}

func TestLoadForEnvOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv("RA_PATHS_SNAPSHOT_ROOT", filepath.Join(home, "elsewhere"))
	t.Setenv("RA_SWITCH_SETTLE_DELAY", "0s")
	t.Setenv("RA_SECRETS_BACKEND", "File")

	cfg, err := LoadFor(viper.New(), "linux", home, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "elsewhere"), cfg.Paths.SnapshotRoot)
	assert.Equal(t, time.Duration(0), cfg.Switch.SettleDelay)
	assert.Equal(t, SecretsBackendFile, cfg.Secrets.Backend)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := Config{
		Paths:   Paths{LiveDir: "/a", SnapshotRoot: "/b"},
		Status:  Status{Interval: time.Second},
		Secrets: Secrets{Backend: SecretsBackendAuto},
	}
	require.NoError(t, valid.Validate())

	same := valid
	same.Paths.SnapshotRoot = "/a/"
	require.ErrorContains(t, same.Validate(), "must differ")

	negative := valid
	negative.Switch.SettleDelay = -time.Second
	require.ErrorContains(t, negative.Validate(), KeySettleDelay)

	noInterval := valid
	noInterval.Status.Interval = 0
	require.ErrorContains(t, noInterval.Validate(), KeyStatusInterval)

	keyring := valid
	keyring.Secrets.Backend = "keyring"
	require.ErrorContains(t, keyring.Validate(), KeySecretsBackend)
}
