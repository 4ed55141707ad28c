package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	envPrefix  = "RA"

	// DirName is the per-user data directory under $HOME.
	DirName = ".riot-accounts"

	KeyLiveDir           = "paths.live_dir"
	KeySnapshotRoot      = "paths.snapshot_root"
	KeyAccountsPath      = "paths.accounts"
	KeyHistoryDB         = "paths.history_db"
	KeySecretsDir        = "paths.secrets"
	KeySecretsBackend    = "secrets.backend"
	KeyInstallPath       = "client.install_path"
	KeyLauncher          = "client.launcher"
	KeyLaunchArgs        = "client.launch_args"
	KeyGraceInterval     = "process.grace_interval"
	KeySettleDelay       = "switch.settle_delay"
	KeyAttributeUnknown  = "switch.attribute_unknown_to_last_active"
	KeyStatusInterval    = "status.interval"
	KeyLogLevel          = "log.level"
	KeyLogFormat         = "log.format"
	KeyLogFile           = "log.file"
	defaultGrace         = 2 * time.Second
	defaultSettle        = 3 * time.Second
	defaultStatusRefresh = 5 * time.Second
)

type Config struct {
	Paths   Paths
	Client  Client
	Process Process
	Switch  Switch
	Status  Status
	Secrets Secrets
	Log     Log
}

const (
	SecretsBackendAuto = "auto"
	SecretsBackendPass = "pass"
	SecretsBackendFile = "file"
)

// Secrets selects where account passwords live. Auto tries pass first and
// falls back to the encrypted file store.
type Secrets struct {
	Backend string
}

type Paths struct {
	Home         string
	LiveDir      string
	SnapshotRoot string
	Accounts     string
	HistoryDB    string
	Secrets      string
}

type Client struct {
	InstallPath string
	Launcher    string
	LaunchArgs  []string
}

type Process struct {
	GraceInterval time.Duration
}

type Switch struct {
	SettleDelay                  time.Duration
	AttributeUnknownToLastActive bool
}

type Status struct {
	Interval time.Duration
}

type Log struct {
	Level  string
	Format string
	File   string
}

// Load reads ~/.riot-accounts/config.toml when present, then RA_* environment
// variables, on top of the platform defaults.
func Load(v *viper.Viper) (Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}

	return LoadFor(v, runtime.GOOS, homeDir, os.Getenv("LOCALAPPDATA"))
}

// LoadFor is Load with the platform inputs made explicit.
func LoadFor(v *viper.Viper, goos, homeDir, localAppData string) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	if homeDir == "" {
		return Config{}, errors.New("home directory is empty")
	}

	dataDir := filepath.Join(homeDir, DirName)
	platform := PlatformDefaults(goos, homeDir, localAppData)

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dataDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyLiveDir, platform.LiveDir)
	v.SetDefault(KeySnapshotRoot, filepath.Join(dataDir, "snapshots"))
	v.SetDefault(KeyAccountsPath, filepath.Join(dataDir, "accounts.toml"))
	v.SetDefault(KeyHistoryDB, filepath.Join(dataDir, "history.db"))
	v.SetDefault(KeySecretsDir, filepath.Join(dataDir, "secrets"))
	v.SetDefault(KeySecretsBackend, SecretsBackendAuto)
	v.SetDefault(KeyInstallPath, platform.InstallPath)
	v.SetDefault(KeyLauncher, platform.Launcher)
	v.SetDefault(KeyLaunchArgs, platform.LaunchArgs)
	v.SetDefault(KeyGraceInterval, defaultGrace)
	v.SetDefault(KeySettleDelay, defaultSettle)
	v.SetDefault(KeyAttributeUnknown, false)
	v.SetDefault(KeyStatusInterval, defaultStatusRefresh)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyLogFile, "")

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		Paths: Paths{
			Home:         dataDir,
			LiveDir:      expandHome(v.GetString(KeyLiveDir), homeDir),
			SnapshotRoot: expandHome(v.GetString(KeySnapshotRoot), homeDir),
			Accounts:     expandHome(v.GetString(KeyAccountsPath), homeDir),
			HistoryDB:    expandHome(v.GetString(KeyHistoryDB), homeDir),
			Secrets:      expandHome(v.GetString(KeySecretsDir), homeDir),
		},
		Client: Client{
			InstallPath: expandHome(v.GetString(KeyInstallPath), homeDir),
			Launcher:    v.GetString(KeyLauncher),
			LaunchArgs:  v.GetStringSlice(KeyLaunchArgs),
		},
		Process: Process{GraceInterval: v.GetDuration(KeyGraceInterval)},
		Switch: Switch{
			SettleDelay:                  v.GetDuration(KeySettleDelay),
			AttributeUnknownToLastActive: v.GetBool(KeyAttributeUnknown),
		},
		Status:  Status{Interval: v.GetDuration(KeyStatusInterval)},
		Secrets: Secrets{Backend: strings.ToLower(strings.TrimSpace(v.GetString(KeySecretsBackend)))},
		Log: Log{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
			File:   expandHome(v.GetString(KeyLogFile), homeDir),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Paths.LiveDir) == "" {
		return fmt.Errorf("%s is empty", KeyLiveDir)
	}
	if strings.TrimSpace(c.Paths.SnapshotRoot) == "" {
		return fmt.Errorf("%s is empty", KeySnapshotRoot)
	}
	if filepath.Clean(c.Paths.LiveDir) == filepath.Clean(c.Paths.SnapshotRoot) {
		return fmt.Errorf("%s and %s must differ", KeyLiveDir, KeySnapshotRoot)
	}
	if c.Process.GraceInterval < 0 {
		return fmt.Errorf("%s must not be negative", KeyGraceInterval)
	}
	if c.Switch.SettleDelay < 0 {
		return fmt.Errorf("%s must not be negative", KeySettleDelay)
	}
	if c.Status.Interval <= 0 {
		return fmt.Errorf("%s must be positive", KeyStatusInterval)
	}
	switch c.Secrets.Backend {
	case SecretsBackendAuto, SecretsBackendPass, SecretsBackendFile:
	default:
		return fmt.Errorf("%s must be one of auto, pass, file; got %q", KeySecretsBackend, c.Secrets.Backend)
	}
	return nil
}

func expandHome(path, homeDir string) string {
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
