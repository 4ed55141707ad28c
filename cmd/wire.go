package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	historysqlite "github.com/bnema/riot-accounts-cli/internal/adapters/history/sqlite"
	"github.com/bnema/riot-accounts-cli/internal/adapters/process"
	statusadapter "github.com/bnema/riot-accounts-cli/internal/adapters/render/status"
	tomlrepo "github.com/bnema/riot-accounts-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/riot-accounts-cli/internal/adapters/secrets/chain"
	filestore "github.com/bnema/riot-accounts-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/riot-accounts-cli/internal/adapters/secrets/pass"
	"github.com/bnema/riot-accounts-cli/internal/adapters/session/detector"
	sessionfs "github.com/bnema/riot-accounts-cli/internal/adapters/session/fs"
	"github.com/bnema/riot-accounts-cli/internal/application"
	"github.com/bnema/riot-accounts-cli/internal/config"
	"github.com/bnema/riot-accounts-cli/internal/logging"
	"github.com/bnema/riot-accounts-cli/internal/ports"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var errHistoryUnavailable = errors.New("switch history is unavailable")

type app struct {
	cfg            config.Config
	logger         *logrus.Logger
	service        *application.Service
	switcher       *application.Switcher
	sessions       *sessionfs.Store
	history        *historysqlite.HistoryRepo
	db             *historysqlite.DB
	statusRenderer func(application.Status, statusadapter.RenderOptions) (string, error)
	now            func() time.Time
	wired          bool
}

func (a *app) wire(v *viper.Viper, stderr io.Writer) error {
	if a.wired {
		return nil
	}

	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
		Stderr: stderr,
	})
	if err != nil {
		return fmt.Errorf("wire logger: %w", err)
	}

	repo, err := tomlrepo.NewRepository(cfg.Paths.Accounts)
	if err != nil {
		return fmt.Errorf("wire account repository: %w", err)
	}

	secretStore, err := newSecretStore(cfg)
	if err != nil {
		return fmt.Errorf("wire secret store: %w", err)
	}

	clock := ports.SystemClock{}
	sessions, err := sessionfs.NewStore(sessionfs.Config{
		LiveDir:      cfg.Paths.LiveDir,
		SnapshotRoot: cfg.Paths.SnapshotRoot,
	}, clock, logger)
	if err != nil {
		return fmt.Errorf("wire session store: %w", err)
	}

	deps := application.SwitcherDeps{
		Accounts: repo,
		Processes: process.NewController(process.Config{
			GraceInterval: cfg.Process.GraceInterval,
			InstallPath:   cfg.Client.InstallPath,
			Launcher:      cfg.Client.Launcher,
			LaunchArgs:    cfg.Client.LaunchArgs,
		}, logger),
		Sessions: sessions,
		Detector: detector.New(cfg.Paths.LiveDir, logger),
		Clock:    clock,
		Logger:   logger,
	}

	db, err := historysqlite.Open(cfg.Paths.HistoryDB)
	if err != nil {
		logger.WithError(err).Warn("switch history disabled")
	} else {
		a.db = db
		a.history = historysqlite.NewHistoryRepo(db)
		deps.History = a.history
	}

	a.cfg = cfg
	a.logger = logger
	a.service = application.NewService(repo, secretStore, clock)
	a.sessions = sessions
	a.switcher = application.NewSwitcher(deps, application.SwitcherConfig{
		SettleDelay:                  cfg.Switch.SettleDelay,
		AttributeUnknownToLastActive: cfg.Switch.AttributeUnknownToLastActive,
	})
	a.statusRenderer = statusadapter.Render
	a.now = time.Now
	a.wired = true

	return nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func (a *app) requireHistory() (*historysqlite.HistoryRepo, error) {
	if a.history == nil {
		return nil, errHistoryUnavailable
	}
	return a.history, nil
}

func newSecretStore(cfg config.Config) (ports.SecretStore, error) {
	switch cfg.Secrets.Backend {
	case config.SecretsBackendPass:
		return passstore.NewStore(passstore.Config{}), nil
	case config.SecretsBackendFile:
		return filestore.NewStore(cfg.Paths.Secrets), nil
	default:
		return chainstore.NewPassFirstWithEncryptedFileFallback(cfg.Paths.Secrets)
	}
}
