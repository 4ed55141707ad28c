package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	statusadapter "github.com/bnema/riot-accounts-cli/internal/adapters/render/status"
	"github.com/bnema/riot-accounts-cli/internal/application"
	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/spf13/cobra"
)

const defaultStaleAfter = 30 * 24 * time.Hour

type statusJSON struct {
	Running       bool                  `json:"running"`
	Processes     []processJSON         `json:"processes"`
	Session       string                `json:"session"`
	SessionState  domain.LoginStateKind `json:"session_state"`
	ActiveAccount *domain.AccountID     `json:"active_account,omitempty"`
	Accounts      []accountStatusJSON   `json:"accounts"`
	CheckedAt     time.Time             `json:"checked_at"`
}

type processJSON struct {
	PID  int    `json:"pid"`
	Name string `json:"name"`
}

type accountStatusJSON struct {
	ID          domain.AccountID `json:"id"`
	DisplayName string           `json:"display_name"`
	Username    string           `json:"username"`
	Active      bool             `json:"active"`
	Snapshot    *snapshotJSON    `json:"snapshot,omitempty"`
}

type snapshotJSON struct {
	DisplayName   string    `json:"display_name"`
	Username      string    `json:"username,omitempty"`
	BackupCreated time.Time `json:"backup_created"`
	SizeMB        float64   `json:"size_mb"`
	FileCount     int       `json:"file_count"`
	SessionType   string    `json:"session_type,omitempty"`
}

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool
	var watch bool
	var interval time.Duration
	var staleAfter time.Duration

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the client, the live session and every account's snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if watch && asJSON {
				return errors.New("--watch and --json cannot be combined")
			}

			if watch {
				if interval <= 0 {
					interval = app.cfg.Status.Interval
				}

				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()

				watcher := application.NewStatusWatcher(app.switcher, interval, app.cfg.Paths.LiveDir, app.logger)
				return statusadapter.Watch(ctx, watcher, statusadapter.RenderOptions{
					Now:        app.now(),
					StaleAfter: staleAfter,
				}, cmd.InOrStdin(), cmd.OutOrStdout())
			}

			status, err := app.switcher.Status(cmd.Context())
			if err != nil {
				return err
			}

			return writeStatusOutput(cmd, app, status, staleAfter, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print status as JSON")
	cmd.Flags().BoolVar(&watch, "watch", false, "Keep refreshing until interrupted")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Refresh interval for --watch (defaults to status.interval)")
	cmd.Flags().DurationVar(&staleAfter, "stale-after", defaultStaleAfter, "Mark snapshots older than this as stale")

	return cmd
}

func writeStatusOutput(cmd *cobra.Command, app *app, status application.Status, staleAfter time.Duration, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(toStatusJSON(status))
	}

	rendered, err := app.statusRenderer(status, statusadapter.RenderOptions{
		Now:        app.now(),
		StaleAfter: staleAfter,
	})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func toStatusJSON(status application.Status) statusJSON {
	out := statusJSON{
		Running:      status.Running(),
		Processes:    make([]processJSON, 0, len(status.Processes)),
		Session:      status.Login.Describe(),
		SessionState: status.Login.Kind,
		Accounts:     make([]accountStatusJSON, 0, len(status.Accounts)),
		CheckedAt:    status.CheckedAt,
	}
	if status.ActiveAccount != nil {
		id := status.ActiveAccount.ID
		out.ActiveAccount = &id
	}

	for _, p := range status.Processes {
		out.Processes = append(out.Processes, processJSON{PID: p.PID, Name: p.Name})
	}

	for _, item := range status.Accounts {
		entry := accountStatusJSON{
			ID:          item.Account.ID,
			DisplayName: item.Account.DisplayName,
			Username:    item.Account.Username,
			Active:      item.Active,
		}
		if item.Snapshot != nil {
			snapshot := toSnapshotJSON(*item.Snapshot)
			entry.Snapshot = &snapshot
		}
		out.Accounts = append(out.Accounts, entry)
	}

	return out
}

func toSnapshotJSON(snapshot domain.Snapshot) snapshotJSON {
	return snapshotJSON{
		DisplayName:   snapshot.DisplayName,
		Username:      snapshot.Username,
		BackupCreated: snapshot.BackupCreated,
		SizeMB:        snapshot.SizeMB(),
		FileCount:     snapshot.FileCount,
		SessionType:   snapshot.SessionType,
	}
}
