package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newBackupCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backup <account>",
		Short: "Save the current Riot Client session as the account's snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := app.service.ResolveAccount(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			result, err := app.switcher.Backup(cmd.Context(), account)
			if errors.Is(err, domain.ErrNoActiveSession) {
				return fmt.Errorf("%w: log in to the Riot Client with \"Stay signed in\" checked first", err)
			}
			if err != nil {
				return err
			}

			if result.Mismatch {
				writeWarnings(cmd.ErrOrStderr(), []string{
					fmt.Sprintf("the live session belongs to %s, not %s", result.Login.Identity, account.Username),
				})
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved session for %s (%.2f MB, %d files).\n",
				account.DisplayName, result.Snapshot.SizeMB(), result.Snapshot.FileCount)
			return err
		},
	}
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Stop the Riot Client and remove the live session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := app.switcher.ForceLogout(cmd.Context())
			writeTermination(cmd, report.Termination)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Logged out (%d items removed).\n", len(report.Cleared))
			return err
		},
	}
}

func newClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the live session files without stopping the client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.switcher.IsRunning(cmd.Context()) {
				writeWarnings(cmd.ErrOrStderr(), []string{"the Riot Client is running and may rewrite its session; use `ra logout` to stop it first"})
			}

			cleared, err := app.switcher.ClearSession(cmd.Context())
			for _, item := range cleared {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s %s\n", item.Kind, item.Path)
			}
			if err != nil {
				return err
			}

			if len(cleared) == 0 {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "Nothing to clear.")
			}
			return err
		},
	}
}

func newLaunchCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "launch",
		Short: "Start the Riot Client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.switcher.IsRunning(cmd.Context()) {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "The Riot Client is already running.")
				return err
			}

			if err := app.switcher.Launch(cmd.Context()); err != nil {
				if errors.Is(err, domain.ErrLaunchTargetNotFound) {
					return fmt.Errorf("%w: set client.install_path in %s", err, filepath.Join(app.cfg.Paths.Home, "config.toml"))
				}
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Riot Client started.")
			return err
		},
	}
}

func writeTermination(cmd *cobra.Command, t domain.Termination) {
	if t.Empty() {
		return
	}

	for _, name := range t.Signaled {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "stopped %s\n", name)
	}
	for _, name := range t.Killed {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "killed %s\n", name)
	}

	warnings := make([]string, 0, len(t.Denied)+len(t.Survivors))
	for _, name := range t.Denied {
		warnings = append(warnings, fmt.Sprintf("not allowed to stop %s", name))
	}
	for _, p := range t.Survivors {
		warnings = append(warnings, fmt.Sprintf("%s (pid %d) is still running", p.Name, p.PID))
	}
	writeWarnings(cmd.ErrOrStderr(), warnings)
}
