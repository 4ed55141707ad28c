package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/riot-accounts-cli/internal/application"
	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/spf13/cobra"
)

type switchReportJSON struct {
	Account      domain.AccountID     `json:"account"`
	DisplayName  string               `json:"display_name"`
	Outcome      domain.SwitchOutcome `json:"outcome"`
	Phases       []application.Phase  `json:"phases"`
	WasRunning   bool                 `json:"was_running"`
	BackedUp     string               `json:"backed_up,omitempty"`
	Terminated   []string             `json:"terminated,omitempty"`
	Cleared      []string             `json:"cleared,omitempty"`
	Restarted    bool                 `json:"restarted"`
	PartialState bool                 `json:"partial_state"`
	Warnings     []string             `json:"warnings,omitempty"`
	Message      string               `json:"message"`
	Error        string               `json:"error,omitempty"`
}

func newSwitchCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "switch <account>",
		Short: "Make an account the active Riot Client session",
		Long:  "switch stops the Riot Client, saves the outgoing session when it belongs to a known account, clears the live session and restores the target account's saved session before starting the client again.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := app.service.ResolveAccount(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var report application.SwitchReport
			if asJSON {
				ctx, _, stop := guardInterrupts(cmd.Context())
				report, err = app.switcher.Switch(ctx, account)
				stop()
			} else {
				title := fmt.Sprintf("Switching to %s:", account.DisplayName)
				err = runWithProgress(cmd.Context(), cmd.ErrOrStderr(), title, func(ctx context.Context, step func(string)) error {
					var switchErr error
					report, switchErr = app.switcher.Switch(ctx, account, application.OnPhase(func(phase application.Phase) {
						step(phaseStep(phase))
					}))
					return switchErr
				})
			}

			if err == nil {
				if markErr := app.service.MarkUsed(cmd.Context(), account.ID); markErr != nil {
					app.logger.WithError(markErr).Warn("could not record last use")
				}
			}

			if asJSON {
				if encodeErr := writeSwitchJSON(cmd.OutOrStdout(), report, err); encodeErr != nil {
					return encodeErr
				}
				return err
			}

			writeWarnings(cmd.ErrOrStderr(), report.Warnings)
			if err != nil {
				return err
			}
			if report.BackedUp != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved session for %s.\n", report.BackedUp.DisplayName)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), report.Message)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the switch report as JSON")

	return cmd
}

func writeSwitchJSON(w io.Writer, report application.SwitchReport, switchErr error) error {
	out := switchReportJSON{
		Account:      report.Target.ID,
		DisplayName:  report.Target.DisplayName,
		Outcome:      report.Outcome,
		Phases:       report.Phases,
		WasRunning:   report.WasRunning,
		Terminated:   append(append([]string{}, report.Termination.Signaled...), report.Termination.Killed...),
		Cleared:      clearedPaths(report.Cleared),
		Restarted:    report.Restarted,
		PartialState: report.PartialState,
		Warnings:     report.Warnings,
		Message:      report.Message,
	}
	if report.BackedUp != nil {
		out.BackedUp = report.BackedUp.DisplayName
	}
	if switchErr != nil {
		out.Error = switchErr.Error()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func clearedPaths(items []domain.ClearedItem) []string {
	paths := make([]string, 0, len(items))
	for _, item := range items {
		paths = append(paths, item.Path)
	}
	return paths
}

func writeWarnings(w io.Writer, warnings []string) {
	for _, warning := range warnings {
		_, _ = fmt.Fprintf(w, "warning: %s\n", strings.TrimSpace(warning))
	}
}
