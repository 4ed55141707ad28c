package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/spf13/cobra"
)

const defaultHistoryLimit = 20

type historyEntryJSON struct {
	ID          string               `json:"id"`
	AccountID   domain.AccountID     `json:"account_id"`
	DisplayName string               `json:"display_name"`
	Outcome     domain.SwitchOutcome `json:"outcome"`
	Success     bool                 `json:"success"`
	BackedUpAs  string               `json:"backed_up_as,omitempty"`
	Message     string               `json:"message,omitempty"`
	StartedAt   time.Time            `json:"started_at"`
	FinishedAt  time.Time            `json:"finished_at"`
}

func newHistoryCmd(app *app) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent account switches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			history, err := app.requireHistory()
			if err != nil {
				return err
			}

			records, err := history.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if asJSON {
				entries := make([]historyEntryJSON, 0, len(records))
				for _, record := range records {
					entries = append(entries, historyEntryJSON{
						ID:          record.ID,
						AccountID:   record.AccountID,
						DisplayName: record.DisplayName,
						Outcome:     record.Outcome,
						Success:     record.Success,
						BackedUpAs:  record.BackedUpAs,
						Message:     record.Message,
						StartedAt:   record.StartedAt,
						FinishedAt:  record.FinishedAt,
					})
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			if len(records) == 0 {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "No switches recorded.")
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "WHEN\tACCOUNT\tOUTCOME\tBACKED UP\tTOOK")
			for _, record := range records {
				backedUp := record.BackedUpAs
				if backedUp == "" {
					backedUp = "-"
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s (%s)\t%s\t%s\t%s\n",
					formatTimestamp(record.StartedAt),
					record.DisplayName,
					record.AccountID,
					record.Outcome,
					backedUp,
					record.Duration().Round(time.Millisecond),
				)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultHistoryLimit, "Maximum number of switches to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print history as JSON")

	return cmd
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
