package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newSnapshotCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Inspect and move saved sessions",
	}

	cmd.AddCommand(
		newSnapshotListCmd(app),
		newSnapshotInfoCmd(app),
		newSnapshotDeleteCmd(app),
		newSnapshotExportCmd(app),
		newSnapshotImportCmd(app),
	)

	return cmd
}

func newSnapshotListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshots, err := app.sessions.List(cmd.Context())
			if err != nil {
				return err
			}

			if len(snapshots) == 0 {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "No snapshots saved.")
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "NAME\tUSERNAME\tSIZE\tFILES\tBACKED UP")
			for _, snapshot := range snapshots {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%.2f MB\t%d\t%s\n",
					snapshot.DisplayName,
					snapshot.Username,
					snapshot.SizeMB(),
					snapshot.FileCount,
					formatTimestamp(snapshot.BackupCreated),
				)
			}
			return tw.Flush()
		},
	}
}

func newSnapshotInfoCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <account>",
		Short: "Show a saved session's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := snapshotName(cmd, app, args[0])

			snapshot, err := app.sessions.Get(cmd.Context(), name)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "name: %s\n", snapshot.DisplayName)
			_, _ = fmt.Fprintf(out, "username: %s\n", snapshot.Username)
			_, _ = fmt.Fprintf(out, "backed up: %s\n", formatTimestamp(snapshot.BackupCreated))
			_, _ = fmt.Fprintf(out, "size: %.2f MB (%d files)\n", snapshot.SizeMB(), snapshot.FileCount)
			_, _ = fmt.Fprintf(out, "session type: %s\n", snapshot.SessionType)
			_, _ = fmt.Fprintf(out, "client was running: %t\n", snapshot.SourceProcessRunning)
			_, err = fmt.Fprintf(out, "path: %s\n", snapshot.Path)
			return err
		},
	}
}

func newSnapshotDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <account>",
		Short: "Delete a saved session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := snapshotName(cmd, app, args[0])

			if err := app.sessions.Delete(cmd.Context(), name); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted snapshot %s\n", name)
			return err
		},
	}
}

func newSnapshotExportCmd(app *app) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export <account>",
		Short: "Write a saved session as a zstd-compressed tar archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := snapshotName(cmd, app, args[0])

			if outputPath == "" || outputPath == "-" {
				if isTerminalWriter(cmd.OutOrStdout()) {
					return errors.New("refusing to write an archive to a terminal: use -o <file> or redirect stdout")
				}
				return app.sessions.Export(cmd.Context(), name, cmd.OutOrStdout())
			}

			file, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
			if err != nil {
				return fmt.Errorf("create %s: %w", outputPath, err)
			}

			if err := app.sessions.Export(cmd.Context(), name, file); err != nil {
				_ = file.Close()
				_ = os.Remove(outputPath)
				return err
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("close %s: %w", outputPath, err)
			}

			_, err = fmt.Fprintf(cmd.ErrOrStderr(), "Exported snapshot %s to %s\n", name, outputPath)
			return err
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Archive path (stdout when empty or -)")

	return cmd
}

func newSnapshotImportCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <account> <file>",
		Short: "Replace a saved session with an exported archive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := snapshotName(cmd, app, args[0])

			var in io.Reader = cmd.InOrStdin()
			if args[1] != "-" {
				file, err := os.Open(args[1])
				if err != nil {
					return fmt.Errorf("open %s: %w", args[1], err)
				}
				defer file.Close()
				in = file
			}

			snapshot, err := app.sessions.Import(cmd.Context(), name, in)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported snapshot %s (%.2f MB, %d files)\n",
				snapshot.DisplayName, snapshot.SizeMB(), snapshot.FileCount)
			return err
		},
	}
}

// snapshotName maps an account reference to its snapshot key. Unknown
// references are used as-is so orphaned snapshots stay reachable.
func snapshotName(cmd *cobra.Command, app *app, ref string) string {
	account, err := app.service.ResolveAccount(cmd.Context(), ref)
	if err != nil {
		return ref
	}
	return account.DisplayName
}

func isTerminalWriter(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
