package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/riot-accounts-cli/internal/application"
	"github.com/spf13/cobra"
)

func newAccountCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}

	cmd.AddCommand(
		newAccountAddCmd(app),
		newAccountListCmd(app),
		newAccountEditCmd(app),
		newAccountRemoveCmd(app),
		newAccountCredentialCmd(app),
	)

	return cmd
}

func newAccountAddCmd(app *app) *cobra.Command {
	var accountID string
	var username string
	var password passwordFlags

	cmd := &cobra.Command{
		Use:   "add <display-name>",
		Short: "Add an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := password.read(cmd, false)
			if err != nil {
				return err
			}

			resolvedAccountID, err := resolveAccountID(cmd.Context(), app, accountID)
			if err != nil {
				return err
			}

			account, err := app.service.AddAccount(cmd.Context(), application.AddAccountCommand{
				ID:          resolvedAccountID,
				DisplayName: args[0],
				Username:    username,
				Password:    secret,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added account %s (%s)\n", account.DisplayName, account.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&accountID, "id", "0", "Account ID (0 or empty auto-assigns next: 1,2,...)")
	cmd.Flags().StringVar(&username, "username", "", "Riot username or e-mail used to log in")
	password.register(cmd)
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func newAccountListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, err := app.service.ListAccounts(cmd.Context())
			if err != nil {
				return err
			}

			for _, account := range accounts {
				snapshot := "no snapshot"
				if app.switcher.HasSnapshot(account.DisplayName) {
					snapshot = "snapshot"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", account.ID, account.DisplayName, account.Username, snapshot)
			}

			return nil
		},
	}
}

func newAccountEditCmd(app *app) *cobra.Command {
	var displayName string
	var username string
	var password passwordFlags

	cmd := &cobra.Command{
		Use:   "edit <account>",
		Short: "Change an account's display name, username or password",
		Long:  "edit changes the given fields only. Renaming an account also renames its saved session.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("display-name") && !flags.Changed("username") && !flags.Changed("password") && !flags.Changed("password-stdin") {
				return errors.New("nothing to change: use --display-name, --username, --password or --password-stdin")
			}

			secret, err := password.read(cmd, false)
			if err != nil {
				return err
			}

			account, err := app.service.ResolveAccount(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			command := application.UpdateAccountCommand{ID: account.ID}
			if flags.Changed("display-name") {
				command.DisplayName = &displayName
			}
			if flags.Changed("username") {
				command.Username = &username
			}

			previous, updated, err := app.service.UpdateAccount(cmd.Context(), command)
			if err != nil {
				return err
			}

			if err := app.switcher.RenameSnapshot(cmd.Context(), previous.DisplayName, updated.DisplayName); err != nil {
				revert := application.UpdateAccountCommand{ID: previous.ID, DisplayName: &previous.DisplayName, Username: &previous.Username}
				if _, _, revertErr := app.service.UpdateAccount(cmd.Context(), revert); revertErr != nil {
					return fmt.Errorf("%w; restoring the account also failed: %v", err, revertErr)
				}
				return err
			}

			if secret != "" {
				if err := app.service.SetCredential(cmd.Context(), application.SetCredentialCommand{ID: updated.ID, Password: secret}); err != nil {
					return err
				}
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Updated account %s (%s)\n", updated.DisplayName, updated.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&displayName, "display-name", "", "New display name")
	cmd.Flags().StringVar(&username, "username", "", "New Riot username or e-mail")
	password.register(cmd)

	return cmd
}

func newAccountRemoveCmd(app *app) *cobra.Command {
	var deleteSnapshot bool

	cmd := &cobra.Command{
		Use:   "remove <account>",
		Short: "Remove an account and its stored credential",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := app.service.ResolveAccount(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if err := app.service.RemoveAccount(cmd.Context(), account.ID); err != nil {
				return err
			}

			if deleteSnapshot && app.switcher.HasSnapshot(account.DisplayName) {
				if err := app.sessions.Delete(cmd.Context(), account.DisplayName); err != nil {
					return fmt.Errorf("account removed but snapshot was kept: %w", err)
				}
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed account %s (%s)\n", account.DisplayName, account.ID)
			return err
		},
	}

	cmd.Flags().BoolVar(&deleteSnapshot, "delete-snapshot", false, "Also delete the account's saved session")

	return cmd
}

func newAccountCredentialCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credential",
		Short: "Show or replace an account's stored password",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show <account>",
			Short: "Print the stored password",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				account, err := app.service.ResolveAccount(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				value, err := app.service.Credential(cmd.Context(), account.ID)
				if err != nil {
					return err
				}

				_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
				return err
			},
		},
		newAccountCredentialSetCmd(app),
	)

	return cmd
}

func newAccountCredentialSetCmd(app *app) *cobra.Command {
	var password passwordFlags

	cmd := &cobra.Command{
		Use:   "set <account>",
		Short: "Store a new password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := password.read(cmd, true)
			if err != nil {
				return err
			}

			account, err := app.service.ResolveAccount(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return app.service.SetCredential(cmd.Context(), application.SetCredentialCommand{
				ID:       account.ID,
				Password: secret,
			})
		},
	}

	password.register(cmd)

	return cmd
}

type passwordFlags struct {
	value     string
	fromStdin bool
}

func (p *passwordFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.value, "password", "", "Account password (visible in shell history; prefer --password-stdin)")
	cmd.Flags().BoolVar(&p.fromStdin, "password-stdin", false, "Read the password from the first line of stdin")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")
}

func (p *passwordFlags) read(cmd *cobra.Command, required bool) (string, error) {
	value := p.value
	if p.fromStdin {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read password from stdin: %w", err)
		}
		value = strings.TrimRight(line, "\r\n")
	}

	if required && value == "" {
		return "", errors.New("a password is required: use --password or --password-stdin")
	}

	return value, nil
}
