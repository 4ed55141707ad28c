package cmd

import (
	"github.com/bnema/riot-accounts-cli/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Execute() error {
	rootCmd, app := newRoot()
	defer func() { _ = app.close() }()

	return rootCmd.Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd, _ := newRoot()
	return rootCmd
}

func newRoot() (*cobra.Command, *app) {
	app := &app{}
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:           "ra",
		Short:         "Riot Accounts CLI (ra): switch Riot Client sessions between accounts",
		Long:          "ra (Riot Accounts CLI) keeps a saved Riot Client session per account and swaps them in and out of the client's configuration directory, so switching accounts does not require typing credentials again.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.wire(v, cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text|json)")
	rootCmd.PersistentFlags().String("live-dir", "", "Riot Client configuration directory")
	_ = v.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag(config.KeyLogFormat, rootCmd.PersistentFlags().Lookup("log-format"))
	_ = v.BindPFlag(config.KeyLiveDir, rootCmd.PersistentFlags().Lookup("live-dir"))

	rootCmd.AddCommand(
		newVersionCmd(),
		newAccountCmd(app),
		newSwitchCmd(app),
		newBackupCmd(app),
		newLogoutCmd(app),
		newClearCmd(app),
		newLaunchCmd(app),
		newStatusCmd(app),
		newSnapshotCmd(app),
		newHistoryCmd(app),
	)

	return rootCmd, app
}
