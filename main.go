package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"civicsync/config"
	"civicsync/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "civicsync",
		Short:         "Report and track civic issues",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	// withApp loads configuration, wires the services and closes them after run.
	var withApp appRunner = func(run func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			log := logger.New(cfg.LogLevel)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			a, err := newApp(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			return run(cmd, a, args)
		}
	}

	root.AddCommand(
		newServeCmd(withApp),
		newLoginCmd(withApp),
		newRegisterCmd(withApp),
		newLogoutCmd(withApp),
		newWhoamiCmd(withApp),
		newIssuesCmd(withApp),
		newStatsCmd(withApp),
	)
	return root
}
