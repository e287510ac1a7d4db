package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"signup_portal/internal/platform/config"
	"signup_portal/internal/platform/logger"
)

type rootState struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rt := &rootState{}

	rootCmd := &cobra.Command{
		Use:   "signup",
		Short: "User registration service",
		Long: `signup serves the account registration form and JSON endpoint,
and lets operators create accounts directly against the configured store.

Configuration is read from a .env file and the environment.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Environment)
			if err != nil {
				return err
			}
			if !cfg.DotEnvLoaded {
				log.Info("no .env file found, relying on environment variables")
			}
			rt.cfg = cfg
			rt.logger = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.logger != nil {
				_ = rt.logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd(rt))
	rootCmd.AddCommand(newCreateUserCmd(rt))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
