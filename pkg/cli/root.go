// Package cli implements the spectrum command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"spectrum-sync/internal/config"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		envFile  string
		logLevel string
	)

	rootCmd := &cobra.Command{
		Use:           "spectrum",
		Short:         "External table sync for S3 data lakes",
		Long:          "Registers partitioned S3 datasets as external tables in a Redshift-style warehouse: generates the DDL script and optionally applies it.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Accept underscores in flag names so --partition_column works too.
	rootCmd.SetGlobalNormalizationFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to .env file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newFormatsCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// setup loads the environment and builds the logger shared by commands.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	envFile, _ := cmd.Root().PersistentFlags().GetString("env-file")
	logLevel, _ := cmd.Root().PersistentFlags().GetString("log-level")

	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, nil, fmt.Errorf("load env file: %w", err)
	}
	cfg := config.LoadFromEnv()
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	return cfg, logger, nil
}
