// Package cmd provides CLI commands for the mxbcash ledger server.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mxbcash/mxbcash/internal/config"
)

var (
	envFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mxbcash",
	Short: "Personal double-entry bookkeeping ledger",
	Long: `mxbcash is a personal double-entry bookkeeping ledger: hierarchical
accounts, balanced multi-split transactions, multi-currency price history,
and derived reports (profit and loss, balance history, net worth).

Example:
  mxbcash serve
  mxbcash seed --chart accounts.yaml`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: configuredLogLevel(),
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "env file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Debug = true
	}
	return cfg, nil
}

// configuredLogLevel resolves the log level from the --debug flag and the
// MXBCASH_DEBUG environment (including an --env file). A config load failure
// here is not fatal; the command re-loads and reports it.
func configuredLogLevel() slog.Level {
	if debug {
		return slog.LevelDebug
	}
	if cfg, err := loadConfig(); err == nil && cfg.Debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
