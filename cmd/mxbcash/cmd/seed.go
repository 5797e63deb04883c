package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mxbcash/mxbcash/internal/ledger"
	"github.com/mxbcash/mxbcash/internal/seed"
	"github.com/mxbcash/mxbcash/internal/store"
)

var chartFile string

// seedCmd seeds an empty database without starting the server.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed an empty database with currencies and a chart of accounts",
	Long: `Seed an empty database with the default currencies and a standard
chart of accounts. A custom chart can be supplied as a YAML file. Databases
that already hold accounts are left untouched.

Example:
  mxbcash seed
  mxbcash seed --chart accounts.yaml`,
	Run: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&chartFile, "chart", "", "chart-of-accounts YAML file")
}

func runSeed(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	exitOnError(err, "failed to load configuration")

	if chartFile == "" {
		chartFile = cfg.SeedFile
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		exitOnError(err, "failed to create data directory")
	}

	st, err := store.New(cfg.DBPath)
	exitOnError(err, "failed to initialize store")
	defer func() {
		_ = st.Close()
	}()

	exitOnError(seed.Run(st, ledger.NewService(st), chartFile), "failed to seed database")
	slog.Info("seed complete", "db_path", cfg.DBPath)
}

// exitOnError logs the error and exits.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
