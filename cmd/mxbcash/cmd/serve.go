package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mxbcash/mxbcash/internal/api"
	"github.com/mxbcash/mxbcash/internal/ledger"
	"github.com/mxbcash/mxbcash/internal/report"
	"github.com/mxbcash/mxbcash/internal/seed"
	"github.com/mxbcash/mxbcash/internal/store"
)

// serveCmd runs the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the ledger HTTP server",
	Long: `Run the ledger HTTP server.

The database is seeded with default currencies and a standard chart of
accounts on first start.

Example:
  mxbcash serve
  MXBCASH_PORT=9090 mxbcash serve --debug`,
	Run: runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	exitOnError(err, "failed to load configuration")

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		exitOnError(err, "failed to create data directory")
	}

	st, err := store.New(cfg.DBPath)
	exitOnError(err, "failed to initialize store")
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	slog.Info("database initialized", "db_path", cfg.DBPath)

	ledgerSvc := ledger.NewService(st)
	reportSvc := report.NewService(st)

	if err := seed.Run(st, ledgerSvc, cfg.SeedFile); err != nil {
		exitOnError(err, "failed to seed database")
	}

	router := api.NewRouter(ledgerSvc, reportSvc, cfg.ReportingCurrency)

	addr := fmt.Sprintf(":%s", cfg.Port)
	slog.Info("starting ledger server", "addr", addr, "reporting_currency", cfg.ReportingCurrency)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		slog.Info("shutting down server")
		if err := server.Close(); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
