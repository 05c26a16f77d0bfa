package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"phish-ratings/config"
	"phish-ratings/scraper/phishnet"
	"phish-ratings/services"
	"phish-ratings/storage"
	"phish-ratings/utils"
)

var rootCmd = &cobra.Command{
	Use:           "phish-ratings",
	Short:         "Scrapes phish.net show ratings into a local store and exports yearly CSV files.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "phish-ratings: %+v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.Load()
	logger := utils.NewLogger(os.Stdout, cfg.LogLevel)

	logger.Info("Config loaded",
		"start_year", cfg.StartYear,
		"db_driver", cfg.DBDriver,
		"fetch_mode", cfg.FetchMode,
		"csv_dir", cfg.CSVDir)

	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open store", "err", err)
		return err
	}
	defer store.Close()

	fetcher, closeFetcher := newFetcher(cfg)
	defer closeFetcher()

	pipeline := &services.Pipeline{
		Fetcher:   fetcher,
		Store:     store,
		Logger:    logger.With("component", "pipeline"),
		Throttle:  utils.NewThrottle(cfg.RequestDelay()),
		StartYear: cfg.StartYear,
		CSVDir:    cfg.CSVDir,
	}
	if _, err := pipeline.Run(ctx); err != nil {
		logger.Error("Scrape failed, nothing committed", "err", err)
		return err
	}

	reporter := services.NewReportService(logger.With("component", "report"))
	report, err := reporter.Generate(ctx, store)
	if err != nil {
		logger.Error("Failed to build report", "err", err)
		return err
	}
	reporter.Print(os.Stdout, report)

	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (storage.ShowStore, error) {
	var (
		store *storage.SQLStore
		err   error
	)
	switch cfg.DBDriver {
	case config.DriverSQLite:
		store, err = storage.OpenSQLite(ctx, cfg.SQLitePath)
	case config.DriverPostgres:
		store, err = storage.OpenPostgres(ctx, cfg.DSN())
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

func newFetcher(cfg *config.Config) (phishnet.Fetcher, func()) {
	if cfg.FetchMode == config.FetchModeBrowser {
		f := phishnet.NewBrowserFetcher(cfg.BaseURL, cfg.ChromeBin, cfg.HTTPTimeout())
		return f, func() { _ = f.Close() }
	}
	return phishnet.NewHTTPFetcher(cfg.BaseURL, phishnet.WithTimeout(cfg.HTTPTimeout())), func() {}
}
