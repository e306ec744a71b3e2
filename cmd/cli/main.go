// Command cli harvests the Akan dictionary into a sorted CSV.
//
// By default word pages are discovered through the site's sitemaps and the
// table is written to ~/Desktop/eng_akan_dict_final.csv. Configuration is
// read from CONFIG_PATH (or ./config.yaml) and the environment; a .env file
// in the working directory is loaded first.
//
// Exit codes: 0 = finished (with or without records), 1 = fatal error, 2 = usage.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"akandict-go-scraper/internal/config"
	"akandict-go-scraper/internal/crawler"
	"akandict-go-scraper/internal/ioformats"
	"akandict-go-scraper/internal/metrics"
	"akandict-go-scraper/internal/scraper"
	"akandict-go-scraper/internal/store"
	"akandict-go-scraper/pkg/logger"
)

func main() {
	in := flag.String("input", "", "scrape URLs from this file (csv with 'url' column or ndjson) instead of the sitemaps")
	out := flag.String("output", "", "export path (overrides EXPORT_PATH; .csv or .ndjson)")
	concurrency := flag.Int("concurrency", 0, "worker concurrency (overrides SCRAPE_WORKERS)")
	flag.Parse()

	if flag.NArg() > 0 {
		fmt.Fprintln(os.Stderr, "unexpected arguments:", flag.Args())
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *out != "" {
		cfg.Export.Path = *out
	}
	if *concurrency > 0 {
		cfg.Scrape.Workers = *concurrency
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg, *in, log); err != nil {
		log.Error("harvest failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, input string, log *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	exportPath, err := cfg.Export.ResolveExportPath()
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	deps := scraper.Deps{
		Fetcher: crawler.NewHTTPClient(cfg.HTTP),
		Metrics: metrics.New(),
		Logger:  log,
	}
	if cfg.Store.Path != "" {
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close()
		deps.Store = st
	}

	s, err := scraper.New(cfg, exportPath, deps)
	if err != nil {
		return err
	}

	var runErr error
	if input != "" {
		urls, err := ioformats.ReadURLs(input)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		_, runErr = s.RunURLs(ctx, urls)
	} else {
		_, runErr = s.Run(ctx)
	}

	if cfg.Metrics.Path != "" {
		if err := deps.Metrics.WriteTextfile(cfg.Metrics.Path); err != nil {
			log.Warn("write metrics textfile", slog.String("error", err.Error()))
		}
	}
	return runErr
}
