package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jengzang/running-records-go/internal/config"
	"github.com/jengzang/running-records-go/internal/database"
	"github.com/jengzang/running-records-go/internal/importer"
	"github.com/jengzang/running-records-go/internal/logging"
	"github.com/jengzang/running-records-go/internal/repository"
)

func main() {
	csvPath := flag.String("csv", "", "Strava activities.csv export to import")
	fitDir := flag.String("fit", "", "directory of .fit activity files to import")
	shoe := flag.String("shoe", "", "equipment recorded for imported FIT runs")
	flag.Parse()

	if *csvPath == "" && *fitDir == "" {
		fmt.Fprintln(os.Stderr, "usage: importer [-csv activities.csv] [-fit dir] [-shoe name]")
		os.Exit(2)
	}

	if err := run(*csvPath, *fitDir, *shoe); err != nil {
		slog.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(csvPath, fitDir, shoe string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, database.Config{
		ConnectionURI: cfg.ConnectionURI,
		DatabaseName:  cfg.DatabaseName,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	repo := repository.NewActivityRepository(db, cfg.CollectionName)
	var total importer.Result

	if csvPath != "" {
		f, err := os.Open(csvPath)
		if err != nil {
			return err
		}
		res, err := importer.ImportStravaCSV(ctx, f, repo, logger)
		f.Close()
		if err != nil {
			return fmt.Errorf("import %s: %w", csvPath, err)
		}
		total.Add(res)
	}

	if fitDir != "" {
		res, err := importer.ImportFITDir(ctx, fitDir, shoe, repo, logger)
		if err != nil {
			return err
		}
		total.Add(res)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	logger.Info("import finished",
		slog.String("collection", repo.Collection()),
		slog.Int("imported", total.Imported),
		slog.Int("skipped", total.Skipped),
		slog.Int64("documents", count))
	return nil
}
