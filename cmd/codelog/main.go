package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alexanderramin/codelog/internal/cli"
	"github.com/alexanderramin/codelog/internal/config"
	"github.com/alexanderramin/codelog/internal/db"
	"github.com/alexanderramin/codelog/internal/langpack"
	"github.com/alexanderramin/codelog/internal/logging"
	"github.com/alexanderramin/codelog/internal/repository"
	"github.com/alexanderramin/codelog/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) (err error) {
	// Global flags are read ahead of cobra so config is known before the
	// services are wired. Cobra parses them again and reports bad input.
	flags := cli.GlobalFlags()
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.Usage = func() {}
	flags.SetOutput(io.Discard)
	if perr := flags.Parse(args); perr != nil && !errors.Is(perr, pflag.ErrHelp) {
		return perr
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var console io.Writer
	if cfg.Verbose {
		console = os.Stderr
	}
	logger, closeLog, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel, Console: console})
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer closeLog()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	logger.Debug("database opened", zap.String("path", cfg.DBPath))

	registry := prometheus.NewRegistry()
	metrics, err := service.NewMetricsObserver(registry)
	if err != nil {
		return err
	}
	if cfg.MetricsFile != "" {
		defer func() {
			if werr := prometheus.WriteToTextfile(cfg.MetricsFile, registry); werr != nil {
				logger.Warn("writing metrics file", zap.String("path", cfg.MetricsFile), zap.Error(werr))
				if err == nil {
					err = fmt.Errorf("writing metrics file: %w", werr)
				}
			}
		}()
	}
	observers := []service.UseCaseObserver{service.NewLogUseCaseObserver(logger), metrics}

	// Wire repositories
	itemRepo := repository.NewSQLiteWorkItemRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	languageRepo := repository.NewSQLiteLanguageRepo(database)
	configRepo := repository.NewSQLiteScoringConfigRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	packs := langpack.NewFileProvider(cfg.LangPackDir)

	// One local clock for every "today": CLI dates, streaks and projections.
	clock := service.Clock(time.Now)

	app := &cli.App{
		Sessions:   service.NewSessionService(sessionRepo, uow, packs, clock, observers...),
		Items:      service.NewItemService(itemRepo, uow, packs, clock, observers...),
		Languages:  service.NewLanguageService(languageRepo, observers...),
		Config:     service.NewConfigService(configRepo, observers...),
		Status:     service.NewStatusService(languageRepo, itemRepo, sessionRepo, clock),
		Now:        clock,
		RecentDays: cfg.RecentDays,
	}

	// Suggestion prompts need a terminal on both ends.
	app.IsInteractive = func() bool {
		in := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		out := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		return in && out
	}

	rootCmd := cli.NewRootCmd(app)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}
