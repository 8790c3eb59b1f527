package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/arowley/prepsprint/internal/cli"
	"github.com/arowley/prepsprint/internal/dateinput"
	"github.com/arowley/prepsprint/internal/db"
	"github.com/arowley/prepsprint/internal/repository"
	"github.com/arowley/prepsprint/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.prepsprint/prepsprint.db
	dbPath := os.Getenv("PREPSPRINT_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".prepsprint", "prepsprint.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	appRepo := repository.NewSQLiteApplicationRepo(database)
	roundRepo := repository.NewSQLiteRoundRepo(database)
	sprintRepo := repository.NewSQLiteSprintRepo(database)
	progressRepo := repository.NewSQLiteProgressRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Use-case logging goes to stderr when PREPSPRINT_LOG is set.
	var observers []service.UseCaseObserver
	if os.Getenv("PREPSPRINT_LOG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Applications: service.NewApplicationService(appRepo, roundRepo, sprintRepo, uow),
		Sprints:      service.NewSprintService(appRepo, sprintRepo, uow, observers...),
		Plans:        service.NewPlanService(appRepo, roundRepo, sprintRepo),
		Progress:     service.NewProgressService(appRepo, sprintRepo, progressRepo, uow, observers...),
		Dates:        dateinput.NewResolver(),
	}

	// Detect interactive terminal for confirmation prompts and the
	// checklist UI.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
