package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/mattn/go-sqlite3"

	"github.com/rohanmehra/habitd/internal/model"
	"github.com/rohanmehra/habitd/internal/scheduler"
	"github.com/rohanmehra/habitd/internal/storage"
	"github.com/rohanmehra/habitd/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "habitd failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := storage.MigrateUp(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	repo, err := storage.NewSQLiteRepository(db)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	rows, err := repo.ListTasks(ctx, storage.TaskListFilter{})
	cancel()
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	tasks := make([]model.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.ToModel())
	}

	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}

	m := update.NewModelWithConfig(engine, repo, notifier, cfg)
	m = m.WithTasks(tasks)

	program := tea.NewProgram(m)
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}
