package main

import (
	"context"
	"flag"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/td0m/taskboard/internal/config"
	"github.com/td0m/taskboard/internal/logging"
	"github.com/td0m/taskboard/pkg/persist"
	"github.com/td0m/taskboard/pkg/task"
)

func check(err error) {
	if err != nil {
		panic(err)
	}
}

var (
	configPath = flag.String("config", "./taskboard.yaml", "Path to config file")
	filePath   = flag.String("file", "", "Path to task file, overrides the config")
	backend    = flag.String("storage", "", "Storage backend (json or sqlite), overrides the config")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	check(err)
	if *backend != "" {
		cfg.Storage.Backend = *backend
	}
	if *filePath != "" {
		cfg.Storage.Path = *filePath
	}
	check(cfg.Validate())

	logger, logs, err := logging.New(cfg.LogLevel, cfg.LogFile)
	check(err)
	defer logs.Close()

	p, closer, err := open(cfg.Storage)
	check(err)
	defer closer.Close()

	store, err := persist.Restore(p, task.WithLogger(logger))
	check(err)
	store.SetLoading(true)
	logger.Info("board loaded", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path, "tasks", len(store.Tasks()))

	ctx, cancel := context.WithCancel(context.Background())
	saved := persist.Sync(ctx, store, p, logger)

	overdue := make(chan []task.ID, 1)
	go task.Watch(ctx, store, cfg.OverdueInterval, func(ids []task.ID) {
		// only the latest result matters
		select {
		case <-overdue:
		default:
		}
		overdue <- ids
	})

	a := newApp(store, store.Subscribe(), overdue)

	prog := tea.NewProgram(a)
	prog.EnterAltScreen()
	defer prog.ExitAltScreen()
	err = prog.Start()

	store.Close()
	cancel()
	<-saved
	check(err)
}

func open(s config.Storage) (persist.Persistor, io.Closer, error) {
	switch s.Backend {
	case config.BackendSQLite:
		db, err := persist.OpenSQLite(s.Path, s.Key)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	default:
		return persist.InJSON(s.Path, s.Key), io.NopCloser(nil), nil
	}
}
