package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/taskflow/pkg/config"
	"github.com/harrisonrobin/taskflow/pkg/persist"
	"github.com/harrisonrobin/taskflow/pkg/store"
)

// app is the store plus the collaborators every command shares.
type app struct {
	cfg     *config.Config
	store   *store.Store
	backend persist.Backend
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if driver, _ := cmd.Flags().GetString("storage"); driver != "" {
		cfg.Storage.Driver = driver
	}
	if data, _ := cmd.Flags().GetString("data"); data != "" {
		cfg.Storage.Path = data
	}
	return cfg, nil
}

// openApp loads the config, restores the saved tasks and builds a store
// that saves through the same backend.
func openApp(cmd *cobra.Command, n store.Notifier) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	path, err := cfg.StoragePath()
	if err != nil {
		return nil, err
	}
	backend, err := persist.Open(cfg.Storage.Driver, path)
	if err != nil {
		return nil, err
	}
	tasks, err := backend.Load()
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	s := store.New(store.WithTasks(tasks), store.WithSaver(backend), store.WithNotifier(n))
	if cfg.Seed && len(tasks) == 0 {
		s.Seed()
	}
	return &app{cfg: cfg, store: s, backend: backend}, nil
}

func (a *app) Close() {
	if err := a.backend.Close(); err != nil {
		log.Printf("Warning: failed to close storage: %v", err)
	}
}
