package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/chrissnell/bikeshare/internal/controllers/restserver"
	"github.com/chrissnell/bikeshare/internal/dashboard"
	"github.com/chrissnell/bikeshare/internal/dataset"
	"github.com/chrissnell/bikeshare/internal/log"
	"github.com/chrissnell/bikeshare/pkg/config"
)

// App represents the main application
type App struct {
	config *config.ConfigData
}

// New creates a new application instance
func New(cfg *config.ConfigData) *App {
	return &App{config: cfg}
}

// DatasetOptions translates the dataset config section into loader options
func DatasetOptions(dc config.DatasetData) dataset.Options {
	return dataset.Options{
		Format:     dc.Format,
		Table:      dc.Table,
		DateLayout: dc.DateLayout,
		Columns: dataset.Columns{
			Date:    dc.Columns.Date,
			Season:  dc.Columns.Season,
			Weather: dc.Columns.Weather,
			Weekday: dc.Columns.Weekday,
			Count:   dc.Columns.Count,
		},
	}
}

// LoadDashboard loads the configured dataset and wraps it in a dashboard.
// Dataset errors are fatal to the caller.
func LoadDashboard(ctx context.Context, cfg *config.ConfigData) (*dashboard.Dashboard, error) {
	ds, err := dataset.Load(ctx, cfg.Dataset.Path, DatasetOptions(cfg.Dataset))
	if err != nil {
		return nil, err
	}
	return dashboard.New(ds, dashboard.Config{
		Title:  cfg.Dashboard.Title,
		Footer: cfg.Dashboard.Footer,
		Locale: dashboard.Locale(cfg.Dashboard.Locale),
	})
}

// Run starts the application and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dash, err := LoadDashboard(ctx, a.config)
	if err != nil {
		return err
	}

	rs, err := restserver.NewController(ctx, &wg, a.config.Server, dash)
	if err != nil {
		return err
	}
	if err := rs.StartController(); err != nil {
		return err
	}

	log.Info("Application started successfully")

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	cancel()

	log.Info("waiting for the server to terminate...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}
