// Command moviematch recommends movies by title similarity and by
// co-rating lift, and records how users rate the recommendations.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/custodia-labs/moviematch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/moviematch/internal/adapters/driven/dataset/movielens"
	"github.com/custodia-labs/moviematch/internal/adapters/driven/storage/csvfile"
	"github.com/custodia-labs/moviematch/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/moviematch/internal/adapters/driven/watcher"
	"github.com/custodia-labs/moviematch/internal/adapters/driving/cli"
	"github.com/custodia-labs/moviematch/internal/core/domain"
	"github.com/custodia-labs/moviematch/internal/core/ports/driven"
	"github.com/custodia-labs/moviematch/internal/core/services"
	"github.com/custodia-labs/moviematch/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &application{}
	defer app.close()

	cli.SetVersion(version)
	cli.SetLoader(app.load)

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// application owns resources opened by the loader.
type application struct {
	closers []func() error
}

func (a *application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Warn("close: %v", err)
		}
	}
	if err := logger.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "close log:", err)
	}
}

// load builds services from config.toml and global flags. The dataset
// is only read when withData is set.
func (a *application) load(ctx context.Context, opts cli.Options, withData bool) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	applyOverrides(settings, opts)

	if err := logger.Init(logger.Config{Level: settings.Log.Level, File: settings.Log.File}); err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}
	logger.SetVerbose(opts.Verbose)
	logger.Debug("Config: %s", configStore.Path())

	log, err := a.openFeedbackLog(settings.Feedback)
	if err != nil {
		return nil, err
	}
	logger.Debug("Feedback log: %s (%s)", log.Path(), settings.Feedback.Backend)

	svc := &cli.Services{
		Feedback: services.NewFeedbackService(log),
		Stats:    services.NewStatsService(log).WithWatcher(watcher.New()),
		Settings: settingsService,
		MCP:      settings.MCP,
	}
	if !withData {
		return svc, nil
	}

	start := time.Now()
	catalog, err := services.LoadCatalog(ctx, movielens.NewLoader(settings.Data.MoviesPath, settings.Data.RatingsPath))
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded %d movies in %s", catalog.Len(), time.Since(start).Round(time.Millisecond))

	ttl := time.Duration(settings.Search.CacheTTLSeconds) * time.Second
	svc.Query = services.NewQueryService(
		services.NewContentMatcher(catalog, ttl),
		services.NewCollaborativeRecommender(catalog),
	)
	return svc, nil
}

// applyOverrides lets global flags win over stored settings.
func applyOverrides(settings *domain.AppSettings, opts cli.Options) {
	if opts.MoviesPath != "" {
		settings.Data.MoviesPath = opts.MoviesPath
	}
	if opts.RatingsPath != "" {
		settings.Data.RatingsPath = opts.RatingsPath
	}
	if opts.FeedbackPath != "" {
		settings.Feedback.Path = opts.FeedbackPath
	}
}

// openFeedbackLog opens the configured backend. For SQLite the path names
// the directory holding feedback.db; a file path selects its directory.
func (a *application) openFeedbackLog(cfg domain.FeedbackSettings) (driven.FeedbackLog, error) {
	switch cfg.Backend {
	case domain.FeedbackBackendSQLite:
		dir := cfg.Path
		if filepath.Ext(dir) != "" {
			dir = filepath.Dir(dir)
		}
		store, err := sqlite.NewStore(dir)
		if err != nil {
			return nil, fmt.Errorf("open feedback store: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		return store.FeedbackLog(), nil
	case domain.FeedbackBackendCSV, "":
		return csvfile.NewFeedbackLog(cfg.Path), nil
	default:
		return nil, errors.New("unknown feedback backend " + cfg.Backend.String())
	}
}
