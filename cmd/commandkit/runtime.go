package main

import (
	"fmt"
	"io"
	"log/slog"

	"commandkit/application"
	"commandkit/core/command"
	"commandkit/core/eventbus"
	"commandkit/domain/catalog"
	"commandkit/infrastructure/config"
	"commandkit/infrastructure/logging"
	"commandkit/resources"
)

// runtime holds the services shared by every subcommand.
type runtime struct {
	cfg        *config.Config
	logger     *slog.Logger
	closeLog   func() error
	bus        eventbus.EventBus
	registry   *command.Registry
	dispatcher *application.Dispatcher
	watcher    *application.CatalogWatcher
	builtins   *builtins
}

// newRuntime loads configuration, sets up logging and registers the catalog.
func newRuntime(configPath string, out io.Writer) (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logCfg, err := cfg.Logging()
	if err != nil {
		return nil, err
	}
	logger, closeLog, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	r := &runtime{
		cfg:      cfg,
		logger:   logger,
		closeLog: closeLog,
		bus:      eventbus.New(cfg.BusBuffer, logger),
		registry: command.NewRegistry(logger),
	}

	r.dispatcher = application.NewDispatcher(&application.DispatcherConfig{
		Registry: r.registry,
		EventBus: r.bus,
		Logger:   logger,
	})

	r.builtins = newBuiltins(logger, out)

	watcherCfg := &application.CatalogWatcherConfig{
		Loader:   catalog.NewLoader(r.builtins.handlers(), logger),
		Registry: r.registry,
		Logger:   logger,
	}
	if cfg.CatalogDir == "" {
		watcherCfg.FS = resources.Catalog
		watcherCfg.Dir = resources.CatalogDir
	} else {
		watcherCfg.Dir = cfg.CatalogDir
		watcherCfg.Watch = cfg.WatchCatalog
	}
	r.watcher = application.NewCatalogWatcher(watcherCfg)

	if err := r.watcher.Load(); err != nil {
		r.Close()
		return nil, err
	}

	logger.Info("Catalog loaded", "commands", r.registry.Len())
	return r, nil
}

// items returns the catalog items, which carry args and shortcuts.
func (r *runtime) items() []*command.Item {
	cat := r.watcher.Catalog()
	if cat == nil {
		return nil
	}
	return cat.Items()
}

// Close stops all services in reverse order of creation.
func (r *runtime) Close() {
	r.watcher.Stop()
	r.dispatcher.Stop()
	r.bus.Close()
	if err := r.closeLog(); err != nil {
		r.logger.Warn("Failed to close log", "error", err)
	}
}
