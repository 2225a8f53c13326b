package application

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"commandkit/core/command"
	"commandkit/core/disposable"
	"commandkit/domain/catalog"
)

// CatalogWatcher registers the commands of a catalog directory and, when
// started, re-registers them whenever the directory changes.
type CatalogWatcher struct {
	fsys     fs.FS
	dir      string
	watchDir string
	loader   *catalog.Loader
	registry *command.Registry
	debounce time.Duration
	onReload func(*catalog.Catalog)
	logger   *slog.Logger

	// loadMu serializes Load and Stop so every registration is disposed.
	loadMu  sync.Mutex
	mu      sync.Mutex
	current disposable.Disposable
	catalog *catalog.Catalog

	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// CatalogWatcherConfig holds configuration for CatalogWatcher.
type CatalogWatcherConfig struct {
	// FS and Dir locate the catalog files. If FS is nil, Dir is an OS path.
	FS  fs.FS
	Dir string

	// Watch enables reloading on file changes. Requires FS to be nil.
	Watch bool

	Loader   *catalog.Loader
	Registry *command.Registry
	Debounce time.Duration

	// OnReload is called after a catalog has been registered.
	OnReload func(*catalog.Catalog)

	Logger *slog.Logger
}

// NewCatalogWatcher creates a watcher. Call Load to register the commands.
func NewCatalogWatcher(cfg *CatalogWatcherConfig) *CatalogWatcher {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Registry == nil {
		cfg.Registry = command.Default()
	}
	if cfg.Loader == nil {
		cfg.Loader = catalog.NewLoader(nil, cfg.Logger)
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 200 * time.Millisecond
	}

	w := &CatalogWatcher{
		fsys:     cfg.FS,
		dir:      cfg.Dir,
		loader:   cfg.Loader,
		registry: cfg.Registry,
		debounce: cfg.Debounce,
		onReload: cfg.OnReload,
		logger:   cfg.Logger,
	}

	if w.fsys == nil {
		w.fsys = os.DirFS(cfg.Dir)
		w.dir = "."
		if cfg.Watch {
			w.watchDir = cfg.Dir
		}
	}

	return w
}

// Catalog returns the currently registered catalog, or nil before Load.
func (w *CatalogWatcher) Catalog() *catalog.Catalog {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.catalog
}

// Load reads the catalog and registers its commands, replacing the commands
// registered by a previous Load. On error the previous commands stay registered.
// Concurrent calls are serialized; OnReload must not call Load.
func (w *CatalogWatcher) Load() error {
	w.loadMu.Lock()
	defer w.loadMu.Unlock()

	cat, err := w.loader.LoadFromFS(w.fsys, w.dir)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	// The catalog is published before its commands are added so that
	// listeners of CommandsAdded see the matching items.
	w.mu.Lock()
	previous := w.current
	w.current = nil
	w.catalog = cat
	w.mu.Unlock()

	if previous != nil {
		previous.Dispose()
	}

	registration := w.registry.Add(cat.Commands()...)

	w.mu.Lock()
	w.current = registration
	w.mu.Unlock()

	w.logger.Info("Catalog registered", "count", cat.Len())

	if w.onReload != nil {
		w.onReload(cat)
	}
	return nil
}

// Start watches the catalog directory until ctx is cancelled or Stop is called.
// It is a no-op when watching was not requested.
func (w *CatalogWatcher) Start(ctx context.Context) error {
	if w.watchDir == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(w.watchDir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", w.watchDir, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w.watcher = watcher
	w.cancel = cancel

	w.wg.Add(1)
	go w.run(ctx)

	w.logger.Info("Watching catalog directory", "dir", w.watchDir)
	return nil
}

// Stop stops watching and unregisters the catalog's commands.
func (w *CatalogWatcher) Stop() {
	if w.cancel != nil {
		w.cancel()
		w.wg.Wait()
		w.watcher.Close()
		w.cancel = nil
	}

	w.loadMu.Lock()
	defer w.loadMu.Unlock()

	w.mu.Lock()
	current := w.current
	w.current = nil
	w.mu.Unlock()

	if current != nil {
		current.Dispose()
	}
}

func (w *CatalogWatcher) run(ctx context.Context) {
	defer w.wg.Done()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Ext(ev.Name) != ".yaml" {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			if err := w.Load(); err != nil {
				w.logger.Warn("Catalog reload failed, keeping previous commands", "error", err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Catalog watcher error", "error", err)
		}
	}
}
