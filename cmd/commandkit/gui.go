package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"

	"commandkit/presentation"
)

const (
	appID           = "io.commandkit.app"
	shutdownTimeout = 10 * time.Second
)

var errShutdownTimeout = errors.New("shutdown timed out")

// runGUI opens the main window and blocks until it is closed.
func runGUI(configPath string) error {
	rt, err := newRuntime(configPath, os.Stdout)
	if err != nil {
		return err
	}

	logger := rt.logger
	logger.Info("Starting commandkit")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize UI event bridge
	bridge := presentation.NewUIEventBridge(&presentation.BridgeConfig{
		Dispatcher: rt.dispatcher,
		EventBus:   rt.bus,
		Logger:     logger,
	})

	// Initialize Fyne app
	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(theme.ListIcon())

	mainWindow := presentation.NewMainWindow(&presentation.MainWindowConfig{
		App:    fyneApp,
		Title:  rt.cfg.WindowTitle,
		Bridge: bridge,
		Items:  rt.items,
		Logger: logger,
	})

	rt.builtins.setUI(fyneApp.Quit, func(text string) {
		dialog.ShowInformation("About", text, mainWindow.Window())
	})

	if err := rt.watcher.Start(ctx); err != nil {
		logger.Warn("Catalog hot reload disabled", "error", err)
	}

	// Show and run
	mainWindow.Show()
	fyneApp.Run()

	cancel()
	ok := shutdownWithin(shutdownTimeout, logger, func() {
		mainWindow.Cleanup()
		bridge.Close()
		rt.Close()
	})
	if !ok {
		return errShutdownTimeout
	}

	logger.Info("Application shutdown complete")
	return nil
}

// shutdownWithin runs cleanup and reports whether it finished before timeout.
// A cleanup that hangs is abandoned; the process exits without it.
func shutdownWithin(timeout time.Duration, logger *slog.Logger, cleanup func()) bool {
	done := make(chan struct{})
	go func() {
		defer close(done)
		cleanup()
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		logger.Warn("Shutdown timeout, forcing exit", "timeout", timeout)
		return false
	}
}
