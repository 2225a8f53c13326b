package main

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"commandkit/core/command"
	"commandkit/domain/catalog"
)

const aboutText = "commandkit: commands shared by buttons, menus and the command line."

// builtins implements the handler names available to catalog files.
// The GUI replaces the quit and about behavior once the window exists.
type builtins struct {
	logger *slog.Logger
	out    io.Writer

	mu      sync.RWMutex
	onQuit  func()
	onAbout func(text string)
}

func newBuiltins(logger *slog.Logger, out io.Writer) *builtins {
	return &builtins{logger: logger, out: out}
}

func (b *builtins) handlers() catalog.Handlers {
	return catalog.Handlers{
		"log":   b.log,
		"about": b.about,
		"quit":  b.quit,
	}
}

// setUI routes quit and about to the GUI.
func (b *builtins) setUI(onQuit func(), onAbout func(text string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onQuit = onQuit
	b.onAbout = onAbout
}

func (b *builtins) log(args command.Args) error {
	msg, _ := args["message"].(string)
	if msg == "" {
		msg = "command executed"
	}
	b.logger.Info(msg, "args", args)
	fmt.Fprintln(b.out, msg)
	return nil
}

func (b *builtins) about(command.Args) error {
	b.mu.RLock()
	onAbout := b.onAbout
	b.mu.RUnlock()

	if onAbout != nil {
		onAbout(aboutText)
		return nil
	}
	_, err := fmt.Fprintln(b.out, aboutText)
	return err
}

func (b *builtins) quit(command.Args) error {
	b.mu.RLock()
	onQuit := b.onQuit
	b.mu.RUnlock()

	if onQuit == nil {
		b.logger.Debug("Quit requested without a window")
		return nil
	}
	onQuit()
	return nil
}
