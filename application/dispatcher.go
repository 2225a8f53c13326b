// Package application provides the application layer for executing and observing commands.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"commandkit/core/command"
	"commandkit/core/disposable"
	"commandkit/core/event"
	"commandkit/core/eventbus"
	"commandkit/core/state"
)

// Common errors for command dispatching.
var (
	ErrCommandNotFound = errors.New("command not found")
	ErrCommandDisabled = errors.New("command cannot execute")
)

// watched is a registered command the dispatcher observes.
type watched struct {
	cmd      command.Command
	conn     disposable.Disposable
	snapshot state.Snapshot
}

// Dispatcher executes registered commands by id and republishes registry and
// command signals as events on the event bus.
type Dispatcher struct {
	registry *command.Registry
	eventBus eventbus.EventBus
	logger   *slog.Logger

	watched   map[string]*watched
	watchedMu sync.Mutex

	connections *disposable.Set
}

// DispatcherConfig holds configuration for the Dispatcher.
type DispatcherConfig struct {
	Registry *command.Registry // defaults to command.Default()
	EventBus eventbus.EventBus // optional
	Logger   *slog.Logger
}

// NewDispatcher creates a dispatcher and starts observing the registry.
func NewDispatcher(cfg *DispatcherConfig) *Dispatcher {
	if cfg == nil {
		cfg = &DispatcherConfig{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Registry == nil {
		cfg.Registry = command.Default()
	}

	d := &Dispatcher{
		registry:    cfg.Registry,
		eventBus:    cfg.EventBus,
		logger:      cfg.Logger,
		watched:     make(map[string]*watched),
		connections: disposable.NewSet(),
	}

	d.connections.Add(d.registry.CommandsAdded().Connect(d.onCommandsAdded))
	d.connections.Add(d.registry.CommandsRemoved().Connect(d.onCommandsRemoved))

	for _, cmd := range d.registry.All() {
		d.watch(cmd)
	}

	return d
}

// Registry returns the registry the dispatcher executes from.
func (d *Dispatcher) Registry() *command.Registry {
	return d.registry
}

// Dispatch executes the command registered under id.
//
// It fails with ErrCommandNotFound for unknown ids and ErrCommandDisabled when
// the command is disabled or hidden for args. Errors returned by the command
// are wrapped with the id.
func (d *Dispatcher) Dispatch(ctx context.Context, id string, args command.Args) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cmd, ok := d.registry.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrCommandNotFound, id)
	}
	if !command.CanExecute(cmd, args) {
		return fmt.Errorf("%w: %s", ErrCommandDisabled, id)
	}

	d.logger.Debug("Dispatching command", "command", id)

	err := cmd.Execute(args)
	d.publish(event.NewCommandExecuted(id, args.Clone(), err))

	if err != nil {
		d.logger.Warn("Command failed", "command", id, "error", err)
		return fmt.Errorf("execute %s: %w", id, err)
	}
	return nil
}

// DispatchItem executes an item's command with the item's bound args.
func (d *Dispatcher) DispatchItem(ctx context.Context, item *command.Item) error {
	return d.Dispatch(ctx, item.ID(), item.Args())
}

// Snapshot returns the last observed state of a registered command.
func (d *Dispatcher) Snapshot(id string) (state.Snapshot, bool) {
	d.watchedMu.Lock()
	defer d.watchedMu.Unlock()

	w, ok := d.watched[id]
	if !ok {
		return state.Snapshot{}, false
	}
	return w.snapshot, true
}

// Stop disconnects from the registry and all observed commands.
func (d *Dispatcher) Stop() {
	d.connections.Dispose()

	d.watchedMu.Lock()
	watchedCmds := d.watched
	d.watched = make(map[string]*watched)
	d.watchedMu.Unlock()

	for _, w := range watchedCmds {
		w.conn.Dispose()
	}

	d.logger.Info("Dispatcher stopped")
}

func (d *Dispatcher) onCommandsAdded(_ *command.Registry, cmds []command.Command) {
	ids := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		d.watch(cmd)
		ids = append(ids, cmd.ID())
	}
	d.publish(event.NewCommandsAdded(ids))
}

func (d *Dispatcher) onCommandsRemoved(_ *command.Registry, cmds []command.Command) {
	ids := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		d.unwatch(cmd)
		ids = append(ids, cmd.ID())
	}
	d.publish(event.NewCommandsRemoved(ids))
}

func (d *Dispatcher) watch(cmd command.Command) {
	id := cmd.ID()
	snapshot := state.Capture(cmd, nil)

	d.watchedMu.Lock()
	defer d.watchedMu.Unlock()

	if _, exists := d.watched[id]; exists {
		return
	}
	d.watched[id] = &watched{
		cmd:      cmd,
		conn:     cmd.Changed().Connect(d.onCommandChanged),
		snapshot: snapshot,
	}
}

func (d *Dispatcher) unwatch(cmd command.Command) {
	d.watchedMu.Lock()
	w, ok := d.watched[cmd.ID()]
	if ok && w.cmd == cmd {
		delete(d.watched, cmd.ID())
	}
	d.watchedMu.Unlock()

	if ok && w.cmd == cmd {
		w.conn.Dispose()
	}
}

func (d *Dispatcher) onCommandChanged(cmd command.Command, _ struct{}) {
	next := state.Capture(cmd, nil)

	d.watchedMu.Lock()
	w, ok := d.watched[cmd.ID()]
	if !ok || w.cmd != cmd {
		d.watchedMu.Unlock()
		return
	}
	fields := state.Diff(w.snapshot, next)
	w.snapshot = next
	d.watchedMu.Unlock()

	if len(fields) == 0 {
		return
	}
	d.publish(event.NewCommandChanged(cmd.ID(), fields, next))
}

func (d *Dispatcher) publish(e event.Event) {
	if d.eventBus == nil {
		return
	}
	d.eventBus.Publish(e)
}
