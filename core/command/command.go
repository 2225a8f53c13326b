// Package command defines the command abstraction used to back UI controls.
//
// A command couples an identifier, a queryable display state and an execute
// action. Controls query the state and connect to the command's Changed signal
// to learn when to query again, instead of re-implementing click handling.
package command

import (
	"errors"
	"maps"

	"commandkit/core/signal"
)

// ErrNoHandler is returned when a command without an action is executed.
var ErrNoHandler = errors.New("command has no handler")

// Args are the arguments passed to a command. Values should be simple
// JSON-like types. A nil Args is valid for commands which take no arguments.
type Args map[string]any

// Clone returns a shallow copy of the args. Nil stays nil.
func (a Args) Clone() Args {
	if a == nil {
		return nil
	}
	return maps.Clone(a)
}

// Handler executes a command's logic.
type Handler func(args Args) error

// ChangedSignal is emitted when a command's state may have changed.
type ChangedSignal = signal.Signal[Command, struct{}]

// Command is the interface implemented by all commands.
type Command interface {
	// ID returns the unique identifier of the command.
	// It must stay constant while the command is registered.
	ID() string

	// Changed returns the signal emitted when any of the display state
	// may have changed. Consumers re-query the state when it fires.
	Changed() *signal.Signal[Command, struct{}]

	// Text returns the display text for the given args.
	Text(args Args) string

	// Icon returns the icon name for the given args.
	Icon(args Args) string

	// Caption returns the tooltip or status text for the given args.
	Caption(args Args) string

	// Category returns the group the command belongs to.
	Category(args Args) string

	// ClassName returns extra style class names for the control.
	ClassName(args Args) string

	// IsEnabled reports whether the command can execute with the given args.
	IsEnabled(args Args) bool

	// IsVisible reports whether controls for the command should be shown.
	IsVisible(args Args) bool

	// IsChecked reports whether the command is in a checked state.
	IsChecked(args Args) bool

	// Execute runs the command. Executing a command for which CanExecute
	// reports false is not prevented here; see application.Dispatcher.
	Execute(args Args) error
}

// CanExecute reports whether cmd is both enabled and visible for args.
func CanExecute(cmd Command, args Args) bool {
	if cmd == nil {
		return false
	}
	return cmd.IsEnabled(args) && cmd.IsVisible(args)
}
