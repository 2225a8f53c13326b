// Package event defines the events published about commands.
// Events describe registry and command state changes and are consumed by
// subscribers of the event bus.
package event

import (
	"commandkit/core/command"
	"commandkit/core/state"
)

// Event is the base interface for all events.
type Event interface {
	// EventName returns the name of the event for logging/debugging
	EventName() string
}

// CommandEvent is an event that concerns a single command.
type CommandEvent interface {
	Event
	// CommandID returns the id of the command the event is about
	CommandID() string
}

// baseCommandEvent provides common implementation for command events.
type baseCommandEvent struct {
	commandID string
}

func (e *baseCommandEvent) CommandID() string {
	return e.commandID
}

// CommandsAdded is published when commands are added to the registry.
type CommandsAdded struct {
	IDs []string
}

func NewCommandsAdded(ids []string) *CommandsAdded {
	return &CommandsAdded{IDs: ids}
}

func (e *CommandsAdded) EventName() string {
	return "CommandsAdded"
}

// CommandsRemoved is published when commands are removed from the registry.
type CommandsRemoved struct {
	IDs []string
}

func NewCommandsRemoved(ids []string) *CommandsRemoved {
	return &CommandsRemoved{IDs: ids}
}

func (e *CommandsRemoved) EventName() string {
	return "CommandsRemoved"
}

// CommandChanged is published when a registered command's display state changes.
type CommandChanged struct {
	baseCommandEvent
	Fields   []state.Field
	Snapshot state.Snapshot
}

func NewCommandChanged(commandID string, fields []state.Field, snapshot state.Snapshot) *CommandChanged {
	return &CommandChanged{
		baseCommandEvent: baseCommandEvent{commandID: commandID},
		Fields:           fields,
		Snapshot:         snapshot,
	}
}

func (e *CommandChanged) EventName() string {
	return "CommandChanged"
}

// CommandExecuted is published after a command ran through the dispatcher.
type CommandExecuted struct {
	baseCommandEvent
	Args  command.Args
	Error error // nil if the command succeeded
}

func NewCommandExecuted(commandID string, args command.Args, err error) *CommandExecuted {
	return &CommandExecuted{
		baseCommandEvent: baseCommandEvent{commandID: commandID},
		Args:             args,
		Error:            err,
	}
}

func (e *CommandExecuted) EventName() string {
	return "CommandExecuted"
}
