// Package presentation provides the fyne UI layer: control bindings for
// commands and an event bridge to the application layer.
package presentation

import (
	"context"
	"log/slog"
	"sync"

	"commandkit/application"
	"commandkit/core/command"
	"commandkit/core/event"
	"commandkit/core/eventbus"
	"commandkit/core/state"
)

// UIEventBridge bridges UI actions to the dispatcher and routes bus events back to UI.
// Callbacks run on the event bus goroutine; UI updates inside them must go
// through fyne.Do.
type UIEventBridge struct {
	dispatcher *application.Dispatcher
	eventBus   eventbus.EventBus
	logger     *slog.Logger

	// UI callbacks - set by UI components
	callbacks   *UICallbacks
	callbacksMu sync.RWMutex

	subscriptionID string
}

// UICallbacks contains callbacks for UI updates.
type UICallbacks struct {
	OnCommandsAdded   func(ids []string)
	OnCommandsRemoved func(ids []string)
	OnCommandChanged  func(id string, fields []state.Field, snapshot state.Snapshot)
	OnCommandExecuted func(id string, err error)
}

// BridgeConfig holds configuration for UIEventBridge.
type BridgeConfig struct {
	Dispatcher *application.Dispatcher
	EventBus   eventbus.EventBus
	Logger     *slog.Logger
}

// NewUIEventBridge creates a new UI event bridge.
func NewUIEventBridge(cfg *BridgeConfig) *UIEventBridge {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	b := &UIEventBridge{
		dispatcher: cfg.Dispatcher,
		eventBus:   cfg.EventBus,
		logger:     cfg.Logger,
		callbacks:  &UICallbacks{},
	}

	if b.eventBus != nil {
		b.subscriptionID = b.eventBus.Subscribe(b.handleEvent)
	}

	return b
}

// SetCallbacks sets the UI callbacks.
func (b *UIEventBridge) SetCallbacks(callbacks *UICallbacks) {
	b.callbacksMu.Lock()
	defer b.callbacksMu.Unlock()
	b.callbacks = callbacks
}

// Close unsubscribes from the event bus.
func (b *UIEventBridge) Close() {
	if b.eventBus != nil && b.subscriptionID != "" {
		b.eventBus.Unsubscribe(b.subscriptionID)
		b.subscriptionID = ""
	}
}

// Registry returns the registry behind the dispatcher.
func (b *UIEventBridge) Registry() *command.Registry {
	return b.dispatcher.Registry()
}

// Execute runs a registered command by id.
func (b *UIEventBridge) Execute(id string, args command.Args) error {
	return b.dispatcher.Dispatch(context.Background(), id, args)
}

// DispatchItem runs an item through the dispatcher. It lets the bridge act as
// the Executor of control bindings.
func (b *UIEventBridge) DispatchItem(ctx context.Context, item *command.Item) error {
	return b.dispatcher.DispatchItem(ctx, item)
}

// Snapshot returns the last observed state of a command.
func (b *UIEventBridge) Snapshot(id string) (state.Snapshot, bool) {
	return b.dispatcher.Snapshot(id)
}

func (b *UIEventBridge) handleEvent(e event.Event) {
	b.callbacksMu.RLock()
	callbacks := b.callbacks
	b.callbacksMu.RUnlock()

	if callbacks == nil {
		return
	}

	switch evt := e.(type) {
	case *event.CommandsAdded:
		if callbacks.OnCommandsAdded != nil {
			callbacks.OnCommandsAdded(evt.IDs)
		}

	case *event.CommandsRemoved:
		if callbacks.OnCommandsRemoved != nil {
			callbacks.OnCommandsRemoved(evt.IDs)
		}

	case *event.CommandChanged:
		if callbacks.OnCommandChanged != nil {
			callbacks.OnCommandChanged(evt.CommandID(), evt.Fields, evt.Snapshot)
		}

	case *event.CommandExecuted:
		if callbacks.OnCommandExecuted != nil {
			callbacks.OnCommandExecuted(evt.CommandID(), evt.Error)
		}

	default:
		b.logger.Debug("Unhandled event", "event", e.EventName())
	}
}
