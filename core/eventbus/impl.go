package eventbus

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"commandkit/core/event"
)

// subscription represents a single event subscription.
type subscription struct {
	id        string
	handler   EventHandler
	commandID string // Empty string means subscribe to all events
}

// channelEventBus is a channel-based implementation of EventBus.
type channelEventBus struct {
	eventChan     chan event.Event
	subscriptions map[string]*subscription
	order         []string
	mu            sync.RWMutex
	closeMu       sync.RWMutex
	closed        atomic.Bool
	wg            sync.WaitGroup
	logger        *slog.Logger
}

// New creates a new EventBus with the specified buffer size.
func New(bufferSize int, logger *slog.Logger) EventBus {
	if bufferSize <= 0 {
		bufferSize = 100
	}
	if logger == nil {
		logger = slog.Default()
	}

	bus := &channelEventBus{
		eventChan:     make(chan event.Event, bufferSize),
		subscriptions: make(map[string]*subscription),
		logger:        logger,
	}

	bus.wg.Add(1)
	go bus.dispatch()

	return bus
}

// Publish publishes an event to all subscribers.
func (b *channelEventBus) Publish(e event.Event) {
	b.closeMu.RLock()
	defer b.closeMu.RUnlock()

	if b.closed.Load() {
		return
	}

	// Non-blocking send with select to avoid blocking if buffer is full
	select {
	case b.eventChan <- e:
	default:
		b.logger.Debug("Event dropped, bus buffer full", "event", e.EventName())
	}
}

// Subscribe subscribes to all events.
func (b *channelEventBus) Subscribe(handler EventHandler) string {
	return b.subscribe("", handler)
}

// SubscribeCommand subscribes to events about a specific command.
func (b *channelEventBus) SubscribeCommand(commandID string, handler EventHandler) string {
	return b.subscribe(commandID, handler)
}

func (b *channelEventBus) subscribe(commandID string, handler EventHandler) string {
	id := uuid.NewString()

	b.mu.Lock()
	b.subscriptions[id] = &subscription{
		id:        id,
		handler:   handler,
		commandID: commandID,
	}
	b.order = append(b.order, id)
	b.mu.Unlock()

	return id
}

// Unsubscribe removes a subscription by its ID.
func (b *channelEventBus) Unsubscribe(subscriptionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subscriptions[subscriptionID]; !ok {
		return
	}
	delete(b.subscriptions, subscriptionID)
	for i, id := range b.order {
		if id == subscriptionID {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Close shuts down the event bus.
func (b *channelEventBus) Close() {
	b.closeMu.Lock()
	if b.closed.Swap(true) {
		b.closeMu.Unlock()
		return // Already closed
	}
	close(b.eventChan)
	b.closeMu.Unlock()

	b.wg.Wait()
}

// dispatch is the main event dispatch loop.
func (b *channelEventBus) dispatch() {
	defer b.wg.Done()

	for e := range b.eventChan {
		b.deliverEvent(e)
	}
}

// deliverEvent delivers an event to all matching subscribers in subscription order.
func (b *channelEventBus) deliverEvent(e event.Event) {
	b.mu.RLock()
	// Copy subscriptions to avoid holding lock during handler execution
	subs := make([]*subscription, 0, len(b.order))
	for _, id := range b.order {
		subs = append(subs, b.subscriptions[id])
	}
	b.mu.RUnlock()

	var eventCommandID string
	if ce, ok := e.(event.CommandEvent); ok {
		eventCommandID = ce.CommandID()
	}

	for _, sub := range subs {
		if sub.commandID != "" {
			if eventCommandID == "" || sub.commandID != eventCommandID {
				continue
			}
		}

		b.invoke(sub, e)
	}
}

// invoke calls a handler, recovering panics so one bad handler cannot affect others.
func (b *channelEventBus) invoke(sub *subscription, e event.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Event handler panicked",
				"event", e.EventName(),
				"subscription", sub.id,
				"panic", r,
			)
		}
	}()
	sub.handler(e)
}
