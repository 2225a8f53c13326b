// Package signal provides a synchronous observer list bound to a sender.
//
// A Signal is the notification primitive the command types delegate to: a
// command owns a signal, and UI code connects slots to it to learn when it
// should re-query the command's state.
package signal

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"commandkit/core/disposable"
)

// Slot is a function connected to a signal.
type Slot[S, T any] func(sender S, args T)

// Signal delivers payloads of type T from a sender of type S to connected slots.
type Signal[S, T any] struct {
	sender S
	name   string

	mu    sync.Mutex
	conns []*Connection[S, T]
}

// New creates a signal bound to the given sender.
// The name is used only for logging.
func New[S, T any](sender S, name string) *Signal[S, T] {
	return &Signal[S, T]{sender: sender, name: name}
}

// Sender returns the object the signal is bound to.
func (s *Signal[S, T]) Sender() S {
	return s.sender
}

// Connect attaches a slot to the signal. Disposing the returned connection
// detaches it again. A nil slot yields an already-disposed connection.
func (s *Signal[S, T]) Connect(slot Slot[S, T]) *Connection[S, T] {
	c := &Connection[S, T]{signal: s, slot: slot}
	if slot == nil {
		c.disposed.Store(true)
		return c
	}

	s.mu.Lock()
	s.conns = append(s.conns, c)
	s.mu.Unlock()
	return c
}

// Emit invokes every connected slot in connection order.
//
// Slots connected while Emit is running are not called for this emission.
// Slots disconnected while Emit is running are skipped if they have not run yet.
func (s *Signal[S, T]) Emit(args T) {
	s.mu.Lock()
	if len(s.conns) == 0 {
		s.mu.Unlock()
		return
	}
	conns := make([]*Connection[S, T], len(s.conns))
	copy(conns, s.conns)
	s.mu.Unlock()

	for _, c := range conns {
		if c.disposed.Load() {
			continue
		}
		s.invoke(c, args)
	}
}

func (s *Signal[S, T]) invoke(c *Connection[S, T], args T) {
	defer func() {
		if r := recover(); r != nil {
			slog.Default().Error("Signal slot panicked", "signal", s.name, "panic", r)
		}
	}()
	c.slot(s.sender, args)
}

// DisconnectAll detaches every slot.
func (s *Signal[S, T]) DisconnectAll() {
	s.mu.Lock()
	conns := s.conns
	s.conns = nil
	s.mu.Unlock()

	for _, c := range conns {
		c.disposed.Store(true)
	}
}

// Len returns the number of connected slots.
func (s *Signal[S, T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

func (s *Signal[S, T]) remove(target *Connection[S, T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.conns {
		if c == target {
			s.conns = append(s.conns[:i:i], s.conns[i+1:]...)
			return
		}
	}
}

// Connection is the link between a signal and one slot.
type Connection[S, T any] struct {
	signal   *Signal[S, T]
	slot     Slot[S, T]
	disposed atomic.Bool
}

var _ disposable.Disposable = (*Connection[any, any])(nil)

// Dispose disconnects the slot from the signal.
func (c *Connection[S, T]) Dispose() {
	if c.disposed.Swap(true) {
		return
	}
	c.signal.remove(c)
}

// IsDisposed reports whether the slot has been disconnected.
func (c *Connection[S, T]) IsDisposed() bool {
	return c.disposed.Load()
}
