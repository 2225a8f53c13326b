package command

import "sync"

// Options holds the initial state of a Simple command.
// The zero value describes an enabled, visible, unchecked command.
type Options struct {
	Text      string
	Icon      string
	Caption   string
	Category  string
	ClassName string
	Disabled  bool
	Hidden    bool
	Checked   bool
	Handler   Handler
}

// Simple is a command whose display state is held in plain fields.
// Every setter emits Changed when, and only when, the value changes.
type Simple struct {
	Base

	mu    sync.RWMutex
	state Options
}

var _ Command = (*Simple)(nil)

// NewSimple creates a simple command with the given initial state.
func NewSimple(id string, opts Options) *Simple {
	s := &Simple{state: opts}
	s.Base = NewBase(id, s)
	return s
}

func (s *Simple) Text(Args) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Text
}

func (s *Simple) Icon(Args) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Icon
}

func (s *Simple) Caption(Args) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Caption
}

func (s *Simple) Category(Args) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Category
}

func (s *Simple) ClassName(Args) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ClassName
}

func (s *Simple) IsEnabled(Args) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.state.Disabled
}

func (s *Simple) IsVisible(Args) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.state.Hidden
}

func (s *Simple) IsChecked(Args) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Checked
}

// Execute calls the handler.
func (s *Simple) Execute(args Args) error {
	s.mu.RLock()
	handler := s.state.Handler
	s.mu.RUnlock()

	if handler == nil {
		return ErrNoHandler
	}
	return handler(args)
}

func (s *Simple) SetText(v string)      { setField(s, &s.state.Text, v) }
func (s *Simple) SetIcon(v string)      { setField(s, &s.state.Icon, v) }
func (s *Simple) SetCaption(v string)   { setField(s, &s.state.Caption, v) }
func (s *Simple) SetCategory(v string)  { setField(s, &s.state.Category, v) }
func (s *Simple) SetClassName(v string) { setField(s, &s.state.ClassName, v) }
func (s *Simple) SetEnabled(v bool)     { setField(s, &s.state.Disabled, !v) }
func (s *Simple) SetVisible(v bool)     { setField(s, &s.state.Hidden, !v) }
func (s *Simple) SetChecked(v bool)     { setField(s, &s.state.Checked, v) }

// Toggle flips the checked state and returns the new value.
func (s *Simple) Toggle() bool {
	s.mu.Lock()
	s.state.Checked = !s.state.Checked
	checked := s.state.Checked
	s.mu.Unlock()

	s.NotifyChanged()
	return checked
}

// SetHandler replaces the handler. Handlers are not display state, so this
// never emits Changed.
func (s *Simple) SetHandler(h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Handler = h
}

func setField[T comparable](s *Simple, field *T, v T) {
	s.mu.Lock()
	if *field == v {
		s.mu.Unlock()
		return
	}
	*field = v
	s.mu.Unlock()

	s.NotifyChanged()
}
