package command

import "commandkit/core/signal"

// Base provides the identifier, the Changed signal and default state for
// commands. It is meant to be embedded; the embedding type supplies Execute.
//
// Defaults: all strings empty, enabled, visible, not checked.
type Base struct {
	id      string
	changed *ChangedSignal
}

// NewBase creates a Base whose Changed signal reports self as its sender.
func NewBase(id string, self Command) Base {
	return Base{
		id:      id,
		changed: signal.New[Command, struct{}](self, "command.changed:"+id),
	}
}

// ID returns the command identifier.
func (b *Base) ID() string {
	return b.id
}

// Changed returns the state change signal.
func (b *Base) Changed() *ChangedSignal {
	return b.changed
}

// NotifyChanged emits the Changed signal.
func (b *Base) NotifyChanged() {
	if b.changed != nil {
		b.changed.Emit(struct{}{})
	}
}

func (b *Base) Text(Args) string      { return "" }
func (b *Base) Icon(Args) string      { return "" }
func (b *Base) Caption(Args) string   { return "" }
func (b *Base) Category(Args) string  { return "" }
func (b *Base) ClassName(Args) string { return "" }
func (b *Base) IsEnabled(Args) bool   { return true }
func (b *Base) IsVisible(Args) bool   { return true }
func (b *Base) IsChecked(Args) bool   { return false }
