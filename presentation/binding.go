package presentation

import (
	"context"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"commandkit/core/command"
	"commandkit/core/disposable"
	"commandkit/core/state"
)

// Scheduler runs a UI update on the UI goroutine.
type Scheduler func(func())

// Executor executes an item on behalf of a control.
// application.Dispatcher satisfies it.
type Executor interface {
	DispatchItem(ctx context.Context, item *command.Item) error
}

// BindConfig holds configuration shared by all control bindings.
type BindConfig struct {
	// Executor runs the command when the control is activated.
	// If nil, the item is executed directly when it can execute.
	Executor Executor
	// Scheduler defaults to fyne.Do.
	Scheduler Scheduler
	// OnError is called when an activation fails.
	OnError func(item *command.Item, err error)
	Logger  *slog.Logger
}

func (c *BindConfig) withDefaults() *BindConfig {
	out := BindConfig{}
	if c != nil {
		out = *c
	}
	if out.Scheduler == nil {
		out.Scheduler = fyne.Do
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return &out
}

// Binding keeps a fyne control in sync with a command item.
// Disposing the binding stops the updates; the control keeps its last state.
type Binding struct {
	item   *command.Item
	cfg    *BindConfig
	apply  func(state.Snapshot)
	conn   disposable.Disposable
	closed disposable.Disposable
}

var _ disposable.Disposable = (*Binding)(nil)

func newBinding(item *command.Item, cfg *BindConfig, apply func(state.Snapshot)) *Binding {
	b := &Binding{
		item:  item,
		cfg:   cfg.withDefaults(),
		apply: apply,
	}
	b.conn = item.Changed().Connect(func(command.Command, struct{}) {
		b.Refresh()
	})
	b.closed = disposable.NewDelegate(b.conn.Dispose)

	b.Refresh()
	return b
}

// Item returns the bound item.
func (b *Binding) Item() *command.Item {
	return b.item
}

// Refresh re-queries the command and updates the control.
func (b *Binding) Refresh() {
	if b.closed.IsDisposed() {
		return
	}
	snap := state.CaptureItem(b.item)
	b.cfg.Scheduler(func() {
		b.apply(snap)
	})
}

// Activate runs the command as if the control had been clicked.
func (b *Binding) Activate() {
	var err error
	if b.cfg.Executor != nil {
		err = b.cfg.Executor.DispatchItem(context.Background(), b.item)
	} else if b.item.CanExecute() {
		err = b.item.Execute()
	}

	if err != nil {
		b.cfg.Logger.Warn("Command activation failed", "command", b.item.ID(), "error", err)
		if b.cfg.OnError != nil {
			b.cfg.OnError(b.item, err)
		}
	}
}

// Dispose disconnects the binding from the command.
func (b *Binding) Dispose() {
	b.closed.Dispose()
}

// IsDisposed reports whether the binding has been disposed.
func (b *Binding) IsDisposed() bool {
	return b.closed.IsDisposed()
}

// BindButton drives a button's text, icon, enabled and visible state from item.
// Tapping the button activates the command.
func BindButton(btn *widget.Button, item *command.Item, cfg *BindConfig) *Binding {
	b := newBinding(item, cfg, func(s state.Snapshot) {
		btn.SetText(s.Text)
		btn.SetIcon(iconResource(s.Icon))
		setEnabled(btn, s.Enabled)
		setVisible(btn, s.Visible)
	})
	btn.OnTapped = b.Activate
	return b
}

// BindCheck drives a check box from a checkable command. Toggling the box
// activates the command, and the box then shows the command's checked state.
func BindCheck(check *widget.Check, item *command.Item, cfg *BindConfig) *Binding {
	var b *Binding
	onChanged := func(bool) {
		b.Activate()
		b.Refresh()
	}

	b = newBinding(item, cfg, func(s state.Snapshot) {
		check.OnChanged = nil
		check.SetText(s.Text)
		check.SetChecked(s.Checked)
		check.OnChanged = onChanged
		setEnabled(check, s.Enabled)
		setVisible(check, s.Visible)
	})
	return b
}

// BindMenuItem drives a menu item's label, icon, checked and disabled state.
// Menu items cannot be hidden, so a hidden command shows as disabled.
// refresh is called after each update so the owning menu can redraw.
func BindMenuItem(mi *fyne.MenuItem, item *command.Item, cfg *BindConfig, refresh func()) *Binding {
	b := newBinding(item, cfg, func(s state.Snapshot) {
		mi.Label = s.Text
		mi.Icon = iconResource(s.Icon)
		mi.Checked = s.Checked
		mi.Disabled = !s.CanExecute()
		if refresh != nil {
			refresh()
		}
	})
	mi.Action = b.Activate
	return b
}

// iconResource resolves a theme icon name, for example "documentSave".
func iconResource(name string) fyne.Resource {
	if name == "" {
		return nil
	}
	return theme.DefaultTheme().Icon(fyne.ThemeIconName(name))
}

type disableable interface {
	Enable()
	Disable()
	Disabled() bool
}

func setEnabled(w disableable, enabled bool) {
	if enabled == !w.Disabled() {
		return
	}
	if enabled {
		w.Enable()
	} else {
		w.Disable()
	}
}

func setVisible(w fyne.CanvasObject, visible bool) {
	if visible == w.Visible() {
		return
	}
	if visible {
		w.Show()
	} else {
		w.Hide()
	}
}
