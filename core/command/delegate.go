package command

import "sync"

// Delegate wraps an execute function and an optional predicate so a command
// can be created without defining a new type.
type Delegate struct {
	Base

	execute    Handler
	canExecute func(Args) bool

	mu       sync.RWMutex
	enabled  bool
	checked  bool
	text     string
	icon     string
	category string
}

var _ Command = (*Delegate)(nil)

// DelegateOption configures a Delegate.
type DelegateOption func(*Delegate)

// WithCanExecute sets the predicate consulted by IsEnabled.
func WithCanExecute(fn func(Args) bool) DelegateOption {
	return func(d *Delegate) { d.canExecute = fn }
}

// WithText sets the display text.
func WithText(text string) DelegateOption {
	return func(d *Delegate) { d.text = text }
}

// WithIcon sets the icon name.
func WithIcon(icon string) DelegateOption {
	return func(d *Delegate) { d.icon = icon }
}

// WithCategory sets the category.
func WithCategory(category string) DelegateOption {
	return func(d *Delegate) { d.category = category }
}

// NewDelegate creates a delegate command. It starts enabled and unchecked.
func NewDelegate(id string, execute Handler, opts ...DelegateOption) *Delegate {
	d := &Delegate{
		execute: execute,
		enabled: true,
	}
	d.Base = NewBase(id, d)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Enabled returns the enabled flag.
func (d *Delegate) Enabled() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.enabled
}

// SetEnabled sets the enabled flag and emits Changed if it changed.
func (d *Delegate) SetEnabled(enabled bool) {
	d.mu.Lock()
	if d.enabled == enabled {
		d.mu.Unlock()
		return
	}
	d.enabled = enabled
	d.mu.Unlock()

	d.NotifyChanged()
}

// Checked returns the checked flag.
func (d *Delegate) Checked() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.checked
}

// SetChecked sets the checked flag and emits Changed if it changed.
func (d *Delegate) SetChecked(checked bool) {
	d.mu.Lock()
	if d.checked == checked {
		d.mu.Unlock()
		return
	}
	d.checked = checked
	d.mu.Unlock()

	d.NotifyChanged()
}

func (d *Delegate) Text(Args) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text
}

func (d *Delegate) Icon(Args) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.icon
}

func (d *Delegate) Category(Args) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.category
}

// IsEnabled returns false when the enabled flag is off. Otherwise it returns
// the predicate's result, or true when there is no predicate.
func (d *Delegate) IsEnabled(args Args) bool {
	if !d.Enabled() {
		return false
	}
	if d.canExecute != nil {
		return d.canExecute(args)
	}
	return true
}

// IsChecked returns the checked flag.
func (d *Delegate) IsChecked(Args) bool {
	return d.Checked()
}

// Execute invokes the delegate function.
func (d *Delegate) Execute(args Args) error {
	if d.execute == nil {
		return ErrNoHandler
	}
	return d.execute(args)
}
