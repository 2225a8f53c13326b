// Package disposable provides handles that undo a registration exactly once.
package disposable

import "sync"

// Disposable is an object which holds a resource that must be released.
type Disposable interface {
	// Dispose releases the resource. Calling it more than once is a no-op.
	Dispose()

	// IsDisposed reports whether Dispose has been called.
	IsDisposed() bool
}

// Delegate is a Disposable which runs a callback when disposed.
type Delegate struct {
	mu       sync.Mutex
	fn       func()
	disposed bool
}

// NewDelegate creates a disposable that invokes fn on the first Dispose.
// A nil fn yields a disposable with nothing to release.
func NewDelegate(fn func()) *Delegate {
	return &Delegate{fn: fn}
}

// Noop returns an already-armed disposable with nothing to release.
func Noop() *Delegate {
	return NewDelegate(nil)
}

// Dispose runs the callback if it has not run yet.
func (d *Delegate) Dispose() {
	d.mu.Lock()
	if d.disposed {
		d.mu.Unlock()
		return
	}
	d.disposed = true
	fn := d.fn
	d.fn = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// IsDisposed reports whether Dispose has been called.
func (d *Delegate) IsDisposed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.disposed
}
