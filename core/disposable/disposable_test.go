package disposable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDelegate_DisposeOnce(t *testing.T) {
	count := 0
	d := NewDelegate(func() { count++ })

	assert.False(t, d.IsDisposed())

	d.Dispose()
	d.Dispose()

	assert.True(t, d.IsDisposed())
	assert.Equal(t, 1, count)
}

func TestDelegate_NilCallback(t *testing.T) {
	d := Noop()
	assert.NotPanics(t, d.Dispose)
	assert.True(t, d.IsDisposed())
}

func TestDelegate_ReentrantDispose(t *testing.T) {
	count := 0
	var d *Delegate
	d = NewDelegate(func() {
		count++
		d.Dispose()
	})

	d.Dispose()
	assert.Equal(t, 1, count)
}

func TestSet_DisposeInOrder(t *testing.T) {
	var order []int
	s := NewSet(
		NewDelegate(func() { order = append(order, 1) }),
		NewDelegate(func() { order = append(order, 2) }),
	)
	s.Add(NewDelegate(func() { order = append(order, 3) }))

	assert.Equal(t, 3, s.Len())

	s.Dispose()
	s.Dispose()

	assert.Equal(t, []int{1, 2, 3}, order)
	assert.True(t, s.IsDisposed())
	assert.Equal(t, 0, s.Len())
}

func TestSet_AddAfterDispose(t *testing.T) {
	s := NewSet()
	s.Dispose()

	d := NewDelegate(nil)
	s.Add(d)

	assert.True(t, d.IsDisposed())
	assert.False(t, s.Contains(d))
}

func TestSet_RemoveAndContains(t *testing.T) {
	a := NewDelegate(nil)
	b := NewDelegate(nil)
	s := NewSet(a, b, a)

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains(a))
	assert.True(t, s.Remove(a))
	assert.False(t, s.Remove(a))
	assert.False(t, s.Contains(a))

	s.Dispose()

	assert.False(t, a.IsDisposed())
	assert.True(t, b.IsDisposed())
}

func TestSet_IgnoresNil(t *testing.T) {
	s := NewSet(nil)
	s.Add(nil)
	assert.Equal(t, 0, s.Len())
}
