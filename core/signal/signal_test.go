package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type owner struct{ name string }

func TestSignal_EmitInConnectionOrder(t *testing.T) {
	o := &owner{name: "owner"}
	sig := New[*owner, int](o, "test")

	var got []string
	sig.Connect(func(sender *owner, v int) {
		require.Same(t, o, sender)
		got = append(got, "a")
	})
	sig.Connect(func(sender *owner, v int) {
		got = append(got, "b")
	})

	sig.Emit(1)

	assert.Equal(t, []string{"a", "b"}, got)
	assert.Same(t, o, sig.Sender())
}

func TestSignal_DisposeDisconnects(t *testing.T) {
	sig := New[string, int]("sender", "test")

	count := 0
	conn := sig.Connect(func(string, int) { count++ })
	sig.Emit(0)

	conn.Dispose()
	conn.Dispose()
	sig.Emit(0)

	assert.Equal(t, 1, count)
	assert.True(t, conn.IsDisposed())
	assert.Equal(t, 0, sig.Len())
}

func TestSignal_ConnectDuringEmit(t *testing.T) {
	sig := New[string, struct{}]("s", "test")

	late := 0
	sig.Connect(func(string, struct{}) {
		sig.Connect(func(string, struct{}) { late++ })
	})

	sig.Emit(struct{}{})
	assert.Equal(t, 0, late)

	sig.Emit(struct{}{})
	assert.Equal(t, 1, late)
}

func TestSignal_DisconnectDuringEmit(t *testing.T) {
	sig := New[string, struct{}]("s", "test")

	var second *Connection[string, struct{}]
	secondCalls := 0
	sig.Connect(func(string, struct{}) { second.Dispose() })
	second = sig.Connect(func(string, struct{}) { secondCalls++ })

	sig.Emit(struct{}{})

	assert.Equal(t, 0, secondCalls)
	assert.Equal(t, 1, sig.Len())
}

func TestSignal_PanickingSlot(t *testing.T) {
	sig := New[string, int]("s", "test")

	received := 0
	sig.Connect(func(string, int) { panic("boom") })
	sig.Connect(func(_ string, v int) { received = v })

	assert.NotPanics(t, func() { sig.Emit(7) })
	assert.Equal(t, 7, received)
}

func TestSignal_DisconnectAll(t *testing.T) {
	sig := New[string, int]("s", "test")

	count := 0
	a := sig.Connect(func(string, int) { count++ })
	sig.Connect(func(string, int) { count++ })

	sig.DisconnectAll()
	sig.Emit(0)

	assert.Equal(t, 0, count)
	assert.True(t, a.IsDisposed())
	assert.Equal(t, 0, sig.Len())
}

func TestSignal_NilSlot(t *testing.T) {
	sig := New[string, int]("s", "test")

	conn := sig.Connect(nil)

	assert.True(t, conn.IsDisposed())
	assert.Equal(t, 0, sig.Len())
	assert.NotPanics(t, func() { sig.Emit(1) })
}
