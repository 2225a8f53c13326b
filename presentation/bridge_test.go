package presentation

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commandkit/application"
	"commandkit/core/command"
	"commandkit/core/eventbus"
	"commandkit/core/state"
)

type bridgeRecorder struct {
	mu       sync.Mutex
	added    [][]string
	removed  [][]string
	changed  []string
	fields   [][]state.Field
	executed map[string]error
}

func (r *bridgeRecorder) callbacks() *UICallbacks {
	r.executed = make(map[string]error)
	return &UICallbacks{
		OnCommandsAdded: func(ids []string) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.added = append(r.added, ids)
		},
		OnCommandsRemoved: func(ids []string) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.removed = append(r.removed, ids)
		},
		OnCommandChanged: func(id string, fields []state.Field, _ state.Snapshot) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.changed = append(r.changed, id)
			r.fields = append(r.fields, fields)
		},
		OnCommandExecuted: func(id string, err error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.executed[id] = err
		},
	}
}

func newTestBridge(t *testing.T) (*UIEventBridge, *command.Registry, eventbus.EventBus) {
	t.Helper()

	bus := eventbus.New(64, nil)
	registry := command.NewRegistry(nil)
	dispatcher := application.NewDispatcher(&application.DispatcherConfig{
		Registry: registry,
		EventBus: bus,
	})
	t.Cleanup(dispatcher.Stop)

	bridge := NewUIEventBridge(&BridgeConfig{
		Dispatcher: dispatcher,
		EventBus:   bus,
	})
	return bridge, registry, bus
}

func TestUIEventBridge_RoutesEvents(t *testing.T) {
	bridge, registry, bus := newTestBridge(t)

	rec := &bridgeRecorder{}
	bridge.SetCallbacks(rec.callbacks())

	boom := errors.New("boom")
	save := command.NewSimple("file:save", command.Options{
		Text:    "Save",
		Handler: func(command.Args) error { return nil },
	})
	fail := command.NewSimple("file:fail", command.Options{
		Handler: func(command.Args) error { return boom },
	})

	reg := registry.Add(save, fail)
	save.SetText("Save All")
	require.NoError(t, bridge.Execute("file:save", nil))
	require.Error(t, bridge.Execute("file:fail", nil))
	reg.Dispose()

	// Close drains the queue
	bus.Close()

	rec.mu.Lock()
	defer rec.mu.Unlock()

	assert.Equal(t, [][]string{{"file:save", "file:fail"}}, rec.added)
	assert.Equal(t, [][]string{{"file:save", "file:fail"}}, rec.removed)
	assert.Equal(t, []string{"file:save"}, rec.changed)
	assert.Equal(t, [][]state.Field{{state.FieldText}}, rec.fields)

	require.Contains(t, rec.executed, "file:save")
	assert.NoError(t, rec.executed["file:save"])
	assert.ErrorIs(t, rec.executed["file:fail"], boom)
}

func TestUIEventBridge_NilCallbacks(t *testing.T) {
	bridge, registry, bus := newTestBridge(t)

	bridge.SetCallbacks(nil)
	registry.Add(command.NewSimple("x", command.Options{}))

	assert.NotPanics(t, bus.Close)
}

func TestUIEventBridge_Close(t *testing.T) {
	bridge, registry, bus := newTestBridge(t)

	rec := &bridgeRecorder{}
	bridge.SetCallbacks(rec.callbacks())
	bridge.Close()
	bridge.Close()

	registry.Add(command.NewSimple("x", command.Options{}))
	bus.Close()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Empty(t, rec.added)
}

func TestUIEventBridge_Execute(t *testing.T) {
	bridge, registry, bus := newTestBridge(t)
	defer bus.Close()

	var got command.Args
	registry.Add(command.NewSimple("edit:find", command.Options{
		Handler: func(args command.Args) error {
			got = args
			return nil
		},
	}))

	require.NoError(t, bridge.Execute("edit:find", command.Args{"query": "go"}))
	assert.Equal(t, "go", got["query"])

	err := bridge.Execute("missing", nil)
	assert.ErrorIs(t, err, application.ErrCommandNotFound)

	snap, ok := bridge.Snapshot("edit:find")
	require.True(t, ok)
	assert.True(t, snap.CanExecute())
	assert.Same(t, registry, bridge.Registry())
}
