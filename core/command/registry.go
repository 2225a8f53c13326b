package command

import (
	"log/slog"
	"sort"
	"sync"

	"commandkit/core/disposable"
	"commandkit/core/signal"
)

// DefaultCategory is the group used for commands with an empty category.
const DefaultCategory = "General"

// ListSignal carries a batch of commands added to or removed from a registry.
type ListSignal = signal.Signal[*Registry, []Command]

// Registry holds commands keyed by their identifier.
//
// Registering a command whose id is already taken logs a warning and ignores
// that command. Add returns a disposable which removes what it added.
type Registry struct {
	commands map[string]Command
	order    []string
	mu       sync.RWMutex
	logger   *slog.Logger

	added   *ListSignal
	removed *ListSignal
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry. Every call returns the same instance.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry(nil)
	})
	return defaultRegistry
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}

	r := &Registry{
		commands: make(map[string]Command),
		logger:   logger,
	}
	r.added = signal.New[*Registry, []Command](r, "registry.commandsAdded")
	r.removed = signal.New[*Registry, []Command](r, "registry.commandsRemoved")
	return r
}

// CommandsAdded is emitted after commands are added, with the added commands.
func (r *Registry) CommandsAdded() *ListSignal {
	return r.added
}

// CommandsRemoved is emitted after commands are removed, with the removed commands.
func (r *Registry) CommandsRemoved() *ListSignal {
	return r.removed
}

// List returns the ids of the registered commands in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Get returns the command with the given id.
func (r *Registry) Get(id string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[id]
	return cmd, ok
}

// Has reports whether a command with the given id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.Get(id)
	return ok
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// All returns the registered commands in registration order.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmds := make([]Command, 0, len(r.order))
	for _, id := range r.order {
		cmds = append(cmds, r.commands[id])
	}
	return cmds
}

// ByCategory returns the visible commands grouped by category, each group
// sorted by id. Commands without a category land in DefaultCategory.
func (r *Registry) ByCategory() map[string][]Command {
	return r.Grouped(false)
}

// Grouped is ByCategory with hidden commands optionally included.
func (r *Registry) Grouped(includeHidden bool) map[string][]Command {
	result := make(map[string][]Command)
	for _, cmd := range r.All() {
		if !includeHidden && !cmd.IsVisible(nil) {
			continue
		}
		category := cmd.Category(nil)
		if category == "" {
			category = DefaultCategory
		}
		result[category] = append(result[category], cmd)
	}

	for _, cmds := range result {
		sort.Slice(cmds, func(i, j int) bool {
			return cmds[i].ID() < cmds[j].ID()
		})
	}
	return result
}

// Add registers commands and returns a disposable which removes them.
//
// Nil commands are skipped. A command whose id is already registered, or
// repeated within the same call, is logged and ignored. When nothing was added
// the returned disposable does nothing and no signal is emitted.
func (r *Registry) Add(cmds ...Command) disposable.Disposable {
	r.mu.Lock()
	added := make([]Command, 0, len(cmds))
	for _, cmd := range cmds {
		if cmd == nil {
			continue
		}
		id := cmd.ID()
		if _, exists := r.commands[id]; exists {
			r.logger.Warn("Command already registered", "id", id)
			continue
		}
		r.commands[id] = cmd
		r.order = append(r.order, id)
		added = append(added, cmd)
	}
	r.mu.Unlock()

	if len(added) == 0 {
		return disposable.Noop()
	}

	r.logger.Debug("Commands added", "count", len(added))
	r.added.Emit(copyCommands(added))

	return disposable.NewDelegate(func() {
		r.remove(added)
	})
}

func (r *Registry) remove(cmds []Command) {
	r.mu.Lock()
	removed := make([]Command, 0, len(cmds))
	for _, cmd := range cmds {
		id := cmd.ID()
		current, ok := r.commands[id]
		if !ok || current != cmd {
			continue
		}
		delete(r.commands, id)
		r.removeOrder(id)
		removed = append(removed, cmd)
	}
	r.mu.Unlock()

	if len(removed) == 0 {
		return
	}

	r.logger.Debug("Commands removed", "count", len(removed))
	r.removed.Emit(copyCommands(removed))
}

func (r *Registry) removeOrder(id string) {
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

func copyCommands(cmds []Command) []Command {
	out := make([]Command, len(cmds))
	copy(out, cmds)
	return out
}
