// Package catalog loads command definitions from YAML files.
//
// A catalog file describes commands for one category:
//
//	category: Edit
//	commands:
//	  - id: edit:undo
//	    text: Undo
//	    icon: contentUndo
//	    handler: log
package catalog

import (
	"errors"
	"strings"

	"commandkit/core/command"
)

// Common errors for catalog loading.
var (
	ErrMissingID      = errors.New("command definition has no id")
	ErrDuplicateID    = errors.New("duplicate command id")
	ErrUnknownHandler = errors.New("unknown handler")
)

// ClassCheckable is added to the class names of commands declared checkable.
const ClassCheckable = "checkable"

// HasClass reports whether the space separated classNames contains class.
func HasClass(classNames, class string) bool {
	for _, c := range strings.Fields(classNames) {
		if c == class {
			return true
		}
	}
	return false
}

// Handlers maps handler names used in catalog files to command handlers.
type Handlers map[string]command.Handler

// Catalog is the result of loading one or more catalog files.
type Catalog struct {
	commands []*command.Simple
	items    []*command.Item
}

// Commands returns the loaded commands in file order.
func (c *Catalog) Commands() []command.Command {
	cmds := make([]command.Command, len(c.commands))
	for i, cmd := range c.commands {
		cmds[i] = cmd
	}
	return cmds
}

// Items returns one item per command, bound to the args from its definition.
func (c *Catalog) Items() []*command.Item {
	items := make([]*command.Item, len(c.items))
	copy(items, c.items)
	return items
}

// Get returns the loaded command with the given id.
func (c *Catalog) Get(id string) (*command.Simple, bool) {
	for _, cmd := range c.commands {
		if cmd.ID() == id {
			return cmd, true
		}
	}
	return nil, false
}

// Item returns the item of the loaded command with the given id.
func (c *Catalog) Item(id string) (*command.Item, bool) {
	for _, item := range c.items {
		if item.ID() == id {
			return item, true
		}
	}
	return nil, false
}

// Len returns the number of loaded commands.
func (c *Catalog) Len() int {
	return len(c.commands)
}

func (c *Catalog) add(cmd *command.Simple, args command.Args, shortcut string) {
	c.commands = append(c.commands, cmd)
	c.items = append(c.items, command.NewItem(cmd, args, shortcut))
}
