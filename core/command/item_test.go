package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItem_DelegatesWithBoundArgs(t *testing.T) {
	var seen Args
	cmd := NewDelegate("open", func(args Args) error {
		seen = args
		return nil
	}, WithText("Open"), WithCanExecute(func(args Args) bool {
		return args["path"] != ""
	}))

	args := Args{"path": "/tmp/a.txt"}
	item := NewItem(cmd, args, "Ctrl+O")
	args["path"] = ""

	assert.Equal(t, "open", item.ID())
	assert.Equal(t, "Open", item.Text())
	assert.Equal(t, "Ctrl+O", item.Shortcut())
	assert.True(t, item.IsEnabled())
	assert.True(t, item.CanExecute())
	assert.Same(t, cmd.Changed(), item.Changed())
	assert.Equal(t, Command(cmd), item.Command())

	require.NoError(t, item.Execute())
	assert.Equal(t, "/tmp/a.txt", seen["path"])

	seen["path"] = "mutated"
	assert.Equal(t, "/tmp/a.txt", item.Args()["path"])
}

func TestItem_NilArgs(t *testing.T) {
	item := NewItem(NewSimple("x", Options{Text: "X", Hidden: true}), nil, "")

	assert.Nil(t, item.Args())
	assert.Equal(t, "X", item.Text())
	assert.False(t, item.IsVisible())
	assert.False(t, item.CanExecute())
	assert.Equal(t, "", item.Caption())
	assert.Equal(t, "", item.ClassName())
	assert.Equal(t, "", item.Category())
	assert.Equal(t, "", item.Icon())
	assert.False(t, item.IsChecked())
}

// mutatingCommand writes into the args it is queried with.
type mutatingCommand struct {
	Base
}

func newMutatingCommand(id string) *mutatingCommand {
	c := &mutatingCommand{}
	c.Base = NewBase(id, c)
	return c
}

func (c *mutatingCommand) Text(args Args) string {
	args["path"] = "changed by Text"
	return "Mutating"
}

func (c *mutatingCommand) IsEnabled(args Args) bool {
	args["enabled"] = true
	return true
}

func (c *mutatingCommand) Execute(args Args) error {
	args["path"] = "changed by Execute"
	return nil
}

func TestItem_QueriesDoNotMutateBoundArgs(t *testing.T) {
	item := NewItem(newMutatingCommand("m"), Args{"path": "a.txt"}, "")

	assert.Equal(t, "Mutating", item.Text())
	assert.True(t, item.IsEnabled())
	assert.True(t, item.CanExecute())
	require.NoError(t, item.Execute())

	assert.Equal(t, Args{"path": "a.txt"}, item.Args())
}
