package presentation

import (
	"context"
	"errors"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commandkit/core/command"
)

func immediate(f func()) { f() }

type recordingExecutor struct {
	items []*command.Item
	err   error
}

func (e *recordingExecutor) DispatchItem(_ context.Context, item *command.Item) error {
	e.items = append(e.items, item)
	if e.err != nil {
		return e.err
	}
	return item.Execute()
}

func newCountingCommand(id string, opts command.Options) (*command.Simple, *int) {
	calls := new(int)
	opts.Handler = func(command.Args) error {
		*calls++
		return nil
	}
	return command.NewSimple(id, opts), calls
}

func TestBindButton(t *testing.T) {
	test.NewTempApp(t)

	cmd, calls := newCountingCommand("file:save", command.Options{Text: "Save", Icon: "documentSave"})
	btn := widget.NewButton("", nil)
	b := BindButton(btn, command.NewItem(cmd, nil, ""), &BindConfig{Scheduler: immediate})
	defer b.Dispose()

	assert.Equal(t, "Save", btn.Text)
	assert.Equal(t, theme.DefaultTheme().Icon(theme.IconNameDocumentSave), btn.Icon)
	assert.False(t, btn.Disabled())
	assert.True(t, btn.Visible())

	test.Tap(btn)
	assert.Equal(t, 1, *calls)

	cmd.SetText("Save As")
	cmd.SetEnabled(false)
	assert.Equal(t, "Save As", btn.Text)
	assert.True(t, btn.Disabled())

	test.Tap(btn)
	assert.Equal(t, 1, *calls, "disabled button must not execute")

	cmd.SetEnabled(true)
	cmd.SetVisible(false)
	assert.False(t, btn.Disabled())
	assert.False(t, btn.Visible())
}

func TestBindButton_Dispose(t *testing.T) {
	test.NewTempApp(t)

	cmd, _ := newCountingCommand("x", command.Options{Text: "Before"})
	btn := widget.NewButton("", nil)
	b := BindButton(btn, command.NewItem(cmd, nil, ""), &BindConfig{Scheduler: immediate})

	b.Dispose()
	assert.True(t, b.IsDisposed())
	assert.Equal(t, 0, cmd.Changed().Len())

	cmd.SetText("After")
	assert.Equal(t, "Before", btn.Text)
}

func TestBindButton_Executor(t *testing.T) {
	test.NewTempApp(t)

	cmd, calls := newCountingCommand("edit:find", command.Options{Text: "Find"})
	item := command.NewItem(cmd, command.Args{"query": "go"}, "")

	exec := &recordingExecutor{}
	btn := widget.NewButton("", nil)
	b := BindButton(btn, item, &BindConfig{Executor: exec, Scheduler: immediate})
	defer b.Dispose()

	test.Tap(btn)
	require.Len(t, exec.items, 1)
	assert.Same(t, item, exec.items[0])
	assert.Equal(t, 1, *calls)
}

func TestBinding_OnError(t *testing.T) {
	test.NewTempApp(t)

	boom := errors.New("boom")
	cmd, _ := newCountingCommand("x", command.Options{Text: "X"})

	var gotItem *command.Item
	var gotErr error
	btn := widget.NewButton("", nil)
	b := BindButton(btn, command.NewItem(cmd, nil, ""), &BindConfig{
		Executor:  &recordingExecutor{err: boom},
		Scheduler: immediate,
		OnError: func(item *command.Item, err error) {
			gotItem = item
			gotErr = err
		},
	})
	defer b.Dispose()

	b.Activate()
	require.NotNil(t, gotItem)
	assert.Equal(t, "x", gotItem.ID())
	assert.ErrorIs(t, gotErr, boom)
}

func TestBindCheck(t *testing.T) {
	test.NewTempApp(t)

	var cmd *command.Simple
	cmd = command.NewSimple("view:wrap", command.Options{
		Text: "Word Wrap",
		Handler: func(command.Args) error {
			cmd.Toggle()
			return nil
		},
	})

	check := widget.NewCheck("", nil)
	b := BindCheck(check, command.NewItem(cmd, nil, ""), &BindConfig{Scheduler: immediate})
	defer b.Dispose()

	assert.Equal(t, "Word Wrap", check.Text)
	assert.False(t, check.Checked)

	test.Tap(check)
	assert.True(t, cmd.IsChecked(nil))
	assert.True(t, check.Checked)

	// Programmatic changes update the box without executing the command
	cmd.SetChecked(false)
	assert.False(t, check.Checked)
	assert.False(t, cmd.IsChecked(nil))

	cmd.SetEnabled(false)
	assert.True(t, check.Disabled())
}

func TestBindCheck_FailedExecutionRestoresState(t *testing.T) {
	test.NewTempApp(t)

	cmd := command.NewSimple("view:grid", command.Options{
		Text:    "Grid",
		Handler: func(command.Args) error { return errors.New("refused") },
	})

	check := widget.NewCheck("", nil)
	b := BindCheck(check, command.NewItem(cmd, nil, ""), &BindConfig{Scheduler: immediate})
	defer b.Dispose()

	test.Tap(check)
	assert.False(t, check.Checked)
}

func TestBindMenuItem(t *testing.T) {
	test.NewTempApp(t)

	cmd, calls := newCountingCommand("view:status", command.Options{Text: "Status Bar", Checked: true})
	mi := fyne.NewMenuItem("", nil)

	refreshes := 0
	b := BindMenuItem(mi, command.NewItem(cmd, nil, ""), &BindConfig{Scheduler: immediate}, func() {
		refreshes++
	})
	defer b.Dispose()

	assert.Equal(t, "Status Bar", mi.Label)
	assert.True(t, mi.Checked)
	assert.False(t, mi.Disabled)
	assert.Equal(t, 1, refreshes)

	mi.Action()
	assert.Equal(t, 1, *calls)

	cmd.SetVisible(false)
	assert.True(t, mi.Disabled, "hidden commands show as disabled menu items")
	assert.Equal(t, 2, refreshes)

	cmd.SetVisible(true)
	cmd.SetChecked(false)
	assert.False(t, mi.Disabled)
	assert.False(t, mi.Checked)
}

func TestIconResource(t *testing.T) {
	test.NewTempApp(t)

	assert.Nil(t, iconResource(""))
	assert.NotNil(t, iconResource("documentSave"))
}

// renderedTexts returns the strings drawn by the widget's renderer.
func renderedTexts(w fyne.Widget) []string {
	var texts []string
	for _, obj := range test.WidgetRenderer(w).Objects() {
		if text, ok := obj.(*canvas.Text); ok {
			texts = append(texts, text.Text)
		}
	}
	return texts
}

func TestBindCheck_TextOnlyChangeIsRendered(t *testing.T) {
	test.NewTempApp(t)

	cmd := command.NewSimple("view:wrap", command.Options{Text: "Wrap"})
	check := widget.NewCheck("", nil)
	w := test.NewWindow(check)
	defer w.Close()

	b := BindCheck(check, command.NewItem(cmd, nil, ""), &BindConfig{Scheduler: immediate})
	defer b.Dispose()
	require.Contains(t, renderedTexts(check), "Wrap")

	// Checked state is unchanged, only the text differs
	cmd.SetText("Word Wrap")
	assert.Equal(t, "Word Wrap", check.Text)
	assert.Contains(t, renderedTexts(check), "Word Wrap")
}
