package command

// Item binds a command to a fixed set of arguments, the way a menu entry or
// toolbar button refers to a command.
type Item struct {
	cmd      Command
	args     Args
	shortcut string
}

// NewItem creates an item for cmd. The shortcut is a display string only.
func NewItem(cmd Command, args Args, shortcut string) *Item {
	return &Item{cmd: cmd, args: args.Clone(), shortcut: shortcut}
}

// Command returns the underlying command.
func (i *Item) Command() Command {
	return i.cmd
}

// Args returns a copy of the bound arguments.
func (i *Item) Args() Args {
	return i.args.Clone()
}

// Shortcut returns the shortcut display string.
func (i *Item) Shortcut() string {
	return i.shortcut
}

// ID returns the command identifier.
func (i *Item) ID() string {
	return i.cmd.ID()
}

// Changed returns the command's change signal.
//
// Display queries below pass a copy of the bound args, so commands cannot
// alter them.
func (i *Item) Changed() *ChangedSignal {
	return i.cmd.Changed()
}

func (i *Item) Text() string      { return i.cmd.Text(i.args.Clone()) }
func (i *Item) Icon() string      { return i.cmd.Icon(i.args.Clone()) }
func (i *Item) Caption() string   { return i.cmd.Caption(i.args.Clone()) }
func (i *Item) Category() string  { return i.cmd.Category(i.args.Clone()) }
func (i *Item) ClassName() string { return i.cmd.ClassName(i.args.Clone()) }
func (i *Item) IsEnabled() bool   { return i.cmd.IsEnabled(i.args.Clone()) }
func (i *Item) IsVisible() bool   { return i.cmd.IsVisible(i.args.Clone()) }
func (i *Item) IsChecked() bool   { return i.cmd.IsChecked(i.args.Clone()) }

// CanExecute reports whether the command can run with the bound args.
func (i *Item) CanExecute() bool {
	return CanExecute(i.cmd, i.args.Clone())
}

// Execute runs the command with a copy of the bound args.
func (i *Item) Execute() error {
	return i.cmd.Execute(i.args.Clone())
}
