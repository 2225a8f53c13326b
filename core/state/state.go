// Package state captures and compares the display state of commands.
package state

import (
	"fmt"

	"commandkit/core/command"
)

// Field identifies one piece of a command's display state.
type Field int

const (
	// FieldText is the display text.
	FieldText Field = iota
	// FieldIcon is the icon name.
	FieldIcon
	// FieldCaption is the tooltip or status text.
	FieldCaption
	// FieldCategory is the command group.
	FieldCategory
	// FieldClassName is the extra style class names.
	FieldClassName
	// FieldEnabled is the enabled flag.
	FieldEnabled
	// FieldVisible is the visible flag.
	FieldVisible
	// FieldChecked is the checked flag.
	FieldChecked
)

// String returns the string representation of the field.
func (f Field) String() string {
	switch f {
	case FieldText:
		return "Text"
	case FieldIcon:
		return "Icon"
	case FieldCaption:
		return "Caption"
	case FieldCategory:
		return "Category"
	case FieldClassName:
		return "ClassName"
	case FieldEnabled:
		return "Enabled"
	case FieldVisible:
		return "Visible"
	case FieldChecked:
		return "Checked"
	default:
		return fmt.Sprintf("Unknown(%d)", f)
	}
}

// Snapshot is the display state of a command for one set of args.
type Snapshot struct {
	Text      string
	Icon      string
	Caption   string
	Category  string
	ClassName string
	Enabled   bool
	Visible   bool
	Checked   bool
}

// Capture queries cmd for its current display state.
func Capture(cmd command.Command, args command.Args) Snapshot {
	return Snapshot{
		Text:      cmd.Text(args),
		Icon:      cmd.Icon(args),
		Caption:   cmd.Caption(args),
		Category:  cmd.Category(args),
		ClassName: cmd.ClassName(args),
		Enabled:   cmd.IsEnabled(args),
		Visible:   cmd.IsVisible(args),
		Checked:   cmd.IsChecked(args),
	}
}

// CaptureItem queries an item with its bound args.
func CaptureItem(item *command.Item) Snapshot {
	return Capture(item.Command(), item.Args())
}

// Equal reports whether two snapshots hold the same state.
func (s Snapshot) Equal(other Snapshot) bool {
	return s == other
}

// CanExecute reports whether the snapshot describes an executable command.
func (s Snapshot) CanExecute() bool {
	return s.Enabled && s.Visible
}

// Diff returns the fields that differ between prev and next, in declaration order.
func Diff(prev, next Snapshot) []Field {
	var fields []Field
	if prev.Text != next.Text {
		fields = append(fields, FieldText)
	}
	if prev.Icon != next.Icon {
		fields = append(fields, FieldIcon)
	}
	if prev.Caption != next.Caption {
		fields = append(fields, FieldCaption)
	}
	if prev.Category != next.Category {
		fields = append(fields, FieldCategory)
	}
	if prev.ClassName != next.ClassName {
		fields = append(fields, FieldClassName)
	}
	if prev.Enabled != next.Enabled {
		fields = append(fields, FieldEnabled)
	}
	if prev.Visible != next.Visible {
		fields = append(fields, FieldVisible)
	}
	if prev.Checked != next.Checked {
		fields = append(fields, FieldChecked)
	}
	return fields
}

// Contains reports whether f is in fields.
func Contains(fields []Field, f Field) bool {
	for _, field := range fields {
		if field == f {
			return true
		}
	}
	return false
}
