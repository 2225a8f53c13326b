package state

import (
	"reflect"
	"testing"

	"commandkit/core/command"
)

func TestField_String(t *testing.T) {
	tests := []struct {
		field    Field
		expected string
	}{
		{FieldText, "Text"},
		{FieldIcon, "Icon"},
		{FieldCaption, "Caption"},
		{FieldCategory, "Category"},
		{FieldClassName, "ClassName"},
		{FieldEnabled, "Enabled"},
		{FieldVisible, "Visible"},
		{FieldChecked, "Checked"},
		{Field(99), "Unknown(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.field.String(); got != tt.expected {
				t.Errorf("String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCapture(t *testing.T) {
	cmd := command.NewSimple("c", command.Options{
		Text:     "Cut",
		Icon:     "contentCut",
		Category: "Edit",
		Disabled: true,
	})

	snap := Capture(cmd, nil)
	want := Snapshot{
		Text:     "Cut",
		Icon:     "contentCut",
		Category: "Edit",
		Enabled:  false,
		Visible:  true,
	}

	if !snap.Equal(want) {
		t.Errorf("Capture() = %+v, want %+v", snap, want)
	}
	if snap.CanExecute() {
		t.Error("disabled snapshot should not be executable")
	}
}

func TestCaptureItem_UsesBoundArgs(t *testing.T) {
	cmd := command.NewDelegate("d", nil, command.WithCanExecute(func(args command.Args) bool {
		return args["ready"] == true
	}))

	if CaptureItem(command.NewItem(cmd, nil, "")).Enabled {
		t.Error("item without args should be disabled")
	}
	if !CaptureItem(command.NewItem(cmd, command.Args{"ready": true}, "")).Enabled {
		t.Error("item with ready args should be enabled")
	}
}

func TestDiff(t *testing.T) {
	base := Snapshot{Text: "a", Enabled: true, Visible: true}

	tests := []struct {
		name     string
		modify   func(s Snapshot) Snapshot
		expected []Field
	}{
		{"none", func(s Snapshot) Snapshot { return s }, nil},
		{"text", func(s Snapshot) Snapshot { s.Text = "b"; return s }, []Field{FieldText}},
		{"enabled and checked", func(s Snapshot) Snapshot {
			s.Enabled = false
			s.Checked = true
			return s
		}, []Field{FieldEnabled, FieldChecked}},
		{"all strings", func(s Snapshot) Snapshot {
			s.Text, s.Icon, s.Caption, s.Category, s.ClassName = "x", "x", "x", "x", "x"
			return s
		}, []Field{FieldText, FieldIcon, FieldCaption, FieldCategory, FieldClassName}},
		{"visible", func(s Snapshot) Snapshot { s.Visible = false; return s }, []Field{FieldVisible}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(base, tt.modify(base))
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Diff() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestContains(t *testing.T) {
	fields := []Field{FieldText, FieldChecked}
	if !Contains(fields, FieldChecked) {
		t.Error("Contains should find FieldChecked")
	}
	if Contains(fields, FieldIcon) {
		t.Error("Contains should not find FieldIcon")
	}
}
