package catalog

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"commandkit/core/command"
)

// yamlCatalog is the YAML structure for catalog files.
type yamlCatalog struct {
	Category string        `yaml:"category"`
	Commands []yamlCommand `yaml:"commands"`
}

type yamlCommand struct {
	ID        string         `yaml:"id"`
	Text      string         `yaml:"text"`
	Icon      string         `yaml:"icon"`
	Caption   string         `yaml:"caption"`
	Category  string         `yaml:"category"`
	ClassName string         `yaml:"className"`
	Handler   string         `yaml:"handler"`
	Enabled   *bool          `yaml:"enabled,omitempty"`
	Visible   *bool          `yaml:"visible,omitempty"`
	Checkable bool           `yaml:"checkable"`
	Checked   bool           `yaml:"checked"`
	Shortcut  string         `yaml:"shortcut,omitempty"`
	Args      map[string]any `yaml:"args,omitempty"`
}

// Loader builds commands from catalog files.
type Loader struct {
	handlers Handlers
	logger   *slog.Logger
}

// NewLoader creates a loader resolving handler names against handlers.
func NewLoader(handlers Handlers, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{handlers: handlers, logger: logger}
}

// LoadFromFS loads every .yaml file in dir, in lexical order.
// Ids must be unique across all files.
func (l *Loader) LoadFromFS(fsys fs.FS, dir string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}

	cat := &Catalog{}
	seen := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".yaml" {
			continue
		}

		if err := l.loadInto(cat, seen, fsys, path.Join(dir, entry.Name())); err != nil {
			return nil, err
		}
	}

	l.logger.Debug("Catalog loaded", "dir", dir, "count", cat.Len())
	return cat, nil
}

// LoadFile loads a single catalog file.
func (l *Loader) LoadFile(fsys fs.FS, name string) (*Catalog, error) {
	cat := &Catalog{}
	if err := l.loadInto(cat, make(map[string]string), fsys, name); err != nil {
		return nil, err
	}
	return cat, nil
}

// Parse builds a catalog from raw YAML. The source names the data in errors.
func (l *Loader) Parse(data []byte, source string) (*Catalog, error) {
	cat := &Catalog{}
	if err := l.parseInto(cat, make(map[string]string), data, source); err != nil {
		return nil, err
	}
	return cat, nil
}

func (l *Loader) loadInto(cat *Catalog, seen map[string]string, fsys fs.FS, name string) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read catalog file %s: %w", name, err)
	}
	return l.parseInto(cat, seen, data, name)
}

func (l *Loader) parseInto(cat *Catalog, seen map[string]string, data []byte, source string) error {
	var def yamlCatalog
	if err := yaml.Unmarshal(data, &def); err != nil {
		return fmt.Errorf("failed to parse catalog file %s: %w", source, err)
	}

	for i, yc := range def.Commands {
		if yc.ID == "" {
			return fmt.Errorf("%s: command %d: %w", source, i, ErrMissingID)
		}
		if prev, ok := seen[yc.ID]; ok {
			return fmt.Errorf("%s: %w %q (first defined in %s)", source, ErrDuplicateID, yc.ID, prev)
		}

		cmd, err := l.build(def.Category, yc)
		if err != nil {
			return fmt.Errorf("%s: command %q: %w", source, yc.ID, err)
		}

		seen[yc.ID] = source
		cat.add(cmd, command.Args(yc.Args), yc.Shortcut)
	}

	return nil
}

func (l *Loader) build(category string, yc yamlCommand) (*command.Simple, error) {
	var handler command.Handler
	if yc.Handler != "" {
		h, ok := l.handlers[yc.Handler]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownHandler, yc.Handler)
		}
		handler = h
	}

	if yc.Category != "" {
		category = yc.Category
	}

	className := yc.ClassName
	if yc.Checkable && !HasClass(className, ClassCheckable) {
		className = strings.TrimSpace(className + " " + ClassCheckable)
	}

	cmd := command.NewSimple(yc.ID, command.Options{
		Text:      yc.Text,
		Icon:      yc.Icon,
		Caption:   yc.Caption,
		Category:  category,
		ClassName: className,
		Disabled:  yc.Enabled != nil && !*yc.Enabled,
		Hidden:    yc.Visible != nil && !*yc.Visible,
		Checked:   yc.Checked,
		Handler:   handler,
	})

	if yc.Checkable {
		cmd.SetHandler(func(args command.Args) error {
			cmd.Toggle()
			if handler == nil {
				return nil
			}
			return handler(args)
		})
	}

	return cmd, nil
}
