package presentation

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"commandkit/core/command"
	"commandkit/core/disposable"
	"commandkit/core/state"
	"commandkit/domain/catalog"
)

// MainWindow shows every registered command as a control grouped by
// category, and mirrors the same groups in the main menu.
type MainWindow struct {
	window    fyne.Window
	bridge    *UIEventBridge
	items     func() []*command.Item
	scheduler Scheduler
	logger    *slog.Logger

	// UI components
	body     *fyne.Container
	status   *widget.Label
	mainMenu *fyne.MainMenu

	// Rebuilt with the command set
	bindings   *disposable.Set
	controls   map[string]fyne.CanvasObject
	categories []string

	cleanupOnce sync.Once
}

// MainWindowConfig holds configuration for MainWindow.
type MainWindowConfig struct {
	App    fyne.App
	Title  string
	Bridge *UIEventBridge
	// Items lists the items to show. Defaults to every registered command
	// without args.
	Items     func() []*command.Item
	Scheduler Scheduler // defaults to fyne.Do
	Logger    *slog.Logger
}

// NewMainWindow creates a new main window.
func NewMainWindow(cfg *MainWindowConfig) *MainWindow {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = fyne.Do
	}
	if cfg.Title == "" {
		cfg.Title = "Commands"
	}

	w := &MainWindow{
		window:    cfg.App.NewWindow(cfg.Title),
		bridge:    cfg.Bridge,
		items:     cfg.Items,
		scheduler: cfg.Scheduler,
		logger:    cfg.Logger,
		bindings:  disposable.NewSet(),
		controls:  make(map[string]fyne.CanvasObject),
	}
	if w.items == nil {
		w.items = w.registryItems
	}

	w.init()
	w.setupEventCallbacks()
	w.Rebuild()

	w.window.SetOnClosed(func() {
		w.Cleanup()
		cfg.App.Quit()
	})

	return w
}

func (w *MainWindow) init() {
	w.body = container.NewVBox()
	w.status = widget.NewLabel("Ready")

	content := container.NewBorder(nil, w.status, nil, nil, container.NewVScroll(w.body))
	w.window.SetContent(content)
	w.window.Resize(fyne.NewSize(480, 560))
}

func (w *MainWindow) setupEventCallbacks() {
	w.bridge.SetCallbacks(&UICallbacks{
		OnCommandsAdded: func(ids []string) {
			w.logger.Debug("Commands added", "ids", ids)
			w.scheduler(w.Rebuild)
		},
		OnCommandsRemoved: func(ids []string) {
			w.logger.Debug("Commands removed", "ids", ids)
			w.scheduler(w.Rebuild)
		},
		OnCommandChanged: func(id string, fields []state.Field, _ state.Snapshot) {
			// Controls follow their own bindings; a new category needs a new group.
			if state.Contains(fields, state.FieldCategory) {
				w.scheduler(w.Rebuild)
			}
		},
		OnCommandExecuted: func(id string, err error) {
			w.scheduler(func() {
				if err != nil {
					w.setStatus(fmt.Sprintf("%s failed: %v", id, err))
					return
				}
				w.setStatus(fmt.Sprintf("Executed %s", id))
			})
		},
	})
}

func (w *MainWindow) registryItems() []*command.Item {
	cmds := w.bridge.Registry().All()
	items := make([]*command.Item, len(cmds))
	for i, cmd := range cmds {
		items[i] = command.NewItem(cmd, nil, "")
	}
	return items
}

// Rebuild recreates all controls and menus from the current items.
// Must be called on the UI goroutine.
func (w *MainWindow) Rebuild() {
	w.releaseBindings()

	cfg := &BindConfig{
		Executor:  w.bridge,
		Scheduler: w.scheduler,
		Logger:    w.logger,
		OnError: func(item *command.Item, err error) {
			w.scheduler(func() {
				w.setStatus(fmt.Sprintf("%s: %v", item.ID(), err))
			})
		},
	}

	groups := make(map[string][]*command.Item)
	for _, item := range w.items() {
		category := item.Category()
		if category == "" {
			category = command.DefaultCategory
		}
		groups[category] = append(groups[category], item)
	}

	w.categories = w.categories[:0]
	for category := range groups {
		w.categories = append(w.categories, category)
	}
	slices.Sort(w.categories)

	// Set below; BindMenuItem refreshes immediately on bind.
	var mainMenu *fyne.MainMenu
	refreshMenu := func() {
		if mainMenu != nil {
			mainMenu.Refresh()
		}
	}

	cards := make([]fyne.CanvasObject, 0, len(w.categories))
	menus := make([]*fyne.Menu, 0, len(w.categories))
	for _, category := range w.categories {
		box := container.NewVBox()
		menu := fyne.NewMenu(category)

		for _, item := range groups[category] {
			box.Add(w.bindControl(item, cfg))

			mi := fyne.NewMenuItem("", nil)
			w.bindings.Add(BindMenuItem(mi, item, cfg, refreshMenu))
			menu.Items = append(menu.Items, mi)
		}

		cards = append(cards, widget.NewCard(category, "", box))
		menus = append(menus, menu)
	}

	mainMenu = fyne.NewMainMenu(menus...)
	w.mainMenu = mainMenu
	w.window.SetMainMenu(mainMenu)

	w.body.Objects = cards
	w.body.Refresh()

	w.logger.Debug("Main window rebuilt", "categories", len(w.categories), "controls", len(w.controls))
}

func (w *MainWindow) bindControl(item *command.Item, cfg *BindConfig) fyne.CanvasObject {
	var obj fyne.CanvasObject
	if catalog.HasClass(item.ClassName(), catalog.ClassCheckable) {
		check := widget.NewCheck("", nil)
		w.bindings.Add(BindCheck(check, item, cfg))
		obj = check
	} else {
		btn := widget.NewButton("", nil)
		w.bindings.Add(BindButton(btn, item, cfg))
		obj = btn
	}
	w.controls[item.ID()] = obj
	return obj
}

func (w *MainWindow) releaseBindings() {
	w.bindings.Dispose()
	w.bindings = disposable.NewSet()
	clear(w.controls)
}

func (w *MainWindow) setStatus(text string) {
	w.status.SetText(text)
}

// Public methods

// Show displays the main window.
func (w *MainWindow) Show() {
	w.window.Show()
}

// Window returns the underlying fyne window.
func (w *MainWindow) Window() fyne.Window {
	return w.window
}

// Categories returns the displayed categories in display order.
func (w *MainWindow) Categories() []string {
	return slices.Clone(w.categories)
}

// Control returns the control bound to the command id.
func (w *MainWindow) Control(id string) (fyne.CanvasObject, bool) {
	obj, ok := w.controls[id]
	return obj, ok
}

// MainMenu returns the current main menu.
func (w *MainWindow) MainMenu() *fyne.MainMenu {
	return w.mainMenu
}

// Status returns the status line text.
func (w *MainWindow) Status() string {
	return w.status.Text
}

// Cleanup releases resources.
func (w *MainWindow) Cleanup() {
	w.cleanupOnce.Do(func() {
		w.logger.Info("Starting cleanup...")

		w.bridge.Close()
		w.releaseBindings()

		w.logger.Info("Cleanup completed")
	})
}
