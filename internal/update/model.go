package update

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/tasklist/internal/itemstore"
	"github.com/sandeepkv93/tasklist/internal/model"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Palette string
	Help    string
	Quit    string
}

// EditState tracks the single row being edited in place.
type EditState struct {
	Active bool
	ItemID string
}

// DragState tracks an in-flight reorder gesture.
type DragState struct {
	Active bool
	Source string
	From   int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	ListID       string
	Items        []model.Item
	Cursor       int
	Adding       bool
	AddError     string
	Edit         EditState
	Drag         DragState
	ConfirmClear bool
	Palette      CommandPaletteState
	HelpVisible  bool
	Status       StatusBar
	Keys         GlobalKeyMap
	Quitting     bool
	LastError    error

	store     *itemstore.Store
	cfg       RuntimeConfig
	copyText  func(string) error
	addInput  textinput.Model
	editInput textinput.Model
	// command palette input
	commandInput textinput.Model
	helpModel    help.Model
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// ItemsLoadedMsg carries the result of the session-start Load.
type ItemsLoadedMsg struct {
	Items []model.Item
	Err   error
}

// ToggleItemMsg is a completion-toggle gesture aimed at a row by id.
type ToggleItemMsg struct {
	ID string
}

// DragStartMsg and DragDropMsg carry the list id the drag originated from.
type DragStartMsg struct {
	Source string
	Index  int
}

type DragDropMsg struct {
	Source string
	Index  int
}

func NewModel(store *itemstore.Store, cfg RuntimeConfig) Model {
	if cfg.ListID == "" {
		cfg.ListID = DefaultRuntimeConfig().ListID
	}
	if cfg.CharLimit <= 0 {
		cfg.CharLimit = DefaultRuntimeConfig().CharLimit
	}
	m := Model{
		ListID:   cfg.ListID,
		Items:    store.Items(),
		store:    store,
		cfg:      cfg,
		copyText: clipboard.WriteAll,
		Keys: GlobalKeyMap{
			Palette: "/",
			Help:    "?",
			Quit:    "q",
		},
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.addInput = textinput.New()
	m.addInput.Prompt = "add> "
	m.addInput.Placeholder = "What needs doing?"
	m.addInput.CharLimit = m.cfg.CharLimit
	m.addInput.Width = 48

	m.editInput = textinput.New()
	m.editInput.Prompt = "edit> "
	m.editInput.CharLimit = m.cfg.CharLimit
	m.editInput.Width = 40

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
}
