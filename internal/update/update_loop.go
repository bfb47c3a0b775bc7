package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/itemstore"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/views"
)

func (m Model) Init() tea.Cmd {
	return loadItemsCmd(m.store)
}

func loadItemsCmd(store *itemstore.Store) tea.Cmd {
	return func() tea.Msg {
		items, err := store.Load(context.Background())
		return ItemsLoadedMsg{Items: items, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		keyStr := typed.String()
		if keyStr == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		switch {
		case m.Palette.Active:
			if keyStr == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed), nil
		case m.ConfirmClear:
			return m.handleConfirmClearKey(typed), nil
		case m.Adding:
			return m.handleAddKey(typed), nil
		case m.Edit.Active:
			return m.handleEditKey(typed), nil
		case m.Drag.Active:
			return m.handleDragKey(typed), nil
		}

		switch keyStr {
		case m.Keys.Palette:
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		return m.handleListKey(typed), nil
	case ItemsLoadedMsg:
		if typed.Err != nil {
			m.LastError = typed.Err
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			return m, nil
		}
		m.setItems(typed.Items)
		m.Status = StatusBar{Text: fmt.Sprintf("loaded %d tasks", len(typed.Items)), IsError: false}
		return m, nil
	case ToggleItemMsg:
		m.toggleItem(typed.ID)
		return m, nil
	case DragStartMsg:
		m.startDrag(typed.Source, typed.Index)
		return m, nil
	case DragDropMsg:
		m.dropDrag(typed.Source, typed.Index)
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	if m.ConfirmClear {
		status = "clear all tasks? [y] yes, any other key cancels"
	}

	side := views.RenderPalettePanel(views.PalettePanelData{
		Active:    m.Palette.Active,
		InputView: m.commandInput.View(),
	}) + m.renderHelpIfVisible()

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("tasklist | %d tasks | %d done", len(m.Items), countDone(m.Items)),
		List:       views.RenderList(m.listData()),
		Input:      m.addInput.View(),
		InputError: m.AddError,
		SidePane:   side,
		StatusLine: status,
		Footer:     fmt.Sprintf("keys: a add | space toggle | e edit | d delete | m move | C clear | y copy | %s cmd | %s help | %s quit", m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) listData() views.ListData {
	rows := make([]views.RowData, 0, len(m.Items))
	for i, item := range m.Items {
		editing := m.Edit.Active && m.Edit.ItemID == item.ID
		row := views.RowData{
			Number:  i + 1,
			Task:    item.Task,
			Done:    item.Done(),
			Cursor:  i == m.Cursor && !m.Adding,
			Editing: editing,
			Grabbed: m.Drag.Active && m.Drag.Source == m.ListID && i == m.Drag.From,
		}
		if editing {
			row.EditView = m.editInput.View()
		}
		rows = append(rows, row)
	}
	return views.ListData{Rows: rows, Dragging: m.Drag.Active}
}

func countDone(items []model.Item) int {
	n := 0
	for _, item := range items {
		if item.Done() {
			n++
		}
	}
	return n
}
