package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/itemstore"
	"github.com/sandeepkv93/tasklist/internal/model"
)

const invalidTaskText = "Invalid new task!"

func (m Model) handleListKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Items)-1 {
			m.Cursor++
		}
	case "g", "home":
		m.Cursor = 0
	case "G", "end":
		if len(m.Items) > 0 {
			m.Cursor = len(m.Items) - 1
		}
	case " ", "x":
		if item, ok := m.currentItem(); ok {
			m.toggleItem(item.ID)
		}
	case "e":
		m.startEdit()
	case "d", "delete":
		if item, ok := m.currentItem(); ok {
			m.removeItem(item.ID)
		}
	case "a", "i":
		m.Adding = true
		m.addInput.Focus()
		m.Status = StatusBar{Text: "add mode", IsError: false}
	case "m":
		m.startDrag(m.ListID, m.Cursor)
	case "C":
		if len(m.Items) == 0 {
			hasSlot, err := m.store.HasSlot(context.Background())
			if err == nil && !hasSlot {
				m.Status = StatusBar{Text: "nothing to clear", IsError: false}
				return m
			}
		}
		if m.cfg.ConfirmClear {
			m.ConfirmClear = true
			return m
		}
		m.clearAll()
	case "y":
		m.copyCurrentItem()
	}
	return m
}

func (m Model) handleAddKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Adding = false
		m.AddError = ""
		m.addInput.Blur()
		m.Status = StatusBar{Text: "list mode", IsError: false}
		return m
	case "enter":
		items, err := m.store.Add(context.Background(), m.addInput.Value())
		if err != nil {
			if itemstore.IsValidation(err) {
				m.AddError = invalidTaskText
				return m
			}
			m.fail(err)
			return m
		}
		m.setItems(items)
		m.Cursor = len(m.Items) - 1
		m.addInput.SetValue("")
		m.AddError = ""
		m.Status = StatusBar{Text: "task added", IsError: false}
		return m
	}
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	_ = cmd
	return m
}

func (m *Model) startEdit() {
	item, ok := m.currentItem()
	if !ok {
		return
	}
	m.Edit = EditState{Active: true, ItemID: item.ID}
	m.editInput.SetValue(item.Task)
	m.editInput.CursorEnd()
	m.editInput.Focus()
	m.Status = StatusBar{Text: "editing task", IsError: false}
}

func (m Model) handleEditKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.endEdit()
		m.Status = StatusBar{Text: "edit cancelled", IsError: false}
		return m
	case "enter":
		items, err := m.store.EditTask(context.Background(), m.Edit.ItemID, m.editInput.Value())
		if err != nil {
			if itemstore.IsValidation(err) {
				m.Status = StatusBar{Text: invalidTaskText, IsError: true}
				return m
			}
			m.fail(err)
			return m
		}
		m.endEdit()
		m.setItems(items)
		m.Status = StatusBar{Text: "task updated", IsError: false}
		return m
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	_ = cmd
	return m
}

func (m *Model) endEdit() {
	m.Edit = EditState{}
	m.editInput.Blur()
	m.editInput.SetValue("")
}

// toggleItem ignores unknown ids and the row currently in edit mode.
func (m *Model) toggleItem(id string) {
	if m.indexOf(id) < 0 {
		return
	}
	if m.Edit.Active && m.Edit.ItemID == id {
		return
	}
	items, err := m.store.Toggle(context.Background(), id)
	if err != nil {
		m.fail(err)
		return
	}
	m.setItems(items)
	m.Status = StatusBar{Text: "task toggled", IsError: false}
}

func (m *Model) removeItem(id string) {
	if m.indexOf(id) < 0 {
		return
	}
	items, err := m.store.Remove(context.Background(), id)
	if err != nil {
		m.fail(err)
		return
	}
	m.setItems(items)
	m.Status = StatusBar{Text: "task deleted", IsError: false}
}

// startDrag grabs a row of this list. Drags sourced elsewhere are ignored.
func (m *Model) startDrag(source string, index int) {
	if source != m.ListID || index < 0 || index >= len(m.Items) {
		return
	}
	m.Drag = DragState{Active: true, Source: source, From: index}
	m.Cursor = index
	m.Status = StatusBar{Text: fmt.Sprintf("moving task %d", index+1), IsError: false}
}

// dropDrag issues one Reorder for a drag that started in this list.
// Drops without an active drag, or from another list, change nothing.
func (m *Model) dropDrag(source string, index int) {
	if !m.Drag.Active || source != m.ListID {
		return
	}
	drag := m.Drag
	m.Drag = DragState{}
	items, err := m.store.Reorder(context.Background(), drag.From, index)
	if err != nil {
		if itemstore.IsValidation(err) {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return
		}
		m.fail(err)
		return
	}
	m.setItems(items)
	m.Cursor = index
	m.Status = StatusBar{Text: fmt.Sprintf("moved task %d to %d", drag.From+1, index+1), IsError: false}
}

func (m Model) handleDragKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Items)-1 {
			m.Cursor++
		}
	case "m", "enter":
		m.dropDrag(m.ListID, m.Cursor)
	case "esc":
		m.Cursor = m.Drag.From
		m.Drag = DragState{}
		m.Status = StatusBar{Text: "move cancelled", IsError: false}
	}
	return m
}

func (m Model) handleConfirmClearKey(msg tea.KeyMsg) Model {
	m.ConfirmClear = false
	switch msg.String() {
	case "y", "Y":
		m.clearAll()
	default:
		m.Status = StatusBar{Text: "clear cancelled", IsError: false}
	}
	return m
}

func (m *Model) clearAll() {
	items, err := m.store.ClearAll(context.Background())
	if err != nil {
		m.fail(err)
		return
	}
	m.setItems(items)
	m.Status = StatusBar{Text: "all tasks cleared", IsError: false}
}

func (m *Model) copyCurrentItem() {
	item, ok := m.currentItem()
	if !ok || m.copyText == nil {
		return
	}
	if err := m.copyText(item.Task); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("copy failed: %v", err), IsError: true}
		return
	}
	m.Status = StatusBar{Text: "task copied", IsError: false}
}

// setItems replaces the rendered rows with the store's latest sequence.
func (m *Model) setItems(items []model.Item) {
	m.Items = items
	if m.Cursor >= len(m.Items) {
		m.Cursor = len(m.Items) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if m.Edit.Active && m.indexOf(m.Edit.ItemID) < 0 {
		m.endEdit()
	}
}

func (m *Model) fail(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
}

func (m Model) currentItem() (model.Item, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Items) {
		return model.Item{}, false
	}
	return m.Items[m.Cursor], true
}

func (m Model) indexOf(id string) int {
	for i, item := range m.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
