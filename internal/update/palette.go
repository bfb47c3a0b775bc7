package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

// rowID maps a 1-based row number to the item id at that position.
func (m Model) rowID(row int) (string, error) {
	if row < 1 || row > len(m.Items) {
		return "", &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task at row %d", row)}
	}
	return m.Items[row-1].ID, nil
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	ctx := context.Background()
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			items, err := m.store.Add(ctx, a.Text)
			if err != nil {
				return commands.Result{}, err
			}
			m.setItems(items)
			m.Cursor = len(m.Items) - 1
			return commands.Result{Message: fmt.Sprintf("added task: %s", strings.TrimSpace(a.Text))}, nil
		},
		Edit: func(e commands.EditArgs) (commands.Result, error) {
			id, err := m.rowID(e.Row)
			if err != nil {
				return commands.Result{}, err
			}
			if m.Edit.Active && m.Edit.ItemID == id {
				m.endEdit()
			}
			items, err := m.store.EditTask(ctx, id, e.Text)
			if err != nil {
				return commands.Result{}, err
			}
			m.setItems(items)
			return commands.Result{Message: fmt.Sprintf("updated task %d", e.Row)}, nil
		},
		Toggle: func(t commands.ToggleArgs) (commands.Result, error) {
			id, err := m.rowID(t.Row)
			if err != nil {
				return commands.Result{}, err
			}
			items, err := m.store.Toggle(ctx, id)
			if err != nil {
				return commands.Result{}, err
			}
			m.setItems(items)
			return commands.Result{Message: fmt.Sprintf("toggled task %d", t.Row)}, nil
		},
		Remove: func(r commands.RemoveArgs) (commands.Result, error) {
			id, err := m.rowID(r.Row)
			if err != nil {
				return commands.Result{}, err
			}
			items, err := m.store.Remove(ctx, id)
			if err != nil {
				return commands.Result{}, err
			}
			m.setItems(items)
			return commands.Result{Message: fmt.Sprintf("deleted task %d", r.Row)}, nil
		},
		Move: func(mv commands.MoveArgs) (commands.Result, error) {
			items, err := m.store.Reorder(ctx, mv.From-1, mv.To-1)
			if err != nil {
				return commands.Result{}, err
			}
			m.setItems(items)
			m.Cursor = mv.To - 1
			return commands.Result{Message: fmt.Sprintf("moved task %d to %d", mv.From, mv.To)}, nil
		},
		Clear: func() (commands.Result, error) {
			items, err := m.store.ClearAll(ctx)
			if err != nil {
				return commands.Result{}, err
			}
			m.setItems(items)
			return commands.Result{Message: "all tasks cleared"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: res.Message, IsError: false}
	return m
}
