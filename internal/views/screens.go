package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const EmptyPlaceholder = "No tasks to be done!"

type RowData struct {
	Number   int
	Task     string
	Done     bool
	Cursor   bool
	Editing  bool
	EditView string
	Grabbed  bool
}

type ListData struct {
	Rows     []RowData
	Dragging bool
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

type PalettePanelData struct {
	Active    bool
	InputView string
}

var (
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	doneStyle    = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
	checkedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	grabStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderList draws one line per row, or the placeholder when there are none.
func RenderList(data ListData) string {
	if len(data.Rows) == 0 {
		return mutedStyle.Render(EmptyPlaceholder)
	}
	var b strings.Builder
	for _, row := range data.Rows {
		b.WriteString(renderRow(row))
		b.WriteString("\n")
	}
	if data.Dragging {
		b.WriteString(grabStyle.Render("moving: [j/k] choose slot [m/enter] drop [esc] cancel"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderRow(row RowData) string {
	prefix := "  "
	if row.Cursor {
		prefix = cursorStyle.Render("> ")
	}
	box := "[ ]"
	if row.Done {
		box = checkedStyle.Render("[x]")
	}
	text := row.Task
	if row.Done {
		text = doneStyle.Render(text)
	}
	if row.Editing {
		text = row.EditView
	}
	marker := ""
	if row.Grabbed {
		marker = " " + grabStyle.Render("<moving>")
	}
	if row.Editing {
		marker = " " + mutedStyle.Render("(editing)")
	}
	return fmt.Sprintf("%s%2d. %s %s%s", prefix, row.Number, box, text, marker)
}

func RenderHelpPanel(data HelpPanelData) string {
	var md strings.Builder
	md.WriteString("# Keys\n\n")
	for _, line := range data.Bindings {
		md.WriteString(line + "\n")
	}
	rendered := RenderMarkdown(md.String())
	if data.HelpView != "" {
		rendered = strings.TrimSpace(rendered + "\n\n" + data.HelpView)
	}
	return rendered
}

func RenderPalettePanel(data PalettePanelData) string {
	if !data.Active {
		return ""
	}
	var b strings.Builder
	b.WriteString("command palette:\n")
	b.WriteString(data.InputView + "\n")
	b.WriteString("examples: /add text | /edit 2 text | /toggle 1 | /rm 3 | /mv 1 3 | /clear")
	return b.String()
}
