package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/markx3/todoboard/internal/board"
	"github.com/markx3/todoboard/internal/db"
)

// columnWidths are the minimum widths per table column; Task takes the
// remaining space.
var columnWidths = map[board.Column]int{
	board.ColumnID:         4,
	board.ColumnTask:       20,
	board.ColumnDueDate:    10,
	board.ColumnDueTime:    5,
	board.ColumnPriority:   8,
	board.ColumnCategory:   8,
	board.ColumnStatus:     8,
	board.ColumnRecurrence: 10,
}

type taskTable struct {
	model table.Model
	tasks []db.Task
	width int
}

func newTaskTable() taskTable {
	m := table.New(
		table.WithColumns(tableColumns(80, "", false)),
		table.WithFocused(true),
		table.WithKeyMap(tableKeys()),
		table.WithStyles(tableStyles()),
	)
	return taskTable{model: m, width: 80}
}

func tableColumns(width int, sorted board.Column, desc bool) []table.Column {
	fixed := 0
	for _, c := range board.Columns {
		if c != board.ColumnTask {
			fixed += columnWidths[c] + 2
		}
	}
	taskWidth := max(width-fixed-4, columnWidths[board.ColumnTask])

	cols := make([]table.Column, len(board.Columns))
	for i, c := range board.Columns {
		title := string(c)
		if c == sorted {
			if desc {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		w := columnWidths[c]
		if c == board.ColumnTask {
			w = taskWidth
		}
		cols[i] = table.Column{Title: title, Width: max(w, len([]rune(title)))}
	}
	return cols
}

func taskRow(t db.Task) table.Row {
	return table.Row{
		strconv.FormatInt(t.ID, 10),
		t.Task,
		t.DueDate,
		t.DueTime,
		string(t.Priority),
		string(t.Category),
		t.StatusLabel(),
		string(t.Recurrence),
	}
}

func (tt *taskTable) SetSize(w, h int) {
	tt.width = w
	tt.model.SetWidth(w - 2)
	tt.model.SetHeight(max(h-8, 3))
}

// SetTasks replaces the rows, keeping the cursor in range.
func (tt *taskTable) SetTasks(tasks []db.Task, sorted board.Column, desc bool) {
	tt.tasks = tasks
	tt.model.SetColumns(tableColumns(tt.width, sorted, desc))
	rows := make([]table.Row, len(tasks))
	for i, t := range tasks {
		rows[i] = taskRow(t)
	}
	tt.model.SetRows(rows)
	// An empty table leaves the cursor at -1.
	switch c := tt.model.Cursor(); {
	case len(rows) == 0:
	case c < 0:
		tt.model.SetCursor(0)
	case c >= len(rows):
		tt.model.SetCursor(len(rows) - 1)
	}
}

// Selected returns the task under the cursor, or nil when the table is
// empty.
func (tt taskTable) Selected() *db.Task {
	c := tt.model.Cursor()
	if c < 0 || c >= len(tt.tasks) {
		return nil
	}
	t := tt.tasks[c]
	return &t
}

func (tt taskTable) Update(msg tea.Msg) (taskTable, tea.Cmd) {
	var cmd tea.Cmd
	tt.model, cmd = tt.model.Update(msg)
	return tt, cmd
}

func (tt taskTable) View() string {
	if len(tt.tasks) == 0 {
		return tableBorderStyle.Width(max(tt.width-2, 20)).Render(
			helpStyle.Render("No tasks. Press esc to add one."))
	}
	return tableBorderStyle.Render(tt.model.View())
}
