package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/markx3/todoboard/internal/db"
)

const (
	fieldTask = iota
	fieldDueDate
	fieldDueTime
	fieldPriority
	fieldCategory
	fieldRecurrence
	fieldNotes
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Task", "Due Date", "Due Time", "Priority", "Category", "Recurrence", "Notes",
}

type taskForm struct {
	title         string
	taskInput     textinput.Model
	dateInput     textinput.Model
	timeSel       selector
	prioritySel   selector
	categorySel   selector
	recurrenceSel selector
	notesInput    textarea.Model
	focus         int
	width         int
	height        int
}

func newTaskForm(title string) taskForm {
	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 500
	ti.Focus()

	di := textinput.New()
	di.Placeholder = "YYYY-MM-DD"
	di.CharLimit = 10

	ta := textarea.New()
	ta.Placeholder = "Notes (optional)..."
	ta.ShowLineNumbers = false
	ta.SetHeight(3)

	f := taskForm{
		title:         title,
		taskInput:     ti,
		dateInput:     di,
		timeSel:       newSelector(timeOptions()...),
		prioritySel:   newSelector(enumStrings(db.Priorities)...),
		categorySel:   newSelector(enumStrings(db.Categories)...),
		recurrenceSel: newSelector(enumStrings(db.Recurrences)...),
		notesInput:    ta,
	}
	f.setDefaults()
	return f
}

// setDefaults selects the store defaults: no time, Medium, Work, None.
func (f *taskForm) setDefaults() {
	f.timeSel = newSelector(timeOptions()...)
	f.prioritySel.set(string(db.PriorityMedium))
	f.categorySel.set(string(db.CategoryWork))
	f.recurrenceSel.set(string(db.RecurrenceNone))
}

func enumStrings[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

func (f *taskForm) SetSize(w, h int) {
	f.width = w
	f.height = h
	inner := max(w/2-8, 20)
	f.taskInput.Width = inner
	f.dateInput.Width = inner
	f.notesInput.SetWidth(inner)
}

func (f taskForm) Update(msg tea.Msg) (taskForm, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.NextField):
			return f, f.setFocus((f.focus + 1) % fieldCount)
		case key.Matches(msg, keys.PrevField):
			return f, f.setFocus((f.focus - 1 + fieldCount) % fieldCount)
		}
		if sel := f.focusedSelector(); sel != nil {
			switch {
			case key.Matches(msg, keys.OptionNext):
				sel.next()
			case key.Matches(msg, keys.OptionPrev):
				sel.prev()
			}
			return f, nil
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldTask:
		f.taskInput, cmd = f.taskInput.Update(msg)
	case fieldDueDate:
		f.dateInput, cmd = f.dateInput.Update(msg)
	case fieldNotes:
		f.notesInput, cmd = f.notesInput.Update(msg)
	}
	return f, cmd
}

func (f *taskForm) focusedSelector() *selector {
	switch f.focus {
	case fieldDueTime:
		return &f.timeSel
	case fieldPriority:
		return &f.prioritySel
	case fieldCategory:
		return &f.categorySel
	case fieldRecurrence:
		return &f.recurrenceSel
	}
	return nil
}

func (f *taskForm) setFocus(i int) tea.Cmd {
	f.taskInput.Blur()
	f.dateInput.Blur()
	f.notesInput.Blur()
	f.focus = i
	switch i {
	case fieldTask:
		return f.taskInput.Focus()
	case fieldDueDate:
		return f.dateInput.Focus()
	case fieldNotes:
		return f.notesInput.Focus()
	}
	return nil
}

// advance moves to the next field.
func (f *taskForm) advance() tea.Cmd {
	return f.setFocus(min(f.focus+1, fieldCount-1))
}

func (f taskForm) onLastField() bool {
	return f.focus == fieldNotes
}

// problem describes the first input the store would reject, or "".
func (f taskForm) problem() string {
	if strings.TrimSpace(f.taskInput.Value()) == "" {
		return "Task cannot be empty"
	}
	if d := strings.TrimSpace(f.dateInput.Value()); d != "" {
		if _, err := time.Parse(db.DateLayout, d); err != nil {
			return "Due date must be YYYY-MM-DD"
		}
	}
	return ""
}

func (f taskForm) Value() db.NewTask {
	return db.NewTask{
		Task:       strings.TrimSpace(f.taskInput.Value()),
		DueDate:    strings.TrimSpace(f.dateInput.Value()),
		DueTime:    f.timeSel.value(),
		Priority:   db.Priority(f.prioritySel.value()),
		Category:   db.Category(f.categorySel.value()),
		Recurrence: db.Recurrence(f.recurrenceSel.value()),
		Notes:      strings.TrimSpace(f.notesInput.Value()),
	}
}

// FieldUpdate converts the form into a full field update for an edit.
func (f taskForm) FieldUpdate() db.TaskFieldUpdate {
	v := f.Value()
	return db.TaskFieldUpdate{
		Task:       &v.Task,
		DueDate:    &v.DueDate,
		DueTime:    &v.DueTime,
		Priority:   &v.Priority,
		Category:   &v.Category,
		Recurrence: &v.Recurrence,
		Notes:      &v.Notes,
	}
}

// Fill loads t into the form. A stored time off the quarter hour is added
// to the time options so saving keeps it.
func (f *taskForm) Fill(t db.Task) {
	f.taskInput.SetValue(t.Task)
	f.dateInput.SetValue(t.DueDate)
	f.timeSel = newSelector(timeOptions()...)
	f.timeSel.insertSorted(t.DueTime)
	f.timeSel.set(t.DueTime)
	f.prioritySel.set(string(t.Priority))
	f.categorySel.set(string(t.Category))
	f.recurrenceSel.set(string(t.Recurrence))
	f.notesInput.SetValue(t.Notes)
	f.setFocus(fieldTask)
}

func (f *taskForm) Reset() {
	f.taskInput.SetValue("")
	f.dateInput.SetValue("")
	f.setDefaults()
	f.notesInput.SetValue("")
	f.setFocus(fieldTask)
}

func (f taskForm) View() string {
	label := func(i int) string {
		if f.focus == i {
			return focusedLabelStyle.Render(fieldLabels[i] + ":")
		}
		return labelStyle.Render(fieldLabels[i] + ":")
	}

	lines := []string{
		formTitleStyle.Render(f.title),
		"",
		label(fieldTask),
		f.taskInput.View(),
		label(fieldDueDate),
		f.dateInput.View(),
		lipgloss.JoinHorizontal(lipgloss.Top,
			label(fieldDueTime), " ", f.timeSel.view(f.focus == fieldDueTime), "  ",
			label(fieldPriority), " ", f.prioritySel.view(f.focus == fieldPriority)),
		lipgloss.JoinHorizontal(lipgloss.Top,
			label(fieldCategory), " ", f.categorySel.view(f.focus == fieldCategory), "  ",
			label(fieldRecurrence), " ", f.recurrenceSel.view(f.focus == fieldRecurrence)),
		label(fieldNotes),
		f.notesInput.View(),
		"",
		helpStyle.Render("tab: next field | ←/→: change option | enter/ctrl+s: save | esc: cancel"),
	}

	return overlayStyle.Width(max(f.width/2, 40)).Render(strings.Join(lines, "\n"))
}
