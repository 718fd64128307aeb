package tui

import (
	"fmt"
	"strings"

	"github.com/markx3/todoboard/internal/db"
)

type taskDetail struct {
	task   db.Task
	width  int
	height int
}

func newTaskDetail(task db.Task) taskDetail {
	return taskDetail{task: task}
}

func (d *taskDetail) SetSize(w, h int) {
	d.width = w
	d.height = h
}

func (d taskDetail) View() string {
	t := d.task
	width := max(d.width/2, 44)

	status := pendingStyle.Render(t.StatusLabel())
	if t.Completed {
		status = doneStyle.Render(t.StatusLabel())
	}

	due := orDash(t.DueDate)
	if t.DueTime != "" {
		due += " " + t.DueTime
	}

	lines := []string{
		formTitleStyle.Render(fmt.Sprintf("#%d  %s", t.ID, t.Task)),
		"",
		fmt.Sprintf("Status:     %s", status),
		fmt.Sprintf("Due:        %s", due),
		fmt.Sprintf("Priority:   %s", orDash(string(t.Priority))),
		fmt.Sprintf("Category:   %s", orDash(string(t.Category))),
		fmt.Sprintf("Recurrence: %s", orDash(string(t.Recurrence))),
	}
	if t.Notes != "" {
		lines = append(lines, "", renderMarkdown(t.Notes, width-6))
	}
	lines = append(lines, "", helpStyle.Render("esc: close | e: edit | c: complete | x: delete"))

	return overlayStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
