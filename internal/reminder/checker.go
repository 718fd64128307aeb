package reminder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/markx3/todoboard/internal/db"
)

// Source is the part of the task service the checker reads from.
type Source interface {
	UpcomingTasks(ctx context.Context, from, until time.Time) ([]db.Task, error)
}

type Checker struct {
	src        Source
	windowDays int
}

// NewChecker returns a checker for tasks due today through windowDays
// ahead. A windowDays of zero or less leaves the window open.
func NewChecker(src Source, windowDays int) *Checker {
	return &Checker{src: src, windowDays: windowDays}
}

type Result struct {
	From  time.Time
	Until time.Time
	Tasks []db.Task
}

// Check lists pending tasks due on or after the start of now's day.
func (c *Checker) Check(ctx context.Context, now time.Time) (Result, error) {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var until time.Time
	if c.windowDays > 0 {
		until = from.AddDate(0, 0, c.windowDays)
	}

	tasks, err := c.src.UpcomingTasks(ctx, from, until)
	if err != nil {
		return Result{}, fmt.Errorf("checking upcoming tasks: %w", err)
	}
	return Result{From: from, Until: until, Tasks: tasks}, nil
}

func (r Result) Empty() bool { return len(r.Tasks) == 0 }

// Summary renders the result as a short multi-line message.
func (r Result) Summary() string {
	if r.Empty() {
		return "No upcoming tasks."
	}
	var b strings.Builder
	noun := "tasks"
	if len(r.Tasks) == 1 {
		noun = "task"
	}
	fmt.Fprintf(&b, "%d upcoming %s:", len(r.Tasks), noun)
	for _, t := range r.Tasks {
		due := t.DueDate
		if t.DueTime != "" {
			due += " " + t.DueTime
		}
		fmt.Fprintf(&b, "\n- %s  %s (%s)", due, t.Task, t.Priority)
	}
	return b.String()
}
