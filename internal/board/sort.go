package board

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/markx3/todoboard/internal/db"
)

var ErrUnknownColumn = errors.New("unknown sort column")

type Column string

const (
	ColumnID         Column = "ID"
	ColumnTask       Column = "Task"
	ColumnDueDate    Column = "Due Date"
	ColumnDueTime    Column = "Time"
	ColumnPriority   Column = "Priority"
	ColumnCategory   Column = "Category"
	ColumnStatus     Column = "Status"
	ColumnRecurrence Column = "Recurrence"
	ColumnNotes      Column = "Notes"
)

// Columns is the display order of the task table.
var Columns = []Column{
	ColumnID, ColumnTask, ColumnDueDate, ColumnDueTime,
	ColumnPriority, ColumnCategory, ColumnStatus, ColumnRecurrence,
}

var columnAliases = map[string]Column{
	"id":         ColumnID,
	"task":       ColumnTask,
	"due date":   ColumnDueDate,
	"due_date":   ColumnDueDate,
	"date":       ColumnDueDate,
	"time":       ColumnDueTime,
	"due time":   ColumnDueTime,
	"due_time":   ColumnDueTime,
	"priority":   ColumnPriority,
	"category":   ColumnCategory,
	"status":     ColumnStatus,
	"completed":  ColumnStatus,
	"recurrence": ColumnRecurrence,
	"notes":      ColumnNotes,
}

// ParseColumn resolves a user-supplied column name. Matching ignores case.
func ParseColumn(name string) (Column, error) {
	c, ok := columnAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return c, nil
}

// SortTasks orders tasks in place by col. Ties break by id, so the
// descending order is the exact reverse of the ascending one.
func SortTasks(tasks []db.Task, col Column, desc bool) error {
	compare, ok := comparators[col]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, col)
	}
	slices.SortFunc(tasks, func(a, b db.Task) int {
		if c := compare(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if desc {
		slices.Reverse(tasks)
	}
	return nil
}

var comparators = map[Column]func(a, b db.Task) int{
	ColumnID: func(a, b db.Task) int { return cmp.Compare(a.ID, b.ID) },
	ColumnTask: func(a, b db.Task) int {
		return strings.Compare(a.Task, b.Task)
	},
	ColumnDueDate: func(a, b db.Task) int {
		return compareParsed(a.DueDate, b.DueDate, db.DateLayout)
	},
	ColumnDueTime: func(a, b db.Task) int {
		return compareParsed(a.DueTime, b.DueTime, db.TimeLayout)
	},
	ColumnPriority: func(a, b db.Task) int {
		return cmp.Compare(a.Priority.Rank(), b.Priority.Rank())
	},
	ColumnCategory: func(a, b db.Task) int {
		return strings.Compare(string(a.Category), string(b.Category))
	},
	ColumnStatus: func(a, b db.Task) int {
		return cmp.Compare(statusRank(a), statusRank(b))
	},
	ColumnRecurrence: func(a, b db.Task) int {
		return strings.Compare(string(a.Recurrence), string(b.Recurrence))
	},
	ColumnNotes: func(a, b db.Task) int {
		return strings.Compare(a.Notes, b.Notes)
	},
}

// compareParsed orders values by their parsed time. Values that do not
// parse sort first and tie with each other.
func compareParsed(a, b, layout string) int {
	ta, errA := time.Parse(layout, a)
	tb, errB := time.Parse(layout, b)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}
	return ta.Compare(tb)
}

func statusRank(t db.Task) int {
	if t.Completed {
		return 1
	}
	return 2
}

// Sorter remembers the active column and direction across reloads.
type Sorter struct {
	col  Column
	desc bool
}

// Toggle sorts by col. Repeating the active column flips the direction;
// a new column starts ascending.
func (s *Sorter) Toggle(tasks []db.Task, col Column) error {
	if _, ok := comparators[col]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, col)
	}
	if s.col == col {
		s.desc = !s.desc
	} else {
		s.col = col
		s.desc = false
	}
	return SortTasks(tasks, s.col, s.desc)
}

// Apply re-sorts tasks with the current state. With no active column the
// slice is left as is.
func (s *Sorter) Apply(tasks []db.Task) error {
	if s.col == "" {
		return nil
	}
	return SortTasks(tasks, s.col, s.desc)
}

func (s *Sorter) Reset() {
	s.col = ""
	s.desc = false
}

func (s Sorter) Active() (Column, bool) {
	return s.col, s.desc
}
