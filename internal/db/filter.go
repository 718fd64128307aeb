package db

import (
	"fmt"
	"strings"
)

// filterColumns allow-lists the columns a Filter may constrain.
var filterColumns = map[string]string{
	"priority": "priority",
	"category": "category",
	"status":   "completed",
}

func active(v string) bool {
	return v != "" && v != FilterAll
}

// statusDone maps the accepted status values to the completed flag.
var statusDone = map[string]int{
	StatusPending:  0,
	StatusComplete: 1,
}

// where builds a parameterized WHERE clause for f. It returns an empty
// clause when no filter is active.
func (f Filter) where() (string, []any, error) {
	var clauses []string
	var args []any

	if active(f.Priority) {
		clauses = append(clauses, filterColumns["priority"]+" = ?")
		args = append(args, f.Priority)
	}
	if active(f.Category) {
		clauses = append(clauses, filterColumns["category"]+" = ?")
		args = append(args, f.Category)
	}
	if active(f.Status) {
		done, ok := statusDone[f.Status]
		if !ok {
			return "", nil, fmt.Errorf("%w: unknown status %q", ErrInvalidFilter, f.Status)
		}
		clauses = append(clauses, filterColumns["status"]+" = ?")
		args = append(args, done)
	}
	// instr is case-sensitive, unlike LIKE.
	if f.Search != "" {
		clauses = append(clauses, "instr(task, ?) > 0")
		args = append(args, f.Search)
	}

	if len(clauses) == 0 {
		return "", nil, nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

// Active reports whether any predicate is set.
func (f Filter) Active() bool {
	return active(f.Priority) || active(f.Category) || active(f.Status) || f.Search != ""
}

// Matches evaluates f against t in memory, with the same semantics as the
// SQL clause.
func (f Filter) Matches(t Task) bool {
	if active(f.Priority) && string(t.Priority) != f.Priority {
		return false
	}
	if active(f.Category) && string(t.Category) != f.Category {
		return false
	}
	if active(f.Status) && t.StatusLabel() != f.Status {
		return false
	}
	if f.Search != "" && !strings.Contains(t.Task, f.Search) {
		return false
	}
	return true
}
