package db

import "errors"

var (
	ErrNotFound      = errors.New("task not found")
	ErrInvalidTask   = errors.New("invalid task")
	ErrInvalidFilter = errors.New("invalid filter")
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// FilterAll is the sentinel that disables a filter clause.
const FilterAll = "All"

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Rank orders priorities for sorting. Unknown values rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	}
	return 0
}

func (p Priority) Valid() bool { return p.Rank() > 0 }

type Category string

const (
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategoryShopping Category = "Shopping"
	CategoryOther    Category = "Other"
)

var Categories = []Category{CategoryWork, CategoryPersonal, CategoryShopping, CategoryOther}

func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryShopping, CategoryOther:
		return true
	}
	return false
}

type Recurrence string

const (
	RecurrenceNone    Recurrence = "None"
	RecurrenceDaily   Recurrence = "Daily"
	RecurrenceWeekly  Recurrence = "Weekly"
	RecurrenceMonthly Recurrence = "Monthly"
)

var Recurrences = []Recurrence{RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly}

func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

type Task struct {
	ID         int64      `json:"id"`
	Task       string     `json:"task"`
	DueDate    string     `json:"due_date"`
	DueTime    string     `json:"due_time"`
	Priority   Priority   `json:"priority"`
	Category   Category   `json:"category"`
	Recurrence Recurrence `json:"recurrence"`
	Notes      string     `json:"notes"`
	Completed  bool       `json:"completed"`
}

const (
	StatusComplete = "Complete"
	StatusPending  = "Pending"
)

// StatusLabel is the human form of the completion flag.
func (t Task) StatusLabel() string {
	if t.Completed {
		return StatusComplete
	}
	return StatusPending
}

// NewTask carries the fields of a task before it has an id.
type NewTask struct {
	Task       string     `json:"task"`
	DueDate    string     `json:"due_date"`
	DueTime    string     `json:"due_time"`
	Priority   Priority   `json:"priority"`
	Category   Category   `json:"category"`
	Recurrence Recurrence `json:"recurrence"`
	Notes      string     `json:"notes"`
	Completed  bool       `json:"completed"`
}

// TaskFieldUpdate is a partial update; nil fields are left unchanged.
type TaskFieldUpdate struct {
	Task       *string
	DueDate    *string
	DueTime    *string
	Priority   *Priority
	Category   *Category
	Recurrence *Recurrence
	Notes      *string
}

func (u TaskFieldUpdate) Empty() bool {
	return u.Task == nil && u.DueDate == nil && u.DueTime == nil &&
		u.Priority == nil && u.Category == nil && u.Recurrence == nil && u.Notes == nil
}

// Filter is a conjunction of optional predicates. Empty or FilterAll
// values omit their clause.
type Filter struct {
	Priority string
	Category string
	// Status is "Complete", "Pending" or FilterAll.
	Status string
	Search string
}

type Stats struct {
	Total      int              `json:"total"`
	Completed  int              `json:"completed"`
	Pending    int              `json:"pending"`
	ByPriority map[Priority]int `json:"by_priority"`
	ByCategory map[Category]int `json:"by_category"`
}
