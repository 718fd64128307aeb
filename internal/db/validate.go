package db

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// normalize trims free text and fills enum defaults.
func (n *NewTask) normalize() {
	n.Task = strings.TrimSpace(n.Task)
	n.DueDate = strings.TrimSpace(n.DueDate)
	n.DueTime = strings.TrimSpace(n.DueTime)
	if n.Priority == "" {
		n.Priority = PriorityMedium
	}
	if n.Category == "" {
		n.Category = CategoryWork
	}
	if n.Recurrence == "" {
		n.Recurrence = RecurrenceNone
	}
}

func (n NewTask) Validate() error {
	err := validation.ValidateStruct(&n,
		validation.Field(&n.Task, validation.Required),
		validation.Field(&n.DueDate, validation.Date(DateLayout)),
		validation.Field(&n.DueTime, validation.Date(TimeLayout)),
		validation.Field(&n.Priority, validation.In(PriorityLow, PriorityMedium, PriorityHigh)),
		validation.Field(&n.Category, validation.In(CategoryWork, CategoryPersonal, CategoryShopping, CategoryOther)),
		validation.Field(&n.Recurrence, validation.In(RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTask, err)
	}
	return nil
}

// Prepare normalizes and validates n in place.
func (n *NewTask) Prepare() error {
	n.normalize()
	return n.Validate()
}

func (t Task) asNew() NewTask {
	return NewTask{
		Task:       t.Task,
		DueDate:    t.DueDate,
		DueTime:    t.DueTime,
		Priority:   t.Priority,
		Category:   t.Category,
		Recurrence: t.Recurrence,
		Notes:      t.Notes,
		Completed:  t.Completed,
	}
}

// apply merges the non-nil fields of u onto t.
func (u TaskFieldUpdate) apply(t *Task) {
	if u.Task != nil {
		t.Task = *u.Task
	}
	if u.DueDate != nil {
		t.DueDate = *u.DueDate
	}
	if u.DueTime != nil {
		t.DueTime = *u.DueTime
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.Category != nil {
		t.Category = *u.Category
	}
	if u.Recurrence != nil {
		t.Recurrence = *u.Recurrence
	}
	if u.Notes != nil {
		t.Notes = *u.Notes
	}
}
