package tui

import (
	"testing"

	"github.com/markx3/todoboard/internal/db"
)

func TestNewFormDefaults(t *testing.T) {
	v := newTaskForm("Add").Value()
	if v.Priority != db.PriorityMedium || v.Category != db.CategoryWork || v.Recurrence != db.RecurrenceNone {
		t.Errorf("defaults: %+v", v)
	}
	if v.DueTime != "" {
		t.Errorf("due time: got %q, want blank", v.DueTime)
	}
}

func TestFillKeepsOffGridTime(t *testing.T) {
	f := newTaskForm("Edit")
	f.Fill(db.Task{Task: "Standup", DueTime: "09:07", Priority: db.PriorityHigh})
	if got := f.timeSel.value(); got != "09:07" {
		t.Fatalf("filled time: got %q", got)
	}
	if got := *f.FieldUpdate().DueTime; got != "09:07" {
		t.Errorf("update time: got %q", got)
	}

	f.timeSel.next()
	if got := f.timeSel.value(); got != "09:15" {
		t.Errorf("next after 09:07: got %q", got)
	}

	// Filling another task drops the extra option.
	f.Fill(db.Task{Task: "Other", DueTime: "10:00"})
	f.timeSel.set("09:07")
	if got := f.timeSel.value(); got != "" {
		t.Errorf("stale option kept: %q", got)
	}
}
