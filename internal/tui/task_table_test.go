package tui

import (
	"testing"

	"github.com/markx3/todoboard/internal/db"
)

func TestSetTasksCursor(t *testing.T) {
	tt := newTaskTable()
	tt.SetSize(120, 40)

	tt.SetTasks(nil, "", false)
	if tt.Selected() != nil {
		t.Fatal("empty table has a selection")
	}

	tt.SetTasks([]db.Task{{ID: 1}, {ID: 2}, {ID: 3}}, "", false)
	if sel := tt.Selected(); sel == nil || sel.ID != 1 {
		t.Fatalf("after loading rows: got %+v, want task 1", sel)
	}

	tt.model.SetCursor(2)
	tt.SetTasks([]db.Task{{ID: 1}, {ID: 2}}, "", false)
	if sel := tt.Selected(); sel == nil || sel.ID != 2 {
		t.Errorf("after shrinking: got %+v, want task 2", sel)
	}
}
