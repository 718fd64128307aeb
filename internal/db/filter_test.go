package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/markx3/todoboard/internal/db"
)

func seedFilterTasks(t *testing.T, database *db.DB) {
	t.Helper()
	ctx := context.Background()
	mustCreate(t, database, db.NewTask{Task: "Fix login bug", Priority: db.PriorityHigh, Category: db.CategoryWork})
	mustCreate(t, database, db.NewTask{Task: "Buy milk", Priority: db.PriorityLow, Category: db.CategoryShopping})
	mustCreate(t, database, db.NewTask{Task: "Call mom", Priority: db.PriorityHigh, Category: db.CategoryPersonal})
	done := mustCreate(t, database, db.NewTask{Task: "Login audit", Priority: db.PriorityHigh, Category: db.CategoryWork})
	if err := database.CompleteTask(ctx, done.ID); err != nil {
		t.Fatalf("completing: %v", err)
	}
}

func TestListTasksFilter(t *testing.T) {
	database := setupTestDB(t)
	seedFilterTasks(t, database)

	tests := []struct {
		name   string
		filter db.Filter
		want   []string
	}{
		{"none", db.Filter{}, []string{"Fix login bug", "Buy milk", "Call mom", "Login audit"}},
		{"all sentinels", db.Filter{Priority: db.FilterAll, Category: db.FilterAll, Status: db.FilterAll}, []string{"Fix login bug", "Buy milk", "Call mom", "Login audit"}},
		{"priority high", db.Filter{Priority: "High"}, []string{"Fix login bug", "Call mom", "Login audit"}},
		{"high and work", db.Filter{Priority: "High", Category: "Work"}, []string{"Fix login bug", "Login audit"}},
		{"high work pending", db.Filter{Priority: "High", Category: "Work", Status: "Pending"}, []string{"Fix login bug"}},
		{"complete", db.Filter{Status: "Complete"}, []string{"Login audit"}},
		{"search case-sensitive", db.Filter{Search: "login"}, []string{"Fix login bug"}},
		{"search capitalized", db.Filter{Search: "Login"}, []string{"Login audit"}},
		{"search and priority", db.Filter{Search: "mo", Priority: "High"}, []string{"Call mom"}},
		{"no match", db.Filter{Category: "Other"}, nil},
		{"injection is a value", db.Filter{Priority: "High' OR '1'='1"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := database.ListTasks(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("listing: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tasks, want %d", len(got), len(tt.want))
			}
			for i, task := range got {
				if task.Task != tt.want[i] {
					t.Errorf("[%d] got %q, want %q", i, task.Task, tt.want[i])
				}
				if !tt.filter.Matches(task) {
					t.Errorf("in-memory Matches disagrees for %q", task.Task)
				}
			}
		})
	}
}

func TestListTasksUnknownStatus(t *testing.T) {
	database := setupTestDB(t)
	seedFilterTasks(t, database)

	for _, status := range []string{"Done", "complete", "Completed"} {
		got, err := database.ListTasks(context.Background(), db.Filter{Status: status})
		if !errors.Is(err, db.ErrInvalidFilter) {
			t.Errorf("%q: got %d tasks, err %v; want ErrInvalidFilter", status, len(got), err)
		}
	}
	pending := mustCreate(t, database, db.NewTask{Task: "Still open"})
	if (db.Filter{Status: "Done"}).Matches(*pending) {
		t.Error("unknown status matched a pending task")
	}
}

func TestFilterActive(t *testing.T) {
	if (db.Filter{Priority: db.FilterAll}).Active() {
		t.Error("FilterAll should not count as active")
	}
	if !(db.Filter{Search: "x"}).Active() {
		t.Error("search should count as active")
	}
}
