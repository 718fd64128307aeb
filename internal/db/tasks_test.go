package db_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/markx3/todoboard/internal/db"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *db.DB {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
		os.Remove(dbPath)
	})
	return database
}

func mustCreate(t *testing.T, database *db.DB, n db.NewTask) *db.Task {
	t.Helper()
	task, err := database.CreateTask(context.Background(), n)
	if err != nil {
		t.Fatalf("creating task %q: %v", n.Task, err)
	}
	return task
}

func TestCreateAndGetTask(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	task, err := database.CreateTask(ctx, db.NewTask{
		Task:    "Buy groceries",
		DueDate: "2024-03-01",
		DueTime: "09:15",
		Notes:   "milk, eggs",
	})
	if err != nil {
		t.Fatalf("creating task: %v", err)
	}

	if task.ID == 0 {
		t.Fatal("expected non-zero ID")
	}
	if task.Priority != db.PriorityMedium {
		t.Errorf("default priority: got %q, want %q", task.Priority, db.PriorityMedium)
	}
	if task.Category != db.CategoryWork {
		t.Errorf("default category: got %q, want %q", task.Category, db.CategoryWork)
	}
	if task.Recurrence != db.RecurrenceNone {
		t.Errorf("default recurrence: got %q, want %q", task.Recurrence, db.RecurrenceNone)
	}
	if task.Completed {
		t.Error("expected new task to be pending")
	}

	got, err := database.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("getting task: %v", err)
	}
	if *got != *task {
		t.Errorf("round trip: got %+v, want %+v", *got, *task)
	}
}

func TestIDsIncrease(t *testing.T) {
	database := setupTestDB(t)

	t1 := mustCreate(t, database, db.NewTask{Task: "First"})
	t2 := mustCreate(t, database, db.NewTask{Task: "Second"})
	if t2.ID <= t1.ID {
		t.Errorf("ids not increasing: %d then %d", t1.ID, t2.ID)
	}

	// Deleting the newest row must not let its id be reused.
	if err := database.DeleteTask(context.Background(), t2.ID); err != nil {
		t.Fatalf("deleting: %v", err)
	}
	t3 := mustCreate(t, database, db.NewTask{Task: "Third"})
	if t3.ID <= t2.ID {
		t.Errorf("id reused: got %d after deleting %d", t3.ID, t2.ID)
	}
}

func TestCreateRejectsInvalid(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   db.NewTask
	}{
		{"empty task", db.NewTask{Task: ""}},
		{"blank task", db.NewTask{Task: "   "}},
		{"bad date", db.NewTask{Task: "x", DueDate: "03/01/2024"}},
		{"impossible date", db.NewTask{Task: "x", DueDate: "2024-02-30"}},
		{"bad time", db.NewTask{Task: "x", DueTime: "25:00"}},
		{"bad priority", db.NewTask{Task: "x", Priority: "Urgent"}},
		{"bad category", db.NewTask{Task: "x", Category: "Errands"}},
		{"bad recurrence", db.NewTask{Task: "x", Recurrence: "Yearly"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := database.CreateTask(ctx, tt.in)
			if !errors.Is(err, db.ErrInvalidTask) {
				t.Fatalf("got err %v, want ErrInvalidTask", err)
			}
		})
	}

	tasks, err := database.ListTasks(ctx, db.Filter{})
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("invalid input wrote %d rows", len(tasks))
	}
}

func TestGetMissingTask(t *testing.T) {
	database := setupTestDB(t)
	_, err := database.GetTask(context.Background(), 42)
	if !errors.Is(err, db.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestCompleteTaskIdempotent(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	task := mustCreate(t, database, db.NewTask{Task: "Finish report"})
	for i := 0; i < 2; i++ {
		if err := database.CompleteTask(ctx, task.ID); err != nil {
			t.Fatalf("complete #%d: %v", i+1, err)
		}
	}

	got, _ := database.GetTask(ctx, task.ID)
	if !got.Completed {
		t.Error("expected completed=true")
	}

	if err := database.CompleteTask(ctx, 999); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("complete missing: got %v, want ErrNotFound", err)
	}
}

func TestDeleteTask(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	keep := mustCreate(t, database, db.NewTask{Task: "Keep"})
	gone := mustCreate(t, database, db.NewTask{Task: "Delete Me"})
	if err := database.DeleteTask(ctx, gone.ID); err != nil {
		t.Fatalf("deleting task: %v", err)
	}

	tasks, _ := database.ListTasks(ctx, db.Filter{})
	if len(tasks) != 1 || tasks[0].ID != keep.ID {
		t.Fatalf("got %+v, want only task %d", tasks, keep.ID)
	}
}

func TestDeleteAllResetsSequence(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	mustCreate(t, database, db.NewTask{Task: "One"})
	mustCreate(t, database, db.NewTask{Task: "Two"})

	if err := database.DeleteAllTasks(ctx); err != nil {
		t.Fatalf("clearing: %v", err)
	}
	tasks, _ := database.ListTasks(ctx, db.Filter{})
	if len(tasks) != 0 {
		t.Fatalf("got %d tasks after clear, want 0", len(tasks))
	}

	fresh := mustCreate(t, database, db.NewTask{Task: "Fresh"})
	if fresh.ID != 1 {
		t.Errorf("id after clear: got %d, want 1", fresh.ID)
	}
}

func TestUpdateTaskFields(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	task := mustCreate(t, database, db.NewTask{Task: "Original", Notes: "keep me"})

	newText := "Updated"
	high := db.PriorityHigh
	if err := database.UpdateTaskFields(ctx, task.ID, db.TaskFieldUpdate{
		Task:     &newText,
		Priority: &high,
	}); err != nil {
		t.Fatalf("partial update: %v", err)
	}

	got, _ := database.GetTask(ctx, task.ID)
	if got.Task != "Updated" {
		t.Errorf("task: got %q, want %q", got.Task, "Updated")
	}
	if got.Priority != db.PriorityHigh {
		t.Errorf("priority: got %q", got.Priority)
	}
	if got.Notes != "keep me" {
		t.Errorf("notes changed: got %q", got.Notes)
	}
}

func TestUpdateTaskFieldsRejectsInvalid(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	task := mustCreate(t, database, db.NewTask{Task: "Stable", DueDate: "2024-01-01"})

	empty := ""
	if err := database.UpdateTaskFields(ctx, task.ID, db.TaskFieldUpdate{Task: &empty}); !errors.Is(err, db.ErrInvalidTask) {
		t.Errorf("empty task: got %v, want ErrInvalidTask", err)
	}
	bad := "tomorrow"
	if err := database.UpdateTaskFields(ctx, task.ID, db.TaskFieldUpdate{DueDate: &bad}); !errors.Is(err, db.ErrInvalidTask) {
		t.Errorf("bad date: got %v, want ErrInvalidTask", err)
	}

	got, _ := database.GetTask(ctx, task.ID)
	if got.Task != "Stable" || got.DueDate != "2024-01-01" {
		t.Errorf("rejected update changed row: %+v", *got)
	}

	if err := database.UpdateTaskFields(ctx, 999, db.TaskFieldUpdate{Task: &bad}); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("missing id: got %v, want ErrNotFound", err)
	}
}

func TestUpcomingTasks(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	mustCreate(t, database, db.NewTask{Task: "Past", DueDate: "2024-01-01"})
	mustCreate(t, database, db.NewTask{Task: "Later", DueDate: "2024-01-20"})
	mustCreate(t, database, db.NewTask{Task: "Soon", DueDate: "2024-01-05", DueTime: "10:00"})
	mustCreate(t, database, db.NewTask{Task: "Soon early", DueDate: "2024-01-05", DueTime: "08:00"})
	mustCreate(t, database, db.NewTask{Task: "No date"})
	done := mustCreate(t, database, db.NewTask{Task: "Done", DueDate: "2024-01-06"})
	database.CompleteTask(ctx, done.ID)

	from := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	all, err := database.UpcomingTasks(ctx, from, time.Time{})
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	want := []string{"Soon early", "Soon", "Later"}
	if len(all) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(all), len(want))
	}
	for i, task := range all {
		if task.Task != want[i] {
			t.Errorf("[%d] got %q, want %q", i, task.Task, want[i])
		}
	}

	windowed, _ := database.UpcomingTasks(ctx, from, from.AddDate(0, 0, 7))
	if len(windowed) != 2 {
		t.Errorf("windowed: got %d tasks, want 2", len(windowed))
	}
}

func TestImportTasksAtomic(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	n, err := database.ImportTasks(ctx, []db.NewTask{
		{Task: "Imported", Completed: true},
		{Task: "Also imported", Priority: db.PriorityLow},
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 2 {
		t.Errorf("imported %d, want 2", n)
	}

	_, err = database.ImportTasks(ctx, []db.NewTask{
		{Task: "Would be fine"},
		{Task: ""},
	})
	if !errors.Is(err, db.ErrInvalidTask) {
		t.Fatalf("got %v, want ErrInvalidTask", err)
	}

	tasks, _ := database.ListTasks(ctx, db.Filter{})
	if len(tasks) != 2 {
		t.Fatalf("failed import leaked rows: got %d tasks", len(tasks))
	}
	if !tasks[0].Completed {
		t.Error("completed flag not propagated")
	}
}

func TestStats(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	mustCreate(t, database, db.NewTask{Task: "a", Priority: db.PriorityHigh})
	mustCreate(t, database, db.NewTask{Task: "b", Category: db.CategoryShopping})
	c := mustCreate(t, database, db.NewTask{Task: "c", Priority: db.PriorityHigh})
	database.CompleteTask(ctx, c.ID)

	s, err := database.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if s.Total != 3 || s.Completed != 1 || s.Pending != 2 {
		t.Errorf("totals: %+v", s)
	}
	if s.ByPriority[db.PriorityHigh] != 2 {
		t.Errorf("high: got %d, want 2", s.ByPriority[db.PriorityHigh])
	}
	if s.ByCategory[db.CategoryShopping] != 1 {
		t.Errorf("shopping: got %d, want 1", s.ByCategory[db.CategoryShopping])
	}
}

func TestSchemaUpgradeKeepsRows(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "legacy.db")

	// Layout written by the earliest form variant: no due_time,
	// recurrence or notes, and nullable optional columns.
	legacy, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("opening legacy db: %v", err)
	}
	_, err = legacy.Exec(`
CREATE TABLE tasks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    task TEXT NOT NULL,
    due_date TEXT,
    priority TEXT,
    category TEXT,
    completed INTEGER DEFAULT 0
);
INSERT INTO tasks (task, due_date, priority, category, completed)
VALUES ('Legacy', '2023-12-31', 'High', 'Personal', 1),
       ('Sparse', NULL, NULL, NULL, 0);`)
	if err != nil {
		t.Fatalf("seeding legacy db: %v", err)
	}
	legacy.Close()

	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("opening upgraded db: %v", err)
	}
	defer database.Close()
	ctx := context.Background()

	cols := map[string]bool{}
	rows, err := database.Conn().QueryContext(ctx, "SELECT name FROM pragma_table_info('tasks')")
	if err != nil {
		t.Fatalf("table info: %v", err)
	}
	for rows.Next() {
		var name string
		rows.Scan(&name)
		cols[name] = true
	}
	rows.Close()
	for _, c := range []string{"due_time", "recurrence", "notes"} {
		if !cols[c] {
			t.Errorf("column %s not added", c)
		}
	}

	got, err := database.GetTask(ctx, 1)
	if err != nil {
		t.Fatalf("getting legacy row: %v", err)
	}
	if got.Task != "Legacy" || got.DueDate != "2023-12-31" || got.Priority != db.PriorityHigh ||
		got.Category != db.CategoryPersonal || !got.Completed {
		t.Errorf("legacy row changed: %+v", *got)
	}
	if got.Notes != "" || got.DueTime != "" || got.Recurrence != db.RecurrenceNone {
		t.Errorf("new columns not empty: %+v", *got)
	}

	sparse, err := database.GetTask(ctx, 2)
	if err != nil {
		t.Fatalf("getting sparse row: %v", err)
	}
	if sparse.DueDate != "" || sparse.Priority != "" {
		t.Errorf("NULLs not coalesced: %+v", *sparse)
	}

	// New rows continue the old sequence.
	fresh := mustCreate(t, database, db.NewTask{Task: "After upgrade"})
	if fresh.ID != 3 {
		t.Errorf("fresh id: got %d, want 3", fresh.ID)
	}
}

func TestReopenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "twice.db")

	first, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	mustCreate(t, first, db.NewTask{Task: "Persisted", Notes: "n"})
	first.Close()

	second, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer second.Close()
	tasks, _ := second.ListTasks(context.Background(), db.Filter{})
	if len(tasks) != 1 || tasks[0].Notes != "n" {
		t.Errorf("got %+v after reopen", tasks)
	}
}
