package db

const schemaVersion = 3

// The oldest layout any variant ever wrote. Everything else arrives
// through optionalColumns so older files upgrade in place.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS tasks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    task TEXT NOT NULL CHECK(length(trim(task)) > 0),
    completed INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// optionalColumns are added, in order, when missing from the tasks table.
// Never remove or reorder entries.
var optionalColumns = []struct {
	name string
	ddl  string
}{
	{"due_date", `ALTER TABLE tasks ADD COLUMN due_date TEXT DEFAULT ''`},
	{"priority", `ALTER TABLE tasks ADD COLUMN priority TEXT DEFAULT 'Medium'`},
	{"category", `ALTER TABLE tasks ADD COLUMN category TEXT DEFAULT 'Work'`},
	{"due_time", `ALTER TABLE tasks ADD COLUMN due_time TEXT DEFAULT ''`},
	{"recurrence", `ALTER TABLE tasks ADD COLUMN recurrence TEXT DEFAULT 'None'`},
	{"notes", `ALTER TABLE tasks ADD COLUMN notes TEXT DEFAULT ''`},
}

const indexSQL = `
CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(due_date);
CREATE INDEX IF NOT EXISTS idx_tasks_completed ON tasks(completed);
`
