package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(s scanner) (Task, error) {
	var t Task
	var priority, category, recurrence string
	var completed int
	if err := s.Scan(
		&t.ID, &t.Task, &t.DueDate, &t.DueTime,
		&priority, &category, &recurrence, &t.Notes, &completed); err != nil {
		return Task{}, err
	}
	t.Priority = Priority(priority)
	t.Category = Category(category)
	t.Recurrence = Recurrence(recurrence)
	if t.Recurrence == "" {
		t.Recurrence = RecurrenceNone
	}
	t.Completed = completed != 0
	return t, nil
}

// Columns added by older variants without defaults may hold NULL.
const taskColumns = `id, task, COALESCE(due_date, ''), COALESCE(due_time, ''),
		        COALESCE(priority, ''), COALESCE(category, ''), COALESCE(recurrence, ''),
		        COALESCE(notes, ''), COALESCE(completed, 0)`

const insertTaskSQL = `INSERT INTO tasks (task, due_date, due_time, priority, category, recurrence, notes, completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertTask(ctx context.Context, ex execer, n NewTask) (int64, error) {
	res, err := ex.ExecContext(ctx, insertTaskSQL,
		n.Task, n.DueDate, n.DueTime, n.Priority, n.Category, n.Recurrence, n.Notes,
		boolToInt(n.Completed))
	if err != nil {
		return 0, fmt.Errorf("inserting task: %w", err)
	}
	return res.LastInsertId()
}

func (d *DB) CreateTask(ctx context.Context, n NewTask) (*Task, error) {
	if err := n.Prepare(); err != nil {
		return nil, err
	}

	id, err := insertTask(ctx, d.conn, n)
	if err != nil {
		return nil, err
	}
	return &Task{
		ID:         id,
		Task:       n.Task,
		DueDate:    n.DueDate,
		DueTime:    n.DueTime,
		Priority:   n.Priority,
		Category:   n.Category,
		Recurrence: n.Recurrence,
		Notes:      n.Notes,
		Completed:  n.Completed,
	}, nil
}

// ImportTasks validates every row first, then inserts them in one
// transaction. A single bad row aborts the whole batch.
func (d *DB) ImportTasks(ctx context.Context, rows []NewTask) (int, error) {
	for i := range rows {
		if err := rows[i].Prepare(); err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for i, n := range rows {
		if _, err := insertTask(ctx, tx, n); err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	return len(rows), nil
}

func (d *DB) GetTask(ctx context.Context, id int64) (*Task, error) {
	row := d.conn.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("getting task %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting task: %w", err)
	}
	return &t, nil
}

func (d *DB) ListTasks(ctx context.Context, f Filter) ([]Task, error) {
	where, args, err := f.where()
	if err != nil {
		return nil, err
	}
	rows, err := d.conn.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks`+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, err
	}
	d.warnInvalid(tasks)
	return tasks, nil
}

func scanTasks(rows *sql.Rows) ([]Task, error) {
	tasks := make([]Task, 0, 64)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// UpdateTaskFields applies a partial update. The merged record must still
// satisfy the task invariants; the completion flag is not touched.
func (d *DB) UpdateTaskFields(ctx context.Context, id int64, fields TaskFieldUpdate) error {
	if fields.Empty() {
		return nil
	}

	current, err := d.GetTask(ctx, id)
	if err != nil {
		return err
	}
	fields.apply(current)
	merged := current.asNew()
	if err := merged.Prepare(); err != nil {
		return err
	}

	_, err = d.conn.ExecContext(ctx,
		`UPDATE tasks SET task=?, due_date=?, due_time=?, priority=?, category=?,
		 recurrence=?, notes=? WHERE id=?`,
		merged.Task, merged.DueDate, merged.DueTime, merged.Priority, merged.Category,
		merged.Recurrence, merged.Notes, id)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return nil
}

// CompleteTask sets the completion flag. Completing a completed task is a
// no-op.
func (d *DB) CompleteTask(ctx context.Context, id int64) error {
	res, err := d.conn.ExecContext(ctx, "UPDATE tasks SET completed = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("completing task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("completing task: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("completing task %d: %w", id, ErrNotFound)
	}
	return nil
}

func (d *DB) DeleteTask(ctx context.Context, id int64) error {
	_, err := d.conn.ExecContext(ctx, "DELETE FROM tasks WHERE id=?", id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

// DeleteAllTasks empties the table and resets the id sequence.
func (d *DB) DeleteAllTasks(ctx context.Context) error {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tasks"); err != nil {
		return fmt.Errorf("clearing tasks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM sqlite_sequence WHERE name = 'tasks'"); err != nil {
		return fmt.Errorf("resetting id sequence: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing clear: %w", err)
	}
	d.log.Info("all tasks cleared")
	return nil
}

// UpcomingTasks returns pending tasks due on or after from. A zero until
// leaves the window open-ended.
func (d *DB) UpcomingTasks(ctx context.Context, from, until time.Time) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		 WHERE COALESCE(completed, 0) = 0 AND COALESCE(due_date, '') != '' AND due_date >= ?`
	args := []any{from.Format(DateLayout)}
	if !until.IsZero() {
		query += ` AND due_date <= ?`
		args = append(args, until.Format(DateLayout))
	}
	query += ` ORDER BY due_date, COALESCE(due_time, ''), id`

	rows, err := d.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing upcoming tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (d *DB) Stats(ctx context.Context) (Stats, error) {
	tasks, err := d.ListTasks(ctx, Filter{})
	if err != nil {
		return Stats{}, err
	}
	s := Stats{
		ByPriority: make(map[Priority]int),
		ByCategory: make(map[Category]int),
	}
	for _, t := range tasks {
		s.Total++
		if t.Completed {
			s.Completed++
		} else {
			s.Pending++
		}
		s.ByPriority[t.Priority]++
		s.ByCategory[t.Category]++
	}
	return s, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// warnInvalid logs legacy rows that no longer satisfy the invariants.
func (d *DB) warnInvalid(tasks []Task) {
	for _, t := range tasks {
		if t.DueDate == "" {
			continue
		}
		if _, err := time.Parse(DateLayout, t.DueDate); err != nil {
			d.log.Warn("stored due date does not parse",
				zap.Int64("id", t.ID), zap.String("due_date", t.DueDate))
		}
	}
}
