package board

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/markx3/todoboard/internal/db"
)

type LocalService struct {
	db  *db.DB
	log *zap.Logger
}

type Option func(*LocalService)

func WithLogger(l *zap.Logger) Option {
	return func(s *LocalService) {
		if l != nil {
			s.log = l
		}
	}
}

func NewLocalService(database *db.DB, opts ...Option) *LocalService {
	s := &LocalService{db: database, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *LocalService) ListTasks(ctx context.Context, f db.Filter) ([]db.Task, error) {
	return s.db.ListTasks(ctx, f)
}

func (s *LocalService) GetTask(ctx context.Context, id int64) (*db.Task, error) {
	return s.db.GetTask(ctx, id)
}

func (s *LocalService) CreateTask(ctx context.Context, n db.NewTask) (*db.Task, error) {
	task, err := s.db.CreateTask(ctx, n)
	if err != nil {
		return nil, err
	}
	s.log.Info("task added", zap.Int64("id", task.ID), zap.String("due_date", task.DueDate))
	return task, nil
}

func (s *LocalService) UpdateTaskFields(ctx context.Context, id int64, fields db.TaskFieldUpdate) error {
	if err := s.db.UpdateTaskFields(ctx, id, fields); err != nil {
		return err
	}
	s.log.Info("task edited", zap.Int64("id", id))
	return nil
}

func (s *LocalService) CompleteTask(ctx context.Context, id int64) error {
	if err := s.db.CompleteTask(ctx, id); err != nil {
		return err
	}
	s.log.Info("task completed", zap.Int64("id", id))
	return nil
}

func (s *LocalService) DeleteTask(ctx context.Context, id int64) error {
	if err := s.db.DeleteTask(ctx, id); err != nil {
		return err
	}
	s.log.Info("task deleted", zap.Int64("id", id))
	return nil
}

func (s *LocalService) DeleteAllTasks(ctx context.Context) error {
	return s.db.DeleteAllTasks(ctx)
}

func (s *LocalService) UpcomingTasks(ctx context.Context, from, until time.Time) ([]db.Task, error) {
	return s.db.UpcomingTasks(ctx, from, until)
}

func (s *LocalService) Stats(ctx context.Context) (db.Stats, error) {
	return s.db.Stats(ctx)
}

// Export writes every stored task to path in the format implied by its
// extension.
func (s *LocalService) Export(ctx context.Context, path string) (int, error) {
	format, err := FormatFor(path)
	if err != nil {
		return 0, err
	}
	tasks, err := s.db.ListTasks(ctx, db.Filter{})
	if err != nil {
		return 0, err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("creating export directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating export file: %w", err)
	}
	if err := WriteTasks(f, format, tasks); err != nil {
		f.Close()
		os.Remove(path)
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("closing export file: %w", err)
	}

	s.log.Info("tasks exported", zap.String("path", path), zap.String("format", string(format)), zap.Int("count", len(tasks)))
	return len(tasks), nil
}

// Import appends the tasks in path. Nothing is written unless every row
// is valid.
func (s *LocalService) Import(ctx context.Context, path string) (int, error) {
	format, err := FormatFor(path)
	if err != nil {
		return 0, err
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	rows, err := ReadTasks(f, format)
	if err != nil {
		return 0, err
	}
	n, err := s.db.ImportTasks(ctx, rows)
	if err != nil {
		return 0, err
	}
	s.log.Info("tasks imported", zap.String("path", path), zap.Int("count", n))
	return n, nil
}
