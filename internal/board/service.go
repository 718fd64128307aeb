package board

import (
	"context"
	"time"

	"github.com/markx3/todoboard/internal/db"
)

// Service defines all task operations.
type Service interface {
	ListTasks(ctx context.Context, f db.Filter) ([]db.Task, error)
	GetTask(ctx context.Context, id int64) (*db.Task, error)
	CreateTask(ctx context.Context, n db.NewTask) (*db.Task, error)
	UpdateTaskFields(ctx context.Context, id int64, fields db.TaskFieldUpdate) error
	CompleteTask(ctx context.Context, id int64) error
	DeleteTask(ctx context.Context, id int64) error
	DeleteAllTasks(ctx context.Context) error

	// UpcomingTasks returns pending tasks due in [from, until]. A zero
	// until leaves the window open.
	UpcomingTasks(ctx context.Context, from, until time.Time) ([]db.Task, error)
	Stats(ctx context.Context) (db.Stats, error)

	// Transfer
	Export(ctx context.Context, path string) (int, error)
	Import(ctx context.Context, path string) (int, error)
}
