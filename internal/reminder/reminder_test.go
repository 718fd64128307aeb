package reminder

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/markx3/todoboard/internal/db"
)

type fakeSource struct {
	tasks       []db.Task
	err         error
	from, until time.Time
}

func (f *fakeSource) UpcomingTasks(_ context.Context, from, until time.Time) ([]db.Task, error) {
	f.from, f.until = from, until
	return f.tasks, f.err
}

func TestCheckWindow(t *testing.T) {
	src := &fakeSource{tasks: []db.Task{
		{ID: 1, Task: "Dentist", DueDate: "2024-04-02", DueTime: "10:15", Priority: db.PriorityHigh},
		{ID: 2, Task: "Rent", DueDate: "2024-04-05", Priority: db.PriorityMedium},
	}}
	c := NewChecker(src, 7)
	now := time.Date(2024, 4, 1, 22, 10, 0, 0, time.UTC)

	res, err := c.Check(context.Background(), now)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if want := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC); !src.from.Equal(want) {
		t.Errorf("from: got %v, want %v", src.from, want)
	}
	if want := time.Date(2024, 4, 8, 0, 0, 0, 0, time.UTC); !src.until.Equal(want) {
		t.Errorf("until: got %v, want %v", src.until, want)
	}

	sum := res.Summary()
	if !strings.HasPrefix(sum, "2 upcoming tasks:") {
		t.Errorf("summary header: %q", sum)
	}
	if !strings.Contains(sum, "2024-04-02 10:15  Dentist (High)") {
		t.Errorf("summary line: %q", sum)
	}
}

func TestCheckOpenWindow(t *testing.T) {
	src := &fakeSource{}
	res, err := NewChecker(src, 0).Check(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !src.until.IsZero() {
		t.Errorf("until: got %v, want zero", src.until)
	}
	if !res.Empty() || res.Summary() != "No upcoming tasks." {
		t.Errorf("summary: %q", res.Summary())
	}
}

func TestCheckError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewChecker(&fakeSource{err: boom}, 1).Check(context.Background(), time.Now())
	if !errors.Is(err, boom) {
		t.Errorf("got %v, want wrapped boom", err)
	}
}

func TestBuildDailySpec(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"09:00", "0 0 9 * * *", false},
		{"23:59", "0 59 23 * * *", false},
		{"7:05", "0 5 7 * * *", false},
		{"24:00", "", true},
		{"12:60", "", true},
		{"noon", "", true},
		{"1:2:3", "", true},
	}
	for _, tt := range tests {
		got, err := buildDailySpec(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("%q: err %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSchedulerNext(t *testing.T) {
	s := NewScheduler(time.UTC, nil)
	id, err := s.ScheduleDaily("06:30", func() {})
	if err != nil {
		t.Fatalf("scheduling: %v", err)
	}
	s.Start()
	defer s.Stop()

	next := s.Next(id)
	if next.IsZero() {
		t.Fatal("next run not computed")
	}
	if next.Hour() != 6 || next.Minute() != 30 || next.Second() != 0 {
		t.Errorf("next: got %v", next)
	}

	if _, err := s.ScheduleDaily("late", func() {}); err == nil {
		t.Error("expected error for bad time")
	}
}
