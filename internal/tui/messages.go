package tui

import (
	"github.com/markx3/todoboard/internal/db"
	"github.com/markx3/todoboard/internal/reminder"
)

type tasksLoadedMsg struct {
	tasks []db.Task
}

type taskCreatedMsg struct {
	task *db.Task
}

// taskChangedMsg follows any mutation other than create. text is shown
// once the list has been reloaded.
type taskChangedMsg struct {
	text string
}

type upcomingMsg struct {
	result  reminder.Result
	startup bool
}

type errMsg struct {
	err error
}

func (e errMsg) Error() string { return e.err.Error() }

type notifyMsg struct {
	text string
}

type clearNotificationMsg struct{}
