package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const notificationTTL = 3 * time.Second

type notification struct {
	text    string
	isError bool
	expires time.Time
}

func scheduleNotificationClear(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearNotificationMsg{}
	})
}
