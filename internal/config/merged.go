package config

import (
	"fmt"
	"path/filepath"
)

// Merged holds the final configuration with precedence:
// env > project > global > defaults.
type Merged struct {
	ProjectName     string
	DBPath          string
	ExportPath      string
	LogLevel        string
	LogFile         string
	WindowDays      int
	ReminderDaily   string
	RemindOnStartup bool
	ThemeBorder     string
	ThemeText       string
	ThemeAccent     string
}

func Load() (*Merged, error) {
	if err := LoadEnv(EnvPath()); err != nil {
		return nil, fmt.Errorf("loading %s: %w", EnvPath(), err)
	}

	global, err := LoadGlobal()
	if err != nil {
		return nil, err
	}

	project, err := LoadProject()
	if err != nil {
		return nil, err
	}

	dbPath := project.Storage.Path
	if global.Storage.Path != "" && dbPath == defaultProject().Storage.Path {
		dbPath = global.Storage.Path
	}

	window := global.Reminder.WindowDays
	if project.Reminder.WindowDays != 0 {
		window = project.Reminder.WindowDays
	}
	daily := global.Reminder.Daily
	if project.Reminder.Daily != "" {
		daily = project.Reminder.Daily
	}
	onStartup := true
	if global.Reminder.OnStartup != nil {
		onStartup = *global.Reminder.OnStartup
	}
	if project.Reminder.OnStartup != nil {
		onStartup = *project.Reminder.OnStartup
	}

	logFile := global.Log.File
	if logFile == "" {
		logFile = filepath.Join(Dir, "todoboard.log")
	}

	m := &Merged{
		ProjectName:     project.Project.Name,
		DBPath:          dbPath,
		ExportPath:      project.Export.Path,
		LogLevel:        global.Log.Level,
		LogFile:         logFile,
		WindowDays:      window,
		ReminderDaily:   daily,
		RemindOnStartup: onStartup,
		ThemeBorder:     global.Theme.Border,
		ThemeText:       global.Theme.Text,
		ThemeAccent:     global.Theme.Accent,
	}
	if err := applyEnv(m); err != nil {
		return nil, err
	}
	return m, nil
}
