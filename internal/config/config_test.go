package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/markx3/todoboard/internal/config"
)

// isolate points HOME and the working directory at fresh temp dirs and
// clears the override variables.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{config.EnvDB, config.EnvLogLevel, config.EnvExport, config.EnvWindow} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	dir := t.TempDir()
	oldDir, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(oldDir) })
	return dir
}

func TestLoadGlobalDefaults(t *testing.T) {
	isolate(t)
	cfg, err := config.LoadGlobal()
	if err != nil {
		t.Fatalf("loading global config: %v", err)
	}

	if cfg.Reminder.WindowDays != 7 {
		t.Errorf("window: got %d, want 7", cfg.Reminder.WindowDays)
	}
	if cfg.Theme.Border != "#4a9a8a" {
		t.Errorf("border color: got %q, want %q", cfg.Theme.Border, "#4a9a8a")
	}
}

func TestLoadProjectDefaults(t *testing.T) {
	isolate(t)
	cfg, err := config.LoadProject()
	if err != nil {
		t.Fatalf("loading project config: %v", err)
	}

	want := filepath.Join(".todoboard", "todo.db")
	if cfg.Storage.Path != want {
		t.Errorf("db path: got %q, want %q", cfg.Storage.Path, want)
	}
}

func TestMergedConfig(t *testing.T) {
	isolate(t)

	home := os.Getenv("HOME")
	os.MkdirAll(filepath.Join(home, ".todoboard"), 0o755)
	os.WriteFile(filepath.Join(home, ".todoboard", "config.toml"), []byte(`
[reminder]
window_days = 3
daily = "07:30"

[log]
level = "debug"
`), 0o644)

	os.MkdirAll(".todoboard", 0o755)
	os.WriteFile(filepath.Join(".todoboard", "config.toml"), []byte(`
[project]
name = "groceries"

[storage]
path = "data/tasks.db"

[reminder]
daily = "18:00"
on_startup = false
`), 0o644)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("loading merged config: %v", err)
	}

	if cfg.ProjectName != "groceries" {
		t.Errorf("project name: got %q", cfg.ProjectName)
	}
	if cfg.DBPath != "data/tasks.db" {
		t.Errorf("db path: got %q", cfg.DBPath)
	}
	if cfg.WindowDays != 3 {
		t.Errorf("window: got %d, want 3 from global", cfg.WindowDays)
	}
	if cfg.ReminderDaily != "18:00" {
		t.Errorf("daily: got %q, want project value", cfg.ReminderDaily)
	}
	if cfg.RemindOnStartup {
		t.Error("on_startup=false was not applied")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level: got %q", cfg.LogLevel)
	}
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	os.MkdirAll(".todoboard", 0o755)
	os.WriteFile(filepath.Join(".todoboard", ".env"), []byte(
		"TODOBOARD_DB=from-dotenv.db\nTODOBOARD_EXPORT=out.json\n"), 0o644)
	t.Setenv(config.EnvLogLevel, "warn")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	if cfg.DBPath != "from-dotenv.db" {
		t.Errorf("db path: got %q", cfg.DBPath)
	}
	if cfg.ExportPath != "out.json" {
		t.Errorf("export path: got %q", cfg.ExportPath)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("log level: got %q", cfg.LogLevel)
	}
}

func TestEnvOverridesInvalidWindow(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvWindow, "soon")
	if _, err := config.Load(); err == nil {
		t.Error("expected error for non-numeric window")
	}
}

func TestWriteDefaultProject(t *testing.T) {
	isolate(t)

	path, created, err := config.WriteDefaultProject("demo")
	if err != nil {
		t.Fatalf("writing: %v", err)
	}
	if !created {
		t.Fatal("expected file to be created")
	}
	cfg, err := config.LoadProject()
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if cfg.Project.Name != "demo" {
		t.Errorf("name: got %q", cfg.Project.Name)
	}

	_, created, _ = config.WriteDefaultProject("other")
	if created {
		t.Errorf("%s overwritten", path)
	}
}
