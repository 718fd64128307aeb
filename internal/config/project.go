package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type ProjectConfig struct {
	Project  ProjectInfo    `toml:"project"`
	Storage  StorageConfig  `toml:"storage"`
	Reminder ReminderConfig `toml:"reminder"`
	Export   ExportConfig   `toml:"export"`
}

type ProjectInfo struct {
	Name string `toml:"name"`
}

type ExportConfig struct {
	Path string `toml:"path"`
}

func ProjectPath() string {
	return filepath.Join(Dir, "config.toml")
}

func LoadProject() (*ProjectConfig, error) {
	path := ProjectPath()
	cfg := defaultProject()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultProject() *ProjectConfig {
	return &ProjectConfig{
		Storage: StorageConfig{Path: filepath.Join(Dir, "todo.db")},
		Export:  ExportConfig{Path: "tasks.csv"},
	}
}

// WriteDefaultProject writes a starter project config. An existing file
// is left alone and reported through the bool.
func WriteDefaultProject(name string) (string, bool, error) {
	path := ProjectPath()
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}
	if err := os.MkdirAll(Dir, 0o755); err != nil {
		return "", false, err
	}

	cfg := defaultProject()
	cfg.Project.Name = name
	f, err := os.Create(path)
	if err != nil {
		return "", false, err
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return "", false, err
	}
	return path, true, nil
}
