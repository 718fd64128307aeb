package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Dir is the directory name used both under $HOME and in the project.
const Dir = ".todoboard"

type GlobalConfig struct {
	Storage  StorageConfig  `toml:"storage"`
	Reminder ReminderConfig `toml:"reminder"`
	Log      LogConfig      `toml:"log"`
	Theme    ThemeConfig    `toml:"theme"`
}

type StorageConfig struct {
	Path string `toml:"path"`
}

type ReminderConfig struct {
	// WindowDays bounds the upcoming check. Zero means no upper bound.
	WindowDays int `toml:"window_days"`
	// Daily is the HH:MM at which `remind --daily` fires.
	Daily string `toml:"daily"`
	// OnStartup runs the upcoming check when the TUI opens.
	OnStartup *bool `toml:"on_startup"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type ThemeConfig struct {
	Border string `toml:"border"`
	Text   string `toml:"text"`
	Accent string `toml:"accent"`
}

func GlobalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, Dir, "config.toml"), nil
}

func LoadGlobal() (*GlobalConfig, error) {
	path, err := GlobalPath()
	if err != nil {
		return defaultGlobal(), nil
	}

	cfg := defaultGlobal()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultGlobal() *GlobalConfig {
	return &GlobalConfig{
		Reminder: ReminderConfig{WindowDays: 7, Daily: "09:00"},
		Log:      LogConfig{Level: "info"},
		Theme: ThemeConfig{
			Border: "#4a9a8a",
			Text:   "#d4d4d4",
			Accent: "#e6b450",
		},
	}
}
