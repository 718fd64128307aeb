package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	EnvDB       = "TODOBOARD_DB"
	EnvLogLevel = "TODOBOARD_LOG_LEVEL"
	EnvExport   = "TODOBOARD_EXPORT"
	EnvWindow   = "TODOBOARD_WINDOW_DAYS"
)

// LoadEnv reads KEY=VALUE pairs from filename into the process
// environment. Variables already set win. A missing file is not an error.
func LoadEnv(filename string) error {
	if filename == "" {
		return nil
	}
	err := godotenv.Load(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func EnvPath() string {
	return filepath.Join(Dir, ".env")
}

func applyEnv(m *Merged) error {
	if v := os.Getenv(EnvDB); v != "" {
		m.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		m.LogLevel = v
	}
	if v := os.Getenv(EnvExport); v != "" {
		m.ExportPath = v
	}
	if v := os.Getenv(EnvWindow); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return &EnvError{Key: EnvWindow, Value: v, Err: err}
		}
		m.WindowDays = days
	}
	return nil
}

type EnvError struct {
	Key   string
	Value string
	Err   error
}

func (e *EnvError) Error() string {
	return "invalid " + e.Key + "=" + strconv.Quote(e.Value) + ": " + e.Err.Error()
}

func (e *EnvError) Unwrap() error { return e.Err }
