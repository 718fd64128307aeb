package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	boardpkg "github.com/markx3/todoboard/internal/board"
	"github.com/markx3/todoboard/internal/config"
	"github.com/markx3/todoboard/internal/db"
	"github.com/markx3/todoboard/internal/logging"
	"github.com/markx3/todoboard/internal/reminder"
	"github.com/markx3/todoboard/internal/tui"
)

// Version is set at build time via ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:          "todoboard",
	Short:        "Personal to-do manager",
	Long:         "A terminal to-do list with due dates, priorities, categories, reminders and CSV/JSON/PDF export.",
	Version:      Version,
	SilenceUsage: true,
	RunE:         runBoard,
}

func Execute() error {
	return rootCmd.Execute()
}

// workspace bundles what every command needs: the merged config, a logger
// and an open task service.
type workspace struct {
	cfg *config.Merged
	log *zap.Logger
	db  *db.DB
	svc boardpkg.Service
}

func openWorkspace() (*workspace, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	database, err := db.Open(cfg.DBPath, db.WithLogger(log))
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &workspace{
		cfg: cfg,
		log: log,
		db:  database,
		svc: boardpkg.NewLocalService(database, boardpkg.WithLogger(log)),
	}, nil
}

func (w *workspace) close() {
	if err := w.db.Close(); err != nil {
		w.log.Warn("closing database", zap.Error(err))
	}
	w.log.Sync()
}

func (w *workspace) checker() *reminder.Checker {
	return reminder.NewChecker(w.svc, w.cfg.WindowDays)
}

func runBoard(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.close()

	app := tui.NewApp(ws.svc,
		tui.WithExportPath(ws.cfg.ExportPath),
		tui.WithReminder(ws.checker(), ws.cfg.RemindOnStartup),
		tui.WithTheme(tui.Theme{
			Border: ws.cfg.ThemeBorder,
			Text:   ws.cfg.ThemeText,
			Accent: ws.cfg.ThemeAccent,
		}),
	)

	ws.log.Info("starting tui", zap.String("db", ws.cfg.DBPath))
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
