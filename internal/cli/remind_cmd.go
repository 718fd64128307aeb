package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/markx3/todoboard/internal/db"
	"github.com/markx3/todoboard/internal/reminder"
)

var (
	upcomingDays int
	upcomingJSON bool

	remindDaily bool
	remindAt    string
)

var upcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "List pending tasks due soon",
	Args:  cobra.NoArgs,
	RunE:  runUpcoming,
}

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Print a reminder for upcoming tasks",
	Long: "Print pending tasks due within the reminder window. With --daily the command " +
		"keeps running and prints the reminder every day at --at (default: reminder.daily from config).",
	Args: cobra.NoArgs,
	RunE: runRemind,
}

func init() {
	upcomingCmd.Flags().IntVar(&upcomingDays, "days", -1, "window in days (0 for no limit, default from config)")
	upcomingCmd.Flags().BoolVar(&upcomingJSON, "json", false, "output as JSON")

	remindCmd.Flags().BoolVar(&remindDaily, "daily", false, "run until interrupted, reminding once a day")
	remindCmd.Flags().StringVar(&remindAt, "at", "", "time of day for --daily (HH:MM)")

	rootCmd.AddCommand(upcomingCmd, remindCmd)
}

type upcomingOutput struct {
	From  string    `json:"from"`
	Until string    `json:"until,omitempty"`
	Tasks []db.Task `json:"tasks"`
}

func runUpcoming(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.close()

	checker := ws.checker()
	if upcomingDays >= 0 {
		checker = reminder.NewChecker(ws.svc, upcomingDays)
	}
	res, err := checker.Check(context.Background(), time.Now())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if upcomingJSON {
		o := upcomingOutput{From: res.From.Format(db.DateLayout), Tasks: res.Tasks}
		if !res.Until.IsZero() {
			o.Until = res.Until.Format(db.DateLayout)
		}
		if o.Tasks == nil {
			o.Tasks = []db.Task{}
		}
		return json.NewEncoder(out).Encode(o)
	}
	fmt.Fprintln(out, res.Summary())
	return nil
}

func runRemind(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.close()

	out := cmd.OutOrStdout()
	checker := ws.checker()
	remind := func() {
		res, err := checker.Check(context.Background(), time.Now())
		if err != nil {
			ws.log.Error("reminder check failed", zap.Error(err))
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return
		}
		ws.log.Info("reminder sent", zap.Int("tasks", len(res.Tasks)))
		fmt.Fprintf(out, "[%s] %s\n", time.Now().Format("2006-01-02 15:04"), res.Summary())
	}

	if !remindDaily {
		remind()
		return nil
	}

	at := remindAt
	if at == "" {
		at = ws.cfg.ReminderDaily
	}

	sched := reminder.NewScheduler(time.Local, ws.log)
	id, err := sched.ScheduleDaily(at, remind)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sched.Start()
	defer sched.Stop()
	fmt.Fprintf(out, "Reminding daily at %s (next: %s). Press Ctrl+C to stop.\n",
		at, sched.Next(id).Format("2006-01-02 15:04"))

	<-ctx.Done()
	return nil
}
