package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	boardpkg "github.com/markx3/todoboard/internal/board"
	"github.com/markx3/todoboard/internal/db"
)

var (
	taskFilterPriority string
	taskFilterCategory string
	taskFilterStatus   string
	taskFilterSearch   string
	taskSortColumn     string
	taskSortDesc       bool
	taskOutputJSON     bool
	taskAssumeYes      bool
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks from the command line",
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	RunE:  runTaskList,
}

var taskAddCmd = &cobra.Command{
	Use:   "add <task>",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskAdd,
}

var taskGetCmd = &cobra.Command{
	Use:   "get <task-id>",
	Short: "Show task details",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskGet,
}

var taskCompleteCmd = &cobra.Command{
	Use:   "complete <task-id>",
	Short: "Mark a task complete",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskComplete,
}

var taskEditCmd = &cobra.Command{
	Use:   "edit <task-id>",
	Short: "Update task fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskEdit,
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <task-id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDelete,
}

var taskClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every task and restart ids at 1",
	Args:  cobra.NoArgs,
	RunE:  runTaskClear,
}

// task add / edit flags
var (
	fieldDueDate    string
	fieldDueTime    string
	fieldPriority   string
	fieldCategory   string
	fieldRecurrence string
	fieldNotes      string
	fieldTask       string
	addCompleted    bool
)

func init() {
	taskCmd.PersistentFlags().BoolVar(&taskOutputJSON, "json", false, "output as JSON")

	taskListCmd.Flags().StringVar(&taskFilterPriority, "priority", "", "filter by priority (Low, Medium, High)")
	taskListCmd.Flags().StringVar(&taskFilterCategory, "category", "", "filter by category (Work, Personal, Shopping, Other)")
	taskListCmd.Flags().StringVar(&taskFilterStatus, "status", "", "filter by status (Pending, Complete)")
	taskListCmd.Flags().StringVar(&taskFilterSearch, "search", "", "filter by task text substring (case-sensitive)")
	taskListCmd.Flags().StringVar(&taskSortColumn, "sort", "", "sort by column (id, task, date, time, priority, category, status, recurrence)")
	taskListCmd.Flags().BoolVar(&taskSortDesc, "desc", false, "sort descending")

	for _, c := range []*cobra.Command{taskAddCmd, taskEditCmd} {
		c.Flags().StringVar(&fieldDueDate, "due", "", "due date (YYYY-MM-DD)")
		c.Flags().StringVar(&fieldDueTime, "time", "", "due time (HH:MM)")
		c.Flags().StringVar(&fieldPriority, "priority", "", "priority (Low, Medium, High)")
		c.Flags().StringVar(&fieldCategory, "category", "", "category (Work, Personal, Shopping, Other)")
		c.Flags().StringVar(&fieldRecurrence, "recurrence", "", "recurrence (None, Daily, Weekly, Monthly)")
		c.Flags().StringVar(&fieldNotes, "notes", "", "free-form notes")
	}
	taskAddCmd.Flags().BoolVar(&addCompleted, "done", false, "add the task already completed")
	taskEditCmd.Flags().StringVar(&fieldTask, "task", "", "new task text")

	for _, c := range []*cobra.Command{taskDeleteCmd, taskClearCmd} {
		c.Flags().BoolVarP(&taskAssumeYes, "yes", "y", false, "do not ask for confirmation")
	}

	taskCmd.AddCommand(
		taskListCmd, taskAddCmd, taskGetCmd, taskCompleteCmd,
		taskEditCmd, taskDeleteCmd, taskClearCmd,
	)
	rootCmd.AddCommand(taskCmd)
}

func runTaskList(cmd *cobra.Command, args []string) error {
	filter, err := listFilter()
	if err != nil {
		return err
	}
	var col boardpkg.Column
	if taskSortColumn != "" {
		if col, err = boardpkg.ParseColumn(taskSortColumn); err != nil {
			return err
		}
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.close()

	tasks, err := ws.svc.ListTasks(context.Background(), filter)
	if err != nil {
		return err
	}
	if col != "" {
		if err := boardpkg.SortTasks(tasks, col, taskSortDesc); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if taskOutputJSON {
		if tasks == nil {
			tasks = []db.Task{}
		}
		return json.NewEncoder(out).Encode(tasks)
	}
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks found")
		return nil
	}
	return printTaskTable(out, tasks)
}

func listFilter() (db.Filter, error) {
	var (
		f   db.Filter
		err error
	)
	if f.Priority, err = canonical("priority", taskFilterPriority, withAll(db.Priorities)); err != nil {
		return f, err
	}
	if f.Category, err = canonical("category", taskFilterCategory, withAll(db.Categories)); err != nil {
		return f, err
	}
	if f.Status, err = canonical("status", taskFilterStatus, []string{db.FilterAll, db.StatusPending, db.StatusComplete}); err != nil {
		return f, err
	}
	f.Search = taskFilterSearch
	return f, nil
}

func printTaskTable(out io.Writer, tasks []db.Task) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTASK\tDUE\tTIME\tPRIORITY\tCATEGORY\tSTATUS\tREPEAT")
	for _, t := range tasks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Task, orDash(t.DueDate), orDash(t.DueTime),
			t.Priority, t.Category, t.StatusLabel(), t.Recurrence)
	}
	return w.Flush()
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	n := db.NewTask{
		Task:      strings.Join(args, " "),
		DueDate:   fieldDueDate,
		DueTime:   fieldDueTime,
		Notes:     fieldNotes,
		Completed: addCompleted,
	}
	if err := enumFlags(&n.Priority, &n.Category, &n.Recurrence); err != nil {
		return err
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.close()

	task, err := ws.svc.CreateTask(context.Background(), n)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if taskOutputJSON {
		return json.NewEncoder(out).Encode(task)
	}
	fmt.Fprintf(out, "Added task %d: %s\n", task.ID, task.Task)
	return nil
}

func runTaskGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.close()

	task, err := ws.svc.GetTask(context.Background(), id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if taskOutputJSON {
		return json.NewEncoder(out).Encode(task)
	}
	fmt.Fprintf(out, "ID:         %d\n", task.ID)
	fmt.Fprintf(out, "Task:       %s\n", task.Task)
	fmt.Fprintf(out, "Status:     %s\n", task.StatusLabel())
	fmt.Fprintf(out, "Due:        %s %s\n", orDash(task.DueDate), task.DueTime)
	fmt.Fprintf(out, "Priority:   %s\n", task.Priority)
	fmt.Fprintf(out, "Category:   %s\n", task.Category)
	fmt.Fprintf(out, "Recurrence: %s\n", task.Recurrence)
	if task.Notes != "" {
		fmt.Fprintf(out, "Notes:\n%s\n", task.Notes)
	}
	return nil
}

func runTaskComplete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.close()

	ctx := context.Background()
	if err := ws.svc.CompleteTask(ctx, id); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if taskOutputJSON {
		task, err := ws.svc.GetTask(ctx, id)
		if err != nil {
			return err
		}
		return json.NewEncoder(out).Encode(task)
	}
	fmt.Fprintf(out, "Completed task %d\n", id)
	return nil
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var (
		u          db.TaskFieldUpdate
		priority   db.Priority
		category   db.Category
		recurrence db.Recurrence
	)
	if err := enumFlags(&priority, &category, &recurrence); err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("task") {
		u.Task = &fieldTask
	}
	if flags.Changed("due") {
		u.DueDate = &fieldDueDate
	}
	if flags.Changed("time") {
		u.DueTime = &fieldDueTime
	}
	if flags.Changed("priority") {
		u.Priority = &priority
	}
	if flags.Changed("category") {
		u.Category = &category
	}
	if flags.Changed("recurrence") {
		u.Recurrence = &recurrence
	}
	if flags.Changed("notes") {
		u.Notes = &fieldNotes
	}
	if u.Empty() {
		return fmt.Errorf("nothing to update: pass at least one field flag")
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.close()

	ctx := context.Background()
	if err := ws.svc.UpdateTaskFields(ctx, id, u); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if taskOutputJSON {
		task, err := ws.svc.GetTask(ctx, id)
		if err != nil {
			return err
		}
		return json.NewEncoder(out).Encode(task)
	}
	fmt.Fprintf(out, "Updated task %d\n", id)
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.close()

	ctx := context.Background()
	task, err := ws.svc.GetTask(ctx, id)
	if err != nil {
		return err
	}

	ok, err := confirm(cmd, fmt.Sprintf("Delete task %d %q?", task.ID, task.Task))
	if err != nil || !ok {
		return err
	}
	if err := ws.svc.DeleteTask(ctx, id); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if taskOutputJSON {
		return json.NewEncoder(out).Encode(map[string]int64{"deleted": id})
	}
	fmt.Fprintf(out, "Deleted task %d\n", id)
	return nil
}

func runTaskClear(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.close()

	ok, err := confirm(cmd, "Delete ALL tasks?")
	if err != nil || !ok {
		return err
	}
	if err := ws.svc.DeleteAllTasks(context.Background()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "All tasks cleared")
	return nil
}

// confirm asks on the command's input unless --yes was given. Anything
// other than y or yes declines.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	if taskAssumeYes {
		return true, nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
	return false, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}

// enumFlags resolves the priority, category and recurrence flags to
// their canonical spelling. Unset flags stay empty so the store applies
// its defaults.
func enumFlags(p *db.Priority, c *db.Category, r *db.Recurrence) error {
	v, err := canonical("priority", fieldPriority, names(db.Priorities))
	if err != nil {
		return err
	}
	*p = db.Priority(v)

	if v, err = canonical("category", fieldCategory, names(db.Categories)); err != nil {
		return err
	}
	*c = db.Category(v)

	if v, err = canonical("recurrence", fieldRecurrence, names(db.Recurrences)); err != nil {
		return err
	}
	*r = db.Recurrence(v)
	return nil
}

// canonical matches v case-insensitively against options.
func canonical(name, v string, options []string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	for _, o := range options {
		if strings.EqualFold(o, v) {
			return o, nil
		}
	}
	return "", fmt.Errorf("invalid %s %q (use: %s)", name, v, strings.Join(options, ", "))
}

func names[T ~string](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}

func withAll[T ~string](vs []T) []string {
	return append([]string{db.FilterAll}, names(vs)...)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
