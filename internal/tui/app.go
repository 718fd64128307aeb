package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/markx3/todoboard/internal/board"
	"github.com/markx3/todoboard/internal/db"
	"github.com/markx3/todoboard/internal/reminder"
)

type screen int

const (
	screenInput screen = iota
	screenList
)

type overlayType int

const (
	overlayNone overlayType = iota
	overlayDetail
	overlayEdit
	overlayHelp
	overlayConfirm
	overlaySearch
	overlayPath
	overlayUpcoming
)

type confirmAction int

const (
	confirmDelete confirmAction = iota
	confirmClearAll
)

type pathAction int

const (
	pathExport pathAction = iota
	pathImport
)

var (
	statusOptions = []string{db.FilterAll, db.StatusPending, db.StatusComplete}

	priorityOptions = append([]string{db.FilterAll}, enumStrings(db.Priorities)...)
	categoryOptions = append([]string{db.FilterAll}, enumStrings(db.Categories)...)
)

type App struct {
	service  board.Service
	checker  *reminder.Checker
	screen   screen
	overlay  overlayType
	form     taskForm
	editForm taskForm
	detail   taskDetail
	editID   int64
	table    taskTable
	filter   db.Filter
	sorter   board.Sorter

	search    textinput.Model
	pathInput textinput.Model
	pathMode  pathAction

	confirm     confirmAction
	confirmTask *db.Task
	upcoming    reminder.Result

	exportPath     string
	checkOnStartup bool
	now            func() time.Time

	notification *notification
	width        int
	height       int
	ready        bool
}

// AppOption configures optional App behavior.
type AppOption func(*App)

// WithExportPath sets the path offered by the export prompt.
func WithExportPath(path string) AppOption {
	return func(a *App) {
		if path != "" {
			a.exportPath = path
		}
	}
}

// WithReminder replaces the upcoming-task checker. onStartup runs it once
// when the program starts.
func WithReminder(c *reminder.Checker, onStartup bool) AppOption {
	return func(a *App) {
		if c != nil {
			a.checker = c
		}
		a.checkOnStartup = onStartup
	}
}

// WithTheme restyles the UI.
func WithTheme(t Theme) AppOption {
	return func(a *App) {
		applyTheme(t)
		a.table.model.SetStyles(tableStyles())
	}
}

func WithClock(now func() time.Time) AppOption {
	return func(a *App) {
		if now != nil {
			a.now = now
		}
	}
}

func NewApp(svc board.Service, opts ...AppOption) App {
	search := textinput.New()
	search.Placeholder = "text contained in task (case-sensitive)"
	search.CharLimit = 200

	path := textinput.New()
	path.CharLimit = 500

	a := App{
		service:    svc,
		checker:    reminder.NewChecker(svc, 0),
		form:       newTaskForm("New Task"),
		editForm:   newTaskForm("Edit Task"),
		table:      newTaskTable(),
		search:     search,
		pathInput:  path,
		exportPath: "tasks.csv",
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.loadTasks(), textinput.Blink}
	if a.checkOnStartup {
		cmds = append(cmds, a.checkUpcoming(true))
	}
	return tea.Batch(cmds...)
}

func (a App) loadTasks() tea.Cmd {
	f := a.filter
	return func() tea.Msg {
		tasks, err := a.service.ListTasks(context.Background(), f)
		if err != nil {
			return errMsg{err}
		}
		return tasksLoadedMsg{tasks: tasks}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.form.SetSize(msg.Width, msg.Height)
		a.editForm.SetSize(msg.Width, msg.Height)
		a.detail.SetSize(msg.Width, msg.Height)
		a.table.SetSize(msg.Width, msg.Height)
		a.refreshTable()
		a.ready = true
		return a, nil

	case tasksLoadedMsg:
		a.table.tasks = msg.tasks
		if err := a.sorter.Apply(msg.tasks); err != nil {
			a.sorter.Reset()
			a.refreshTable()
			return a, func() tea.Msg { return errMsg{err} }
		}
		a.refreshTable()
		return a, nil

	case taskCreatedMsg:
		a.form.Reset()
		text := fmt.Sprintf("Added: %s", msg.task.Task)
		if !a.filter.Matches(*msg.task) {
			text += " (hidden by filter)"
		}
		return a, tea.Batch(
			a.loadTasks(),
			a.notify(text),
		)

	case taskChangedMsg:
		return a, tea.Batch(
			a.loadTasks(),
			a.notify(msg.text),
		)

	case upcomingMsg:
		if msg.startup && msg.result.Empty() {
			return a, nil
		}
		a.upcoming = msg.result
		a.overlay = overlayUpcoming
		return a, nil

	case errMsg:
		a.notification = &notification{
			text:    fmt.Sprintf("Error: %s", msg.err),
			isError: true,
			expires: time.Now().Add(notificationTTL),
		}
		return a, scheduleNotificationClear(notificationTTL)

	case notifyMsg:
		a.notification = &notification{
			text:    msg.text,
			expires: time.Now().Add(notificationTTL),
		}
		return a, scheduleNotificationClear(notificationTTL)

	case clearNotificationMsg:
		if a.notification != nil && time.Now().After(a.notification.expires) {
			a.notification = nil
		}
		return a, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keys.ForceQuit) {
		return a, tea.Quit
	}

	// Route to overlay if active
	if a.overlay != overlayNone {
		return a.updateOverlay(msg)
	}

	if a.screen == screenInput {
		return a.updateInput(msg)
	}
	return a.updateList(msg)
}

func (a *App) refreshTable() {
	col, desc := a.sorter.Active()
	a.table.SetTasks(a.table.tasks, col, desc)
}

func (a App) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.ViewAll):
			a.screen = screenList
			return a, a.loadTasks()
		case key.Matches(msg, keys.Save):
			return a, a.submitNew()
		case key.Matches(msg, keys.Enter):
			if a.form.onLastField() {
				return a, a.submitNew()
			}
			return a, a.form.advance()
		}
	}

	var cmd tea.Cmd
	a.form, cmd = a.form.Update(msg)
	return a, cmd
}

func (a App) submitNew() tea.Cmd {
	if p := a.form.problem(); p != "" {
		return a.notify(p)
	}
	return a.createTask(a.form.Value())
}

func (a App) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		a.table, cmd = a.table.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(keyMsg, keys.Quit):
		return a, tea.Quit

	case key.Matches(keyMsg, keys.Back):
		a.screen = screenInput
		return a, a.form.setFocus(a.form.focus)

	case key.Matches(keyMsg, keys.Enter):
		task := a.table.Selected()
		if task == nil {
			return a, a.notify("No task selected")
		}
		a.detail = newTaskDetail(*task)
		a.detail.SetSize(a.width, a.height)
		a.overlay = overlayDetail
		return a, nil

	case key.Matches(keyMsg, keys.Complete):
		task := a.table.Selected()
		if task == nil {
			return a, a.notify("No task selected")
		}
		return a, a.completeTask(*task)

	case key.Matches(keyMsg, keys.Delete):
		task := a.table.Selected()
		if task == nil {
			return a, a.notify("No task selected")
		}
		a.confirm = confirmDelete
		a.confirmTask = task
		a.overlay = overlayConfirm
		return a, nil

	case key.Matches(keyMsg, keys.ClearAll):
		a.confirm = confirmClearAll
		a.confirmTask = nil
		a.overlay = overlayConfirm
		return a, nil

	case key.Matches(keyMsg, keys.Edit):
		task := a.table.Selected()
		if task == nil {
			return a, a.notify("No task selected")
		}
		a.editID = task.ID
		a.editForm.Fill(*task)
		a.overlay = overlayEdit
		return a, a.editForm.setFocus(fieldTask)

	case key.Matches(keyMsg, keys.FilterPriority):
		a.filter.Priority = cycle(priorityOptions, a.filter.Priority)
		return a, a.loadTasks()

	case key.Matches(keyMsg, keys.FilterCategory):
		a.filter.Category = cycle(categoryOptions, a.filter.Category)
		return a, a.loadTasks()

	case key.Matches(keyMsg, keys.FilterStatus):
		a.filter.Status = cycle(statusOptions, a.filter.Status)
		return a, a.loadTasks()

	case key.Matches(keyMsg, keys.Search):
		a.search.SetValue(a.filter.Search)
		a.search.CursorEnd()
		a.overlay = overlaySearch
		return a, a.search.Focus()

	case key.Matches(keyMsg, keys.ResetFilters):
		a.filter = db.Filter{}
		return a, tea.Batch(a.loadTasks(), a.notify("Filters cleared"))

	case key.Matches(keyMsg, keys.Sort):
		col := board.Columns[int(keyMsg.Runes[0]-'1')]
		if err := a.sorter.Toggle(a.table.tasks, col); err != nil {
			return a, a.notify(err.Error())
		}
		a.refreshTable()
		return a, nil

	case key.Matches(keyMsg, keys.Export):
		return a, a.openPathPrompt(pathExport, a.exportPath)

	case key.Matches(keyMsg, keys.Import):
		return a, a.openPathPrompt(pathImport, "")

	case key.Matches(keyMsg, keys.Upcoming):
		return a, a.checkUpcoming(false)

	case key.Matches(keyMsg, keys.Help):
		a.overlay = overlayHelp
		return a, nil
	}

	var cmd tea.Cmd
	a.table, cmd = a.table.Update(msg)
	return a, cmd
}

func (a *App) openPathPrompt(mode pathAction, value string) tea.Cmd {
	a.pathMode = mode
	a.pathInput.Placeholder = "path/to/tasks.csv"
	a.pathInput.SetValue(value)
	a.pathInput.CursorEnd()
	a.overlay = overlayPath
	return a.pathInput.Focus()
}

// cycle returns the option after current, wrapping around. An unknown
// current value restarts at the first option after All.
func cycle(options []string, current string) string {
	if current == "" {
		current = db.FilterAll
	}
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func (a App) updateOverlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Confirm overlay handles its own keys (including esc)
	if a.overlay == overlayConfirm {
		return a.updateConfirm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keys.Escape) {
		a.overlay = overlayNone
		a.search.Blur()
		a.pathInput.Blur()
		return a, nil
	}

	switch a.overlay {
	case overlayDetail:
		return a.updateDetail(msg)
	case overlayEdit:
		return a.updateEdit(msg)
	case overlaySearch:
		return a.updateSearch(msg)
	case overlayPath:
		return a.updatePath(msg)
	case overlayHelp, overlayUpcoming:
		if _, ok := msg.(tea.KeyMsg); ok {
			a.overlay = overlayNone
			return a, nil
		}
	}

	return a, nil
}

func (a App) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		a.overlay = overlayNone
		task := a.confirmTask
		a.confirmTask = nil
		if a.confirm == confirmClearAll {
			return a, a.clearAll()
		}
		if task != nil {
			return a, a.deleteTask(*task)
		}
		return a, nil
	case "n", "N", "esc":
		a.overlay = overlayNone
		a.confirmTask = nil
		return a, nil
	}

	return a, nil
}

func (a App) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	task := a.detail.task
	switch {
	case key.Matches(keyMsg, keys.Edit):
		a.editID = task.ID
		a.editForm.Fill(task)
		a.overlay = overlayEdit
		return a, a.editForm.setFocus(fieldTask)
	case key.Matches(keyMsg, keys.Complete):
		a.overlay = overlayNone
		return a, a.completeTask(task)
	case key.Matches(keyMsg, keys.Delete):
		a.confirm = confirmDelete
		a.confirmTask = &task
		a.overlay = overlayConfirm
		return a, nil
	}
	return a, nil
}

func (a App) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		submit := key.Matches(msg, keys.Save) ||
			(key.Matches(msg, keys.Enter) && a.editForm.onLastField())
		if submit {
			if p := a.editForm.problem(); p != "" {
				return a, a.notify(p)
			}
			a.overlay = overlayNone
			return a, a.updateTask(a.editID, a.editForm.FieldUpdate())
		}
		if key.Matches(msg, keys.Enter) {
			return a, a.editForm.advance()
		}
	}

	var cmd tea.Cmd
	a.editForm, cmd = a.editForm.Update(msg)
	return a, cmd
}

func (a App) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keys.Enter) {
		a.filter.Search = a.search.Value()
		a.search.Blur()
		a.overlay = overlayNone
		return a, a.loadTasks()
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	return a, cmd
}

func (a App) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keys.Enter) {
		path := strings.TrimSpace(a.pathInput.Value())
		if path == "" {
			return a, a.notify("Enter a file path")
		}
		a.pathInput.Blur()
		a.overlay = overlayNone
		if a.pathMode == pathImport {
			return a, a.importTasks(path)
		}
		a.exportPath = path
		return a, a.exportTasks(path)
	}

	var cmd tea.Cmd
	a.pathInput, cmd = a.pathInput.Update(msg)
	return a, cmd
}

func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var mainView string
	if a.screen == screenInput {
		mainView = a.inputView()
	} else {
		mainView = a.listView()
	}

	// Overlay rendering
	switch a.overlay {
	case overlayDetail:
		return a.renderOverlay(mainView, a.detail.View())
	case overlayEdit:
		return a.renderOverlay(mainView, a.editForm.View())
	case overlayHelp:
		return a.renderOverlay(mainView, a.helpView())
	case overlayConfirm:
		return a.renderOverlay(mainView, a.confirmView())
	case overlaySearch:
		return a.renderOverlay(mainView, a.promptView("Search", a.search.View()))
	case overlayPath:
		title := "Export to"
		if a.pathMode == pathImport {
			title = "Import from"
		}
		return a.renderOverlay(mainView, a.promptView(title, a.pathInput.View()))
	case overlayUpcoming:
		return a.renderOverlay(mainView, a.upcomingView())
	}
	return mainView
}

func (a App) inputView() string {
	header := headerStyle.Render("todoboard · add task")
	help := helpStyle.Render(" tab:next field  ←/→:option  enter:next/save  ctrl+s:save  ctrl+l:view all  ctrl+c:quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, a.form.View(), a.statusBar(""), help)
}

func (a App) listView() string {
	header := headerStyle.Render("todoboard · tasks")
	filters := filterStyle.Render(a.filterSummary())
	count := fmt.Sprintf("%d task(s)", len(a.table.tasks))
	if a.filter.Active() {
		count += " (filtered)"
	}
	help := helpStyle.Render(" enter:open  c:complete  e:edit  x:delete  D:clear all  p/g/s:filter  /:search  r:reset  1-8:sort  E/I:export/import  u:upcoming  ?:help  b:back  q:quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, filters, a.table.View(), a.statusBar(count), help)
}

func (a App) filterSummary() string {
	val := func(v string) string {
		if v == "" {
			return db.FilterAll
		}
		return v
	}
	search := "-"
	if a.filter.Search != "" {
		search = fmt.Sprintf("%q", a.filter.Search)
	}
	sort := "-"
	if col, desc := a.sorter.Active(); col != "" {
		dir := "asc"
		if desc {
			dir = "desc"
		}
		sort = fmt.Sprintf("%s %s", col, dir)
	}
	return fmt.Sprintf("Priority: %s  Category: %s  Status: %s  Search: %s  Sort: %s",
		val(a.filter.Priority), val(a.filter.Category), val(a.filter.Status), search, sort)
}

func (a App) statusBar(fallback string) string {
	if a.notification != nil {
		if a.notification.isError {
			return errorStyle.Padding(0, 1).Render(a.notification.text)
		}
		return notificationStyle.Render(a.notification.text)
	}
	return statusBarStyle.Render(fallback)
}

func (a App) renderOverlay(bg, overlay string) string {
	return lipgloss.Place(
		a.width, a.height,
		lipgloss.Center, lipgloss.Center,
		overlay,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("#333333")),
	)
}

func (a App) helpView() string {
	width := max(a.width*2/3, 60)
	content := renderMarkdown(helpMarkdown, width-6) + "\n\n" + helpStyle.Render("Press any key to close.")
	return overlayStyle.Width(width).Render(content)
}

func (a App) confirmView() string {
	var content string
	if a.confirm == confirmClearAll {
		content = "Delete ALL tasks?\n\nThis cannot be undone and restarts ids at 1."
	} else if a.confirmTask != nil {
		content = fmt.Sprintf("Delete task #%d?\n\n%s", a.confirmTask.ID, a.confirmTask.Task)
	}
	content += "\n\n  y - yes    n/esc - cancel"
	return overlayStyle.Width(48).Render(content)
}

func (a App) promptView(title, input string) string {
	content := strings.Join([]string{
		formTitleStyle.Render(title),
		"",
		input,
		"",
		helpStyle.Render("enter: confirm | esc: cancel"),
	}, "\n")
	return overlayStyle.Width(max(a.width/2, 40)).Render(content)
}

func (a App) upcomingView() string {
	content := formTitleStyle.Render("Upcoming Tasks") + "\n\n" +
		a.upcoming.Summary() + "\n\n" +
		helpStyle.Render("Press any key to close.")
	return overlayStyle.Width(max(a.width/2, 40)).Render(content)
}

// Command helpers

func (a App) notify(text string) tea.Cmd {
	return func() tea.Msg {
		return notifyMsg{text: text}
	}
}

func (a App) createTask(n db.NewTask) tea.Cmd {
	return func() tea.Msg {
		task, err := a.service.CreateTask(context.Background(), n)
		if err != nil {
			return errMsg{err}
		}
		return taskCreatedMsg{task: task}
	}
}

func (a App) completeTask(task db.Task) tea.Cmd {
	return func() tea.Msg {
		if err := a.service.CompleteTask(context.Background(), task.ID); err != nil {
			return errMsg{err}
		}
		return taskChangedMsg{text: fmt.Sprintf("Completed: %s", task.Task)}
	}
}

func (a App) deleteTask(task db.Task) tea.Cmd {
	return func() tea.Msg {
		if err := a.service.DeleteTask(context.Background(), task.ID); err != nil {
			return errMsg{err}
		}
		return taskChangedMsg{text: fmt.Sprintf("Deleted: %s", task.Task)}
	}
}

func (a App) clearAll() tea.Cmd {
	return func() tea.Msg {
		if err := a.service.DeleteAllTasks(context.Background()); err != nil {
			return errMsg{err}
		}
		return taskChangedMsg{text: "All tasks cleared"}
	}
}

func (a App) updateTask(id int64, fields db.TaskFieldUpdate) tea.Cmd {
	return func() tea.Msg {
		if err := a.service.UpdateTaskFields(context.Background(), id, fields); err != nil {
			return errMsg{err}
		}
		return taskChangedMsg{text: fmt.Sprintf("Updated task #%d", id)}
	}
}

func (a App) exportTasks(path string) tea.Cmd {
	return func() tea.Msg {
		n, err := a.service.Export(context.Background(), path)
		if err != nil {
			return errMsg{err}
		}
		return notifyMsg{text: fmt.Sprintf("Exported %d task(s) to %s", n, path)}
	}
}

func (a App) importTasks(path string) tea.Cmd {
	return func() tea.Msg {
		n, err := a.service.Import(context.Background(), path)
		if err != nil {
			return errMsg{err}
		}
		return taskChangedMsg{text: fmt.Sprintf("Imported %d task(s) from %s", n, path)}
	}
}

func (a App) checkUpcoming(startup bool) tea.Cmd {
	now := a.now()
	return func() tea.Msg {
		res, err := a.checker.Check(context.Background(), now)
		if err != nil {
			return errMsg{err}
		}
		return upcomingMsg{result: res, startup: startup}
	}
}
