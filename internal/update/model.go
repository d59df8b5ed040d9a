package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/rohanmehra/habitd/internal/agenda"
	"github.com/rohanmehra/habitd/internal/model"
	"github.com/rohanmehra/habitd/internal/scheduler"
	"github.com/rohanmehra/habitd/internal/storage"
)

type View string

const (
	ViewToday   View = "Today"
	ViewHistory View = "History"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Today   string
	History string
	Help    string
	Quit    string
}

type TodayState struct {
	Items  []model.Task
	Cursor int
}

type HistoryState struct {
	History agenda.History
	Cursor  int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type Model struct {
	CurrentView    View
	Tasks          []model.Task
	Today          TodayState
	History        HistoryState
	Issues         []agenda.Issue
	ShowCompleted  bool
	SelectedTaskID string
	WindowDays     int
	Scheduler      *scheduler.Engine
	TriggerLog     []scheduler.TriggerEvent
	Notifications  []Notification
	Palette        CommandPaletteState
	HelpVisible    bool
	DesktopEnabled bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	repo     storage.Repository
	notifier DesktopNotifier
	clock func() time.Time

	commandInput  textinput.Model
	reloadSpinner spinner.Model
	spinnerActive bool
	helpModel     help.Model
}

type TickMsg struct{}

type SetTasksMsg struct {
	Tasks []model.Task
}

type TaskSavedMsg struct {
	Task model.Task
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type AppErrorMsg struct {
	Err error
}

type TriggerDueMsg struct {
	Event scheduler.TriggerEvent
}

type ReloadDoneMsg struct {
	Tasks []model.Task
	Err   error
}

func NewModel() Model {
	m := Model{
		CurrentView:   ViewToday,
		WindowDays:    14,
		ShowCompleted: false,
		notifier:      NoopDesktopNotifier{},
		clock:         time.Now,
		Keys: GlobalKeyMap{
			Today:   "1",
			History: "2",
			Help:    "?",
			Quit:    "q",
		},
	}
	m.commandInput = textinput.New()
	m.commandInput.Placeholder = "add water the plants at:09:00 every:daily"
	m.commandInput.CharLimit = 120

	m.reloadSpinner = spinner.New()
	m.reloadSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()

	m.recompute()
	return m
}

func NewModelWithConfig(engine *scheduler.Engine, repo storage.Repository, notifier DesktopNotifier, cfg RuntimeConfig) Model {
	m := NewModel()
	m.Scheduler = engine
	m.repo = repo
	m.DesktopEnabled = cfg.DesktopNotifications
	m.ShowCompleted = cfg.ShowCompleted
	if cfg.HistoryWindowDays > 0 {
		m.WindowDays = cfg.HistoryWindowDays
	}
	if notifier != nil {
		m.notifier = notifier
	}
	m.recompute()
	return m
}

func (m Model) WithTasks(tasks []model.Task) Model {
	m.Tasks = tasks
	m.recompute()
	m.scheduleAllTasks()
	return m
}

func (m *Model) recompute() {
	now := m.clock()
	items, issues := agenda.SelectForToday(m.Tasks, now, m.ShowCompleted)
	history, historyIssues := agenda.ComputeHistory(m.Tasks, m.WindowDays, now)

	m.Today.Items = items
	m.Issues = append(issues, dedupeIssues(issues, historyIssues)...)
	m.History.History = history
	if m.Today.Cursor >= len(items) {
		m.Today.Cursor = len(items) - 1
	}
	if m.Today.Cursor < 0 {
		m.Today.Cursor = 0
	}
	if m.History.Cursor >= len(history.Days) {
		m.History.Cursor = len(history.Days) - 1
	}
	if m.History.Cursor < 0 {
		m.History.Cursor = 0
	}
	m.syncSelectedTask()
}

func dedupeIssues(seen []agenda.Issue, extra []agenda.Issue) []agenda.Issue {
	known := make(map[string]bool, len(seen))
	for _, issue := range seen {
		known[issue.TaskID] = true
	}
	out := make([]agenda.Issue, 0, len(extra))
	for _, issue := range extra {
		if !known[issue.TaskID] {
			out = append(out, issue)
		}
	}
	return out
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{Title: title, Body: body, Level: level, At: m.clock()}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled {
		_ = m.notifier.Send(n)
	}
}
