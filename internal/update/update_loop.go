package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rohanmehra/habitd/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if m.Scheduler != nil {
		cmds = append(cmds, waitForTriggerCmd(m.Scheduler.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			next, cmd := m.handlePaletteKey(typed)
			return next, cmd
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Today:
			m.CurrentView = ViewToday
			return m, nil
		case m.Keys.History:
			m.CurrentView = ViewHistory
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "R":
			if !m.spinnerActive && m.repo != nil {
				m.spinnerActive = true
				m.Status = StatusBar{Text: "reloading"}
				return m, tea.Batch(m.reloadSpinner.Tick, loadTasksCmd(m.repo))
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			if m.Scheduler != nil {
				m.Scheduler.Stop()
			}
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewToday:
			return m.handleTodayKey(typed)
		case ViewHistory:
			return m.handleHistoryKey(typed), nil
		}
	case spinner.TickMsg:
		if m.spinnerActive {
			var cmd tea.Cmd
			m.reloadSpinner, cmd = m.reloadSpinner.Update(typed)
			return m, cmd
		}
		return m, nil
	case TickMsg:
		m.recompute()
		return m, tickCmd()
	case SetTasksMsg:
		m.Tasks = typed.Tasks
		m.recompute()
		return m, nil
	case TaskSavedMsg:
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case TriggerDueMsg:
		m.TriggerLog = append(m.TriggerLog, typed.Event)
		if len(m.TriggerLog) > 20 {
			m.TriggerLog = m.TriggerLog[len(m.TriggerLog)-20:]
		}
		m.Status = StatusBar{Text: fmt.Sprintf("due: %s (%s)", typed.Event.Title, typed.Event.Day)}
		m.notify("Due", m.Status.Text, "info")
		if m.Scheduler != nil {
			return m, waitForTriggerCmd(m.Scheduler.C())
		}
		return m, nil
	case ReloadDoneMsg:
		m.spinnerActive = false
		if typed.Err != nil {
			m.LastError = typed.Err
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			return m, nil
		}
		m.Tasks = typed.Tasks
		m.recompute()
		m.Status = StatusBar{Text: fmt.Sprintf("loaded %d task(s)", len(typed.Tasks))}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = "status: error: " + m.Status.Text
		} else {
			status = "status: " + m.Status.Text
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewToday:
		leftPane = m.renderTodayView()
		rightPane = m.renderMetadataPane() + m.renderHelpIfVisible()
	case ViewHistory:
		leftPane = m.renderHistoryView()
		rightPane = m.renderHelpIfVisible()
	}

	notification := m.renderTriggerLog()
	if m.spinnerActive {
		notification = strings.TrimSpace(notification + "\nreload: " + m.reloadSpinner.View())
	}
	notification = strings.TrimSpace(notification + "\n" + strings.TrimSpace(m.renderNotificationsView()))
	if palette := m.renderCommandPalette(); palette != "" {
		notification = strings.TrimSpace(notification + "\n" + palette)
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("habitd | view: %s | selected: %s", m.CurrentView, m.SelectedTaskID),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: notification,
		Footer:       fmt.Sprintf("keys: %s today | %s history | / cmd | R reload | %s help | %s quit", m.Keys.Today, m.Keys.History, m.Keys.Help, m.Keys.Quit),
	})
}
