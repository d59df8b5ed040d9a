package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rohanmehra/habitd/internal/dateutil"
	"github.com/rohanmehra/habitd/internal/model"
)

func (m Model) handleTodayKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.Today.Cursor > 0 {
			m.Today.Cursor--
		}
		m.syncSelectedTask()
	case "down", "j":
		if m.Today.Cursor < len(m.Today.Items)-1 {
			m.Today.Cursor++
		}
		m.syncSelectedTask()
	case "enter":
		return m.completeSelected(model.ScopeThis)
	case "a":
		return m.completeSelected(model.ScopeAll)
	case "c":
		m.ShowCompleted = !m.ShowCompleted
		m.recompute()
		if m.ShowCompleted {
			m.Status = StatusBar{Text: "showing completed items"}
		} else {
			m.Status = StatusBar{Text: "hiding completed items"}
		}
	}
	return m, nil
}

func (m Model) completeSelected(scope model.CompletionScope) (Model, tea.Cmd) {
	selected, ok := m.currentTodayItem()
	if !ok {
		return m, nil
	}
	today := dateutil.DayOf(m.clock()).String()
	updated := selected.CompleteOccurrence(today, scope)

	m.replaceTask(updated)
	m.recompute()
	if scope == model.ScopeAll {
		m.Status = StatusBar{Text: "series ended: " + updated.Title}
		if m.Scheduler != nil {
			m.Scheduler.Drop(updated.ID)
		}
	} else {
		m.Status = StatusBar{Text: "done today: " + updated.Title}
	}
	return m, saveTaskCmd(m.repo, updated)
}

func (m *Model) replaceTask(updated model.Task) {
	for i := range m.Tasks {
		if m.Tasks[i].ID == updated.ID {
			m.Tasks[i] = updated
			return
		}
	}
	m.Tasks = append(m.Tasks, updated)
}

func (m *Model) syncSelectedTask() {
	if selected, ok := m.currentTodayItem(); ok {
		m.SelectedTaskID = selected.ID
		return
	}
	m.SelectedTaskID = ""
}

func (m Model) currentTodayItem() (model.Task, bool) {
	if len(m.Today.Items) == 0 {
		return model.Task{}, false
	}
	if m.Today.Cursor < 0 || m.Today.Cursor >= len(m.Today.Items) {
		return model.Task{}, false
	}
	return m.Today.Items[m.Today.Cursor], true
}

func (m Model) taskByID(id string) (model.Task, bool) {
	for _, task := range m.Tasks {
		if task.ID == id {
			return task, true
		}
	}
	return model.Task{}, false
}
