package update

import (
	"fmt"
	"strings"

	"github.com/rohanmehra/habitd/internal/dateutil"
	"github.com/rohanmehra/habitd/internal/views"
)

func (m Model) renderTodayView() string {
	today := dateutil.DayOf(m.clock()).String()
	items := make([]views.TodayItemData, 0, len(m.Today.Items))
	for _, task := range m.Today.Items {
		items = append(items, views.TodayItemData{
			ID:        task.ID,
			Title:     task.Title,
			StartTime: task.StartTime,
			Repeat:    string(task.Repeat),
			Done:      task.OccurrenceDone(today),
		})
	}
	issues := make([]string, 0, len(m.Issues))
	for _, issue := range m.Issues {
		issues = append(issues, fmt.Sprintf("%s: %v", issue.TaskID, issue.Err))
	}
	return views.RenderTodayPanel(views.TodayPanelData{
		Date:          today,
		ShowCompleted: m.ShowCompleted,
		Items:         items,
		SelectedID:    m.SelectedTaskID,
		Issues:        issues,
	})
}

func (m Model) renderHistoryView() string {
	cells := make([]views.HeatmapCellData, 0, len(m.History.History.Days))
	for _, day := range m.History.History.Days {
		cells = append(cells, views.HeatmapCellData{
			Date:      day.Date,
			Count:     day.Count,
			Intensity: day.Intensity,
		})
	}
	out := views.RenderHistoryPanel(views.HistoryPanelData{
		Cells:         cells,
		CurrentStreak: m.History.History.CurrentStreak,
	})
	if m.History.Cursor >= 0 && m.History.Cursor < len(cells) {
		out += "\n\n" + views.RenderHistoryDayDetail(cells[m.History.Cursor])
	}
	return out
}

func (m Model) renderMetadataPane() string {
	selected, ok := m.currentTodayItem()
	if !ok {
		return views.RenderTaskMetadataPane(views.TaskMetadataData{})
	}
	return views.RenderTaskMetadataPane(views.TaskMetadataData{
		SelectedID:   selected.ID,
		Date:         selected.Date,
		StartTime:    selected.StartTime,
		Repeat:       string(selected.Repeat),
		DoneDays:     len(selected.CompletedDays),
		NotesPreview: views.RenderMarkdown(selected.Notes),
	})
}

func (m Model) renderCommandPalette() string {
	if !m.Palette.Active {
		return views.RenderCommandPalette(false, "")
	}
	return views.RenderCommandPalette(true, m.commandInput.View())
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m Model) renderTriggerLog() string {
	if len(m.TriggerLog) == 0 {
		return ""
	}
	last := m.TriggerLog[len(m.TriggerLog)-1]
	return strings.TrimSpace(fmt.Sprintf("last reminder: %s @ %s", last.Title, last.TriggerAt.Format("15:04:05")))
}
