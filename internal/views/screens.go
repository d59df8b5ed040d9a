package views

import (
	"fmt"
	"strings"
)

type TodayItemData struct {
	ID        string
	Title     string
	StartTime string
	Repeat    string
	Done      bool
}

type TodayPanelData struct {
	Date          string
	ShowCompleted bool
	Items         []TodayItemData
	SelectedID    string
	Issues        []string
}

type HeatmapCellData struct {
	Date      string
	Count     int
	Intensity int
}

type HistoryPanelData struct {
	Cells         []HeatmapCellData
	CurrentStreak int
}

type TaskMetadataData struct {
	SelectedID   string
	Date         string
	StartTime    string
	Repeat       string
	DoneDays     int
	NotesPreview string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTodayPanel(data TodayPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("today %s:\n", data.Date))
	b.WriteString("actions: [j/k]move [enter]done [a]done-all [c]completed [R]reload\n")
	if data.ShowCompleted {
		b.WriteString("showing completed and passed items\n")
	}

	timed := make([]TodayItemData, 0)
	allDay := make([]TodayItemData, 0)
	for _, item := range data.Items {
		if item.StartTime != "" {
			timed = append(timed, item)
		} else {
			allDay = append(allDay, item)
		}
	}
	renderTodaySection(&b, "Timed", timed, data.SelectedID)
	renderTodaySection(&b, "Anytime", allDay, data.SelectedID)

	if len(data.Issues) > 0 {
		b.WriteString("\ndata warnings:\n")
		for _, issue := range data.Issues {
			b.WriteString("! " + issue + "\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func renderTodaySection(b *strings.Builder, title string, items []TodayItemData, selectedID string) {
	b.WriteString(fmt.Sprintf("\n%s:\n", title))
	if len(items) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, item := range items {
		cursor := " "
		if selectedID == item.ID {
			cursor = ">"
		}
		mark := "[ ]"
		if item.Done {
			mark = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s", cursor, mark, item.Title))
		if item.StartTime != "" {
			b.WriteString(fmt.Sprintf(" @%s", item.StartTime))
		}
		if item.Repeat != "" && item.Repeat != "none" {
			b.WriteString(fmt.Sprintf(" (%s)", item.Repeat))
		}
		b.WriteString("\n")
	}
}

func RenderHistoryPanel(data HistoryPanelData) string {
	var b strings.Builder
	b.WriteString("history:\n")
	b.WriteString("actions: [h/l]window [j/k]day\n\n")

	cells := make([]string, 0, len(data.Cells))
	for _, cell := range data.Cells {
		cells = append(cells, heatStyle(cell.Intensity).Render("■"))
	}
	b.WriteString(strings.Join(cells, " "))
	b.WriteString("\n")

	if len(data.Cells) > 0 {
		first := data.Cells[0]
		last := data.Cells[len(data.Cells)-1]
		b.WriteString(fmt.Sprintf("%s .. %s\n", first.Date, last.Date))
	}
	b.WriteString(fmt.Sprintf("\ncurrent streak: %d day(s)\n", data.CurrentStreak))
	return strings.TrimSpace(b.String())
}

func RenderHistoryDayDetail(cell HeatmapCellData) string {
	return fmt.Sprintf("day: %s\ncompleted: %d\nintensity: %d/4", cell.Date, cell.Count, cell.Intensity)
}

func RenderTaskMetadataPane(data TaskMetadataData) string {
	if strings.TrimSpace(data.SelectedID) == "" {
		return "metadata:\n(no selection)"
	}
	start := data.StartTime
	if start == "" {
		start = "(all day)"
	}
	return fmt.Sprintf("metadata:\nid: %s\nbase date: %s\nstart: %s\nrepeat: %s\ndays completed: %d\n\nnotes:\n%s",
		data.SelectedID,
		data.Date,
		start,
		data.Repeat,
		data.DoneDays,
		data.NotesPreview,
	)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("\nnotification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
