package update

import tea "github.com/charmbracelet/bubbletea"

func (m Model) handleHistoryKey(msg tea.KeyMsg) Model {
	days := len(m.History.History.Days)
	switch msg.String() {
	case "left", "h", "up", "k":
		if m.History.Cursor > 0 {
			m.History.Cursor--
		}
	case "right", "l", "down", "j":
		if m.History.Cursor < days-1 {
			m.History.Cursor++
		}
	case "+":
		m.WindowDays += 7
		m.recompute()
	case "-":
		if m.WindowDays > 7 {
			m.WindowDays -= 7
			m.recompute()
		}
	}
	return m
}
