package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rohanmehra/habitd/internal/commands"
	"github.com/rohanmehra/habitd/internal/dateutil"
	"github.com/rohanmehra/habitd/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		return m, nil
	case "enter":
		return m.executePaletteCommand()
	default:
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	input := m.Palette.Input
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()

	cmd, err := commands.Parse(input)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var saved *model.Task
	var endedSeries bool
	result, err := commands.Execute(cmd, commands.Handlers{
		Add: func(args commands.AddArgs) (commands.Result, error) {
			task, addErr := m.newTaskFromArgs(args)
			if addErr != nil {
				return commands.Result{}, addErr
			}
			m.replaceTask(task)
			saved = &task
			return commands.Result{Message: "added: " + task.Title}, nil
		},
		Done: func(args commands.DoneArgs) (commands.Result, error) {
			task, ok := m.taskByID(args.Target)
			if !ok {
				return commands.Result{}, fmt.Errorf("no such task: %s", args.Target)
			}
			scope := model.ScopeThis
			if args.All {
				scope = model.ScopeAll
				endedSeries = true
			}
			updated := task.CompleteOccurrence(dateutil.DayOf(m.clock()).String(), scope)
			m.replaceTask(updated)
			saved = &updated
			return commands.Result{Message: "done: " + updated.Title}, nil
		},
		Show: func(args commands.ShowArgs) (commands.Result, error) {
			if args.Subject == "history" {
				m.CurrentView = ViewHistory
			} else {
				m.CurrentView = ViewToday
			}
			return commands.Result{Message: "showing " + args.Subject}, nil
		},
		Toggle: func(args commands.ToggleArgs) (commands.Result, error) {
			if args.Setting != "completed" {
				return commands.Result{}, fmt.Errorf("unknown setting: %s", args.Setting)
			}
			m.ShowCompleted = !m.ShowCompleted
			return commands.Result{Message: "toggled completed visibility"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	m.recompute()
	m.Status = StatusBar{Text: result.Message}
	if saved != nil {
		if m.Scheduler != nil {
			switch {
			case cmd.Type == commands.TypeAdd:
				_ = m.Scheduler.Schedule(*saved, m.clock())
			case endedSeries:
				m.Scheduler.Drop(saved.ID)
			}
		}
		return m, saveTaskCmd(m.repo, *saved)
	}
	return m, nil
}

func (m Model) newTaskFromArgs(args commands.AddArgs) (model.Task, error) {
	now := m.clock()
	if args.StartTime != "" {
		if _, err := dateutil.ParseClock(args.StartTime); err != nil {
			return model.Task{}, err
		}
	}
	task := model.Task{
		ID:        fmt.Sprintf("task-%d", now.UnixNano()),
		Title:     args.Title,
		Date:      dateutil.DayOf(now).String(),
		StartTime: args.StartTime,
		Repeat:    args.Repeat,
		CreatedAt: now.UTC(),
	}
	return task, task.Validate()
}
