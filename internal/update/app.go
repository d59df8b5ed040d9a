package update

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rohanmehra/habitd/internal/model"
	"github.com/rohanmehra/habitd/internal/scheduler"
	"github.com/rohanmehra/habitd/internal/storage"
)

const repoTimeout = 5 * time.Second

func saveTaskCmd(repo storage.Repository, task model.Task) tea.Cmd {
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), repoTimeout)
		defer cancel()

		err := repo.UpdateTask(ctx, storage.FromModel(task))
		if err == storage.ErrNotFound {
			err = repo.CreateTask(ctx, storage.FromModel(task))
		}
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return TaskSavedMsg{Task: task}
	}
}

func loadTasksCmd(repo storage.Repository) tea.Cmd {
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), repoTimeout)
		defer cancel()

		rows, err := repo.ListTasks(ctx, storage.TaskListFilter{})
		if err != nil {
			return ReloadDoneMsg{Err: err}
		}
		tasks := make([]model.Task, 0, len(rows))
		for _, row := range rows {
			tasks = append(tasks, row.ToModel())
		}
		return ReloadDoneMsg{Tasks: tasks}
	}
}

func waitForTriggerCmd(ch <-chan scheduler.TriggerEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return TriggerDueMsg{Event: ev}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(time.Time) tea.Msg { return TickMsg{} })
}

func (m *Model) scheduleAllTasks() {
	if m.Scheduler == nil {
		return
	}
	now := m.clock()
	for _, task := range m.Tasks {
		_ = m.Scheduler.Schedule(task, now)
	}
}
