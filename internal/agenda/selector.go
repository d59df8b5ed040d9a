package agenda

import (
	"fmt"
	"sort"
	"time"

	"github.com/rohanmehra/habitd/internal/dateutil"
	"github.com/rohanmehra/habitd/internal/model"
)

type Issue struct {
	TaskID string
	Err    error
}

func SelectForToday(tasks []model.Task, now time.Time, showCompleted bool) ([]model.Task, []Issue) {
	today := dateutil.DayOf(now).String()
	nowClock := dateutil.Minute(now.Hour()*60 + now.Minute())

	issues := make([]Issue, 0)
	type entry struct {
		task  model.Task
		start dateutil.Minute
	}
	selected := make([]entry, 0, len(tasks))

	for _, task := range tasks {
		if !task.Repeat.IsValid() {
			issues = append(issues, Issue{TaskID: task.ID, Err: fmt.Errorf("%w: %q", model.ErrInvalidRepeat, task.Repeat)})
		}
		occurs, err := task.OccursOn(today)
		if err != nil {
			issues = append(issues, Issue{TaskID: task.ID, Err: err})
			continue
		}
		if !occurs {
			continue
		}
		if !showCompleted && task.OccurrenceDone(today) {
			continue
		}

		start := dateutil.EndOfDay
		if task.StartTime != "" {
			parsed, clockErr := dateutil.ParseClock(task.StartTime)
			if clockErr != nil {
				issues = append(issues, Issue{TaskID: task.ID, Err: clockErr})
			} else {
				start = parsed
				if !showCompleted && start < nowClock {
					continue
				}
			}
		}
		selected = append(selected, entry{task: task, start: start})
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].start < selected[j].start
	})

	out := make([]model.Task, 0, len(selected))
	for _, e := range selected {
		out = append(out, e.task)
	}
	return out, issues
}
