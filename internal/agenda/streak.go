package agenda

import (
	"fmt"
	"time"

	"github.com/rohanmehra/habitd/internal/dateutil"
	"github.com/rohanmehra/habitd/internal/model"
)

type StreakDay struct {
	Date      string
	Count     int
	Intensity int
}

type History struct {
	Days          []StreakDay
	CurrentStreak int
}

func ComputeHistory(tasks []model.Task, windowDays int, anchor time.Time) (History, []Issue) {
	if windowDays <= 0 {
		return History{Days: []StreakDay{}}, nil
	}

	issues := make([]Issue, 0)
	usable := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if !task.Repeat.IsValid() {
			issues = append(issues, Issue{TaskID: task.ID, Err: fmt.Errorf("%w: %q", model.ErrInvalidRepeat, task.Repeat)})
		}
		if _, err := task.OccursOn(dateutil.DayOf(anchor).String()); err != nil {
			issues = append(issues, Issue{TaskID: task.ID, Err: err})
			continue
		}
		usable = append(usable, task)
	}

	days := make([]StreakDay, 0, windowDays)
	anchorDay := dateutil.DayOf(anchor)
	for i := windowDays - 1; i >= 0; i-- {
		day := anchorDay.AddDays(-i).String()
		count := 0
		for _, task := range usable {
			occurs, err := task.OccursOn(day)
			if err != nil || !occurs {
				continue
			}
			if task.OccurrenceDone(day) {
				count++
			}
		}
		days = append(days, StreakDay{Date: day, Count: count, Intensity: intensityFor(count)})
	}

	return History{Days: days, CurrentStreak: currentStreak(days)}, issues
}

func intensityFor(count int) int {
	switch {
	case count == 0:
		return 0
	case count <= 2:
		return 1
	case count <= 4:
		return 2
	case count <= 6:
		return 3
	default:
		return 4
	}
}

// A zero-count most recent day is skipped rather than breaking the run:
// counts [1,1,1,0] give a streak of 3, [1,1,0,1] give 1.
func currentStreak(days []StreakDay) int {
	i := len(days) - 1
	if i < 0 {
		return 0
	}
	if days[i].Count == 0 {
		i--
	}
	streak := 0
	for ; i >= 0 && days[i].Count > 0; i-- {
		streak++
	}
	return streak
}
