package scheduler

import (
	"time"

	"github.com/rohanmehra/habitd/internal/dateutil"
	"github.com/rohanmehra/habitd/internal/model"
)

const defaultClock = dateutil.Minute(9 * 60)

const horizonDays = 8*366 + 1

func NextTrigger(task model.Task, after time.Time) (time.Time, bool, error) {
	clock := defaultClock
	if task.StartTime != "" {
		parsed, err := dateutil.ParseClock(task.StartTime)
		if err != nil {
			return time.Time{}, false, err
		}
		clock = parsed
	}

	day := dateutil.DayOf(after)
	for i := 0; i < horizonDays; i++ {
		ymd := day.String()
		occurs, err := task.OccursOn(ymd)
		if err != nil {
			return time.Time{}, false, err
		}
		if occurs && !task.OccurrenceDone(ymd) {
			at := time.Date(day.Year, day.Month, day.Dom, int(clock)/60, int(clock)%60, 0, 0, after.Location())
			if at.After(after) {
				return at, true, nil
			}
		}
		if task.Repeat == model.RepeatNone || !task.Repeat.IsValid() {
			if base, baseErr := dateutil.ParseDay(task.Date); baseErr == nil && day.After(base) {
				return time.Time{}, false, nil
			}
		}
		day = day.AddDays(1)
	}
	return time.Time{}, false, nil
}
