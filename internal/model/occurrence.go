package model

import (
	"fmt"

	"github.com/rohanmehra/habitd/internal/dateutil"
)

// Monthly and yearly rules match by calendar component with no clamping:
// a base day of the 31st has no occurrence in a 30-day month, and a
// Feb 29 base has none in non-leap years. Unknown repeat values fall
// back to exact-date matching; callers surface a data-integrity issue.
func (t Task) OccursOn(targetYMD string) (bool, error) {
	base, err := dateutilParse(t.Date, "task date")
	if err != nil {
		return false, err
	}
	current, err := dateutilParse(targetYMD, "target date")
	if err != nil {
		return false, err
	}

	if t.Repeat != RepeatDaily && t.Repeat != RepeatWeekly && t.Repeat != RepeatMonthly && t.Repeat != RepeatYearly {
		return current.Equal(base), nil
	}
	if current.Before(base) {
		return false, nil
	}

	switch t.Repeat {
	case RepeatDaily:
		return true, nil
	case RepeatWeekly:
		return current.Weekday() == base.Weekday(), nil
	case RepeatMonthly:
		return current.Dom == base.Dom, nil
	default: // RepeatYearly
		return current.Dom == base.Dom && current.Month == base.Month, nil
	}
}

func dateutilParse(ymd, what string) (dateutil.Day, error) {
	day, err := dateutil.ParseDay(ymd)
	if err != nil {
		return dateutil.Day{}, fmt.Errorf("model: %s: %w", what, err)
	}
	return day, nil
}
