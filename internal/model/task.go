package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rohanmehra/habitd/internal/dateutil"
)

var (
	ErrInvalidRepeat = errors.New("model: invalid repeat rule")
	ErrNotRecurring  = errors.New("model: task is not recurring")
)

type Repeat string

const (
	RepeatNone    Repeat = "none"
	RepeatDaily   Repeat = "daily"
	RepeatWeekly  Repeat = "weekly"
	RepeatMonthly Repeat = "monthly"
	RepeatYearly  Repeat = "yearly"
)

func (r Repeat) IsValid() bool {
	switch r {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly:
		return true
	default:
		return false
	}
}

type Task struct {
	ID            string
	Title         string
	Notes         string
	Date          string
	StartTime     string
	Repeat        Repeat
	Completed     bool
	CompletedDays []string
	CreatedAt     time.Time
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if _, err := dateutil.ParseDay(t.Date); err != nil {
		return fmt.Errorf("model: task date: %w", err)
	}
	if t.StartTime != "" {
		if _, err := dateutil.ParseClock(t.StartTime); err != nil {
			return fmt.Errorf("model: task start time: %w", err)
		}
	}
	if !t.Repeat.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRepeat, t.Repeat)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	return nil
}

func (t Task) clone() Task {
	out := t
	out.CompletedDays = make([]string, len(t.CompletedDays))
	copy(out.CompletedDays, t.CompletedDays)
	return out
}
