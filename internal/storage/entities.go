package storage

import (
	"time"

	"github.com/rohanmehra/habitd/internal/model"
)

type Task struct {
	ID            string
	Title         string
	Notes         string
	Date          string
	StartTime     string
	Repeat        string
	Completed     bool
	CompletedDays []string
	CreatedAt     time.Time
}

type TaskListFilter struct {
	Repeat    string
	Completed *bool
	Limit     int
	Offset    int
}

func FromModel(in model.Task) Task {
	days := make([]string, len(in.CompletedDays))
	copy(days, in.CompletedDays)
	return Task{
		ID:            in.ID,
		Title:         in.Title,
		Notes:         in.Notes,
		Date:          in.Date,
		StartTime:     in.StartTime,
		Repeat:        string(in.Repeat),
		Completed:     in.Completed,
		CompletedDays: days,
		CreatedAt:     in.CreatedAt,
	}
}

func (t Task) ToModel() model.Task {
	days := make([]string, len(t.CompletedDays))
	copy(days, t.CompletedDays)
	return model.Task{
		ID:            t.ID,
		Title:         t.Title,
		Notes:         t.Notes,
		Date:          t.Date,
		StartTime:     t.StartTime,
		Repeat:        model.Repeat(t.Repeat),
		Completed:     t.Completed,
		CompletedDays: days,
		CreatedAt:     t.CreatedAt,
	}
}
