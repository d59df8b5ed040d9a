package model

type CompletionScope string

const (
	ScopeThis CompletionScope = "this"
	ScopeAll CompletionScope = "all"
)

func (t Task) OccurrenceDone(ymd string) bool {
	if t.Repeat == RepeatNone || !t.Repeat.IsValid() {
		return t.Completed
	}
	if t.Completed {
		return true
	}
	for _, day := range t.CompletedDays {
		if day == ymd {
			return true
		}
	}
	return false
}

func (t Task) CompleteOccurrence(ymd string, scope CompletionScope) Task {
	out := t.clone()
	if t.Repeat == RepeatNone || scope == ScopeAll {
		out.Completed = true
		return out
	}
	for _, day := range out.CompletedDays {
		if day == ymd {
			return out
		}
	}
	out.CompletedDays = append(out.CompletedDays, ymd)
	return out
}

// Legacy base-date-advance completion, kept for importing older exports.
// The per-day exception list is the canonical strategy; never apply both
// to the same task.
func (t Task) Rescheduled(fromYMD string) (Task, error) {
	from, err := dateutilParse(fromYMD, "reschedule date")
	if err != nil {
		return Task{}, err
	}
	out := t.clone()
	switch t.Repeat {
	case RepeatDaily:
		out.Date = from.AddDays(1).String()
	case RepeatWeekly:
		out.Date = from.AddDays(7).String()
	case RepeatMonthly:
		out.Date = from.AddMonths(1).String()
	case RepeatYearly:
		out.Date = from.AddYears(1).String()
	default:
		return Task{}, ErrNotRecurring
	}
	return out, nil
}
