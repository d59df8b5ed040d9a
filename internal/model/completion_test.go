package model

import (
	"errors"
	"testing"
)

func TestOccurrenceDoneNonRecurring(t *testing.T) {
	task := newTask("2024-03-10", RepeatNone)
	if task.OccurrenceDone("2024-03-10") {
		t.Fatal("fresh task should not be done")
	}
	task.Completed = true
	if !task.OccurrenceDone("2024-03-10") {
		t.Fatal("completed task should be done on its date")
	}
	// CompletedDays is meaningless for non-recurring tasks.
	task.Completed = false
	task.CompletedDays = []string{"2024-03-10"}
	if task.OccurrenceDone("2024-03-10") {
		t.Fatal("exception list must be ignored for non-recurring tasks")
	}
}

func TestOccurrenceDonePerDayException(t *testing.T) {
	task := newTask("2024-03-10", RepeatDaily)
	task.CompletedDays = []string{"2024-03-11"}
	if !task.OccurrenceDone("2024-03-11") {
		t.Fatal("expected exception day to be done")
	}
	if task.OccurrenceDone("2024-03-12") {
		t.Fatal("other days must stay open")
	}
}

func TestOccurrenceDoneSeriesEndedOverride(t *testing.T) {
	task := newTask("2024-03-10", RepeatWeekly)
	task.Completed = true
	// Every day counts as done once the series is ended, including days
	// before the override was set and days with no exception entry.
	for _, day := range []string{"2024-03-10", "2024-02-01", "2030-06-15"} {
		if !task.OccurrenceDone(day) {
			t.Fatalf("series-ended task should be done on %s", day)
		}
	}
}

func TestCompleteOccurrenceThisIsIdempotent(t *testing.T) {
	task := newTask("2024-03-10", RepeatDaily)

	once := task.CompleteOccurrence("2024-03-11", ScopeThis)
	twice := once.CompleteOccurrence("2024-03-11", ScopeThis)

	if len(once.CompletedDays) != 1 || once.CompletedDays[0] != "2024-03-11" {
		t.Fatalf("unexpected exceptions after first completion: %v", once.CompletedDays)
	}
	if len(twice.CompletedDays) != 1 {
		t.Fatalf("second completion must be a no-op, got %v", twice.CompletedDays)
	}
	if once.Completed || twice.Completed {
		t.Fatal("per-occurrence completion must not end the series")
	}
	if once.Date != task.Date {
		t.Fatal("per-occurrence completion must not move the base date")
	}
}

func TestCompleteOccurrenceDoesNotMutateReceiver(t *testing.T) {
	task := newTask("2024-03-10", RepeatDaily)
	task.CompletedDays = []string{"2024-03-10"}

	updated := task.CompleteOccurrence("2024-03-11", ScopeThis)

	if len(task.CompletedDays) != 1 {
		t.Fatalf("receiver mutated: %v", task.CompletedDays)
	}
	if len(updated.CompletedDays) != 2 {
		t.Fatalf("copy missing new exception: %v", updated.CompletedDays)
	}
	// The copy must not share the receiver's backing array either.
	updated.CompletedDays[0] = "1999-01-01"
	if task.CompletedDays[0] != "2024-03-10" {
		t.Fatal("copy aliases the receiver's exception slice")
	}
}

func TestCompleteOccurrenceAll(t *testing.T) {
	task := newTask("2024-03-10", RepeatMonthly)
	task.CompletedDays = []string{"2024-04-10"}

	out := task.CompleteOccurrence("2024-06-10", ScopeAll)

	if !out.Completed {
		t.Fatal("scope all must set the series-ended override")
	}
	if len(out.CompletedDays) != 1 {
		t.Fatal("scope all must not rewrite prior exceptions")
	}
}

func TestCompleteOccurrenceScopeIrrelevantForNonRecurring(t *testing.T) {
	for _, scope := range []CompletionScope{ScopeThis, ScopeAll} {
		out := newTask("2024-03-10", RepeatNone).CompleteOccurrence("2024-03-10", scope)
		if !out.Completed {
			t.Fatalf("scope %q should complete a non-recurring task", scope)
		}
		if len(out.CompletedDays) != 0 {
			t.Fatalf("non-recurring task grew exceptions: %v", out.CompletedDays)
		}
	}
}

func TestRescheduled(t *testing.T) {
	tests := []struct {
		repeat Repeat
		from   string
		want   string
	}{
		{RepeatDaily, "2024-03-10", "2024-03-11"},
		{RepeatWeekly, "2024-03-10", "2024-03-17"},
		{RepeatMonthly, "2024-03-10", "2024-04-10"},
		{RepeatYearly, "2024-03-10", "2025-03-10"},
	}
	for _, tt := range tests {
		task := newTask("2024-03-10", tt.repeat)
		out, err := task.Rescheduled(tt.from)
		if err != nil {
			t.Fatalf("Rescheduled(%s, %s) failed: %v", tt.repeat, tt.from, err)
		}
		if out.Date != tt.want {
			t.Fatalf("Rescheduled(%s) = %s, want %s", tt.repeat, out.Date, tt.want)
		}
		if task.Date != "2024-03-10" {
			t.Fatal("receiver mutated by Rescheduled")
		}
	}
}

func TestRescheduledRejectsNonRecurring(t *testing.T) {
	_, err := newTask("2024-03-10", RepeatNone).Rescheduled("2024-03-10")
	if !errors.Is(err, ErrNotRecurring) {
		t.Fatalf("expected ErrNotRecurring, got %v", err)
	}
}

func TestTaskValidate(t *testing.T) {
	valid := newTask("2024-03-10", RepeatWeekly)
	valid.StartTime = "09:00"
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid task, got %v", err)
	}

	bad := newTask("2024-03-10", Repeat("sometimes"))
	if err := bad.Validate(); !errors.Is(err, ErrInvalidRepeat) {
		t.Fatalf("expected ErrInvalidRepeat, got %v", err)
	}

	bad = newTask("10-03-2024", RepeatNone)
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for malformed date")
	}

	bad = newTask("2024-03-10", RepeatNone)
	bad.StartTime = "9am"
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for malformed start time")
	}
}
