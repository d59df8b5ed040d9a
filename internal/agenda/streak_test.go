package agenda

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohanmehra/habitd/internal/dateutil"
	"github.com/rohanmehra/habitd/internal/model"
)

// completedDailies returns n daily tasks all completed on the given day.
func completedDailies(n int, day string) []model.Task {
	out := make([]model.Task, 0, n)
	for i := 0; i < n; i++ {
		tk := task(fmt.Sprintf("daily-%d", i), "2024-01-01", model.RepeatDaily)
		tk.CompletedDays = []string{day}
		out = append(out, tk)
	}
	return out
}

func TestComputeHistoryWindowShape(t *testing.T) {
	anchor := localTime(t, "2024-03-17", "12:00")

	history, issues := ComputeHistory(nil, 14, anchor)

	assert.Empty(t, issues)
	require.Len(t, history.Days, 14)
	assert.Equal(t, "2024-03-04", history.Days[0].Date)
	assert.Equal(t, "2024-03-17", history.Days[13].Date)
	assert.Equal(t, 0, history.CurrentStreak)
}

func TestComputeHistoryCountsCompletedOccurrences(t *testing.T) {
	anchor := localTime(t, "2024-03-17", "12:00")

	done := task("done", "2024-03-01", model.RepeatDaily)
	done.CompletedDays = []string{"2024-03-16", "2024-03-17"}
	open := task("open", "2024-03-01", model.RepeatDaily)
	offDay := task("weekly", "2024-03-11", model.RepeatWeekly) // Mondays
	offDay.CompletedDays = []string{"2024-03-17"}              // a Sunday: never occurs, never counts

	history, issues := ComputeHistory([]model.Task{done, open, offDay}, 3, anchor)

	assert.Empty(t, issues)
	require.Len(t, history.Days, 3)
	assert.Equal(t, 0, history.Days[0].Count) // 2024-03-15
	assert.Equal(t, 1, history.Days[1].Count) // 2024-03-16
	assert.Equal(t, 1, history.Days[2].Count) // 2024-03-17
	assert.Equal(t, 2, history.CurrentStreak)
}

func TestIntensityBuckets(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{0, 0},
		{1, 1}, {2, 1},
		{3, 2}, {4, 2},
		{5, 3}, {6, 3},
		{7, 4}, {8, 4}, {20, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, intensityFor(tt.count), "count %d", tt.count)
	}
}

func TestComputeHistoryIntensityEndToEnd(t *testing.T) {
	anchor := localTime(t, "2024-03-17", "12:00")

	history, _ := ComputeHistory(completedDailies(5, "2024-03-17"), 2, anchor)

	require.Len(t, history.Days, 2)
	assert.Equal(t, 0, history.Days[0].Intensity)
	assert.Equal(t, 5, history.Days[1].Count)
	assert.Equal(t, 3, history.Days[1].Intensity)
}

func TestCurrentStreakZeroTodayDoesNotBreak(t *testing.T) {
	// Counts [1,1,1,0]: three days done, nothing yet today.
	assert.Equal(t, 3, currentStreak([]StreakDay{
		{Count: 1}, {Count: 1}, {Count: 1}, {Count: 0},
	}))
}

func TestCurrentStreakZeroBeforeTodayBreaks(t *testing.T) {
	// Counts [1,1,0,1]: the gap two days ago ends the run.
	assert.Equal(t, 1, currentStreak([]StreakDay{
		{Count: 1}, {Count: 1}, {Count: 0}, {Count: 1},
	}))
}

func TestCurrentStreakEdges(t *testing.T) {
	assert.Equal(t, 0, currentStreak(nil))
	assert.Equal(t, 0, currentStreak([]StreakDay{{Count: 0}}))
	assert.Equal(t, 0, currentStreak([]StreakDay{{Count: 0}, {Count: 0}}))
	assert.Equal(t, 1, currentStreak([]StreakDay{{Count: 2}}))
	assert.Equal(t, 4, currentStreak([]StreakDay{{Count: 1}, {Count: 3}, {Count: 1}, {Count: 2}}))
}

func TestComputeHistoryStreakFromTasks(t *testing.T) {
	anchor := localTime(t, "2024-03-17", "09:00")

	habit := task("habit", "2024-03-01", model.RepeatDaily)
	habit.CompletedDays = []string{"2024-03-14", "2024-03-15", "2024-03-16"}

	history, _ := ComputeHistory([]model.Task{habit}, 7, anchor)

	// Nothing done yet on the 17th; the three prior days still count.
	assert.Equal(t, 0, history.Days[len(history.Days)-1].Count)
	assert.Equal(t, 3, history.CurrentStreak)
}

func TestComputeHistoryReportsMalformedTasksOnce(t *testing.T) {
	anchor := localTime(t, "2024-03-17", "12:00")

	bad := task("bad", "not-a-date", model.RepeatDaily)
	good := task("good", "2024-03-01", model.RepeatDaily)
	good.CompletedDays = []string{"2024-03-17"}

	history, issues := ComputeHistory([]model.Task{bad, good}, 14, anchor)

	require.Len(t, issues, 1)
	assert.Equal(t, "bad", issues[0].TaskID)
	assert.ErrorIs(t, issues[0].Err, dateutil.ErrInvalidFormat)
	assert.Equal(t, 1, history.Days[13].Count)
}

func TestComputeHistoryFlagsUnknownRepeat(t *testing.T) {
	anchor := localTime(t, "2024-03-17", "12:00")

	odd := task("odd", "2024-03-17", model.Repeat("fortnightly"))
	odd.CompletedDays = []string{"2024-03-17"}

	history, issues := ComputeHistory([]model.Task{odd}, 3, anchor)

	require.Len(t, issues, 1)
	assert.Equal(t, "odd", issues[0].TaskID)
	assert.ErrorIs(t, issues[0].Err, model.ErrInvalidRepeat)
	require.Len(t, history.Days, 3)
	assert.Equal(t, 0, history.Days[2].Count)
}

func TestComputeHistoryMonthEndScenario(t *testing.T) {
	// Monthly task anchored to Jan 31: no occurrence in February at all,
	// one on Mar 31.
	rent := task("rent", "2024-01-31", model.RepeatMonthly)
	rent.CompletedDays = []string{"2024-03-31"}

	history, issues := ComputeHistory([]model.Task{rent}, 31, localTime(t, "2024-03-31", "12:00"))

	assert.Empty(t, issues)
	for _, day := range history.Days[:30] {
		assert.Zero(t, day.Count, "unexpected completion on %s", day.Date)
	}
	assert.Equal(t, 1, history.Days[30].Count)

	occurs, err := rent.OccursOn("2024-02-29")
	require.NoError(t, err)
	assert.False(t, occurs)
}

func TestComputeHistoryEmptyWindow(t *testing.T) {
	history, issues := ComputeHistory(completedDailies(1, "2024-03-17"), 0, time.Now())
	assert.Empty(t, issues)
	assert.Empty(t, history.Days)
	assert.Equal(t, 0, history.CurrentStreak)
}
