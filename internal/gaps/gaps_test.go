package gaps

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryaman-sowilo/spine-attendance/internal/core/model"
)

func d(y int, m time.Month, day int) model.Date {
	return model.Date{Year: y, Month: m, Day: day}
}

func TestAnalyze_AllWeekdaysMissing(t *testing.T) {
	cal := NewCalendar(nil, nil)

	report := Analyze(d(2024, time.January, 1), d(2024, time.January, 31), cal, nil, nil)

	// January 2024 has 23 weekdays.
	assert.Equal(t, 23, report.TotalMissing)
	require.NotEmpty(t, report.MissingDates)
	assert.Equal(t, d(2024, time.January, 31), report.MissingDates[0])
	assert.Equal(t, d(2024, time.January, 1), report.MissingDates[len(report.MissingDates)-1])
	for _, date := range report.MissingDates {
		wd := date.Weekday()
		assert.NotEqual(t, time.Saturday, wd)
		assert.NotEqual(t, time.Sunday, wd)
	}
	assert.Equal(t, report.MissingDates, report.UnmatchedMissing)
	assert.Empty(t, report.MatchedSwipes)
}

func TestAnalyze_SkipsHolidaysAndFoundDays(t *testing.T) {
	cal := NewCalendar(nil, map[model.Date]string{
		d(2024, time.January, 26): "Republic Day",
	})
	found := map[model.Date]bool{
		d(2024, time.January, 22): true,
		d(2024, time.January, 23): true,
	}

	report := Analyze(d(2024, time.January, 22), d(2024, time.January, 26), cal, found, nil)

	assert.Equal(t, []model.Date{
		d(2024, time.January, 25),
		d(2024, time.January, 24),
	}, report.MissingDates)
}

func TestAnalyze_SetDifferenceLaw(t *testing.T) {
	cal := NewCalendar(nil, nil)
	swipes := []model.SwipeApplication{
		{Date: d(2024, time.January, 24), Reason: "forgot punch"},
		{Date: d(2024, time.January, 24), Reason: "duplicate, ignored"},
		{Date: d(2024, time.January, 2), Reason: "outage"},
	}

	report := Analyze(d(2024, time.January, 1), d(2024, time.January, 31), cal, nil, swipes)

	// unmatched = missing - matched keys, order preserved.
	assert.Len(t, report.MatchedSwipes, 2)
	assert.Equal(t, "forgot punch", report.MatchedSwipes[d(2024, time.January, 24)].Reason)
	assert.Equal(t, report.TotalMissing-len(report.MatchedSwipes), len(report.UnmatchedMissing))
	for _, date := range report.UnmatchedMissing {
		_, matched := report.MatchedSwipes[date]
		assert.False(t, matched)
	}
	// Descending order holds for the unmatched sequence too.
	for i := 1; i < len(report.UnmatchedMissing); i++ {
		assert.True(t, report.UnmatchedMissing[i].Before(report.UnmatchedMissing[i-1]))
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	cal := NewCalendar(nil, map[model.Date]string{d(2024, time.January, 26): "Republic Day"})
	found := map[model.Date]bool{d(2024, time.January, 10): true}
	swipes := []model.SwipeApplication{{Date: d(2024, time.January, 5)}}

	first := Analyze(d(2024, time.January, 1), d(2024, time.January, 31), cal, found, swipes)
	second := Analyze(d(2024, time.January, 1), d(2024, time.January, 31), cal, found, swipes)

	assert.Equal(t, first, second)
}

func TestAnalyze_EmptyRange(t *testing.T) {
	cal := NewCalendar(nil, nil)
	report := Analyze(d(2024, time.February, 2), d(2024, time.February, 1), cal, nil, nil)
	assert.Zero(t, report.TotalMissing)
	assert.Empty(t, report.MissingDates)
}

func TestFoundSet(t *testing.T) {
	records := []model.AttendanceRecord{
		{Date: d(2024, time.January, 2), Status: model.StatusFound},
		{Date: d(2024, time.January, 3), Status: model.StatusNotFound},
		{Date: d(2024, time.January, 4), Status: model.StatusError},
	}

	found := FoundSet(records)

	assert.True(t, found[d(2024, time.January, 2)])
	assert.False(t, found[d(2024, time.January, 3)])
	assert.False(t, found[d(2024, time.January, 4)])
}

func TestLoadCalendar(t *testing.T) {
	t.Run("missing file yields default", func(t *testing.T) {
		cal, err := LoadCalendar(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.True(t, cal.IsWeekend(d(2024, time.January, 6)))  // Saturday
		assert.False(t, cal.IsWeekend(d(2024, time.January, 5))) // Friday
	})

	t.Run("parses weekend and holidays", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "holidays.yaml")
		content := "weekend: [Friday, Saturday]\nholidays:\n  - date: 2024-01-26\n    name: Republic Day\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cal, err := LoadCalendar(path)
		require.NoError(t, err)
		assert.True(t, cal.IsWeekend(d(2024, time.January, 5))) // Friday
		assert.False(t, cal.IsWeekend(d(2024, time.January, 7)))
		name, ok := cal.IsHoliday(d(2024, time.January, 26))
		require.True(t, ok)
		assert.Equal(t, "Republic Day", name)
		assert.False(t, cal.IsWorkday(d(2024, time.January, 26)))
	})

	t.Run("rejects unknown weekday", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("weekend: [Caturday]\n"), 0o644))
		_, err := LoadCalendar(path)
		assert.Error(t, err)
	})
}
