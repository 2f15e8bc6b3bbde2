package record

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryaman-sowilo/spine-attendance/internal/core/model"
)

var testToday = model.Date{Year: 2024, Month: time.March, Day: 15}

func TestBuildAttendanceRecord_FoundViaContainerText(t *testing.T) {
	page := Page{
		Containers: []Container{
			{Selector: "table", Text: "Holiday calendar 2024"},
			{Selector: "table", Text: "15/03/2024 clocked in 9:05 AM clocked out 6:10 PM"},
		},
	}

	rec := BuildAttendanceRecord(testToday, page)

	assert.Equal(t, model.StatusFound, rec.Status)
	require.NotNil(t, rec.ClockIn)
	require.NotNil(t, rec.ClockOut)
	assert.Equal(t, model.TimeOfDay{Hour: 9, Minute: 5}, *rec.ClockIn)
	assert.Equal(t, model.TimeOfDay{Hour: 18, Minute: 10}, *rec.ClockOut)
	assert.Contains(t, rec.RawText, "15/03/2024")
}

func TestBuildAttendanceRecord_TimelineSupersedesText(t *testing.T) {
	page := Page{
		Containers: []Container{
			{
				Selector: "ul.timeline",
				Text:     "Today in 8:00 out 20:00",
				HTML:     `<ul><li>In <span>9:43 AM</span></li></ul>`,
			},
		},
	}

	rec := BuildAttendanceRecord(testToday, page)

	assert.Equal(t, model.StatusFound, rec.Status)
	require.NotNil(t, rec.ClockIn)
	assert.Equal(t, model.TimeOfDay{Hour: 9, Minute: 43}, *rec.ClockIn)
	// The structured pass replaces the text pass entirely, including absences.
	assert.Nil(t, rec.ClockOut)
}

func TestBuildAttendanceRecord_BodyFallback(t *testing.T) {
	page := Page{
		BodyText: "Attendance summary 15/03/2024 entry 09:12",
	}

	rec := BuildAttendanceRecord(testToday, page)

	assert.Equal(t, model.StatusFound, rec.Status)
	require.NotNil(t, rec.ClockIn)
	assert.Equal(t, model.TimeOfDay{Hour: 9, Minute: 12}, *rec.ClockIn)
}

func TestBuildAttendanceRecord_NotFound(t *testing.T) {
	page := Page{
		Containers: []Container{{Text: "leave balance summary"}},
		BodyText:   "leave balance summary",
	}

	rec := BuildAttendanceRecord(model.Date{Year: 2030, Month: time.December, Day: 25}, page)

	assert.Equal(t, model.StatusNotFound, rec.Status)
	assert.Nil(t, rec.ClockIn)
	assert.Nil(t, rec.ClockOut)
}

func TestBuildAttendanceRecord_MatchedWithoutTimesIsUnknown(t *testing.T) {
	page := Page{
		Containers: []Container{{Text: "today's punches are syncing"}},
	}

	rec := BuildAttendanceRecord(testToday, page)

	assert.Equal(t, model.StatusUnknown, rec.Status)
	assert.Nil(t, rec.ClockIn)
}

func TestErrorRecord(t *testing.T) {
	rec := ErrorRecord(testToday, errors.New("session expired"))
	assert.Equal(t, model.StatusError, rec.Status)
	assert.Equal(t, "session expired", rec.Err)
}

func TestBuildSwipeApplication(t *testing.T) {
	t.Run("complete card", func(t *testing.T) {
		app, ok := BuildSwipeApplication(Card{
			DateText:        "12-Mar-2024",
			DayText:         "Tuesday",
			InTime:          "9:00 AM",
			OutTime:         "6:00 PM",
			Reason:          "Forgot to punch",
			RequestType:     "Regularization",
			StatusIndicator: "leaveBlockOne approved",
		})
		require.True(t, ok)
		assert.Equal(t, model.Date{Year: 2024, Month: time.March, Day: 12}, app.Date)
		require.NotNil(t, app.InTime)
		require.NotNil(t, app.OutTime)
		assert.Equal(t, model.TimeOfDay{Hour: 9}, *app.InTime)
		assert.Equal(t, model.TimeOfDay{Hour: 18}, *app.OutTime)
		assert.Equal(t, "leaveBlockOne approved", app.StatusIndicator)
	})

	t.Run("placeholder card skipped", func(t *testing.T) {
		_, ok := BuildSwipeApplication(Card{DateText: "--"})
		assert.False(t, ok)
	})

	t.Run("missing times stay nil", func(t *testing.T) {
		app, ok := BuildSwipeApplication(Card{DateText: "12-Mar-24"})
		require.True(t, ok)
		assert.Nil(t, app.InTime)
		assert.Nil(t, app.OutTime)
	})
}

func TestValidateSwipeRequest(t *testing.T) {
	today := testToday

	t.Run("valid", func(t *testing.T) {
		err := ValidateSwipeRequest(today.AddDays(-1), today, "Forgot to punch out")
		assert.NoError(t, err)
	})

	t.Run("future date", func(t *testing.T) {
		err := ValidateSwipeRequest(today.AddDays(1), today, "reason")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "future")
	})

	t.Run("too old", func(t *testing.T) {
		err := ValidateSwipeRequest(today.AddDays(-91), today, "reason")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "older than 90 days")
	})

	t.Run("boundary age accepted", func(t *testing.T) {
		err := ValidateSwipeRequest(today.AddDays(-90), today, "reason")
		assert.NoError(t, err)
	})

	t.Run("empty reason", func(t *testing.T) {
		err := ValidateSwipeRequest(today.AddDays(-1), today, "   ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("overlong reason", func(t *testing.T) {
		err := ValidateSwipeRequest(today.AddDays(-1), today, strings.Repeat("x", 256))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too long")
	})

	t.Run("multiple problems", func(t *testing.T) {
		err := ValidateSwipeRequest(today.AddDays(5), today, "")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Problems, 2)
	})
}
