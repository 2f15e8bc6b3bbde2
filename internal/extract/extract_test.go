package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryaman-sowilo/spine-attendance/internal/core/model"
)

func TestExtractTimes_LabeledPair(t *testing.T) {
	raw := "Attendance Detail\nEmployee clocked in 9:05 AM and clocked out 6:10 PM\nShift: General"

	got := ExtractTimes(raw)

	require.NotNil(t, got.ClockIn)
	require.NotNil(t, got.ClockOut)
	assert.Equal(t, model.TimeOfDay{Hour: 9, Minute: 5}, *got.ClockIn)
	assert.Equal(t, model.TimeOfDay{Hour: 18, Minute: 10}, *got.ClockOut)
	assert.Equal(t, SourceLabeled, got.Source)
}

func TestExtractTimes_LabeledWinsOverNoise(t *testing.T) {
	// Extra time-shaped tokens around the labeled pair must not leak in.
	raw := "Shift 08:00 roster\nin: 9:30\nout: 18:45\nbreak 13:15"

	got := ExtractTimes(raw)

	require.NotNil(t, got.ClockIn)
	require.NotNil(t, got.ClockOut)
	assert.Equal(t, model.TimeOfDay{Hour: 9, Minute: 30}, *got.ClockIn)
	assert.Equal(t, model.TimeOfDay{Hour: 18, Minute: 45}, *got.ClockOut)
	assert.Equal(t, SourceLabeled, got.Source)
}

func TestExtractTimes_FallbackEarliestLatest(t *testing.T) {
	raw := "Swipes recorded at 9:00, 13:00, 18:30 for the day"

	got := ExtractTimes(raw)

	require.NotNil(t, got.ClockIn)
	require.NotNil(t, got.ClockOut)
	assert.Equal(t, model.TimeOfDay{Hour: 9, Minute: 0}, *got.ClockIn)
	assert.Equal(t, model.TimeOfDay{Hour: 18, Minute: 30}, *got.ClockOut)
	assert.Equal(t, SourceHeuristic, got.Source)
}

func TestExtractTimes_FallbackSingleToken(t *testing.T) {
	raw := "swipe captured 11:30 pending sync"

	got := ExtractTimes(raw)

	require.NotNil(t, got.ClockIn)
	assert.Equal(t, model.TimeOfDay{Hour: 11, Minute: 30}, *got.ClockIn)
	assert.Nil(t, got.ClockOut)
	assert.Equal(t, SourceHeuristic, got.Source)
}

func TestExtractTimes_Nothing(t *testing.T) {
	got := ExtractTimes("no attendance rows for the selected period")
	assert.True(t, got.Empty())
	assert.Equal(t, SourceNone, got.Source)
}

func TestExtractTimeline(t *testing.T) {
	fragment := `<ul class="timeline">
		<li><b>Clock In</b> <span>9:43 AM</span> <span>Today</span></li>
		<li><b>Clock Out</b> <span>7:02 PM</span></li>
	</ul>`

	got := ExtractTimeline(fragment)

	require.NotNil(t, got.ClockIn)
	require.NotNil(t, got.ClockOut)
	assert.Equal(t, model.TimeOfDay{Hour: 9, Minute: 43}, *got.ClockIn)
	assert.Equal(t, model.TimeOfDay{Hour: 19, Minute: 2}, *got.ClockOut)
	assert.Equal(t, SourceTimeline, got.Source)
}

func TestExtractTimeline_FirstEntryPerDirectionWins(t *testing.T) {
	fragment := `<ul>
		<li>In <span>9:00 AM</span></li>
		<li>In <span>9:15 AM</span></li>
		<li>Out <span>6:00 PM</span></li>
		<li>Out <span>6:30 PM</span></li>
	</ul>`

	got := ExtractTimeline(fragment)

	require.NotNil(t, got.ClockIn)
	require.NotNil(t, got.ClockOut)
	assert.Equal(t, model.TimeOfDay{Hour: 9, Minute: 0}, *got.ClockIn)
	assert.Equal(t, model.TimeOfDay{Hour: 18, Minute: 0}, *got.ClockOut)
}

func TestExtractTimeline_IgnoresSpansWithoutMeridiem(t *testing.T) {
	fragment := `<ul><li>In <span>total 8:30</span> <span>9:10 AM</span></li></ul>`

	got := ExtractTimeline(fragment)

	require.NotNil(t, got.ClockIn)
	assert.Equal(t, model.TimeOfDay{Hour: 9, Minute: 10}, *got.ClockIn)
	assert.Nil(t, got.ClockOut)
}
