package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateTextRoundTrip(t *testing.T) {
	d := Date{Year: 2024, Month: time.March, Day: 5}

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "05-Mar-2024", string(text))

	var parsed Date
	require.NoError(t, parsed.UnmarshalText(text))
	assert.Equal(t, d, parsed)
}

func TestDateAsMapKey(t *testing.T) {
	m := map[Date]string{
		{Year: 2024, Month: time.March, Day: 5}: "missing",
	}

	encoded, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"05-Mar-2024":"missing"}`, string(encoded))

	var decoded map[Date]string
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, m, decoded)
}

func TestTimeOfDayText(t *testing.T) {
	assert.Equal(t, "09:05", TimeOfDay{Hour: 9, Minute: 5}.String())

	text, err := TimeOfDay{Hour: 18, Minute: 30, Second: 15}.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "18:30:15", string(text))

	var parsed TimeOfDay
	require.NoError(t, parsed.UnmarshalText([]byte("18:30")))
	assert.Equal(t, TimeOfDay{Hour: 18, Minute: 30}, parsed)

	assert.Error(t, parsed.UnmarshalText([]byte("late")))
}

func TestTimeOfDayAddWrapsMidnight(t *testing.T) {
	out := TimeOfDay{Hour: 23, Minute: 30}.Add(45 * time.Minute)
	assert.Equal(t, TimeOfDay{Hour: 0, Minute: 15}, out)

	back := TimeOfDay{Hour: 0, Minute: 10}.Add(-30 * time.Minute)
	assert.Equal(t, TimeOfDay{Hour: 23, Minute: 40}, back)
}

func TestDateOrdering(t *testing.T) {
	a := Date{Year: 2024, Month: time.February, Day: 29}
	b := Date{Year: 2024, Month: time.March, Day: 1}

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, b, a.AddDays(1))
	assert.Equal(t, a, b.AddDays(-1))
}
