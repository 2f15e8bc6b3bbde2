package driver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryaman-sowilo/spine-attendance/internal/core/model"
	"github.com/aryaman-sowilo/spine-attendance/internal/record"
)

func TestHTTPDriver_FetchTodayAttendance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/attendance/today", r.URL.Path)
		json.NewEncoder(w).Encode(record.Page{
			Containers: []record.Container{{Text: "in: 9:05 AM"}},
			BodyText:   "Welcome back.",
		})
	}))
	defer srv.Close()

	d := NewHTTPDriver(srv.URL)
	page, err := d.FetchTodayAttendance(context.Background())

	require.NoError(t, err)
	require.Len(t, page.Containers, 1)
	assert.Equal(t, "in: 9:05 AM", page.Containers[0].Text)
}

func TestHTTPDriver_FetchRecentSwipes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/swipes/recent", r.URL.Path)
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode([]record.Card{{DateText: "13-Mar-2024"}})
	}))
	defer srv.Close()

	d := NewHTTPDriver(srv.URL)
	cards, err := d.FetchRecentSwipes(context.Background(), 25)

	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "13-Mar-2024", cards[0].DateText)
}

func TestHTTPDriver_SubmitSwipe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/swipes", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "13-Mar-2024", req["date"])
		assert.Equal(t, "09:00", req["inTime"])

		json.NewEncoder(w).Encode(SwipeResult{Success: true, Message: "filed"})
	}))
	defer srv.Close()

	d := NewHTTPDriver(srv.URL)
	result, err := d.SubmitSwipe(context.Background(), SwipeRequest{
		Date:    model.Date{Year: 2024, Month: time.March, Day: 13},
		InTime:  model.TimeOfDay{Hour: 9},
		OutTime: model.TimeOfDay{Hour: 18},
		Reason:  "Forgot to swipe",
	})

	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestHTTPDriver_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "session expired", http.StatusBadGateway)
	}))
	defer srv.Close()

	d := NewHTTPDriver(srv.URL)
	err := d.PerformClockIn(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestHTTPDriver_FetchAttendanceHistory(t *testing.T) {
	day := model.Date{Year: 2024, Month: time.March, Day: 13}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/attendance/history", r.URL.Path)
		assert.Equal(t, "12-Mar-2024", r.URL.Query().Get("start"))
		assert.Equal(t, "14-Mar-2024", r.URL.Query().Get("end"))
		json.NewEncoder(w).Encode(map[model.Date]record.Page{
			day: {BodyText: "No records found."},
		})
	}))
	defer srv.Close()

	d := NewHTTPDriver(srv.URL)
	days, err := d.FetchAttendanceHistory(context.Background(),
		model.Date{Year: 2024, Month: time.March, Day: 12},
		model.Date{Year: 2024, Month: time.March, Day: 14})

	require.NoError(t, err)
	require.Contains(t, days, day)
	assert.Equal(t, "No records found.", days[day].BodyText)
}
