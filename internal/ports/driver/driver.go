// Package driver is the HTTP port to the browser-automation sidecar that
// operates the HR portal. The core never touches a browser; it talks to this
// interface and the sidecar does the rest.
package driver

import (
	"context"

	"github.com/aryaman-sowilo/spine-attendance/internal/core/model"
	"github.com/aryaman-sowilo/spine-attendance/internal/record"
)

// SwipeRequest is one swipe application to submit through the portal form.
type SwipeRequest struct {
	Date    model.Date      `json:"date"`
	InTime  model.TimeOfDay `json:"inTime"`
	OutTime model.TimeOfDay `json:"outTime"`
	Reason  string          `json:"reason"`
}

// SwipeResult is the sidecar's verdict on one submission.
type SwipeResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Driver contract for the automation sidecar.
type Driver interface {
	// Ping reports whether the sidecar is up and holds a live portal session.
	Ping(ctx context.Context) error
	// FetchTodayAttendance scrapes the attendance page and returns the raw
	// candidate containers plus body text for normalization.
	FetchTodayAttendance(ctx context.Context) (record.Page, error)

	// FetchAttendanceHistory scrapes the attendance register for every date
	// in [start, end], keyed by date. Dates the register has no row for are
	// simply absent.
	FetchAttendanceHistory(ctx context.Context, start, end model.Date) (map[model.Date]record.Page, error)

	// FetchRecentSwipes returns up to limit raw swipe application cards,
	// newest first.
	FetchRecentSwipes(ctx context.Context, limit int) ([]record.Card, error)

	// SubmitSwipe files one swipe application through the portal form.
	SubmitSwipe(ctx context.Context, req SwipeRequest) (SwipeResult, error)

	// PerformClockIn presses the portal's clock-in control.
	PerformClockIn(ctx context.Context) error

	// PerformClockOut presses the portal's clock-out control.
	PerformClockOut(ctx context.Context) error
}
