package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/aryaman-sowilo/spine-attendance/internal/core/model"
	"github.com/aryaman-sowilo/spine-attendance/internal/record"
	"github.com/aryaman-sowilo/spine-attendance/pkg/metrics"
)

// HTTPDriver talks to the sidecar over plain JSON HTTP. All calls run through
// a circuit breaker so a wedged browser session does not get hammered with
// requests it cannot serve.
type HTTPDriver struct {
	client  *http.Client
	baseURL string
	cb      *gobreaker.CircuitBreaker
}

// NewHTTPDriver builds the driver client. The per-request deadline comes from
// the caller's context; the transport timeout here is only a backstop.
func NewHTTPDriver(baseURL string) *HTTPDriver {
	settings := gobreaker.Settings{
		Name:        "Automation-Driver",
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Trip if failure rate is bigger then 50% after at least 10 requests
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.5
		},
	}

	return &HTTPDriver{
		client: &http.Client{
			Timeout:   120 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: baseURL,
		cb:      gobreaker.NewCircuitBreaker(settings),
	}
}

// do runs one sidecar call through the breaker, decoding the JSON response
// into out when out is non-nil.
func (d *HTTPDriver) do(ctx context.Context, operation, method, path string, body, out any) error {
	_, err := d.cb.Execute(func() (interface{}, error) {
		return nil, d.roundTrip(ctx, method, path, body, out)
	})
	if err != nil {
		metrics.DriverCalls.WithLabelValues(operation, "error").Inc()
		return err
	}
	metrics.DriverCalls.WithLabelValues(operation, "success").Inc()
	return nil
}

func (d *HTTPDriver) roundTrip(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal driver payload: %w", err)
		}
		reader = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, d.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create driver request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call driver: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("driver returned non-successful status code: %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode driver response: %w", err)
		}
	}
	return nil
}

// Ping checks the sidecar's health endpoint.
func (d *HTTPDriver) Ping(ctx context.Context) error {
	return d.do(ctx, "ping", http.MethodGet, "/health", nil, nil)
}

// FetchTodayAttendance scrapes the attendance page.
func (d *HTTPDriver) FetchTodayAttendance(ctx context.Context) (record.Page, error) {
	var page record.Page
	if err := d.do(ctx, "fetch_attendance", http.MethodGet, "/attendance/today", nil, &page); err != nil {
		return record.Page{}, err
	}
	return page, nil
}

// FetchAttendanceHistory scrapes the attendance register for a date range.
func (d *HTTPDriver) FetchAttendanceHistory(ctx context.Context, start, end model.Date) (map[model.Date]record.Page, error) {
	var days map[model.Date]record.Page
	path := "/attendance/history?start=" + url.QueryEscape(start.String()) + "&end=" + url.QueryEscape(end.String())
	if err := d.do(ctx, "fetch_history", http.MethodGet, path, nil, &days); err != nil {
		return nil, err
	}
	return days, nil
}

// FetchRecentSwipes lists the most recent swipe application cards.
func (d *HTTPDriver) FetchRecentSwipes(ctx context.Context, limit int) ([]record.Card, error) {
	var cards []record.Card
	path := "/swipes/recent?limit=" + url.QueryEscape(strconv.Itoa(limit))
	if err := d.do(ctx, "fetch_swipes", http.MethodGet, path, nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// SubmitSwipe files one swipe application.
func (d *HTTPDriver) SubmitSwipe(ctx context.Context, swipe SwipeRequest) (SwipeResult, error) {
	var result SwipeResult
	if err := d.do(ctx, "submit_swipe", http.MethodPost, "/swipes", swipe, &result); err != nil {
		return SwipeResult{}, err
	}
	return result, nil
}

// PerformClockIn presses the clock-in control.
func (d *HTTPDriver) PerformClockIn(ctx context.Context) error {
	return d.do(ctx, "clock_in", http.MethodPost, "/clock-in", nil, nil)
}

// PerformClockOut presses the clock-out control.
func (d *HTTPDriver) PerformClockOut(ctx context.Context) error {
	return d.do(ctx, "clock_out", http.MethodPost, "/clock-out", nil, nil)
}
