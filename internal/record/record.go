// Package record turns scraped page fragments into canonical attendance
// records and swipe applications, and validates outgoing swipe requests
// against the portal's business rules.
package record

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aryaman-sowilo/spine-attendance/internal/core/model"
	"github.com/aryaman-sowilo/spine-attendance/internal/extract"
	"github.com/aryaman-sowilo/spine-attendance/internal/temporal"
)

// Default shift timings used when a swipe request omits explicit times.
var (
	DefaultShiftIn  = model.TimeOfDay{Hour: 9, Minute: 0}
	DefaultShiftOut = model.TimeOfDay{Hour: 18, Minute: 0}
)

// MaxSwipeAgeDays is the portal's hard limit: dates older than this are never
// eligible for correction.
const MaxSwipeAgeDays = 90

// MaxReasonLength is the portal's reason field limit.
const MaxReasonLength = 255

// Container is one candidate element scraped off the attendance page: its
// visible text plus, when the element is a timeline, its inner markup.
type Container struct {
	Selector string `json:"selector,omitempty"`
	Text     string `json:"text"`
	HTML     string `json:"html,omitempty"`
}

// Page is one scrape of the attendance page.
type Page struct {
	Containers []Container `json:"containers"`
	BodyText   string      `json:"bodyText"`
}

// Card is the raw field set of one swipe application list card.
type Card struct {
	DateText        string `json:"dateText"`
	DayText         string `json:"dayText"`
	InTime          string `json:"inTime"`
	OutTime         string `json:"outTime"`
	Reason          string `json:"reason"`
	RequestType     string `json:"requestType"`
	StatusIndicator string `json:"statusIndicator"`
}

// dateIndicators lists the literal renderings of d the portal has been seen
// to use. All comparisons are done lowercase.
func dateIndicators(d model.Date) []string {
	t := d.Time(time.UTC)
	return []string{
		t.Format("02/01/2006"),
		t.Format("02-01-2006"),
		t.Format("2006-01-02"),
		t.Format("02.01.2006"),
		t.Format("01/02/2006"), // US ordering shows up on some screens
		t.Format("2/1/2006"),
		t.Format("2-1-2006"),
		strconv.Itoa(d.Day),
		strconv.Itoa(int(d.Month)),
		strconv.Itoa(d.Year),
		"today",
	}
}

// containerIndicators adds the activity words that mark a container as
// attendance-related even when no date literal is present.
func containerIndicators(d model.Date) []string {
	return append([]string{"in", "out", "clock"}, dateIndicators(d)...)
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

// BuildAttendanceRecord scans one page scrape for today's attendance. Status
// is found only once a time value was extracted; a container that matched an
// indicator but yielded no times downgrades the record to unknown rather than
// found, and a page with no matching container at all is not_found.
func BuildAttendanceRecord(today model.Date, page Page) model.AttendanceRecord {
	rec := model.AttendanceRecord{Date: today, Status: model.StatusNotFound}

	indicators := containerIndicators(today)
	for _, c := range page.Containers {
		if !containsAny(strings.ToLower(c.Text), indicators) {
			continue
		}
		rec.RawText = c.Text
		rec.Status = model.StatusUnknown

		times := extract.ExtractTimes(c.Text)
		if c.HTML != "" {
			if tl := extract.ExtractTimeline(c.HTML); !tl.Empty() {
				// The structured timeline supersedes the text pass wholesale.
				times = tl
			}
		}
		if applyTimes(&rec, times) {
			rec.Status = model.StatusFound
			return rec
		}
	}

	if rec.Status == model.StatusNotFound && page.BodyText != "" {
		if containsAny(strings.ToLower(page.BodyText), dateIndicators(today)) {
			rec.RawText = page.BodyText
			rec.Status = model.StatusUnknown
			if applyTimes(&rec, extract.ExtractTimes(page.BodyText)) {
				rec.Status = model.StatusFound
			}
		}
	}

	return rec
}

func applyTimes(rec *model.AttendanceRecord, times extract.Times) bool {
	if times.Empty() {
		return false
	}
	if times.Source == extract.SourceHeuristic {
		log.Warn().Str("date", rec.Date.String()).Msg("Attendance times came from the earliest/latest fallback")
	}
	rec.ClockIn = times.ClockIn
	rec.ClockOut = times.ClockOut
	return true
}

// ErrorRecord wraps a failed page read as a record instead of an error so the
// orchestrator can always produce a user-facing message.
func ErrorRecord(today model.Date, err error) model.AttendanceRecord {
	return model.AttendanceRecord{Date: today, Status: model.StatusError, Err: err.Error()}
}

// BuildSwipeApplication normalizes one list card. A card whose date field does
// not parse is skipped, not an error: the portal renders placeholder cards.
func BuildSwipeApplication(card Card) (model.SwipeApplication, bool) {
	date, ok := temporal.ParseDate(card.DateText)
	if !ok {
		return model.SwipeApplication{}, false
	}

	app := model.SwipeApplication{
		Date:            date,
		DateRaw:         strings.TrimSpace(card.DateText),
		Weekday:         strings.TrimSpace(card.DayText),
		Reason:          strings.TrimSpace(card.Reason),
		RequestType:     strings.TrimSpace(card.RequestType),
		StatusIndicator: strings.TrimSpace(card.StatusIndicator),
	}
	if t, ok := temporal.ParseTime(card.InTime); ok {
		app.InTime = &t
	}
	if t, ok := temporal.ParseTime(card.OutTime); ok {
		app.OutTime = &t
	}
	return app, true
}

// ValidationError collects every rule a swipe request broke.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid swipe request: " + strings.Join(e.Problems, "; ")
}

// ValidateSwipeRequest enforces the portal's rules before any driver call is
// attempted: no future dates, nothing older than 90 days, and a non-empty
// reason within the field limit.
func ValidateSwipeRequest(swipeDate, today model.Date, reason string) error {
	var problems []string

	if swipeDate.After(today) {
		problems = append(problems, "cannot create swipe for future dates")
	} else if swipeDate.Before(today.AddDays(-MaxSwipeAgeDays)) {
		problems = append(problems, "cannot create swipe for dates older than 90 days")
	}

	if strings.TrimSpace(reason) == "" {
		problems = append(problems, "reason cannot be empty")
	} else if len(reason) > MaxReasonLength {
		problems = append(problems, "reason too long (max 255 characters)")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
