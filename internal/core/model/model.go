package model

import (
	"fmt"
	"time"
)

// RecordStatus defines the outcome of a single attendance page scrape.
type RecordStatus string

const (
	StatusFound    RecordStatus = "found"
	StatusNotFound RecordStatus = "not_found"
	StatusUnknown  RecordStatus = "unknown"
	StatusError    RecordStatus = "error"
)

// Date is a calendar date without a time component. It is comparable and
// usable as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Time returns the midnight instant of the date in the given location.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time(time.UTC).AddDate(0, 0, n))
}

// Weekday reports the day of the week.
func (d Date) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return other.Before(d)
}

// String formats the date the way the HR portal displays it, e.g. "05-Mar-2024".
func (d Date) String() string {
	return d.Time(time.UTC).Format("02-Jan-2006")
}

// FormValue formats the date for the swipe form, e.g. "05-Mar-24".
func (d Date) FormValue() string {
	return d.Time(time.UTC).Format("02-Jan-06")
}

// MarshalText renders the date in portal display format, which also lets the
// date serve as a JSON map key.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses the portal display format.
func (d *Date) UnmarshalText(text []byte) error {
	t, err := time.Parse("2-Jan-2006", string(text))
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", text, err)
	}
	*d = DateOf(t)
	return nil
}

// TimeOfDay is a wall-clock time with no date or timezone attached.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// TimeOfDayOf extracts the wall-clock portion of t.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// At anchors the time of day to a concrete date and location.
func (t TimeOfDay) At(d Date, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, t.Second, 0, loc)
}

func (t TimeOfDay) seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// Before reports whether t is strictly earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.seconds() < other.seconds()
}

// After reports whether t is strictly later in the day than other.
func (t TimeOfDay) After(other TimeOfDay) bool {
	return other.Before(t)
}

// Add shifts the time of day by d, wrapping around midnight.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	total := (time.Duration(t.seconds())*time.Second + d) % (24 * time.Hour)
	if total < 0 {
		total += 24 * time.Hour
	}
	s := int(total / time.Second)
	return TimeOfDay{Hour: s / 3600, Minute: s % 3600 / 60, Second: s % 60}
}

// String formats the time as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MarshalText renders the time as HH:MM, or HH:MM:SS when seconds matter.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	if t.Second != 0 {
		return []byte(fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)), nil
	}
	return []byte(t.String()), nil
}

// UnmarshalText parses HH:MM or HH:MM:SS.
func (t *TimeOfDay) UnmarshalText(text []byte) error {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if parsed, err := time.Parse(layout, string(text)); err == nil {
			*t = TimeOfDayOf(parsed)
			return nil
		}
	}
	return fmt.Errorf("invalid time of day %q", text)
}

// AttendanceRecord is what one scrape of the attendance page produced for a
// single calendar date. Records are immutable; a fresh scrape supersedes the
// previous record rather than mutating it.
type AttendanceRecord struct {
	Date     Date         `json:"date"`
	ClockIn  *TimeOfDay   `json:"clockInTime,omitempty"`
	ClockOut *TimeOfDay   `json:"clockOutTime,omitempty"`
	Status   RecordStatus `json:"status"`
	RawText  string       `json:"rawText,omitempty"`
	Err      string       `json:"error,omitempty"`
}

// HasClockIn reports whether a clock-in time was recorded.
func (r AttendanceRecord) HasClockIn() bool { return r.ClockIn != nil }

// HasClockOut reports whether a clock-out time was recorded.
func (r AttendanceRecord) HasClockOut() bool { return r.ClockOut != nil }

// SwipeApplication is a correction request already filed on the portal. The
// portal remains authoritative; we only hold a page's worth per run.
type SwipeApplication struct {
	Date            Date       `json:"date"`
	DateRaw         string     `json:"dateRaw"`
	Weekday         string     `json:"weekday,omitempty"`
	InTime          *TimeOfDay `json:"inTime,omitempty"`
	OutTime         *TimeOfDay `json:"outTime,omitempty"`
	Reason          string     `json:"reason,omitempty"`
	RequestType     string     `json:"requestType,omitempty"`
	StatusIndicator string     `json:"statusIndicator,omitempty"`
}

// MissingDayReport is the result of one gap analysis run. It is derived,
// recomputed each run, and never persisted.
type MissingDayReport struct {
	TotalMissing     int                       `json:"totalMissing"`
	MissingDates     []Date                    `json:"missingDates"`     // descending
	MatchedSwipes    map[Date]SwipeApplication `json:"matchedSwipes"`    // missing days with a swipe on file
	UnmatchedMissing []Date                    `json:"unmatchedMissing"` // descending, missingDates minus matched keys
}

// JobAction identifies what a scheduled job does when it fires.
type JobAction string

const (
	ActionClockIn          JobAction = "clock_in"
	ActionClockOut         JobAction = "clock_out"
	ActionClockOutReminder JobAction = "clock_out_reminder"
)

// TagTodayAttendance groups all of today's attendance jobs so they can be
// cleared and replaced as one unit.
const TagTodayAttendance = "today_attendance"

// ScheduledJob is a pending timed action held by the scheduler.
type ScheduledJob struct {
	ID        string    `json:"id"`
	Tag       string    `json:"tag"`
	Action    JobAction `json:"action"`
	TriggerAt TimeOfDay `json:"triggerTime"`
}
