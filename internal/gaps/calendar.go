package gaps

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aryaman-sowilo/spine-attendance/internal/core/model"
)

// Calendar is the externally supplied work calendar: a holiday set plus the
// weekend rule. It is queried, never mutated, during gap analysis.
type Calendar struct {
	weekend  map[time.Weekday]bool
	holidays map[model.Date]string
}

// NewCalendar builds a calendar with the given weekend days and named
// holidays. A nil or empty weekend defaults to Saturday and Sunday.
func NewCalendar(weekend []time.Weekday, holidays map[model.Date]string) *Calendar {
	if len(weekend) == 0 {
		weekend = []time.Weekday{time.Saturday, time.Sunday}
	}
	w := make(map[time.Weekday]bool, len(weekend))
	for _, d := range weekend {
		w[d] = true
	}
	h := make(map[model.Date]string, len(holidays))
	for d, name := range holidays {
		h[d] = name
	}
	return &Calendar{weekend: w, holidays: h}
}

// IsWeekend reports whether d falls on a weekend day.
func (c *Calendar) IsWeekend(d model.Date) bool {
	return c.weekend[d.Weekday()]
}

// IsHoliday reports whether d is a holiday, and its name when it is.
func (c *Calendar) IsHoliday(d model.Date) (string, bool) {
	name, ok := c.holidays[d]
	return name, ok
}

// IsWorkday reports whether attendance is expected on d.
func (c *Calendar) IsWorkday(d model.Date) bool {
	if c.IsWeekend(d) {
		return false
	}
	_, holiday := c.IsHoliday(d)
	return !holiday
}

// calendarFile is the on-disk YAML shape:
//
//	weekend: [Saturday, Sunday]
//	holidays:
//	  - date: 2024-01-26
//	    name: Republic Day
type calendarFile struct {
	Weekend  []string `yaml:"weekend"`
	Holidays []struct {
		Date string `yaml:"date"`
		Name string `yaml:"name"`
	} `yaml:"holidays"`
}

// LoadCalendar reads a calendar from a YAML file. A missing path yields the
// default calendar (Sat/Sun weekend, no holidays) rather than an error, so a
// fresh deployment works before anyone writes a holiday file.
func LoadCalendar(path string) (*Calendar, error) {
	if path == "" {
		return NewCalendar(nil, nil), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewCalendar(nil, nil), nil
		}
		return nil, fmt.Errorf("reading calendar file: %w", err)
	}

	var file calendarFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing calendar file: %w", err)
	}

	var weekend []time.Weekday
	for _, name := range file.Weekend {
		day, err := parseWeekday(name)
		if err != nil {
			return nil, err
		}
		weekend = append(weekend, day)
	}

	holidays := make(map[model.Date]string, len(file.Holidays))
	for _, h := range file.Holidays {
		t, err := time.Parse("2006-01-02", h.Date)
		if err != nil {
			return nil, fmt.Errorf("parsing holiday date %q: %w", h.Date, err)
		}
		holidays[model.DateOf(t)] = h.Name
	}

	return NewCalendar(weekend, holidays), nil
}

func parseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q in calendar file", name)
}
