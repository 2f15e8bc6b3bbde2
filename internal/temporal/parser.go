// Package temporal converts free-text date and time fragments from the HR
// portal into typed values. Parsing never fails with an error; an input that
// matches no accepted format is a normal, reportable outcome.
package temporal

import (
	"strings"
	"time"

	"github.com/aryaman-sowilo/spine-attendance/internal/core/model"
)

// dateLayouts is the accepted date format chain, tried in order. First
// successful parse wins. Day-before-month layouts come before the
// month-before-day ISO form, which is the only ambiguity resolution applied.
var dateLayouts = []string{
	"2-Jan-2006",
	"2-Jan-06",
	"2/1/2006",
	"2/1/06",
	"2-1-2006",
	"2-1-06",
	"2.1.2006",
	"2006-1-2",
	"2 Jan 2006",
	"2 January 2006",
}

// timeLayouts is the accepted time format chain, 24-hour forms first.
var timeLayouts = []string{
	"15:04:05",
	"15:04",
	"15.04",
	"3:04:05 PM",
	"3:04 PM",
	"3:04:05PM",
	"3:04PM",
}

// ParseDate tries each accepted date layout against text. The second return
// value is false when no layout matches.
func ParseDate(text string) (model.Date, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return model.Date{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return model.DateOf(t), true
		}
	}
	return model.Date{}, false
}

// ParseTime tries each accepted time layout against text. Meridiem suffixes
// are matched case-insensitively, as the portal renders them inconsistently.
func ParseTime(text string) (model.TimeOfDay, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return model.TimeOfDay{}, false
	}
	upper := strings.ToUpper(trimmed)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, upper); err == nil {
			return model.TimeOfDayOf(t), true
		}
	}
	return model.TimeOfDay{}, false
}
