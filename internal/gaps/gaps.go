// Package gaps computes which recent workdays are missing attendance and
// cross-references them against swipe applications already on file. Analysis
// is a pure function of its inputs: re-running it on identical inputs yields
// an identical report.
package gaps

import (
	"github.com/aryaman-sowilo/spine-attendance/internal/core/model"
)

// Analyze walks every date in [start, end] inclusive, skips weekends and
// holidays per the calendar, and marks a workday missing when found has no
// entry for it. MatchedSwipes holds the missing dates a swipe is already filed
// for (any approval state); UnmatchedMissing is the exact set difference
// MissingDates minus MatchedSwipes keys, both in descending date order.
func Analyze(start, end model.Date, cal *Calendar, found map[model.Date]bool, swipes []model.SwipeApplication) model.MissingDayReport {
	report := model.MissingDayReport{
		MatchedSwipes: make(map[model.Date]model.SwipeApplication),
	}
	if end.Before(start) {
		return report
	}

	// Collect ascending, then reverse once: most recent gaps matter most.
	var missing []model.Date
	for d := start; !d.After(end); d = d.AddDays(1) {
		if !cal.IsWorkday(d) {
			continue
		}
		if !found[d] {
			missing = append(missing, d)
		}
	}
	for i := len(missing) - 1; i >= 0; i-- {
		report.MissingDates = append(report.MissingDates, missing[i])
	}
	report.TotalMissing = len(report.MissingDates)

	// The first swipe per date wins, matching the portal's newest-first card order.
	swipeByDate := make(map[model.Date]model.SwipeApplication, len(swipes))
	for _, s := range swipes {
		if _, dup := swipeByDate[s.Date]; !dup {
			swipeByDate[s.Date] = s
		}
	}

	for _, d := range report.MissingDates {
		if s, ok := swipeByDate[d]; ok {
			report.MatchedSwipes[d] = s
		} else {
			report.UnmatchedMissing = append(report.UnmatchedMissing, d)
		}
	}

	return report
}

// FoundSet condenses attendance records into the found-date set Analyze
// consumes. Only records with status found count.
func FoundSet(records []model.AttendanceRecord) map[model.Date]bool {
	found := make(map[model.Date]bool, len(records))
	for _, r := range records {
		if r.Status == model.StatusFound {
			found[r.Date] = true
		}
	}
	return found
}
