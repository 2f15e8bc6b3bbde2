package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/aryaman-sowilo/spine-attendance/internal/core/model"
	"github.com/aryaman-sowilo/spine-attendance/internal/schedule"
)

// Notification drafts. These are the canonical fallback texts; the assistant
// may rephrase them but every fact comes from here.

func dayOffMessage(day time.Weekday) string {
	return fmt.Sprintf("Enjoy the %s! I'm on standby if you need anything.", strings.ToLower(day.String()))
}

func completionMessage() string {
	return "Nice work, today's attendance is already complete."
}

func clockOutPlannedMessage(out model.TimeOfDay) string {
	return fmt.Sprintf("Clock-out is set for %s. Let me know if you'd like it adjusted.", out)
}

func morningPlanMessage(plan schedule.DayPlan) string {
	return fmt.Sprintf("Morning! I'll aim for a %s start and %s wrap. Ping me if you need a different plan.",
		plan.ClockIn, plan.ClockOut)
}

func reminderMessage(out model.TimeOfDay) string {
	return fmt.Sprintf("Reminder: clock-out is coming up at %s.", out)
}

func staleDeadlineMessage(clockIn model.TimeOfDay) string {
	return fmt.Sprintf("You clocked in at %s but the computed clock-out has already passed. "+
		"Nothing was scheduled; you may want to clock out manually.", clockIn)
}

func attendanceErrorMessage(errText string) string {
	return fmt.Sprintf("I couldn't read today's attendance page (%s). I'll try again on the next run.", errText)
}

// missingDaysMessage summarizes the gap report. Dates preview at most three
// entries, most recent first.
func missingDaysMessage(report model.MissingDayReport) string {
	var b strings.Builder
	if report.TotalMissing == 1 {
		fmt.Fprintf(&b, "Heads-up: you're missing attendance for %s.", report.MissingDates[0])
	} else {
		fmt.Fprintf(&b, "You're short on %d attendance days.", report.TotalMissing)
	}

	if filed := len(report.MatchedSwipes); filed > 0 {
		fmt.Fprintf(&b, " %d of them already have a swipe application filed.", filed)
	}
	if len(report.UnmatchedMissing) > 0 {
		fmt.Fprintf(&b, " Still needing a swipe: %s.", previewDates(report.UnmatchedMissing))
	}
	return b.String()
}

func previewDates(dates []model.Date) string {
	const maxPreview = 3
	parts := make([]string, 0, maxPreview)
	for i, d := range dates {
		if i == maxPreview {
			parts = append(parts, fmt.Sprintf("and %d more", len(dates)-maxPreview))
			break
		}
		parts = append(parts, d.String())
	}
	return strings.Join(parts, ", ")
}
