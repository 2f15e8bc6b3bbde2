package messaging

import "time"

// Notification kinds, used for metrics labels and message routing.
const (
	KindDayOff          = "day_off"
	KindCompletion      = "completion"
	KindClockOutPlanned = "clock_out_planned"
	KindMorningPlan     = "morning_plan"
	KindMissingDays     = "missing_days"
	KindReminder        = "reminder"
	KindWarning         = "warning"
)

// NotificationEvent is the JSON payload sent via SQS to the notify queue.
type NotificationEvent struct {
	Kind       string    `json:"kind"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurredAt"`
}
