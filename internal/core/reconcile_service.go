// Package core holds the reconciliation orchestrator: the service that reads
// today's attendance, reviews recent gaps, and plans today's clock-in and
// clock-out jobs. All state it acts on is recomputed from scratch each run;
// the portal stays authoritative.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aryaman-sowilo/spine-attendance/internal/assistant"
	"github.com/aryaman-sowilo/spine-attendance/internal/core/model"
	"github.com/aryaman-sowilo/spine-attendance/internal/gaps"
	"github.com/aryaman-sowilo/spine-attendance/internal/ports/driver"
	"github.com/aryaman-sowilo/spine-attendance/internal/ports/messaging"
	"github.com/aryaman-sowilo/spine-attendance/internal/record"
	"github.com/aryaman-sowilo/spine-attendance/internal/schedule"
)

// Driver call deadlines. The scheduler tick path never waits on these; driver
// calls happen only from reconciliation runs and trigger endpoints.
const (
	attendanceCheckTimeout = 60 * time.Second
	gapScanTimeout         = 90 * time.Second
	pingTimeout            = 5 * time.Second
)

// Defaults for the gap review.
const (
	DefaultGapScanDays     = 30
	DefaultSwipeFetchLimit = 50
	DefaultRecentLimit     = 20
)

// ReconcileService wires the driver, the scheduler and the notification
// pipeline into the daily attendance workflow.
type ReconcileService struct {
	driver    driver.Driver
	notifier  messaging.Notifier
	scheduler *schedule.Scheduler
	planner   *schedule.Planner
	composer  assistant.Generator
	calendar  *gaps.Calendar
	now       func() time.Time

	gapScanDays     int
	swipeFetchLimit int
}

// ServiceOption tweaks a ReconcileService.
type ServiceOption func(*ReconcileService)

// WithClock overrides the clock, for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *ReconcileService) { s.now = now }
}

// WithGapScanDays overrides how far back the gap review looks.
func WithGapScanDays(days int) ServiceOption {
	return func(s *ReconcileService) { s.gapScanDays = days }
}

// WithSwipeFetchLimit overrides how many swipe cards the gap review pulls.
func WithSwipeFetchLimit(limit int) ServiceOption {
	return func(s *ReconcileService) { s.swipeFetchLimit = limit }
}

// NewReconcileService creates the orchestrator with its collaborators wired.
func NewReconcileService(
	drv driver.Driver,
	notifier messaging.Notifier,
	scheduler *schedule.Scheduler,
	planner *schedule.Planner,
	composer assistant.Generator,
	calendar *gaps.Calendar,
	opts ...ServiceOption,
) *ReconcileService {
	s := &ReconcileService{
		driver:          drv,
		notifier:        notifier,
		scheduler:       scheduler,
		planner:         planner,
		composer:        composer,
		calendar:        calendar,
		now:             time.Now,
		gapScanDays:     DefaultGapScanDays,
		swipeFetchLimit: DefaultSwipeFetchLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// notify composes and publishes one notification. Delivery problems are
// logged, never propagated: a failed message must not abort a reconciliation.
func (s *ReconcileService) notify(ctx context.Context, kind, draft string) {
	message := s.composer.Compose(ctx, kind, draft)
	event := messaging.NotificationEvent{
		Kind:       kind,
		Message:    message,
		OccurredAt: s.now(),
	}
	if err := s.notifier.PublishNotification(ctx, event); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("kind", kind).Msg("Failed to publish notification")
	}
}

// CheckAttendance scrapes and normalizes today's attendance. A driver failure
// comes back as a status=error record, never as a Go error: callers always
// get something they can report on.
func (s *ReconcileService) CheckAttendance(ctx context.Context) model.AttendanceRecord {
	ctx, cancel := context.WithTimeout(ctx, attendanceCheckTimeout)
	defer cancel()

	today := model.DateOf(s.now())
	page, err := s.driver.FetchTodayAttendance(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Attendance page fetch failed")
		return record.ErrorRecord(today, err)
	}
	return record.BuildAttendanceRecord(today, page)
}

// ReviewMissingAttendance runs the gap analysis over the trailing window:
// yesterday back through gapScanDays before that, cross-referenced against
// the most recent swipe applications.
func (s *ReconcileService) ReviewMissingAttendance(ctx context.Context) (model.MissingDayReport, error) {
	ctx, cancel := context.WithTimeout(ctx, gapScanTimeout)
	defer cancel()

	end := model.DateOf(s.now()).AddDays(-1)
	start := end.AddDays(-s.gapScanDays)

	days, err := s.driver.FetchAttendanceHistory(ctx, start, end)
	if err != nil {
		return model.MissingDayReport{}, fmt.Errorf("failed to fetch attendance history: %w", err)
	}
	records := make([]model.AttendanceRecord, 0, len(days))
	for date, page := range days {
		records = append(records, record.BuildAttendanceRecord(date, page))
	}

	swipes, err := s.RecentSwipes(ctx, s.swipeFetchLimit)
	if err != nil {
		return model.MissingDayReport{}, fmt.Errorf("failed to fetch swipe applications: %w", err)
	}

	return gaps.Analyze(start, end, s.calendar, gaps.FoundSet(records), swipes), nil
}

// RunDailyReconciliation is the morning entry point: skip-day check, today's
// attendance state machine, then the missing-day review. Each invocation
// recomputes everything; re-running is always safe.
func (s *ReconcileService) RunDailyReconciliation(ctx context.Context) error {
	today := model.DateOf(s.now())

	if !s.calendar.IsWorkday(today) {
		log.Ctx(ctx).Info().Str("date", today.String()).Msg("Not a workday, standing down")
		s.notify(ctx, messaging.KindDayOff, dayOffMessage(today.Weekday()))
		return nil
	}

	rec := s.CheckAttendance(ctx)
	if rec.Status == model.StatusError {
		s.notify(ctx, messaging.KindWarning, attendanceErrorMessage(rec.Err))
		return errors.New(rec.Err)
	}

	s.planToday(ctx, rec)

	report, err := s.ReviewMissingAttendance(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Missing attendance review failed")
		return err
	}
	if report.TotalMissing > 0 {
		s.notify(ctx, messaging.KindMissingDays, missingDaysMessage(report))
	}
	return nil
}

// planToday applies the state machine to today's record. Completed days need
// nothing; an in-progress day gets its clock-out pair; an untouched day gets
// the full plan.
func (s *ReconcileService) planToday(ctx context.Context, rec model.AttendanceRecord) {
	switch {
	case rec.HasClockOut():
		log.Ctx(ctx).Info().Msg("Attendance already complete")
		s.notify(ctx, messaging.KindCompletion, completionMessage())

	case rec.HasClockIn():
		out, err := s.planner.PlanClockOutFrom(*rec.ClockIn)
		if errors.Is(err, schedule.ErrDeadlinePassed) {
			log.Ctx(ctx).Warn().Str("clock_in", rec.ClockIn.String()).Msg("Computed clock-out already passed")
			s.notify(ctx, messaging.KindWarning, staleDeadlineMessage(*rec.ClockIn))
			return
		}
		s.scheduler.RegisterClockOut(out)
		s.notify(ctx, messaging.KindClockOutPlanned, clockOutPlannedMessage(out))

	default:
		plan := s.planner.PlanFullDay()
		s.scheduler.RegisterFullDay(plan)
		s.notify(ctx, messaging.KindMorningPlan, morningPlanMessage(plan))
	}
}

// ExecuteJob is the scheduler's runner: it performs the portal action a due
// job stands for.
func (s *ReconcileService) ExecuteJob(ctx context.Context, job model.ScheduledJob) {
	switch job.Action {
	case model.ActionClockIn:
		if err := s.driver.PerformClockIn(ctx); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("Scheduled clock-in failed")
			s.notify(ctx, messaging.KindWarning, fmt.Sprintf("Scheduled clock-in failed: %v. Please clock in manually.", err))
		}

	case model.ActionClockOut:
		if err := s.driver.PerformClockOut(ctx); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("Scheduled clock-out failed")
			s.notify(ctx, messaging.KindWarning, fmt.Sprintf("Scheduled clock-out failed: %v. Please clock out manually.", err))
			return
		}
		s.notify(ctx, messaging.KindCompletion, completionMessage())

	case model.ActionClockOutReminder:
		out := job.TriggerAt
		for _, pending := range s.scheduler.Registry().Jobs(model.TagTodayAttendance) {
			if pending.Action == model.ActionClockOut {
				out = pending.TriggerAt
				break
			}
		}
		s.notify(ctx, messaging.KindReminder, reminderMessage(out))

	default:
		log.Ctx(ctx).Error().Str("action", string(job.Action)).Msg("Unknown job action")
	}
}

// ClockIn presses the portal clock-in control immediately.
func (s *ReconcileService) ClockIn(ctx context.Context) error {
	return s.driver.PerformClockIn(ctx)
}

// ClockOut presses the portal clock-out control immediately.
func (s *ReconcileService) ClockOut(ctx context.Context) error {
	return s.driver.PerformClockOut(ctx)
}

// RecentSwipes fetches and normalizes the latest swipe application cards.
// Cards whose date does not parse are dropped.
func (s *ReconcileService) RecentSwipes(ctx context.Context, limit int) ([]model.SwipeApplication, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	cards, err := s.driver.FetchRecentSwipes(ctx, limit)
	if err != nil {
		return nil, err
	}
	apps := make([]model.SwipeApplication, 0, len(cards))
	for _, card := range cards {
		if app, ok := record.BuildSwipeApplication(card); ok {
			apps = append(apps, app)
		}
	}
	return apps, nil
}
