package schedule

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aryaman-sowilo/spine-attendance/internal/core/model"
	"github.com/aryaman-sowilo/spine-attendance/pkg/metrics"
)

// DefaultReminderLead is how far ahead of the clock-out deadline the reminder
// fires.
const DefaultReminderLead = 5 * time.Minute

// DefaultPollInterval is the tick granularity of the polling loop. Minute
// precision is all the workflow needs.
const DefaultPollInterval = time.Minute

// Runner executes one due job. Firing is a call into the external driver or
// notifier; retries belong at that layer, not here. The scheduler's contract
// ends at "job is due".
type Runner func(ctx context.Context, job model.ScheduledJob)

// Scheduler owns the job registry and converts plans into concrete tagged
// jobs for today.
type Scheduler struct {
	registry     *Registry
	reminderLead time.Duration
	pollInterval time.Duration
	now          func() time.Time
}

// Option tweaks a Scheduler.
type Option func(*Scheduler)

// WithReminderLead overrides the reminder lead time.
func WithReminderLead(lead time.Duration) Option {
	return func(s *Scheduler) { s.reminderLead = lead }
}

// WithPollInterval overrides the polling granularity (tests use short ticks).
func WithPollInterval(interval time.Duration) Option {
	return func(s *Scheduler) { s.pollInterval = interval }
}

// WithClock overrides the clock.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// New builds a scheduler around a fresh registry.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		registry:     NewRegistry(),
		reminderLead: DefaultReminderLead,
		pollInterval: DefaultPollInterval,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry exposes the underlying job registry.
func (s *Scheduler) Registry() *Registry {
	return s.registry
}

// RegisterClockOut replaces today's attendance jobs with exactly two: the
// clock-out at the deadline and a reminder one lead ahead of it. Calling it
// again supersedes the previous pair outright.
func (s *Scheduler) RegisterClockOut(clockOut model.TimeOfDay) []model.ScheduledJob {
	jobs := s.registry.Replace(model.TagTodayAttendance, []model.ScheduledJob{
		{Action: model.ActionClockOut, TriggerAt: clockOut},
		{Action: model.ActionClockOutReminder, TriggerAt: clockOut.Add(-s.reminderLead)},
	})
	log.Info().
		Str("clock_out", clockOut.String()).
		Int("jobs", len(jobs)).
		Msg("Registered today's clock-out jobs")
	return jobs
}

// RegisterFullDay replaces today's attendance jobs with a clock-in leg plus
// the clock-out pair. The clock-in leg carries no reminder.
func (s *Scheduler) RegisterFullDay(plan DayPlan) []model.ScheduledJob {
	jobs := s.registry.Replace(model.TagTodayAttendance, []model.ScheduledJob{
		{Action: model.ActionClockIn, TriggerAt: plan.ClockIn},
		{Action: model.ActionClockOut, TriggerAt: plan.ClockOut},
		{Action: model.ActionClockOutReminder, TriggerAt: plan.ClockOut.Add(-s.reminderLead)},
	})
	log.Info().
		Str("clock_in", plan.ClockIn.String()).
		Str("clock_out", plan.ClockOut.String()).
		Msg("Registered full-day attendance jobs")
	return jobs
}

// Run is the cooperative polling loop. Each tick pops the due jobs and fires
// them sequentially; a slow runner delays later jobs in the same tick but
// never corrupts the registry, which is only touched under its lock.
func (s *Scheduler) Run(ctx context.Context, fire Runner) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	log.Info().Dur("interval", s.pollInterval).Msg("Scheduler loop started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Scheduler loop stopping")
			return
		case <-ticker.C:
			s.tick(ctx, fire)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context, fire Runner) {
	metrics.SchedulerTicks.Inc()
	now := model.TimeOfDayOf(s.now())
	for _, job := range s.registry.Due(now) {
		log.Info().
			Str("job_id", job.ID).
			Str("action", string(job.Action)).
			Str("trigger", job.TriggerAt.String()).
			Msg("Job due, firing")
		metrics.JobsFired.WithLabelValues(string(job.Action)).Inc()
		fire(ctx, job)
	}
}
