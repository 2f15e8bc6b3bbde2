package schedule

import (
	"errors"
	"math/rand"
	"time"

	"github.com/aryaman-sowilo/spine-attendance/internal/core/model"
)

// Work duration bounds in minutes: 9.0 to 9.5 hours, inclusive on both ends.
const (
	minWorkMinutes = 540
	maxWorkMinutes = 570
)

// Clock-in for a freshly planned day lands between baseClockIn and
// baseClockIn plus clockInJitterMinutes.
var baseClockIn = model.TimeOfDay{Hour: 9, Minute: 0}

const clockInJitterMinutes = 30

// ErrDeadlinePassed is returned when a computed clock-out is not strictly
// after the current time; the plan is stale and no job may be scheduled.
var ErrDeadlinePassed = errors.New("clock-out deadline has already passed")

// DayPlan is a generated attendance plan for a day not yet started.
type DayPlan struct {
	ClockIn  model.TimeOfDay `json:"clockIn"`
	ClockOut model.TimeOfDay `json:"clockOut"`
}

// Planner computes today's clock-out deadline. The clock and the random
// source are injected so tests can pin deterministic output.
type Planner struct {
	now  func() time.Time
	intn func(n int) int
}

// NewPlanner builds a planner on the real clock and a fresh random source.
func NewPlanner() *Planner {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Planner{now: time.Now, intn: rng.Intn}
}

// NewPlannerWith builds a planner with an explicit clock and random intn,
// for deterministic tests.
func NewPlannerWith(now func() time.Time, intn func(n int) int) *Planner {
	return &Planner{now: now, intn: intn}
}

// workDuration draws a uniformly random shift length in [540, 570] minutes.
func (p *Planner) workDuration() time.Duration {
	minutes := minWorkMinutes + p.intn(maxWorkMinutes-minWorkMinutes+1)
	return time.Duration(minutes) * time.Minute
}

// PlanClockOutFrom derives the clock-out deadline from an actual clock-in
// time. A result that is not strictly in the future is rejected with
// ErrDeadlinePassed so the caller can report a stale plan instead of
// scheduling a job that would fire immediately.
func (p *Planner) PlanClockOutFrom(actualClockIn model.TimeOfDay) (model.TimeOfDay, error) {
	clockOut := actualClockIn.Add(p.workDuration())
	now := model.TimeOfDayOf(p.now())
	if !clockOut.After(now) {
		return model.TimeOfDay{}, ErrDeadlinePassed
	}
	return clockOut, nil
}

// PlanFullDay generates a plan for a day with no attendance yet: a jittered
// morning clock-in and a clock-out one shift length later.
func (p *Planner) PlanFullDay() DayPlan {
	clockIn := baseClockIn.Add(time.Duration(p.intn(clockInJitterMinutes+1)) * time.Minute)
	return DayPlan{
		ClockIn:  clockIn,
		ClockOut: clockIn.Add(p.workDuration()),
	}
}
