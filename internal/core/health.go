package core

import (
	"context"
	"time"

	"github.com/aryaman-sowilo/spine-attendance/internal/core/model"
)

// Health is the daily health check summary.
type Health struct {
	DriverOK    bool                 `json:"driverOk"`
	DriverError string               `json:"driverError,omitempty"`
	PendingJobs int                  `json:"pendingJobs"`
	Jobs        []model.ScheduledJob `json:"jobs,omitempty"`
	CheckedAt   time.Time            `json:"checkedAt"`
}

// HealthCheck pings the driver and counts today's registered jobs.
func (s *ReconcileService) HealthCheck(ctx context.Context) Health {
	h := Health{CheckedAt: s.now()}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.driver.Ping(pingCtx); err != nil {
		h.DriverError = err.Error()
	} else {
		h.DriverOK = true
	}

	h.Jobs = s.scheduler.Registry().Jobs(model.TagTodayAttendance)
	h.PendingJobs = len(h.Jobs)
	return h
}
