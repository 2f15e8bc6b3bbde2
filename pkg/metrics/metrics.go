// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DriverCalls counts calls into the browser-automation driver by
	// operation and outcome.
	DriverCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spine_driver_calls_total",
		Help: "Calls to the automation driver, by operation and outcome.",
	}, []string{"operation", "outcome"})

	// JobsFired counts scheduled jobs that came due, by action.
	JobsFired = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spine_jobs_fired_total",
		Help: "Scheduled jobs fired, by action.",
	}, []string{"action"})

	// SchedulerTicks counts polling loop iterations.
	SchedulerTicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spine_scheduler_ticks_total",
		Help: "Scheduler polling loop ticks.",
	})

	// NotificationsPublished counts outbound notification events, by kind.
	NotificationsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spine_notifications_published_total",
		Help: "Notification events published, by kind.",
	}, []string{"kind"})
)
