// Package schedule holds the in-memory job registry and the planning logic
// that turns a clock-in time into today's clock-out and reminder jobs.
package schedule

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/aryaman-sowilo/spine-attendance/internal/core/model"
)

// Registry is the scheduler's only shared mutable state: the set of pending
// jobs. Replacing a tag's jobs happens under one lock acquisition, so the
// polling loop can never observe a partially cleared set.
type Registry struct {
	mu   sync.Mutex
	jobs []model.ScheduledJob
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers a single job. The ID is assigned here.
func (r *Registry) Add(job model.ScheduledJob) model.ScheduledJob {
	job.ID = uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, job)
	return job
}

// Clear cancels every pending job carrying the tag and reports how many were
// removed. In-flight executions are not interrupted.
func (r *Registry) Clear(tag string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clearLocked(tag)
}

func (r *Registry) clearLocked(tag string) int {
	kept := r.jobs[:0]
	removed := 0
	for _, j := range r.jobs {
		if j.Tag == tag {
			removed++
			continue
		}
		kept = append(kept, j)
	}
	r.jobs = kept
	return removed
}

// Replace atomically swaps every job under tag for the given replacements.
// This is the idempotent re-planning primitive: calling it twice leaves
// exactly the second call's jobs, never duplicates.
func (r *Registry) Replace(tag string, jobs []model.ScheduledJob) []model.ScheduledJob {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked(tag)
	added := make([]model.ScheduledJob, 0, len(jobs))
	for _, j := range jobs {
		j.Tag = tag
		j.ID = uuid.NewString()
		r.jobs = append(r.jobs, j)
		added = append(added, j)
	}
	return added
}

// Due removes and returns every job whose trigger time is at or before now,
// ordered by trigger time.
func (r *Registry) Due(now model.TimeOfDay) []model.ScheduledJob {
	r.mu.Lock()
	defer r.mu.Unlock()

	var due []model.ScheduledJob
	kept := r.jobs[:0]
	for _, j := range r.jobs {
		if !j.TriggerAt.After(now) {
			due = append(due, j)
		} else {
			kept = append(kept, j)
		}
	}
	r.jobs = kept
	sort.Slice(due, func(i, k int) bool { return due[i].TriggerAt.Before(due[k].TriggerAt) })
	return due
}

// Jobs returns a snapshot of the pending jobs under tag, ordered by trigger
// time. An empty tag snapshots everything.
func (r *Registry) Jobs(tag string) []model.ScheduledJob {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []model.ScheduledJob
	for _, j := range r.jobs {
		if tag == "" || j.Tag == tag {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].TriggerAt.Before(out[k].TriggerAt) })
	return out
}

// Len reports the number of pending jobs across all tags.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.jobs)
}
