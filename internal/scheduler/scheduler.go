// Package scheduler implements the cooperative job table: a fixed set of
// periodic jobs ticked every control cycle in registration order. Jobs must
// not block; a job whose period has not elapsed is a no-op for that cycle.
package scheduler

import "time"

type job struct {
	name    string
	period  time.Duration
	run     func(now time.Time)
	lastRun time.Time
}

type Scheduler struct {
	jobs []*job
}

func New() *Scheduler {
	return &Scheduler{}
}

// Add registers a job. Registration order is execution order within a cycle.
func (s *Scheduler) Add(name string, period time.Duration, run func(now time.Time)) {
	s.jobs = append(s.jobs, &job{name: name, period: period, run: run})
}

// Tick runs every job whose period has elapsed since its own last run. A
// job's first tick always runs it. The job stamps its own clock, so a body
// that takes time eats into its next period rather than shifting it.
func (s *Scheduler) Tick(now time.Time) {
	for _, j := range s.jobs {
		if j.lastRun.IsZero() || now.Sub(j.lastRun) >= j.period {
			j.lastRun = now
			j.run(now)
		}
	}
}
