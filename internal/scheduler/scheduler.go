// internal/scheduler/scheduler.go
//
// Background jobs for the server. The only job evicts sessions whose player
// went away without closing them, so their state is discarded like any
// navigation away from a page.

package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordplay/internal/store"
)

// Janitor periodically sweeps idle sessions out of a store.
type Janitor struct {
	scheduler *gocron.Scheduler
	store     store.Store
	ttl       time.Duration
	interval  time.Duration
}

// New creates a janitor that evicts sessions idle for longer than ttl,
// checking every interval.
func New(st store.Store, ttl, interval time.Duration) *Janitor {
	return &Janitor{
		scheduler: gocron.NewScheduler(time.UTC),
		store:     st,
		ttl:       ttl,
		interval:  interval,
	}
}

// Start schedules the sweep and runs the scheduler in the background.
func (j *Janitor) Start() error {
	if _, err := j.scheduler.Every(j.interval).WaitForSchedule().Do(j.Sweep); err != nil {
		return err
	}
	j.scheduler.StartAsync()
	return nil
}

// Stop terminates the scheduler.
func (j *Janitor) Stop() {
	j.scheduler.Stop()
}

// Sweep runs one eviction pass.
func (j *Janitor) Sweep() {
	n := j.store.Sweep(context.Background(), j.ttl)
	if n > 0 {
		log.Info().Int("evicted", n).Int("live", j.store.Len()).Msg("swept idle sessions")
	}
}
