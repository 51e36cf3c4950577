// Package gametest provides test helpers for code driving the game engines.
package gametest

import (
	"sort"
	"sync"
	"time"
)

type task struct {
	at time.Duration
	fn func()
}

// ManualScheduler is a game.Scheduler whose tasks only run when Advance moves
// its clock past their deadline.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	tasks []task
}

// AfterFunc implements game.Scheduler.
func (m *ManualScheduler) AfterFunc(d time.Duration, f func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = append(m.tasks, task{at: m.now + d, fn: f})
}

// Advance moves the clock forward by d and runs every task that became due,
// in deadline order, on the calling goroutine.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	var due, rest []task
	for _, t := range m.tasks {
		if t.at <= m.now {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	m.tasks = rest
	m.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.fn()
	}
}

// Pending returns the number of tasks not yet run.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}
