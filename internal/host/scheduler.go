// Package host drives the messaging runtime from the embedding
// application's side. The Scheduler owns the periodic tick that drains
// every registered mailbox; embedders with their own frame loop can skip
// Start and call Tick directly once per frame.
package host

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/troupelabs/troupe/internal/actors"
	"github.com/troupelabs/troupe/internal/logging"
)

// defaultTickInterval is the default delay between drain passes.
const defaultTickInterval = 100 * time.Millisecond

// Scheduler periodically drains all mailboxes in a registry.
type Scheduler struct {
	registry *actors.Registry
	log      *logging.Logger

	mu       sync.Mutex
	interval time.Duration
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithTickInterval sets the delay between drain passes.
// Non-positive values are ignored.
func WithTickInterval(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithSchedulerLogger attaches a logger to the scheduler.
func WithSchedulerLogger(log *logging.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if log != nil {
			s.log = log
		}
	}
}

// NewScheduler creates a scheduler for the given registry.
func NewScheduler(registry *actors.Registry, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		registry: registry,
		log:      logging.NopLogger(),
		interval: defaultTickInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetInterval changes the delay between drain passes. Takes effect after
// the tick currently being waited on. Non-positive values are ignored.
func (s *Scheduler) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	s.mu.Lock()
	s.interval = d
	s.mu.Unlock()
}

// Interval returns the current delay between drain passes.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// Tick runs a single drain pass over all registered mailboxes.
func (s *Scheduler) Tick() {
	s.registry.DrainAll()
}

// Start launches the tick loop in a separate goroutine and returns a cancel
// function that stops it and waits for the in-flight pass to finish.
// Drain work happens on the scheduler goroutine, one pass at a time; no
// mailbox is ever drained concurrently with itself.
func (s *Scheduler) Start() (cancel func()) {
	var stopped atomic.Bool
	var wg sync.WaitGroup

	s.log.Info("scheduler started", "interval", s.Interval())

	wg.Go(func() {
		for !stopped.Load() {
			time.Sleep(s.Interval())
			if stopped.Load() {
				return
			}
			s.Tick()
		}
	})

	return func() {
		stopped.Store(true)
		wg.Wait()
		s.log.Info("scheduler stopped")
	}
}
