package analyzer

import (
	"time"

	"github.com/lessonkit/lessonkit/models"
	"github.com/lessonkit/lessonkit/pkg/page"
)

// Decision tells the host when to run the next analysis. When Run is
// false nothing is scheduled. A Decision replaces any previously
// scheduled one: the host cancels the old timer (debouncing, not
// queuing).
type Decision struct {
	Run bool
	At  time.Time
}

// Scheduler holds the pure throttle/debounce state between mutation
// events. Analyses never run in parallel with themselves: a pending
// scheduled run is replaced, not stacked, when a new trigger arrives
// first.
type Scheduler struct {
	opts        models.Options
	clock       Clock
	lastRun     time.Time
	hasRun      bool
	pending     bool
	significant int
}

// NewScheduler returns a Scheduler using the injected clock.
func NewScheduler(opts models.Options, clock Clock) *Scheduler {
	return &Scheduler{opts: opts, clock: clock}
}

// OnMutation records one mutation event and returns the (replacing)
// scheduling decision. Reaching the significant-change threshold forces
// re-analysis immediately, bypassing the throttle; otherwise the run is
// deferred until at least AnalysisThrottle after the previous run.
func (s *Scheduler) OnMutation(ev page.MutationEvent) Decision {
	now := s.clock.Now()
	if ev.Significant {
		s.significant++
	}

	if s.significant >= s.opts.DOMChangeThreshold {
		s.pending = true
		return Decision{Run: true, At: now}
	}

	at := now
	if s.hasRun {
		if earliest := s.lastRun.Add(s.opts.AnalysisThrottle); earliest.After(at) {
			at = earliest
		}
	}
	s.pending = true
	return Decision{Run: true, At: at}
}

// MarkRan records that an analysis ran at t, resetting the debounce
// state and the significant-mutation counter.
func (s *Scheduler) MarkRan(t time.Time) {
	s.lastRun = t
	s.hasRun = true
	s.pending = false
	s.significant = 0
}

// Pending reports whether a scheduled run has not fired yet.
func (s *Scheduler) Pending() bool { return s.pending }
