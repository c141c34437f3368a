package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/chethan059/compliment-generator/internal/domain"
)

// DeliverFunc hands a selected compliment to the delivery dispatcher.
// Dispatch is best-effort: failures are the dispatcher's concern and never
// reach back into the engine.
type DeliverFunc func(domain.Compliment)

// Scheduler evaluates recurring schedules against wall-clock time. It holds
// no state between ticks: everything it needs is passed in, and the refreshed
// schedule set is returned for the caller to persist.
type Scheduler struct {
	log   *zap.Logger
	dedup time.Duration
}

// NewScheduler creates a schedule engine. dedup is the repeat-fire guard
// window; zero falls back to one minute.
func NewScheduler(log *zap.Logger, dedup time.Duration) *Scheduler {
	if dedup <= 0 {
		dedup = time.Minute
	}
	return &Scheduler{log: log, dedup: dedup}
}

// Tick evaluates every schedule once against now and returns the full set
// with refreshed LastTriggered markers. For each active schedule covering
// now's weekday whose HH:MM matches the current minute:
//
//   - skip if it already fired within the de-dup window (the 30s poll
//     cadence visits each minute twice);
//   - draw a compliment for its category; an empty pool is a silent skip;
//   - otherwise deliver and stamp LastTriggered = now.
//
// Schedules are visited in input order, so deliveries within one tick are
// deterministic. The input slice is never mutated.
func (e *Scheduler) Tick(schedules []domain.Schedule, pool []domain.Compliment, now time.Time, deliver DeliverFunc) []domain.Schedule {
	out := make([]domain.Schedule, len(schedules))
	copy(out, schedules)

	cutoff := now.Add(-e.dedup)
	for i := range out {
		s := &out[i]
		if !s.Active || !s.IsDue(now) {
			continue
		}
		if s.LastTriggered != nil && !s.LastTriggered.Before(cutoff) {
			// Already fired this minute.
			continue
		}

		c := Pick(pool, s.Category)
		if c == nil {
			e.log.Debug("no compliment available for schedule",
				zap.String("schedule_id", s.ID),
				zap.String("category", string(s.Category)),
			)
			continue
		}

		deliver(*c)
		fired := now
		s.LastTriggered = &fired
		e.log.Info("schedule fired",
			zap.String("schedule_id", s.ID),
			zap.String("compliment_id", c.ID),
		)
	}
	return out
}
