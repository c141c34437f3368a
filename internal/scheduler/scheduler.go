// Package scheduler runs the periodic tick loop: every interval it reads the
// current schedules, catalog and markers from the store, lets the pure
// engines decide what fires, dispatches through the notifier and persists
// the refreshed markers. The engines never touch storage; this loop is the
// single writer for the de-dup markers.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/chethan059/compliment-generator/internal/domain"
	"github.com/chethan059/compliment-generator/internal/engine"
	"github.com/chethan059/compliment-generator/internal/metrics"
	"github.com/chethan059/compliment-generator/internal/notify"
	"github.com/chethan059/compliment-generator/internal/store"
)

// Runner drives both engines off one ticker.
type Runner struct {
	repo      store.Repo
	log       *zap.Logger
	notifier  notify.Notifier
	schedules *engine.Scheduler
	random    *engine.RandomTrigger
	interval  time.Duration
}

// New creates a Runner. interval zero falls back to 30 seconds.
func New(repo store.Repo, log *zap.Logger, notifier notify.Notifier, schedules *engine.Scheduler, random *engine.RandomTrigger, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Runner{
		repo:      repo,
		log:       log,
		notifier:  notifier,
		schedules: schedules,
		random:    random,
		interval:  interval,
	}
}

// Run starts the loop until ctx is canceled.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("scheduler stopping")
			return
		case <-ticker.C:
			r.tick(ctx, time.Now())
		}
	}
}

// tick performs one checking cycle. Store failures are recoverable: the
// cycle is skipped (or a default substituted) and the loop keeps going.
func (r *Runner) tick(ctx context.Context, now time.Time) {
	metrics.RecordTick()

	pool, err := r.repo.ListCompliments(ctx, domain.CategoryAny)
	if err != nil {
		r.log.Error("list compliments failed", zap.Error(err))
		metrics.RecordTickError()
		return
	}

	settings, err := r.repo.GetSettings(ctx)
	if err != nil {
		r.log.Warn("get settings failed, using defaults", zap.Error(err))
		settings = domain.DefaultSettings()
	}

	r.checkSchedules(ctx, now, pool, settings)
	r.checkRandom(ctx, now, pool, settings)
}

func (r *Runner) checkSchedules(ctx context.Context, now time.Time, pool []domain.Compliment, settings domain.Settings) {
	schedules, err := r.repo.ListSchedules(ctx)
	if err != nil {
		r.log.Error("list schedules failed", zap.Error(err))
		metrics.RecordTickError()
		return
	}

	updated := r.schedules.Tick(schedules, pool, now, r.deliver(ctx, "scheduled", settings))

	for i := range updated {
		if updated[i].LastTriggered == nil || !updated[i].LastTriggered.Equal(now) {
			continue
		}
		if err := r.repo.SetLastTriggered(ctx, updated[i].ID, now); err != nil {
			r.log.Error("persist last triggered failed",
				zap.String("schedule_id", updated[i].ID),
				zap.Error(err),
			)
		}
	}
}

func (r *Runner) checkRandom(ctx context.Context, now time.Time, pool []domain.Compliment, settings domain.Settings) {
	enabled, err := r.repo.RandomEnabled(ctx)
	if err != nil {
		r.log.Error("read random toggle failed", zap.Error(err))
		metrics.RecordTickError()
		return
	}
	lastFired, err := r.repo.LastRandomFired(ctx)
	if err != nil {
		// Corrupt marker: substitute "never fired" and keep going.
		r.log.Warn("read last random fired failed, assuming never", zap.Error(err))
		lastFired = time.Time{}
	}

	fired, newLast := r.random.Check(enabled, now, lastFired, pool, r.deliver(ctx, "surprise", settings))
	if !fired {
		return
	}
	if err := r.repo.SetLastRandomFired(ctx, newLast); err != nil {
		r.log.Error("persist last random fired failed", zap.Error(err))
	}
}

// deliver adapts the notifier to the engines' fire-and-forget callback.
// Dispatch failures are logged and counted, never surfaced to the engine.
func (r *Runner) deliver(ctx context.Context, kind string, settings domain.Settings) engine.DeliverFunc {
	return func(c domain.Compliment) {
		if err := r.notifier.Deliver(ctx, c, settings); err != nil {
			r.log.Warn("delivery failed",
				zap.String("kind", kind),
				zap.String("compliment_id", c.ID),
				zap.Error(err),
			)
			metrics.RecordDeliveryFailure(r.notifier.Name())
			return
		}
		metrics.RecordDelivery(kind)
	}
}
