package engine

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/chethan059/compliment-generator/internal/domain"
)

// RandomConfig tunes the surprise-notification probability model. The model
// is a heuristic: per-check chance grows linearly with time since the last
// surprise, saturating after Saturation, so fires cluster around roughly one
// per few hours inside the active window without any timer bookkeeping.
type RandomConfig struct {
	BaseChance float64       // chance right after a fire (e.g. 0.01)
	MaxChance  float64       // chance once Saturation has elapsed (e.g. 0.05)
	Saturation time.Duration // elapsed time at which chance saturates (e.g. 4h)
	FromHour   int           // first hour of the active window, inclusive (e.g. 8)
	ToHour     int           // last hour of the active window, inclusive (e.g. 22)
}

// DefaultRandomConfig matches the reference behavior: 1%..5% per check,
// saturating after 4 hours, active 08:00–22:59.
func DefaultRandomConfig() RandomConfig {
	return RandomConfig{
		BaseChance: 0.01,
		MaxChance:  0.05,
		Saturation: 4 * time.Hour,
		FromHour:   8,
		ToHour:     22,
	}
}

// RandomTrigger decides, on every tick, whether to fire a surprise
// notification. Like Scheduler it is stateless: the last-fired marker is
// passed in and the refreshed value returned.
type RandomTrigger struct {
	cfg RandomConfig
	log *zap.Logger
	rng func() float64 // uniform [0,1) source, rand.Float64 in production
}

// NewRandomTrigger creates a surprise trigger. rng may be nil, in which case
// the package-level math/rand source is used.
func NewRandomTrigger(cfg RandomConfig, log *zap.Logger, rng func() float64) *RandomTrigger {
	if rng == nil {
		rng = rand.Float64
	}
	if cfg.Saturation <= 0 {
		cfg.Saturation = 4 * time.Hour
	}
	return &RandomTrigger{cfg: cfg, log: log, rng: rng}
}

// Chance returns the per-check fire probability given the time elapsed since
// the last surprise. A zero lastFired means "never fired" and saturates.
func (t *RandomTrigger) Chance(now, lastFired time.Time) float64 {
	elapsed := t.cfg.Saturation
	if !lastFired.IsZero() {
		elapsed = now.Sub(lastFired)
	}
	if elapsed > t.cfg.Saturation {
		elapsed = t.cfg.Saturation
	}
	if elapsed < 0 {
		elapsed = 0
	}
	mult := float64(elapsed) / float64(t.cfg.Saturation)
	return t.cfg.BaseChance + (t.cfg.MaxChance-t.cfg.BaseChance)*mult
}

// Check runs one surprise-notification evaluation.
//
// Nothing fires when disabled or outside the active window. Inside it, a
// uniform draw against Chance decides; on a hit a compliment is picked from
// the whole pool and delivered, and the returned marker advances to now.
// An empty pool is a no-fire: the marker stays put so the next check remains
// just as likely.
func (t *RandomTrigger) Check(enabled bool, now, lastFired time.Time, pool []domain.Compliment, deliver DeliverFunc) (fired bool, newLastFired time.Time) {
	if !enabled {
		return false, lastFired
	}
	hour := now.Hour()
	if hour < t.cfg.FromHour || hour > t.cfg.ToHour {
		return false, lastFired
	}

	chance := t.Chance(now, lastFired)
	if t.rng() >= chance {
		return false, lastFired
	}

	c := Pick(pool, domain.CategoryAny)
	if c == nil {
		return false, lastFired
	}

	deliver(*c)
	t.log.Info("surprise notification fired",
		zap.String("compliment_id", c.ID),
		zap.Float64("chance", chance),
	)
	return true, now
}
