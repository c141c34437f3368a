package store

import (
	"context"
	"errors"
	"time"

	"github.com/chethan059/compliment-generator/internal/domain"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

// Repo defines storage operations for compliments, schedules, presentation
// settings and the surprise-notification markers. The engines never touch
// storage themselves; the tick loop reads through this interface and persists
// what the engines return.
type Repo interface {
	ListCompliments(ctx context.Context, category domain.Category) ([]domain.Compliment, error)
	GetCompliment(ctx context.Context, id string) (*domain.Compliment, error)
	SaveCompliment(ctx context.Context, c *domain.Compliment) error
	DeleteCompliment(ctx context.Context, id string) error

	ListSchedules(ctx context.Context) ([]domain.Schedule, error)
	GetSchedule(ctx context.Context, id string) (*domain.Schedule, error)
	SaveSchedule(ctx context.Context, s *domain.Schedule) error
	DeleteSchedule(ctx context.Context, id string) error
	SetLastTriggered(ctx context.Context, id string, at time.Time) error

	GetSettings(ctx context.Context) (domain.Settings, error)
	SaveSettings(ctx context.Context, s domain.Settings) error

	RandomEnabled(ctx context.Context) (bool, error)
	SetRandomEnabled(ctx context.Context, enabled bool) error
	LastRandomFired(ctx context.Context) (time.Time, error)
	SetLastRandomFired(ctx context.Context, at time.Time) error

	Export(ctx context.Context) (*Snapshot, error)
	Import(ctx context.Context, snap *Snapshot) error

	Close() error
}
