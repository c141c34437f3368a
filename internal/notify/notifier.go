// Package notify holds the delivery dispatchers: given a compliment and the
// current presentation settings, each Notifier performs one kind of local
// delivery. Dispatch is best-effort — a failing channel is logged and must
// never disturb the scheduling engines' bookkeeping.
package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/chethan059/compliment-generator/internal/domain"
)

// Notifier presents one compliment to the user through a single channel.
type Notifier interface {
	Name() string
	Deliver(ctx context.Context, c domain.Compliment, settings domain.Settings) error
}

// Banner writes the compliment to the structured log. It is the in-app
// banner analog and is always configured, so a delivery is observable even
// with no external channel set up.
type Banner struct {
	log *zap.Logger
}

func NewBanner(log *zap.Logger) *Banner {
	return &Banner{log: log}
}

func (b *Banner) Name() string { return "banner" }

func (b *Banner) Deliver(_ context.Context, c domain.Compliment, settings domain.Settings) error {
	b.log.Info("compliment delivered",
		zap.String("compliment_id", c.ID),
		zap.String("category", string(c.Category)),
		zap.String("text", c.Text),
		zap.Bool("silent", settings.Silent),
	)
	return nil
}

// Multi fans a delivery out to every configured channel. Per-channel
// failures are logged and counted by the caller via the returned slice of
// errors; Multi itself never fails.
type Multi struct {
	notifiers []Notifier
	log       *zap.Logger
}

func NewMulti(log *zap.Logger, notifiers ...Notifier) *Multi {
	return &Multi{notifiers: notifiers, log: log}
}

func (m *Multi) Name() string { return "multi" }

// Deliver tries every channel and always returns nil: partial failure is a
// logging concern, not a delivery error.
func (m *Multi) Deliver(ctx context.Context, c domain.Compliment, settings domain.Settings) error {
	for _, n := range m.notifiers {
		if err := n.Deliver(ctx, c, settings); err != nil {
			m.log.Warn("delivery channel failed",
				zap.String("channel", n.Name()),
				zap.String("compliment_id", c.ID),
				zap.Error(err),
			)
		}
	}
	return nil
}
