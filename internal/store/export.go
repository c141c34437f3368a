package store

import (
	"context"
	"fmt"
	"time"

	"github.com/chethan059/compliment-generator/internal/domain"
)

// Snapshot is the JSON shape of a full data export: every compliment and
// schedule, the presentation settings and the surprise-notification markers.
// Importing a snapshot that was just exported reproduces an equivalent state.
type Snapshot struct {
	Compliments     []ComplimentRecord `json:"compliments"`
	Schedules       []ScheduleRecord   `json:"schedules"`
	Settings        domain.Settings    `json:"settings"`
	RandomEnabled   bool               `json:"randomEnabled"`
	LastRandomFired *time.Time         `json:"lastRandomFired,omitempty"`
}

type ComplimentRecord struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Category  string `json:"category"`
	CreatedAt int64  `json:"createdAt"` // unix seconds
	IsCustom  bool   `json:"isCustom"`
}

type ScheduleRecord struct {
	ID            string `json:"id"`
	Time          string `json:"time"`
	Days          []int  `json:"days"`
	Active        bool   `json:"active"`
	Category      string `json:"complimentCategory,omitempty"`
	LastTriggered *int64 `json:"lastTriggered,omitempty"` // unix seconds
}

// Export reads the whole store into a snapshot.
func (r *SQLiteRepo) Export(ctx context.Context) (*Snapshot, error) {
	compliments, err := r.ListCompliments(ctx, domain.CategoryAny)
	if err != nil {
		return nil, fmt.Errorf("export compliments: %w", err)
	}
	schedules, err := r.ListSchedules(ctx)
	if err != nil {
		return nil, fmt.Errorf("export schedules: %w", err)
	}
	settings, err := r.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("export settings: %w", err)
	}
	enabled, err := r.RandomEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("export markers: %w", err)
	}
	lastFired, err := r.LastRandomFired(ctx)
	if err != nil {
		return nil, fmt.Errorf("export markers: %w", err)
	}

	snap := &Snapshot{
		Compliments:   make([]ComplimentRecord, 0, len(compliments)),
		Schedules:     make([]ScheduleRecord, 0, len(schedules)),
		Settings:      settings,
		RandomEnabled: enabled,
	}
	if !lastFired.IsZero() {
		t := lastFired.UTC()
		snap.LastRandomFired = &t
	}
	for _, c := range compliments {
		snap.Compliments = append(snap.Compliments, ComplimentRecord{
			ID:        c.ID,
			Text:      c.Text,
			Category:  string(c.Category),
			CreatedAt: c.CreatedAt.UTC().Unix(),
			IsCustom:  c.IsCustom,
		})
	}
	for _, s := range schedules {
		rec := ScheduleRecord{
			ID:       s.ID,
			Time:     s.Time,
			Days:     s.Days,
			Active:   s.Active,
			Category: string(s.Category),
		}
		if s.LastTriggered != nil {
			sec := s.LastTriggered.UTC().Unix()
			rec.LastTriggered = &sec
		}
		snap.Schedules = append(snap.Schedules, rec)
	}
	return snap, nil
}

// Import validates the snapshot and replaces the whole store with it in one
// transaction. A malformed snapshot leaves existing data untouched.
func (r *SQLiteRepo) Import(ctx context.Context, snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("nil snapshot")
	}

	compliments, schedules, err := decodeSnapshot(snap)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	rollback := func(err error) error {
		_ = tx.Rollback()
		return err
	}

	for _, table := range []string{"compliments", "schedules", "markers"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return rollback(err)
		}
	}

	for _, c := range compliments {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO compliments (id, text, category, created_at, is_custom)
			VALUES (?, ?, ?, ?, ?)`,
			c.ID, c.Text, string(c.Category), c.CreatedAt.UTC().Unix(), boolToInt(c.IsCustom),
		); err != nil {
			return rollback(err)
		}
	}
	for _, s := range schedules {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO schedules (id, fire_time, days, active, category, last_triggered)
			VALUES (?, ?, ?, ?, ?, ?)`,
			s.ID, s.Time, daysToText(s.Days), boolToInt(s.Active),
			string(s.Category), toNullInt64(s.LastTriggered),
		); err != nil {
			return rollback(err)
		}
	}

	settings := snap.Settings
	settings.Normalize()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO settings (id, sound, vibration, silent)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			sound     = excluded.sound,
			vibration = excluded.vibration,
			silent    = excluded.silent`,
		boolToInt(settings.Sound), boolToInt(settings.Vibration), boolToInt(settings.Silent),
	); err != nil {
		return rollback(err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO markers (key, value) VALUES (?, ?)`,
		markerRandomEnabled, fmt.Sprintf("%d", boolToInt(snap.RandomEnabled)),
	); err != nil {
		return rollback(err)
	}
	if snap.LastRandomFired != nil {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO markers (key, value) VALUES (?, ?)`,
			markerLastRandomFired, fmt.Sprintf("%d", snap.LastRandomFired.UTC().Unix()),
		); err != nil {
			return rollback(err)
		}
	}

	return tx.Commit()
}

// decodeSnapshot turns the wire records into validated domain values.
func decodeSnapshot(snap *Snapshot) ([]domain.Compliment, []domain.Schedule, error) {
	compliments := make([]domain.Compliment, 0, len(snap.Compliments))
	for i, rec := range snap.Compliments {
		if rec.ID == "" || rec.Text == "" {
			return nil, nil, fmt.Errorf("compliment %d: id and text are required", i)
		}
		cat, err := domain.ParseCategory(rec.Category)
		if err != nil || cat == domain.CategoryAny {
			return nil, nil, fmt.Errorf("compliment %q: bad category %q", rec.ID, rec.Category)
		}
		compliments = append(compliments, domain.Compliment{
			ID:        rec.ID,
			Text:      rec.Text,
			Category:  cat,
			CreatedAt: time.Unix(rec.CreatedAt, 0).UTC(),
			IsCustom:  rec.IsCustom,
		})
	}

	schedules := make([]domain.Schedule, 0, len(snap.Schedules))
	for _, rec := range snap.Schedules {
		s := domain.Schedule{
			ID:       rec.ID,
			Time:     rec.Time,
			Days:     rec.Days,
			Active:   rec.Active,
			Category: domain.Category(rec.Category),
		}
		if rec.LastTriggered != nil {
			t := time.Unix(*rec.LastTriggered, 0).UTC()
			s.LastTriggered = &t
		}
		if err := s.Validate(); err != nil {
			return nil, nil, fmt.Errorf("schedule %q: %w", rec.ID, err)
		}
		schedules = append(schedules, s)
	}
	return compliments, schedules, nil
}
