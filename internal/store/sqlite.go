package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/chethan059/compliment-generator/internal/domain"
)

// Marker keys in the markers table.
const (
	markerRandomEnabled   = "random_enabled"
	markerLastRandomFired = "last_random_fired"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Reasonable pooling for SQLite; it's a single-writer engine.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// ListCompliments returns all compliments, optionally restricted to a
// category. Ordered by creation time so the API output is stable.
func (r *SQLiteRepo) ListCompliments(ctx context.Context, category domain.Category) ([]domain.Compliment, error) {
	query := `
		SELECT id, text, category, created_at, is_custom
		FROM compliments`
	args := []any{}
	if category != domain.CategoryAny {
		query += ` WHERE category = ?`
		args = append(args, string(category))
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Compliment
	for rows.Next() {
		c, err := scanCompliment(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *c)
	}
	return res, rows.Err()
}

// GetCompliment returns one compliment by id or ErrNotFound.
func (r *SQLiteRepo) GetCompliment(ctx context.Context, id string) (*domain.Compliment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, text, category, created_at, is_custom
		FROM compliments
		WHERE id = ?`, id)
	c, err := scanCompliment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

// SaveCompliment inserts or replaces a compliment.
func (r *SQLiteRepo) SaveCompliment(ctx context.Context, c *domain.Compliment) error {
	if c == nil {
		return errors.New("nil compliment")
	}
	created := c.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO compliments (id, text, category, created_at, is_custom)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text       = excluded.text,
			category   = excluded.category,
			created_at = excluded.created_at,
			is_custom  = excluded.is_custom`,
		c.ID, c.Text, string(c.Category), created.UTC().Unix(), boolToInt(c.IsCustom),
	)
	return err
}

// SeedCompliments inserts catalog entries that are not present yet. Existing
// rows are left untouched, so seeding is idempotent across restarts.
func (r *SQLiteRepo) SeedCompliments(ctx context.Context, catalog []domain.Compliment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, c := range catalog {
		created := c.CreatedAt
		if created.IsZero() {
			created = time.Now().UTC()
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO compliments (id, text, category, created_at, is_custom)
			VALUES (?, ?, ?, ?, ?)`,
			c.ID, c.Text, string(c.Category), created.UTC().Unix(), boolToInt(c.IsCustom),
		); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// DeleteCompliment removes a compliment by id. Missing ids are ErrNotFound.
func (r *SQLiteRepo) DeleteCompliment(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM compliments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// ListSchedules returns all schedules ordered by fire time.
func (r *SQLiteRepo) ListSchedules(ctx context.Context) ([]domain.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, fire_time, days, active, category, last_triggered
		FROM schedules
		ORDER BY fire_time, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *s)
	}
	return res, rows.Err()
}

// GetSchedule returns one schedule by id or ErrNotFound.
func (r *SQLiteRepo) GetSchedule(ctx context.Context, id string) (*domain.Schedule, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, fire_time, days, active, category, last_triggered
		FROM schedules
		WHERE id = ?`, id)
	s, err := scanSchedule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return s, err
}

// SaveSchedule inserts or updates a schedule.
func (r *SQLiteRepo) SaveSchedule(ctx context.Context, s *domain.Schedule) error {
	if s == nil {
		return errors.New("nil schedule")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO schedules (id, fire_time, days, active, category, last_triggered)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			fire_time      = excluded.fire_time,
			days           = excluded.days,
			active         = excluded.active,
			category       = excluded.category,
			last_triggered = excluded.last_triggered`,
		s.ID, s.Time, daysToText(s.Days), boolToInt(s.Active),
		string(s.Category), toNullInt64(s.LastTriggered),
	)
	return err
}

// DeleteSchedule removes a schedule by id. Missing ids are ErrNotFound.
func (r *SQLiteRepo) DeleteSchedule(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// SetLastTriggered advances a schedule's de-dup marker after a fire.
func (r *SQLiteRepo) SetLastTriggered(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE schedules
		SET last_triggered = ?
		WHERE id = ?`,
		at.UTC().Unix(), id,
	)
	return err
}

// GetSettings returns the single settings row.
func (r *SQLiteRepo) GetSettings(ctx context.Context) (domain.Settings, error) {
	var sound, vibration, silent int
	err := r.db.QueryRowContext(ctx, `
		SELECT sound, vibration, silent FROM settings WHERE id = 1`).
		Scan(&sound, &vibration, &silent)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, err
	}
	return domain.Settings{
		Sound:     sound != 0,
		Vibration: vibration != 0,
		Silent:    silent != 0,
	}, nil
}

// SaveSettings replaces the single settings row.
func (r *SQLiteRepo) SaveSettings(ctx context.Context, s domain.Settings) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (id, sound, vibration, silent)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			sound     = excluded.sound,
			vibration = excluded.vibration,
			silent    = excluded.silent`,
		boolToInt(s.Sound), boolToInt(s.Vibration), boolToInt(s.Silent),
	)
	return err
}

// RandomEnabled reports whether surprise notifications are on. A missing
// marker means enabled (fresh install default).
func (r *SQLiteRepo) RandomEnabled(ctx context.Context) (bool, error) {
	v, err := r.getMarker(ctx, markerRandomEnabled)
	if errors.Is(err, ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return v == "1", nil
}

// SetRandomEnabled toggles surprise notifications.
func (r *SQLiteRepo) SetRandomEnabled(ctx context.Context, enabled bool) error {
	return r.setMarker(ctx, markerRandomEnabled, strconv.Itoa(boolToInt(enabled)))
}

// LastRandomFired returns the surprise-notification marker; the zero time
// means "never fired".
func (r *SQLiteRepo) LastRandomFired(ctx context.Context) (time.Time, error) {
	v, err := r.getMarker(ctx, markerLastRandomFired)
	if errors.Is(err, ErrNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	sec, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("corrupt %s marker %q: %w", markerLastRandomFired, v, err)
	}
	return time.Unix(sec, 0).UTC(), nil
}

// SetLastRandomFired advances the surprise-notification marker.
func (r *SQLiteRepo) SetLastRandomFired(ctx context.Context, at time.Time) error {
	return r.setMarker(ctx, markerLastRandomFired, strconv.FormatInt(at.UTC().Unix(), 10))
}

func (r *SQLiteRepo) getMarker(ctx context.Context, key string) (string, error) {
	var v string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM markers WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return v, err
}

func (r *SQLiteRepo) setMarker(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO markers (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface{ Scan(dest ...any) error }

func scanCompliment(row scanner) (*domain.Compliment, error) {
	var (
		id, text, category string
		createdAt          int64
		isCustom           int
	)
	if err := row.Scan(&id, &text, &category, &createdAt, &isCustom); err != nil {
		return nil, err
	}
	return &domain.Compliment{
		ID:        id,
		Text:      text,
		Category:  domain.Category(category),
		CreatedAt: time.Unix(createdAt, 0).UTC(),
		IsCustom:  isCustom != 0,
	}, nil
}

func scanSchedule(row scanner) (*domain.Schedule, error) {
	var (
		id, fireTime, days, category string
		active                       int
		lastNS                       sql.NullInt64
	)
	if err := row.Scan(&id, &fireTime, &days, &active, &category, &lastNS); err != nil {
		return nil, err
	}
	return &domain.Schedule{
		ID:            id,
		Time:          fireTime,
		Days:          daysFromText(days),
		Active:        active != 0,
		Category:      domain.Category(category),
		LastTriggered: fromNullInt64(lastNS),
	}, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
