package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/chethan059/compliment-generator/internal/domain"
)

func openTestRepo(t *testing.T) *SQLiteRepo {
	t.Helper()
	repo, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestComplimentCRUD(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	c := &domain.Compliment{
		ID:        "c1",
		Text:      "You make hard things look easy.",
		Category:  domain.CategoryProfessional,
		CreatedAt: time.Date(2025, time.May, 1, 10, 0, 0, 0, time.UTC),
		IsCustom:  true,
	}
	if err := repo.SaveCompliment(ctx, c); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.GetCompliment(ctx, "c1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Text != c.Text || got.Category != c.Category || !got.IsCustom {
		t.Fatalf("got %+v, want %+v", got, c)
	}
	if !got.CreatedAt.Equal(c.CreatedAt) {
		t.Fatalf("createdAt = %v, want %v", got.CreatedAt, c.CreatedAt)
	}

	byCat, err := repo.ListCompliments(ctx, domain.CategoryProfessional)
	if err != nil || len(byCat) != 1 {
		t.Fatalf("list by category: %v, n=%d", err, len(byCat))
	}
	other, err := repo.ListCompliments(ctx, domain.CategoryFunny)
	if err != nil || len(other) != 0 {
		t.Fatalf("list other category: %v, n=%d", err, len(other))
	}

	if err := repo.DeleteCompliment(ctx, "c1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetCompliment(ctx, "c1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.DeleteCompliment(ctx, "c1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	catalog := []domain.Compliment{
		{ID: "b1", Text: "one", Category: domain.CategoryGeneral},
		{ID: "b2", Text: "two", Category: domain.CategoryGeneral},
	}
	if err := repo.SeedCompliments(ctx, catalog); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := repo.SeedCompliments(ctx, catalog); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	all, err := repo.ListCompliments(ctx, domain.CategoryAny)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("n = %d, want 2 (seeding must not duplicate)", len(all))
	}
}

func TestScheduleRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	fired := time.Date(2025, time.May, 5, 9, 0, 0, 0, time.UTC)
	s := &domain.Schedule{
		ID:            "s1",
		Time:          "09:00",
		Days:          []int{1, 3, 5},
		Active:        true,
		Category:      domain.CategoryMotivational,
		LastTriggered: &fired,
	}
	if err := repo.SaveSchedule(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.GetSchedule(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Time != "09:00" || !got.Active || got.Category != domain.CategoryMotivational {
		t.Fatalf("got %+v", got)
	}
	if len(got.Days) != 3 || got.Days[0] != 1 || got.Days[2] != 5 {
		t.Fatalf("days = %v, want [1 3 5]", got.Days)
	}
	if got.LastTriggered == nil || !got.LastTriggered.Equal(fired) {
		t.Fatalf("lastTriggered = %v, want %v", got.LastTriggered, fired)
	}

	later := fired.Add(24 * time.Hour)
	if err := repo.SetLastTriggered(ctx, "s1", later); err != nil {
		t.Fatalf("set last triggered: %v", err)
	}
	got, _ = repo.GetSchedule(ctx, "s1")
	if got.LastTriggered == nil || !got.LastTriggered.Equal(later) {
		t.Fatalf("lastTriggered = %v, want %v", got.LastTriggered, later)
	}
}

func TestSettingsAndMarkers(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	// Migration seeds the default row.
	s, err := repo.GetSettings(ctx)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if !s.Sound || !s.Vibration || s.Silent {
		t.Fatalf("default settings = %+v", s)
	}

	s.Silent = true
	s.Sound = false
	if err := repo.SaveSettings(ctx, s); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	s2, _ := repo.GetSettings(ctx)
	if !s2.Silent || s2.Sound {
		t.Fatalf("settings after save = %+v", s2)
	}

	// Markers: enabled defaults to true, lastFired to zero.
	enabled, err := repo.RandomEnabled(ctx)
	if err != nil || !enabled {
		t.Fatalf("default random enabled = %v, err %v", enabled, err)
	}
	last, err := repo.LastRandomFired(ctx)
	if err != nil || !last.IsZero() {
		t.Fatalf("default last fired = %v, err %v", last, err)
	}

	if err := repo.SetRandomEnabled(ctx, false); err != nil {
		t.Fatalf("set enabled: %v", err)
	}
	enabled, _ = repo.RandomEnabled(ctx)
	if enabled {
		t.Fatal("enabled should be false after toggle")
	}

	at := time.Date(2025, time.May, 5, 14, 30, 0, 0, time.UTC)
	if err := repo.SetLastRandomFired(ctx, at); err != nil {
		t.Fatalf("set last fired: %v", err)
	}
	last, _ = repo.LastRandomFired(ctx)
	if !last.Equal(at) {
		t.Fatalf("last fired = %v, want %v", last, at)
	}
}

// Export then import must reproduce an equivalent state.
func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	fired := time.Date(2025, time.May, 5, 9, 0, 0, 0, time.UTC)
	seed := []domain.Compliment{
		{ID: "b1", Text: "builtin", Category: domain.CategoryGeneral, CreatedAt: fired},
		{ID: "c1", Text: "custom", Category: domain.CategoryFunny, CreatedAt: fired, IsCustom: true},
	}
	if err := repo.SeedCompliments(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := repo.SaveSchedule(ctx, &domain.Schedule{
		ID: "s1", Time: "09:00", Days: []int{1}, Active: true, LastTriggered: &fired,
	}); err != nil {
		t.Fatalf("save schedule: %v", err)
	}
	if err := repo.SaveSettings(ctx, domain.Settings{Vibration: true, Silent: true}); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	if err := repo.SetRandomEnabled(ctx, true); err != nil {
		t.Fatalf("set enabled: %v", err)
	}
	if err := repo.SetLastRandomFired(ctx, fired); err != nil {
		t.Fatalf("set last fired: %v", err)
	}

	snap, err := repo.Export(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	// Import into a second, empty store.
	other := openTestRepo(t)
	if err := other.Import(ctx, snap); err != nil {
		t.Fatalf("import: %v", err)
	}

	snap2, err := other.Export(ctx)
	if err != nil {
		t.Fatalf("re-export: %v", err)
	}

	if len(snap2.Compliments) != len(snap.Compliments) || len(snap2.Schedules) != len(snap.Schedules) {
		t.Fatalf("round trip changed sizes: %d/%d vs %d/%d",
			len(snap2.Compliments), len(snap2.Schedules), len(snap.Compliments), len(snap.Schedules))
	}
	if snap2.Settings != snap.Settings {
		t.Fatalf("settings %+v != %+v", snap2.Settings, snap.Settings)
	}
	if snap2.RandomEnabled != snap.RandomEnabled {
		t.Fatal("random enabled flag lost")
	}
	if snap2.LastRandomFired == nil || !snap2.LastRandomFired.Equal(*snap.LastRandomFired) {
		t.Fatalf("lastRandomFired %v != %v", snap2.LastRandomFired, snap.LastRandomFired)
	}
	for i := range snap.Compliments {
		if snap2.Compliments[i] != snap.Compliments[i] {
			t.Fatalf("compliment %d: %+v != %+v", i, snap2.Compliments[i], snap.Compliments[i])
		}
	}
	s1, s2 := snap.Schedules[0], snap2.Schedules[0]
	if s1.ID != s2.ID || s1.Time != s2.Time || s1.Active != s2.Active ||
		*s1.LastTriggered != *s2.LastTriggered {
		t.Fatalf("schedule: %+v != %+v", s2, s1)
	}
}

func TestImportRejectsMalformed(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	if err := repo.SaveCompliment(ctx, &domain.Compliment{
		ID: "keep", Text: "keep me", Category: domain.CategoryGeneral,
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	bad := &Snapshot{
		Schedules: []ScheduleRecord{{ID: "s1", Time: "25:00", Days: []int{1}, Active: true}},
	}
	if err := repo.Import(ctx, bad); err == nil {
		t.Fatal("expected error for malformed schedule time")
	}

	// Existing data must be untouched after a failed import.
	if _, err := repo.GetCompliment(ctx, "keep"); err != nil {
		t.Fatalf("failed import must not clobber existing data: %v", err)
	}
}
