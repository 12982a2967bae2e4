package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"smart_plant/internal/models"
	"smart_plant/internal/repository"
	"smart_plant/internal/repository/db"
)

// newSQLiteRepos opens a real database file so the queries run against the actual schema.
func newSQLiteRepos(t *testing.T) *repository.Repository {
	t.Helper()
	sqlDB, err := db.InitDB(filepath.Join(t.TempDir(), "smart_plant.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return repository.NewRepository(sqlDB, repository.NewMemoryPurgeStore(time.Minute))
}

func TestSQLite_ReadingsLatestBreaksTiesByID(t *testing.T) {
	repos := newSQLiteRepos(t)
	ctx := context.Background()
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	for _, r := range []models.Reading{
		{PlantID: "p1", RecordedAt: at, SoilMoisture: 10},
		{PlantID: "p1", RecordedAt: at, SoilMoisture: 20},
		{PlantID: "p1", RecordedAt: at.Add(-time.Hour), SoilMoisture: 30},
		{PlantID: "p2", RecordedAt: at.Add(time.Hour), SoilMoisture: 40},
	} {
		if _, err := repos.Readings.Append(ctx, r); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := repos.Readings.Latest(ctx, "p1")
	if err != nil || got == nil {
		t.Fatalf("Latest: (%+v, %v)", got, err)
	}
	if got.SoilMoisture != 20 {
		t.Fatalf("expected the later insert at the same timestamp, got %+v", got)
	}

	between, err := repos.Readings.Between(ctx, "p1", at.Add(-2*time.Hour), at)
	if err != nil {
		t.Fatalf("Between: %v", err)
	}
	if len(between) != 1 || between[0].SoilMoisture != 30 {
		t.Fatalf("upper bound must be exclusive: %+v", between)
	}

	removed, err := repos.Readings.DeleteAll(ctx, "p1")
	if err != nil || removed != 3 {
		t.Fatalf("DeleteAll: (%d, %v)", removed, err)
	}
	if n, _ := repos.Readings.Count(ctx, "p2"); n != 1 {
		t.Fatalf("other plants must be untouched, count=%d", n)
	}
}

func TestSQLite_PruneKeepsNewestOverridePerPlant(t *testing.T) {
	repos := newSQLiteRepos(t)
	ctx := context.Background()
	t0 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	for _, o := range []models.OverrideRequest{
		{PlantID: "p1", RequestedAt: t0, LampIntensity: 10},
		{PlantID: "p1", RequestedAt: t0.Add(time.Minute), LampIntensity: 20, WaterPump: true},
		{PlantID: "p2", RequestedAt: t0, LampIntensity: 30},
	} {
		if _, err := repos.Overrides.Append(ctx, o); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	n, err := repos.Overrides.PruneSuperseded(ctx, t0.Add(time.Hour))
	if err != nil {
		t.Fatalf("PruneSuperseded: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected only the superseded p1 row to go, removed %d", n)
	}

	latest, err := repos.Overrides.Latest(ctx, "p1")
	if err != nil || latest == nil {
		t.Fatalf("Latest: (%+v, %v)", latest, err)
	}
	if latest.LampIntensity != 20 || !latest.WaterPump || !latest.RequestedAt.Equal(t0.Add(time.Minute)) {
		t.Fatalf("unexpected latest override: %+v", latest)
	}
	if c, _ := repos.Overrides.Count(ctx, "p2"); c != 1 {
		t.Fatalf("p2 newest row must survive, count=%d", c)
	}
}

func TestSQLite_TokensAndNotifications(t *testing.T) {
	repos := newSQLiteRepos(t)
	ctx := context.Background()

	b, err := repos.Tokens.Get(ctx, "p1")
	if err != nil || len(b.Tokens) != 0 {
		t.Fatalf("unbound plant: (%+v, %v)", b, err)
	}
	want := []string{"ExponentPushToken[a]", "ExponentPushToken[b]"}
	if err := repos.Tokens.Save(ctx, models.TokenBinding{PlantID: "p1", Tokens: want}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repos.Tokens.Save(ctx, models.TokenBinding{PlantID: "p1", Tokens: want[:1]}); err != nil {
		t.Fatalf("Save (replace): %v", err)
	}
	b, err = repos.Tokens.Get(ctx, "p1")
	if err != nil || len(b.Tokens) != 1 || b.Tokens[0] != want[0] {
		t.Fatalf("replaced binding: (%+v, %v)", b, err)
	}

	t0 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, reason := range []models.NotificationReason{models.ReasonWaterLevelLow, models.ReasonWaterLevelLow, models.ReasonSoilMoistureLow} {
		rec := models.NotificationRecord{PlantID: "p1", Reason: reason, DispatchedAt: t0.Add(time.Duration(i) * time.Minute)}
		if err := repos.Notifications.Append(ctx, rec); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	last, err := repos.Notifications.LatestByReason(ctx, "p1", models.ReasonWaterLevelLow)
	if err != nil || last == nil || !last.DispatchedAt.Equal(t0.Add(time.Minute)) {
		t.Fatalf("LatestByReason: (%+v, %v)", last, err)
	}
	list, err := repos.Notifications.List(ctx, "p1", t0.Add(30*time.Second), time.Time{}, "")
	if err != nil || len(list) != 2 {
		t.Fatalf("List: (%+v, %v)", list, err)
	}
}
