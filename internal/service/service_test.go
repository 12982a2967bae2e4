package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"smart_plant/internal/models"
)

func TestService_IngestRoundTrip(t *testing.T) {
	now := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	clk := newClock(now)
	repos := newMemRepos()
	pub := &fakePublisher{}
	mirror := &fakeMirror{}
	svc := NewService(repos, DefaultOptions(), Deps{Publisher: pub, Mirror: mirror, Now: clk.Now})
	ctx := context.Background()

	if _, err := svc.Resolve(ctx, "p1"); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData before ingest, got %v", err)
	}

	count, err := svc.Ingest(ctx, "p1", ReadingInput{SoilMoisture: 10, LightIntensity: 10, WaterLevel: 90})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if count != 1 {
		t.Fatalf("entry count = %d, want 1", count)
	}

	state, err := svc.Resolve(ctx, "p1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if state != (models.ActuatorState{LampIntensity: 100, WaterPump: true}) {
		t.Fatalf("unexpected state: %+v", state)
	}
	if pub.states["p1"] != state {
		t.Fatalf("published %+v, want %+v", pub.states["p1"], state)
	}
	if len(mirror.written) != 1 || mirror.written[0].PlantID != "p1" {
		t.Fatalf("mirror got %+v", mirror.written)
	}

	series, err := svc.Aggregate(ctx, "p1", 7)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if today := series[len(series)-1]; today.Readings != 1 || today.SoilMoisture != 10 {
		t.Fatalf("today = %+v", today)
	}

	// soil 10 < 30 fires, water 90 does not
	if n := repos.Notifications.(*memNotifications).count("p1", models.ReasonSoilMoistureLow); n != 1 {
		t.Fatalf("soil alerts = %d, want 1", n)
	}
	if n := repos.Notifications.(*memNotifications).count("p1", models.ReasonWaterLevelLow); n != 0 {
		t.Fatalf("water alerts = %d, want 0", n)
	}
}

func TestService_Ingest_Validation(t *testing.T) {
	svc := NewService(newMemRepos(), DefaultOptions(), Deps{})
	_, err := svc.Ingest(context.Background(), "p1", ReadingInput{SoilMoisture: 101})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "soil_moisture" {
		t.Fatalf("expected soil_moisture ValidationError, got %v", err)
	}
}

func TestService_Ingest_SideEffectFailuresDoNotFail(t *testing.T) {
	repos := newMemRepos()
	repos.Notifications.(*memNotifications).err = errors.New("notifications table locked")
	svc := NewService(repos, DefaultOptions(), Deps{
		Publisher: &fakePublisher{err: errors.New("broker down")},
		Mirror:    &fakeMirror{err: errors.New("influx down")},
	})

	count, err := svc.Ingest(context.Background(), "p1", ReadingInput{SoilMoisture: 1, LightIntensity: 1, WaterLevel: 1})
	if err != nil || count != 1 {
		t.Fatalf("Ingest = (%d, %v), want (1, nil)", count, err)
	}
}

func TestService_Ingest_StorageError(t *testing.T) {
	repos := newMemRepos()
	repos.Readings.(*memReadings).err = errors.New("disk full")
	svc := NewService(repos, DefaultOptions(), Deps{})

	if _, err := svc.Ingest(context.Background(), "p1", ReadingInput{}); err == nil {
		t.Fatalf("expected storage error")
	}
}
