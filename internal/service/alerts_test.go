package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"smart_plant/internal/models"
)

func newTestAlerts(clk *clock) (*AlertService, *memNotifications, *memTokens, *fakeDispatcher) {
	records := &memNotifications{}
	tokens := newMemTokens()
	disp := &fakeDispatcher{}
	opts := DefaultOptions()
	return NewAlertService(records, tokens, disp, newKeyedMutex(), opts, nil, clk.Now), records, tokens, disp
}

func TestShouldNotify_CooldownCycle(t *testing.T) {
	t0 := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	clk := newClock(t0)
	svc, records, tokens, disp := newTestAlerts(clk)
	ctx := context.Background()
	tokens.bindings["p1"] = []string{"ExponentPushToken[a]", "ExponentPushToken[b]"}

	cooldown := 60 * time.Minute

	ok, err := svc.ShouldNotify(ctx, "p1", models.ReasonWaterLevelLow, 10, 20, cooldown)
	if err != nil || !ok {
		t.Fatalf("first call = (%v, %v), want (true, nil)", ok, err)
	}

	clk.Advance(59 * time.Minute)
	ok, err = svc.ShouldNotify(ctx, "p1", models.ReasonWaterLevelLow, 10, 20, cooldown)
	if err != nil || ok {
		t.Fatalf("call inside cooldown = (%v, %v), want (false, nil)", ok, err)
	}

	clk.Advance(time.Minute)
	ok, err = svc.ShouldNotify(ctx, "p1", models.ReasonWaterLevelLow, 10, 20, cooldown)
	if err != nil || !ok {
		t.Fatalf("call after cooldown = (%v, %v), want (true, nil)", ok, err)
	}

	if n := records.count("p1", models.ReasonWaterLevelLow); n != 2 {
		t.Fatalf("records = %d, want 2", n)
	}
	if len(disp.jobs) != 2 || len(disp.jobs[0].Tokens) != 2 {
		t.Fatalf("unexpected dispatches: %+v", disp.jobs)
	}
}

func TestShouldNotify_AtOrAboveThreshold(t *testing.T) {
	clk := newClock(time.Now())
	svc, records, _, disp := newTestAlerts(clk)

	for _, v := range []int{20, 21, 100} {
		ok, err := svc.ShouldNotify(context.Background(), "p1", models.ReasonWaterLevelLow, v, 20, time.Hour)
		if err != nil || ok {
			t.Fatalf("value %d: got (%v, %v), want (false, nil)", v, ok, err)
		}
	}
	if len(records.rows) != 0 || len(disp.jobs) != 0 {
		t.Fatalf("no side effects expected, got %d records, %d jobs", len(records.rows), len(disp.jobs))
	}
}

func TestShouldNotify_ReasonsAreIndependent(t *testing.T) {
	clk := newClock(time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC))
	svc, _, _, _ := newTestAlerts(clk)
	ctx := context.Background()

	if ok, _ := svc.ShouldNotify(ctx, "p1", models.ReasonWaterLevelLow, 5, 20, time.Hour); !ok {
		t.Fatalf("water alert should fire")
	}
	if ok, _ := svc.ShouldNotify(ctx, "p1", models.ReasonSoilMoistureLow, 5, 30, time.Hour); !ok {
		t.Fatalf("soil alert must not be gated by the water alert")
	}
	if ok, _ := svc.ShouldNotify(ctx, "p2", models.ReasonWaterLevelLow, 5, 20, time.Hour); !ok {
		t.Fatalf("another plant must not be gated")
	}
}

func TestShouldNotify_NoTokensStillRecords(t *testing.T) {
	clk := newClock(time.Now())
	svc, records, _, disp := newTestAlerts(clk)

	ok, err := svc.ShouldNotify(context.Background(), "lonely", models.ReasonSoilMoistureLow, 1, 30, time.Hour)
	if err != nil || !ok {
		t.Fatalf("got (%v, %v), want (true, nil)", ok, err)
	}
	if records.count("lonely", models.ReasonSoilMoistureLow) != 1 {
		t.Fatalf("expected a record")
	}
	if len(disp.jobs) != 1 || len(disp.jobs[0].Tokens) != 0 {
		t.Fatalf("expected one dispatch with an empty token list, got %+v", disp.jobs)
	}
}

func TestShouldNotify_FullQueueKeepsRecord(t *testing.T) {
	clk := newClock(time.Now())
	svc, records, _, disp := newTestAlerts(clk)
	disp.full = true

	ok, err := svc.ShouldNotify(context.Background(), "p1", models.ReasonWaterLevelLow, 1, 20, time.Hour)
	if err != nil || !ok {
		t.Fatalf("got (%v, %v), want (true, nil)", ok, err)
	}
	if records.count("p1", models.ReasonWaterLevelLow) != 1 {
		t.Fatalf("record must survive a dropped dispatch")
	}
}

func TestShouldNotify_StorageError(t *testing.T) {
	clk := newClock(time.Now())
	svc, records, _, disp := newTestAlerts(clk)
	records.err = errors.New("disk full")

	if _, err := svc.ShouldNotify(context.Background(), "p1", models.ReasonWaterLevelLow, 1, 20, time.Hour); err == nil {
		t.Fatalf("expected error")
	}
	if len(disp.jobs) != 0 {
		t.Fatalf("nothing must be dispatched without a record")
	}
}

func TestShouldNotify_ConcurrentCallsFireOnce(t *testing.T) {
	clk := newClock(time.Now())
	svc, records, _, _ := newTestAlerts(clk)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.ShouldNotify(context.Background(), "p1", models.ReasonWaterLevelLow, 1, 20, time.Hour)
		}()
	}
	wg.Wait()

	if n := records.count("p1", models.ReasonWaterLevelLow); n != 1 {
		t.Fatalf("records = %d, want exactly 1", n)
	}
}

func TestEvaluate(t *testing.T) {
	clk := newClock(time.Now())
	svc, _, _, _ := newTestAlerts(clk)

	fired, err := svc.Evaluate(context.Background(), models.Reading{PlantID: "p1", WaterLevel: 10, SoilMoisture: 80})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(fired) != 1 || fired[0] != models.ReasonWaterLevelLow {
		t.Fatalf("fired = %v, want [WATER_LEVEL_LOW]", fired)
	}

	fired, _ = svc.Evaluate(context.Background(), models.Reading{PlantID: "p1", WaterLevel: 10, SoilMoisture: 5})
	if len(fired) != 1 || fired[0] != models.ReasonSoilMoistureLow {
		t.Fatalf("fired = %v, want [SOIL_MOISTURE_LOW] (water still cooling down)", fired)
	}
}
