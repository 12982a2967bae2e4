package service

import (
	"testing"

	"smart_plant/internal/models"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		moisture int
		light    int
		want     models.Wellness
	}{
		{"both high", 60, 60, models.WellnessHappy},
		{"dry wins over dark", 20, 20, models.WellnessHungry},
		{"dry but bright", 49, 90, models.WellnessHungry},
		{"wet but dark", 80, 10, models.WellnessSad},
		{"moisture exactly 50, dark", 50, 40, models.WellnessSad},
		{"both exactly 50", 50, 50, models.WellnessNeutral},
		{"moisture 50, bright", 50, 90, models.WellnessNeutral},
		{"wet, light exactly 50", 90, 50, models.WellnessNeutral},
	}
	for _, tt := range tests {
		got := Classify(tt.moisture, tt.light)
		if got.State != tt.want {
			t.Fatalf("%s: Classify(%d, %d) = %s, want %s", tt.name, tt.moisture, tt.light, got.State, tt.want)
		}
		if got.Description == "" {
			t.Fatalf("%s: empty description", tt.name)
		}
	}
}
