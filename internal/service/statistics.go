package service

import (
	"context"
	"time"

	"smart_plant/internal/models"
	"smart_plant/internal/repository"
)

const dateLayout = "2006-01-02"

type StatisticsService struct {
	readings    repository.ReadingRepo
	loc         *time.Location
	defaultDays int
	maxDays     int
	now         func() time.Time
}

func NewStatisticsService(readings repository.ReadingRepo, opts Options, now func() time.Time) *StatisticsService {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &StatisticsService{
		readings:    readings,
		loc:         loc,
		defaultDays: opts.DefaultDays,
		maxDays:     opts.MaxDays,
		now:         now,
	}
}

func (s *StatisticsService) windowDays(days int) (int, error) {
	if days == 0 {
		return s.defaultDays, nil
	}
	if days < 0 || (s.maxDays > 0 && days > s.maxDays) {
		return 0, newValidationError("days", "must be between 1 and %d, got %d", s.maxDays, days)
	}
	return days, nil
}

type dayBucket struct {
	n                       int
	moisture, light, levels int
}

// Aggregate returns exactly days entries, oldest first, ending today in the
// configured zone. Days without readings average to 0. days == 0 uses the default.
func (s *StatisticsService) Aggregate(ctx context.Context, plantID string, days int) ([]models.DailyAverage, error) {
	days, err := s.windowDays(days)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	start := today.AddDate(0, 0, -(days - 1))
	end := today.AddDate(0, 0, 1)

	readings, err := s.readings.Between(ctx, plantID, start, end)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*dayBucket, days)
	for _, r := range readings {
		key := r.RecordedAt.In(s.loc).Format(dateLayout)
		b, ok := buckets[key]
		if !ok {
			b = &dayBucket{}
			buckets[key] = b
		}
		b.n++
		b.moisture += r.SoilMoisture
		b.light += r.LightIntensity
		b.levels += r.WaterLevel
	}

	out := make([]models.DailyAverage, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		avg := models.DailyAverage{Date: day}
		if b, ok := buckets[day.Format(dateLayout)]; ok && b.n > 0 {
			n := float64(b.n)
			avg.Readings = b.n
			avg.SoilMoisture = float64(b.moisture) / n
			avg.LightIntensity = float64(b.light) / n
			avg.WaterLevel = float64(b.levels) / n
		}
		out = append(out, avg)
	}
	return out, nil
}

// Graphs turns the daily series into one graph per sensor with window summaries.
func (s *StatisticsService) Graphs(ctx context.Context, plantID string, days int) ([]models.Graph, error) {
	series, err := s.Aggregate(ctx, plantID, days)
	if err != nil {
		return nil, err
	}

	specs := []struct {
		name string
		pick func(models.DailyAverage) float64
	}{
		{"Soil Moisture", func(d models.DailyAverage) float64 { return d.SoilMoisture }},
		{"Light Intensity", func(d models.DailyAverage) float64 { return d.LightIntensity }},
		{"Water Level", func(d models.DailyAverage) float64 { return d.WaterLevel }},
	}

	graphs := make([]models.Graph, 0, len(specs))
	for _, sp := range specs {
		points := make([]models.GraphPoint, len(series))
		for i, d := range series {
			points[i] = models.GraphPoint{Date: d.Date.Format(dateLayout), Value: sp.pick(d)}
		}
		g := summarize(points)
		g.Name = sp.name
		g.Unit = "%"
		graphs = append(graphs, g)
	}
	return graphs, nil
}

// summarize computes min, max, truncated mean and the last value of the per-day series.
func summarize(points []models.GraphPoint) models.Graph {
	g := models.Graph{Points: points}
	if len(points) == 0 {
		return g
	}
	g.Min, g.Max = points[0].Value, points[0].Value
	sum := 0.0
	for _, p := range points {
		if p.Value < g.Min {
			g.Min = p.Value
		}
		if p.Value > g.Max {
			g.Max = p.Value
		}
		sum += p.Value
	}
	g.Average = int(sum / float64(len(points)))
	g.Today = points[len(points)-1].Value
	return g
}
