package models

import "time"

// DailyAverage is the mean of one calendar day's readings. Days without readings are all zeros.
type DailyAverage struct {
	Date           time.Time `json:"date"`
	Readings       int       `json:"readings"`
	SoilMoisture   float64   `json:"soil_moisture_avg"`
	LightIntensity float64   `json:"light_intensity_avg"`
	WaterLevel     float64   `json:"water_level_avg"`
}

// GraphPoint is one labelled value of a Graph.
type GraphPoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Value float64 `json:"value"`
}

// Graph is the per-day series of one sensor plus window summaries.
type Graph struct {
	Name    string       `json:"name"`
	Unit    string       `json:"unit"`
	Points  []GraphPoint `json:"points"`
	Min     float64      `json:"min"`
	Max     float64      `json:"max"`
	Average int          `json:"average"`
	Today   float64      `json:"today"`
}
