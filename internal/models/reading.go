package models

import "time"

// Reading is a single sensor sample reported by a plant's device.
type Reading struct {
	ID             int64     `json:"id"`
	PlantID        string    `json:"plant_id"`
	RecordedAt     time.Time `json:"recorded_at"`
	SoilMoisture   int       `json:"soil_moisture"`   // %
	LightIntensity int       `json:"light_intensity"` // %
	WaterLevel     int       `json:"water_level"`     // % of tank
}
