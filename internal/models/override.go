package models

import "time"

// OverrideRequest is a user instruction that takes control of the actuators for a limited time.
type OverrideRequest struct {
	ID            int64     `json:"id"`
	PlantID       string    `json:"plant_id"`
	RequestedAt   time.Time `json:"requested_at"`
	LampIntensity int       `json:"lamp_intensity_pct"`
	WaterPump     bool      `json:"water_pump_on"`
}
