package models

import "time"

// NotificationReason identifies which low-resource condition triggered an alert.
type NotificationReason string

const (
	ReasonWaterLevelLow   NotificationReason = "WATER_LEVEL_LOW"
	ReasonSoilMoistureLow NotificationReason = "SOIL_MOISTURE_LOW"
)

// Valid reports whether r is one of the known reasons.
func (r NotificationReason) Valid() bool {
	return r == ReasonWaterLevelLow || r == ReasonSoilMoistureLow
}

// NotificationRecord marks one dispatch attempt for a plant and reason.
type NotificationRecord struct {
	ID           string             `json:"id"`
	PlantID      string             `json:"plant_id"`
	Reason       NotificationReason `json:"reason"`
	DispatchedAt time.Time          `json:"dispatched_at"`
}
