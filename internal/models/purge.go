package models

import "time"

// PurgeTicket is a pending request to remove all readings of a plant, awaiting an operator decision.
type PurgeTicket struct {
	ID          string    `json:"ticket"`
	PlantID     string    `json:"plant_id"`
	RequestedAt time.Time `json:"requested_at"`
}
