package models

// Wellness is the verbal state shown to the app user.
type Wellness string

const (
	WellnessHappy   Wellness = "Happy"
	WellnessHungry  Wellness = "Hungry"
	WellnessSad     Wellness = "Sad"
	WellnessNeutral Wellness = "Neutral"
)

type PlantState struct {
	State       Wellness `json:"state"`
	Description string   `json:"description"`
}
