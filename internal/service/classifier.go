package service

import "smart_plant/internal/models"

const (
	happyDescription   = "Your plant is well watered, has adequate light exposure and is healthier than ever!"
	hungryDescription  = "Your plant requires more soil moisture to continue healthy growth."
	sadDescription     = "Your plant requires more light to continue healthy growth."
	neutralDescription = "Your plant is doing okay. Keep an eye on its soil moisture and light."
)

// Classify picks the first matching state: Happy, then Hungry, then Sad.
// Exactly 50 is neither above nor below 50, so (50, 50) is Neutral.
func Classify(soilMoisture, lightIntensity int) models.PlantState {
	switch {
	case soilMoisture > 50 && lightIntensity > 50:
		return models.PlantState{State: models.WellnessHappy, Description: happyDescription}
	case soilMoisture < 50:
		return models.PlantState{State: models.WellnessHungry, Description: hungryDescription}
	case lightIntensity < 50:
		return models.PlantState{State: models.WellnessSad, Description: sadDescription}
	default:
		return models.PlantState{State: models.WellnessNeutral, Description: neutralDescription}
	}
}
