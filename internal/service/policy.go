package service

// Lamp power steps for the light intensity bands.
const (
	lampFull   = 100
	lampHigh   = 75
	lampMedium = 50
	lampLow    = 10
	lampOff    = 0
)

// DeriveActuatorState maps the latest sensor values to lamp power and pump state.
// Light outside [0,100) turns the lamp off. The pump runs while moisture is below pumpThreshold.
func DeriveActuatorState(lightIntensity, soilMoisture, pumpThreshold int) (int, bool) {
	return lampIntensity(lightIntensity), soilMoisture < pumpThreshold
}

func lampIntensity(light int) int {
	switch {
	case light >= 0 && light < 25:
		return lampFull
	case light >= 25 && light < 50:
		return lampHigh
	case light >= 50 && light < 75:
		return lampMedium
	case light >= 75 && light < 100:
		return lampLow
	default:
		return lampOff
	}
}
