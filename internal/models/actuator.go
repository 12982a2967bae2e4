package models

// ActuatorState is what the device should drive its lamp and pump to.
type ActuatorState struct {
	Overridden    bool `json:"override"`
	LampIntensity int  `json:"lamp_intensity_pct"`
	WaterPump     bool `json:"water_pump_on"`
}
