package models

// Dashboard is the snapshot the companion app renders on its home screen.
type Dashboard struct {
	Metadata       DashboardMetadata `json:"metadata"`
	PlantState     PlantState        `json:"plant_state"`
	SensorReadings []SensorReading   `json:"sensor_readings"`
	Reports        []Report          `json:"reports"`
}

type DashboardMetadata struct {
	LastReadingTime string `json:"last_reading_time"`
}

type SensorReading struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Readings    []string `json:"readings"`
}

// Report describes one piece of equipment. Value is a string except for the pump report, which is a bool.
type Report struct {
	Title       string `json:"title"`
	HeaderText  string `json:"header_text"`
	Value       any    `json:"value"`
	Description string `json:"description"`
}
