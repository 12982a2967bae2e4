package service

import (
	"time"

	"smart_plant/internal/config"
)

// ReadingInput is one sample as reported by the device.
type ReadingInput struct {
	SoilMoisture   int
	LightIntensity int
	WaterLevel     int
}

// OverrideParams are the actuator values the user wants to force.
type OverrideParams struct {
	LampIntensity int
	WaterPump     bool
}

// NotificationFilter supports history filtering by time range and reason.
type NotificationFilter struct {
	From   time.Time // inclusive; zero means no lower bound
	To     time.Time // inclusive; zero means no upper bound
	Reason string    // "", "WATER_LEVEL_LOW", "SOIL_MOISTURE_LOW"
}

// PurgeResult is the outcome of an operator decision on a purge ticket.
type PurgeResult struct {
	PlantID  string
	Approved bool
	Count    int // readings left for the plant
}

// Options are the tunables the services need, usually taken from config.
type Options struct {
	Debug bool

	PumpMoistureThreshold int
	OverrideValidity      time.Duration

	WaterLevelThreshold   int
	SoilMoistureThreshold int
	Cooldown              time.Duration
	Workers               int
	QueueSize             int
	SendTimeout           time.Duration

	Location           *time.Location
	DefaultDays        int
	MaxDays            int
	TankCapacityLiters float64

	OperatorKeyHash string
	SigningKey      string
	TokenTTL        time.Duration
}

func DefaultOptions() Options {
	return Options{
		PumpMoistureThreshold: 65,
		OverrideValidity:      5 * time.Minute,
		WaterLevelThreshold:   20,
		SoilMoistureThreshold: 30,
		Cooldown:              60 * time.Minute,
		Workers:               4,
		QueueSize:             256,
		SendTimeout:           10 * time.Second,
		Location:              time.UTC,
		DefaultDays:           7,
		MaxDays:               90,
		TankCapacityLiters:    5,
		TokenTTL:              time.Hour,
	}
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Debug:                 cfg.Debug,
		PumpMoistureThreshold: cfg.Control.PumpMoistureThreshold,
		OverrideValidity:      cfg.Control.OverrideValidity,
		WaterLevelThreshold:   cfg.Notify.WaterLevelThreshold,
		SoilMoistureThreshold: cfg.Notify.SoilMoistureThreshold,
		Cooldown:              cfg.Notify.Cooldown,
		Workers:               cfg.Notify.Workers,
		QueueSize:             cfg.Notify.QueueSize,
		SendTimeout:           cfg.Notify.Timeout,
		Location:              cfg.Location(),
		DefaultDays:           cfg.Stats.DefaultDays,
		MaxDays:               cfg.Stats.MaxDays,
		TankCapacityLiters:    cfg.Stats.TankCapacityLiters,
		OperatorKeyHash:       cfg.Admin.OperatorKeyHash,
		SigningKey:            cfg.Admin.SigningKey,
		TokenTTL:              cfg.Admin.TokenTTL,
	}
}
