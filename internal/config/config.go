package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. SMART_PLANT_DB_PATH.
const EnvPrefix = "SMART_PLANT"

type Config struct {
	Port     string       `mapstructure:"port"`
	Debug    bool         `mapstructure:"debug"`
	Log      LogConfig    `mapstructure:"log"`
	DB       DBConfig     `mapstructure:"db"`
	Server   ServerConfig `mapstructure:"server"`
	Control  Control      `mapstructure:"control"`
	Notify   Notify       `mapstructure:"notify"`
	Stats    Stats        `mapstructure:"stats"`
	Admin    Admin        `mapstructure:"admin"`
	Redis    RedisConfig  `mapstructure:"redis"`
	MQTT     MQTTConfig   `mapstructure:"mqtt"`
	Influx   InfluxConfig `mapstructure:"influx"`
	location *time.Location
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type ServerConfig struct {
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// Control tunes the actuator policy and override arbitration.
type Control struct {
	PumpMoistureThreshold int           `mapstructure:"pump_moisture_threshold"`
	OverrideValidity      time.Duration `mapstructure:"override_validity"`
	PruneInterval         time.Duration `mapstructure:"prune_interval"`
}

// Notify holds alert thresholds, the cooldown and the dispatcher sizing.
type Notify struct {
	Provider              string        `mapstructure:"provider"`
	ExpoURL               string        `mapstructure:"expo_url"`
	ExpoAccessToken       string        `mapstructure:"expo_access_token"`
	WaterLevelThreshold   int           `mapstructure:"water_level_threshold"`
	SoilMoistureThreshold int           `mapstructure:"soil_moisture_threshold"`
	Cooldown              time.Duration `mapstructure:"cooldown"`
	Workers               int           `mapstructure:"workers"`
	QueueSize             int           `mapstructure:"queue_size"`
	Timeout               time.Duration `mapstructure:"timeout"`
}

type Stats struct {
	Timezone           string  `mapstructure:"timezone"`
	DefaultDays        int     `mapstructure:"default_days"`
	MaxDays            int     `mapstructure:"max_days"`
	TankCapacityLiters float64 `mapstructure:"tank_capacity_liters"`
}

// Admin configures the operator credentials used by the two-phase purge.
type Admin struct {
	OperatorKeyHash string        `mapstructure:"operator_key_hash"`
	SigningKey      string        `mapstructure:"signing_key"`
	TokenTTL        time.Duration `mapstructure:"token_ttl"`
	TicketTTL       time.Duration `mapstructure:"ticket_ttl"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MQTTConfig struct {
	Broker      string `mapstructure:"broker"`
	ClientID    string `mapstructure:"client_id"`
	TopicPrefix string `mapstructure:"topic_prefix"`
}

type InfluxConfig struct {
	URL    string `mapstructure:"url"`
	Token  string `mapstructure:"token"`
	Org    string `mapstructure:"org"`
	Bucket string `mapstructure:"bucket"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("debug", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("db.path", "smart_plant.db")
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("control.pump_moisture_threshold", 65)
	v.SetDefault("control.override_validity", 5*time.Minute)
	v.SetDefault("control.prune_interval", 10*time.Minute)

	v.SetDefault("notify.provider", "expo")
	v.SetDefault("notify.expo_url", "https://exp.host/--/api/v2/push/send")
	v.SetDefault("notify.expo_access_token", "")
	v.SetDefault("notify.water_level_threshold", 20)
	v.SetDefault("notify.soil_moisture_threshold", 30)
	v.SetDefault("notify.cooldown", 60*time.Minute)
	v.SetDefault("notify.workers", 4)
	v.SetDefault("notify.queue_size", 256)
	v.SetDefault("notify.timeout", 10*time.Second)

	v.SetDefault("stats.timezone", "Asia/Kuala_Lumpur")
	v.SetDefault("stats.default_days", 7)
	v.SetDefault("stats.max_days", 90)
	v.SetDefault("stats.tank_capacity_liters", 5.0)

	v.SetDefault("admin.operator_key_hash", "")
	v.SetDefault("admin.signing_key", "")
	v.SetDefault("admin.token_ttl", time.Hour)
	v.SetDefault("admin.ticket_ttl", 10*time.Minute)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.client_id", "smart_plant")
	v.SetDefault("mqtt.topic_prefix", "smart_plant")

	v.SetDefault("influx.url", "")
	v.SetDefault("influx.token", "")
	v.SetDefault("influx.org", "")
	v.SetDefault("influx.bucket", "smart_plant")
}

// Load reads .env (if present), then configs/config.yml from the given
// directories, then SMART_PLANT_* environment variables. A missing config file is not an error.
func Load(paths ...string) (*Config, error) {
	// .env is optional; the process environment still applies without it.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	if len(paths) == 0 {
		paths = []string{"configs"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	loc, err := time.LoadLocation(c.Stats.Timezone)
	if err != nil {
		return fmt.Errorf("invalid stats.timezone %q: %w", c.Stats.Timezone, err)
	}
	c.location = loc

	switch {
	case c.Control.OverrideValidity <= 0:
		return fmt.Errorf("control.override_validity must be positive, got %s", c.Control.OverrideValidity)
	case c.Control.PruneInterval <= 0:
		return fmt.Errorf("control.prune_interval must be positive, got %s", c.Control.PruneInterval)
	case c.Notify.Cooldown < 0:
		return fmt.Errorf("notify.cooldown must not be negative, got %s", c.Notify.Cooldown)
	case c.Notify.Workers <= 0:
		return fmt.Errorf("notify.workers must be positive, got %d", c.Notify.Workers)
	case c.Notify.QueueSize <= 0:
		return fmt.Errorf("notify.queue_size must be positive, got %d", c.Notify.QueueSize)
	case c.Stats.DefaultDays <= 0 || c.Stats.MaxDays < c.Stats.DefaultDays:
		return fmt.Errorf("stats.default_days must be in 1..stats.max_days, got %d (max %d)", c.Stats.DefaultDays, c.Stats.MaxDays)
	case c.Stats.TankCapacityLiters <= 0:
		return fmt.Errorf("stats.tank_capacity_liters must be positive, got %v", c.Stats.TankCapacityLiters)
	case c.Admin.TicketTTL <= 0 || c.Admin.TokenTTL <= 0:
		return fmt.Errorf("admin.ticket_ttl and admin.token_ttl must be positive, got %s and %s", c.Admin.TicketTTL, c.Admin.TokenTTL)
	}
	return nil
}

// Location is the time zone used for calendar-day bucketing and display.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}
