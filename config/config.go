package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// PlaceholderAPIKey is the value shipped in example configs. It counts as
// "no key configured".
const PlaceholderAPIKey = "YOUR_TOMTOM_API_KEY_HERE"

const (
	HistorySynthetic = "synthetic"
	HistoryPostgres  = "postgres"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Traffic    TrafficConfig    `mapstructure:"traffic"`
	History    HistoryConfig    `mapstructure:"history"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	MQTT       MQTTConfig       `mapstructure:"mqtt"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	WebSocket  WebSocketConfig  `mapstructure:"websocket"`
	CORS       CORSConfig       `mapstructure:"cors"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type TrafficConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	APIKey          string        `mapstructure:"api_key"`
	FlowBaseURL     string        `mapstructure:"flow_base_url"`
	Zoom            int           `mapstructure:"zoom"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	RequestDelay    time.Duration `mapstructure:"request_delay"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	Bounds          AreaBounds    `mapstructure:"bounds"`
}

// LiveEnabled reports whether live flow fetching is switched on and has a
// usable API key.
func (t TrafficConfig) LiveEnabled() bool {
	key := strings.TrimSpace(t.APIKey)
	return t.Enabled && key != "" && key != PlaceholderAPIKey
}

type AreaBounds struct {
	North float64 `mapstructure:"north"`
	South float64 `mapstructure:"south"`
	East  float64 `mapstructure:"east"`
	West  float64 `mapstructure:"west"`
}

// Contains reports whether the point lies inside the box. A zero box
// contains everything.
func (b AreaBounds) Contains(lat, lng float64) bool {
	if b == (AreaBounds{}) {
		return true
	}
	return lat <= b.North && lat >= b.South && lng <= b.East && lng >= b.West
}

type HistoryConfig struct {
	Source  string                  `mapstructure:"source"`
	Periods map[string]PeriodConfig `mapstructure:"periods"`
}

type PeriodConfig struct {
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

// Bounds parses the period in loc. Timestamps without an offset are taken
// as wall-clock times of loc.
func (p PeriodConfig) Bounds(loc *time.Location) (time.Time, time.Time, error) {
	start, err := cast.ToTimeInDefaultLocationE(p.Start, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid period start %q: %w", p.Start, err)
	}
	end, err := cast.ToTimeInDefaultLocationE(p.End, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid period end %q: %w", p.End, err)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("period end %s is not after start %s", end, start)
	}
	return start, end, nil
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type RedisConfig struct {
	URL     string `mapstructure:"url"`
	Channel string `mapstructure:"channel"`
}

type MQTTConfig struct {
	URL         string `mapstructure:"url"`
	TopicPrefix string `mapstructure:"topic_prefix"`
	ClientID    string `mapstructure:"client_id"`
}

type SimulationConfig struct {
	Scenario        string        `mapstructure:"scenario"`
	Timezone        string        `mapstructure:"timezone"`
	FrameInterval   time.Duration `mapstructure:"frame_interval"`
	PerturbInterval time.Duration `mapstructure:"perturb_interval"`
	Speed           float64       `mapstructure:"speed"`
	Seed            uint64        `mapstructure:"seed"`
}

func (s SimulationConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

type WebSocketConfig struct {
	PollIntervalMS int `mapstructure:"poll_interval_ms"`
}

func (w WebSocketConfig) PollInterval() time.Duration {
	return time.Duration(w.PollIntervalMS) * time.Millisecond
}

type CORSConfig struct {
	AllowedOrigins string `mapstructure:"allowed_origins"`
}

var envBindings = map[string]string{
	"server.port":                 "SERVER_PORT",
	"traffic.enabled":             "USE_REALTIME_DATA",
	"traffic.api_key":             "TOMTOM_API_KEY",
	"traffic.flow_base_url":       "TOMTOM_TRAFFIC_FLOW_BASE",
	"traffic.zoom":                "TRAFFIC_ZOOM_LEVEL",
	"traffic.refresh_interval":    "REALTIME_UPDATE_INTERVAL",
	"traffic.request_delay":       "TRAFFIC_REQUEST_DELAY",
	"traffic.request_timeout":     "TRAFFIC_REQUEST_TIMEOUT",
	"traffic.bounds.north":        "AREA_BOUNDS_NORTH",
	"traffic.bounds.south":        "AREA_BOUNDS_SOUTH",
	"traffic.bounds.east":         "AREA_BOUNDS_EAST",
	"traffic.bounds.west":         "AREA_BOUNDS_WEST",
	"history.source":              "HISTORICAL_DATA_SOURCE",
	"database.dsn":                "DB_DSN",
	"redis.url":                   "REDIS_URL",
	"redis.channel":               "REDIS_CHANNEL",
	"mqtt.url":                    "MQTT_URL",
	"mqtt.topic_prefix":           "MQTT_TOPIC_PREFIX",
	"mqtt.client_id":              "MQTT_CLIENT_ID",
	"simulation.scenario":         "SIM_SCENARIO",
	"simulation.timezone":         "SIM_TIMEZONE",
	"simulation.frame_interval":   "SIM_FRAME_INTERVAL",
	"simulation.perturb_interval": "SIM_PERTURB_INTERVAL",
	"simulation.speed":            "SIM_SPEED",
	"simulation.seed":             "SIM_SEED",
	"websocket.poll_interval_ms":  "WS_POLL_INTERVAL_MS",
	"cors.allowed_origins":        "CORS_ALLOWED_ORIGINS",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)

	v.SetDefault("traffic.enabled", false)
	v.SetDefault("traffic.api_key", "")
	v.SetDefault("traffic.flow_base_url", "https://api.tomtom.com/traffic/services/4/flowSegmentData")
	v.SetDefault("traffic.zoom", 18)
	v.SetDefault("traffic.refresh_interval", time.Minute)
	v.SetDefault("traffic.request_delay", 100*time.Millisecond)
	v.SetDefault("traffic.request_timeout", 5*time.Second)
	// University Park, MD
	v.SetDefault("traffic.bounds.north", 38.9950)
	v.SetDefault("traffic.bounds.south", 38.9550)
	v.SetDefault("traffic.bounds.east", -76.9200)
	v.SetDefault("traffic.bounds.west", -76.9700)

	v.SetDefault("history.source", HistorySynthetic)
	v.SetDefault("history.periods", map[string]any{
		"april-2025": map[string]any{"start": "2025-04-23T06:00:00", "end": "2025-04-23T19:00:00"},
		"dec-2025":   map[string]any{"start": "2025-12-15T06:00:00", "end": "2025-12-15T19:00:00"},
		"jan-2026":   map[string]any{"start": "2026-01-02T06:00:00", "end": "2026-01-02T19:00:00"},
	})

	v.SetDefault("database.dsn", "")
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.channel", "cityflow:sim")
	v.SetDefault("mqtt.url", "")
	v.SetDefault("mqtt.topic_prefix", "cityflow/traffic")
	v.SetDefault("mqtt.client_id", "")

	v.SetDefault("simulation.scenario", "realtime")
	v.SetDefault("simulation.timezone", "America/New_York")
	v.SetDefault("simulation.frame_interval", time.Second/60)
	v.SetDefault("simulation.perturb_interval", 10*time.Second)
	v.SetDefault("simulation.speed", 1.0)
	v.SetDefault("simulation.seed", 0)

	v.SetDefault("websocket.poll_interval_ms", 250)
	v.SetDefault("cors.allowed_origins", "*")
}

// LoadConfig reads defaults, the optional YAML file at path and the
// environment, in increasing order of precedence.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
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
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid SERVER_PORT: %d", c.Server.Port)
	}
	if c.Traffic.Zoom < 0 || c.Traffic.Zoom > 22 {
		return fmt.Errorf("invalid TRAFFIC_ZOOM_LEVEL: %d", c.Traffic.Zoom)
	}
	if c.Traffic.RefreshInterval <= 0 {
		return fmt.Errorf("invalid REALTIME_UPDATE_INTERVAL: %s", c.Traffic.RefreshInterval)
	}
	if c.Simulation.FrameInterval <= 0 {
		return fmt.Errorf("invalid SIM_FRAME_INTERVAL: %s", c.Simulation.FrameInterval)
	}
	if c.Simulation.PerturbInterval <= 0 {
		return fmt.Errorf("invalid SIM_PERTURB_INTERVAL: %s", c.Simulation.PerturbInterval)
	}
	loc, err := c.Simulation.Location()
	if err != nil {
		return fmt.Errorf("invalid SIM_TIMEZONE: %w", err)
	}

	switch c.History.Source {
	case HistorySynthetic:
	case HistoryPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("HISTORICAL_DATA_SOURCE=%s requires DB_DSN", HistoryPostgres)
		}
	default:
		return fmt.Errorf("invalid HISTORICAL_DATA_SOURCE: %q", c.History.Source)
	}
	for name, p := range c.History.Periods {
		if _, _, err := p.Bounds(loc); err != nil {
			return fmt.Errorf("historical period %s: %w", name, err)
		}
	}
	return nil
}
