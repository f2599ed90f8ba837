// Package config loads calendar settings from an optional YAML file with
// environment overrides. A missing or unreadable file degrades to defaults;
// the calendar must always be constructible without configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration decodes YAML scalars such as "15m" via time.ParseDuration.
type Duration time.Duration

func (d Duration) String() string { return time.Duration(d).String() }

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(value.Value))
	if err != nil {
		return fmt.Errorf("config: invalid duration %q", value.Value)
	}
	*d = Duration(parsed)
	return nil
}

// SnapshotConfig locates the persisted event snapshot.
type SnapshotConfig struct {
	// Path is the snapshot file location (or SQLite DSN for format "sqlite").
	Path string `yaml:"path"`
	// Format selects the adapter: "jsonl", "csv", "sqlite", or "ics".
	Format string `yaml:"format"`
}

// Config captures the construction parameters for the calendar store.
type Config struct {
	// Rooms is the fixed, ordered room set.
	Rooms []string `yaml:"rooms"`
	// Origin is the grid start timestamp, RFC 3339 or "2006-01-02".
	// Empty means "now", truncated to the slot granularity.
	Origin string `yaml:"origin"`
	// HorizonDays is the covered span in days.
	HorizonDays int `yaml:"horizon_days"`
	// Step is the slot granularity.
	Step Duration `yaml:"step"`

	Snapshot SnapshotConfig `yaml:"snapshot"`
	LogLevel string         `yaml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Rooms:       []string{"Conference Room", "Meeting Room 1", "Meeting Room 2"},
		HorizonDays: 30,
		Step:        Duration(time.Minute),
		Snapshot: SnapshotConfig{
			Path:   "events.jsonl",
			Format: "jsonl",
		},
		LogLevel: "info",
	}
}

// Load reads configuration from path and applies ROOMCAL_* environment
// overrides. A missing or malformed file falls back to defaults; invalid
// override values are reported as errors.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			var fileCfg Config
			if err := yaml.Unmarshal(data, &fileCfg); err == nil {
				cfg.merge(fileCfg)
			}
		}
	}

	invalid := make([]string, 0, 2)

	if rooms := strings.TrimSpace(os.Getenv("ROOMCAL_ROOMS")); rooms != "" {
		cfg.Rooms = splitRooms(rooms)
	}

	originFromEnv := false
	if origin := strings.TrimSpace(os.Getenv("ROOMCAL_ORIGIN")); origin != "" {
		cfg.Origin = origin
		originFromEnv = true
	}

	if horizonValue := strings.TrimSpace(os.Getenv("ROOMCAL_HORIZON_DAYS")); horizonValue != "" {
		horizon, err := strconv.Atoi(horizonValue)
		if err != nil || horizon <= 0 {
			invalid = append(invalid, "ROOMCAL_HORIZON_DAYS")
		} else {
			cfg.HorizonDays = horizon
		}
	}

	if stepValue := strings.TrimSpace(os.Getenv("ROOMCAL_STEP")); stepValue != "" {
		step, err := time.ParseDuration(stepValue)
		if err != nil || step <= 0 {
			invalid = append(invalid, "ROOMCAL_STEP")
		} else {
			cfg.Step = Duration(step)
		}
	}

	if snapshotPath := strings.TrimSpace(os.Getenv("ROOMCAL_SNAPSHOT_PATH")); snapshotPath != "" {
		cfg.Snapshot.Path = snapshotPath
	}

	formatFromEnv := false
	if format := strings.TrimSpace(os.Getenv("ROOMCAL_SNAPSHOT_FORMAT")); format != "" {
		cfg.Snapshot.Format = strings.ToLower(format)
		formatFromEnv = true
	}

	if level := strings.TrimSpace(os.Getenv("ROOMCAL_LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	// Name the offending value by where it came from: the environment
	// override when one is set, the file key otherwise.
	switch cfg.Snapshot.Format {
	case "jsonl", "csv", "sqlite", "ics":
	default:
		key := "snapshot.format"
		if formatFromEnv {
			key = "ROOMCAL_SNAPSHOT_FORMAT"
		}
		invalid = append(invalid, key)
	}

	if _, err := cfg.OriginTime(); err != nil {
		key := "origin"
		if originFromEnv {
			key = "ROOMCAL_ORIGIN"
		}
		invalid = append(invalid, key)
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid configuration values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// OriginTime parses the configured origin. An empty origin yields the zero
// time, which the calendar interprets as "now".
func (c Config) OriginTime() (time.Time, error) {
	value := strings.TrimSpace(c.Origin)
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("config: origin %q is neither RFC 3339 nor a date", c.Origin)
	}
	return t, nil
}

// merge overlays non-zero values from other onto the receiver.
func (c *Config) merge(other Config) {
	if len(other.Rooms) > 0 {
		c.Rooms = other.Rooms
	}
	if other.Origin != "" {
		c.Origin = other.Origin
	}
	if other.HorizonDays > 0 {
		c.HorizonDays = other.HorizonDays
	}
	if other.Step > 0 {
		c.Step = other.Step
	}
	if other.Snapshot.Path != "" {
		c.Snapshot.Path = other.Snapshot.Path
	}
	if other.Snapshot.Format != "" {
		c.Snapshot.Format = strings.ToLower(other.Snapshot.Format)
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
}

func splitRooms(value string) []string {
	parts := strings.Split(value, ",")
	rooms := make([]string, 0, len(parts))
	for _, part := range parts {
		if room := strings.TrimSpace(part); room != "" {
			rooms = append(rooms, room)
		}
	}
	return rooms
}
