// Package daemon manages the FitQuest daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration.
type Config struct {
	API           APIConfig          `toml:"api"`
	Engine        EngineConfig       `toml:"engine"`
	Notifications NotificationConfig `toml:"notifications"`
	Telemetry     TelemetryConfig    `toml:"telemetry"`
	Logging       LoggingConfig      `toml:"logging"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// EngineConfig controls progress engine behavior.
type EngineConfig struct {
	// DailyGoalThreshold is how many completed daily missions count as a
	// won day. Zero means the built-in default.
	DailyGoalThreshold int `toml:"daily_goal_threshold"`
}

// NotificationConfig controls notification delivery.
type NotificationConfig struct {
	MaxPerDay  int    `toml:"max_per_day"`
	QuietStart string `toml:"quiet_start"`
	QuietEnd   string `toml:"quiet_end"`
}

// TelemetryConfig controls observability endpoints.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := fitquestHome()
	return Config{
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        8170,
			CORSOrigins: []string{"*"},
		},
		Engine: EngineConfig{
			DailyGoalThreshold: 0, // 0 = engine default
		},
		Notifications: NotificationConfig{
			MaxPerDay:  10,
			QuietStart: "22:00",
			QuietEnd:   "08:00",
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, "fitquest.log"),
		},
	}
}

// LoadConfig reads config from ~/.fitquest/config.toml, falling back to
// defaults when no file exists.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(fitquestHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.fitquest/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(fitquestHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// fitquestHome returns the FitQuest data directory.
func fitquestHome() string {
	if env := os.Getenv("FITQUEST_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".fitquest")
}

// FitquestHome is exported for use by other packages.
func FitquestHome() string {
	return fitquestHome()
}
