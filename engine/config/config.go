// Package config reads the tour binary's settings from TOUR_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the tour binary.
type Config struct {
	Title  string `env:"TITLE" envDefault:"Virtual Tour FSTI ITK"`
	Width  int    `env:"WIDTH" envDefault:"1280"`
	Height int    `env:"HEIGHT" envDefault:"720"`

	TickRate  float64 `env:"TICK_RATE" envDefault:"60"`
	Headless  bool    `env:"HEADLESS" envDefault:"false"`
	Profiling bool    `env:"PROFILING" envDefault:"false"`
	LogLevel  string  `env:"LOG_LEVEL" envDefault:"info"`

	StartLocation string `env:"START_LOCATION" envDefault:"main-building"`
	LocationsFile string `env:"LOCATIONS_FILE"`

	MovementSpeed    float32 `env:"MOVEMENT_SPEED" envDefault:"5"`
	SprintMultiplier float32 `env:"SPRINT_MULTIPLIER" envDefault:"2"`
	LookSensitivity  float32 `env:"LOOK_SENSITIVITY" envDefault:"1"`
	EyeHeight        float32 `env:"EYE_HEIGHT" envDefault:"1.7"`
	MinPitch         float32 `env:"MIN_PITCH" envDefault:"-0.7853982"`
	MaxPitch         float32 `env:"MAX_PITCH" envDefault:"0.7853982"`

	// Remote enables the remote control server listening on RemoteAddr.
	Remote     bool   `env:"REMOTE" envDefault:"true"`
	RemoteAddr string `env:"REMOTE_ADDR" envDefault:":8080"`
}

const prefix = "TOUR_"

// Load reads an optional .env file from dotenvPath, then parses TOUR_* variables.
// Variables already set in the environment win over the file. A missing file is not an error.
//
// Parameters:
//   - dotenvPath: path of the .env file, empty to skip it
//
// Returns:
//   - Config: the parsed and validated configuration
//   - error: a malformed .env file, an unparsable variable or an invalid value
func Load(dotenvPath string) (Config, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", dotenvPath, err)
		}
	}
	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Prefix: prefix})
	if err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting outside its allowed range.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("config: window size must be positive, got %dx%d", c.Width, c.Height)
	case c.TickRate <= 0:
		return fmt.Errorf("config: tick rate must be positive, got %v", c.TickRate)
	case c.MovementSpeed <= 0:
		return fmt.Errorf("config: movement speed must be positive, got %v", c.MovementSpeed)
	case c.SprintMultiplier < 1:
		return fmt.Errorf("config: sprint multiplier must be at least 1, got %v", c.SprintMultiplier)
	case c.MinPitch > c.MaxPitch:
		return fmt.Errorf("config: min pitch %v is above max pitch %v", c.MinPitch, c.MaxPitch)
	case c.MinPitch <= -math.Pi/2 || c.MaxPitch >= math.Pi/2:
		return fmt.Errorf("config: pitch bounds must lie strictly within ±π/2")
	case c.StartLocation == "":
		return fmt.Errorf("config: start location cannot be empty")
	case c.Remote && c.RemoteAddr == "":
		return fmt.Errorf("config: remote address cannot be empty while the remote server is enabled")
	}
	return nil
}
