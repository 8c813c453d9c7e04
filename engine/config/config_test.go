package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := Parse()
		require.NoError(t, err)
		require.Equal(t, 1280, cfg.Width)
		require.Equal(t, 720, cfg.Height)
		require.Equal(t, 60.0, cfg.TickRate)
		require.Equal(t, "main-building", cfg.StartLocation)
		require.Equal(t, "info", cfg.LogLevel)
		require.True(t, cfg.Remote)
		require.Equal(t, ":8080", cfg.RemoteAddr)
		require.InDelta(t, 1.7, cfg.EyeHeight, 1e-6)
		require.False(t, cfg.Headless)
	})

	t.Run("Prefixed Variables Override", func(t *testing.T) {
		t.Setenv("TOUR_HEADLESS", "true")
		t.Setenv("TOUR_TICK_RATE", "30")
		t.Setenv("TOUR_START_LOCATION", "library")
		t.Setenv("TOUR_REMOTE", "false")
		t.Setenv("HEADLESS", "false")

		cfg, err := Parse()
		require.NoError(t, err)
		require.True(t, cfg.Headless)
		require.Equal(t, 30.0, cfg.TickRate)
		require.Equal(t, "library", cfg.StartLocation)
		require.False(t, cfg.Remote)
		require.Equal(t, ":8080", cfg.RemoteAddr)
	})

	t.Run("Unparsable Value", func(t *testing.T) {
		t.Setenv("TOUR_WIDTH", "wide")
		_, err := Parse()
		require.ErrorContains(t, err, "config: parse env")
	})

	t.Run("Invalid Value", func(t *testing.T) {
		t.Setenv("TOUR_SPRINT_MULTIPLIER", "0.5")
		_, err := Parse()
		require.ErrorContains(t, err, "sprint multiplier")
	})
}

func TestLoad(t *testing.T) {
	t.Run("Reads Dotenv File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("TOUR_TITLE=Campus\nTOUR_WIDTH=800\n"), 0o600))
		t.Cleanup(func() {
			os.Unsetenv("TOUR_TITLE")
			os.Unsetenv("TOUR_WIDTH")
		})

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "Campus", cfg.Title)
		require.Equal(t, 800, cfg.Width)
	})

	t.Run("Environment Wins Over File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("TOUR_HEIGHT=400\n"), 0o600))
		t.Setenv("TOUR_HEIGHT", "900")

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, 900, cfg.Height)
	})

	t.Run("Missing File Is Ignored", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
		require.NoError(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid, err := Parse()
	require.NoError(t, err)

	tests := map[string]func(c *Config){
		"Zero Width":     func(c *Config) { c.Width = 0 },
		"Zero Tick Rate": func(c *Config) { c.TickRate = 0 },
		"Negative Speed": func(c *Config) { c.MovementSpeed = -1 },
		"Inverted Pitch": func(c *Config) { c.MinPitch, c.MaxPitch = 0.5, -0.5 },
		"Pitch Too Wide": func(c *Config) { c.MaxPitch = 2 },
		"Pitch Vertical": func(c *Config) { c.MinPitch = -math.Pi / 2 },
		"Empty Start":    func(c *Config) { c.StartLocation = "" },
		"No Remote Addr": func(c *Config) { c.RemoteAddr = "" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := valid
			mutate(&c)
			require.Error(t, c.Validate())
		})
	}
}
