// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// ShowConfig contains configuration for a fireworks show
type ShowConfig struct {
	Canvas   CanvasConfig   `json:"canvas"`
	Firework FireworkConfig `json:"firework"`
	Launch   LaunchConfig   `json:"launch"`
	Timing   TimingConfig   `json:"timing"`
	Seed     uint64         `json:"seed"` // 0 picks a time-based seed
	Sound    bool           `json:"sound"`
	Overlay  bool           `json:"overlay"`
}

// CanvasConfig contains the initial drawing area size
type CanvasConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// FireworkConfig contains per-firework physics settings
type FireworkConfig struct {
	TotalParticles   int     `json:"totalParticles"`
	Radius           float64 `json:"radius"`
	ParticleSpeedMin float64 `json:"particleSpeedMin"`
	ParticleSpeedMax float64 `json:"particleSpeedMax"`
	RocketSpeed      float64 `json:"rocketSpeed"`
	Gravity          float64 `json:"gravity"`
}

// LaunchConfig contains the staggered creation settings
type LaunchConfig struct {
	DelayMs    int `json:"delayMs"`
	Total      int `json:"total"`
	SkipFrames int `json:"skipFrames"`
}

// TimingConfig contains frame timing settings
type TimingConfig struct {
	FrameRate    int     `json:"frameRate"`    // ticks per second for hosts without vsync
	MaxDeltaTime float64 `json:"maxDeltaTime"` // seconds, 0 disables the cap
}

// LaunchDelay returns the delay between two firework creations.
func (c *ShowConfig) LaunchDelay() time.Duration {
	return time.Duration(c.Launch.DelayMs) * time.Millisecond
}

// FrameInterval returns the tick period derived from the frame rate.
func (c *ShowConfig) FrameInterval() time.Duration {
	if c.Timing.FrameRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.Timing.FrameRate)
}

// Validate checks the configuration for values the show cannot run with.
func (c *ShowConfig) Validate() error {
	var errs []error

	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height))
	}
	if c.Firework.TotalParticles <= 0 {
		errs = append(errs, fmt.Errorf("firework.totalParticles must be positive, got %d", c.Firework.TotalParticles))
	}
	if c.Firework.Radius <= 0 {
		errs = append(errs, fmt.Errorf("firework.radius must be positive, got %v", c.Firework.Radius))
	}
	if c.Firework.ParticleSpeedMin < 0 || c.Firework.ParticleSpeedMax < c.Firework.ParticleSpeedMin {
		errs = append(errs, fmt.Errorf("firework particle speed range [%v, %v] is invalid",
			c.Firework.ParticleSpeedMin, c.Firework.ParticleSpeedMax))
	}
	if c.Firework.RocketSpeed <= 0 {
		errs = append(errs, fmt.Errorf("firework.rocketSpeed must be positive, got %v", c.Firework.RocketSpeed))
	}
	if c.Launch.DelayMs < 0 {
		errs = append(errs, fmt.Errorf("launch.delayMs cannot be negative, got %d", c.Launch.DelayMs))
	}
	if c.Launch.Total < 0 {
		errs = append(errs, fmt.Errorf("launch.total cannot be negative, got %d", c.Launch.Total))
	}
	if c.Launch.SkipFrames < 0 {
		errs = append(errs, fmt.Errorf("launch.skipFrames cannot be negative, got %d", c.Launch.SkipFrames))
	}
	if c.Timing.FrameRate < 0 {
		errs = append(errs, fmt.Errorf("timing.frameRate cannot be negative, got %d", c.Timing.FrameRate))
	}
	if c.Timing.MaxDeltaTime < 0 {
		errs = append(errs, fmt.Errorf("timing.maxDeltaTime cannot be negative, got %v", c.Timing.MaxDeltaTime))
	}

	return errors.Join(errs...)
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*ShowConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Load reads the configuration file at path, or starts from the defaults
// when path is empty or missing, then applies environment overrides and
// validates the result.
func Load(path string) (*ShowConfig, error) {
	config := DefaultConfig()
	if path != "" {
		loaded, err := LoadConfig(path)
		switch {
		case err == nil:
			config = loaded
		case !errors.Is(err, os.ErrNotExist):
			return nil, err
		}
	}

	ApplyEnvironmentOverrides(config)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *ShowConfig, path string) error {
	if config == nil {
		return errors.New("cannot save nil config")
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default show configuration
func DefaultConfig() *ShowConfig {
	return &ShowConfig{
		Canvas: CanvasConfig{
			Width:  640,
			Height: 480,
		},
		Firework: FireworkConfig{
			TotalParticles:   100,
			Radius:           140,
			ParticleSpeedMin: 100,
			ParticleSpeedMax: 300,
			RocketSpeed:      800,
			Gravity:          0.12,
		},
		Launch: LaunchConfig{
			DelayMs:    500,
			Total:      20,
			SkipFrames: 2,
		},
		Timing: TimingConfig{
			FrameRate:    60,
			MaxDeltaTime: 0,
		},
		Overlay: true,
	}
}
