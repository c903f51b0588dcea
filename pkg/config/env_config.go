package config

import (
	"os"
	"strconv"
	"time"
)

// Environment variables read by ApplyEnvironmentOverrides.
const (
	EnvWidth       = "FIREWORKS_WIDTH"
	EnvHeight      = "FIREWORKS_HEIGHT"
	EnvTotal       = "FIREWORKS_TOTAL"
	EnvLaunchDelay = "FIREWORKS_LAUNCH_DELAY"
	EnvParticles   = "FIREWORKS_PARTICLES"
	EnvSkipFrames  = "FIREWORKS_SKIP_FRAMES"
	EnvMaxDelta    = "FIREWORKS_MAX_DELTA"
	EnvFrameRate   = "FIREWORKS_FRAME_RATE"
	EnvSeed        = "FIREWORKS_SEED"
	EnvSound       = "FIREWORKS_SOUND"
	EnvOverlay     = "FIREWORKS_OVERLAY"
)

// LoadConfigFromEnv returns the default configuration with environment
// overrides applied, validated.
func LoadConfigFromEnv() (*ShowConfig, error) {
	config := DefaultConfig()
	ApplyEnvironmentOverrides(config)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnvironmentOverrides replaces fields of config with any FIREWORKS_*
// variables that are set and parse. Malformed values are ignored.
func ApplyEnvironmentOverrides(config *ShowConfig) {
	config.Canvas.Width = getEnvAsIntOrDefault(EnvWidth, config.Canvas.Width)
	config.Canvas.Height = getEnvAsIntOrDefault(EnvHeight, config.Canvas.Height)
	config.Launch.Total = getEnvAsIntOrDefault(EnvTotal, config.Launch.Total)
	config.Launch.DelayMs = int(getEnvAsDurationOrDefault(EnvLaunchDelay, config.LaunchDelay()) / time.Millisecond)
	config.Launch.SkipFrames = getEnvAsIntOrDefault(EnvSkipFrames, config.Launch.SkipFrames)
	config.Firework.TotalParticles = getEnvAsIntOrDefault(EnvParticles, config.Firework.TotalParticles)
	config.Timing.MaxDeltaTime = getEnvAsFloatOrDefault(EnvMaxDelta, config.Timing.MaxDeltaTime)
	config.Timing.FrameRate = getEnvAsIntOrDefault(EnvFrameRate, config.Timing.FrameRate)
	config.Sound = getEnvAsBoolOrDefault(EnvSound, config.Sound)
	config.Overlay = getEnvAsBoolOrDefault(EnvOverlay, config.Overlay)

	if seed, err := strconv.ParseUint(getEnvOrDefault(EnvSeed, ""), 10, 64); err == nil {
		config.Seed = seed
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnvOrDefault(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnvOrDefault(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnvOrDefault(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnvOrDefault(key, "")); err == nil {
		return value
	}
	return defaultValue
}
