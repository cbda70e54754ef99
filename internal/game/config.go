package game

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Frame timing.
const (
	FPS             = 60
	GameSpeedFactor = 1.25
	MaxFrameSteps   = 3 // frame gaps longer than this many frames are clamped
)

// Flight physics (per second).
const (
	Gravity             = 0.20 * 60
	Thrust              = 0.65 * 60
	FuelConsumptionRate = 35.0
	RotationSpeed       = 100.0 // degrees per second
)

// Landing limits.
const (
	SafeLandingVY   = 12.0
	SafeLandingVX   = 5.0
	MaxSafeRotation = 4.0
	LevelTolerance  = 2.0 // max height difference under the two feet
	FlatZoneSlack   = 5.0 // vertical slack for "foot is on the flat zone"
)

// Fuel and scoring.
const (
	StartFuel        = 2000.0
	LowFuelThreshold = 200.0
	CrashFuelPenalty = 200.0
	BaseLandingScore = 100
	PerfectBonus     = 500
	MaxInitials      = 3
)

// Terrain generation.
const (
	TerrainWidthScreens   = 10   // terrain spans this many screen widths
	TerrainSegmentWidth   = 3.0  // horizontal step per polyline point
	TerrainStepJitter     = 6.0  // per-step noise range (+/-)
	TerrainTrendStrength  = 1.8  // max slope of the slow trend
	TerrainTrendMin       = 80   // min travel before the trend changes
	TerrainTrendMax       = 200  // max travel before the trend changes
	FlatZoneProbability   = 0.004
	FlatZoneMargin        = 4.0 // added to ship width for the minimum zone width
	FlatZoneGapFactor     = 9.0 // zone gap in multiples of the minimum zone width
	FlatZoneWidthSpread   = 2.5 // zone width varies in [mfz, mfz*(1+spread))
	TerrainCeilingOffset  = 1300.0
	TerrainFloorOffset    = 100.0
	TerrainStartBandLower = 1000.0
)

// Ship geometry.
const (
	ShipWidthFraction   = 0.02 // ship width as a fraction of screen width
	ShipSpriteW         = 32.0 // hull aspect source
	ShipSpriteH         = 24.0
	ShipStartHeightFrac = 1.0 / 3.0
	ShipMaxStartVX      = 20
)

// Particles.
const (
	MaxParticles      = 4000
	CrashParticles    = 750
	ParticleGravity   = 15.0
	ParticleMinLife   = 1.5
	ParticleLifeRange = 2.5
)

// Config holds the values a player or operator may override at start-up.
type Config struct {
	ScreenWidth  float64
	ScreenHeight float64
	StartFuel    float64
	ScoresFile   string
	ScoresURL    string
	Mute         bool
	LogLevel     slog.Level
}

func DefaultConfig() Config {
	return Config{
		ScreenWidth:  1280,
		ScreenHeight: 960,
		StartFuel:    StartFuel,
		ScoresFile:   "lander_scores.json",
		LogLevel:     slog.LevelInfo,
	}
}

// ConfigFromEnv starts from DefaultConfig and applies LANDER_* overrides.
// Malformed values are logged and ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if s := os.Getenv("LANDER_FUEL"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil && v > 0 {
			cfg.StartFuel = v
		} else {
			slog.Warn("ignoring LANDER_FUEL", "value", s)
		}
	}
	if s := os.Getenv("LANDER_SCORES_FILE"); s != "" {
		cfg.ScoresFile = s
	}
	cfg.ScoresURL = os.Getenv("LANDER_SCORES_URL")
	if s := os.Getenv("LANDER_MUTE"); s != "" {
		if v, err := strconv.ParseBool(s); err == nil {
			cfg.Mute = v
		} else {
			slog.Warn("ignoring LANDER_MUTE", "value", s)
		}
	}
	if s := os.Getenv("LANDER_LOG_LEVEL"); s != "" {
		cfg.LogLevel = ParseLogLevel(s)
	}
	return cfg
}

// ParseLogLevel maps debug|info|warn|error to a slog level, defaulting to info.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// NewLogger builds the stderr text logger shared by all commands.
func NewLogger(level slog.Level) *slog.Logger {
	return NewLoggerTo(os.Stderr, level)
}

// NewLoggerTo is NewLogger writing to w.
func NewLoggerTo(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// ShipSize returns the hull size for a screen width, keeping the sprite aspect.
func ShipSize(screenWidth float64) (w, h float64) {
	w = float64(int(screenWidth * ShipWidthFraction))
	if w < 1 {
		w = ShipSpriteW
	}
	h = float64(int(ShipSpriteH * w / ShipSpriteW))
	if h < 1 {
		h = 1
	}
	return w, h
}

// StepDuration converts a raw frame gap in seconds into simulation time:
// stalls are capped at MaxFrameSteps frames and the game-speed factor applied.
func StepDuration(raw float64) float64 {
	if raw < 0 {
		raw = 0
	}
	if limit := float64(MaxFrameSteps) / FPS; raw > limit {
		raw = limit
	}
	return raw * GameSpeedFactor
}
