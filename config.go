package ornament

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// Duration is a time.Duration that reads from strings such as "100ms" in
// both TOML files and environment variables.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config holds every tunable of a Scene. Zero values are not defaults; start
// from DefaultConfig.
type Config struct {
	// TotalCount is the filler plus ornament instance budget.
	TotalCount int `toml:"total_count" env:"ORNAMENT_TOTAL_COUNT"`
	// FillerRatio is the share of TotalCount given to the filler group.
	FillerRatio float64 `toml:"filler_ratio" env:"ORNAMENT_FILLER_RATIO"`
	// RibbonCount is the number of ribbon instances.
	RibbonCount int `toml:"ribbon_count" env:"ORNAMENT_RIBBON_COUNT"`

	FillerSmoothing   float64 `toml:"filler_smoothing" env:"ORNAMENT_FILLER_SMOOTHING"`
	OrnamentSmoothing float64 `toml:"ornament_smoothing" env:"ORNAMENT_ORNAMENT_SMOOTHING"`
	RibbonSmoothing   float64 `toml:"ribbon_smoothing" env:"ORNAMENT_RIBBON_SMOOTHING"`

	// SpinRate is the idle spin in radians per second.
	SpinRate float64 `toml:"spin_rate" env:"ORNAMENT_SPIN_RATE"`
	// SteerSmoothing eases the spin toward the hand-steered angle.
	SteerSmoothing float64 `toml:"steer_smoothing" env:"ORNAMENT_STEER_SMOOTHING"`

	PointerWeight  float64 `toml:"pointer_weight" env:"ORNAMENT_POINTER_WEIGHT"`
	PinchThreshold float64 `toml:"pinch_threshold" env:"ORNAMENT_PINCH_THRESHOLD"`
	OpenThreshold  float64 `toml:"open_threshold" env:"ORNAMENT_OPEN_THRESHOLD"`

	// PollInterval is the gesture edge-detection period.
	PollInterval Duration `toml:"poll_interval" env:"ORNAMENT_POLL_INTERVAL"`

	// Debug enables slog output of transitions and frame stats.
	Debug bool `toml:"debug" env:"ORNAMENT_DEBUG"`
}

// DefaultConfig returns the stock ornament: 7500 filler and ornament
// instances split 85/15 and a 400-piece ribbon.
func DefaultConfig() Config {
	return Config{
		TotalCount:        7500,
		FillerRatio:       0.85,
		RibbonCount:       400,
		FillerSmoothing:   0.05,
		OrnamentSmoothing: 0.05,
		RibbonSmoothing:   0.04,
		SpinRate:          DefaultSpinRate,
		SteerSmoothing:    DefaultSteerSmoothing,
		PointerWeight:     DefaultPointerWeight,
		PinchThreshold:    DefaultPinchThreshold,
		OpenThreshold:     DefaultOpenThreshold,
		PollInterval:      Duration{100 * time.Millisecond},
	}
}

// LoadConfig starts from DefaultConfig, applies the TOML file at path when
// path is non-empty, then applies ORNAMENT_* environment overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("ornament: read config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("ornament: parse config %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("ornament: parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, _, ok := SplitCounts(c.TotalCount, c.FillerRatio); !ok {
		return fmt.Errorf("%w: total_count %d with filler_ratio %v leaves a group empty",
			ErrEmptyGroup, c.TotalCount, c.FillerRatio)
	}
	if c.RibbonCount <= 0 {
		return fmt.Errorf("%w: ribbon_count %d", ErrEmptyGroup, c.RibbonCount)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"filler_smoothing", c.FillerSmoothing},
		{"ornament_smoothing", c.OrnamentSmoothing},
		{"ribbon_smoothing", c.RibbonSmoothing},
		{"steer_smoothing", c.SteerSmoothing},
		{"pointer_weight", c.PointerWeight},
	} {
		if !(f.v > 0 && f.v <= 1) {
			return fmt.Errorf("%w: %s %v", ErrInvalidSmoothing, f.name, f.v)
		}
	}
	if c.PinchThreshold <= 0 || c.OpenThreshold < c.PinchThreshold {
		return fmt.Errorf("%w: thresholds pinch %v open %v must satisfy 0 < pinch <= open",
			ErrInvalidConfig, c.PinchThreshold, c.OpenThreshold)
	}
	if c.PollInterval.Duration <= 0 {
		return fmt.Errorf("%w: poll_interval %v", ErrInvalidConfig, c.PollInterval.Duration)
	}
	return nil
}
