package wheel

import (
	stderrors "errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/luckywheel/pkg/errors"
)

// Defaults applied to zero Config fields.
const (
	DefaultSpeed                = 20.0
	DefaultAccelerationDuration = 2500 * time.Millisecond
	DefaultDecelerationDuration = 2500 * time.Millisecond
)

var (
	// ErrNoSegments is returned when a wheel is built without segments.
	ErrNoSegments = stderrors.New("wheel: at least one segment is required")
	// ErrInvalidSpeed is returned for a speed outside (0, 360].
	ErrInvalidSpeed = stderrors.New("wheel: speed must be in (0, 360]")
	// ErrInvalidDuration is returned for a negative phase duration.
	ErrInvalidDuration = stderrors.New("wheel: durations must not be negative")
	// ErrDisposed is returned by operations on a disposed wheel.
	ErrDisposed = stderrors.New("wheel: disposed")
)

// FinishedFunc is called once per completed spin cycle, on the frame
// after the wheel comes to rest. index is the stop index passed to Stop
// (negative for "no prize"); stopped is false only when the cycle ended
// without a recorded stop.
type FinishedFunc func(index int, stopped bool)

// Config describes a wheel. Zero fields are replaced by defaults.
type Config struct {
	// Segments are the prize slots in clockwise order.
	Segments []Segment `yaml:"segments"`
	// Speed is the cruising rotation in degrees per frame.
	Speed float64 `yaml:"speed"`
	// AccelerationDuration is how long the ramp to Speed takes.
	AccelerationDuration time.Duration `yaml:"acceleration"`
	// DecelerationDuration is how long the wheel takes to settle once
	// deceleration begins.
	DecelerationDuration time.Duration `yaml:"deceleration"`
	// OnFinished is invoked when a cycle completes. May be nil.
	OnFinished FinishedFunc `yaml:"-"`
}

// DefaultConfig returns the default timing with no segments.
func DefaultConfig() Config {
	return Config{
		Speed:                DefaultSpeed,
		AccelerationDuration: DefaultAccelerationDuration,
		DecelerationDuration: DefaultDecelerationDuration,
	}
}

// WithDefaults returns c with zero fields replaced by the defaults.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.Speed == 0 {
		c.Speed = d.Speed
	}
	if c.AccelerationDuration == 0 {
		c.AccelerationDuration = d.AccelerationDuration
	}
	if c.DecelerationDuration == 0 {
		c.DecelerationDuration = d.DecelerationDuration
	}
	return c
}

// Validate checks a merged configuration.
func (c Config) Validate() error {
	if len(c.Segments) == 0 {
		return ErrNoSegments
	}
	if !(c.Speed > 0) || c.Speed > 360 {
		return fmt.Errorf("%w: got %v", ErrInvalidSpeed, c.Speed)
	}
	if c.AccelerationDuration < 0 || c.DecelerationDuration < 0 {
		return ErrInvalidDuration
	}
	return nil
}

// ParseConfig decodes a YAML wheel description and merges it over the
// defaults. Durations use Go syntax ("2500ms", "2.5s").
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.New("wheel.ParseConfig", errors.KindConfig, err)
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.New("wheel.ParseConfig", errors.KindConfig, err)
	}
	return cfg, nil
}
