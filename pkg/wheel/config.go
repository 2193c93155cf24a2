package wheel

import (
	"errors"
	"fmt"
	"time"
)

// Default animation parameters.
const (
	DefaultDuration      = 5 * time.Second
	DefaultFPS           = 60.0
	DefaultEase          = 0.75
	DefaultMinExtraTurns = 15
	DefaultMaxExtraTurns = 20
)

// MaxSectors is the number of predefined sectors in [Palette].
const MaxSectors = 12

// Sentinel errors for wheel configuration.
var (
	// ErrNoSectors is returned when a wheel is created without sectors.
	ErrNoSectors = errors.New("wheel has no sectors")

	// ErrInvalidWeights is returned when weights do not match the sectors,
	// are negative, or sum to zero.
	ErrInvalidWeights = errors.New("invalid sector weights")

	// ErrInvalidConfig is returned for out-of-range animation parameters.
	ErrInvalidConfig = errors.New("invalid wheel config")

	// ErrSpinning is returned by operations that cannot run during a spin.
	ErrSpinning = errors.New("wheel is spinning")
)

// Config holds the spin animation parameters.
type Config struct {
	Duration      time.Duration // target spin duration
	FPS           float64       // frames per second of the driver
	Ease          float64       // ease-out exponent, in (0, 1)
	MinExtraTurns int           // minimum extra full rotations
	MaxExtraTurns int           // maximum extra full rotations
}

// DefaultConfig returns a 5 second, 60 fps spin with 15-20 extra turns.
func DefaultConfig() Config {
	return Config{
		Duration:      DefaultDuration,
		FPS:           DefaultFPS,
		Ease:          DefaultEase,
		MinExtraTurns: DefaultMinExtraTurns,
		MaxExtraTurns: DefaultMaxExtraTurns,
	}
}

// Frames returns the number of frames in one spin.
func (c Config) Frames() float64 {
	return c.Duration.Seconds() * c.FPS
}

// FrameInterval returns the time between two frames.
func (c Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / c.FPS)
}

// Validate checks the parameters.
func (c Config) Validate() error {
	switch {
	case c.Duration <= 0:
		return fmt.Errorf("%w: duration must be positive", ErrInvalidConfig)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive", ErrInvalidConfig)
	case c.Ease <= 0 || c.Ease >= 1:
		return fmt.Errorf("%w: ease must be in (0, 1), got %g", ErrInvalidConfig, c.Ease)
	case c.MinExtraTurns < 0 || c.MaxExtraTurns < c.MinExtraTurns:
		return fmt.Errorf("%w: extra turns range [%d, %d]", ErrInvalidConfig, c.MinExtraTurns, c.MaxExtraTurns)
	}
	return nil
}

// Sector is one slice of the wheel.
type Sector struct {
	Color string `json:"color"`
	Label string `json:"label"`
}

// Palette holds the predefined sectors, numbered 1 to 12.
var Palette = [MaxSectors]Sector{
	{"#0bf", "1"},
	{"#fb0", "2"},
	{"#0fb", "3"},
	{"#b0f", "4"},
	{"#f0b", "5"},
	{"#bf0", "6"},
	{"#09ff00", "7"},
	{"#676bff", "8"},
	{"#ff2020", "9"},
	{"#0f9a00", "10"},
	{"#bb54ff", "11"},
	{"#ff8000", "12"},
}

// PaletteSectors returns the first n predefined sectors.
func PaletteSectors(n int) ([]Sector, error) {
	if n < 1 || n > MaxSectors {
		return nil, fmt.Errorf("%w: sector count %d out of range 1-%d", ErrInvalidConfig, n, MaxSectors)
	}
	out := make([]Sector, n)
	copy(out, Palette[:n])
	return out, nil
}
