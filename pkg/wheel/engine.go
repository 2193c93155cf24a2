package wheel

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"time"
)

// Engine holds sectors, weights and spin state for one wheel.
type Engine struct {
	sectors  []Sector
	weights  []float64
	cfg      Config
	rng      *rand.Rand
	state    SpinState
	selected int
}

// Option configures an [Engine].
type Option func(*Engine)

// WithConfig sets the animation parameters.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithSeed makes draws and target angles reproducible.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewPCG(seed, seed^0xdeadbeef)) }
}

// WithRand sets the random source.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithWeights sets the initial weights. The default is 1 per sector.
func WithWeights(weights []float64) Option {
	return func(e *Engine) { e.weights = slices.Clone(weights) }
}

// New creates an idle wheel for sectors, resting with sector 0 under the pointer.
func New(sectors []Sector, opts ...Option) (*Engine, error) {
	if len(sectors) == 0 {
		return nil, ErrNoSectors
	}
	e := &Engine{
		sectors:  slices.Clone(sectors),
		cfg:      DefaultConfig(),
		selected: -1,
		state:    SpinState{CurrentAngle: PointerAngle},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if e.weights == nil {
		e.weights = uniformWeights(len(sectors))
	}
	if err := validateWeights(e.weights, len(sectors)); err != nil {
		return nil, err
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// NewDefault creates a wheel with the first n sectors of [Palette].
func NewDefault(n int, opts ...Option) (*Engine, error) {
	sectors, err := PaletteSectors(n)
	if err != nil {
		return nil, err
	}
	return New(sectors, opts...)
}

func uniformWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

func validateWeights(weights []float64, n int) error {
	if len(weights) != n {
		return fmt.Errorf("%w: %d weights for %d sectors", ErrInvalidWeights, len(weights), n)
	}
	total := 0.0
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: weight %d is not finite", ErrInvalidWeights, i)
		}
		if w < 0 {
			return fmt.Errorf("%w: weight %d is negative", ErrInvalidWeights, i)
		}
		total += w
	}
	if math.IsInf(total, 0) {
		return fmt.Errorf("%w: total weight overflows", ErrInvalidWeights)
	}
	if total <= 0 {
		return fmt.Errorf("%w: total weight must be positive", ErrInvalidWeights)
	}
	return nil
}

// Select draws a sector by weight and rebalances the weights away from it.
func (e *Engine) Select() int {
	i := Draw(e.weights, e.rng.Float64())
	Redistribute(e.weights, i)
	return i
}

// StartSpin selects a sector and starts a spin that will come to rest on it.
// It returns the selected index and true, or the current selection and false
// if a spin is already running.
func (e *Engine) StartSpin() (int, bool) {
	if e.state.Spinning {
		return e.selected, false
	}
	n := len(e.sectors)
	i := e.Select()
	target := TargetAngle(i, n, e.rng.Float64())
	extra := e.cfg.MinExtraTurns + e.rng.IntN(e.cfg.MaxExtraTurns-e.cfg.MinExtraTurns+1)

	e.state = Plan(e.state.CurrentAngle, target, extra, e.cfg)
	e.selected = i
	return i, true
}

// Tick advances the animation by dt and returns the new angle and whether
// the wheel is still spinning. dt <= 0 advances exactly one frame.
func (e *Engine) Tick(dt time.Duration) (float64, bool) {
	if !e.state.Spinning {
		return e.state.CurrentAngle, false
	}
	frames := 1.0
	if dt > 0 {
		frames = dt.Seconds() * e.cfg.FPS
	}
	e.state = Advance(e.state, frames, e.cfg.Ease)
	return e.state.CurrentAngle, e.state.Spinning
}

// Reset stops the wheel at the pointer angle and clears the selection.
// Weights are kept.
func (e *Engine) Reset() {
	e.state = SpinState{CurrentAngle: PointerAngle}
	e.selected = -1
}

// Resize replaces the sectors with the first n of [Palette] and resets the
// weights to 1. It fails while spinning.
func (e *Engine) Resize(n int) error {
	if e.state.Spinning {
		return ErrSpinning
	}
	sectors, err := PaletteSectors(n)
	if err != nil {
		return err
	}
	e.sectors = sectors
	e.weights = uniformWeights(n)
	e.Reset()
	return nil
}

// CurrentSectorIndex returns the sector under the pointer.
func (e *Engine) CurrentSectorIndex() int {
	return SectorIndex(e.state.CurrentAngle, len(e.sectors))
}

// CurrentSector returns the sector under the pointer.
func (e *Engine) CurrentSector() Sector {
	return e.sectors[e.CurrentSectorIndex()]
}

// Selected returns the sector chosen by the last spin, if any.
func (e *Engine) Selected() (int, bool) {
	return e.selected, e.selected >= 0
}

// Angle returns the current angle in radians.
func (e *Engine) Angle() float64 { return e.state.CurrentAngle }

// Spinning reports whether a spin is in progress.
func (e *Engine) Spinning() bool { return e.state.Spinning }

// State returns a copy of the spin state.
func (e *Engine) State() SpinState { return e.state }

// Config returns the animation parameters.
func (e *Engine) Config() Config { return e.cfg }

// FrameInterval returns the tick interval the driver should use.
func (e *Engine) FrameInterval() time.Duration { return e.cfg.FrameInterval() }

// Sectors returns a copy of the sectors.
func (e *Engine) Sectors() []Sector { return slices.Clone(e.sectors) }

// Weights returns a copy of the current weights.
func (e *Engine) Weights() []float64 { return slices.Clone(e.weights) }

// Segment is one entry of the weight distribution bar.
type Segment struct {
	Label   string  `json:"label"`
	Color   string  `json:"color"`
	Weight  float64 `json:"weight"`
	Percent float64 `json:"percent"`
}

// Distribution returns each sector's share of the total weight.
func (e *Engine) Distribution() []Segment {
	total := 0.0
	for _, w := range e.weights {
		total += w
	}
	if total == 0 {
		return nil
	}
	out := make([]Segment, len(e.sectors))
	for i, s := range e.sectors {
		out[i] = Segment{
			Label:   s.Label,
			Color:   s.Color,
			Weight:  e.weights[i],
			Percent: e.weights[i] / total * 100,
		}
	}
	return out
}
