package wheel

import "math"

const (
	// Tau is one full turn in radians.
	Tau = 2 * math.Pi

	// PointerAngle is the fixed pointer position (top of the wheel) and the
	// resting angle of a fresh or reset wheel.
	PointerAngle = -math.Pi / 2

	// sectorMargin keeps target angles away from sector edges, as a fraction
	// of one sector's span.
	sectorMargin = 0.05

	// settle is the remaining rotation below which a spin is finished.
	settle = 1e-9
)

// SpinState is the animation state of a wheel.
type SpinState struct {
	CurrentAngle float64 // radians, in [0, Tau) while spinning
	TargetAngle  float64 // resting angle of the current spin
	Remaining    float64 // rotation still to travel
	Initial      float64 // total rotation of the current spin
	MaxPerFrame  float64 // per-frame rotation cap at full speed
	Spinning     bool
}

// Progress returns the fraction of the spin still to travel, 1 at the start
// and 0 when idle.
func (s SpinState) Progress() float64 {
	if !s.Spinning || s.Initial <= 0 {
		return 0
	}
	return s.Remaining / s.Initial
}

// Draw returns the index selected by the uniform value u in [0, 1): the first
// sector whose cumulative weight reaches u × total. Zero-weight sectors are
// never returned. Draw returns -1 when no weight is positive.
func Draw(weights []float64, u float64) int {
	total := 0.0
	last := -1
	for i, w := range weights {
		total += w
		if w > 0 {
			last = i
		}
	}
	if last < 0 {
		return -1
	}

	x := u * total
	cum := 0.0
	for i, w := range weights {
		cum += w
		if w > 0 && x <= cum {
			return i
		}
	}
	// Rounding can leave x just above the final cumulative sum.
	return last
}

// Redistribute halves weights[i] and spreads the removed amount evenly over
// every other sector. The total weight is unchanged. A single-sector wheel is
// left as it is since there is nowhere to move the weight.
func Redistribute(weights []float64, i int) {
	n := len(weights)
	if n < 2 || i < 0 || i >= n {
		return
	}
	prev := weights[i]
	weights[i] = prev * 0.5
	share := (prev - weights[i]) / float64(n-1)
	for j := range weights {
		if j != i {
			weights[j] += share
		}
	}
}

// normalizeAngle maps a into [0, Tau).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, Tau)
	if a < 0 {
		a += Tau
	}
	if a >= Tau {
		a = 0
	}
	return a
}

// SectorIndex returns the sector under the pointer for a wheel of n sectors
// rotated to angle. It is the inverse of [TargetAngle].
func SectorIndex(angle float64, n int) int {
	if n <= 0 {
		return 0
	}
	adjusted := math.Mod(normalizeAngle(angle)-PointerAngle+Tau, Tau)
	idx := int(math.Floor(float64(n)-adjusted/Tau*float64(n))) % n
	if idx < 0 {
		idx += n
	}
	return idx
}

// SectorAt returns the sector drawn in screen direction phi (radians,
// clockwise from the positive x axis) on a wheel rotated to angle. At the
// pointer direction it agrees with [SectorIndex].
func SectorAt(angle, phi float64, n int) int {
	return SectorIndex(angle+PointerAngle-phi, n)
}

// TargetAngle returns a resting angle in [0, Tau) that places sector index of
// n under the pointer. r in [0, 1) picks the point within the sector; the
// sector edges are excluded.
func TargetAngle(index, n int, r float64) float64 {
	r = sectorMargin + r*(1-2*sectorMargin)
	adjusted := (float64(n-index-1) + r) / float64(n) * Tau
	return normalizeAngle(adjusted + PointerAngle + Tau)
}

// ForwardDelta returns the forward rotation from angle from to angle to, in
// (0, Tau]. A zero or negative difference becomes a full extra turn so the
// wheel never moves backwards.
func ForwardDelta(from, to float64) float64 {
	d := normalizeAngle(to) - normalizeAngle(from)
	if d <= 0 {
		d += Tau
	}
	return d
}

// Plan builds the state for a spin from current to target with extraTurns
// additional full rotations, timed by cfg.
func Plan(current, target float64, extraTurns int, cfg Config) SpinState {
	total := ForwardDelta(current, target) + float64(extraTurns)*Tau
	return SpinState{
		CurrentAngle: normalizeAngle(current),
		TargetAngle:  target,
		Remaining:    total,
		Initial:      total,
		MaxPerFrame:  maxPerFrame(total, cfg),
		Spinning:     true,
	}
}

// maxPerFrame derives the full-speed step so that the eased spin covers total
// in cfg.Frames() frames. With step = max × progress^e, the continuous travel
// time is total / (max × (1 − e)).
func maxPerFrame(total float64, cfg Config) float64 {
	frames := cfg.Frames()
	if frames <= 0 {
		return total
	}
	return total / (frames * (1 - cfg.Ease))
}

// Advance moves s forward by frames animation frames with ease exponent
// ease. The step never overshoots; the last step lands exactly on the target.
func Advance(s SpinState, frames, ease float64) SpinState {
	if !s.Spinning {
		return s
	}
	step := 0.0
	if s.Initial > 0 {
		step = s.MaxPerFrame * math.Pow(s.Remaining/s.Initial, ease) * frames
	}
	if step > s.Remaining || s.Remaining-step < settle {
		step = s.Remaining
	}

	s.CurrentAngle = normalizeAngle(s.CurrentAngle + step)
	s.Remaining -= step
	if s.Remaining <= 0 {
		s.Remaining = 0
		s.CurrentAngle = s.TargetAngle
		s.Spinning = false
	}
	return s
}
