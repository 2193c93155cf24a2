package wheel

import (
	"math"
	"testing"
)

func TestDraw(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
		u       float64
		want    int
	}{
		{"first of two", []float64{1, 1}, 0, 0},
		{"boundary belongs to first", []float64{1, 1}, 0.5, 0},
		{"second of two", []float64{1, 1}, 0.51, 1},
		{"near one", []float64{1, 1, 1}, 0.999999, 2},
		{"skip zero weight", []float64{0, 1}, 0, 1},
		{"skewed", []float64{1, 3}, 0.3, 1},
		{"all zero", []float64{0, 0}, 0.3, -1},
		{"empty", nil, 0.3, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Draw(tt.weights, tt.u); got != tt.want {
				t.Errorf("Draw(%v, %v) = %d, want %d", tt.weights, tt.u, got, tt.want)
			}
		})
	}
}

func TestRedistribute(t *testing.T) {
	w := []float64{1, 1, 1, 1, 1}
	Redistribute(w, 2)

	want := []float64{1.125, 1.125, 0.5, 1.125, 1.125}
	for i := range w {
		if w[i] != want[i] {
			t.Errorf("w[%d] = %v, want %v", i, w[i], want[i])
		}
	}
}

func TestRedistributeSingleSector(t *testing.T) {
	w := []float64{2}
	Redistribute(w, 0)
	if w[0] != 2 {
		t.Errorf("single sector weight = %v, want 2", w[0])
	}
}

func TestTargetAngleInvertsSectorIndex(t *testing.T) {
	for n := 1; n <= MaxSectors; n++ {
		for i := range n {
			for _, r := range []float64{0, 0.25, 0.5, 0.75, 0.999999} {
				a := TargetAngle(i, n, r)
				if a < 0 || a >= Tau {
					t.Fatalf("TargetAngle(%d, %d, %v) = %v out of [0, Tau)", i, n, r, a)
				}
				if got := SectorIndex(a, n); got != i {
					t.Fatalf("SectorIndex(TargetAngle(%d, %d, %v)) = %d", i, n, r, got)
				}
			}
		}
	}
}

func TestSectorIndexPointer(t *testing.T) {
	// At rest the pointer sits over the start of sector 0.
	if got := SectorIndex(PointerAngle, 4); got != 0 {
		t.Errorf("SectorIndex(PointerAngle) = %d, want 0", got)
	}
	// Rotating forward by a little brings the last sector under the pointer.
	if got := SectorIndex(PointerAngle+0.1, 4); got != 3 {
		t.Errorf("SectorIndex(PointerAngle+0.1) = %d, want 3", got)
	}
	// Angles are taken modulo a full turn.
	if a, b := SectorIndex(1.0, 6), SectorIndex(1.0+3*Tau, 6); a != b {
		t.Errorf("SectorIndex not periodic: %d vs %d", a, b)
	}
	if a, b := SectorIndex(1.0, 6), SectorIndex(1.0-2*Tau, 6); a != b {
		t.Errorf("SectorIndex not periodic for negative angles: %d vs %d", a, b)
	}
}

func TestSectorAt(t *testing.T) {
	for _, a := range []float64{PointerAngle, 0.3, 2.0, 4.4, -1.2} {
		if got, want := SectorAt(a, PointerAngle, 5), SectorIndex(a, 5); got != want {
			t.Errorf("SectorAt(%v, pointer) = %d, want %d", a, got, want)
		}
	}
	// At rest, sectors follow clockwise from the pointer: sector 1 of 4 is
	// drawn in the lower right quadrant and sector 2 in the lower left.
	if got := SectorAt(PointerAngle, math.Pi/4, 4); got != 1 {
		t.Errorf("SectorAt(rest, south-east) = %d, want 1", got)
	}
	if got := SectorAt(PointerAngle, 3*math.Pi/4, 4); got != 2 {
		t.Errorf("SectorAt(rest, south-west) = %d, want 2", got)
	}
}

func TestForwardDelta(t *testing.T) {
	tests := []struct {
		from, to float64
		want     float64
	}{
		{0, 1, 1},
		{1, 0, Tau - 1},
		{1, 1, Tau},
		{-math.Pi / 2, 0, math.Pi / 2},
	}
	for _, tt := range tests {
		got := ForwardDelta(tt.from, tt.to)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("ForwardDelta(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
		if got <= 0 || got > Tau {
			t.Errorf("ForwardDelta(%v, %v) = %v out of (0, Tau]", tt.from, tt.to, got)
		}
	}
}

func TestAdvanceLandsExactly(t *testing.T) {
	cfg := DefaultConfig()
	target := TargetAngle(2, 5, 0.3)
	s := Plan(0.4, target, 15, cfg)

	prevStep := math.Inf(1)
	frames := 0
	for s.Spinning {
		before := s.Remaining
		s = Advance(s, 1, cfg.Ease)
		step := before - s.Remaining
		if step <= 0 {
			t.Fatalf("frame %d: no progress", frames)
		}
		if s.Spinning && step > prevStep+1e-12 {
			t.Fatalf("frame %d: step grew from %v to %v", frames, prevStep, step)
		}
		if s.Remaining < 0 {
			t.Fatalf("frame %d: overshoot, remaining %v", frames, s.Remaining)
		}
		prevStep = step
		frames++
		if frames > 10000 {
			t.Fatal("spin did not terminate")
		}
	}
	if s.CurrentAngle != target {
		t.Errorf("final angle = %v, want exactly %v", s.CurrentAngle, target)
	}
	if s.Remaining != 0 {
		t.Errorf("remaining = %v, want 0", s.Remaining)
	}
}

func TestPlanDurationCompensation(t *testing.T) {
	cfg := DefaultConfig()
	want := cfg.Frames()

	for _, extra := range []int{15, 18, 20} {
		s := Plan(0, 1.0, extra, cfg)
		frames := 0
		for s.Spinning {
			s = Advance(s, 1, cfg.Ease)
			frames++
		}
		if f := float64(frames); f < 0.9*want || f > 1.01*want {
			t.Errorf("extra=%d: spin took %d frames, want about %.0f", extra, frames, want)
		}
	}
}

func TestAdvanceIdle(t *testing.T) {
	s := SpinState{CurrentAngle: 1.5}
	if got := Advance(s, 1, 0.75); got != s {
		t.Errorf("Advance on idle state changed it: %+v", got)
	}
}
