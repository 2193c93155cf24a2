package server

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/codelabs/pkg/errors"
	"github.com/matzehuels/codelabs/pkg/observability"
	"github.com/matzehuels/codelabs/pkg/wheel"
)

// DefaultSectors is the sector count of spins that name none, unless
// changed with [WithSectors].
const DefaultSectors = 2

// SpinResponse is the outcome of one server-side spin.
type SpinResponse struct {
	Selected     int             `json:"selected"`
	Label        string          `json:"label"`
	Color        string          `json:"color"`
	TargetAngle  float64         `json:"target_angle"`
	Turns        float64         `json:"turns"`
	Frames       int             `json:"frames"`
	Weights      []float64       `json:"weights"`
	Distribution []wheel.Segment `json:"distribution"`
}

// handleSpin runs one spin to completion. Clients keep the bias across spins
// by sending back the returned weights.
//
//	POST /api/wheel/spin?sectors=4&seed=7&weights=1,1,0.5,1.5
func (s *Server) handleSpin(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := []wheel.Option{wheel.WithConfig(s.wheelCfg)}
	n := s.sectors
	if raw := q.Get("sectors"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "sectors must be an integer, got %q", raw))
			return
		}
		n = v
	}
	if raw := q.Get("seed"); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "seed must be an unsigned integer, got %q", raw))
			return
		}
		opts = append(opts, wheel.WithSeed(seed))
	}
	if raw := q.Get("weights"); raw != "" {
		weights, err := parseWeights(raw)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if q.Get("sectors") == "" {
			n = len(weights)
		}
		opts = append(opts, wheel.WithWeights(weights))
	}

	e, err := wheel.NewDefault(n, opts...)
	if err != nil {
		s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "%v", err))
		return
	}

	selected, _ := e.StartSpin()
	st := e.State()
	frames := 0
	for spinning := true; spinning; {
		_, spinning = e.Tick(0)
		frames++
	}

	observability.Articles().OnSpin(r.Context(), n, selected, frames)

	sector := e.Sectors()[selected]
	writeJSON(w, http.StatusOK, SpinResponse{
		Selected:     selected,
		Label:        sector.Label,
		Color:        sector.Color,
		TargetAngle:  st.TargetAngle,
		Turns:        st.Initial / wheel.Tau,
		Frames:       frames,
		Weights:      e.Weights(),
		Distribution: e.Distribution(),
	})
}

func parseWeights(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "weight %d is not a finite number: %q", i, p)
		}
		out[i] = v
	}
	return out, nil
}
