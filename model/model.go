package model

import (
	"fmt"

	"github.com/snowex-hackweek/snowmicropyn/common"
)

// Sample is one reading of the penetrometer: penetration depth in mm and
// the measured force in N.
type Sample struct {
	Distance float64
	Force    float64
}

// Samples is a recorded force signal, ordered by strictly increasing
// distance with a constant depth step.
type Samples []Sample

func (s Samples) IsEmpty() bool {
	return len(s) == 0
}

func (s Samples) Distances() []float64 {
	res := make([]float64, len(s))
	for i := range s {
		res[i] = s[i].Distance
	}
	return res
}

func (s Samples) Forces() []float64 {
	res := make([]float64, len(s))
	for i := range s {
		res[i] = s[i].Force
	}
	return res
}

// SpatialResolution returns the depth step between consecutive samples,
// inferred from the first increment.
func (s Samples) SpatialResolution() (float64, error) {
	if len(s) < 2 {
		return 0, common.ErrorInvalidValue
	}
	step := s[1].Distance - s[0].Distance
	if step <= 0 {
		return 0, common.ErrorInvalidValue
	}
	return step, nil
}

func (s Samples) DebugString() string {
	if s.IsEmpty() {
		return "sampleCount: 0"
	}
	return fmt.Sprintf("sampleCount: %v, range: [%v, %v]",
		len(s), s[0].Distance, s[len(s)-1].Distance)
}

// WindowStats holds the shot-noise parameters estimated for one window.
// MedianForce and L feed the density/ssa regression; Lambda, F0 and Delta
// are the remaining model parameters, carried for callers that want them.
type WindowStats struct {
	// Distance of the window start in mm.
	Distance    float64
	MedianForce float64
	Lambda      float64
	F0          float64
	Delta       float64
	L           float64
}

// ResultRow is density (kg/m^3) and ssa (m^2/kg) at one depth.
type ResultRow struct {
	Distance float64
	Density  float64
	SSA      float64
}

type ResultTable []ResultRow

func (t ResultTable) Distances() []float64 {
	res := make([]float64, len(t))
	for i := range t {
		res[i] = t[i].Distance
	}
	return res
}
