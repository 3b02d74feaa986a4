package densityssa

import (
	"context"
	"math"
	"testing"

	"github.com/snowex-hackweek/snowmicropyn/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDensityClosedForm(t *testing.T) {
	t.Parallel()

	coeffs, err := SelectCoefficients("P2015")
	require.NoError(t, err)

	fm, l := 50.0, 0.2
	want := 420.47 + 102.47*math.Log(fm) - 121.15*math.Log(fm)*l - 169.96*l

	density, _ := Compute(context.Background(), fm, l, coeffs)
	assert.InDelta(t, want, density, 1e-9)
}

func TestComputeSSAViaCorrelationLength(t *testing.T) {
	t.Parallel()

	coeffs, err := SelectCoefficients("P2015")
	require.NoError(t, err)

	fm, l := 50.0, 0.2
	density, ssa := Compute(context.Background(), fm, l, coeffs)

	lc := 0.131 + 0.355*l + 0.0291*math.Log(fm)
	want := 4 * (1 - density/DensityIce) / lc
	assert.InDelta(t, want, ssa, 1e-9)
}

func TestComputeSSADirectForm(t *testing.T) {
	t.Parallel()

	coeffs, err := NewCoefficientSet("calonne-like", [4]float64{295.8, 65.1, -43.2, 47.1},
		[3]float64{0.57, -18.56, -3.66}, EquationSSA, 1, 50)
	require.NoError(t, err)

	fm, l := 50.0, 0.2
	_, ssa := Compute(context.Background(), fm, l, coeffs)

	want := 0.57 - 18.56*math.Log(l) - 3.66*math.Log(fm)
	assert.InDelta(t, want, ssa, 1e-9)
}

func TestComputeDeterministic(t *testing.T) {
	t.Parallel()

	coeffs, err := SelectCoefficients("C2020")
	require.NoError(t, err)

	d1, s1 := Compute(context.Background(), 37.2, 0.41, coeffs)
	d2, s2 := Compute(context.Background(), 37.2, 0.41, coeffs)
	assert.Equal(t, d1, d2)
	assert.Equal(t, s1, s2)
}

func TestComputeNonPositiveForce(t *testing.T) {
	t.Parallel()

	coeffs, err := SelectCoefficients("P2015")
	require.NoError(t, err)

	for _, fm := range []float64{0, -5} {
		density, ssa := Compute(context.Background(), fm, 0.2, coeffs)
		assert.True(t, math.IsNaN(density), "fm=%v", fm)
		assert.True(t, math.IsNaN(ssa), "fm=%v", fm)
	}
}

func TestComputeZeroCorrelationLength(t *testing.T) {
	t.Parallel()

	// lc = 0 + 0*l + 0*ln(fm) = 0. The division must propagate, not panic.
	coeffs, err := NewCoefficientSet("degenerate-lc",
		[4]float64{420.47, 102.47, -121.15, -169.96},
		[3]float64{0, 0, 0}, EquationLEx, 2.5, 50)
	require.NoError(t, err)

	density, ssa := Compute(context.Background(), 50, 0.2, coeffs)
	assert.False(t, math.IsNaN(density))
	assert.True(t, math.IsInf(ssa, 0) || math.IsNaN(ssa))
}

func TestComputeUnrecognizedEquation(t *testing.T) {
	t.Parallel()

	// A literal bundle bypasses the validating factory on purpose.
	coeffs := CoefficientSet{
		Name:     "raw",
		Density:  [4]float64{420.47, 102.47, -121.15, -169.96},
		SSA:      [3]float64{0.131, 0.355, 0.0291},
		Equation: "exp",
	}

	density, ssa := Compute(context.Background(), 50, 0.2, coeffs)
	assert.False(t, math.IsNaN(density))
	assert.True(t, math.IsNaN(ssa))
}

func TestCalcWithNegativeForces(t *testing.T) {
	t.Parallel()

	samples := make(model.Samples, 100)
	for i := range samples {
		samples[i] = model.Sample{Distance: float64(i), Force: float64(1 + i%2)}
	}
	// Known sensor artifact: a burst of spurious negative readings.
	for i := 10; i < 15; i++ {
		samples[i].Force = -1
	}

	coeffs, err := SelectCoefficients("")
	require.NoError(t, err)

	res, err := Calc(context.Background(), samples, coeffs, 0, -1)
	require.NoError(t, err)

	// Defaults from P2015: window 2.5mm, overlap 50%, starts every 1.25mm
	// over a 99mm span.
	require.Len(t, res, 80)
	for i := 1; i < len(res); i++ {
		assert.Greater(t, res[i].Distance, res[i-1].Distance)
	}

	// Copy-on-write: the caller's samples keep their artifact.
	for i := 10; i < 15; i++ {
		assert.Equal(t, -1.0, samples[i].Force)
	}
}

func TestCalcExplicitWindowOverridesCoefficientSet(t *testing.T) {
	t.Parallel()

	samples := make(model.Samples, 100)
	for i := range samples {
		samples[i] = model.Sample{Distance: float64(i), Force: float64(1 + i%2)}
	}

	coeffs, err := SelectCoefficients("K2020a") // recommends 5mm / 50%
	require.NoError(t, err)

	res, err := Calc(context.Background(), samples, coeffs, 10, 0)
	require.NoError(t, err)
	// span 99mm, starts every 10mm
	assert.Len(t, res, 10)
}

func TestInterpolateNegatives(t *testing.T) {
	t.Parallel()

	samples := model.Samples{
		{Distance: 0, Force: 2},
		{Distance: 1, Force: -3},
		{Distance: 2, Force: -1},
		{Distance: 3, Force: 5},
		{Distance: 4, Force: -2},
	}

	got := interpolateNegatives(samples)

	assert.Equal(t, 2.0, got[0].Force)
	assert.InDelta(t, 3.0, got[1].Force, 1e-12)
	assert.InDelta(t, 4.0, got[2].Force, 1e-12)
	assert.Equal(t, 5.0, got[3].Force)
	// no later valid value, the last one holds
	assert.Equal(t, 5.0, got[4].Force)

	// input untouched
	assert.Equal(t, -3.0, samples[1].Force)
}

func TestInterpolateNegativesLeadingGapStaysNaN(t *testing.T) {
	t.Parallel()

	samples := model.Samples{
		{Distance: 0, Force: -1},
		{Distance: 1, Force: -1},
		{Distance: 2, Force: 4},
	}

	got := interpolateNegatives(samples)
	assert.True(t, math.IsNaN(got[0].Force))
	assert.True(t, math.IsNaN(got[1].Force))
	assert.Equal(t, 4.0, got[2].Force)
}
