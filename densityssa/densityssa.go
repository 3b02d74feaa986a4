// Package densityssa derives snow density and specific surface area from
// the shot-noise parameters of a penetrometer signal, following the
// regressions of Proksch et al. 2015, Calonne et al. 2020 and King et al.
// 2020.
package densityssa

import (
	"context"
	"math"

	"github.com/snowex-hackweek/snowmicropyn/loewe2012"
	"github.com/snowex-hackweek/snowmicropyn/model"
	"github.com/snowex-hackweek/snowmicropyn/utils"
	"go.uber.org/zap"
)

// Compute maps one (median force, element size) pair to (density, ssa).
//
// Density is d0 + d1*ln(fm) + d2*ln(fm)*l + d3*l. A non-positive median
// force makes the logarithm undefined; the result is then NaN rather than
// an error, so that one bad window never aborts a whole table. The ssa
// branch depends on the equation form of the coefficient set; a set built
// literally with an unrecognized form logs a warning and yields NaN ssa
// while density is still returned.
func Compute(ctx context.Context, medianForce, elementSize float64, coeffs CoefficientSet) (float64, float64) {
	fm := medianForce
	l := elementSize

	logFm := math.Log(fm) // NaN for fm < 0, -Inf for fm == 0

	density := coeffs.Density[0] + coeffs.Density[1]*logFm +
		coeffs.Density[2]*logFm*l + coeffs.Density[3]*l

	var ssa float64
	switch coeffs.Equation {
	case EquationSSA:
		ssa = coeffs.SSA[0] + coeffs.SSA[1]*math.Log(l) + coeffs.SSA[2]*logFm
	case EquationLEx:
		lc := coeffs.SSA[0] + coeffs.SSA[1]*l + coeffs.SSA[2]*logFm
		ssa = 4 * (1 - density/DensityIce) / lc
	default:
		utils.GetLogger(ctx).Warn("ssa equation form is not recognized, expecting \"l_ex\" or \"ssa\"",
			zap.String("equation", string(coeffs.Equation)))
		ssa = math.NaN()
	}

	return density, ssa
}

// Calc derives the density/ssa table of a single recording. Window size
// (mm) and overlap (percent) fall back to the coefficient set's
// recommended pair when window <= 0 respectively overlap < 0.
//
// Negative forces are a known sensor artifact; they are replaced by linear
// interpolation over distance before estimation. The input samples are not
// modified.
func Calc(ctx context.Context, samples model.Samples, coeffs CoefficientSet, window, overlap float64) (model.ResultTable, error) {
	window, overlap = resolveWindow(coeffs, window, overlap)

	filtered := interpolateNegatives(samples)

	sn, err := loewe2012.Calc(ctx, filtered, window, overlap)
	if err != nil {
		return nil, err
	}
	return computeTable(ctx, sn, coeffs), nil
}

// CalcProfiles derives one noise-reduced density/ssa table from several
// recordings of the same snowpack, reducing the per-window shot-noise
// parameters across profiles by their median before regression.
func CalcProfiles(ctx context.Context, profiles []model.Profile, coeffs CoefficientSet, window, overlap float64) (model.ResultTable, error) {
	window, overlap = resolveWindow(coeffs, window, overlap)

	sn, err := MedianProfile(ctx, profiles, window, overlap)
	if err != nil {
		return nil, err
	}
	return computeTable(ctx, sn, coeffs), nil
}

func computeTable(ctx context.Context, sn []model.WindowStats, coeffs CoefficientSet) model.ResultTable {
	res := make(model.ResultTable, 0, len(sn))
	for _, row := range sn {
		density, ssa := Compute(ctx, row.MedianForce, row.L, coeffs)
		res = append(res, model.ResultRow{
			Distance: row.Distance,
			Density:  density,
			SSA:      ssa,
		})
	}
	return res
}

func resolveWindow(coeffs CoefficientSet, window, overlap float64) (float64, float64) {
	if window <= 0 {
		window = coeffs.Window
	}
	if overlap < 0 {
		overlap = coeffs.Overlap
	}
	return window, overlap
}

// interpolateNegatives returns a copy of samples with negative forces
// replaced by linear interpolation between the neighbouring valid values.
// Gaps before the first valid value stay NaN (the estimator turns such
// windows into NaN rows); gaps after the last valid value hold that value.
func interpolateNegatives(samples model.Samples) model.Samples {
	res := make(model.Samples, len(samples))
	copy(res, samples)

	for i := range res {
		if res[i].Force < 0 {
			res[i].Force = math.NaN()
		}
	}

	lastValid := -1
	for i := 0; i < len(res); i++ {
		if !math.IsNaN(res[i].Force) {
			if lastValid >= 0 && lastValid < i-1 {
				fillLinear(res, lastValid, i)
			}
			lastValid = i
			continue
		}
		if lastValid >= 0 {
			// holds until a later valid value rewrites it via fillLinear
			res[i].Force = res[lastValid].Force
		}
	}
	return res
}

func fillLinear(samples model.Samples, lo, hi int) {
	d0, f0 := samples[lo].Distance, samples[lo].Force
	d1, f1 := samples[hi].Distance, samples[hi].Force
	for i := lo + 1; i < hi; i++ {
		t := (samples[i].Distance - d0) / (d1 - d0)
		samples[i].Force = f0 + t*(f1-f0)
	}
}
