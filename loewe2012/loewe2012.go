// Package loewe2012 estimates the parameters of the shot-noise model of
// penetration resistance described in publication "A Poisson shot noise
// model for micro-penetration of snow" by Henning Löwe and Alec van
// Herwijnen, Cold Regions Science and Technology, Volume 70, 2012.
package loewe2012

import (
	"context"
	"math"
	"runtime"
	"sync"

	"github.com/snowex-hackweek/snowmicropyn/common"
	"github.com/snowex-hackweek/snowmicropyn/model"
	"github.com/snowex-hackweek/snowmicropyn/utils"
	"github.com/snowex-hackweek/snowmicropyn/windowing"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// CalcStep estimates the shot-noise parameters from the force samples of a
// single window. spatialRes is the depth step of the samples in mm.
//
// The window must be non-empty with a positive mean force and non-zero
// variance, otherwise common.ErrorDegenerateWindow is returned.
func CalcStep(spatialRes float64, forces []float64) (model.WindowStats, error) {
	if len(forces) == 0 {
		return model.WindowStats{}, common.ErrorDegenerateWindow
	}

	// First two moments of the force signal.
	k1 := stat.Mean(forces, nil)
	k2 := stat.MomentAbout(2, forces, k1, nil)

	if math.IsNaN(k1) || k1 <= 0 || k2 == 0 {
		return model.WindowStats{}, common.ErrorDegenerateWindow
	}

	// Autocovariance at lag zero and one.
	var c0, c1 float64
	for i := range forces {
		d := forces[i] - k1
		c0 += d * d
		if i+1 < len(forces) {
			c1 += d * (forces[i+1] - k1)
		}
	}

	// Equation 8 in publication
	delta := -3.0 / 2 * c0 / (c1 - c0) * spatialRes
	// Equation 11 in publication
	lambda := 4.0 / 3 * k1 * k1 / k2 / delta
	// Equation 12 in publication
	f0 := 3.0 / 2 * k2 / k1

	// A negative lambda has no physical structure size; Pow yields NaN then.
	l := math.Pow(SMPConeArea/lambda, 1.0/3)

	return model.WindowStats{
		MedianForce: utils.Median(forces),
		Lambda:      lambda,
		F0:          f0,
		Delta:       delta,
		L:           l,
	}, nil
}

// Calc runs the shot-noise estimate over the windows of samples and returns
// one row per window, ordered by increasing distance. Windows are
// independent and estimated concurrently. A degenerate window yields a row
// of NaN parameters instead of failing the whole signal.
func Calc(ctx context.Context, samples model.Samples, window, overlap float64) ([]model.WindowStats, error) {
	logger := utils.GetLogger(ctx)

	windows, err := windowing.Segments(samples, window, overlap)
	if err != nil {
		return nil, err
	}
	step, err := samples.SpatialResolution()
	if err != nil {
		return nil, err
	}

	res := make([]model.WindowStats, len(windows))

	var wg sync.WaitGroup
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	for i := range windows {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			stats, err := CalcStep(step, windows[i].Forces)
			if err != nil {
				logger.Warn("shot-noise estimate failed for window, keeping NaN row",
					zap.Error(err), zap.Float64("distance", windows[i].Distance))
				stats = nanStats()
			}
			stats.Distance = windows[i].Distance
			res[i] = stats
		}(i)
	}
	wg.Wait()

	return res, nil
}
