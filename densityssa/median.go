package densityssa

import (
	"context"
	"math"
	"runtime"
	"sync"

	"github.com/snowex-hackweek/snowmicropyn/common"
	"github.com/snowex-hackweek/snowmicropyn/loewe2012"
	"github.com/snowex-hackweek/snowmicropyn/model"
	"github.com/snowex-hackweek/snowmicropyn/utils"
	"github.com/snowex-hackweek/snowmicropyn/windowing"
	"go.uber.org/zap"
)

// MedianProfile combines several profiles of the same snowpack into one
// (median force, element size) series. Each profile is cropped from its own
// surface to the span of the shortest profile, estimated on its own window
// grid, and the per-window parameters are reduced across profiles by their
// median. Averaging over profiles suppresses the spurious negative ssa a
// single noisy profile can produce.
//
// The distances in the result are synthetic, windowIndex * finalResolution,
// starting at zero: cropped profiles align by window index, not by the
// absolute depth of any single recording.
//
// All profiles must share the sampling step of the first one; the step is
// not re-checked per profile. NaN estimates of single profiles are skipped
// by the median, a window is NaN only when every profile is degenerate
// there.
func MedianProfile(ctx context.Context, profiles []model.Profile, window, overlap float64) ([]model.WindowStats, error) {
	logger := utils.GetLogger(ctx)

	if len(profiles) == 0 {
		return nil, common.ErrorNoProfiles
	}

	resolution, err := windowing.Resolution(window, overlap)
	if err != nil {
		return nil, err
	}

	type loaded struct {
		samples model.Samples
		surface float64
	}

	shortest := math.Inf(1)
	all := make([]loaded, len(profiles))
	for i, p := range profiles {
		samples, err := p.Samples()
		if err != nil {
			return nil, err
		}
		surface, err := p.SurfaceDepth()
		if err != nil {
			return nil, err
		}
		ground, err := p.GroundDepth()
		if err != nil {
			return nil, err
		}
		span := ground - surface
		if span <= 0 {
			logger.Warn("profile has no span between surface and ground",
				zap.String("profile", p.Name()), zap.Float64("span", span))
			return nil, common.ErrorInvalidValue
		}
		if span < shortest {
			shortest = span
		}
		all[i] = loaded{samples: samples, surface: surface}
	}

	step, err := all[0].samples.SpatialResolution()
	if err != nil {
		return nil, err
	}

	nlayers := int(shortest / step)
	finalLayers := int(shortest / resolution)

	// Per-profile crop and estimate; profiles are independent.
	cols := make([][]model.WindowStats, len(profiles))
	errs := make([]error, len(profiles))

	var wg sync.WaitGroup
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	for i := range all {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			cropped := cropToSurface(all[i].samples, all[i].surface, nlayers)
			cols[i], errs[i] = loewe2012.Calc(ctx, cropped, window, overlap)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			logger.Warn("shot-noise estimate failed for profile",
				zap.Error(err), zap.String("profile", profiles[i].Name()))
			return nil, err
		}
	}

	res := make([]model.WindowStats, 0, finalLayers)
	forces := make([]float64, 0, len(profiles))
	sizes := make([]float64, 0, len(profiles))
	for w := 0; w < finalLayers; w++ {
		forces = forces[:0]
		sizes = sizes[:0]
		for i := range cols {
			if w < len(cols[i]) {
				forces = append(forces, cols[i][w].MedianForce)
				sizes = append(sizes, cols[i][w].L)
			}
		}
		res = append(res, model.WindowStats{
			Distance:    float64(w) * resolution,
			MedianForce: utils.NaNMedian(forces),
			Lambda:      math.NaN(),
			F0:          math.NaN(),
			Delta:       math.NaN(),
			L:           utils.NaNMedian(sizes),
		})
	}
	return res, nil
}

// cropToSurface keeps at most n samples strictly deeper than the surface.
func cropToSurface(samples model.Samples, surface float64, n int) model.Samples {
	start := 0
	for start < len(samples) && samples[start].Distance <= surface {
		start++
	}
	end := start + n
	if end > len(samples) {
		end = len(samples)
	}
	return samples[start:end]
}
