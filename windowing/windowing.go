package windowing

import (
	"math"

	"github.com/snowex-hackweek/snowmicropyn/common"
	"github.com/snowex-hackweek/snowmicropyn/model"
)

const (
	// DefaultWindow is the window length in mm.
	DefaultWindow = 2.5
	// DefaultOverlap is the overlap of consecutive windows in percent.
	DefaultOverlap = 50.0

	// guards index arithmetic against float drift at window borders
	eps = 1e-9
)

// Resolution returns the spacing of consecutive window starts,
// window * (1 - overlap/100). overlap must stay below 100, otherwise the
// spacing collapses to zero or turns negative.
func Resolution(window, overlap float64) (float64, error) {
	if window <= 0 || overlap < 0 || overlap >= 100 {
		return 0, common.ErrorInvalidWindow
	}
	return window - window*overlap/100, nil
}

// Window is one depth-bounded slice of a signal.
type Window struct {
	// Distance of the window start in mm.
	Distance float64
	Forces   []float64
}

// Segmenter walks a signal window by window. Window i spans the half-open
// distance range [first + i*resolution, first + i*resolution + window);
// windows are produced while their start lies on the signal, so trailing
// windows may hold fewer samples than the full window length.
type Segmenter struct {
	samples model.Samples
	window  float64
	res     float64
	step    float64
	idx     int
}

// Segment prepares a restartable iteration over the windows of samples.
func Segment(samples model.Samples, window, overlap float64) (*Segmenter, error) {
	res, err := Resolution(window, overlap)
	if err != nil {
		return nil, err
	}
	step, err := samples.SpatialResolution()
	if err != nil {
		return nil, err
	}
	return &Segmenter{
		samples: samples,
		window:  window,
		res:     res,
		step:    step,
	}, nil
}

// Next returns the next window, or false once the signal is exhausted.
func (s *Segmenter) Next() (Window, bool) {
	if s.idx >= s.Count() {
		return Window{}, false
	}

	offset := float64(s.idx) * s.res
	lo := int(math.Ceil(offset/s.step - eps))
	hi := int(math.Ceil((offset+s.window)/s.step - eps))
	if hi > len(s.samples) {
		hi = len(s.samples)
	}
	s.idx++

	return Window{
		Distance: s.samples[lo].Distance,
		Forces:   s.samples[lo:hi].Forces(),
	}, true
}

// Reset rewinds the segmenter to the first window.
func (s *Segmenter) Reset() {
	s.idx = 0
}

// Count returns the total number of windows the segmenter produces.
func (s *Segmenter) Count() int {
	span := s.samples[len(s.samples)-1].Distance - s.samples[0].Distance
	return int(math.Floor(span/s.res+eps)) + 1
}

// Segments collects all windows of samples into a slice.
func Segments(samples model.Samples, window, overlap float64) ([]Window, error) {
	segmenter, err := Segment(samples, window, overlap)
	if err != nil {
		return nil, err
	}
	res := make([]Window, 0, segmenter.Count())
	for {
		w, ok := segmenter.Next()
		if !ok {
			break
		}
		res = append(res, w)
	}
	return res, nil
}
