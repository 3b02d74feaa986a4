package loewe2012

import (
	"math"

	"github.com/snowex-hackweek/snowmicropyn/model"
)

func nanStats() model.WindowStats {
	nan := math.NaN()
	return model.WindowStats{
		MedianForce: nan,
		Lambda:      nan,
		F0:          nan,
		Delta:       nan,
		L:           nan,
	}
}
