package densityssa

import (
	"fmt"
	"math"

	"github.com/snowex-hackweek/snowmicropyn/common"
)

// DensityIce is the density of ice in kg/m^3, used by the l_ex form of the
// ssa regression.
const DensityIce = 917.0

// EquationForm selects how the ssa coefficients are combined.
type EquationForm string

const (
	// EquationSSA regresses ssa directly from element size and median
	// force (Calonne/King form).
	EquationSSA EquationForm = "ssa"
	// EquationLEx goes through the exponential correlation length first
	// (Proksch form).
	EquationLEx EquationForm = "l_ex"
)

func (e EquationForm) Valid() bool {
	return e == EquationSSA || e == EquationLEx
}

// CoefficientSet bundles the regression constants of one publication:
// four density coefficients, three ssa coefficients, the equation form
// combining the latter, and the window/overlap the publication calibrated
// against.
type CoefficientSet struct {
	Name     string
	Density  [4]float64
	SSA      [3]float64
	Equation EquationForm

	// Recommended window size in mm and overlap in percent, used by Calc
	// when the caller does not override them.
	Window  float64
	Overlap float64
}

// NewCoefficientSet validates and builds a custom coefficient set. Named
// sets from the publications are available through SelectCoefficients.
func NewCoefficientSet(name string, density [4]float64, ssa [3]float64,
	equation EquationForm, window, overlap float64) (CoefficientSet, error) {
	if !equation.Valid() {
		return CoefficientSet{}, fmt.Errorf("%w: equation form %q", common.ErrorInvalidCoefficients, equation)
	}
	if window <= 0 || overlap < 0 || overlap >= 100 {
		return CoefficientSet{}, fmt.Errorf("%w: window %v, overlap %v", common.ErrorInvalidCoefficients, window, overlap)
	}
	for _, d := range density {
		if math.IsInf(d, 0) {
			return CoefficientSet{}, fmt.Errorf("%w: non-finite density coefficient", common.ErrorInvalidCoefficients)
		}
	}
	return CoefficientSet{
		Name:     name,
		Density:  density,
		SSA:      ssa,
		Equation: equation,
		Window:   window,
		Overlap:  overlap,
	}, nil
}

var nan = math.NaN()

// The published coefficient sets. The King 2020 sets carry no ssa
// calibration, they yield NaN ssa on purpose.
var namedSets = map[string]CoefficientSet{
	// Proksch et al. 2015, https://doi.org/10.1002/2014JF003266
	"P2015": {
		Name:     "P2015",
		Density:  [4]float64{420.47, 102.47, -121.15, -169.96},
		SSA:      [3]float64{0.131, 0.355, 0.0291},
		Equation: EquationLEx,
		Window:   2.5,
		Overlap:  50,
	},
	// Calonne et al. 2020, https://doi.org/10.5194/tc-14-1829-2020
	"C2020": {
		Name:     "C2020",
		Density:  [4]float64{295.8, 65.1, -43.2, 47.1},
		SSA:      [3]float64{0.57, -18.56, -3.66},
		Equation: EquationSSA,
		Window:   1,
		Overlap:  50,
	},
	// King et al. 2020, https://doi.org/10.5194/tc-14-4323-2020, Table 2
	"K2020a": {
		Name:     "K2020a",
		Density:  [4]float64{315.61, 46.94, -43.94, -88.15},
		SSA:      [3]float64{nan, nan, nan},
		Equation: EquationSSA,
		Window:   5,
		Overlap:  50,
	},
	"K2020b": {
		Name:     "K2020b",
		Density:  [4]float64{312.54, 50.27, -50.26, -85.35},
		SSA:      [3]float64{nan, nan, nan},
		Equation: EquationSSA,
		Window:   5,
		Overlap:  50,
	},
}

// SelectCoefficients resolves a named coefficient set. The empty name
// means the P2015 default. Unknown names are rejected; callers with their
// own calibration build a set via NewCoefficientSet instead.
func SelectCoefficients(name string) (CoefficientSet, error) {
	if name == "" {
		name = "P2015"
	}
	coeffs, ok := namedSets[name]
	if !ok {
		return CoefficientSet{}, fmt.Errorf("%w: %q", common.ErrorUnknownCoefficientSet, name)
	}
	return coeffs, nil
}
