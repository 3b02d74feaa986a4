package common

import "errors"

var (
	// ErrorInvalidWindow means the window/overlap configuration produces a
	// non-positive final resolution.
	ErrorInvalidWindow = errors.New("invalid window configuration")

	// ErrorDegenerateWindow means a window can not support the shot-noise
	// estimate (empty, non-positive mean force or zero variance).
	ErrorDegenerateWindow = errors.New("degenerate window")

	ErrorInvalidCoefficients   = errors.New("invalid coefficient set")
	ErrorUnknownCoefficientSet = errors.New("unknown coefficient set")

	ErrorNoProfiles  = errors.New("no profiles given")
	ErrorLoadProfile = errors.New("load profile failed")

	ErrorInvalidValue = errors.New("invalid value")
)
