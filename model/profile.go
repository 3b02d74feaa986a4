package model

// Profile is a recorded measurement resolvable to its samples and to the
// detected surface and ground depths. Loading, parsing and the detection
// algorithms live outside this module; the median aggregation in the
// densityssa package only consumes this interface.
type Profile interface {
	Name() string

	// Samples returns the complete, evenly spaced signal of the recording,
	// or common.ErrorLoadProfile. Partial series are never returned.
	Samples() (Samples, error)

	// SurfaceDepth and GroundDepth return the detected snow surface and
	// ground positions in mm, with ground > surface.
	SurfaceDepth() (float64, error)
	GroundDepth() (float64, error)
}
