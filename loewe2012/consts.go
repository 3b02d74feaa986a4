package loewe2012

import "math"

const (
	// SMPConeDiameter is the diameter of the SnowMicroPen cone tip in mm.
	SMPConeDiameter = 5.0
)

// SMPConeArea is the projected area of the cone tip in mm^2.
var SMPConeArea = math.Pi * (SMPConeDiameter / 2) * (SMPConeDiameter / 2)
