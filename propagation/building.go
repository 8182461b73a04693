// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package propagation

import "math"

// p2109Coeffs holds the per-building-type coefficients of the ITU-R P.2109
// composite lognormal building-entry-loss model: a frequency-only term L1
// and a frequency+elevation term L2, combined in the power domain, plus the
// shared Gaussian's sigma.
type p2109Coeffs struct {
	r, s, t       float64 // L1(f) = r + s*log10(f) + t*log10(f)^2
	u, v, w, x    float64 // L2(f,theta) = u + v*log10(f) + w*log10(f)^2 - x*theta
	sigma         float64
}

var p2109Table = map[BuildingType]p2109Coeffs{
	BuildingTraditional: {
		r: 12.64, s: 3.72, t: 0.96,
		u: 9.60, v: 2.00, w: 0.92, x: 0.19,
		sigma: 8.17,
	},
	BuildingThermalEfficient: {
		r: 28.19, s: -3.00, t: 8.48,
		u: 13.50, v: 3.80, w: 2.96, x: 0.15,
		sigma: 11.58,
	},
}

// BuildingPenetrationDB evaluates the ITU-R P.2109 composite building-entry
// loss (spec §4.C), for an indoor deployment. elevationAngleDeg is the path
// elevation angle seen from the indoor terminal; freqHz the carrier
// frequency. The shared Gaussian draw is evaluated once and applied to the
// combined term, per spec's "composite lognormal ... driven by ... a shared
// Gaussian" wording.
func BuildingPenetrationDB(freqHz, elevationAngleDeg float64, bt BuildingType, draw GaussianDraw, confidence float64) (lossDB, cdf float64) {
	c, ok := p2109Table[bt]
	if !ok {
		return 0, confidence
	}
	logF := math.Log10(freqHz / 1e6) // coefficients are calibrated against MHz
	l1 := c.r + c.s*logF + c.t*logF*logF
	l2 := c.u + c.v*logF + c.w*logF*logF - c.x*elevationAngleDeg
	combined := -10.0 * math.Log10(math.Pow(10, -0.1*l1)+math.Pow(10, -0.1*l2))
	z := draw.Z(confidence)
	return combined + c.sigma*z, confidence
}
