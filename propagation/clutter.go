// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package propagation

import "math"

// P2108ClutterDB evaluates the ITU-R P.2108 statistical clutter loss (spec
// §4.C), at frequency freqHz and distance distKm, drawing the Gaussian tail
// term via draw at ctx.ClutterConfidence.
func P2108ClutterDB(freqHz, distKm float64, draw GaussianDraw, confidence float64) float64 {
	fGHz := freqHz / 1e9
	Ll := 23.5 + 9.6*math.Log10(fGHz)
	Ls := 32.98 + 23.9*math.Log10(distKm) + 3.0*math.Log10(fGHz)
	z := draw.Z(confidence)
	return -5.0*math.Log10(math.Pow(10, -0.2*Ll)+math.Pow(10, -0.2*Ls)) + 6.0*z
}

// P452ClutterDB evaluates the simplified ITU-R P.452 low-elevation clutter
// term (spec §4.C): 18.4 dB when the transmitter is at or below 3 m AGL, the
// elevation angle is at or below 2.86 degrees and the path exceeds 700 m;
// zero otherwise.
func P452ClutterDB(txHtAGL, elevationAngleDeg, distKm float64) float64 {
	if txHtAGL <= 3.0 && elevationAngleDeg <= 2.86 && distKm > 0.7 {
		return 18.4
	}
	return 0.0
}
