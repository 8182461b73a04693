// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package propagation

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// itmEffectiveEarthRadiusM is the 4/3-Earth effective radius used for radio
// horizon geometry.
const itmEffectiveEarthRadiusM = (4.0 / 3.0) * 6378137.0

// ITM fixed inputs, per spec §4.C: continental-temperate climate, horizontal
// polarization, epsilon/sigma ground constants, surface refractivity. These
// never vary per request; only confidence does.
const (
	itmDielectricConst = 15.0
	itmConductivity    = 0.005
	itmSurfaceRefr     = 301.0
	itmRelevance       = 0.5
	itmMaxProfilePts   = 2000
	itmMaxSampleM      = 3.0
)

// ITMProfileSampleCount returns the number of profile samples the kernel
// should request from the terrain provider for a path of distKm, honoring
// the <=3m spacing cap and the 2000-point ceiling (spec §4.C).
func ITMProfileSampleCount(distKm float64) int {
	distM := distKm * 1000.0
	n := int(math.Ceil(distM/itmMaxSampleM)) + 1
	if n < 2 {
		n = 2
	}
	if n > itmMaxProfilePts {
		n = itmMaxProfilePts
	}
	return n
}

// terrainIrregularityM returns the interdecile range (90th - 10th
// percentile) of the terrain profile's deviation from its best-fit line,
// the Δh parameter the Longley-Rice diffraction term is driven by.
func terrainIrregularityM(profile []float64, spacingM float64) float64 {
	n := len(profile)
	if n < 2 {
		return 0
	}
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i) * spacingM
	}
	alpha, beta := stat.LinearRegression(xs, profile, nil, false)
	resid := make([]float64, n)
	for i := range profile {
		resid[i] = profile[i] - (alpha + beta*xs[i])
	}
	sort.Float64s(resid)
	p10 := stat.Quantile(0.10, stat.Empirical, resid, nil)
	p90 := stat.Quantile(0.90, stat.Empirical, resid, nil)
	return p90 - p10
}

// effectiveHeightM estimates a terminal's height above the average terrain
// in its own vicinity (the first/last 15% of the profile, nearest the
// terminal), per the Longley-Rice notion of "effective antenna height".
func effectiveHeightM(profile []float64, nearStart bool, htAGL float64) float64 {
	n := len(profile)
	if n == 0 {
		return htAGL
	}
	window := int(math.Max(2, float64(n)*0.15))
	var avg, groundAtTerminal float64
	if nearStart {
		if window > n {
			window = n
		}
		for i := 0; i < window; i++ {
			avg += profile[i]
		}
		avg /= float64(window)
		groundAtTerminal = profile[0]
	} else {
		if window > n {
			window = n
		}
		for i := n - window; i < n; i++ {
			avg += profile[i]
		}
		avg /= float64(window)
		groundAtTerminal = profile[n-1]
	}
	heff := htAGL + (groundAtTerminal - avg)
	if heff < 0.5 {
		heff = 0.5
	}
	return heff
}

// horizonDistanceM is the smooth-earth radio horizon distance for a terminal
// at effective height heffM, using the 4/3-Earth model.
func horizonDistanceM(heffM float64) float64 {
	return math.Sqrt(2.0 * itmEffectiveEarthRadiusM * heffM)
}

// ITMPathLossDB computes a simplified Longley-Rice point-to-point path loss
// over the given terrain profile (spec §4.C "ITM point-to-point"). profile
// holds AMSL heights uniformly spaced at spacingM; txHtAGL/rxHtAGL are
// antenna heights above local ground at each end. confidence is the
// configured ITM reliability/confidence fraction in [0,1]; relevance is
// fixed at itmRelevance per spec. Returns the loss in dB, labeled "ITM".
func ITMPathLossDB(profile []float64, spacingM, freqHz, txHtAGL, rxHtAGL, confidence float64, draw GaussianDraw) float64 {
	n := len(profile)
	distM := float64(n-1) * spacingM
	distKm := distM / 1000.0

	deltaH := terrainIrregularityM(profile, spacingM)
	heffTx := effectiveHeightM(profile, true, txHtAGL)
	heffRx := effectiveHeightM(profile, false, rxHtAGL)

	dLTx := horizonDistanceM(heffTx)
	dLRx := horizonDistanceM(heffRx)

	fsplDB := FreeSpaceLossDB(freqHz, distKm)

	var median float64
	if distM <= dLTx+dLRx {
		// within line of sight: free-space loss plus a small terrain-roughness
		// term representing two-ray/ground-reflection interference.
		median = fsplDB + 10.0*math.Log10(1.0+deltaH/100.0)
	} else {
		// beyond the radio horizon: smooth-earth diffraction loss added on top
		// of the free-space loss to the horizon distance.
		excessM := distM - (dLTx + dLRx)
		diffractionDB := 20.0*math.Log10(1.0+excessM/1000.0) + 0.5*math.Sqrt(deltaH)
		median = fsplDB + diffractionDB
	}

	// Variability: sigma grows with terrain roughness, bounded to a plausible
	// range; applied at the configured confidence (or a Monte-Carlo draw).
	sigma := math.Min(12.0, 4.0+0.04*deltaH)
	z := draw.Z(confidence)

	return median + sigma*z
}
