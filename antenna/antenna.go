// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

// Package antenna implements off-boresight antenna discrimination for FS
// receivers (spec component D): the ITU-R F.1245 reference envelope, the
// F.1336 omnidirectional-average pattern, a flat omni pattern, and
// spline-interpolated tabulated patterns.
package antenna

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/interp"
)

// PatternKind selects which antenna-gain model a FsReceiver uses (spec §3).
type PatternKind int

const (
	PatternF1245 PatternKind = iota
	PatternF1336Omni
	PatternOmni
	PatternTabulated
)

// GainDB returns the receive antenna gain, in dB, at off-boresight angle
// thetaDeg (for F.1245/tabulated) or elevation angle elevationDeg (for
// F.1336-omni), given the receiver's peak gain and operating frequency.
// table is only consulted for PatternTabulated.
func GainDB(kind PatternKind, thetaDeg, elevationDeg, peakGainDB, freqHz float64, table *TabulatedPattern) float64 {
	switch kind {
	case PatternF1245:
		return f1245GainDB(thetaDeg, peakGainDB, freqHz)
	case PatternF1336Omni:
		return f1336OmniGainDB(elevationDeg, peakGainDB, freqHz)
	case PatternTabulated:
		if table == nil {
			return peakGainDB
		}
		return table.GainDB(thetaDeg) + peakGainDB
	default: // PatternOmni
		return 0.0
	}
}

// f1245GainDB implements the ITU-R F.1245 reference radiation pattern
// envelope for point-to-point fixed-service antennas.
//
//	G(theta) = Gmax - 2.5e-3 * (d/lambda * theta)^2        for 0 <= theta < theta_m
//	         = G1                                          for theta_m <= theta < theta_r
//	         = 29 - 25*log10(theta)                        for theta_r <= theta < 48 deg
//	         = -13                                         for 48 <= theta <= 180 deg
func f1245GainDB(thetaDeg, gMax, freqHz float64) float64 {
	theta := math.Abs(thetaDeg)
	// d/lambda is derived from Gmax via the standard F.1245 antenna-efficiency
	// relation Gmax = 10*log10(eta*(pi*d/lambda)^2), eta=0.7 (typical FS dish).
	dOverLambda := math.Sqrt(math.Pow(10, gMax/10) / 0.7 / (math.Pi * math.Pi))

	g1 := 2.0 + 15.0*math.Log10(dOverLambda)
	thetaM := 20.0 / dOverLambda * math.Sqrt(gMax-g1)
	thetaR := 15.85 * math.Pow(dOverLambda, -0.6)
	if thetaR < thetaM {
		thetaR = thetaM
	}

	switch {
	case theta < thetaM:
		return gMax - 2.5e-3*math.Pow(dOverLambda*theta, 2)
	case theta < thetaR:
		return g1
	case theta < 48.0:
		return 29.0 - 25.0*math.Log10(theta)
	default:
		return -13.0
	}
}

// f1336OmniGainDB implements the ITU-R F.1336 omnidirectional-average
// vertical-plane pattern, as a function of elevation angle off boresight.
//
//	G(phi) = Gmax - min(12*(phi/phi3dB)^2, ksi)
func f1336OmniGainDB(elevationDeg, gMax, freqHz float64) float64 {
	phi3dB := 107.6 * math.Pow(10, -gMax/20.0)
	if phi3dB <= 0 {
		phi3dB = 1.0
	}
	ksi := 20.0 // maximum near-in sidelobe suppression, dB
	drop := 12.0 * math.Pow(elevationDeg/phi3dB, 2)
	if drop > ksi {
		drop = ksi
	}
	return gMax - drop
}

// TabulatedPattern is a measured boresight-relative antenna pattern sampled
// at discrete off-boresight angles, spline-interpolated between samples and
// linearly extrapolated beyond the sampled range (spec §4.D).
type TabulatedPattern struct {
	angles []float64 // degrees, strictly increasing
	spline interp.FittedFunction
	minA, maxA float64
	minG, maxG float64
}

// NewTabulatedPattern builds a pattern from (angleDeg, relativeGainDB) pairs.
// The pairs need not be sorted; at least two points are required.
func NewTabulatedPattern(anglesDeg, relGainDB []float64) *TabulatedPattern {
	n := len(anglesDeg)
	if n < 2 || n != len(relGainDB) {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return anglesDeg[idx[i]] < anglesDeg[idx[j]] })
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, j := range idx {
		xs[i] = anglesDeg[j]
		ys[i] = relGainDB[j]
	}
	var sp interp.AkimaSpline
	_ = sp.Fit(xs, ys)
	return &TabulatedPattern{
		angles: xs,
		spline: &sp,
		minA:   xs[0], maxA: xs[n-1],
		minG: ys[0], maxG: ys[n-1],
	}
}

// GainDB returns the relative gain (dB, to be offset by peak gain by the
// caller) at off-boresight angle thetaDeg, splined within the sampled range
// and linearly extended using the boundary slope beyond it.
func (p *TabulatedPattern) GainDB(thetaDeg float64) float64 {
	theta := math.Abs(thetaDeg)
	switch {
	case theta <= p.minA:
		return p.minG
	case theta >= p.maxA:
		n := len(p.angles)
		if n < 2 {
			return p.maxG
		}
		slope := (p.spline.Predict(p.angles[n-1]) - p.spline.Predict(p.angles[n-2])) / (p.angles[n-1] - p.angles[n-2])
		return p.maxG + slope*(theta-p.maxA)
	default:
		return p.spline.Predict(theta)
	}
}
