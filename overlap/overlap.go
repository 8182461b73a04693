// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

// Package overlap implements the spectral-overlap calculation between a
// candidate channel rectangle and an incumbent's assigned band (spec
// component E): co-channel fractional overlap, and an adjacent-channel
// (ACI) mask integral.
package overlap

import "math"

// CoChannel returns the fractional in-band overlap between a candidate
// channel [chanStartMHz, chanStopMHz) and an incumbent band
// [rxStartMHz, rxStopMHz), normalized by the channel's own bandwidth and
// clamped to [0,1] (spec §4.E).
func CoChannel(chanStartMHz, chanStopMHz, rxStartMHz, rxStopMHz float64) float64 {
	bw := chanStopMHz - chanStartMHz
	if bw <= 0 {
		return 0
	}
	lo := math.Max(chanStartMHz, rxStartMHz)
	hi := math.Min(chanStopMHz, rxStopMHz)
	frac := (hi - lo) / bw
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}

// aciMaskDB is the adjacent-channel-interference emission mask, in dB
// relative to in-band, as a function of the absolute frequency offset
// foffMHz from the channel center and the channel bandwidth bMHz (spec
// §4.E): flat over the in-band half-width, a log rolloff out to B/2+1, a
// slower rolloff out to B, a tail out to 3B/2, and a floor beyond.
func aciMaskDB(foffMHz, bMHz float64) float64 {
	f := math.Abs(foffMHz)
	half := bMHz / 2.0
	switch {
	case f <= half:
		return 0.0
	case f <= half+1.0:
		return -20.0 * (f - half)
	case f <= bMHz:
		return -20.0 - 8.0*(f-half-1.0)/(bMHz-half-1.0)
	case f <= 1.5*bMHz:
		return -28.0 - 12.0*(f-bMHz)/(0.5*bMHz)
	default:
		return -100.0
	}
}

// aciMaskLinear converts the dB mask to the linear domain.
func aciMaskLinear(foffMHz, bMHz float64) float64 {
	return math.Pow(10, aciMaskDB(foffMHz, bMHz)/10.0)
}

// ACI integrates the emission mask across the incumbent band
// [rxStartMHz, rxStopMHz), expressed relative to the channel center
// chanCenterMHz, and normalizes by the channel bandwidth bMHz (spec §4.E).
func ACI(chanCenterMHz, bMHz, rxStartMHz, rxStopMHz float64) float64 {
	if bMHz <= 0 || rxStopMHz <= rxStartMHz {
		return 0
	}
	const steps = 256
	lo := rxStartMHz - chanCenterMHz
	hi := rxStopMHz - chanCenterMHz
	step := (hi - lo) / steps
	sum := 0.0
	for i := 0; i < steps; i++ {
		f0 := lo + float64(i)*step
		f1 := f0 + step
		sum += 0.5 * (aciMaskLinear(f0, bMHz) + aciMaskLinear(f1, bMHz)) * step
	}
	overlap := sum / bMHz
	if overlap < 0 {
		return 0
	}
	if overlap > 1 {
		return 1
	}
	return overlap
}

// Overlap computes the fractional overlap for either mode: co-channel when
// aciEnabled is false, ACI-integrated when true.
func Overlap(chanStartMHz, chanStopMHz, rxStartMHz, rxStopMHz float64, aciEnabled bool) float64 {
	if !aciEnabled {
		return CoChannel(chanStartMHz, chanStopMHz, rxStartMHz, rxStopMHz)
	}
	center := (chanStartMHz + chanStopMHz) / 2.0
	bw := chanStopMHz - chanStartMHz
	return ACI(center, bw, rxStartMHz, rxStopMHz)
}

// LossDB converts a fractional overlap into a spectral-overlap loss in dB
// (spec §4.E): -10*log10(overlap). Callers must treat a zero overlap as
// "skip this incumbent for this channel" rather than calling LossDB on it.
func LossDB(overlap float64) float64 {
	if overlap <= 0 {
		return math.Inf(1)
	}
	return -10.0 * math.Log10(overlap)
}
