// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package propagation

import "math"

// Win2Variant selects one of the three WINNER-II scenario families used for
// close-in propagation (spec §4.C model (4)): C1 (suburban macro), C2 (urban
// macro), D1 (rural macro).
type Win2Variant int

const (
	Win2C1Suburban Win2Variant = iota
	Win2C2Urban
	Win2D1Rural
)

// Win2VariantFor maps an environment classification to its WINNER-II
// variant, per the mapping in spec §4.C model (4): urban->C2, suburban->C1,
// rural/barren->D1.
func Win2VariantFor(env Environment) Win2Variant {
	switch env {
	case Urban:
		return Win2C2Urban
	case Suburban:
		return Win2C1Suburban
	default:
		return Win2D1Rural
	}
}

// win2LOSProbability returns P(LOS) at distance distM (meters), using the
// closed-form probability curves associated with each WINNER-II scenario.
func win2LOSProbability(v Win2Variant, distM float64) float64 {
	if distM <= 0 {
		return 1.0
	}
	switch v {
	case Win2C1Suburban, Win2C2Urban:
		return math.Min(18.0/distM, 1.0)*(1.0-math.Exp(-distM/63.0)) + math.Exp(-distM/63.0)
	default: // Win2D1Rural
		return math.Exp(-distM / 1000.0)
	}
}

// win2Params holds the single-segment log-distance approximation of each
// WINNER-II scenario's LOS and NLOS path-loss equations and shadow-fading sigma.
type win2Params struct {
	losSlope, losIntercept   float64
	nlosSlope, nlosIntercept float64
	losSigma, nlosSigma      float64
}

func win2ParamsFor(v Win2Variant, hBS, hMS float64) win2Params {
	switch v {
	case Win2C1Suburban:
		return win2Params{
			losSlope: 23.8, losIntercept: 41.2,
			nlosSlope:    44.9 - 6.55*math.Log10(hBS),
			nlosIntercept: 31.46 + 5.83*math.Log10(hBS),
			losSigma: 4.0, nlosSigma: 8.0,
		}
	case Win2C2Urban:
		return win2Params{
			losSlope: 26.0, losIntercept: 39.0,
			nlosSlope:    44.9 - 6.55*math.Log10(hBS),
			nlosIntercept: 34.46 + 5.83*math.Log10(hBS),
			losSigma: 4.0, nlosSigma: 8.0,
		}
	default: // Win2D1Rural
		return win2Params{
			losSlope: 21.5, losIntercept: 44.2,
			nlosSlope:    25.1,
			nlosIntercept: 55.4 - 0.13*(hBS-25.0)*2.0 - 0.9*(hMS-1.5),
			losSigma: 4.0, nlosSigma: 8.0,
		}
	}
}

// win2LossDB evaluates the LOS or NLOS closed-form path-loss equation for a
// variant at distance distM and frequency freqHz, with BS/MS heights hBS,
// hMS (meters).
func win2LossDB(v Win2Variant, los bool, distM, freqHz, hBS, hMS float64) (lossDB, sigma float64) {
	if distM < 1.0 {
		distM = 1.0
	}
	freqGHzTerm := 20.0 * math.Log10(freqHz/1e9/5.0)
	p := win2ParamsFor(v, hBS, hMS)
	if los {
		return p.losSlope*math.Log10(distM) + p.losIntercept + freqGHzTerm, p.losSigma
	}
	return p.nlosSlope*math.Log10(distM) + p.nlosIntercept + freqGHzTerm, p.nlosSigma
}

// WinnerII computes the WINNER-II close-in path loss, in dB, at distance
// distM for variant v. If forceLOS/forceNLOS is set (building-tile data says
// both endpoints have known LOS status, spec §4.C), the probability test is
// bypassed. Otherwise, when ctx.Win2Combine is set, the LOS and NLOS losses
// are blended in the linear domain weighted by P(LOS), with a combined sigma;
// when not set, the branch with the higher probability relative to
// ctx.Win2LOSThreshold is selected outright.
func WinnerII(v Win2Variant, distM, freqHz, hBS, hMS float64, forceLOS, forceNLOS bool, ctx *Context) (lossDB float64, sigma float64, isLOS bool) {
	pLOS := win2LOSProbability(v, distM)

	switch {
	case forceLOS:
		l, s := win2LossDB(v, true, distM, freqHz, hBS, hMS)
		return l, s, true
	case forceNLOS:
		l, s := win2LossDB(v, false, distM, freqHz, hBS, hMS)
		return l, s, false
	case ctx.Win2Combine:
		losL, losS := win2LossDB(v, true, distM, freqHz, hBS, hMS)
		nlosL, nlosS := win2LossDB(v, false, distM, freqHz, hBS, hMS)
		linear := pLOS*math.Pow(10, -losL/10.0) + (1-pLOS)*math.Pow(10, -nlosL/10.0)
		combined := -10.0 * math.Log10(linear)
		combinedSigma := math.Sqrt(pLOS*losS*losS + (1-pLOS)*nlosS*nlosS)
		return combined, combinedSigma, pLOS >= 0.5
	default:
		useLOS := pLOS > ctx.Win2LOSThreshold
		l, s := win2LossDB(v, useLOS, distM, freqHz, hBS, hMS)
		return l, s, useLOS
	}
}
