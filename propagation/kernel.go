// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package propagation

import (
	"math"

	"github.com/openafc/afc-engine/afcerr"
)

// Result is the output of the composite propagation kernel (spec §4.C
// contract): the total path loss, the clutter component already folded into
// it, the ordered list of model labels applied, and the CDF values of any
// probabilistic components evaluated along the way.
type Result struct {
	PathLossDB  float64
	ClutterDB   float64
	ModelLabels []string
	CDFs        map[string]float64
}

// Profile bundles the terrain profile data the ITM and ITM+building variants
// need; callers evaluating FSPL or close-in WINNER-II need not populate it.
type Profile struct {
	HeightsAMSL       []float64
	SpacingM          float64
	TxOnLidar         bool // both endpoints resolved from a LiDAR building tile
	RxOnLidar         bool
}

// PathLoss is the propagation kernel's public contract (spec §4.C): given an
// environment classification, path distance/frequency, antenna heights, the
// elevation angle of the path as seen from the transmitter, and the
// propagation context (model selection, confidences, close-in radius,
// clamp-to-FSPL, etc.), returns the total path loss plus diagnostics.
//
// profile may be nil for the FSPL model (it does not consult terrain) and
// must be populated for ITM-only/ITM+building/FCC-6GHz-R&O beyond the
// close-in radius.
func PathLoss(env Environment, distKm, freqHz, txHtAGL, rxHtAGL, elevationAngleDeg float64, profile *Profile, ctx *Context) (Result, error) {
	if math.IsNaN(distKm) || math.IsNaN(freqHz) || distKm < 0 || freqHz <= 0 {
		return Result{}, afcerr.New(afcerr.ComputationError, "invalid propagation inputs: distKm=%v freqHz=%v", distKm, freqHz)
	}

	draw := ctx.Draw()
	res := Result{CDFs: map[string]float64{}}

	switch ctx.Model {
	case FSPL:
		res.PathLossDB = FreeSpaceLossDB(freqHz, distKm)
		res.ModelLabels = []string{"FSPL"}
		res.CDFs["fspl"] = 0.5
		return res, checkFinite(res)

	case ITMOnly, ITMBuilding:
		if distKm*1000.0 <= ctx.CloseInRadiusKm*1000.0 {
			v := Win2VariantFor(env)
			loss, sigma, _ := WinnerII(v, distKm*1000.0, freqHz, txHtAGL, rxHtAGL, false, false, ctx)
			res.PathLossDB = loss
			res.ModelLabels = []string{"Winner-II-close-in"}
			res.CDFs["winner2_sigma"] = sigma
		} else {
			if profile == nil {
				return Result{}, afcerr.New(afcerr.ComputationError, "ITM model requires a terrain profile beyond the close-in radius")
			}
			res.PathLossDB = ITMPathLossDB(profile.HeightsAMSL, profile.SpacingM, freqHz, txHtAGL, rxHtAGL, ctx.ITMConfidence, draw)
			label := "ITM"
			if ctx.Model == ITMBuilding {
				label = "ITM+building"
			}
			res.ModelLabels = []string{label}
			res.CDFs["itm"] = ctx.ITMConfidence
		}
		clutter := clutterFor(env, freqHz, distKm, txHtAGL, elevationAngleDeg, draw, ctx)
		res.ClutterDB = clutter
		res.PathLossDB += clutter
		if err := applyClamp(&res, freqHz, distKm, ctx); err != nil {
			return Result{}, err
		}
		return res, nil

	case FCC6GHzRO:
		distM := distKm * 1000.0
		switch {
		case distM < 30.0:
			res.PathLossDB = FreeSpaceLossDB(freqHz, distKm)
			res.ModelLabels = []string{"FSPL"}
			res.CDFs["fspl"] = 0.5
		case distM < ctx.CloseInRadiusKm*1000.0:
			v := Win2VariantFor(env)
			forceLOS, forceNLOS := false, false
			if ctx.Win2BuildingLOS && profile != nil {
				if profile.TxOnLidar && profile.RxOnLidar {
					forceLOS = true
				} else {
					forceNLOS = true
				}
			}
			loss, sigma, _ := WinnerII(v, distM, freqHz, txHtAGL, rxHtAGL, forceLOS, forceNLOS, ctx)
			res.PathLossDB = loss
			res.ModelLabels = []string{"Winner-II"}
			res.CDFs["winner2_sigma"] = sigma
		default:
			if profile == nil {
				return Result{}, afcerr.New(afcerr.ComputationError, "FCC-6GHz-R&O model requires a terrain profile beyond the close-in radius")
			}
			res.PathLossDB = ITMPathLossDB(profile.HeightsAMSL, profile.SpacingM, freqHz, txHtAGL, rxHtAGL, ctx.ITMConfidence, draw)
			res.ModelLabels = []string{"ITM"}
			res.CDFs["itm"] = ctx.ITMConfidence
			clutter := clutterFor(env, freqHz, distKm, txHtAGL, elevationAngleDeg, draw, ctx)
			res.ClutterDB = clutter
			res.PathLossDB += clutter
		}
		if err := applyClamp(&res, freqHz, distKm, ctx); err != nil {
			return Result{}, err
		}
		return res, nil

	default:
		return Result{}, afcerr.New(afcerr.ConfigError, "unknown propagation model kind %v", ctx.Model)
	}
}

// clutterFor selects between P.2108 (urban/suburban) and P.452 (rural/
// barren) clutter per spec §4.C.
func clutterFor(env Environment, freqHz, distKm, txHtAGL, elevationAngleDeg float64, draw GaussianDraw, ctx *Context) float64 {
	switch env {
	case Urban, Suburban:
		return P2108ClutterDB(freqHz, distKm, draw, ctx.ClutterConfidence)
	default:
		return P452ClutterDB(txHtAGL, elevationAngleDeg, distKm)
	}
}

// applyClamp replaces the result with FSPL (and tags it) when ctx.ClampToFSPL
// is set and the composite result fell below the free-space floor -- a
// physically implausible outcome that indicates the clutter/diffraction
// terms over-corrected.
func applyClamp(res *Result, freqHz, distKm float64, ctx *Context) error {
	if ctx.ClampToFSPL {
		fspl := FreeSpaceLossDB(freqHz, distKm)
		if res.PathLossDB < fspl {
			res.PathLossDB = fspl
			res.ModelLabels = append(res.ModelLabels, "clamped-to-FSPL")
		}
	}
	return checkFinite(*res)
}

func checkFinite(res Result) error {
	if math.IsNaN(res.PathLossDB) || math.IsInf(res.PathLossDB, 0) {
		return afcerr.New(afcerr.ComputationError, "propagation kernel produced a non-finite path loss")
	}
	return nil
}
