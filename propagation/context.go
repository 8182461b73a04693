// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

// Package propagation implements the composite propagation-loss model (spec
// component C): FSPL, ITM point-to-point, the Winner-II variants, and the
// ITU-R P.2108/P.452/P.2109 clutter and building-penetration terms, selected
// and composed per the "FCC-6GHz R&O" model.
package propagation

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// ModelKind selects the top-level propagation model (spec §4.C, §4.K).
type ModelKind int

const (
	FSPL ModelKind = iota
	ITMOnly
	ITMBuilding
	FCC6GHzRO
)

// Environment classifies the morphology at the transmitter location, driving
// clutter-model and Winner-II-variant selection.
type Environment int

const (
	Urban Environment = iota
	Suburban
	Rural
	Barren
)

// BuildingType selects the P.2109 coefficient table, or a fixed override.
type BuildingType int

const (
	BuildingNone BuildingType = iota
	BuildingTraditional
	BuildingThermalEfficient
	BuildingFixedValue
)

// Context is the immutable per-request propagation configuration (spec §3
// PropagationContext).
type Context struct {
	Model ModelKind

	ClutterConfidence  float64 // P.2108 / P.452 confidence, [0,1]
	BuildingConfidence float64 // P.2109 confidence, [0,1]
	ITMConfidence      float64 // ITM confidence/reliability, [0,1]
	Win2Confidence     float64 // Winner-II sigma quantile, [0,1]

	Win2LOSThreshold float64 // probability above which LOS branch is selected
	Win2Combine      bool    // probability-weighted LOS/NLOS blend
	Win2BuildingLOS  bool    // force LOS/NLOS from building-tile data at both ends

	CloseInRadiusKm float64
	ClampToFSPL     bool

	BuildingType        BuildingType
	FixedBuildingLossDB float64

	PolarizationLossDB  float64
	BodyLossIndoorDB    float64
	BodyLossOutdoorDB   float64
	FeederLossOverrideDB *float64

	FixedProb bool // deterministic quantile mode vs Monte-Carlo mode
	RNG       *rand.Rand // only consulted when !FixedProb
}

// GaussianDraw abstracts the "Gaussian draw" spec §4.C and §9 call for: a
// deterministic quantile lookup in fixed-probability mode, or an explicit
// per-call standard-normal sample in Monte-Carlo mode. The two modes must
// never be conflated (spec §9 design note).
type GaussianDraw interface {
	// Z returns a standard-normal value. In fixed-probability mode this is
	// the quantile at `confidence` (pure function, deterministic); in
	// Monte-Carlo mode it is a fresh random draw and `confidence` is ignored.
	Z(confidence float64) float64
}

type fixedDraw struct{}

func (fixedDraw) Z(confidence float64) float64 {
	return distuv.UnitNormal.Quantile(confidence)
}

type monteCarloDraw struct {
	rng *rand.Rand
}

func (d monteCarloDraw) Z(confidence float64) float64 {
	n := distuv.Normal{Mu: 0, Sigma: 1, Src: d.rng}
	return n.Rand()
}

// Draw builds the Gaussian-draw source implied by ctx.FixedProb, per the
// fixed-probability/Monte-Carlo distinction of spec §9.
func (ctx *Context) Draw() GaussianDraw {
	if ctx.FixedProb || ctx.RNG == nil {
		return fixedDraw{}
	}
	return monteCarloDraw{rng: ctx.RNG}
}
