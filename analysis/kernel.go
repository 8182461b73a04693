// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

// Package analysis implements the analysis orchestrator (spec component
// I): the shared evaluate() kernel, and the point / exclusion-zone /
// heatmap modes built over it.
package analysis

import (
	"math"

	"github.com/openafc/afc-engine/afcerr"
	"github.com/openafc/afc-engine/antenna"
	"github.com/openafc/afc-engine/channelplan"
	"github.com/openafc/afc-engine/config"
	"github.com/openafc/afc-engine/geodesy"
	"github.com/openafc/afc-engine/incumbent"
	"github.com/openafc/afc-engine/overlap"
	"github.com/openafc/afc-engine/propagation"
	"github.com/openafc/afc-engine/terrain"
)

// Kernel bundles every piece of per-request immutable state evaluate()
// needs (spec §5: "per-request immutable state (config, incumbent set,
// terrain snapshot)").
type Kernel struct {
	Cfg           *config.Config
	PropCtx       *propagation.Context
	Env           propagation.Environment
	Terrain       *terrain.Provider
	AciEnabled    bool
	IndoorDeployment bool
	TxHeightAGLM  float64
}

// offBoresightDeg returns the angle between fs's boresight unit vector and
// the vector from fs.rx to txECEF (spec §4.I "offBoresight(fs, txPosn)").
func offBoresightDeg(fs *incumbent.FsReceiver, txECEF geodesy.Vec3) float64 {
	toTx := geodesy.Sub(txECEF, fs.RxPosECEF)
	toTx = geodesy.Normalize(toTx)
	cosTheta := geodesy.Dot(fs.BoresightUnit, toTx)
	if cosTheta > 1 {
		cosTheta = 1
	} else if cosTheta < -1 {
		cosTheta = -1
	}
	return math.Acos(cosTheta) * 180 / math.Pi
}

// elevationAngleDeg returns the angle, at txECEF, between local "up" and
// the line of sight to rxECEF, positive above the local horizon (spec §4.I
// "elev = angle at tx between up and line-of-sight to fs.rx").
func elevationAngleDeg(txECEF, rxECEF geodesy.Vec3) float64 {
	up := geodesy.Normalize(txECEF)
	los := geodesy.Normalize(geodesy.Sub(rxECEF, txECEF))
	cosFromUp := geodesy.Dot(up, los)
	if cosFromUp > 1 {
		cosFromUp = 1
	} else if cosFromUp < -1 {
		cosFromUp = -1
	}
	angleFromUp := math.Acos(cosFromUp) * 180 / math.Pi
	return 90.0 - angleFromUp
}

// feederLossDB returns the configured feeder-loss override if set, else the
// FS record's own feeder loss (spec §3 PropagationContext "feeder-loss
// override").
func (k *Kernel) feederLossDB(fs *incumbent.FsReceiver) float64 {
	if k.PropCtx.FeederLossOverrideDB != nil {
		return *k.PropCtx.FeederLossOverrideDB
	}
	return fs.FeederLossDB
}

func (k *Kernel) bodyLossDB() float64 {
	if k.IndoorDeployment {
		return k.PropCtx.BodyLossIndoorDB
	}
	return k.PropCtx.BodyLossOutdoorDB
}

// buildingPenetrationDB evaluates the configured building-loss source,
// applicable only to indoor deployments (spec §4.I "bldgPen = P.2109(...) |
// fixed | 0").
func (k *Kernel) buildingPenetrationDB(freqHz, elevDeg float64) float64 {
	if !k.IndoorDeployment {
		return 0
	}
	switch k.Cfg.BuildingPenetrationKind {
	case config.BuildingPenetrationFixedValue:
		return k.Cfg.BuildingFixedValueDB
	default:
		loss, _ := propagation.BuildingPenetrationDB(freqHz, elevDeg, k.Cfg.BuildingType, k.PropCtx.Draw(), k.Cfg.BuildingConfidence)
		return loss
	}
}

// profileFor builds the terrain profile PathLoss needs for the ITM-family
// models; txLL/rxLL are AMSL positions.
func (k *Kernel) profileFor(txLL, rxLL geodesy.LatLon, distKm float64) *propagation.Profile {
	if k.Terrain == nil {
		return nil
	}
	n := propagation.ITMProfileSampleCount(distKm)
	heights := k.Terrain.HeightProfile(txLL, rxLL, n)
	spacing := distKm * 1000.0 / float64(n-1)
	txSample := k.Terrain.Height(txLL.LatDeg, txLL.LonDeg)
	rxSample := k.Terrain.Height(rxLL.LatDeg, rxLL.LonDeg)
	return &propagation.Profile{
		HeightsAMSL: heights,
		SpacingM:    spacing,
		TxOnLidar:   txSample.Source == terrain.SourceLidar,
		RxOnLidar:   rxSample.Source == terrain.SourceLidar,
	}
}

// evaluate is the shared per-(tx, channel, fs) kernel of spec §4.I: it
// returns the EIRP limit this FS permits on this channel from this
// transmitter position, and applicable=false when the channel and the FS
// band do not spectrally overlap at all (spec §4.E "zero overlap => skip
// the incumbent for this channel").
func (k *Kernel) evaluate(txLL geodesy.LatLon, ch channelplan.Channel, fs *incumbent.FsReceiver) (eirpLimitDBm float64, applicable bool, err error) {
	chanOverlap := overlap.Overlap(ch.StartFreqMHz, ch.StopFreqMHz, fs.StartFreqHz/1e6, fs.StopFreqHz/1e6, k.AciEnabled)
	if chanOverlap <= 0 {
		return 0, false, nil
	}
	overlapLossDB := overlap.LossDB(chanOverlap)

	// RxPosECEF already carries the terrain-resolved AMSL height from Set
	// loading; derive LatLon back from it rather than re-resolving terrain.
	rxLL := geodesy.ECEFToLatLon(fs.RxPosECEF)

	txECEF := txLL.ToECEF()
	distM := geodesy.Length(geodesy.Sub(fs.RxPosECEF, txECEF))
	if distM <= 0 {
		return 0, false, afcerr.New(afcerr.ComputationError, "zero-distance tx/fs pair")
	}
	distKm := distM / 1000.0

	freqHz := (ch.StartFreqMHz + ch.StopFreqMHz) / 2.0 * 1e6
	elevDeg := elevationAngleDeg(txECEF, fs.RxPosECEF)
	offBoresight := offBoresightDeg(fs, txECEF)

	var profile *propagation.Profile
	if k.PropCtx.Model == propagation.ITMOnly || k.PropCtx.Model == propagation.ITMBuilding || k.PropCtx.Model == propagation.FCC6GHzRO {
		profile = k.profileFor(txLL, rxLL, distKm)
	}

	propRes, perr := propagation.PathLoss(k.Env, distKm, freqHz, k.TxHeightAGLM, fs.RxHeightAGLM, elevDeg, profile, k.PropCtx)
	if perr != nil {
		return 0, false, perr
	}

	bldgPen := k.buildingPenetrationDB(freqHz, elevDeg)
	rxGain := antenna.GainDB(fs.Pattern, offBoresight, elevDeg, fs.PeakGainDB, freqHz, fs.PatternTable)
	bodyLoss := k.bodyLossDB()
	feederLoss := k.feederLossDB(fs)

	eirpMax := k.Cfg.MaxEirpDBm
	rxPowerDBW := eirpMax - 30 - bodyLoss - bldgPen - propRes.PathLossDB +
		rxGain - overlapLossDB - k.PropCtx.PolarizationLossDB - feederLoss

	iOverN := rxPowerDBW - fs.NoiseFloorDBW
	margin := k.Cfg.ThresholdDB - iOverN
	if math.IsNaN(margin) {
		return 0, false, afcerr.New(afcerr.ComputationError, "NaN margin evaluating fs %d on channel [%v,%v)", fs.Id, ch.StartFreqMHz, ch.StopFreqMHz)
	}
	return eirpMax + margin, true, nil
}
