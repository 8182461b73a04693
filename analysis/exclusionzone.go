// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package analysis

import (
	"math"

	"github.com/openafc/afc-engine/afcerr"
	"github.com/openafc/afc-engine/channelplan"
	"github.com/openafc/afc-engine/geodesy"
	"github.com/openafc/afc-engine/incumbent"
	"github.com/openafc/afc-engine/progress"
)

// maxBisectionIterations bounds the per-azimuth bisection search (spec §4.I,
// testable property #8: "exclusion-zone bisection converges in <=64
// iterations").
const maxBisectionIterations = 64

// bisectionPrecisionM is the linear-distance convergence tolerance, the
// meter equivalent of 1 µdeg of arc at the equator (spec §4.I "1 µdeg
// precision"): 1e-6 * (pi/180) * EarthRadiusMeters.
const bisectionPrecisionM = 1e-6 * (math.Pi / 180) * geodesy.EarthRadiusMeters

// azimuthStepCount is the number of boundary points traced around the
// transmitter (spec §4.I "360-azimuth radial bisection").
const azimuthStepCount = 360

// ExclusionZoneRequest asks for the distance, at each of 360 azimuths
// around txPosn, beyond which fs's I/N margin first clears threshold on a
// single channel (spec §4.I exclusion-zone mode).
type ExclusionZoneRequest struct {
	TxPosn       geodesy.LatLon
	TxHeightAGLM float64
	Channel      channelplan.Channel
}

// ExclusionZoneVertex is one traced boundary point.
type ExclusionZoneVertex struct {
	AzimuthDeg float64
	Point      geodesy.LatLon
	DistanceM  float64
}

// ExclusionZone traces the exclusion-zone boundary of a single fs on a
// single channel, one vertex per azimuth degree (spec §4.I).
func (k *Kernel) ExclusionZone(req ExclusionZoneRequest, fs *incumbent.FsReceiver, tr *progress.Tracker) ([]ExclusionZoneVertex, error) {
	txLL := req.TxPosn
	txLL.HeightM = req.TxHeightAGLM
	k.TxHeightAGLM = req.TxHeightAGLM

	vertices := make([]ExclusionZoneVertex, 0, azimuthStepCount)
	for az := 0; az < azimuthStepCount; az++ {
		if tr != nil && tr.Cancelled() {
			return nil, nil
		}
		azimuthDeg := float64(az)

		distM, err := k.bisectBoundary(req.TxPosn, azimuthDeg, req.Channel, fs)
		if err != nil {
			return nil, err
		}

		pt := geodesy.Destination(req.TxPosn, azimuthDeg, distM)
		vertices = append(vertices, ExclusionZoneVertex{AzimuthDeg: azimuthDeg, Point: pt, DistanceM: distM})

		if tr != nil {
			tr.Increment()
		}
	}
	return vertices, nil
}

// bisectBoundary finds, along one azimuth ray from center, the distance at
// which fs's computed margin crosses zero: it starts from a fixed bracket of
// 1 m and 1000 m, doubles the upper end until the margin there is
// non-negative, then bisects (at most maxBisectionIterations steps in each
// phase). The initial bracket is not derived from FSPL. A margin that is
// already non-negative at 1 m gives a zero-radius result.
func (k *Kernel) bisectBoundary(center geodesy.LatLon, azimuthDeg float64, ch channelplan.Channel, fs *incumbent.FsReceiver) (float64, error) {
	marginAt := func(distM float64) (float64, error) {
		pt := geodesy.Destination(center, azimuthDeg, distM)
		pt.HeightM = k.TxHeightAGLM
		eirp, applicable, err := k.evaluate(pt, ch, fs)
		if err != nil {
			return 0, err
		}
		if !applicable {
			return math.Inf(1), nil
		}
		// eirp is the permitted EIRP at this point; a negative value means a
		// transmitter at MaxEirpDBm would push fs's I/N above threshold, i.e.
		// the point is still inside the exclusion zone.
		return eirp - k.Cfg.MaxEirpDBm, nil
	}

	lo, hi := 1.0, 1000.0
	loMargin, err := marginAt(lo)
	if err != nil {
		return 0, err
	}
	if loMargin >= 0 {
		// already outside the zone at 1m: degenerate case, zero-radius zone.
		return 0, nil
	}

	hiMargin, err := marginAt(hi)
	if err != nil {
		return 0, err
	}
	for i := 0; hiMargin < 0 && i < maxBisectionIterations; i++ {
		hi *= 2
		hiMargin, err = marginAt(hi)
		if err != nil {
			return 0, err
		}
	}
	if hiMargin < 0 {
		return 0, afcerr.New(afcerr.ComputationError, "exclusion zone bisection failed to bracket a root for fs %d at azimuth %v", fs.Id, azimuthDeg)
	}

	for i := 0; i < maxBisectionIterations; i++ {
		if hi-lo < bisectionPrecisionM {
			break
		}
		mid := (lo + hi) / 2
		midMargin, err := marginAt(mid)
		if err != nil {
			return 0, err
		}
		if midMargin < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2, nil
}
