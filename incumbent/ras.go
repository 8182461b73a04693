// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package incumbent

import (
	"math"

	"github.com/openafc/afc-engine/geodesy"
)

// RasKind tags which exclusion-zone shape a RasRegion carries (spec §3).
type RasKind int

const (
	RasRectangleSet RasKind = iota
	RasFixedRadiusCircle
	RasHorizonDistanceCircle
)

// RasBox is one axis-aligned lon/lat bounding box of a rectangle-set RAS.
type RasBox struct {
	MinLonDeg, MaxLonDeg float64
	MinLatDeg, MaxLatDeg float64
}

// RasRegion is a radio-astronomy exclusion zone (spec §3). Exactly one of
// Boxes / CenterPoint+RadiusM / CenterPoint+HeightM is meaningful,
// according to Kind.
type RasRegion struct {
	Name string
	Kind RasKind

	// RasRectangleSet: 1 or 2 boxes.
	Boxes []RasBox

	// RasFixedRadiusCircle / RasHorizonDistanceCircle.
	CenterPoint geodesy.LatLon
	RadiusM     float64 // RasFixedRadiusCircle only
	RasHeightM  float64 // RasHorizonDistanceCircle: h_ras term

	StartFreqHz, StopFreqHz float64
}

// horizonDistanceRadiusM implements the horizon-distance circle radius
// formula from spec §3: radius = sqrt(2*R*4/3) * (sqrt(h_ras) + sqrt(h_tx)),
// with R the WGS-84 mean earth radius and the 4/3 factor the standard
// effective-earth-radius correction for radio horizon.
func horizonDistanceRadiusM(hRasM, hTxM float64) float64 {
	if hRasM < 0 {
		hRasM = 0
	}
	if hTxM < 0 {
		hTxM = 0
	}
	k := math.Sqrt(2.0 * geodesy.EarthRadiusMeters * 4.0 / 3.0)
	return k * (math.Sqrt(hRasM) + math.Sqrt(hTxM))
}

// Intersects reports whether the uncertainty region, extended by h_tx AGL
// for the horizon-distance case, intersects this RAS (spec §3: "if the
// uncertainty region (extended by h_tx) intersects the RAS, every
// overlapping channel is blacklisted"). center/maxDist describe a bounding
// circle around the uncertainty region (its centroid and MaxDist()).
func (r *RasRegion) Intersects(center geodesy.LatLon, maxDistM, txHeightAGLM float64) bool {
	switch r.Kind {
	case RasRectangleSet:
		for _, b := range r.Boxes {
			if boxIntersectsCircle(b, center, maxDistM) {
				return true
			}
		}
		return false
	case RasFixedRadiusCircle:
		d := geodesy.HaversineMeters(center, r.CenterPoint)
		return d <= r.RadiusM+maxDistM
	case RasHorizonDistanceCircle:
		radius := horizonDistanceRadiusM(r.RasHeightM, txHeightAGLM)
		d := geodesy.HaversineMeters(center, r.CenterPoint)
		return d <= radius+maxDistM
	default:
		return false
	}
}

// boxIntersectsCircle clamps the circle center into the box and compares
// the clamped distance against radiusM, the standard circle/axis-aligned-
// rectangle intersection test, converting the box's lon/lat degree extents
// to meters at the circle's latitude.
func boxIntersectsCircle(b RasBox, center geodesy.LatLon, radiusM float64) bool {
	metersPerDegLat := geodesy.EarthRadiusMeters * math.Pi / 180.0
	metersPerDegLon := metersPerDegLat * math.Cos(center.LatDeg*math.Pi/180.0)
	if metersPerDegLon <= 0 {
		metersPerDegLon = metersPerDegLat
	}

	clampedLon := clampF(center.LonDeg, b.MinLonDeg, b.MaxLonDeg)
	clampedLat := clampF(center.LatDeg, b.MinLatDeg, b.MaxLatDeg)

	dLonM := (center.LonDeg - clampedLon) * metersPerDegLon
	dLatM := (center.LatDeg - clampedLat) * metersPerDegLat
	dist := math.Hypot(dLonM, dLatM)
	return dist <= radiusM
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RasSet is the loaded catalog of RAS exclusion zones.
type RasSet struct {
	regions []*RasRegion
}

// LoadAll constructs a RasSet from an already-parsed list of regions; the
// RAS database reader itself is out of scope (spec §1).
func LoadAll(regions []*RasRegion) *RasSet {
	return &RasSet{regions: regions}
}

// Len returns the number of RAS regions in the set.
func (s *RasSet) Len() int { return len(s.regions) }

// All returns every RAS region in the set.
func (s *RasSet) All() []*RasRegion { return s.regions }

// Intersecting returns every RAS region that intersects the given bounding
// circle (spec §4.G "RAS operations: loadAll(), intersects(...) per
// region").
func (s *RasSet) Intersecting(center geodesy.LatLon, maxDistM, txHeightAGLM float64) []*RasRegion {
	var out []*RasRegion
	for _, r := range s.regions {
		if r.Intersects(center, maxDistM, txHeightAGLM) {
			out = append(out, r)
		}
	}
	return out
}
