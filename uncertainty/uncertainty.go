// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

// Package uncertainty implements the 3-D uncertainty-region geometry (spec
// component F): ellipse, linear-polygon and radial-polygon footprints, each
// extruded by a vertical height uncertainty about a center height.
package uncertainty

import (
	"math"

	"github.com/openafc/afc-engine/geodesy"
)

// Region is the capability trait every uncertainty-region variant satisfies
// (spec §9 "polymorphic ... replace inheritance with tagged-variant enums
// plus a capability trait").
type Region interface {
	// Center returns the region's centroid, in (lon, lat, height).
	Center() geodesy.LatLon
	// MaxDist returns the farthest horizontal distance, in meters, from the
	// centroid to any boundary point.
	MaxDist() float64
	// HeightUncertainty returns the vertical half-extent, in meters, about
	// the center height.
	HeightUncertainty() float64
	// ClosestPoint projects an external point onto the region boundary,
	// returning the projected point and whether p lies inside the region.
	ClosestPoint(p geodesy.LatLon) (closest geodesy.LatLon, contains bool)
	// Boundary returns a polyline approximating the region's 2-D outline,
	// for visualization.
	Boundary() []geodesy.LatLon
}

// enuOrigin anchors a local east/north tangent-plane approximation, valid
// over the few-kilometer extents an uncertainty region spans.
type enuOrigin struct {
	lat0, lon0   float64 // radians
	cosLat0      float64
}

func newENUOrigin(centerDeg geodesy.LatLon) enuOrigin {
	latRad := centerDeg.LatDeg * math.Pi / 180
	return enuOrigin{lat0: latRad, lon0: centerDeg.LonDeg * math.Pi / 180, cosLat0: math.Cos(latRad)}
}

// toENU converts a geodetic point to local (east, north) meters relative to
// the origin, under the small-region flat-earth approximation.
func (o enuOrigin) toENU(p geodesy.LatLon) (east, north float64) {
	latRad := p.LatDeg * math.Pi / 180
	lonRad := p.LonDeg * math.Pi / 180
	east = (lonRad - o.lon0) * o.cosLat0 * geodesy.EarthRadiusMeters
	north = (latRad - o.lat0) * geodesy.EarthRadiusMeters
	return
}

// fromENU is the inverse of toENU.
func (o enuOrigin) fromENU(east, north, heightM float64) geodesy.LatLon {
	latRad := o.lat0 + north/geodesy.EarthRadiusMeters
	lonRad := o.lon0 + east/(o.cosLat0*geodesy.EarthRadiusMeters)
	return geodesy.LatLon{
		LatDeg:  latRad * 180 / math.Pi,
		LonDeg:  lonRad * 180 / math.Pi,
		HeightM: heightM,
	}
}
