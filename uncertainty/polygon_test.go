// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package uncertainty

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openafc/afc-engine/geodesy"
)

func squareVertices(center geodesy.LatLon, halfSideM float64) []geodesy.LatLon {
	o := newENUOrigin(center)
	return []geodesy.LatLon{
		o.fromENU(-halfSideM, -halfSideM, center.HeightM),
		o.fromENU(halfSideM, -halfSideM, center.HeightM),
		o.fromENU(halfSideM, halfSideM, center.HeightM),
		o.fromENU(-halfSideM, halfSideM, center.HeightM),
	}
}

func TestLinearPolygonCentroidOfSquareIsCenter(t *testing.T) {
	center := geodesy.LatLon{LatDeg: 40.0, LonDeg: -105.0, HeightM: 10}
	verts := squareVertices(center, 300)
	lp := NewLinearPolygon(verts, center.HeightM, 20)
	c := lp.Center()
	assert.InDelta(t, center.LatDeg, c.LatDeg, 1e-6)
	assert.InDelta(t, center.LonDeg, c.LonDeg, 1e-6)
}

func TestLinearPolygonMaxDistIsHalfDiagonal(t *testing.T) {
	center := geodesy.LatLon{LatDeg: 40.0, LonDeg: -105.0, HeightM: 10}
	half := 300.0
	verts := squareVertices(center, half)
	lp := NewLinearPolygon(verts, center.HeightM, 20)
	want := math.Hypot(half, half)
	assert.InDelta(t, want, lp.MaxDist(), 1e-3)
}

func TestLinearPolygonClosestPointInsideIsUnchanged(t *testing.T) {
	center := geodesy.LatLon{LatDeg: 40.0, LonDeg: -105.0, HeightM: 10}
	verts := squareVertices(center, 300)
	lp := NewLinearPolygon(verts, center.HeightM, 20)
	closest, contains := lp.ClosestPoint(center)
	assert.True(t, contains)
	assert.Equal(t, center, closest)
}

func TestLinearPolygonClosestPointOutsideOnEdge(t *testing.T) {
	center := geodesy.LatLon{LatDeg: 40.0, LonDeg: -105.0, HeightM: 10}
	half := 300.0
	verts := squareVertices(center, half)
	lp := NewLinearPolygon(verts, center.HeightM, 20)

	o := newENUOrigin(center)
	outside := o.fromENU(1000, 0, center.HeightM)
	closest, contains := lp.ClosestPoint(outside)
	assert.False(t, contains)

	east, north := o.toENU(closest)
	assert.InDelta(t, half, east, 1e-3)
	assert.InDelta(t, 0, north, 1e-3)
}

func TestLinearPolygonClosestPointNeverFartherThanVertex(t *testing.T) {
	center := geodesy.LatLon{LatDeg: 40.0, LonDeg: -105.0, HeightM: 10}
	verts := squareVertices(center, 300)
	lp := NewLinearPolygon(verts, center.HeightM, 20)

	o := newENUOrigin(center)
	outside := o.fromENU(1200, 900, center.HeightM)
	closest, contains := lp.ClosestPoint(outside)
	assert.False(t, contains)

	oEast, oNorth := o.toENU(outside)
	cEast, cNorth := o.toENU(closest)
	distClosest := math.Hypot(cEast-oEast, cNorth-oNorth)

	for _, v := range verts {
		vEast, vNorth := o.toENU(v)
		distV := math.Hypot(vEast-oEast, vNorth-oNorth)
		assert.LessOrEqual(t, distClosest, distV+1e-6)
	}
}

func TestRadialPolygonSpokesProduceMatchingBoundary(t *testing.T) {
	center := geodesy.LatLon{LatDeg: 40.0, LonDeg: -105.0, HeightM: 10}
	spokes := []RadialSpoke{
		{AngleDeg: 0, LengthM: 200},
		{AngleDeg: 90, LengthM: 300},
		{AngleDeg: 180, LengthM: 200},
		{AngleDeg: 270, LengthM: 300},
	}
	rp := NewRadialPolygon(center, spokes, 15)
	assert.Equal(t, 15.0, rp.HeightUncertainty())
	assert.InDelta(t, 300, rp.MaxDist(), 1.0)

	boundary := rp.Boundary()
	assert.Len(t, boundary, 4)
}

func TestRadialPolygonClosestPointContainsCenter(t *testing.T) {
	center := geodesy.LatLon{LatDeg: 40.0, LonDeg: -105.0, HeightM: 10}
	spokes := []RadialSpoke{
		{AngleDeg: 0, LengthM: 200},
		{AngleDeg: 90, LengthM: 200},
		{AngleDeg: 180, LengthM: 200},
		{AngleDeg: 270, LengthM: 200},
	}
	rp := NewRadialPolygon(center, spokes, 15)
	closest, contains := rp.ClosestPoint(center)
	assert.True(t, contains)
	assert.Equal(t, center, closest)
}
