// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package incumbent

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openafc/afc-engine/geodesy"
)

func TestRasRectangleSetIntersects(t *testing.T) {
	r := &RasRegion{
		Kind: RasRectangleSet,
		Boxes: []RasBox{
			{MinLonDeg: -105.1, MaxLonDeg: -104.9, MinLatDeg: 39.9, MaxLatDeg: 40.1},
		},
	}
	inside := geodesy.LatLon{LatDeg: 40.0, LonDeg: -105.0}
	assert.True(t, r.Intersects(inside, 0, 0))

	far := geodesy.LatLon{LatDeg: 50.0, LonDeg: -90.0}
	assert.False(t, r.Intersects(far, 0, 0))
}

func TestRasRectangleSetIntersectsWithMaxDistPadding(t *testing.T) {
	r := &RasRegion{
		Kind: RasRectangleSet,
		Boxes: []RasBox{
			{MinLonDeg: -105.1, MaxLonDeg: -104.9, MinLatDeg: 39.9, MaxLatDeg: 40.1},
		},
	}
	nearby := geodesy.LatLon{LatDeg: 40.0, LonDeg: -104.5}
	assert.False(t, r.Intersects(nearby, 100, 0))
	assert.True(t, r.Intersects(nearby, 50000, 0))
}

func TestRasFixedRadiusCircleIntersects(t *testing.T) {
	r := &RasRegion{
		Kind:        RasFixedRadiusCircle,
		CenterPoint: geodesy.LatLon{LatDeg: 40.0, LonDeg: -105.0},
		RadiusM:     1000,
	}
	close := geodesy.LatLon{LatDeg: 40.001, LonDeg: -105.0}
	assert.True(t, r.Intersects(close, 0, 0))

	far := geodesy.LatLon{LatDeg: 41.0, LonDeg: -105.0}
	assert.False(t, r.Intersects(far, 0, 0))
}

func TestHorizonDistanceRadiusGrowsWithHeights(t *testing.T) {
	r0 := horizonDistanceRadiusM(0, 0)
	assert.Equal(t, 0.0, r0)

	r1 := horizonDistanceRadiusM(100, 0)
	r2 := horizonDistanceRadiusM(100, 50)
	assert.Greater(t, r2, r1)
	assert.False(t, math.IsNaN(r1))
}

func TestRasSetIntersectingCollectsAllMatches(t *testing.T) {
	set := LoadAll([]*RasRegion{
		{Kind: RasFixedRadiusCircle, CenterPoint: geodesy.LatLon{LatDeg: 40.0, LonDeg: -105.0}, RadiusM: 1000},
		{Kind: RasFixedRadiusCircle, CenterPoint: geodesy.LatLon{LatDeg: 60.0, LonDeg: 10.0}, RadiusM: 1000},
	})
	center := geodesy.LatLon{LatDeg: 40.0005, LonDeg: -105.0}
	matches := set.Intersecting(center, 0, 0)
	assert.Len(t, matches, 1)
}
