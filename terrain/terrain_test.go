// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/openafc/afc-engine/geodesy"
)

type constTile struct {
	h        float64
	building float64
	hasB     bool
}

func (c constTile) Elevation(lat, lon float64) (float64, bool) { return c.h, true }
func (c constTile) BuildingHeight(lat, lon float64) (float64, bool) {
	return c.building, c.hasB
}

type emptyTile struct{}

func (emptyTile) Elevation(lat, lon float64) (float64, bool) { return 0, false }

func TestProviderPrecedence(t *testing.T) {
	lidar := constTile{h: 100, building: 12, hasB: true}
	srtm := constTile{h: 90}
	p := NewProvider(zap.NewNop(), 2, lidar, nil, srtm, nil)
	s := p.Height(40, -74)
	assert.Equal(t, SourceLidar, s.Source)
	assert.Equal(t, 100.0, s.TerrainAMSL)
	assert.True(t, s.HasBuilding)
}

func TestProviderFallsThroughToUnknown(t *testing.T) {
	p := NewProvider(zap.NewNop(), 2, emptyTile{}, nil, nil, nil)
	s := p.Height(40, -74)
	assert.Equal(t, SourceUnknown, s.Source)
	assert.Equal(t, 0.0, s.TerrainAMSL)
}

func TestHeightProfileSuppressesEndpointBuildings(t *testing.T) {
	lidar := constTile{h: 100, building: 12, hasB: true}
	p := NewProvider(zap.NewNop(), 3, lidar, nil, nil, nil)
	from := geodesy.LatLon{LatDeg: 40, LonDeg: -74}
	to := geodesy.LatLon{LatDeg: 40.01, LonDeg: -74.01}
	profile := p.HeightProfile(from, to, 10)
	assert.Len(t, profile, 10)
	// every point resolves from the same constant lidar tile, so the first
	// sample (inside the suppression window) must be bare terrain height,
	// while a mid-profile sample outside the window includes the building.
	assert.Equal(t, 100.0, profile[0])
	assert.Equal(t, 112.0, profile[5])
}
