// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package afcio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRegionEllipse(t *testing.T) {
	loc := Location{
		Ellipse: &EllipseLocation{
			Center:     LatLonPoint{Latitude: 40, Longitude: -105},
			MajorAxisM: 50, MinorAxisM: 30,
		},
		HeightM:              1650,
		VerticalUncertaintyM: 5,
	}
	region, err := loc.ToRegion()
	require.NoError(t, err)
	assert.Equal(t, 40.0, region.Center().LatDeg)
	assert.Equal(t, 50.0, region.MaxDist())
}

func TestToRegionRejectsEmptyLocation(t *testing.T) {
	_, err := (&Location{}).ToRegion()
	assert.Error(t, err)
}
