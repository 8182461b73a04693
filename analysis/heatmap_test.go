// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeatmapRasterizesGridAndComputesMaxIOverN(t *testing.T) {
	k := testKernel()
	k.Cfg.MaxLinkDistanceKm = 50

	fsSet, err := buildFsSet([]fsFixture{
		{id: 1, latDeg: 40.02, lonDeg: -105.0, startMHz: 5945, stopMHz: 5965},
	})
	require.NoError(t, err)

	req := HeatmapRequest{
		MinLatDeg: 39.98, MaxLatDeg: 40.02,
		MinLonDeg: -105.02, MaxLonDeg: -104.98,
		SpacingM: 2000,
		Channel:  testChannel(5945, 5965),
	}
	cells, err := k.Heatmap(req, fsSet, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, cells)

	sawFinite := false
	for _, c := range cells {
		if !math.IsInf(c.MaxIOverNDB, -1) {
			sawFinite = true
		}
	}
	assert.True(t, sawFinite, "expected at least one cell within fs range to compute a finite I/N")
}

func TestHeatmapSingleCellWhenSpacingExceedsExtent(t *testing.T) {
	k := testKernel()
	fsSet, _ := emptyFsSetForHeatmap()

	req := HeatmapRequest{
		MinLatDeg: 40, MaxLatDeg: 40,
		MinLonDeg: -105, MaxLonDeg: -105,
		SpacingM: 1000,
		Channel:  testChannel(5945, 5965),
	}
	cells, err := k.Heatmap(req, fsSet, nil)
	require.NoError(t, err)
	assert.Len(t, cells, 1)
}
