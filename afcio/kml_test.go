// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package afcio

import (
	"archive/zip"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openafc/afc-engine/channelplan"
	"github.com/openafc/afc-engine/geodesy"
)

func TestBuildResultsKmlIncludesBoundaryAndMarkers(t *testing.T) {
	boundary := []geodesy.LatLon{{LatDeg: 40, LonDeg: -105}, {LatDeg: 40.1, LonDeg: -105}, {LatDeg: 40.1, LonDeg: -104.9}}
	markers := []FsConeMarker{{Name: "WQX123", Point: geodesy.LatLon{LatDeg: 40.05, LonDeg: -104.95}, Color: channelplan.ColorRed}}

	out := BuildResultsKml(boundary, markers)
	assert.Contains(t, string(out), "WQX123")
	assert.Contains(t, string(out), "#red")
	assert.Contains(t, string(out), "#boundary")
}

func TestWriteResultsKmzProducesValidZipWithDocKml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.kmz")
	kmlBytes := BuildResultsKml(nil, nil)
	require.NoError(t, WriteResultsKmz(path, kmlBytes))

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()
	require.Len(t, zr.File, 1)
	assert.Equal(t, "doc.kml", zr.File[0].Name)
}
