// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package afcio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openafc/afc-engine/incumbent"
)

func TestLoadUlsDatabaseParsesRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uls.csv")
	content := "id,callsign,radioServiceCode,rxLon,rxLat,rxHeightAGL,txLon,txLat,txHeightAGL,startFreqHz,stopFreqHz,peakGainDB,pattern,feederLossDB,noiseFigureDB\n" +
		"1,WQX123,TP,-105,40,30,-105.1,40.1,20,5945000000,5965000000,38,F.1245,2,4\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	recs, err := LoadUlsDatabase(path)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 1, recs[0].Id)
	assert.Equal(t, "WQX123", recs[0].Callsign)
	assert.InDelta(t, 5945000000, recs[0].StartFreqHz, 1)
}

func TestLoadRasDatabaseParsesRectangleSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ras.csv")
	content := "name,kind,minLon1,maxLon1,minLat1,maxLat1,minLon2,maxLon2,minLat2,maxLat2,centerLon,centerLat,radiusM,rasHeightM,startFreqHz,stopFreqHz\n" +
		"Green Bank,rectangleSet,-80,-79,38,39,,,,,0,0,0,0,5900000000,6100000000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	regions, err := LoadRasDatabase(path)
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, incumbent.RasRectangleSet, regions[0].Kind)
	require.Len(t, regions[0].Boxes, 1)
	assert.Equal(t, -80.0, regions[0].Boxes[0].MinLonDeg)
}
