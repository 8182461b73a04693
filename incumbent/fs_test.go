// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package incumbent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openafc/afc-engine/antenna"
	"github.com/openafc/afc-engine/geodesy"
	"github.com/openafc/afc-engine/terrain"
)

type flatTile struct{ h float64 }

func (f flatTile) Elevation(latDeg, lonDeg float64) (float64, bool) { return f.h, true }

func testProvider() *terrain.Provider {
	return terrain.NewProvider(nil, 0, nil, nil, nil, flatTile{h: 100})
}

func sampleRaw() []RawFsRecord {
	return []RawFsRecord{
		{
			Id: 3, Callsign: "WQX123", RadioServiceCode: "TP",
			RxLatDeg: 40.0, RxLonDeg: -105.0, RxHeightAGLM: 20,
			TxLatDeg: 40.01, TxLonDeg: -105.0, TxHeightAGLM: 30,
			StartFreqHz: 6175e6, StopFreqHz: 6200e6,
			PeakGainDB: 38, Pattern: antenna.PatternF1245,
			FeederLossDB: 2, NoiseFigureDB: 4,
		},
		{
			Id: 1, Callsign: "WQX100", RadioServiceCode: "TI",
			RxLatDeg: 40.5, RxLonDeg: -105.5, RxHeightAGLM: 15,
			TxLatDeg: 40.51, TxLonDeg: -105.5, TxHeightAGLM: 25,
			StartFreqHz: 5950e6, StopFreqHz: 5970e6,
			PeakGainDB: 34, Pattern: antenna.PatternOmni,
			FeederLossDB: 1.5, NoiseFigureDB: 5,
		},
	}
}

func TestLoadFsWindowSortsById(t *testing.T) {
	set, err := LoadFsWindow(sampleRaw(), 39, 41, -106, -104, 5945e6, 7125e6, testProvider(), AnomalyPolicy{}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())
	assert.Equal(t, 1, set.All()[0].Id)
	assert.Equal(t, 3, set.All()[1].Id)
}

func TestLoadFsWindowFiltersByFrequency(t *testing.T) {
	set, err := LoadFsWindow(sampleRaw(), 39, 41, -106, -104, 6000e6, 7125e6, testProvider(), AnomalyPolicy{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())
	assert.Equal(t, 3, set.All()[0].Id)
}

func TestFindByIdBinarySearch(t *testing.T) {
	set, err := LoadFsWindow(sampleRaw(), 39, 41, -106, -104, 5945e6, 7125e6, testProvider(), AnomalyPolicy{}, nil)
	require.NoError(t, err)

	found, ok := set.FindById(3)
	require.True(t, ok)
	assert.Equal(t, "WQX123", found.Callsign)

	_, ok = set.FindById(99)
	assert.False(t, ok)
}

func TestIterateIntersectingFiltersByRadiusAndFreq(t *testing.T) {
	set, err := LoadFsWindow(sampleRaw(), 39, 41, -106, -104, 5945e6, 7125e6, testProvider(), AnomalyPolicy{}, nil)
	require.NoError(t, err)

	center := geodesy.LatLon{LatDeg: 40.0, LonDeg: -105.0}
	var seen []int
	set.IterateIntersecting(center, 5000, 7125e6, func(fr *FsReceiver) bool {
		seen = append(seen, fr.Id)
		return true
	})
	assert.Equal(t, []int{3}, seen)
}

func TestIterateIntersectingStopsEarly(t *testing.T) {
	raw := sampleRaw()
	raw = append(raw, RawFsRecord{
		Id: 5, RadioServiceCode: "TP",
		RxLatDeg: 40.0001, RxLonDeg: -105.0001, RxHeightAGLM: 20,
		TxLatDeg: 40.001, TxLonDeg: -105.001, TxHeightAGLM: 30,
		StartFreqHz: 6000e6, StopFreqHz: 6020e6,
		PeakGainDB: 38, Pattern: antenna.PatternF1245,
		FeederLossDB: 2, NoiseFigureDB: 4,
	})
	set, err := LoadFsWindow(raw, 39, 41, -106, -104, 5945e6, 7125e6, testProvider(), AnomalyPolicy{}, nil)
	require.NoError(t, err)

	center := geodesy.LatLon{LatDeg: 40.0, LonDeg: -105.0}
	count := 0
	set.IterateIntersecting(center, 5000, 7125e6, func(fr *FsReceiver) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}

func TestAnomalyPolicyRepairsOutOfRangeGain(t *testing.T) {
	raw := []RawFsRecord{{
		Id: 1, RadioServiceCode: "TP",
		RxLatDeg: 40.0, RxLonDeg: -105.0, RxHeightAGLM: 20,
		TxLatDeg: 40.01, TxLonDeg: -105.0, TxHeightAGLM: 30,
		StartFreqHz: 6175e6, StopFreqHz: 6200e6,
		PeakGainDB: -1, Pattern: antenna.PatternF1245,
		FeederLossDB: 2, NoiseFigureDB: 4,
	}}
	set, err := LoadFsWindow(raw, 39, 41, -106, -104, 5945e6, 7125e6, testProvider(), AnomalyPolicy{FixAnomalousEntries: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, 38.0, set.All()[0].PeakGainDB)
	assert.NotEmpty(t, set.Anomalies())
}

func TestAnomalyPolicyDisabledLeavesBadDataAndFails(t *testing.T) {
	raw := []RawFsRecord{{
		Id: 1, RadioServiceCode: "TP",
		RxLatDeg: 40.0, RxLonDeg: -105.0, RxHeightAGLM: 20,
		TxLatDeg: 40.01, TxLonDeg: -105.0, TxHeightAGLM: 30,
		StartFreqHz: 6200e6, StopFreqHz: 6175e6, // stop < start
		PeakGainDB: 38, Pattern: antenna.PatternF1245,
		FeederLossDB: 2, NoiseFigureDB: 4,
	}}
	_, err := LoadFsWindow(raw, 39, 41, -106, -104, 5945e6, 7125e6, testProvider(), AnomalyPolicy{}, nil)
	assert.Error(t, err)
}
