// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openafc/afc-engine/aggregate"
	"github.com/openafc/afc-engine/channelplan"
	"github.com/openafc/afc-engine/geodesy"
	"github.com/openafc/afc-engine/incumbent"
	"github.com/openafc/afc-engine/terrain"
	"github.com/openafc/afc-engine/uncertainty"
)

type flatTestTile struct{ h float64 }

func (f flatTestTile) Elevation(latDeg, lonDeg float64) (float64, bool) { return f.h, true }

func flatProvider() *terrain.Provider {
	return terrain.NewProvider(nil, 0, nil, nil, nil, flatTestTile{h: 1650})
}

func emptyFsRasSets() (*incumbent.Set, *incumbent.RasSet) {
	set, _ := incumbent.LoadFsWindow(nil, -90, 90, -180, 180, 0, 1e12, flatProvider(), incumbent.AnomalyPolicy{}, nil)
	return set, incumbent.LoadAll(nil)
}

func TestPointWithNoFsOrRasAllChannelsAtMaxEirp(t *testing.T) {
	k := testKernel()
	fsSet, rasSet := emptyFsRasSets()

	req := PointRequest{
		Region:   &uncertainty.Ellipse{CenterPoint: geodesy.LatLon{LatDeg: 40, LonDeg: -105, HeightM: 1650}, SemiMajorM: 30, SemiMinorM: 30, HeightUncM: 5},
		Channels: []channelplan.Channel{testChannel(5945, 5965)},
	}
	res, err := k.Point(req, fsSet, rasSet, nil)
	require.NoError(t, err)
	require.Len(t, res.Channels, 1)
	assert.Equal(t, channelplan.ColorGreen, res.Channels[0].Color)
	assert.Equal(t, 30.0, res.Channels[0].EirpLimitDBm)
}

func TestPointRasIntersectionBlacksOutAllChannelsAndOmitsThem(t *testing.T) {
	k := testKernel()
	fsSet, _ := emptyFsRasSets()
	ras := incumbent.LoadAll([]*incumbent.RasRegion{{
		Name:        "test-ras",
		Kind:        incumbent.RasFixedRadiusCircle,
		CenterPoint: geodesy.LatLon{LatDeg: 40, LonDeg: -105},
		RadiusM:     50000,
		StartFreqHz: 5945e6,
		StopFreqHz:  7125e6,
	}})

	req := PointRequest{
		Region:   &uncertainty.Ellipse{CenterPoint: geodesy.LatLon{LatDeg: 40, LonDeg: -105, HeightM: 1650}, SemiMajorM: 30, SemiMinorM: 30, HeightUncM: 5},
		Channels: []channelplan.Channel{testChannel(5945, 5965), testChannel(6095, 6115)},
	}
	res, err := k.Point(req, fsSet, ras, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Channels)
}

func TestPointFsWithinRegionForcesBlackAndIsOmitted(t *testing.T) {
	k := testKernel()
	rasSet := incumbent.LoadAll(nil)
	center := geodesy.LatLon{LatDeg: 40, LonDeg: -105, HeightM: 1650}

	raw := []incumbent.RawFsRecord{{
		Id: 1, RadioServiceCode: "TP",
		RxLatDeg: 40.0, RxLonDeg: -105.0, RxHeightAGLM: 20,
		TxLatDeg: 40.01, TxLonDeg: -105.0, TxHeightAGLM: 30,
		StartFreqHz: 5945e6, StopFreqHz: 5965e6,
		PeakGainDB: 30, FeederLossDB: 2, NoiseFigureDB: 5,
	}}
	fsSet, err := incumbent.LoadFsWindow(raw, -90, 90, -180, 180, 0, 1e12, flatProvider(), incumbent.AnomalyPolicy{}, nil)
	require.NoError(t, err)

	req := PointRequest{
		Region:   &uncertainty.Ellipse{CenterPoint: center, SemiMajorM: 5000, SemiMinorM: 5000, HeightUncM: 5},
		Channels: []channelplan.Channel{testChannel(5945, 5965)},
	}
	res, err := k.Point(req, fsSet, rasSet, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Channels)
}

func TestPointComputesPsdForRequestedFrequencyRanges(t *testing.T) {
	k := testKernel()
	fsSet, rasSet := emptyFsRasSets()

	req := PointRequest{
		Region: &uncertainty.Ellipse{CenterPoint: geodesy.LatLon{LatDeg: 40, LonDeg: -105, HeightM: 1650}, SemiMajorM: 30, SemiMinorM: 30, HeightUncM: 5},
		Channels: []channelplan.Channel{{
			StartFreqMHz: 5945, StopFreqMHz: 5965,
			Provenance: channelplan.ProvenanceInquiredFrequency,
		}},
		FrequencyRanges: []aggregate.FrequencyRange{{LowMHz: 5945, HighMHz: 5965}},
	}
	res, err := k.Point(req, fsSet, rasSet, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Psd)
}
