// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openafc/afc-engine/antenna"
	"github.com/openafc/afc-engine/channelplan"
	"github.com/openafc/afc-engine/config"
	"github.com/openafc/afc-engine/geodesy"
	"github.com/openafc/afc-engine/incumbent"
	"github.com/openafc/afc-engine/propagation"
)

func testKernel() *Kernel {
	return &Kernel{
		Cfg: &config.Config{
			MinEirpDBm:  10,
			MaxEirpDBm:  30,
			ThresholdDB: 6,
		},
		PropCtx: &propagation.Context{
			Model:     propagation.FSPL,
			FixedProb: true,
		},
		Env:          propagation.Rural,
		TxHeightAGLM: 5,
	}
}

func nearbyFs(id int, startFreqMHz, stopFreqMHz float64) *incumbent.FsReceiver {
	rxLL := geodesy.LatLon{LatDeg: 40.01, LonDeg: -105.0, HeightM: 1655}
	return &incumbent.FsReceiver{
		Id:            id,
		RxLatDeg:      rxLL.LatDeg,
		RxLonDeg:      rxLL.LonDeg,
		RxHeightAGLM:  20,
		RxPosECEF:     rxLL.ToECEF(),
		BoresightUnit: geodesy.Vec3{X: 0, Y: -1, Z: 0},
		StartFreqHz:   startFreqMHz * 1e6,
		StopFreqHz:    stopFreqMHz * 1e6,
		PeakGainDB:    30,
		Pattern:       antenna.PatternOmni,
		FeederLossDB:  2,
		NoiseFloorDBW: -130,
	}
}

func testChannel(startMHz, stopMHz float64) channelplan.Channel {
	return channelplan.Channel{StartFreqMHz: startMHz, StopFreqMHz: stopMHz, Provenance: channelplan.ProvenanceInquiredChannel}
}

func TestEvaluateSkipsNonOverlappingChannel(t *testing.T) {
	k := testKernel()
	fs := nearbyFs(1, 5945, 5965)
	ch := testChannel(6100, 6120)

	_, applicable, err := k.evaluate(geodesy.LatLon{LatDeg: 40.0, LonDeg: -105.0, HeightM: 1650}, ch, fs)
	require.NoError(t, err)
	assert.False(t, applicable)
}

func TestEvaluateProducesFiniteLimitForOverlappingChannel(t *testing.T) {
	k := testKernel()
	fs := nearbyFs(1, 5945, 5965)
	ch := testChannel(5945, 5965)

	limit, applicable, err := k.evaluate(geodesy.LatLon{LatDeg: 40.0, LonDeg: -105.0, HeightM: 1650}, ch, fs)
	require.NoError(t, err)
	require.True(t, applicable)
	assert.False(t, limit != limit) // not NaN
}

func TestEvaluateLimitIncreasesWithDistance(t *testing.T) {
	k := testKernel()
	fs := nearbyFs(1, 5945, 5965)
	ch := testChannel(5945, 5965)

	near := geodesy.LatLon{LatDeg: 40.005, LonDeg: -105.0, HeightM: 1650}
	far := geodesy.LatLon{LatDeg: 39.9, LonDeg: -105.0, HeightM: 1650}

	nearLimit, applicable, err := k.evaluate(near, ch, fs)
	require.NoError(t, err)
	require.True(t, applicable)

	farLimit, applicable, err := k.evaluate(far, ch, fs)
	require.NoError(t, err)
	require.True(t, applicable)

	assert.Greater(t, farLimit, nearLimit)
}

func TestElevationAngleDegDirectlyAboveIsNinety(t *testing.T) {
	tx := geodesy.LatLon{LatDeg: 40, LonDeg: -105, HeightM: 0}.ToECEF()
	rx := geodesy.LatLon{LatDeg: 40, LonDeg: -105, HeightM: 1000}.ToECEF()
	assert.InDelta(t, 90.0, elevationAngleDeg(tx, rx), 0.5)
}

func TestElevationAngleDegOnHorizonIsNearZero(t *testing.T) {
	tx := geodesy.LatLon{LatDeg: 40, LonDeg: -105, HeightM: 10}.ToECEF()
	rx := geodesy.LatLon{LatDeg: 40.05, LonDeg: -105, HeightM: 10}.ToECEF()
	assert.InDelta(t, 0.0, elevationAngleDeg(tx, rx), 5.0)
}
