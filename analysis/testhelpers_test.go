// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package analysis

import (
	"github.com/openafc/afc-engine/incumbent"
)

type fsFixture struct {
	id                 int
	latDeg, lonDeg     float64
	startMHz, stopMHz  float64
}

func buildFsSet(fixtures []fsFixture) (*incumbent.Set, error) {
	raw := make([]incumbent.RawFsRecord, 0, len(fixtures))
	for _, f := range fixtures {
		raw = append(raw, incumbent.RawFsRecord{
			Id:               f.id,
			RadioServiceCode: "TP",
			RxLatDeg:         f.latDeg,
			RxLonDeg:         f.lonDeg,
			RxHeightAGLM:     20,
			TxLatDeg:         f.latDeg + 0.01,
			TxLonDeg:         f.lonDeg,
			TxHeightAGLM:     30,
			StartFreqHz:      f.startMHz * 1e6,
			StopFreqHz:       f.stopMHz * 1e6,
			PeakGainDB:       30,
			FeederLossDB:     2,
			NoiseFigureDB:    5,
		})
	}
	return incumbent.LoadFsWindow(raw, -90, 90, -180, 180, 0, 1e12, flatProvider(), incumbent.AnomalyPolicy{}, nil)
}

func emptyFsSetForHeatmap() (*incumbent.Set, error) {
	return buildFsSet(nil)
}
