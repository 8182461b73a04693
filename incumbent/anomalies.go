// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package incumbent

import "math"

// anomalousDefault holds the service-code-keyed fallback values the repair
// table substitutes for missing or out-of-range fields (spec §9 Open
// Question: "fix anomalous entries" is unclear whether production enables
// it; exposed as AnomalyPolicy.FixAnomalousEntries, default disabled -- see
// DESIGN.md).
type anomalousDefault struct {
	peakGainDB    float64
	feederLossDB  float64
	noiseFigureDB float64
}

// defaultsByServiceCode holds conservative per-service-code fallbacks used
// only when FixAnomalousEntries is true and the corresponding field is
// missing or non-physical.
var defaultsByServiceCode = map[string]anomalousDefault{
	"TP": {peakGainDB: 38.0, feederLossDB: 2.0, noiseFigureDB: 4.0}, // common-carrier point-to-point
	"TI": {peakGainDB: 34.0, feederLossDB: 3.0, noiseFigureDB: 5.0}, // industrial/business
	"TG": {peakGainDB: 36.0, feederLossDB: 2.5, noiseFigureDB: 4.5}, // government
}

var fallbackDefault = anomalousDefault{peakGainDB: 35.0, feederLossDB: 2.5, noiseFigureDB: 5.0}

// repairAnomalies returns a copy of r with non-physical fields defaulted
// from the service-code repair table, plus a diagnostic per field touched.
func repairAnomalies(r RawFsRecord) (RawFsRecord, []AnomalyRepair) {
	def, ok := defaultsByServiceCode[r.RadioServiceCode]
	if !ok {
		def = fallbackDefault
	}
	var repairs []AnomalyRepair

	if r.PeakGainDB <= 0 || math.IsNaN(r.PeakGainDB) || r.PeakGainDB > 60 {
		repairs = append(repairs, AnomalyRepair{FsId: r.Id, Field: "peakGainDB", Note: "defaulted from repair table"})
		r.PeakGainDB = def.peakGainDB
	}
	if r.FeederLossDB < 0 || math.IsNaN(r.FeederLossDB) || r.FeederLossDB > 20 {
		repairs = append(repairs, AnomalyRepair{FsId: r.Id, Field: "feederLossDB", Note: "defaulted from repair table"})
		r.FeederLossDB = def.feederLossDB
	}
	if r.NoiseFigureDB <= 0 || math.IsNaN(r.NoiseFigureDB) || r.NoiseFigureDB > 20 {
		repairs = append(repairs, AnomalyRepair{FsId: r.Id, Field: "noiseFigureDB", Note: "defaulted from repair table"})
		r.NoiseFigureDB = def.noiseFigureDB
	}
	if r.StopFreqHz <= r.StartFreqHz {
		repairs = append(repairs, AnomalyRepair{FsId: r.Id, Field: "stopFreqHz", Note: "zero/negative bandwidth, assumed 30 MHz"})
		r.StopFreqHz = r.StartFreqHz + 30e6
	}

	return r, repairs
}
