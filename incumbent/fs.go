// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

// Package incumbent implements the protected-receiver catalog (spec
// component G): FS microwave links loaded into a lat/lon/frequency window,
// and RAS exclusion zones, both queryable against a candidate transmitter
// position.
package incumbent

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/openafc/afc-engine/afcerr"
	"github.com/openafc/afc-engine/antenna"
	"github.com/openafc/afc-engine/geodesy"
	"github.com/openafc/afc-engine/terrain"
)

const (
	boltzmannJPerK  = 1.380649e-23
	refTemperatureK = 290.0
)

// RawFsRecord is the shape an external incumbent-database reader produces;
// loading and parsing the ULS database is out of scope here (spec §1).
type RawFsRecord struct {
	Id               int
	Callsign         string
	RadioServiceCode string
	RxLonDeg         float64
	RxLatDeg         float64
	RxHeightAGLM     float64
	TxLonDeg         float64
	TxLatDeg         float64
	TxHeightAGLM     float64
	StartFreqHz      float64
	StopFreqHz       float64
	PeakGainDB       float64
	Pattern          antenna.PatternKind
	PatternAnglesDeg []float64
	PatternRelGainDB []float64
	FeederLossDB     float64
	NoiseFigureDB    float64
}

// FsReceiver is an incumbent Fixed Service microwave receiver (spec §3).
type FsReceiver struct {
	Id               int
	Callsign         string
	RadioServiceCode string

	RxLonDeg, RxLatDeg, RxHeightAGLM float64
	TxLonDeg, TxLatDeg, TxHeightAGLM float64

	RxPosECEF     geodesy.Vec3
	TxPosECEF     geodesy.Vec3
	BoresightUnit geodesy.Vec3
	LinkDistanceM float64

	StartFreqHz, StopFreqHz, BandwidthHz float64
	PeakGainDB                           float64
	Pattern                              antenna.PatternKind
	PatternTable                         *antenna.TabulatedPattern
	FeederLossDB                         float64
	NoiseFigureDB                        float64
	NoiseFloorDBW                        float64

	RxTerrainSource terrain.SourceTag
}

// AnomalyPolicy controls whether the repair table in anomalies.go is
// applied to records with missing or out-of-range fields (spec §9 Open
// Question, resolved in DESIGN.md: default disabled).
type AnomalyPolicy struct {
	FixAnomalousEntries bool
}

// Set is a frequency+bounding-box window of FsReceiver records, kept sorted
// by Id to support binary search (spec §3 invariant: "id strictly
// increasing in the stored list").
type Set struct {
	receivers []*FsReceiver
	anomalies []AnomalyRepair
}

// AnomalyRepair records one field defaulted by the repair table, surfaced
// to the caller as a non-fatal diagnostic (fs_anom, spec §6).
type AnomalyRepair struct {
	FsId  int
	Field string
	Note  string
}

// LoadFsWindow filters raw to the given lat/lon/frequency window, applies
// the anomaly policy, and resolves receiver terrain heights, producing a
// Set ordered by ascending Id (spec §4.G).
func LoadFsWindow(
	raw []RawFsRecord,
	minLat, maxLat, minLon, maxLon, minFreqHz, maxFreqHz float64,
	prov *terrain.Provider,
	policy AnomalyPolicy,
	log *zap.Logger,
) (*Set, error) {
	var out []*FsReceiver
	var anomalies []AnomalyRepair

	for _, r := range raw {
		if r.RxLatDeg < minLat || r.RxLatDeg > maxLat || r.RxLonDeg < minLon || r.RxLonDeg > maxLon {
			continue
		}
		if r.StopFreqHz < minFreqHz || r.StartFreqHz > maxFreqHz {
			continue
		}

		rec := r
		if policy.FixAnomalousEntries {
			fixed, repairs := repairAnomalies(rec)
			rec = fixed
			anomalies = append(anomalies, repairs...)
		}

		if rec.StopFreqHz < rec.StartFreqHz {
			return nil, afcerr.New(afcerr.DataError, "fs %d: stop freq %v < start freq %v", rec.Id, rec.StopFreqHz, rec.StartFreqHz)
		}

		rxSample := prov.Height(rec.RxLatDeg, rec.RxLonDeg)
		txSample := prov.Height(rec.TxLatDeg, rec.TxLonDeg)

		rxLL := geodesy.LatLon{LatDeg: rec.RxLatDeg, LonDeg: rec.RxLonDeg, HeightM: rxSample.TerrainAMSL + rec.RxHeightAGLM}
		txLL := geodesy.LatLon{LatDeg: rec.TxLatDeg, LonDeg: rec.TxLonDeg, HeightM: txSample.TerrainAMSL + rec.TxHeightAGLM}

		rxECEF := rxLL.ToECEF()
		txECEF := txLL.ToECEF()

		boresight := geodesy.Sub(txECEF, rxECEF)
		dist := geodesy.Length(boresight)
		if dist > 0 {
			boresight = geodesy.Scale(1.0/dist, boresight)
		}

		fr := &FsReceiver{
			Id:               rec.Id,
			Callsign:         rec.Callsign,
			RadioServiceCode: rec.RadioServiceCode,
			RxLonDeg:         rec.RxLonDeg,
			RxLatDeg:         rec.RxLatDeg,
			RxHeightAGLM:     rec.RxHeightAGLM,
			TxLonDeg:         rec.TxLonDeg,
			TxLatDeg:         rec.TxLatDeg,
			TxHeightAGLM:     rec.TxHeightAGLM,
			RxPosECEF:        rxECEF,
			TxPosECEF:        txECEF,
			BoresightUnit:    boresight,
			LinkDistanceM:    dist,
			StartFreqHz:      rec.StartFreqHz,
			StopFreqHz:       rec.StopFreqHz,
			BandwidthHz:      rec.StopFreqHz - rec.StartFreqHz,
			PeakGainDB:       rec.PeakGainDB,
			Pattern:          rec.Pattern,
			FeederLossDB:     rec.FeederLossDB,
			NoiseFigureDB:    rec.NoiseFigureDB,
			RxTerrainSource:  rxSample.Source,
		}
		if rec.Pattern == antenna.PatternTabulated && len(rec.PatternAnglesDeg) > 0 {
			fr.PatternTable = antenna.NewTabulatedPattern(rec.PatternAnglesDeg, rec.PatternRelGainDB)
		}
		fr.NoiseFloorDBW = noiseFloorDBW(fr.BandwidthHz, fr.NoiseFigureDB)

		out = append(out, fr)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	for i := 1; i < len(out); i++ {
		if out[i].Id <= out[i-1].Id {
			return nil, afcerr.New(afcerr.DataError, "fs id %d not strictly increasing after %d", out[i].Id, out[i-1].Id)
		}
	}

	if log != nil && len(anomalies) > 0 {
		log.Warn("repaired anomalous fs entries", zap.Int("count", len(anomalies)))
	}

	return &Set{receivers: out, anomalies: anomalies}, nil
}

func noiseFloorDBW(bandwidthHz, noiseFigureDB float64) float64 {
	if bandwidthHz <= 0 {
		return math.Inf(-1)
	}
	return 10*math.Log10(boltzmannJPerK*refTemperatureK*bandwidthHz) + noiseFigureDB
}

// Anomalies returns the repairs applied while loading the window, for
// surfacing as fs_anom diagnostics.
func (s *Set) Anomalies() []AnomalyRepair { return s.anomalies }

// Len returns the number of receivers in the window.
func (s *Set) Len() int { return len(s.receivers) }

// FindById binary searches the sorted receiver list for id (spec §4.G).
func (s *Set) FindById(id int) (*FsReceiver, bool) {
	i := sort.Search(len(s.receivers), func(i int) bool { return s.receivers[i].Id >= id })
	if i < len(s.receivers) && s.receivers[i].Id == id {
		return s.receivers[i], true
	}
	return nil, false
}

// All returns every receiver in the window, in Id order.
func (s *Set) All() []*FsReceiver { return s.receivers }

// IterateIntersecting calls fn for every FS receiver within radiusM of
// center whose link distance is positive and whose band starts at or below
// maxFreqHz, stopping early if fn returns false (spec §4.G).
func (s *Set) IterateIntersecting(center geodesy.LatLon, radiusM, maxFreqHz float64, fn func(*FsReceiver) bool) {
	for _, fr := range s.receivers {
		if fr.LinkDistanceM <= 0 {
			continue
		}
		if fr.StartFreqHz > maxFreqHz {
			continue
		}
		rxLL := geodesy.LatLon{LatDeg: fr.RxLatDeg, LonDeg: fr.RxLonDeg}
		if geodesy.HaversineMeters(center, rxLL) > radiusM {
			continue
		}
		if !fn(fr) {
			return
		}
	}
}
