// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package afcio

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/openafc/afc-engine/afcerr"
	"github.com/openafc/afc-engine/antenna"
	"github.com/openafc/afc-engine/geodesy"
	"github.com/openafc/afc-engine/incumbent"
)

// ulsPatternKind maps the pattern column of the ULS extract ("F.1336",
// "omni"/"O", "tabulated"/"T"; anything else is F.1245) to the antenna
// package's builtin patterns (spec §1 identifies ULS/RAS
// database parsing as out of scope for the incumbent package itself; this
// is the thin CSV reader that feeds incumbent.LoadFsWindow).
func ulsPatternKind(s string) antenna.PatternKind {
	switch s {
	case "F.1336":
		return antenna.PatternF1336Omni
	case "omni", "O":
		return antenna.PatternOmni
	case "tabulated", "T":
		return antenna.PatternTabulated
	default:
		return antenna.PatternF1245
	}
}

// ulsFieldIndex names the column order of the engine's ULS CSV extract:
// id,callsign,radioServiceCode,rxLon,rxLat,rxHeightAGL,txLon,txLat,
// txHeightAGL,startFreqHz,stopFreqHz,peakGainDB,pattern,feederLossDB,
// noiseFigureDB.
const ulsFieldCount = 15

// LoadUlsDatabase reads the engine's ULS CSV extract at path into raw FS
// records for incumbent.LoadFsWindow. The ULS database itself (spec §6
// "ulsDatabase") is an external dataset; this parses the flattened extract
// the engine expects on disk, not the FCC's native ULS format.
func LoadUlsDatabase(path string) ([]incumbent.RawFsRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, afcerr.Wrap(afcerr.DataError, err, "opening uls database")
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var out []incumbent.RawFsRecord
	lineNo := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, afcerr.Wrap(afcerr.DataError, err, "reading uls database")
		}
		lineNo++
		if lineNo == 1 && len(rec) > 0 && rec[0] == "id" {
			continue // header row
		}
		if len(rec) < ulsFieldCount {
			return nil, afcerr.New(afcerr.DataError, "uls database line %d: expected %d fields, got %d", lineNo, ulsFieldCount, len(rec))
		}

		id, _ := strconv.Atoi(rec[0])
		out = append(out, incumbent.RawFsRecord{
			Id:               id,
			Callsign:         rec[1],
			RadioServiceCode: rec[2],
			RxLonDeg:         mustFloat(rec[3]),
			RxLatDeg:         mustFloat(rec[4]),
			RxHeightAGLM:     mustFloat(rec[5]),
			TxLonDeg:         mustFloat(rec[6]),
			TxLatDeg:         mustFloat(rec[7]),
			TxHeightAGLM:     mustFloat(rec[8]),
			StartFreqHz:      mustFloat(rec[9]),
			StopFreqHz:       mustFloat(rec[10]),
			PeakGainDB:       mustFloat(rec[11]),
			Pattern:          ulsPatternKind(rec[12]),
			FeederLossDB:     mustFloat(rec[13]),
			NoiseFigureDB:    mustFloat(rec[14]),
		})
	}
	return out, nil
}

func mustFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

// rasKindFromString maps the RAS database's kind column to incumbent.RasKind.
func rasKindFromString(s string) incumbent.RasKind {
	switch s {
	case "fixedRadiusCircle":
		return incumbent.RasFixedRadiusCircle
	case "horizonDistanceCircle":
		return incumbent.RasHorizonDistanceCircle
	default:
		return incumbent.RasRectangleSet
	}
}

// LoadRasDatabase reads the engine's RAS CSV extract at path (spec §6
// "rasDatabase"): one row per region, rectangle-set boxes packed into
// paired lon/lat columns since a region can carry up to two boxes.
//
// Columns: name,kind,minLon1,maxLon1,minLat1,maxLat1,minLon2,maxLon2,
// minLat2,maxLat2,centerLon,centerLat,radiusM,rasHeightM,startFreqHz,stopFreqHz
func LoadRasDatabase(path string) ([]*incumbent.RasRegion, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, afcerr.Wrap(afcerr.DataError, err, "opening ras database")
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var out []*incumbent.RasRegion
	lineNo := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, afcerr.Wrap(afcerr.DataError, err, "reading ras database")
		}
		lineNo++
		if lineNo == 1 && len(rec) > 0 && rec[0] == "name" {
			continue
		}
		if len(rec) < 16 {
			return nil, afcerr.New(afcerr.DataError, "ras database line %d: expected 16 fields, got %d", lineNo, len(rec))
		}

		region := &incumbent.RasRegion{
			Name:        rec[0],
			Kind:        rasKindFromString(rec[1]),
			CenterPoint: geodesy.LatLon{LatDeg: mustFloat(rec[11]), LonDeg: mustFloat(rec[10])},
			RadiusM:     mustFloat(rec[12]),
			RasHeightM:  mustFloat(rec[13]),
			StartFreqHz: mustFloat(rec[14]),
			StopFreqHz:  mustFloat(rec[15]),
		}
		if region.Kind == incumbent.RasRectangleSet {
			region.Boxes = append(region.Boxes, incumbent.RasBox{
				MinLonDeg: mustFloat(rec[2]), MaxLonDeg: mustFloat(rec[3]),
				MinLatDeg: mustFloat(rec[4]), MaxLatDeg: mustFloat(rec[5]),
			})
			if rec[6] != "" {
				region.Boxes = append(region.Boxes, incumbent.RasBox{
					MinLonDeg: mustFloat(rec[6]), MaxLonDeg: mustFloat(rec[7]),
					MinLatDeg: mustFloat(rec[8]), MaxLatDeg: mustFloat(rec[9]),
				})
			}
		}
		out = append(out, region)
	}
	return out, nil
}
