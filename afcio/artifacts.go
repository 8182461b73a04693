// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package afcio

import (
	"compress/gzip"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/openafc/afc-engine/incumbent"
)

// gzipCsvWriter opens path for writing and returns a csv.Writer over a
// gzip stream, plus the close function that flushes both layers in order
// (spec §6 "...csv.gz" artifacts are gzip-compressed CSV).
func gzipCsvWriter(path string) (*csv.Writer, func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	gz := gzip.NewWriter(f)
	w := csv.NewWriter(gz)
	closeAll := func() error {
		w.Flush()
		if err := w.Error(); err != nil {
			gz.Close()
			f.Close()
			return err
		}
		if err := gz.Close(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return w, closeAll, nil
}

// ExcThrRow is one row of exc_thr.csv.gz: an (FS, rlan position, channel)
// triple whose I/N crossed the visibility threshold or fell within the
// close-in distance (spec §6).
type ExcThrRow struct {
	FsId             int
	RlanPosnIdx      int
	Callsign         string
	FsRxLatDeg       float64
	FsRxLonDeg       float64
	FsRxHeightM      float64
	RlanLatDeg       float64
	RlanLonDeg       float64
	RlanHeightM      float64
	DistanceKm       float64
	RxGainDB         float64
	PathLossDB       float64
	ClutterDB        float64
	PathLossModel    string
	PathLossCDF      float64
	ClutterModel     string
	ClutterCDF       float64
	IOverNDB         float64
	FresnelIndex     float64
}

var excThrHeader = []string{
	"FS_ID", "RLAN_POSN_IDX", "CALLSIGN",
	"FS_RX_LAT", "FS_RX_LON", "FS_RX_HEIGHT_M",
	"RLAN_LAT", "RLAN_LON", "RLAN_HEIGHT_M",
	"DIST_KM", "RX_GAIN_DB", "PATH_LOSS_DB", "CLUTTER_DB",
	"PATH_LOSS_MODEL", "PATH_LOSS_CDF", "CLUTTER_MODEL", "CLUTTER_CDF",
	"I_OVER_N_DB", "FRESNEL_INDEX",
}

// WriteExcThr writes exc_thr.csv.gz with the frozen header and one row per
// ExcThrRow.
func WriteExcThr(path string, rows []ExcThrRow) error {
	w, closeAll, err := gzipCsvWriter(path)
	if err != nil {
		return err
	}
	defer closeAll()

	if err := w.Write(excThrHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.FsId), strconv.Itoa(r.RlanPosnIdx), r.Callsign,
			formatF(r.FsRxLatDeg), formatF(r.FsRxLonDeg), formatF(r.FsRxHeightM),
			formatF(r.RlanLatDeg), formatF(r.RlanLonDeg), formatF(r.RlanHeightM),
			formatF(r.DistanceKm), formatF(r.RxGainDB), formatF(r.PathLossDB), formatF(r.ClutterDB),
			r.PathLossModel, formatF(r.PathLossCDF), r.ClutterModel, formatF(r.ClutterCDF),
			formatF(r.IOverNDB), formatF(r.FresnelIndex),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return closeAll()
}

var fsAnomHeader = []string{"FS_ID", "CALLSIGN", "RX_LAT", "RX_LON", "REASON"}

// WriteFsAnom writes fs_anom.csv.gz, one row per repaired-or-dropped FS
// record (spec §6, §7 "dropped records appear in fs_anom.csv.gz with a
// reason").
func WriteFsAnom(path string, repairs []incumbent.AnomalyRepair) error {
	w, closeAll, err := gzipCsvWriter(path)
	if err != nil {
		return err
	}
	defer closeAll()

	if err := w.Write(fsAnomHeader); err != nil {
		return err
	}
	for _, r := range repairs {
		if err := w.Write([]string{strconv.Itoa(r.FsId), "", "", "", fmt.Sprintf("%s: %s", r.Field, r.Note)}); err != nil {
			return err
		}
	}
	return closeAll()
}

// WriteUserInputs writes userInputs.csv.gz, a flat key/value dump of the
// effective configuration (spec §6).
func WriteUserInputs(path string, cfg map[string]string) error {
	w, closeAll, err := gzipCsvWriter(path)
	if err != nil {
		return err
	}
	defer closeAll()

	if err := w.Write([]string{"KEY", "VALUE"}); err != nil {
		return err
	}
	for k, v := range cfg {
		if err := w.Write([]string{k, v}); err != nil {
			return err
		}
	}
	return closeAll()
}

// WriteResponseGz gzip-compresses resp as JSON and writes it to path (spec
// §6 "the JSON response is gzip-compressed before write").
func WriteResponseGz(path string, resp Response) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	enc := json.NewEncoder(gz)
	if err := enc.Encode(resp); err != nil {
		gz.Close()
		return err
	}
	return gz.Close()
}

func formatF(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
