// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package analysis

import (
	"math"

	"github.com/openafc/afc-engine/channelplan"
	"github.com/openafc/afc-engine/geodesy"
	"github.com/openafc/afc-engine/incumbent"
	"github.com/openafc/afc-engine/progress"
)

// HeatmapRequest rasterizes a single fixed channel's worst-case I/N
// over a lon/lat grid (spec §4.I heatmap mode).
type HeatmapRequest struct {
	MinLatDeg, MaxLatDeg float64
	MinLonDeg, MaxLonDeg float64
	SpacingM             float64
	Channel              channelplan.Channel
	TxHeightAGLM         float64
	Indoor               bool
}

// HeatmapCell is one rasterized grid point.
type HeatmapCell struct {
	LatDeg, LonDeg float64
	MaxIOverNDB    float64
	Indoor         bool
}

// Heatmap rasterizes req.MinLatDeg..MaxLatDeg x req.MinLonDeg..MaxLonDeg at
// req.SpacingM ground spacing (mean-latitude approximation for the
// longitude step), recording at each cell the maximum I/N over every
// fs within range on the requested channel (spec §4.I "per-cell max-I/N
// over all FS in range on a single fixed channel").
func (k *Kernel) Heatmap(req HeatmapRequest, fs *incumbent.Set, tr *progress.Tracker) ([]HeatmapCell, error) {
	k.IndoorDeployment = req.Indoor
	k.TxHeightAGLM = req.TxHeightAGLM

	meanLatRad := (req.MinLatDeg + req.MaxLatDeg) / 2 * math.Pi / 180
	latStepDeg := req.SpacingM / geodesy.EarthRadiusMeters * 180 / math.Pi
	lonStepDeg := req.SpacingM / (geodesy.EarthRadiusMeters * math.Cos(meanLatRad)) * 180 / math.Pi
	if latStepDeg <= 0 || lonStepDeg <= 0 {
		return nil, nil
	}

	nLat := int(math.Ceil((req.MaxLatDeg-req.MinLatDeg)/latStepDeg)) + 1
	nLon := int(math.Ceil((req.MaxLonDeg-req.MinLonDeg)/lonStepDeg)) + 1

	cells := make([]HeatmapCell, 0, nLat*nLon)
	maxFreqHz := req.Channel.StopFreqMHz * 1e6

	for i := 0; i < nLat; i++ {
		lat := req.MinLatDeg + float64(i)*latStepDeg
		if lat > req.MaxLatDeg {
			lat = req.MaxLatDeg
		}
		for j := 0; j < nLon; j++ {
			if tr != nil && tr.Cancelled() {
				return nil, nil
			}
			lon := req.MinLonDeg + float64(j)*lonStepDeg
			if lon > req.MaxLonDeg {
				lon = req.MaxLonDeg
			}

			txLL := geodesy.LatLon{LatDeg: lat, LonDeg: lon, HeightM: req.TxHeightAGLM}
			maxIOverN := math.Inf(-1)
			var cellErr error

			fs.IterateIntersecting(txLL, k.Cfg.MaxLinkDistanceKm*1000.0, maxFreqHz, func(r *incumbent.FsReceiver) bool {
				eirp, applicable, err := k.evaluate(txLL, req.Channel, r)
				if err != nil {
					cellErr = err
					return false
				}
				if !applicable {
					return true
				}
				iOverN := k.Cfg.ThresholdDB - (eirp - k.Cfg.MaxEirpDBm)
				if iOverN > maxIOverN {
					maxIOverN = iOverN
				}
				return true
			})
			if cellErr != nil {
				return nil, cellErr
			}

			cells = append(cells, HeatmapCell{LatDeg: lat, LonDeg: lon, MaxIOverNDB: maxIOverN, Indoor: req.Indoor})
			if tr != nil {
				tr.Increment()
			}
		}
	}
	return cells, nil
}
