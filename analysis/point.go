// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package analysis

import (
	"math"
	"time"

	"github.com/openafc/afc-engine/aggregate"
	"github.com/openafc/afc-engine/channelplan"
	"github.com/openafc/afc-engine/geodesy"
	"github.com/openafc/afc-engine/incumbent"
	"github.com/openafc/afc-engine/progress"
	"github.com/openafc/afc-engine/uncertainty"
)

// verticalSampleCount is the minimum number of height samples taken across
// an uncertainty region's vertical extent before picking the worst-case
// EIRP limit (spec §4.I "3-vertical-sample minimum, lower sample wins").
const verticalSampleCount = 3

// PointRequest is one "availableSpectrumInquiry"-style point request (spec
// §4.I, §6): an RLAN position with horizontal+vertical uncertainty, a
// channel plan already expanded by package channelplan, and the inquired
// frequency ranges PSD is wanted for.
type PointRequest struct {
	Region          uncertainty.Region
	TxHeightAGLM    float64
	Channels        []channelplan.Channel
	FrequencyRanges []aggregate.FrequencyRange
}

// Point evaluates a PointRequest against fs and ras, returning the
// channel plan with every channel's EirpLimitDBm and Color set, black and
// RAS-blacklisted channels omitted from the returned slice (spec §4.I "the
// response omits channels driven to black"), and the PSD tiling for every
// requested frequency range.
func (k *Kernel) Point(req PointRequest, fs *incumbent.Set, ras *incumbent.RasSet, tr *progress.Tracker) (*aggregate.Result, error) {
	k.TxHeightAGLM = req.TxHeightAGLM

	center := req.Region.Center()
	maxDistM := req.Region.MaxDist() + k.Cfg.MaxLinkDistanceKm*1000.0

	intersectingRas := ras.Intersecting(center, req.Region.MaxDist(), req.TxHeightAGLM)

	out := make([]channelplan.Channel, 0, len(req.Channels))
	for _, ch := range req.Channels {
		if tr != nil && tr.Cancelled() {
			return nil, nil
		}

		limit := k.Cfg.MaxEirpDBm
		forced := rasBlacklistsChannel(intersectingRas, ch)
		var iterErr error

		if !forced {
			maxFreqHz := ch.StopFreqMHz * 1e6
			fs.IterateIntersecting(center, maxDistM, maxFreqHz, func(r *incumbent.FsReceiver) bool {
				fsLL := geodesy.LatLon{LatDeg: r.RxLatDeg, LonDeg: r.RxLonDeg}
				_, contains := req.Region.ClosestPoint(fsLL)
				if contains {
					forced = true
					return false
				}

				fsLimit, err := k.worstCaseEirp(req.Region, ch, r)
				if err != nil {
					iterErr = err
					return false
				}
				if fsLimit < limit {
					limit = fsLimit
				}
				return true
			})
			if iterErr != nil {
				return nil, iterErr
			}
		}

		if forced {
			ch.EirpLimitDBm = math.Inf(-1)
		} else {
			ch.EirpLimitDBm = limit
		}
		ch.Color = aggregate.Classify(ch.EirpLimitDBm, k.Cfg.MinEirpDBm, k.Cfg.MaxEirpDBm, forced)

		if tr != nil {
			tr.Increment()
		}

		if ch.Color == channelplan.ColorBlack {
			continue
		}
		out = append(out, ch)
	}

	return aggregate.NewResult(out, req.FrequencyRanges, nil, time.Now()), nil
}

// rasBlacklistsChannel reports whether any spatially-intersecting RAS
// region's protected band overlaps ch (spec §3: a RAS only blacklists the
// channels that fall in its own frequency range).
func rasBlacklistsChannel(regions []*incumbent.RasRegion, ch channelplan.Channel) bool {
	chStartHz := ch.StartFreqMHz * 1e6
	chStopHz := ch.StopFreqMHz * 1e6
	for _, r := range regions {
		if chStartHz < r.StopFreqHz && chStopHz > r.StartFreqHz {
			return true
		}
	}
	return false
}

// worstCaseEirp evaluates fs across verticalSampleCount heights spanning the
// region's vertical uncertainty about its center height, returning the
// lowest (most restrictive) of the resulting EIRP limits (spec §4.I
// "lower-sample-wins"). A single evaluation error is fatal to the whole
// request (spec §4.I) and is propagated rather than skipped.
func (k *Kernel) worstCaseEirp(region uncertainty.Region, ch channelplan.Channel, fs *incumbent.FsReceiver) (float64, error) {
	center := region.Center()
	heightUnc := region.HeightUncertainty()
	closest, _ := region.ClosestPoint(geodesy.LatLon{LatDeg: fs.RxLatDeg, LonDeg: fs.RxLonDeg})

	worst := math.Inf(1)
	for i := 0; i < verticalSampleCount; i++ {
		frac := -1.0 + 2.0*float64(i)/float64(verticalSampleCount-1)
		txLL := closest
		txLL.HeightM = center.HeightM + frac*heightUnc

		eirp, applicable, err := k.evaluate(txLL, ch, fs)
		if err != nil {
			return 0, err
		}
		if !applicable {
			continue
		}
		if eirp < worst {
			worst = eirp
		}
	}
	return worst, nil
}
