// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

// Package aggregate implements the result aggregator (spec component J):
// per-channel color classification, per-frequency-range PSD tiling with
// adjacent-segment merging, status-message accumulation, and the
// 24-hour response expiration timestamp.
package aggregate

import (
	"math"
	"sort"
	"time"

	"github.com/openafc/afc-engine/channelplan"
)

// expirationWindow is the response validity window (spec §4.J).
const expirationWindow = 24 * time.Hour

// Classify assigns a channel's availability color from its current EIRP
// limit (spec §4.I step 3): green if limit >= maxEirp, yellow if in
// [minEirp, maxEirp), red if < minEirp, black if forced is set (a RAS
// intersection or uncertainty-region containment drove it to -inf).
func Classify(limitDBm, minEirpDBm, maxEirpDBm float64, forced bool) channelplan.Color {
	if forced || math.IsInf(limitDBm, -1) {
		return channelplan.ColorBlack
	}
	switch {
	case limitDBm >= maxEirpDBm:
		return channelplan.ColorGreen
	case limitDBm >= minEirpDBm:
		return channelplan.ColorYellow
	default:
		return channelplan.ColorRed
	}
}

// FrequencyRange is one of the request's inquiredFrequencyRange entries
// (spec §6), in MHz.
type FrequencyRange struct {
	LowMHz, HighMHz float64
}

// PsdSegment is one contiguous slice of a frequency range sharing a single
// PSD value, after adjacent-equal-segment merging (spec §4.J).
type PsdSegment struct {
	LowMHz, HighMHz  float64
	PsdDBmPerMHz float64
}

// PSD tiles fr into the unique-overlap segments implied by channels
// (spec §4.I step 4): within each segment, PSD = min over covering
// inquired-frequency channels of channel.EirpLimitDBm -
// 10*log10(bandwidthMHz); adjacent segments with equal PSD are merged.
func PSD(fr FrequencyRange, channels []channelplan.Channel) []PsdSegment {
	var boundaries []float64
	boundaries = append(boundaries, fr.LowMHz, fr.HighMHz)
	for _, ch := range channels {
		if ch.Provenance != channelplan.ProvenanceInquiredFrequency {
			continue
		}
		lo := math.Max(ch.StartFreqMHz, fr.LowMHz)
		hi := math.Min(ch.StopFreqMHz, fr.HighMHz)
		if hi > lo {
			boundaries = append(boundaries, lo, hi)
		}
	}
	sort.Float64s(boundaries)
	boundaries = dedupeSorted(boundaries)

	var raw []PsdSegment
	for i := 0; i+1 < len(boundaries); i++ {
		lo, hi := boundaries[i], boundaries[i+1]
		if hi <= lo {
			continue
		}
		mid := (lo + hi) / 2
		psd := math.Inf(1)
		covered := false
		for _, ch := range channels {
			if ch.Provenance != channelplan.ProvenanceInquiredFrequency {
				continue
			}
			if mid < ch.StartFreqMHz || mid >= ch.StopFreqMHz {
				continue
			}
			bw := ch.BandwidthMHz()
			if bw <= 0 {
				continue
			}
			v := ch.EirpLimitDBm - 10*math.Log10(bw)
			if v < psd {
				psd = v
			}
			covered = true
		}
		if !covered {
			continue
		}
		raw = append(raw, PsdSegment{LowMHz: lo, HighMHz: hi, PsdDBmPerMHz: psd})
	}

	return mergeAdjacentEqual(raw)
}

func dedupeSorted(xs []float64) []float64 {
	if len(xs) == 0 {
		return xs
	}
	out := xs[:1]
	for _, x := range xs[1:] {
		if x > out[len(out)-1]+1e-9 {
			out = append(out, x)
		}
	}
	return out
}

func mergeAdjacentEqual(segs []PsdSegment) []PsdSegment {
	if len(segs) == 0 {
		return nil
	}
	out := []PsdSegment{segs[0]}
	for _, s := range segs[1:] {
		last := &out[len(out)-1]
		if math.Abs(s.PsdDBmPerMHz-last.PsdDBmPerMHz) < 1e-9 && math.Abs(s.LowMHz-last.HighMHz) < 1e-9 {
			last.HighMHz = s.HighMHz
			continue
		}
		out = append(out, s)
	}
	return out
}

// Result is the fully aggregated analysis output (spec §4.J).
type Result struct {
	Channels       []channelplan.Channel
	Psd            map[FrequencyRange][]PsdSegment
	StatusMessages []string
	ExpiresAt      time.Time
}

// NewResult builds a Result, setting ExpiresAt to now+24h (spec §4.J "now +
// 24h, ISO-8601 UTC"); now is passed explicitly so callers control the
// response's effective time.
func NewResult(channels []channelplan.Channel, ranges []FrequencyRange, statusMessages []string, now time.Time) *Result {
	psd := make(map[FrequencyRange][]PsdSegment, len(ranges))
	for _, fr := range ranges {
		psd[fr] = PSD(fr, channels)
	}
	return &Result{
		Channels:       channels,
		Psd:            psd,
		StatusMessages: statusMessages,
		ExpiresAt:      now.UTC().Add(expirationWindow),
	}
}

// ExpiresAtISO8601 formats ExpiresAt per spec §6 ("availabilityExpireTime:
// ISO8601 UTC").
func (r *Result) ExpiresAtISO8601() string {
	return r.ExpiresAt.Format(time.RFC3339)
}
