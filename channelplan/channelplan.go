// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

// Package channelplan expands a request's inquired channels and frequency
// ranges into concrete channel rectangles (spec component H).
package channelplan

import (
	"math"
	"math/bits"

	"github.com/openafc/afc-engine/afcerr"
)

const (
	bandLowMHz  = 5945.0
	bandHighMHz = 7125.0

	// defaultOperatingClass is used when the request's inquiredChannels list
	// carries no explicit class (spec §4.H "default class 133").
	defaultOperatingClass = 133
)

// Provenance tags how a Channel entered the plan (spec §3).
type Provenance int

const (
	ProvenanceInquiredChannel Provenance = iota
	ProvenanceInquiredFrequency
)

// Color is a channel's availability classification (spec §3).
type Color int

const (
	ColorGreen Color = iota
	ColorYellow
	ColorRed
	ColorBlack
)

func (c Color) String() string {
	switch c {
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorRed:
		return "red"
	default:
		return "black"
	}
}

// Channel is a rectangular slice of spectrum under evaluation (spec §3).
type Channel struct {
	StartFreqMHz, StopFreqMHz float64
	Provenance                Provenance
	OperatingClass            int
	ChannelCfi                int
	EirpLimitDBm              float64
	Color                     Color
}

func (c *Channel) BandwidthMHz() float64 { return c.StopFreqMHz - c.StartFreqMHz }

// bitPositionOfLowestSetBit returns the 0-indexed position of v's lowest
// set bit. v must be nonzero.
func bitPositionOfLowestSetBit(v uint) int { return bits.TrailingZeros(v) }

// ExpandCfi expands a single channel-center-frequency index into its
// rectangle, per spec §4.H: p = position of lowest set bit of cfi+1;
// bandwidth = 20*2^(p-1); start = 5945 + 5*(cfi - 2^p + 1). p == 0 (cfi
// even) has no corresponding bandwidth and is an invalid bit pattern.
func ExpandCfi(cfi int) (startMHz, bandwidthMHz float64, err error) {
	if cfi < 0 {
		return 0, 0, afcerr.New(afcerr.UnsupportedSpectrum, "cfi %d is negative", cfi)
	}
	v := uint(cfi + 1)
	p := bitPositionOfLowestSetBit(v)
	if p == 0 {
		return 0, 0, afcerr.New(afcerr.UnsupportedSpectrum, "cfi %d has invalid bit pattern", cfi)
	}
	bandwidthMHz = 20.0 * math.Pow(2, float64(p-1))
	startMHz = bandLowMHz + 5.0*(float64(cfi)-math.Pow(2, float64(p))+1)
	stopMHz := startMHz + bandwidthMHz
	if stopMHz > bandHighMHz || startMHz < bandLowMHz {
		return 0, 0, afcerr.New(afcerr.UnsupportedSpectrum, "cfi %d expands outside [%v,%v] MHz", cfi, bandLowMHz, bandHighMHz)
	}
	return startMHz, bandwidthMHz, nil
}

// InquiredChannelSet is one (operatingClass, []cfi) entry of a request's
// inquiredChannels list.
type InquiredChannelSet struct {
	OperatingClass int
	ChannelCfi     []int
}

// cfiResidueForBandwidth returns the cfi mod 2^(p+1) that every valid cfi
// at this bandwidth level must match (p as in ExpandCfi: TrailingZeros(cfi+1)
// == p exactly selects this bandwidth, i.e. cfi+1 == 2^p * odd), used to
// enumerate the full default channel set for a given bandwidth.
func cfiResidueForBandwidth(bandwidthMHz float64) (residue, modulus int) {
	steps := int(math.Round(math.Log2(bandwidthMHz / 20.0)))
	p := steps + 1
	modulus = 1 << uint(p+1)
	residue = 1<<uint(p) - 1
	return residue, modulus
}

// allChannelsForBandwidth enumerates every valid cfi at the given
// bandwidth across the full band.
func allChannelsForBandwidth(bandwidthMHz float64, class int) []Channel {
	residue, modulus := cfiResidueForBandwidth(bandwidthMHz)
	var out []Channel
	for cfi := residue; ; cfi += modulus {
		start, bw, err := ExpandCfi(cfi)
		if err != nil {
			break
		}
		out = append(out, Channel{
			StartFreqMHz:   start,
			StopFreqMHz:    start + bw,
			Provenance:     ProvenanceInquiredChannel,
			OperatingClass: class,
			ChannelCfi:     cfi,
		})
	}
	return out
}

// defaultChannelSet expands every 20/40/80/160 MHz channel across the full
// band (spec §4.H: "Default class 133, empty CFI list -> expand all
// 20/40/80/160 MHz channels").
func defaultChannelSet() []Channel {
	var out []Channel
	for _, bw := range []float64{20, 40, 80, 160} {
		out = append(out, allChannelsForBandwidth(bw, defaultOperatingClass)...)
	}
	return out
}

// ExpandInquiredChannels expands a request's inquiredChannels list into
// channel rectangles, initializing EIRP limit to maxEirpDBm and color to
// green (spec §4.H).
func ExpandInquiredChannels(sets []InquiredChannelSet, maxEirpDBm float64) ([]Channel, error) {
	var out []Channel
	if len(sets) == 0 {
		out = defaultChannelSet()
	}
	for _, s := range sets {
		class := s.OperatingClass
		if class == 0 {
			class = defaultOperatingClass
		}
		if len(s.ChannelCfi) == 0 {
			out = append(out, defaultChannelSet()...)
			continue
		}
		for _, cfi := range s.ChannelCfi {
			start, bw, err := ExpandCfi(cfi)
			if err != nil {
				return nil, err
			}
			out = append(out, Channel{
				StartFreqMHz:   start,
				StopFreqMHz:    start + bw,
				Provenance:     ProvenanceInquiredChannel,
				OperatingClass: class,
				ChannelCfi:     cfi,
			})
		}
	}
	for i := range out {
		out[i].EirpLimitDBm = maxEirpDBm
		out[i].Color = ColorGreen
	}
	return out, nil
}

// ExpandFrequencyRange expands [lowMHz, highMHz) into every 20/40/80/160
// MHz channel whose rectangle lies entirely within [lowMHz, highMHz] ∩
// [5945, 7125] MHz (spec §4.H).
func ExpandFrequencyRange(lowMHz, highMHz, maxEirpDBm float64) []Channel {
	lo := math.Max(lowMHz, bandLowMHz)
	hi := math.Min(highMHz, bandHighMHz)
	if hi <= lo {
		return nil
	}
	var out []Channel
	for _, bw := range []float64{20, 40, 80, 160} {
		for _, ch := range allChannelsForBandwidth(bw, 0) {
			if ch.StartFreqMHz >= lo && ch.StopFreqMHz <= hi {
				ch.Provenance = ProvenanceInquiredFrequency
				ch.EirpLimitDBm = maxEirpDBm
				ch.Color = ColorGreen
				out = append(out, ch)
			}
		}
	}
	return out
}
