// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package aggregate

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openafc/afc-engine/channelplan"
)

func TestClassifyGreenYellowRedBlack(t *testing.T) {
	assert.Equal(t, channelplan.ColorGreen, Classify(30, 10, 30, false))
	assert.Equal(t, channelplan.ColorYellow, Classify(15, 10, 30, false))
	assert.Equal(t, channelplan.ColorRed, Classify(5, 10, 30, false))
	assert.Equal(t, channelplan.ColorBlack, Classify(30, 10, 30, true))
	assert.Equal(t, channelplan.ColorBlack, Classify(math.Inf(-1), 10, 30, false))
}

func freqChannel(startMHz, stopMHz, eirp float64) channelplan.Channel {
	return channelplan.Channel{
		StartFreqMHz: startMHz,
		StopFreqMHz:  stopMHz,
		Provenance:   channelplan.ProvenanceInquiredFrequency,
		EirpLimitDBm: eirp,
	}
}

func TestPSDSingleChannelCoversWholeRange(t *testing.T) {
	fr := FrequencyRange{LowMHz: 5945, HighMHz: 5965}
	channels := []channelplan.Channel{freqChannel(5945, 5965, 23)}
	segs := PSD(fr, channels)
	if assert.Len(t, segs, 1) {
		assert.InDelta(t, 5945, segs[0].LowMHz, 1e-6)
		assert.InDelta(t, 5965, segs[0].HighMHz, 1e-6)
		assert.InDelta(t, 23-10*math.Log10(20), segs[0].PsdDBmPerMHz, 1e-6)
	}
}

func TestPSDTakesMinAcrossOverlappingChannelsAndMergesEqualSegments(t *testing.T) {
	fr := FrequencyRange{LowMHz: 5945, HighMHz: 6025}
	channels := []channelplan.Channel{
		freqChannel(5945, 5985, 23), // 40 MHz
		freqChannel(5945, 5965, 20), // 20 MHz, tighter in first half
		freqChannel(5985, 6025, 23), // 40 MHz
	}
	segs := PSD(fr, channels)
	assert.NotEmpty(t, segs)
	for i := 1; i < len(segs); i++ {
		assert.Greater(t, segs[i].LowMHz, segs[i-1].LowMHz-1e-6)
		if math.Abs(segs[i].PsdDBmPerMHz-segs[i-1].PsdDBmPerMHz) < 1e-9 {
			t.Fatalf("adjacent equal segments should have merged: %+v %+v", segs[i-1], segs[i])
		}
	}
}

func TestPSDEmptyWhenNoCoveringChannels(t *testing.T) {
	fr := FrequencyRange{LowMHz: 6500, HighMHz: 6600}
	channels := []channelplan.Channel{freqChannel(5945, 5965, 23)}
	assert.Empty(t, PSD(fr, channels))
}

func TestNewResultSetsExpirationTo24hLater(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	res := NewResult(nil, nil, nil, now)
	assert.Equal(t, now.Add(24*time.Hour), res.ExpiresAt)
	assert.Contains(t, res.ExpiresAtISO8601(), "2026-01-02")
}
