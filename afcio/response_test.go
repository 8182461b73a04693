// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package afcio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openafc/afc-engine/aggregate"
	"github.com/openafc/afc-engine/channelplan"
)

func TestBuildInquiryResponseGroupsChannelsByOperatingClass(t *testing.T) {
	channels := []channelplan.Channel{
		{OperatingClass: 133, ChannelCfi: 1, EirpLimitDBm: 30, Provenance: channelplan.ProvenanceInquiredChannel},
		{OperatingClass: 133, ChannelCfi: 5, EirpLimitDBm: 23, Provenance: channelplan.ProvenanceInquiredChannel},
		{OperatingClass: 134, ChannelCfi: 1, EirpLimitDBm: 36, Provenance: channelplan.ProvenanceInquiredChannel},
	}
	res := aggregate.NewResult(channels, nil, nil, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	ir := BuildInquiryResponse("req-1", res, SuccessStatus())
	require.Len(t, ir.AvailableChannelInfo, 2)
	assert.Equal(t, 133, ir.AvailableChannelInfo[0].GlobalOperatingClass)
	assert.Equal(t, []int{1, 5}, ir.AvailableChannelInfo[0].ChannelCfi)
	assert.Equal(t, []float64{30, 23}, ir.AvailableChannelInfo[0].MaxEirpDBm)
	assert.Equal(t, 0, ir.Response.ResponseCode)
}

func TestBuildInquiryResponseFlattensPsdSegments(t *testing.T) {
	channels := []channelplan.Channel{
		{StartFreqMHz: 5945, StopFreqMHz: 5965, EirpLimitDBm: 23, Provenance: channelplan.ProvenanceInquiredFrequency},
	}
	res := aggregate.NewResult(channels, []aggregate.FrequencyRange{{LowMHz: 5945, HighMHz: 5965}}, nil, time.Now())

	ir := BuildInquiryResponse("req-2", res, SuccessStatus())
	require.Len(t, ir.AvailableSpectrumInfo, 1)
	assert.InDelta(t, 5945, ir.AvailableSpectrumInfo[0].FrequencyRange.LowFrequencyMHz, 1e-6)
}

func TestNewResponseSetsVersion(t *testing.T) {
	resp := NewResponse(nil)
	assert.Equal(t, responseVersion, resp.Version)
}
