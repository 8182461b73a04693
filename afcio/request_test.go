// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package afcio

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestRoundTripsEllipseLocation(t *testing.T) {
	req := Request{
		RequestId: "req-1",
		Location: Location{
			Ellipse: &EllipseLocation{
				Center:     LatLonPoint{Latitude: 40, Longitude: -105},
				MajorAxisM: 30, MinorAxisM: 20,
			},
			HeightM:    1650,
			HeightType: "AMSL",
		},
		InquiredFrequencyRange: []InquiredFrequencyRange{{LowFrequencyMHz: 5945, HighFrequencyMHz: 6425}},
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var decoded Request
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, req.RequestId, decoded.RequestId)
	require.NotNil(t, decoded.Location.Ellipse)
	assert.Equal(t, 40.0, decoded.Location.Ellipse.Center.Latitude)
	assert.Nil(t, decoded.Location.LinearPolygon)
}

func TestHasInquiryRequiresAtLeastOneForm(t *testing.T) {
	assert.False(t, (&Request{}).HasInquiry())
	assert.True(t, (&Request{InquiredChannels: []InquiredChannels{{GlobalOperatingClass: 133}}}).HasInquiry())
	assert.True(t, (&Request{InquiredFrequencyRange: []InquiredFrequencyRange{{LowFrequencyMHz: 5945, HighFrequencyMHz: 5965}}}).HasInquiry())
}
