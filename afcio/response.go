// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package afcio

import (
	"github.com/openafc/afc-engine/aggregate"
	"github.com/openafc/afc-engine/channelplan"
)

// responseVersion is the fixed `version` field of every response (spec §6).
const responseVersion = "1.1"

// ChannelInfo is one `availableChannelInfo` entry: every CFI sharing an
// operating class, grouped together with their per-CFI EIRP limits.
type ChannelInfo struct {
	GlobalOperatingClass int       `json:"globalOperatingClass"`
	ChannelCfi           []int     `json:"channelCfi"`
	MaxEirpDBm           []float64 `json:"maxEirp"`
}

// SpectrumInfo is one `availableSpectrumInfo` entry.
type SpectrumInfo struct {
	FrequencyRange InquiredFrequencyRange `json:"frequencyRange"`
	MaxPsdDBmPerMHz float64               `json:"maxPSD"`
}

// ResponseStatus is the `response` object's fixed shape.
type ResponseStatus struct {
	ResponseCode     int    `json:"responseCode"`
	ShortDescription string `json:"shortDescription"`
}

// InquiryResponse is one `availableSpectrumInquiryResponses` entry.
type InquiryResponse struct {
	RequestId              string         `json:"requestId"`
	AvailableChannelInfo    []ChannelInfo  `json:"availableChannelInfo,omitempty"`
	AvailableSpectrumInfo   []SpectrumInfo `json:"availableSpectrumInfo,omitempty"`
	AvailabilityExpireTime  string         `json:"availabilityExpireTime"`
	Response                ResponseStatus `json:"response"`
}

// Response is the top-level response envelope (spec §6).
type Response struct {
	Version                            string            `json:"version"`
	AvailableSpectrumInquiryResponses []InquiryResponse `json:"availableSpectrumInquiryResponses"`
}

// SuccessStatus is the fixed "everything went fine" response status.
func SuccessStatus() ResponseStatus {
	return ResponseStatus{ResponseCode: 0, ShortDescription: "success"}
}

// ErrorStatus builds a response status from an engine error category (spec
// §7); code is the category's numeric response code and desc is a short
// human-readable description.
func ErrorStatus(code int, desc string) ResponseStatus {
	return ResponseStatus{ResponseCode: code, ShortDescription: desc}
}

// groupByOperatingClass buckets channelplan.Channel records sharing an
// operating class into one ChannelInfo entry each, preserving Channels'
// incoming order within a class (spec §6 "availableChannelInfo").
func groupByOperatingClass(channels []channelplan.Channel) []ChannelInfo {
	order := make([]int, 0)
	byClass := make(map[int]*ChannelInfo)
	for _, ch := range channels {
		if ch.Provenance != channelplan.ProvenanceInquiredChannel {
			continue
		}
		info, ok := byClass[ch.OperatingClass]
		if !ok {
			info = &ChannelInfo{GlobalOperatingClass: ch.OperatingClass}
			byClass[ch.OperatingClass] = info
			order = append(order, ch.OperatingClass)
		}
		info.ChannelCfi = append(info.ChannelCfi, ch.ChannelCfi)
		info.MaxEirpDBm = append(info.MaxEirpDBm, ch.EirpLimitDBm)
	}

	out := make([]ChannelInfo, 0, len(order))
	for _, class := range order {
		out = append(out, *byClass[class])
	}
	return out
}

// spectrumInfoFrom flattens an aggregate.Result's PSD tiling into
// `availableSpectrumInfo` entries: one per merged PSD segment, each
// reporting its own segment bounds as frequencyRange (spec §4.J "PSD
// vector ... with adjacent equal-PSD segments merged").
func spectrumInfoFrom(res *aggregate.Result) []SpectrumInfo {
	var out []SpectrumInfo
	for _, segs := range res.Psd {
		for _, seg := range segs {
			out = append(out, SpectrumInfo{
				FrequencyRange: InquiredFrequencyRange{
					LowFrequencyMHz:  seg.LowMHz,
					HighFrequencyMHz: seg.HighMHz,
				},
				MaxPsdDBmPerMHz: seg.PsdDBmPerMHz,
			})
		}
	}
	return out
}

// BuildInquiryResponse assembles one InquiryResponse from an aggregated
// analysis Result (spec §4.J -> §6 shape translation).
func BuildInquiryResponse(requestId string, res *aggregate.Result, status ResponseStatus) InquiryResponse {
	return InquiryResponse{
		RequestId:             requestId,
		AvailableChannelInfo:  groupByOperatingClass(res.Channels),
		AvailableSpectrumInfo: spectrumInfoFrom(res),
		AvailabilityExpireTime: res.ExpiresAtISO8601(),
		Response:              status,
	}
}

// NewResponse wraps one or more InquiryResponse entries in the top-level
// envelope.
func NewResponse(responses []InquiryResponse) Response {
	return Response{Version: responseVersion, AvailableSpectrumInquiryResponses: responses}
}
