// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

// Package terrain implements the terrain provider (spec component B): a
// source-tagged elevation/building-height lookup with tile precedence, and
// great-circle height-profile sampling for the propagation kernel.
//
// Tile readers themselves (LiDAR/3DEP/SRTM raster access) are out of scope
// per spec §1 ("geospatial raster/terrain-tile readers" is an external
// collaborator); this package defines the Tile interface those readers
// implement and the precedence/profile logic that is actually part of the
// interference engine's core.
package terrain

import (
	"go.uber.org/zap"

	"github.com/openafc/afc-engine/geodesy"
)

// SourceTag identifies which tile resolved a terrain sample.
type SourceTag int

const (
	SourceUnknown SourceTag = iota
	SourceLidar
	Source3DEP
	SourceSRTM
	SourceGlobal
)

func (s SourceTag) String() string {
	switch s {
	case SourceLidar:
		return "lidar"
	case Source3DEP:
		return "3DEP"
	case SourceSRTM:
		return "SRTM"
	case SourceGlobal:
		return "global"
	default:
		return "unknown"
	}
}

// Sample is a resolved terrain query result (spec §3 TerrainSample).
type Sample struct {
	TerrainAMSL    float64
	BuildingHeight float64 // valid only if HasBuilding
	HasBuilding    bool
	Source         SourceTag
}

// Tile is implemented by a single elevation data source (a LiDAR tile, a
// 3DEP/SRTM raster, or the coarse global grid). Readers of the underlying
// raster formats live outside this module; Tile is the seam they implement.
type Tile interface {
	// Elevation returns the AMSL height at (latDeg, lonDeg) and whether this
	// tile covers that point.
	Elevation(latDeg, lonDeg float64) (heightM float64, ok bool)
}

// BuildingTile is a Tile that can additionally resolve a building height
// (LiDAR-derived tiles typically can; coarse global grids typically cannot).
type BuildingTile interface {
	Tile
	BuildingHeight(latDeg, lonDeg float64) (heightM float64, ok bool)
}

type namedTile struct {
	tag  SourceTag
	tile Tile
}

// Provider resolves terrain queries against an ordered precedence chain:
// LiDAR tile -> 3DEP -> SRTM -> global coarse grid -> zero with "unknown".
type Provider struct {
	chain  []namedTile
	log    *zap.Logger
	buildingSuppressSteps int
}

// NewProvider builds a Provider over the given precedence-ordered tiles.
// Tiles must be supplied highest-precedence first (typically Lidar, 3DEP,
// SRTM, Global); buildingSuppressSteps is the number of great-circle-profile
// samples adjacent to either endpoint within which building heights are
// suppressed when that endpoint itself sits inside a building footprint
// (spec §4.B, avoids a transmitter/receiver shadowing itself with its own
// rooftop).
func NewProvider(log *zap.Logger, buildingSuppressSteps int, lidar, threeDEP, srtm, global Tile) *Provider {
	p := &Provider{log: log, buildingSuppressSteps: buildingSuppressSteps}
	add := func(tag SourceTag, t Tile) {
		if t != nil {
			p.chain = append(p.chain, namedTile{tag, t})
		}
	}
	add(SourceLidar, lidar)
	add(Source3DEP, threeDEP)
	add(SourceSRTM, srtm)
	add(SourceGlobal, global)
	return p
}

// Height resolves terrain (and, where available, building) height at a
// point, walking the precedence chain and returning the first hit. If no
// tile covers the point, returns a zero-height sample tagged "unknown"
// rather than failing: a gap in terrain coverage at the request's edges is
// common and is not itself a data error.
func (p *Provider) Height(latDeg, lonDeg float64) Sample {
	for _, nt := range p.chain {
		h, ok := nt.tile.Elevation(latDeg, lonDeg)
		if !ok {
			continue
		}
		s := Sample{TerrainAMSL: h, Source: nt.tag}
		if bt, isBt := nt.tile.(BuildingTile); isBt {
			if bh, bok := bt.BuildingHeight(latDeg, lonDeg); bok && bh > 0 {
				s.BuildingHeight = bh
				s.HasBuilding = true
			}
		}
		return s
	}
	return Sample{Source: SourceUnknown}
}

// HeightProfile returns n AMSL heights sampled along the great circle from
// `from` to `to`, with n >= 2. Building heights are added into the profile
// height except within buildingSuppressSteps samples of either endpoint when
// that endpoint itself sits inside a building footprint, per spec §4.B --
// this prevents the transmitter or receiver's own rooftop from shadowing its
// first few profile points.
func (p *Provider) HeightProfile(from, to geodesy.LatLon, n int) []float64 {
	if n < 2 {
		n = 2
	}
	pts := geodesy.GreatCircleSample(from, to, n)

	fromSample := p.Height(from.LatDeg, from.LonDeg)
	toSample := p.Height(to.LatDeg, to.LonDeg)
	suppressFromEnd := fromSample.HasBuilding
	suppressToEnd := toSample.HasBuilding

	out := make([]float64, n)
	for i, pt := range pts {
		s := p.Height(pt.LatDeg, pt.LonDeg)
		h := s.TerrainAMSL
		useBuilding := s.HasBuilding
		if useBuilding && suppressFromEnd && i < p.buildingSuppressSteps {
			useBuilding = false
		}
		if useBuilding && suppressToEnd && (n-1-i) < p.buildingSuppressSteps {
			useBuilding = false
		}
		if useBuilding {
			h += s.BuildingHeight
		}
		out[i] = h
	}
	return out
}
