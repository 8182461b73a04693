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

// Package geodesy implements WGS-84 geodetic/ECEF conversion, vector algebra
// and great-circle sampling (spec component A), on top of golang/geo's
// spherical primitives and gonum's r3 vector type.
package geodesy

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/tzneal/coordconv"
	"gonum.org/v1/gonum/spatial/r3"
)

// EarthRadiusMeters is the WGS-84 mean radius used throughout the engine
// (spec §4.A): 6378.137 km.
const EarthRadiusMeters = 6378137.0

// Vec3 is a 3-D Cartesian vector, re-exported from gonum's r3 package so
// every caller in this module shares one vector type.
type Vec3 = r3.Vec

// Add, Sub, Scale, Dot, Cross, Length and Normalize are thin re-exports of
// gonum/spatial/r3's free functions, named to match the operations spec.md
// §4.A enumerates.
func Add(a, b Vec3) Vec3   { return r3.Add(a, b) }
func Sub(a, b Vec3) Vec3   { return r3.Sub(a, b) }
func Scale(s float64, v Vec3) Vec3 { return r3.Scale(s, v) }
func Dot(a, b Vec3) float64 { return r3.Dot(a, b) }
func Cross(a, b Vec3) Vec3 { return r3.Cross(a, b) }
func Length(v Vec3) float64 { return r3.Norm(v) }

// Normalize returns v scaled to unit length. The zero vector normalizes to
// itself rather than producing NaN, since a degenerate boresight (receiver
// and transmitter positions coincide) should fail loudly upstream instead of
// silently propagating a NaN vector.
func Normalize(v Vec3) Vec3 {
	l := Length(v)
	if l == 0 {
		return v
	}
	return r3.Unit(v)
}

// LatLon is a geodetic position: latitude/longitude in degrees, height in
// meters above the WGS-84 mean sphere.
type LatLon struct {
	LatDeg, LonDeg float64
	HeightM        float64
}

// ToECEF converts a geodetic position to Earth-Centered-Earth-Fixed
// coordinates on the mean WGS-84 sphere (spec §4.A uses the mean radius, not
// the full oblate-ellipsoid model).
func (p LatLon) ToECEF() Vec3 {
	ll := s2.LatLngFromDegrees(p.LatDeg, p.LonDeg)
	pt := s2.PointFromLatLng(ll)
	r := EarthRadiusMeters + p.HeightM
	return Vec3{X: pt.X * r, Y: pt.Y * r, Z: pt.Z * r}
}

// ECEFToLatLon converts back from ECEF to geodetic, inverse of ToECEF.
func ECEFToLatLon(v Vec3) LatLon {
	r := Length(v)
	if r == 0 {
		return LatLon{}
	}
	pt := s2.Point{Vector: r3.Unit(v)}
	ll := s2.LatLngFromPoint(pt)
	return LatLon{
		LatDeg:  ll.Lat.Degrees(),
		LonDeg:  ll.Lng.Degrees(),
		HeightM: r - EarthRadiusMeters,
	}
}

// Hemisphere classifies a latitude, in the vocabulary coordconv uses for its
// own hemisphere-aware formatting (N/S). This is a thin convenience for
// rendering positions in a human-readable form.
func Hemisphere(latDeg float64) coordconv.Hemisphere {
	if latDeg < 0 {
		return coordconv.HemisphereSouth
	}
	return coordconv.HemisphereNorth
}

// HaversineMeters returns the great-circle distance between two geodetic
// points on the mean sphere, ignoring height.
func HaversineMeters(a, b LatLon) float64 {
	aLL := s2.LatLngFromDegrees(a.LatDeg, a.LonDeg)
	bLL := s2.LatLngFromDegrees(b.LatDeg, b.LonDeg)
	return aLL.Distance(bLL).Radians() * EarthRadiusMeters
}

// InitialBearingDeg returns the initial great-circle bearing (degrees from
// true north, clockwise) from a to b.
func InitialBearingDeg(a, b LatLon) float64 {
	lat1 := a.LatDeg * math.Pi / 180
	lat2 := b.LatDeg * math.Pi / 180
	dLon := (b.LonDeg - a.LonDeg) * math.Pi / 180
	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	brg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(brg+360, 360)
}

// Destination returns the geodetic point reached from start by travelling
// distMeters along the great circle at bearing bearingDeg (degrees from true
// north), holding height fixed.
func Destination(start LatLon, bearingDeg, distMeters float64) LatLon {
	angDist := s1.Angle(distMeters / EarthRadiusMeters)
	lat1 := start.LatDeg * math.Pi / 180
	lon1 := start.LonDeg * math.Pi / 180
	brg := bearingDeg * math.Pi / 180

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(float64(angDist)) +
		math.Cos(lat1)*math.Sin(float64(angDist))*math.Cos(brg))
	lon2 := lon1 + math.Atan2(
		math.Sin(brg)*math.Sin(float64(angDist))*math.Cos(lat1),
		math.Cos(float64(angDist))-math.Sin(lat1)*math.Sin(lat2))

	return LatLon{
		LatDeg:  lat2 * 180 / math.Pi,
		LonDeg:  lon2 * 180 / math.Pi,
		HeightM: start.HeightM,
	}
}

// GreatCircleSample returns n equally-spaced (in central angle) geodetic
// points along the great-circle path from a to b, with the first and last
// samples exactly equal to a and b (spec §4.A contract). Height is linearly
// interpolated between the two endpoints' heights. n must be >= 2.
func GreatCircleSample(a, b LatLon, n int) []LatLon {
	if n < 2 {
		n = 2
	}
	aPt := s2.PointFromLatLng(s2.LatLngFromDegrees(a.LatDeg, a.LonDeg))
	bPt := s2.PointFromLatLng(s2.LatLngFromDegrees(b.LatDeg, b.LonDeg))

	out := make([]LatLon, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		var ll s2.LatLng
		if i == 0 {
			ll = s2.LatLngFromPoint(aPt)
		} else if i == n-1 {
			ll = s2.LatLngFromPoint(bPt)
		} else {
			pt := s2.Interpolate(t, aPt, bPt)
			ll = s2.LatLngFromPoint(pt)
		}
		out[i] = LatLon{
			LatDeg:  ll.Lat.Degrees(),
			LonDeg:  ll.Lng.Degrees(),
			HeightM: a.HeightM + t*(b.HeightM-a.HeightM),
		}
	}
	return out
}
