// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package uncertainty

import (
	"math"

	"github.com/openafc/afc-engine/geodesy"
)

// polygon is the shared geometry engine for the linear-polygon and
// radial-polygon variants: both reduce to a closed list of (east, north)
// vertices in a tangent-plane projection, over which centroid, boundary,
// closest-point and containment are all defined identically.
type polygon struct {
	origin   enuOrigin
	vertices [][2]float64 // (east, north) meters
	heightM  float64
	heightUncM float64
}

// shoelaceCentroid computes the polygon centroid via the signed-area
// (shoelace) formula, per spec §4.F.
func (p *polygon) shoelaceCentroid() (cx, cy float64) {
	n := len(p.vertices)
	if n == 0 {
		return 0, 0
	}
	if n < 3 {
		return p.vertices[0][0], p.vertices[0][1]
	}
	var area, cxAcc, cyAcc float64
	for i := 0; i < n; i++ {
		x0, y0 := p.vertices[i][0], p.vertices[i][1]
		x1, y1 := p.vertices[(i+1)%n][0], p.vertices[(i+1)%n][1]
		cross := x0*y1 - x1*y0
		area += cross
		cxAcc += (x0 + x1) * cross
		cyAcc += (y0 + y1) * cross
	}
	area *= 0.5
	if area == 0 {
		// degenerate (collinear) polygon: fall back to the vertex average.
		for _, v := range p.vertices {
			cx += v[0]
			cy += v[1]
		}
		return cx / float64(n), cy / float64(n)
	}
	cx = cxAcc / (6 * area)
	cy = cyAcc / (6 * area)
	return cx, cy
}

func (p *polygon) center() geodesy.LatLon {
	cx, cy := p.shoelaceCentroid()
	return p.origin.fromENU(cx, cy, p.heightM)
}

func (p *polygon) maxDist() float64 {
	cx, cy := p.shoelaceCentroid()
	maxD := 0.0
	for _, v := range p.vertices {
		d := math.Hypot(v[0]-cx, v[1]-cy)
		if d > maxD {
			maxD = d
		}
	}
	return maxD
}

func (p *polygon) boundary() []geodesy.LatLon {
	out := make([]geodesy.LatLon, len(p.vertices))
	for i, v := range p.vertices {
		out[i] = p.origin.fromENU(v[0], v[1], p.heightM)
	}
	return out
}

// contains reports whether (x,y) lies inside the polygon, via the standard
// ray-casting (even-odd) point-in-polygon test.
func (p *polygon) contains(x, y float64) bool {
	n := len(p.vertices)
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := p.vertices[i][0], p.vertices[i][1]
		xj, yj := p.vertices[j][0], p.vertices[j][1]
		if ((yi > y) != (yj > y)) &&
			(x < (xj-xi)*(y-yi)/(yj-yi)+xi) {
			inside = !inside
		}
	}
	return inside
}

// closestPointOnBoundary returns the closest point on the polygon boundary
// to (x,y), by projecting onto every edge segment and keeping the nearest.
func (p *polygon) closestPointOnBoundary(x, y float64) (cx, cy float64) {
	n := len(p.vertices)
	best := math.Inf(1)
	for i := 0; i < n; i++ {
		a := p.vertices[i]
		b := p.vertices[(i+1)%n]
		px, py := closestPointOnSegment(a[0], a[1], b[0], b[1], x, y)
		d := math.Hypot(px-x, py-y)
		if d < best {
			best = d
			cx, cy = px, py
		}
	}
	return cx, cy
}

func closestPointOnSegment(ax, ay, bx, by, px, py float64) (float64, float64) {
	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return ax, ay
	}
	t := ((px-ax)*dx + (py-ay)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return ax + t*dx, ay + t*dy
}

func (p *polygon) closestPoint(ext geodesy.LatLon) (geodesy.LatLon, bool) {
	x, y := p.origin.toENU(ext)
	if p.contains(x, y) {
		return ext, true
	}
	cx, cy := p.closestPointOnBoundary(x, y)
	return p.origin.fromENU(cx, cy, p.heightM), false
}

// LinearPolygon is the linear-polygon uncertainty-region variant (spec §3):
// an explicit list of boundary vertices, centroid derived via shoelace.
type LinearPolygon struct {
	poly *polygon
}

var _ Region = (*LinearPolygon)(nil)

// NewLinearPolygon builds a LinearPolygon from outer-boundary vertices.
func NewLinearPolygon(vertices []geodesy.LatLon, centerHeightM, heightUncM float64) *LinearPolygon {
	if len(vertices) == 0 {
		return &LinearPolygon{poly: &polygon{heightM: centerHeightM, heightUncM: heightUncM}}
	}
	avg := averageLatLon(vertices)
	origin := newENUOrigin(avg)
	verts := make([][2]float64, len(vertices))
	for i, v := range vertices {
		e, n := origin.toENU(v)
		verts[i] = [2]float64{e, n}
	}
	return &LinearPolygon{poly: &polygon{origin: origin, vertices: verts, heightM: centerHeightM, heightUncM: heightUncM}}
}

func (l *LinearPolygon) Center() geodesy.LatLon            { return l.poly.center() }
func (l *LinearPolygon) MaxDist() float64                  { return l.poly.maxDist() }
func (l *LinearPolygon) HeightUncertainty() float64        { return l.poly.heightUncM }
func (l *LinearPolygon) Boundary() []geodesy.LatLon         { return l.poly.boundary() }
func (l *LinearPolygon) ClosestPoint(p geodesy.LatLon) (geodesy.LatLon, bool) {
	return l.poly.closestPoint(p)
}

// RadialSpoke is one (angle, length) pair of a radial polygon.
type RadialSpoke struct {
	AngleDeg  float64 // clockwise from north
	LengthM   float64
}

// RadialPolygon is the radial-polygon uncertainty-region variant (spec §3):
// a center plus a list of (angle, length) spokes defining the boundary.
type RadialPolygon struct {
	poly *polygon
}

var _ Region = (*RadialPolygon)(nil)

// NewRadialPolygon builds a RadialPolygon from a center and spokes.
func NewRadialPolygon(center geodesy.LatLon, spokes []RadialSpoke, heightUncM float64) *RadialPolygon {
	origin := newENUOrigin(center)
	verts := make([][2]float64, len(spokes))
	for i, s := range spokes {
		rad := s.AngleDeg * math.Pi / 180
		verts[i] = [2]float64{s.LengthM * math.Sin(rad), s.LengthM * math.Cos(rad)}
	}
	return &RadialPolygon{poly: &polygon{origin: origin, vertices: verts, heightM: center.HeightM, heightUncM: heightUncM}}
}

func (r *RadialPolygon) Center() geodesy.LatLon            { return r.poly.center() }
func (r *RadialPolygon) MaxDist() float64                  { return r.poly.maxDist() }
func (r *RadialPolygon) HeightUncertainty() float64        { return r.poly.heightUncM }
func (r *RadialPolygon) Boundary() []geodesy.LatLon         { return r.poly.boundary() }
func (r *RadialPolygon) ClosestPoint(p geodesy.LatLon) (geodesy.LatLon, bool) {
	return r.poly.closestPoint(p)
}

func averageLatLon(pts []geodesy.LatLon) geodesy.LatLon {
	var lat, lon float64
	for _, p := range pts {
		lat += p.LatDeg
		lon += p.LonDeg
	}
	n := float64(len(pts))
	return geodesy.LatLon{LatDeg: lat / n, LonDeg: lon / n}
}
