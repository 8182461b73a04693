// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package uncertainty

import (
	"math"

	"github.com/openafc/afc-engine/geodesy"
)

// Ellipse is the ellipse uncertainty-region variant (spec §3): a center,
// semi-major/semi-minor axes in meters, and an orientation measured
// clockwise from true north.
type Ellipse struct {
	CenterPoint      geodesy.LatLon
	SemiMajorM       float64
	SemiMinorM       float64
	OrientationDeg   float64 // clockwise from north
	HeightUncM       float64
}

var _ Region = (*Ellipse)(nil)

func (e *Ellipse) Center() geodesy.LatLon { return e.CenterPoint }

func (e *Ellipse) MaxDist() float64 {
	return math.Max(e.SemiMajorM, e.SemiMinorM)
}

func (e *Ellipse) HeightUncertainty() float64 { return e.HeightUncM }

// Boundary samples n points evenly in parametric angle around the ellipse.
func (e *Ellipse) Boundary() []geodesy.LatLon {
	const n = 72
	out := make([]geodesy.LatLon, n)
	for i := 0; i < n; i++ {
		t := 2 * math.Pi * float64(i) / float64(n)
		out[i] = e.pointAt(t)
	}
	return out
}

// pointAt returns the boundary point at parametric angle t (radians), via
// the rotated-ellipse parametric form projected back to geodetic coordinates.
func (e *Ellipse) pointAt(t float64) geodesy.LatLon {
	x := e.SemiMajorM * math.Cos(t)
	y := e.SemiMinorM * math.Sin(t)
	orientRad := e.OrientationDeg * math.Pi / 180
	// rotate (x "along semi-major", y "along semi-minor") into (east, north),
	// with the semi-major axis pointed along `OrientationDeg` from north.
	east := x*math.Sin(orientRad) + y*math.Cos(orientRad)
	north := x*math.Cos(orientRad) - y*math.Sin(orientRad)
	o := newENUOrigin(e.CenterPoint)
	return o.fromENU(east, north, e.CenterPoint.HeightM)
}

// ClosestPoint projects p onto the ellipse boundary in the local tangent
// plane, using Newton iteration on the parametric angle to minimize the
// squared distance to the target point -- the standard closest-point-on-
// ellipse algorithm. If p falls inside the ellipse, contains=true and the
// returned point is p itself unchanged (spec: "contains=true when inside (no
// shrink)").
func (e *Ellipse) ClosestPoint(p geodesy.LatLon) (geodesy.LatLon, bool) {
	o := newENUOrigin(e.CenterPoint)
	east, north := o.toENU(p)

	orientRad := e.OrientationDeg * math.Pi / 180
	// rotate (east, north) into the ellipse's own (x along semi-major, y
	// along semi-minor) frame, inverse of the rotation in pointAt.
	x := east*math.Sin(orientRad) + north*math.Cos(orientRad)
	y := east*math.Cos(orientRad) - north*math.Sin(orientRad)

	a, b := e.SemiMajorM, e.SemiMinorM
	if a <= 0 || b <= 0 {
		return p, false
	}
	if (x*x)/(a*a)+(y*y)/(b*b) <= 1.0 {
		return p, true
	}

	theta := math.Atan2(a*y, b*x)
	for i := 0; i < 50; i++ {
		cx, cy := a*math.Cos(theta), b*math.Sin(theta)
		ex, ey := (a*a-b*b)*math.Pow(math.Cos(theta), 3)/a, (b*b-a*a)*math.Pow(math.Sin(theta), 3)/b
		rx, ry := cx-ex, cy-ey
		qx, qy := x-ex, y-ey
		r := math.Hypot(rx, ry)
		q := math.Hypot(qx, qy)
		if r == 0 || q == 0 {
			break
		}
		deltaC := r * math.Asin((rx*qy-ry*qx)/(r*q))
		deltaT := deltaC / math.Hypot(a*math.Sin(theta), b*math.Cos(theta))
		theta += deltaT
		if math.Abs(deltaT) < 1e-12 {
			break
		}
	}
	cx, cy := a*math.Cos(theta), b*math.Sin(theta)
	closestEast := cx*math.Sin(orientRad) + cy*math.Cos(orientRad)
	closestNorth := cx*math.Cos(orientRad) - cy*math.Sin(orientRad)
	return o.fromENU(closestEast, closestNorth, e.CenterPoint.HeightM), false
}
