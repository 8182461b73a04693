// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package afcio

import (
	"github.com/openafc/afc-engine/afcerr"
	"github.com/openafc/afc-engine/geodesy"
	"github.com/openafc/afc-engine/uncertainty"
)

// ToRegion converts the request's location object into the uncertainty
// region the analysis package operates on (spec §6 "one of ellipse,
// linearPolygon, radialPolygon"). HeightM/VerticalUncertaintyM apply
// uniformly; the horizontal shape is whichever variant is populated.
func (l *Location) ToRegion() (uncertainty.Region, error) {
	switch {
	case l.Ellipse != nil:
		e := l.Ellipse
		return &uncertainty.Ellipse{
			CenterPoint:    geodesy.LatLon{LatDeg: e.Center.Latitude, LonDeg: e.Center.Longitude, HeightM: l.HeightM},
			SemiMajorM:     e.MajorAxisM,
			SemiMinorM:     e.MinorAxisM,
			OrientationDeg: e.OrientationDeg,
			HeightUncM:     l.VerticalUncertaintyM,
		}, nil

	case l.LinearPolygon != nil:
		verts := make([]geodesy.LatLon, len(l.LinearPolygon.OuterBoundary))
		for i, v := range l.LinearPolygon.OuterBoundary {
			verts[i] = geodesy.LatLon{LatDeg: v.Latitude, LonDeg: v.Longitude}
		}
		return uncertainty.NewLinearPolygon(verts, l.HeightM, l.VerticalUncertaintyM), nil

	case l.RadialPolygon != nil:
		rp := l.RadialPolygon
		spokes := make([]uncertainty.RadialSpoke, len(rp.OuterBoundary))
		for i, v := range rp.OuterBoundary {
			spokes[i] = uncertainty.RadialSpoke{AngleDeg: v.AngleDeg, LengthM: v.LengthM}
		}
		center := geodesy.LatLon{LatDeg: rp.Center.Latitude, LonDeg: rp.Center.Longitude, HeightM: l.HeightM}
		return uncertainty.NewRadialPolygon(center, spokes, l.VerticalUncertaintyM), nil

	default:
		return nil, afcerr.New(afcerr.InvalidRequest, "location must set exactly one of ellipse, linearPolygon, radialPolygon")
	}
}
