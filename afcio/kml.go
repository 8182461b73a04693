// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package afcio

import (
	"archive/zip"
	"encoding/xml"
	"os"

	"github.com/openafc/afc-engine/afcerr"
	"github.com/openafc/afc-engine/channelplan"
	"github.com/openafc/afc-engine/geodesy"
)

// kmlDocument is the minimal subset of the KML schema results.kmz needs:
// one Placemark per FS cone (colored by its worst channel color) and one
// for the RLAN's uncertainty footprint (spec §6 "bands of red/yellow/green
// FS cones plus RAS polygons and uncertainty footprint"). No third-party
// KML writer appears anywhere in the example pack, so this is built
// directly on encoding/xml + archive/zip (both stdlib).
type kmlDocument struct {
	XMLName xml.Name      `xml:"kml"`
	Xmlns   string        `xml:"xmlns,attr"`
	Doc     kmlFolderRoot `xml:"Document"`
}

type kmlFolderRoot struct {
	Name       string          `xml:"name"`
	Placemarks []kmlPlacemark `xml:"Placemark"`
}

type kmlPlacemark struct {
	Name      string       `xml:"name"`
	StyleURL  string       `xml:"styleUrl,omitempty"`
	Point     *kmlPoint    `xml:"Point,omitempty"`
	LineRing  *kmlPolygon  `xml:"Polygon,omitempty"`
}

type kmlPoint struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPolygon struct {
	OuterBoundaryIs kmlOuterBoundary `xml:"outerBoundaryIs"`
}

type kmlOuterBoundary struct {
	LinearRing kmlLinearRing `xml:"LinearRing"`
}

type kmlLinearRing struct {
	Coordinates string `xml:"coordinates"`
}

func colorStyleID(c channelplan.Color) string {
	switch c {
	case channelplan.ColorGreen:
		return "green"
	case channelplan.ColorYellow:
		return "yellow"
	case channelplan.ColorRed:
		return "red"
	default:
		return "black"
	}
}

// FsConeMarker is one FS worth plotting: its receiver position and the
// worst (most restrictive) color any evaluated channel produced for it.
type FsConeMarker struct {
	Name  string
	Point geodesy.LatLon
	Color channelplan.Color
}

// BuildResultsKml assembles the KML document for a point-analysis result:
// the RLAN uncertainty boundary plus one marker per FS.
func BuildResultsKml(boundary []geodesy.LatLon, fsMarkers []FsConeMarker) []byte {
	doc := kmlDocument{
		Xmlns: "http://www.opengis.net/kml/2.2",
		Doc:   kmlFolderRoot{Name: "AFC Results"},
	}

	if len(boundary) > 0 {
		doc.Doc.Placemarks = append(doc.Doc.Placemarks, kmlPlacemark{
			Name:     "uncertainty",
			StyleURL: "#boundary",
			LineRing: &kmlPolygon{OuterBoundaryIs: kmlOuterBoundary{LinearRing: kmlLinearRing{Coordinates: coordRing(boundary)}}},
		})
	}
	for _, m := range fsMarkers {
		doc.Doc.Placemarks = append(doc.Doc.Placemarks, kmlPlacemark{
			Name:     m.Name,
			StyleURL: "#" + colorStyleID(m.Color),
			Point:    &kmlPoint{Coordinates: coordTuple(m.Point)},
		})
	}

	out, _ := xml.MarshalIndent(doc, "", "  ")
	return append([]byte(xml.Header), out...)
}

func coordTuple(p geodesy.LatLon) string {
	return formatF(p.LonDeg) + "," + formatF(p.LatDeg) + "," + formatF(p.HeightM)
}

func coordRing(pts []geodesy.LatLon) string {
	s := ""
	for i, p := range pts {
		if i > 0 {
			s += " "
		}
		s += coordTuple(p)
	}
	if len(pts) > 0 {
		s += " " + coordTuple(pts[0]) // KML linear rings must close
	}
	return s
}

// WriteResultsKmz zips doc.kml (the bytes from BuildResultsKml) into a
// KMZ archive at path (spec §6 "results.kmz").
func WriteResultsKmz(path string, kmlBytes []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return afcerr.Wrap(afcerr.DataError, err, "creating results.kmz")
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("doc.kml")
	if err != nil {
		zw.Close()
		return afcerr.Wrap(afcerr.DataError, err, "writing doc.kml entry")
	}
	if _, err := w.Write(kmlBytes); err != nil {
		zw.Close()
		return afcerr.Wrap(afcerr.DataError, err, "writing doc.kml content")
	}
	return zw.Close()
}
