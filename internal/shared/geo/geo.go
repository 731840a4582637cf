package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"backend-stravamap/internal/strava"
)

// LineString converts a latlng stream into a GeoJSON LineString feature.
// Strava streams carry [lat, lng] pairs; GeoJSON wants [lng, lat]. The input
// is copied, never mutated. A nil stream or one with fewer than the two
// positions a LineString requires yields a nil feature.
func LineString(stream *strava.LatLngStream) *geojson.Feature {
	if stream == nil || len(stream.Data) < 2 {
		return nil
	}

	line := make(orb.LineString, 0, len(stream.Data))
	for _, pair := range stream.Data {
		line = append(line, orb.Point{pair[1], pair[0]})
	}
	return geojson.NewFeature(line)
}

// Collection assembles the non-nil features in encounter order.
func Collection(features []*geojson.Feature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range features {
		if f != nil {
			fc.Append(f)
		}
	}
	return fc
}

// Bounds is the [minLng, minLat, maxLng, maxLat] box around every feature in
// the collection. ok is false for an empty collection.
func Bounds(fc *geojson.FeatureCollection) (box [4]float64, ok bool) {
	if fc == nil || len(fc.Features) == 0 {
		return box, false
	}

	b := fc.Features[0].Geometry.Bound()
	for _, f := range fc.Features[1:] {
		b = b.Union(f.Geometry.Bound())
	}
	return [4]float64{b.Min[0], b.Min[1], b.Max[0], b.Max[1]}, true
}
