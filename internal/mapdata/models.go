package mapdata

import "github.com/paulmach/orb/geojson"

// Statistics are the field-wise sums over every cached activity.
type Statistics struct {
	Duration float64 `json:"duration"`
	Distance float64 `json:"distance"`
}

// Response is the payload the map client renders: the traces as a
// FeatureCollection, the box enclosing them (null when there are no traces)
// and the summed statistics.
type Response struct {
	GeoJSON    *geojson.FeatureCollection `json:"geojson"`
	Bounds     []float64                  `json:"bounds"`
	Statistics Statistics                 `json:"statistics"`
}
