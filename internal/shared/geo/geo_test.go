package geo

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"backend-stravamap/internal/strava"
)

func TestLineStringSwapsCoordinateOrder(t *testing.T) {
	stream := &strava.LatLngStream{
		Type: "latlng",
		Data: [][2]float64{{52.1, 4.9}, {52.2, 5.0}},
	}

	f := LineString(stream)
	if f == nil {
		t.Fatalf("expected feature")
	}
	line, ok := f.Geometry.(orb.LineString)
	if !ok {
		t.Fatalf("expected LineString geometry, got %T", f.Geometry)
	}
	if len(line) != 2 || line[0] != (orb.Point{4.9, 52.1}) || line[1] != (orb.Point{5.0, 52.2}) {
		t.Fatalf("unexpected coordinates: %+v", line)
	}
	// conversion must not touch the source stream
	if stream.Data[0] != [2]float64{52.1, 4.9} {
		t.Fatalf("input stream was mutated: %+v", stream.Data)
	}
}

func TestLineStringMarshalsWithEmptyProperties(t *testing.T) {
	f := LineString(&strava.LatLngStream{Data: [][2]float64{{52.1, 4.9}, {52.2, 5.0}}})
	raw, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded struct {
		Type     string `json:"type"`
		Geometry struct {
			Type        string      `json:"type"`
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties map[string]any `json:"properties"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Type != "Feature" || decoded.Geometry.Type != "LineString" {
		t.Fatalf("unexpected feature shape: %s", raw)
	}
	if len(decoded.Properties) != 0 {
		t.Fatalf("expected empty properties: %s", raw)
	}
}

func TestLineStringNilStream(t *testing.T) {
	if f := LineString(nil); f != nil {
		t.Fatalf("nil stream must yield nil feature")
	}
}

func TestLineStringTooShortStream(t *testing.T) {
	if f := LineString(&strava.LatLngStream{Type: "latlng"}); f != nil {
		t.Fatalf("empty stream must yield nil feature")
	}
	one := &strava.LatLngStream{Type: "latlng", Data: [][2]float64{{52.1, 4.9}}}
	if f := LineString(one); f != nil {
		t.Fatalf("single-point stream must yield nil feature, got %+v", f)
	}
}

func TestCollectionSkipsNilAndKeepsOrder(t *testing.T) {
	a := LineString(&strava.LatLngStream{Data: [][2]float64{{1, 2}, {3, 4}}})
	b := LineString(&strava.LatLngStream{Data: [][2]float64{{5, 6}, {7, 8}}})

	fc := Collection([]*geojson.Feature{a, nil, b})
	if len(fc.Features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(fc.Features))
	}
	if fc.Features[0] != a || fc.Features[1] != b {
		t.Fatalf("encounter order not preserved")
	}
}

func TestBounds(t *testing.T) {
	fc := Collection([]*geojson.Feature{
		LineString(&strava.LatLngStream{Data: [][2]float64{{52.1, 4.9}, {52.2, 5.0}}}),
		LineString(&strava.LatLngStream{Data: [][2]float64{{51.9, 4.5}, {52.0, 4.6}}}),
	})

	box, ok := Bounds(fc)
	if !ok {
		t.Fatalf("expected bounds")
	}
	want := [4]float64{4.5, 51.9, 5.0, 52.2}
	if box != want {
		t.Fatalf("unexpected bounds: got %v want %v", box, want)
	}
}

func TestBoundsEmptyCollection(t *testing.T) {
	if _, ok := Bounds(Collection(nil)); ok {
		t.Fatalf("empty collection must have no bounds")
	}
	if _, ok := Bounds(nil); ok {
		t.Fatalf("nil collection must have no bounds")
	}
}
