package strava

import "time"

// Activity is the summary payload returned by the activity listing. Only the
// fields the service looks at are decoded; the cache keeps an even smaller
// projection of this.
type Activity struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	Distance           float64   `json:"distance"`
	MovingTime         float64   `json:"moving_time"`
	ElapsedTime        float64   `json:"elapsed_time"`
	TotalElevationGain float64   `json:"total_elevation_gain"`
	StartDate          time.Time `json:"start_date"`
}

// LatLngStream is the GPS trace of one activity, ordered [lat, lng] pairs as
// delivered by the streams endpoint. Traces are historical and never change.
type LatLngStream struct {
	Type string       `json:"type"`
	Data [][2]float64 `json:"data"`
}
