package activity

import "backend-stravamap/internal/strava"

// Record is the minimal projection kept in the cache. Full upstream payloads
// are discarded so memory stays bounded as history accumulates.
type Record struct {
	ID         int64   `json:"id"`
	Distance   float64 `json:"distance"`
	MovingTime float64 `json:"moving_time"`
}

func FromStrava(a strava.Activity) Record {
	return Record{ID: a.ID, Distance: a.Distance, MovingTime: a.MovingTime}
}

// Project reduces a fetched list to cacheable records, preserving order.
func Project(list []strava.Activity) []Record {
	records := make([]Record, 0, len(list))
	for _, a := range list {
		records = append(records, FromStrava(a))
	}
	return records
}
