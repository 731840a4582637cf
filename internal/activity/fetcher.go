package activity

import (
	"context"

	"backend-stravamap/internal/strava"
)

// ListPageFunc returns one page of activities created after the given unix
// timestamp.
type ListPageFunc func(ctx context.Context, after int64, page, perPage int) ([]strava.Activity, error)

// FetchAll walks the paged listing from page 1 until a short page, preserving
// upstream order. Pages are requested one at a time: the upstream does not
// guarantee pages requested out of order are consistent with each other. Any
// page failure aborts the whole fetch with no partial result.
func FetchAll(ctx context.Context, list ListPageFunc, after int64, perPage int) ([]strava.Activity, error) {
	if perPage <= 0 {
		perPage = 25
	}

	var all []strava.Activity
	for page := 1; ; page++ {
		batch, err := list(ctx, after, page, perPage)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < perPage {
			return all, nil
		}
	}
}
