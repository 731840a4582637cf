package mapdata

import (
	"context"
	"encoding/json"

	"backend-stravamap/internal/activity"
	"backend-stravamap/internal/cache"
	"backend-stravamap/internal/config"
	"backend-stravamap/internal/shared/geo"
	"backend-stravamap/internal/strava"

	"github.com/paulmach/orb/geojson"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

type Service struct {
	cfg   config.Config
	store cache.Store
	api   strava.API
	group singleflight.Group
}

func NewService(cfg config.Config, store cache.Store, api strava.API) *Service {
	return &Service{cfg: cfg, store: store, api: api}
}

// MapData assembles the full map payload: cached activities (fetched on a
// cold cache), their summed statistics, and one LineString feature per
// activity that has a trace. Trace resolution fans out concurrently but
// bounded, and the collection keeps the activities' encounter order.
func (s *Service) MapData(ctx context.Context) (Response, error) {
	records, err := s.activities(ctx)
	if err != nil {
		return Response{}, err
	}

	totals := activity.Sum(records, []string{"distance", "moving_time"})

	features := make([]*geojson.Feature, len(records))
	limit := s.cfg.TraceConcurrency
	if limit <= 0 {
		limit = 8
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, rec := range records {
		i, rec := i, rec
		g.Go(func() error {
			trace, err := s.trace(gctx, rec.ID)
			if err != nil {
				return err
			}
			features[i] = geo.LineString(trace)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Response{}, err
	}

	fc := geo.Collection(features)
	resp := Response{
		GeoJSON: fc,
		Statistics: Statistics{
			Duration: totals["moving_time"],
			Distance: totals["distance"],
		},
	}
	if box, ok := geo.Bounds(fc); ok {
		resp.Bounds = box[:]
	}
	return resp, nil
}

// activities reads the cached list; on a miss (cold start, or no scheduler
// configured) it runs a full paginated fetch and caches the projection with a
// TTL so the entry is lazily repopulated once it goes stale.
func (s *Service) activities(ctx context.Context) ([]activity.Record, error) {
	raw, ok, err := s.store.Get(ctx, cache.ActivitiesKey)
	if err != nil {
		return nil, err
	}
	if ok {
		var records []activity.Record
		if err := json.Unmarshal(raw, &records); err == nil {
			return records, nil
		}
		// unreadable entry: fall through and rebuild it
	}

	fetched, err := activity.FetchAll(ctx, s.api.ListActivities, s.cfg.StravaSince, s.cfg.StravaPageSize)
	if err != nil {
		return nil, err
	}
	records := activity.Project(fetched)

	payload, err := json.Marshal(records)
	if err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, cache.ActivitiesKey, payload, s.cfg.ActivitiesTTL); err != nil {
		return nil, err
	}
	return records, nil
}

// trace resolves one activity's GPS trace, fetch-and-cache on miss. Traces
// never change, so cache entries are permanent; a recorded absence (empty
// entry) is honored without asking the upstream again. Concurrent first reads
// of the same missing trace collapse into a single upstream call.
func (s *Service) trace(ctx context.Context, id int64) (*strava.LatLngStream, error) {
	key := cache.TraceKey(id)

	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if ok {
		if len(raw) == 0 {
			return nil, nil
		}
		var trace strava.LatLngStream
		if err := json.Unmarshal(raw, &trace); err != nil {
			// malformed entry renders as no trace rather than failing the map
			return nil, nil
		}
		return &trace, nil
	}

	// the flight is shared, so it runs detached from the leading caller's
	// context; a cancelled first request must not fail the waiters
	fetchCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(key, func() (any, error) {
		trace, err := s.api.ActivityLatLngStream(fetchCtx, id)
		if err != nil {
			return nil, err
		}

		payload := []byte{}
		if trace != nil {
			if payload, err = json.Marshal(trace); err != nil {
				return nil, err
			}
		}
		if err := s.store.Put(fetchCtx, key, payload, 0); err != nil {
			return nil, err
		}
		return trace, nil
	})
	if err != nil {
		return nil, err
	}
	trace, _ := v.(*strava.LatLngStream)
	return trace, nil
}
