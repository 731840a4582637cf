package refresh

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"backend-stravamap/internal/activity"
	"backend-stravamap/internal/cache"
	"backend-stravamap/internal/config"
	"backend-stravamap/internal/strava"
	"backend-stravamap/internal/stream"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

var nowFn = time.Now

// Refresher keeps the activity cache warm. On every cron tick it fetches the
// activities created since the last successful run and folds them into the
// cache, then opportunistically warms the per-activity trace entries.
type Refresher struct {
	cfg   config.Config
	store cache.Store
	api   strava.API
	hub   *stream.Hub
	cron  *cron.Cron

	// runMu serializes whole runs: the merge path is a read-merge-put of the
	// activities entry, so two interleaved runs could commit over each other.
	runMu sync.Mutex

	mu        sync.Mutex
	watermark int64
}

func New(cfg config.Config, store cache.Store, api strava.API, hub *stream.Hub) *Refresher {
	return &Refresher{
		cfg:   cfg,
		store: store,
		api:   api,
		hub:   hub,
		// a tick that fires while the previous run is still fetching is
		// skipped; the next one picks up from the committed watermark
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		watermark: cfg.StravaSince,
	}
}

// Start registers the recurring run. The cron expression carries the active
// window itself: the default "*/2 6-22 * * *" fires every two minutes between
// 06:00 and 22:59 local time.
func (r *Refresher) Start() error {
	if _, err := r.cron.AddFunc(r.cfg.RefreshCron, func() {
		if err := r.RunOnce(context.Background()); err != nil {
			log.Printf("scheduled refresh failed: %v", err)
		}
	}); err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

// Stop halts the schedule and waits for an in-flight run to finish.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
}

// Watermark is the lower bound the next run will fetch from.
func (r *Refresher) Watermark() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.watermark
}

// RunOnce performs one incremental refresh. Runs never overlap: concurrent
// callers queue on the run lock and see each other's committed state. The
// next watermark is captured when the run starts, not when the last page
// completes, so activities created while pages are still in flight land in
// the next delta instead of being skipped. On any failure the cache and the
// watermark are left exactly as they were; the next tick retries from the
// same watermark.
func (r *Refresher) RunOnce(ctx context.Context) error {
	r.runMu.Lock()
	defer r.runMu.Unlock()

	r.mu.Lock()
	after := r.watermark
	r.mu.Unlock()

	runStartedAt := nowFn().Unix()

	fetched, err := activity.FetchAll(ctx, r.api.ListActivities, after, r.cfg.StravaPageSize)
	if err != nil {
		return err
	}
	delta := activity.Project(fetched)

	records := delta
	if r.cfg.RefreshPolicy != config.PolicyReplace {
		prev, err := r.cachedRecords(ctx)
		if err != nil {
			return err
		}
		records = activity.Merge(prev, delta)
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return err
	}
	// scheduled writes carry no TTL; the next run replaces the entry anyway
	if err := r.store.Put(ctx, cache.ActivitiesKey, payload, 0); err != nil {
		return err
	}

	r.mu.Lock()
	if runStartedAt > r.watermark {
		r.watermark = runStartedAt
	}
	r.mu.Unlock()

	r.warmTraces(ctx, delta)

	if r.hub != nil {
		r.hub.BroadcastRefresh(stream.RefreshEvent{
			Activities:  len(records),
			RefreshedAt: runStartedAt,
		})
	}
	return nil
}

func (r *Refresher) cachedRecords(ctx context.Context) ([]activity.Record, error) {
	raw, ok, err := r.store.Get(ctx, cache.ActivitiesKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var records []activity.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		// a corrupt entry is treated as empty and rebuilt from the delta
		log.Printf("discarding unreadable activities entry: %v", err)
		return nil, nil
	}
	return records, nil
}

// warmTraces is best effort: a failed trace fetch is logged and left for the
// read path to retry, it never fails the run. Fan-out is bounded so a large
// delta cannot flood the rate-limited upstream.
func (r *Refresher) warmTraces(ctx context.Context, records []activity.Record) {
	limit := r.cfg.TraceConcurrency
	if limit <= 0 {
		limit = 8
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for _, rec := range records {
		rec := rec
		g.Go(func() error {
			key := cache.TraceKey(rec.ID)
			if _, ok, err := r.store.Get(ctx, key); err != nil || ok {
				return nil
			}

			trace, err := r.api.ActivityLatLngStream(ctx, rec.ID)
			if err != nil {
				log.Printf("trace warm-up for activity %d failed: %v", rec.ID, err)
				return nil
			}

			payload := []byte{}
			if trace != nil {
				if payload, err = json.Marshal(trace); err != nil {
					return nil
				}
			}
			if err := r.store.Put(ctx, key, payload, 0); err != nil {
				log.Printf("trace cache write for activity %d failed: %v", rec.ID, err)
			}
			return nil
		})
	}
	_ = g.Wait()
}
