// Package ingest orchestrates listing sources into the raw store. The
// sources themselves (portal scrapers, spreadsheet importers, AI extraction)
// live outside this module; ingest only defines their contract and the
// machinery around it.
package ingest

import (
	"sync"

	"dealer-pricing/models"
	"dealer-pricing/storage"
	"dealer-pricing/utils"
)

// Source produces raw listings from one external origin. Fetch owns its own
// timeout policy; the runner only retries it.
type Source interface {
	Name() string
	Fetch() ([]*models.RawListing, error)
}

// Gate is an explicit circuit-breaker state for an unreliable source
// endpoint. It replaces hidden module-level availability flags: callers
// inject one per source, so tests can pin either state.
type Gate struct {
	mu   sync.Mutex
	down bool
}

// Allow reports whether the source should be attempted at all.
func (g *Gate) Allow() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.down
}

// MarkDown records that the source's endpoint is unreachable; subsequent
// Allow calls return false until MarkUp.
func (g *Gate) MarkDown() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.down = true
}

// MarkUp clears the breaker after a successful probe.
func (g *Gate) MarkUp() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.down = false
}

// GatedSource pairs a source with its circuit breaker.
type GatedSource struct {
	Source Source
	Gate   *Gate
}

// Runner fans registered sources out across a worker pool, retries
// transient failures, dedups by URL within the run, and appends everything
// through the raw store.
type Runner struct {
	store  storage.RawListingStore
	pool   *utils.WorkerPool
	retry  *utils.RetryConfig
	logger *utils.Logger

	mu      sync.Mutex
	sources []GatedSource
}

// NewRunner creates a Runner writing to the given raw store.
func NewRunner(store storage.RawListingStore, pool *utils.WorkerPool, retry *utils.RetryConfig, logger *utils.Logger) *Runner {
	return &Runner{store: store, pool: pool, retry: retry, logger: logger}
}

// Register adds a source. A nil gate gets a fresh, closed one.
func (r *Runner) Register(src Source, gate *Gate) {
	if gate == nil {
		gate = &Gate{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = append(r.sources, GatedSource{Source: src, Gate: gate})
}

// Run fetches every registered source and appends the results. Source
// failures are counted, never fatal: one dead portal must not starve the
// rest of the pipeline. Store failures are counted per source as well.
func (r *Runner) Run() *models.IngestStats {
	stats := &models.IngestStats{}
	var statsMu sync.Mutex
	seen := utils.NewURLSet()

	r.mu.Lock()
	sources := make([]GatedSource, len(r.sources))
	copy(sources, r.sources)
	r.mu.Unlock()

	for _, gs := range sources {
		gs := gs
		r.pool.Submit(func() {
			if !gs.Gate.Allow() {
				r.logger.Warn("[ingest] %s skipped: circuit open", gs.Source.Name())
				return
			}

			var listings []*models.RawListing
			err := r.retry.Do(gs.Source.Name(), func() error {
				var fetchErr error
				listings, fetchErr = gs.Source.Fetch()
				return fetchErr
			})
			if err != nil {
				gs.Gate.MarkDown()
				r.logger.Error("[ingest] %s failed: %v", gs.Source.Name(), err)
				statsMu.Lock()
				stats.Errors++
				statsMu.Unlock()
				return
			}
			gs.Gate.MarkUp()

			fresh := make([]*models.RawListing, 0, len(listings))
			dups := 0
			for _, l := range listings {
				if l.URL != "" && !seen.Add(l.URL) {
					dups++
					continue
				}
				fresh = append(fresh, l)
			}

			inserted, err := r.store.InsertRaw(fresh)
			if err != nil {
				r.logger.Error("[ingest] %s: store append failed: %v", gs.Source.Name(), err)
				statsMu.Lock()
				stats.Errors++
				statsMu.Unlock()
				return
			}
			// Rows the store skipped already existed from an earlier run.
			dups += len(fresh) - inserted

			r.logger.Info("[ingest] %s: %d new, %d duplicates", gs.Source.Name(), inserted, dups)
			statsMu.Lock()
			stats.New += inserted
			stats.Duplicates += dups
			statsMu.Unlock()
		})
	}

	r.pool.Wait()
	return stats
}
