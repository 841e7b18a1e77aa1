package services

import (
	"fmt"
	"time"

	"dealer-pricing/metrics"
	"dealer-pricing/models"
	"dealer-pricing/storage"
	"dealer-pricing/utils"
)

// Normalizer turns unprocessed raw listings into taxonomy-linked market
// listings: resolve brand/model, drop statistical outliers, dedup by URL.
// It is a batch job: every read happens once up front, and the decided
// snapshot is committed in a single transaction.
type Normalizer struct {
	raw      storage.RawListingStore
	market   storage.MarketListingStore
	taxonomy storage.TaxonomyReader
	logger   *utils.Logger
}

// NewNormalizer wires a Normalizer to its stores.
func NewNormalizer(raw storage.RawListingStore, market storage.MarketListingStore, taxonomy storage.TaxonomyReader, logger *utils.Logger) *Normalizer {
	return &Normalizer{raw: raw, market: market, taxonomy: taxonomy, logger: logger}
}

// Run normalizes every raw listing that was unprocessed when the run
// started. Records ingested mid-run are left for the next run. Returns the
// run's counters; store failures abort the run.
func (n *Normalizer) Run() (*models.NormalizeStats, error) {
	start := time.Now()
	stats := &models.NormalizeStats{}

	raws, err := n.raw.FetchUnprocessed()
	if err != nil {
		return nil, fmt.Errorf("normalizer: load raw snapshot: %w", err)
	}
	if len(raws) == 0 {
		return stats, nil
	}

	tax, err := n.taxonomy.Taxonomy()
	if err != nil {
		return nil, fmt.Errorf("normalizer: load taxonomy: %w", err)
	}
	seenURLs, err := n.market.ExistingURLs()
	if err != nil {
		return nil, fmt.Errorf("normalizer: load existing urls: %w", err)
	}

	resolver := NewResolver(tax)
	groups := BuildPeerGroups(raws)

	processedIDs := make([]int64, 0, len(raws))
	staged := make([]*models.MarketListing, 0, len(raws))

	for _, r := range raws {
		stats.Processed++
		processedIDs = append(processedIDs, r.ID)

		if r.Price <= 0 || r.BrandText == "" {
			stats.Unmatched++
			continue
		}

		brandID, ok := resolver.ResolveBrand(r.BrandText)
		if !ok {
			stats.Unmatched++
			continue
		}
		modelID, ok := resolver.ResolveModel(r.ModelText, brandID)
		if !ok {
			stats.Unmatched++
			continue
		}

		if IsOutlier(r.Price, groups.Prices(r.BrandText, r.Year)) {
			stats.OutliersFiltered++
			continue
		}

		// Duplicates of an already-normalized URL are dropped without a
		// counter: they were correct data the first time around.
		if r.URL != "" {
			if _, dup := seenURLs[r.URL]; dup {
				continue
			}
		}

		staged = append(staged, &models.MarketListing{
			RawListingID: r.ID,
			Source:       r.Source,
			BrandID:      brandID,
			ModelID:      modelID,
			Year:         r.Year,
			Mileage:      r.Mileage,
			Price:        r.Price,
			Currency:     currencyOrDefault(r.Currency),
			Location:     r.Location,
			URL:          r.URL,
			Active:       true,
			PublishedAt:  r.PublishedAt,
			ScrapedAt:    r.ScrapedAt,
		})
		if r.URL != "" {
			seenURLs[r.URL] = struct{}{}
		}
		stats.Normalized++
	}

	if err := n.market.CommitNormalization(processedIDs, staged); err != nil {
		return nil, fmt.Errorf("normalizer: commit batch: %w", err)
	}

	metrics.RecordNormalizeRun(stats, time.Since(start))
	n.logger.Info("[normalizer] processed=%d normalized=%d unmatched=%d outliers=%d in %v",
		stats.Processed, stats.Normalized, stats.Unmatched, stats.OutliersFiltered, time.Since(start).Round(time.Millisecond))
	return stats, nil
}

func currencyOrDefault(c string) string {
	if c == "" {
		return "ARS"
	}
	return c
}
