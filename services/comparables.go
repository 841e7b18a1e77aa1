package services

import (
	"fmt"

	"dealer-pricing/models"
	"dealer-pricing/storage"
	"dealer-pricing/utils"
)

// yearWindows is the escalation sequence for widening the comparables
// search when a strict window comes back empty.
var yearWindows = []int{1, 2, 3, 5, 8, 15}

// ComparablesQuery describes one comparables lookup. Zero values fall back
// to the defaults the pricing engine uses.
type ComparablesQuery struct {
	BrandID    int64
	ModelID    int64
	Year       int
	Mileage    int     // 0 = ignore mileage
	Currency   string  // default "ARS"
	YearWindow int     // starting window, default 1
	MileagePct float64 // default 0.3
	Limit      int     // default 100
}

// ComparablesService retrieves relevant market listings for a vehicle,
// progressively relaxing year, then currency, then everything but
// brand/model. Sparse markets frequently return nothing under strict
// filters, and the pricing engine prefers weak comparables over none.
type ComparablesService struct {
	market storage.MarketListingStore
	logger *utils.Logger
}

// NewComparablesService wires a ComparablesService to the market store.
func NewComparablesService(market storage.MarketListingStore, logger *utils.Logger) *ComparablesService {
	return &ComparablesService{market: market, logger: logger}
}

// Find runs the progressive search. An empty result is a valid outcome; an
// error means the store failed.
func (s *ComparablesService) Find(q ComparablesQuery) ([]*models.MarketListing, error) {
	if q.Currency == "" {
		q.Currency = "ARS"
	}
	if q.YearWindow == 0 {
		q.YearWindow = 1
	}
	if q.MileagePct == 0 {
		q.MileagePct = 0.3
	}
	if q.Limit == 0 {
		q.Limit = 100
	}

	results, err := s.escalate(q, q.Currency, q.YearWindow)
	if err != nil || len(results) > 0 {
		return results, err
	}

	// ARS exhausted: repeat the whole escalation in USD before giving up
	// on currency altogether.
	if q.Currency == "ARS" {
		s.logger.Debug("[comparables] no ARS results for brand=%d model=%d year=%d, trying USD",
			q.BrandID, q.ModelID, q.Year)
		results, err = s.escalate(q, "USD", 0)
		if err != nil || len(results) > 0 {
			return results, err
		}
	}

	results, err = s.market.ClosestByYear(q.BrandID, q.ModelID, q.Year, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("comparables: closest-by-year fallback: %w", err)
	}
	return results, nil
}

func (s *ComparablesService) escalate(q ComparablesQuery, currency string, minWindow int) ([]*models.MarketListing, error) {
	for _, window := range yearWindows {
		if window < minWindow {
			continue
		}
		results, err := s.market.QueryComparables(storage.ComparablesFilter{
			BrandID:    q.BrandID,
			ModelID:    q.ModelID,
			Year:       q.Year,
			YearWindow: window,
			Currency:   currency,
			Mileage:    q.Mileage,
			MileagePct: q.MileagePct,
			Limit:      q.Limit,
		})
		if err != nil {
			return nil, fmt.Errorf("comparables: window ±%d %s: %w", window, currency, err)
		}
		if len(results) > 0 {
			if window > q.YearWindow {
				s.logger.Debug("[comparables] widened year window to ±%d for brand=%d model=%d year=%d (%d results)",
					window, q.BrandID, q.ModelID, q.Year, len(results))
			}
			return results, nil
		}
	}
	return nil, nil
}
