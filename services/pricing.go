package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"dealer-pricing/metrics"
	"dealer-pricing/models"
	"dealer-pricing/storage"
	"dealer-pricing/utils"
)

// ErrVehicleNotFound signals that the requested vehicle does not exist.
// Distinct from "no market data", which is a normal result state.
var ErrVehicleNotFound = errors.New("vehicle not found")

// maxComparablesInResult caps how many comparables a suggestion carries;
// ComparableCount still reflects the full set.
const maxComparablesInResult = 20

// estimatedCostFactor is the cost basis assumed for inventory-wide margin
// estimates when the true acquisition price is unknown.
const estimatedCostFactor = 0.85

// EngineConfig holds the pricing engine tunables.
type EngineConfig struct {
	AdjustPer10kKm float64 // price adjustment per 10,000 km vs market average
	MaxComparables int
}

// Engine computes suggested prices, competitiveness and margins from market
// comparables.
type Engine struct {
	comparables *ComparablesService
	market      storage.MarketListingStore
	raw         storage.RawListingStore
	vehicles    storage.VehicleStore
	cfg         EngineConfig
	logger      *utils.Logger
}

// NewEngine wires a pricing Engine.
func NewEngine(comparables *ComparablesService, market storage.MarketListingStore, raw storage.RawListingStore, vehicles storage.VehicleStore, cfg EngineConfig, logger *utils.Logger) *Engine {
	if cfg.AdjustPer10kKm == 0 {
		cfg.AdjustPer10kKm = 50000
	}
	if cfg.MaxComparables == 0 {
		cfg.MaxComparables = 100
	}
	return &Engine{comparables: comparables, market: market, raw: raw, vehicles: vehicles, cfg: cfg, logger: logger}
}

// ClassifyCompetitiveness buckets a price against the market median:
// below 95% is very_competitive, within ±5% is competitive, above 105% is
// expensive. Both boundaries are inclusive on the competitive side.
func ClassifyCompetitiveness(price, marketMedian float64) string {
	if marketMedian <= 0 {
		return models.NoData
	}
	ratio := price / marketMedian
	switch {
	case ratio < 0.95:
		return models.VeryCompetitive
	case ratio <= 1.05:
		return models.Competitive
	default:
		return models.Expensive
	}
}

// SuggestedPrice analyzes one vehicle against the market. A vehicle with no
// comparables gets a no_data result, not an error.
func (e *Engine) SuggestedPrice(vehicleID int64) (*models.PriceSuggestion, error) {
	metrics.PricingRequests.Inc()

	vehicle, err := e.vehicles.VehicleByID(vehicleID)
	if err != nil {
		return nil, fmt.Errorf("pricing: load vehicle %d: %w", vehicleID, err)
	}
	if vehicle == nil {
		return nil, fmt.Errorf("pricing: vehicle %d: %w", vehicleID, ErrVehicleNotFound)
	}

	result := &models.PriceSuggestion{
		VehicleID:    vehicle.ID,
		Brand:        vehicle.BrandName,
		Model:        vehicle.ModelName,
		Year:         vehicle.Year,
		CurrentPrice: vehicle.Price,
	}

	comparables, err := e.comparables.Find(ComparablesQuery{
		BrandID:  vehicle.BrandID,
		ModelID:  vehicle.ModelID,
		Year:     vehicle.Year,
		Currency: "ARS",
		Limit:    e.cfg.MaxComparables,
	})
	if err != nil {
		return nil, fmt.Errorf("pricing: vehicle %d: %w", vehicleID, err)
	}

	prices := positivePrices(comparables)
	if len(prices) == 0 {
		result.Competitiveness = models.NoData
		return result, nil
	}

	result.Currency = dominantCurrency(comparables)

	avg := mean(prices)
	med := median(prices)

	adjustment := e.mileageAdjustment(vehicle.Mileage, comparables)
	suggested := med + adjustment

	result.MarketAvg = float64Ptr(round2(avg))
	result.MarketMedian = float64Ptr(round2(med))
	result.SuggestedPrice = float64Ptr(round2(suggested))
	result.ComparableCount = len(comparables)
	result.Competitiveness = ClassifyCompetitiveness(vehicle.Price, med)
	if adjustment != 0 {
		result.MileageAdjust = float64Ptr(round2(adjustment))
	}

	// Trade-ins have a known cost basis; everything else is margined
	// against the cheapest comparable as a conservative floor.
	if vehicle.TradeIn && vehicle.AcquisitionPrice > 0 {
		result.CurrentMargin = float64Ptr(round2(vehicle.Price - vehicle.AcquisitionPrice))
		result.SuggestedMargin = float64Ptr(round2(suggested - vehicle.AcquisitionPrice))
	} else {
		floor := minPrice(prices)
		result.CurrentMargin = float64Ptr(round2(vehicle.Price - floor))
		result.SuggestedMargin = float64Ptr(round2(suggested - floor))
	}

	if len(comparables) > maxComparablesInResult {
		comparables = comparables[:maxComparablesInResult]
	}
	result.Comparables = comparables

	return result, nil
}

// mileageAdjustment discounts (or rewards) the suggestion by how far the
// vehicle's own mileage sits from the market average, per 10,000 km. Zero
// when either side is unknown.
func (e *Engine) mileageAdjustment(vehicleKm int, comparables []*models.MarketListing) float64 {
	if vehicleKm <= 0 {
		return 0
	}
	var kms []float64
	for _, c := range comparables {
		if c.Mileage > 0 {
			kms = append(kms, float64(c.Mileage))
		}
	}
	if len(kms) == 0 {
		return 0
	}
	diff := float64(vehicleKm) - mean(kms)
	return -(diff / 10000) * e.cfg.AdjustPer10kKm
}

// AnalyzeInventory runs the per-vehicle analysis over every in-stock
// vehicle. Each vehicle is independent; nothing is cached across lookups.
func (e *Engine) AnalyzeInventory() ([]*models.PriceSuggestion, error) {
	vehicles, err := e.vehicles.InStockVehicles()
	if err != nil {
		return nil, fmt.Errorf("pricing: load inventory: %w", err)
	}

	start := time.Now()
	results := make([]*models.PriceSuggestion, 0, len(vehicles))
	for _, v := range vehicles {
		r, err := e.SuggestedPrice(v.ID)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	e.logger.Info("[pricing] analyzed %d in-stock vehicles in %v",
		len(results), time.Since(start).Round(time.Millisecond))
	return results, nil
}

// InventoryStats aggregates competitiveness buckets and estimated margins
// over the in-stock inventory, plus store-wide listing totals.
func (e *Engine) InventoryStats() (*models.InventoryStats, error) {
	vehicles, err := e.vehicles.InStockVehicles()
	if err != nil {
		return nil, fmt.Errorf("pricing: load inventory: %w", err)
	}

	stats := &models.InventoryStats{TotalAnalyzed: len(vehicles)}
	var margins []float64

	for _, v := range vehicles {
		comparables, err := e.comparables.Find(ComparablesQuery{
			BrandID: v.BrandID,
			ModelID: v.ModelID,
			Year:    v.Year,
			Limit:   e.cfg.MaxComparables,
		})
		if err != nil {
			return nil, fmt.Errorf("pricing: vehicle %d: %w", v.ID, err)
		}
		prices := positivePrices(comparables)
		if len(prices) == 0 {
			stats.NoMarketData++
			continue
		}
		stats.WithMarketData++

		switch ClassifyCompetitiveness(v.Price, median(prices)) {
		case models.VeryCompetitive:
			stats.VeryCompetitive++
		case models.Competitive:
			stats.Competitive++
		case models.Expensive:
			stats.Expensive++
		}
		margins = append(margins, v.Price-(v.Price*estimatedCostFactor))
	}

	if len(margins) > 0 {
		stats.AvgMargin = float64Ptr(round2(mean(margins)))
	}

	if stats.MarketListings, err = e.market.CountListings(); err != nil {
		return nil, fmt.Errorf("pricing: count market listings: %w", err)
	}
	if stats.RawListings, err = e.raw.CountRaw(); err != nil {
		return nil, fmt.Errorf("pricing: count raw listings: %w", err)
	}
	if stats.ActiveSources, err = e.market.ActiveSources(); err != nil {
		return nil, fmt.Errorf("pricing: list sources: %w", err)
	}

	return stats, nil
}

// MarketHistory builds a per-year price series over active listings,
// averaging with one min and one max trimmed to soften stragglers. An empty
// series means no market data for the filter.
func (e *Engine) MarketHistory(f storage.HistoryFilter) ([]models.PricePoint, error) {
	listings, err := e.market.ActiveListings(f)
	if err != nil {
		return nil, fmt.Errorf("pricing: market history: %w", err)
	}

	buckets := make(map[int][]float64)
	for _, l := range listings {
		if l.Year <= 0 || l.Price <= 0 {
			continue
		}
		buckets[l.Year] = append(buckets[l.Year], l.Price)
	}

	years := make([]int, 0, len(buckets))
	for year := range buckets {
		years = append(years, year)
	}
	sort.Ints(years)

	series := make([]models.PricePoint, 0, len(years))
	for _, year := range years {
		prices := buckets[year]
		series = append(series, models.PricePoint{
			Year:     year,
			AvgPrice: round2(trimmedMean(prices, 1)),
			Count:    len(prices),
		})
	}
	return series, nil
}

func positivePrices(listings []*models.MarketListing) []float64 {
	var prices []float64
	for _, l := range listings {
		if l.Price > 0 {
			prices = append(prices, l.Price)
		}
	}
	return prices
}

func minPrice(prices []float64) float64 {
	m := prices[0]
	for _, p := range prices[1:] {
		if p < m {
			m = p
		}
	}
	return m
}

func dominantCurrency(listings []*models.MarketListing) string {
	usd := 0
	ars := 0
	for _, l := range listings {
		switch l.Currency {
		case "USD":
			usd++
		case "ARS":
			ars++
		}
	}
	if usd > ars {
		return "USD"
	}
	return "ARS"
}
