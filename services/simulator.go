package services

import (
	"fmt"

	"dealer-pricing/metrics"
	"dealer-pricing/models"
	"dealer-pricing/storage"
	"dealer-pricing/utils"
)

// SimulatorConfig holds the sale-time model tunables.
type SimulatorConfig struct {
	BaseSaleDays    float64 // assumed days-to-sell with no data at all
	DaysPerPctOver  float64 // extra days per 1% above market
	DaysPerPctUnder float64 // days removed per 1% below market
	MinSaleDays     float64
}

// DefaultSimulatorConfig mirrors the factors the sale-time model was tuned
// with. Underpricing moves the needle faster than overpricing: buyers react
// more to a discount than they punish a premium.
func DefaultSimulatorConfig() SimulatorConfig {
	return SimulatorConfig{
		BaseSaleDays:    45,
		DaysPerPctOver:  1.0,
		DaysPerPctUnder: 1.5,
		MinSaleDays:     3,
	}
}

// historyDamping softens the price→days extrapolation from historical sales.
const historyDamping = 0.8

// Simulator estimates days-to-sell and 30-day sale probability for a
// proposed price, preferring historical sales of similar vehicles and
// falling back to deviation from the current market median.
type Simulator struct {
	vehicles storage.VehicleStore
	sales    storage.SalesStore
	market   storage.MarketListingStore
	cfg      SimulatorConfig
	logger   *utils.Logger
}

// NewSimulator wires a Simulator to its stores.
func NewSimulator(vehicles storage.VehicleStore, sales storage.SalesStore, market storage.MarketListingStore, cfg SimulatorConfig, logger *utils.Logger) *Simulator {
	if cfg == (SimulatorConfig{}) {
		cfg = DefaultSimulatorConfig()
	}
	return &Simulator{vehicles: vehicles, sales: sales, market: market, cfg: cfg, logger: logger}
}

type saleSample struct {
	price float64
	days  float64
}

// Simulate estimates the sale of one vehicle at a proposed price.
func (s *Simulator) Simulate(vehicleID int64, proposedPrice float64) (*models.SimulationResult, error) {
	metrics.SimulationRequests.Inc()

	vehicle, err := s.vehicles.VehicleByID(vehicleID)
	if err != nil {
		return nil, fmt.Errorf("simulator: load vehicle %d: %w", vehicleID, err)
	}
	if vehicle == nil {
		return nil, fmt.Errorf("simulator: vehicle %d: %w", vehicleID, ErrVehicleNotFound)
	}

	// Market reference: a plain ±1-year window of active listings, no
	// currency escalation — the simulator wants "what the market charges
	// right now", not the widest net the pricing engine casts.
	listings, err := s.market.ActiveListings(storage.HistoryFilter{
		BrandID: vehicle.BrandID,
		ModelID: vehicle.ModelID,
		YearMin: vehicle.Year - 1,
		YearMax: vehicle.Year + 1,
	})
	if err != nil {
		return nil, fmt.Errorf("simulator: load comparables: %w", err)
	}
	marketMedian := median(positivePrices(listings))

	history, err := s.saleHistory(vehicle)
	if err != nil {
		return nil, err
	}

	days := s.estimateDays(proposedPrice, marketMedian, history)

	return &models.SimulationResult{
		ProposedPrice:     round2(proposedPrice),
		DaysEstimated:     round1(days),
		Probability30Days: probability30Days(days),
		MarginEstimated:   round2(proposedPrice - vehicle.Price*estimatedCostFactor),
		Competitiveness:   ClassifyCompetitiveness(proposedPrice, marketMedian),
	}, nil
}

// SimulateRange runs independent simulations at steps price points linearly
// spaced between min and max, for slider-style exploration. Steps is clamped
// to [2, 50].
func (s *Simulator) SimulateRange(vehicleID int64, priceMin, priceMax float64, steps int) ([]*models.SimulationResult, error) {
	if steps < 2 {
		steps = 2
	}
	if steps > 50 {
		steps = 50
	}

	increment := (priceMax - priceMin) / float64(steps-1)
	results := make([]*models.SimulationResult, 0, steps)
	for i := 0; i < steps; i++ {
		r, err := s.Simulate(vehicleID, priceMin+increment*float64(i))
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// saleHistory collects completed sales of the same brand/model within ±2
// model years, deriving days-on-market from creation to sale. Non-positive
// or missing deltas fall back to the base constant.
func (s *Simulator) saleHistory(vehicle *models.Vehicle) ([]saleSample, error) {
	sales, err := s.sales.CompletedSales(vehicle.BrandID, vehicle.ModelID, vehicle.Year-2, vehicle.Year+2)
	if err != nil {
		return nil, fmt.Errorf("simulator: load sale history: %w", err)
	}

	samples := make([]saleSample, 0, len(sales))
	for _, sale := range sales {
		days := 0.0
		if !sale.SoldAt.IsZero() && !sale.CreatedAt.IsZero() {
			days = sale.SoldAt.Sub(sale.CreatedAt).Hours() / 24
			if days < 1 {
				days = 1
			}
		}
		if days <= 0 {
			days = s.cfg.BaseSaleDays
		}
		samples = append(samples, saleSample{price: sale.Price, days: days})
	}
	return samples, nil
}

// estimateDays is the core model: with enough history, extrapolate from the
// historical mean price and mean days-on-market; otherwise shift the base
// estimate by the proposed price's deviation from the market median.
func (s *Simulator) estimateDays(proposedPrice, marketMedian float64, history []saleSample) float64 {
	if len(history) >= 3 {
		var prices, days []float64
		for _, h := range history {
			prices = append(prices, h.price)
			days = append(days, h.days)
		}
		avgPrice := mean(prices)
		avgDays := mean(days)

		if avgPrice > 0 {
			pct := clamp((proposedPrice-avgPrice)/avgPrice, -2.0, 2.0)
			estimated := avgDays + pct*avgDays*historyDamping
			if estimated < s.cfg.MinSaleDays {
				return s.cfg.MinSaleDays
			}
			return estimated
		}
	}

	if marketMedian > 0 {
		pct := clamp((proposedPrice-marketMedian)/marketMedian*100, -200, 200)
		var days float64
		if pct > 0 {
			days = s.cfg.BaseSaleDays + pct*s.cfg.DaysPerPctOver
		} else {
			days = s.cfg.BaseSaleDays + pct*s.cfg.DaysPerPctUnder
		}
		if days < s.cfg.MinSaleDays {
			return s.cfg.MinSaleDays
		}
		return days
	}

	return s.cfg.BaseSaleDays
}

// probability30Days maps estimated days to a 30-day sale probability,
// capped to [5, 100] so it never collapses to zero or overshoots.
func probability30Days(days float64) float64 {
	if days <= 0 {
		return 100
	}
	p := (30 / days) * 60
	if days <= 30 {
		if p > 100 {
			p = 100
		}
	} else if p < 5 {
		p = 5
	}
	return round1(p)
}
