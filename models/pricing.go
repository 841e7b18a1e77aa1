package models

// Competitiveness classification of a price relative to the market median.
const (
	VeryCompetitive = "very_competitive" // price below 95% of market
	Competitive     = "competitive"      // within ±5% of market
	Expensive       = "expensive"        // above 105% of market
	NoData          = "no_data"          // no usable market median
)

// PriceSuggestion is the pricing engine's output for one vehicle. Numeric
// pointer fields are nil when there is no market data to derive them from —
// lack of comparables is an expected state, not an error.
type PriceSuggestion struct {
	VehicleID       int64
	Brand           string
	Model           string
	Year            int
	CurrentPrice    float64
	MarketAvg       *float64
	MarketMedian    *float64
	SuggestedPrice  *float64
	ComparableCount int
	Competitiveness string
	CurrentMargin   *float64
	SuggestedMargin *float64
	MileageAdjust   *float64
	Currency        string
	Comparables     []*MarketListing
}

// SimulationResult is one point of a sale-time simulation.
type SimulationResult struct {
	ProposedPrice     float64
	DaysEstimated     float64
	Probability30Days float64
	MarginEstimated   float64
	Competitiveness   string
}

// InventoryStats aggregates pricing analysis over the whole in-stock
// inventory.
type InventoryStats struct {
	TotalAnalyzed   int
	WithMarketData  int
	NoMarketData    int
	VeryCompetitive int
	Competitive     int
	Expensive       int
	AvgMargin       *float64
	MarketListings  int
	RawListings     int
	ActiveSources   []string
}

// PricePoint is one year of the market history series: the trimmed mean
// price of active listings published for that model year.
type PricePoint struct {
	Year     int
	AvgPrice float64
	Count    int
}
