package services

import (
	"fmt"
	"sort"
	"strings"

	"dealer-pricing/models"
)

// Reporter renders inventory analysis results to the console for the daily
// batch run.
type Reporter struct{}

// NewReporter creates a Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Print renders the inventory analysis and aggregate stats.
func (rp *Reporter) Print(suggestions []*models.PriceSuggestion, stats *models.InventoryStats) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  INVENTORY PRICING ANALYSIS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Vehicles analyzed      : \033[1m%d\033[0m\n", stats.TotalAnalyzed)
	fmt.Printf("  With market data       : \033[1m%d\033[0m\n", stats.WithMarketData)
	fmt.Printf("  Without market data    : \033[1m%d\033[0m\n", stats.NoMarketData)
	fmt.Printf("  Market listings        : \033[1m%d\033[0m (from %d raw)\n",
		stats.MarketListings, stats.RawListings)
	if len(stats.ActiveSources) > 0 {
		fmt.Printf("  Active sources         : %s\n", strings.Join(stats.ActiveSources, ", "))
	}
	fmt.Println()

	// Competitiveness buckets
	fmt.Printf("\033[1;33m  Competitiveness\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Very competitive : \033[1;32m%d\033[0m\n", stats.VeryCompetitive)
	fmt.Printf("  Competitive      : \033[1;32m%d\033[0m\n", stats.Competitive)
	fmt.Printf("  Expensive        : \033[1;31m%d\033[0m\n", stats.Expensive)
	if stats.AvgMargin != nil {
		fmt.Printf("  Avg est. margin  : \033[1m%.2f\033[0m\n", *stats.AvgMargin)
	}
	fmt.Println()

	// Vehicles furthest above market first: those are the ones to reprice.
	overpriced := make([]*models.PriceSuggestion, 0, len(suggestions))
	for _, s := range suggestions {
		if s.Competitiveness == models.Expensive && s.MarketMedian != nil {
			overpriced = append(overpriced, s)
		}
	}
	sort.Slice(overpriced, func(i, j int) bool {
		return overpriced[i].CurrentPrice/(*overpriced[i].MarketMedian) >
			overpriced[j].CurrentPrice/(*overpriced[j].MarketMedian)
	})
	if len(overpriced) > 5 {
		overpriced = overpriced[:5]
	}

	fmt.Printf("\033[1;33m  Most Overpriced Vehicles\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(overpriced) == 0 {
		fmt.Printf("  Nothing priced above market\n")
	} else {
		for i, s := range overpriced {
			name := truncate(fmt.Sprintf("%s %s %d", s.Brand, s.Model, s.Year), 30)
			fmt.Printf("  \033[1m%d.\033[0m %-32s \033[1;31m%.0f\033[0m vs median \033[1m%.0f\033[0m\n",
				i+1, name, s.CurrentPrice, *s.MarketMedian)
			if s.SuggestedPrice != nil {
				fmt.Printf("     suggested: \033[1;32m%.0f\033[0m (%d comparables)\n",
					*s.SuggestedPrice, s.ComparableCount)
			}
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
