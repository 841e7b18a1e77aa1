package services

import (
	"testing"

	"dealer-pricing/models"
)

func marketListing(year int, currency string, price float64) *models.MarketListing {
	return &models.MarketListing{
		Source: "mercadolibre", BrandID: 3, ModelID: 30,
		Year: year, Price: price, Currency: currency, Active: true,
	}
}

func TestFindPrefersNarrowWindow(t *testing.T) {
	f := newFakeStore()
	f.listings = []*models.MarketListing{
		marketListing(2022, "ARS", 10_000_000),
		marketListing(2019, "ARS", 8_000_000),
	}
	svc := NewComparablesService(f, newTestLogger())

	results, err := svc.Find(ComparablesQuery{BrandID: 3, ModelID: 30, Year: 2022})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(results) != 1 || results[0].Year != 2022 {
		t.Errorf("expected only the ±1 match, got %d results", len(results))
	}
}

func TestFindWidensYearBeforeSwitchingCurrency(t *testing.T) {
	f := newFakeStore()
	f.listings = []*models.MarketListing{
		marketListing(2019, "ARS", 8_000_000),  // ±3 from target
		marketListing(2022, "USD", 25_000),     // exact year, wrong currency
	}
	svc := NewComparablesService(f, newTestLogger())

	results, err := svc.Find(ComparablesQuery{BrandID: 3, ModelID: 30, Year: 2022})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Currency != "ARS" || results[0].Year != 2019 {
		t.Errorf("wider-window ARS match should win over same-year USD, got %+v", *results[0])
	}
}

func TestFindFallsBackToUSD(t *testing.T) {
	f := newFakeStore()
	f.listings = []*models.MarketListing{
		marketListing(2022, "USD", 25_000),
	}
	svc := NewComparablesService(f, newTestLogger())

	results, err := svc.Find(ComparablesQuery{BrandID: 3, ModelID: 30, Year: 2022})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(results) != 1 || results[0].Currency != "USD" {
		t.Errorf("expected the USD fallback match, got %d results", len(results))
	}
}

func TestFindLastResortClosestYear(t *testing.T) {
	f := newFakeStore()
	far := marketListing(2000, "ARS", 3_000_000)
	farther := marketListing(1995, "ARS", 2_000_000)
	f.listings = []*models.MarketListing{farther, far}
	svc := NewComparablesService(f, newTestLogger())

	// 2022 ± 15 still misses 2000; only the unrestricted query finds it.
	results, err := svc.Find(ComparablesQuery{BrandID: 3, ModelID: 30, Year: 2022})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Year != 2000 {
		t.Errorf("closest year should sort first, got %d", results[0].Year)
	}
}

func TestFindSkipsWindowsBelowStart(t *testing.T) {
	f := newFakeStore()
	f.listings = []*models.MarketListing{
		marketListing(2021, "ARS", 9_000_000),
		marketListing(2017, "ARS", 7_000_000),
	}
	svc := NewComparablesService(f, newTestLogger())

	results, err := svc.Find(ComparablesQuery{BrandID: 3, ModelID: 30, Year: 2022, YearWindow: 3})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	// The escalation starts straight at ±3; ±1 and ±2 are never tried.
	if len(results) != 1 || results[0].Year != 2021 {
		t.Errorf("expected the ±3 match, got %d results", len(results))
	}
}

func TestFindMileageFilter(t *testing.T) {
	f := newFakeStore()
	near := marketListing(2022, "ARS", 10_000_000)
	near.Mileage = 55_000
	farKm := marketListing(2022, "ARS", 9_000_000)
	farKm.Mileage = 150_000
	f.listings = []*models.MarketListing{near, farKm}
	svc := NewComparablesService(f, newTestLogger())

	results, err := svc.Find(ComparablesQuery{BrandID: 3, ModelID: 30, Year: 2022, Mileage: 50_000})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(results) != 1 || results[0].Mileage != 55_000 {
		t.Errorf("±30%% mileage window should keep only the 55k listing, got %d results", len(results))
	}
}

func TestFindNoData(t *testing.T) {
	f := newFakeStore()
	svc := NewComparablesService(f, newTestLogger())

	results, err := svc.Find(ComparablesQuery{BrandID: 3, ModelID: 30, Year: 2022})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("empty market should yield an empty, error-free result")
	}
}
