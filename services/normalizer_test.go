package services

import (
	"testing"

	"dealer-pricing/models"
)

func newTestNormalizer(f *fakeStore) *Normalizer {
	return NewNormalizer(f, f, f, newTestLogger())
}

func rawToyota(url string, price float64) *models.RawListing {
	return &models.RawListing{
		Source:    "mercadolibre",
		URL:       url,
		BrandText: "Toyota",
		ModelText: "Corolla",
		Year:      2022,
		Price:     price,
		Currency:  "ARS",
	}
}

func TestNormalizeMissingFields(t *testing.T) {
	f := newFakeStore()
	testTaxonomy(f)
	f.raws = []*models.RawListing{
		{ID: 1, Source: "kavak", BrandText: "Toyota", ModelText: "Corolla", Year: 2022}, // no price
		{ID: 2, Source: "kavak", ModelText: "Corolla", Year: 2022, Price: 1000},        // no brand
	}

	stats, err := newTestNormalizer(f).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Processed != 2 || stats.Unmatched != 2 || stats.Normalized != 0 {
		t.Errorf("stats = %+v; want processed=2 unmatched=2 normalized=0", *stats)
	}
	if len(f.listings) != 0 {
		t.Errorf("no market listings should be created, got %d", len(f.listings))
	}
	for _, r := range f.raws {
		if !r.Processed {
			t.Errorf("raw %d should be marked processed even when unmatched", r.ID)
		}
	}
}

func TestNormalizeUnresolvableBrandAndModel(t *testing.T) {
	f := newFakeStore()
	testTaxonomy(f)
	f.raws = []*models.RawListing{
		{ID: 1, Source: "kavak", BrandText: "Lada", ModelText: "Niva", Year: 2020, Price: 1000},
		{ID: 2, Source: "kavak", BrandText: "Toyota", ModelText: "Yaris", Year: 2020, Price: 1000},
	}

	stats, err := newTestNormalizer(f).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Unmatched != 2 {
		t.Errorf("Unmatched = %d; want 2", stats.Unmatched)
	}
}

func TestNormalizeAliasRoundTrip(t *testing.T) {
	f := newFakeStore()
	testTaxonomy(f)
	f.raws = []*models.RawListing{
		{ID: 1, Source: "a", URL: "u1", BrandText: "Chevy", ModelText: "Cruze", Year: 2021, Price: 9_000_000},
		{ID: 2, Source: "b", URL: "u2", BrandText: "Chevrolet", ModelText: "Cruze", Year: 2021, Price: 9_100_000},
	}

	stats, err := newTestNormalizer(f).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Normalized != 2 {
		t.Fatalf("Normalized = %d; want 2", stats.Normalized)
	}
	if f.listings[0].BrandID != f.listings[1].BrandID {
		t.Errorf("alias and canonical spelling mapped to different brands: %d vs %d",
			f.listings[0].BrandID, f.listings[1].BrandID)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	f := newFakeStore()
	testTaxonomy(f)
	f.raws = []*models.RawListing{rawToyota("u1", 10_000_000)}
	f.raws[0].ID = 1

	n := newTestNormalizer(f)
	first, err := n.Run()
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if first.Normalized != 1 {
		t.Fatalf("first run Normalized = %d; want 1", first.Normalized)
	}

	second, err := n.Run()
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if second.Processed != 0 || second.Normalized != 0 {
		t.Errorf("second run should see an empty snapshot, got %+v", *second)
	}
	if len(f.listings) != 1 {
		t.Errorf("listings after double run: got %d, want 1", len(f.listings))
	}
}

func TestNormalizeFiltersOutlier(t *testing.T) {
	f := newFakeStore()
	testTaxonomy(f)
	prices := []float64{10_000_000, 10_200_000, 9_800_000, 50_000_000}
	for i, p := range prices {
		r := rawToyota("", p)
		r.ID = int64(i + 1)
		r.URL = ""
		f.raws = append(f.raws, r)
	}
	f.raws[0].URL = "u1"
	f.raws[1].URL = "u2"
	f.raws[2].URL = "u3"
	f.raws[3].URL = "u4"

	stats, err := newTestNormalizer(f).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.OutliersFiltered != 1 {
		t.Errorf("OutliersFiltered = %d; want 1", stats.OutliersFiltered)
	}
	if stats.Normalized != 3 {
		t.Errorf("Normalized = %d; want 3", stats.Normalized)
	}

	var kept []float64
	for _, l := range f.listings {
		kept = append(kept, l.Price)
	}
	if got := median(kept); got != 10_000_000 {
		t.Errorf("median of surviving prices = %v; want 10000000", got)
	}
}

func TestNormalizeDeduplicatesURLs(t *testing.T) {
	f := newFakeStore()
	testTaxonomy(f)
	// Already normalized in an earlier run.
	f.listings = append(f.listings, &models.MarketListing{
		BrandID: 3, ModelID: 30, Year: 2022, Price: 10_000_000,
		Currency: "ARS", URL: "u1", Active: true,
	})
	dup := rawToyota("u1", 10_000_000)
	dup.ID = 1
	again := rawToyota("u2", 10_100_000)
	again.ID = 2
	inRun := rawToyota("u2", 10_100_000) // same URL twice within the snapshot
	inRun.ID = 3
	f.raws = []*models.RawListing{dup, again, inRun}

	stats, err := newTestNormalizer(f).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Normalized != 1 {
		t.Errorf("Normalized = %d; want 1 (both duplicates dropped)", stats.Normalized)
	}
	if len(f.listings) != 2 {
		t.Errorf("market listings = %d; want 2", len(f.listings))
	}
}

func TestNormalizeDefaultsCurrency(t *testing.T) {
	f := newFakeStore()
	testTaxonomy(f)
	r := rawToyota("u1", 10_000_000)
	r.ID = 1
	r.Currency = ""
	f.raws = []*models.RawListing{r}

	if _, err := newTestNormalizer(f).Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if f.listings[0].Currency != "ARS" {
		t.Errorf("Currency = %q; want ARS", f.listings[0].Currency)
	}
}
