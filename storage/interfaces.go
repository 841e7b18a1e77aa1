package storage

import "dealer-pricing/models"

// TaxonomyReader provides a full snapshot of the internal brand/model
// taxonomy. The normalizer loads it once per batch.
type TaxonomyReader interface {
	Taxonomy() (*models.Taxonomy, error)
}

// RawListingStore is the append-only sink for scraped/imported offers plus
// the reads the normalizer needs.
type RawListingStore interface {
	InsertRaw(listings []*models.RawListing) (inserted int, err error)
	FetchUnprocessed() ([]*models.RawListing, error)
	CountRaw() (int, error)
	PurgeSource(source string) (int64, error)
}

// ComparablesFilter narrows one comparables window query. Mileage filtering
// only applies when Mileage > 0 and MileagePct > 0.
type ComparablesFilter struct {
	BrandID    int64
	ModelID    int64
	Year       int
	YearWindow int
	Currency   string
	Mileage    int
	MileagePct float64
	Limit      int
}

// HistoryFilter narrows the market history series.
type HistoryFilter struct {
	BrandID int64
	ModelID int64
	YearMin int
	YearMax int
}

// MarketListingStore holds normalized listings: written once by the
// normalizer, queried by the pricing engine and simulator.
type MarketListingStore interface {
	ExistingURLs() (map[string]struct{}, error)
	// CommitNormalization marks the snapshot's raw IDs processed and inserts
	// the staged listings atomically.
	CommitNormalization(rawIDs []int64, listings []*models.MarketListing) error
	QueryComparables(f ComparablesFilter) ([]*models.MarketListing, error)
	// ClosestByYear is the last-resort comparables query: no year or currency
	// restriction, ordered by absolute year distance from the target.
	ClosestByYear(brandID, modelID int64, year, limit int) ([]*models.MarketListing, error)
	ActiveListings(f HistoryFilter) ([]*models.MarketListing, error)
	CountListings() (int, error)
	ActiveSources() ([]string, error)
	DeactivateSource(source string) (int64, error)
}

// VehicleStore is read access to dealership inventory, plus the sparse
// patch update used by CRUD collaborators.
type VehicleStore interface {
	VehicleByID(id int64) (*models.Vehicle, error)
	InStockVehicles() ([]*models.Vehicle, error)
	UpdateVehicle(id int64, patch *models.VehiclePatch) error
}

// SalesStore is read access to completed sales for day-on-market statistics.
type SalesStore interface {
	CompletedSales(brandID, modelID int64, yearMin, yearMax int) ([]*models.Sale, error)
}
