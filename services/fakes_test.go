package services

import (
	"sort"

	"dealer-pricing/models"
	"dealer-pricing/storage"
	"dealer-pricing/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLogger() }

// fakeStore is an in-memory stand-in for the Postgres store, implementing
// every interface the services consume.
type fakeStore struct {
	raws     []*models.RawListing
	listings []*models.MarketListing
	brands   []models.Brand
	models   []models.Model
	vehicles map[int64]*models.Vehicle
	sales    []*models.Sale

	nextListingID int64
	commits       int
}

func newFakeStore() *fakeStore {
	return &fakeStore{vehicles: make(map[int64]*models.Vehicle), nextListingID: 1}
}

func (f *fakeStore) Taxonomy() (*models.Taxonomy, error) {
	return models.NewTaxonomy(f.brands, f.models), nil
}

func (f *fakeStore) InsertRaw(listings []*models.RawListing) (int, error) {
	existing := make(map[string]struct{})
	for _, r := range f.raws {
		if r.URL != "" {
			existing[r.URL] = struct{}{}
		}
	}
	inserted := 0
	for _, l := range listings {
		if l.URL != "" {
			if _, dup := existing[l.URL]; dup {
				continue
			}
			existing[l.URL] = struct{}{}
		}
		cp := *l
		cp.ID = int64(len(f.raws) + 1)
		f.raws = append(f.raws, &cp)
		inserted++
	}
	return inserted, nil
}

func (f *fakeStore) FetchUnprocessed() ([]*models.RawListing, error) {
	var out []*models.RawListing
	for _, r := range f.raws {
		if !r.Processed {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) CountRaw() (int, error) { return len(f.raws), nil }

func (f *fakeStore) PurgeSource(source string) (int64, error) {
	var kept []*models.RawListing
	var purged int64
	for _, r := range f.raws {
		if r.Source == source {
			purged++
			continue
		}
		kept = append(kept, r)
	}
	f.raws = kept
	return purged, nil
}

func (f *fakeStore) ExistingURLs() (map[string]struct{}, error) {
	urls := make(map[string]struct{})
	for _, l := range f.listings {
		if l.URL != "" {
			urls[l.URL] = struct{}{}
		}
	}
	return urls, nil
}

func (f *fakeStore) CommitNormalization(rawIDs []int64, listings []*models.MarketListing) error {
	f.commits++
	ids := make(map[int64]struct{}, len(rawIDs))
	for _, id := range rawIDs {
		ids[id] = struct{}{}
	}
	for _, r := range f.raws {
		if _, ok := ids[r.ID]; ok {
			r.Processed = true
		}
	}
	for _, l := range listings {
		cp := *l
		cp.ID = f.nextListingID
		f.nextListingID++
		f.listings = append(f.listings, &cp)
	}
	return nil
}

func (f *fakeStore) QueryComparables(q storage.ComparablesFilter) ([]*models.MarketListing, error) {
	var out []*models.MarketListing
	for _, l := range f.listings {
		if !l.Active || l.Price <= 0 || l.Year <= 0 {
			continue
		}
		if l.BrandID != q.BrandID || l.ModelID != q.ModelID || l.Currency != q.Currency {
			continue
		}
		if l.Year < q.Year-q.YearWindow || l.Year > q.Year+q.YearWindow {
			continue
		}
		if q.Mileage > 0 && q.MileagePct > 0 {
			lo := int(float64(q.Mileage) * (1 - q.MileagePct))
			hi := int(float64(q.Mileage) * (1 + q.MileagePct))
			if l.Mileage < lo || l.Mileage > hi {
				continue
			}
		}
		out = append(out, l)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeStore) ClosestByYear(brandID, modelID int64, year, limit int) ([]*models.MarketListing, error) {
	var out []*models.MarketListing
	for _, l := range f.listings {
		if !l.Active || l.Price <= 0 || l.Year <= 0 {
			continue
		}
		if l.BrandID != brandID || l.ModelID != modelID {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		return absInt(out[i].Year-year) < absInt(out[j].Year-year)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) ActiveListings(q storage.HistoryFilter) ([]*models.MarketListing, error) {
	var out []*models.MarketListing
	for _, l := range f.listings {
		if !l.Active || l.Price <= 0 {
			continue
		}
		if q.BrandID > 0 && l.BrandID != q.BrandID {
			continue
		}
		if q.ModelID > 0 && l.ModelID != q.ModelID {
			continue
		}
		if q.YearMin > 0 && l.Year < q.YearMin {
			continue
		}
		if q.YearMax > 0 && l.Year > q.YearMax {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeStore) CountListings() (int, error) { return len(f.listings), nil }

func (f *fakeStore) ActiveSources() ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, l := range f.listings {
		if !l.Active {
			continue
		}
		if _, ok := seen[l.Source]; ok {
			continue
		}
		seen[l.Source] = struct{}{}
		out = append(out, l.Source)
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeStore) DeactivateSource(source string) (int64, error) {
	var n int64
	for _, l := range f.listings {
		if l.Source == source && l.Active {
			l.Active = false
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) VehicleByID(id int64) (*models.Vehicle, error) {
	return f.vehicles[id], nil
}

func (f *fakeStore) InStockVehicles() ([]*models.Vehicle, error) {
	ids := make([]int64, 0, len(f.vehicles))
	for id := range f.vehicles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []*models.Vehicle
	for _, id := range ids {
		if f.vehicles[id].InStock {
			out = append(out, f.vehicles[id])
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateVehicle(id int64, patch *models.VehiclePatch) error {
	if v, ok := f.vehicles[id]; ok {
		patch.Apply(v)
	}
	return nil
}

func (f *fakeStore) CompletedSales(brandID, modelID int64, yearMin, yearMax int) ([]*models.Sale, error) {
	var out []*models.Sale
	for _, s := range f.sales {
		if s.Status != models.SaleCompleted {
			continue
		}
		v, ok := f.vehicles[s.VehicleID]
		if !ok || v.BrandID != brandID || v.ModelID != modelID {
			continue
		}
		if v.Year < yearMin || v.Year > yearMax {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// testTaxonomy is the brand/model set the service tests share.
func testTaxonomy(f *fakeStore) {
	f.brands = []models.Brand{
		{ID: 1, Name: "Chevrolet"},
		{ID: 2, Name: "Volkswagen"},
		{ID: 3, Name: "Toyota"},
		{ID: 4, Name: "Mercedes-Benz"},
	}
	f.models = []models.Model{
		{ID: 10, BrandID: 1, Name: "Cruze"},
		{ID: 11, BrandID: 1, Name: "Onix"},
		{ID: 20, BrandID: 2, Name: "Golf"},
		{ID: 30, BrandID: 3, Name: "Corolla"},
		{ID: 31, BrandID: 3, Name: "Hilux"},
		{ID: 40, BrandID: 4, Name: "Clase C"},
	}
}
