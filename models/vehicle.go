package models

import "time"

// Vehicle is one unit of dealership inventory. Owned by the CRUD layer; the
// pricing core only reads it.
type Vehicle struct {
	ID               int64
	BrandID          int64
	ModelID          int64
	BrandName        string
	ModelName        string
	Year             int
	Mileage          int
	Price            float64
	AcquisitionPrice float64
	TradeIn          bool
	InStock          bool
}

// Sale is a completed (or pending/cancelled) sale of a vehicle. The simulator
// only consumes completed sales, deriving days-on-market from the creation
// and sale timestamps.
type Sale struct {
	ID        int64
	VehicleID int64
	Price     float64
	Status    string
	CreatedAt time.Time
	SoldAt    time.Time
}

// SaleCompleted is the status a sale must carry to count toward
// days-on-market statistics.
const SaleCompleted = "completed"

// VehiclePatch is a sparse update for a Vehicle: nil fields are left
// untouched. This replaces attribute-by-attribute dynamic updates with an
// explicit merge.
type VehiclePatch struct {
	Year             *int
	Mileage          *int
	Price            *float64
	AcquisitionPrice *float64
	TradeIn          *bool
	InStock          *bool
}

// Apply merges the patch onto v, overwriting only the fields that are set.
func (p *VehiclePatch) Apply(v *Vehicle) {
	override(&v.Year, p.Year)
	override(&v.Mileage, p.Mileage)
	override(&v.Price, p.Price)
	override(&v.AcquisitionPrice, p.AcquisitionPrice)
	override(&v.TradeIn, p.TradeIn)
	override(&v.InStock, p.InStock)
}

func override[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
