package models

import "testing"

func TestVehiclePatchApplyPartial(t *testing.T) {
	v := Vehicle{
		ID: 1, Year: 2020, Mileage: 80000, Price: 10_000_000,
		AcquisitionPrice: 8_500_000, TradeIn: true, InStock: true,
	}

	price := 9_500_000.0
	inStock := false
	patch := &VehiclePatch{Price: &price, InStock: &inStock}
	patch.Apply(&v)

	if v.Price != 9_500_000 {
		t.Errorf("Price = %v; want 9500000", v.Price)
	}
	if v.InStock {
		t.Error("InStock should be false after patch")
	}
	// Everything the patch left nil stays put.
	if v.Year != 2020 || v.Mileage != 80000 || v.AcquisitionPrice != 8_500_000 || !v.TradeIn {
		t.Errorf("unpatched fields changed: %+v", v)
	}
}

func TestVehiclePatchApplyEmpty(t *testing.T) {
	v := Vehicle{ID: 1, Year: 2020, Price: 10_000_000, InStock: true}
	before := v

	(&VehiclePatch{}).Apply(&v)

	if v != before {
		t.Errorf("empty patch changed the vehicle: %+v", v)
	}
}

func TestVehiclePatchZeroValuesAreExplicit(t *testing.T) {
	v := Vehicle{ID: 1, Mileage: 80000, TradeIn: true}

	zero := 0
	tradeIn := false
	(&VehiclePatch{Mileage: &zero, TradeIn: &tradeIn}).Apply(&v)

	if v.Mileage != 0 {
		t.Errorf("Mileage = %d; an explicit zero must overwrite", v.Mileage)
	}
	if v.TradeIn {
		t.Error("TradeIn should be false; an explicit false must overwrite")
	}
}
