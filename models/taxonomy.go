package models

import "strings"

// Brand is one entry of the internal brand taxonomy.
type Brand struct {
	ID   int64
	Name string
}

// Model is one entry of the internal model taxonomy, owned by a brand.
type Model struct {
	ID      int64
	BrandID int64
	Name    string
}

// Taxonomy is a full in-memory snapshot of the brand/model tables, indexed
// for the lookups the resolver performs. Built once per batch — the resolver
// never issues per-row queries.
type Taxonomy struct {
	BrandsByName  map[string]int64           // lowercased brand name → ID
	ModelsByBrand map[int64]map[string]int64 // brand ID → lowercased model name → ID
}

// NewTaxonomy indexes a raw brand/model snapshot.
func NewTaxonomy(brands []Brand, mods []Model) *Taxonomy {
	t := &Taxonomy{
		BrandsByName:  make(map[string]int64, len(brands)),
		ModelsByBrand: make(map[int64]map[string]int64),
	}
	for _, b := range brands {
		t.BrandsByName[strings.ToLower(b.Name)] = b.ID
	}
	for _, m := range mods {
		byName, ok := t.ModelsByBrand[m.BrandID]
		if !ok {
			byName = make(map[string]int64)
			t.ModelsByBrand[m.BrandID] = byName
		}
		byName[strings.ToLower(m.Name)] = m.ID
	}
	return t
}
