package services

import (
	"strings"

	"dealer-pricing/models"
)

// brandAliases maps common misspellings and abbreviations seen in scraped
// titles to the canonical brand name used by the taxonomy.
var brandAliases = map[string]string{
	"vw": "Volkswagen", "volkswagen": "Volkswagen",
	"chevy": "Chevrolet", "chevrolet": "Chevrolet",
	"mercedes benz": "Mercedes-Benz", "mercedes": "Mercedes-Benz", "mb": "Mercedes-Benz",
	"bmw": "BMW", "ford": "Ford", "toyota": "Toyota", "fiat": "Fiat",
	"renault": "Renault", "peugeot": "Peugeot",
	"citroen": "Citroën", "citroën": "Citroën",
	"nissan": "Nissan", "honda": "Honda", "hyundai": "Hyundai", "kia": "Kia",
	"jeep": "Jeep", "audi": "Audi", "dodge": "Dodge", "ram": "RAM",
	"chery": "Chery", "suzuki": "Suzuki", "mitsubishi": "Mitsubishi",
	"subaru": "Subaru", "mazda": "Mazda", "volvo": "Volvo",
	"land rover": "Land Rover", "landrover": "Land Rover",
	"porsche": "Porsche", "ds": "DS",
	"alfa romeo": "Alfa Romeo", "alfaromeo": "Alfa Romeo",
	"mini": "MINI", "lexus": "Lexus", "jaguar": "Jaguar",
}

// Resolver matches free-text brand/model strings against a taxonomy
// snapshot. A failed match is not an error: callers count the listing as
// unmatched and move on.
type Resolver struct {
	taxonomy *models.Taxonomy
}

// NewResolver creates a Resolver over the given taxonomy snapshot.
func NewResolver(t *models.Taxonomy) *Resolver {
	return &Resolver{taxonomy: t}
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ResolveBrand maps free-text brand input to a taxonomy brand ID. It tries,
// in order: the alias table, an exact lowercase match, a bidirectional
// substring match, and finally an exact lowercase match of the raw input.
func (r *Resolver) ResolveBrand(raw string) (int64, bool) {
	if strings.TrimSpace(raw) == "" {
		return 0, false
	}
	norm := normalizeName(raw)
	official := strings.TrimSpace(raw)
	if canonical, ok := brandAliases[norm]; ok {
		official = canonical
	}

	officialLower := strings.ToLower(official)
	if id, ok := r.taxonomy.BrandsByName[officialLower]; ok {
		return id, true
	}
	for name, id := range r.taxonomy.BrandsByName {
		if strings.Contains(name, officialLower) || strings.Contains(officialLower, name) {
			return id, true
		}
	}
	if id, ok := r.taxonomy.BrandsByName[norm]; ok {
		return id, true
	}
	return 0, false
}

// ResolveModel maps free-text model input to a model ID within the given
// brand: exact lowercase match first, then bidirectional substring.
func (r *Resolver) ResolveModel(raw string, brandID int64) (int64, bool) {
	if strings.TrimSpace(raw) == "" {
		return 0, false
	}
	byName := r.taxonomy.ModelsByBrand[brandID]
	norm := normalizeName(raw)
	if id, ok := byName[norm]; ok {
		return id, true
	}
	for name, id := range byName {
		if strings.Contains(name, norm) || strings.Contains(norm, name) {
			return id, true
		}
	}
	return 0, false
}
