package services

import (
	"fmt"
	"math"

	"dealer-pricing/models"
)

// outlierStdDevs is the two-sided z-score gate: a price further than this
// many sample standard deviations from its peer-group mean is dropped.
const outlierStdDevs = 2.0

// IsOutlier reports whether price deviates from its peer group by more than
// outlierStdDevs sample standard deviations. Groups with fewer than 3
// members or zero variance cannot be assessed and never flag. One
// occurrence of the candidate's own price is excluded from the reference
// stats: with the candidate included, the maximum z-score in a group of 4
// is 1.5 and a 2σ gate would never fire on small groups.
func IsOutlier(price float64, peers []float64) bool {
	if len(peers) < 3 {
		return false
	}
	rest := make([]float64, 0, len(peers))
	removed := false
	for _, p := range peers {
		if !removed && p == price {
			removed = true
			continue
		}
		rest = append(rest, p)
	}
	if len(rest) < 2 {
		return false
	}
	m := mean(rest)
	sd := sampleStdDev(rest, m)
	if sd == 0 {
		return false
	}
	return math.Abs(price-m) > outlierStdDevs*sd
}

// PeerGroups buckets raw listing prices by (normalized brand text, year) for
// outlier detection. Built once per normalization batch.
type PeerGroups struct {
	prices map[string][]float64
}

// BuildPeerGroups collects the price buckets across a raw snapshot. Rows
// missing price, brand text or year contribute to no bucket.
func BuildPeerGroups(raws []*models.RawListing) *PeerGroups {
	g := &PeerGroups{prices: make(map[string][]float64)}
	for _, r := range raws {
		if r.Price <= 0 || r.BrandText == "" || r.Year == 0 {
			continue
		}
		key := peerKey(r.BrandText, r.Year)
		g.prices[key] = append(g.prices[key], r.Price)
	}
	return g
}

// Prices returns the bucket for a raw listing's peer group.
func (g *PeerGroups) Prices(brandText string, year int) []float64 {
	return g.prices[peerKey(brandText, year)]
}

func peerKey(brandText string, year int) string {
	return fmt.Sprintf("%s_%d", normalizeName(brandText), year)
}

func mean(xs []float64) float64 {
	var total float64
	for _, x := range xs {
		total += x
	}
	return total / float64(len(xs))
}

// sampleStdDev is the n-1 (Bessel-corrected) standard deviation.
func sampleStdDev(xs []float64, m float64) float64 {
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}
