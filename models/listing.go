package models

import "time"

// RawListing holds an unprocessed market offer exactly as captured from a
// source (scraper, spreadsheet import, AI extraction). It is written to the
// raw store before any matching or filtering.
type RawListing struct {
	ID          int64
	Source      string
	URL         string
	Title       string
	BrandText   string
	ModelText   string
	Year        int
	Mileage     int
	Price       float64
	Currency    string
	Location    string
	ImageURL    string
	Active      bool
	Processed   bool
	PublishedAt time.Time
	ScrapedAt   time.Time
}

// MarketListing is a raw listing that was matched against the internal
// brand/model taxonomy and survived outlier filtering. Created only by the
// normalizer; read-only afterward except for deactivation.
type MarketListing struct {
	ID           int64
	RawListingID int64
	Source       string
	BrandID      int64
	ModelID      int64
	Year         int
	Mileage      int
	Price        float64
	Currency     string
	Location     string
	URL          string
	Active       bool
	PublishedAt  time.Time
	ScrapedAt    time.Time
}

// NormalizeStats summarises one normalization run.
type NormalizeStats struct {
	Processed        int
	Normalized       int
	Unmatched        int
	OutliersFiltered int
}

// IngestStats summarises one ingestion run across all sources.
type IngestStats struct {
	New        int
	Duplicates int
	Errors     int
}
