package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"dealer-pricing/models"
	"dealer-pricing/utils"
)

// defaultBatchSize bounds multi-row statements. A performance policy, not a
// correctness one.
const defaultBatchSize = 25

// PostgresStore persists the whole pricing domain: raw listings, normalized
// market listings, taxonomy, vehicles and sales.
type PostgresStore struct {
	db        *sql.DB
	batchSize int
	logger    *utils.Logger
}

// NewPostgresStore opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use store.
func NewPostgresStore(dsn string, logger *utils.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := &utils.RetryConfig{MaxAttempts: 10, BaseDelay: 2 * time.Second, Logger: logger}
	if err := retry.Do("postgres ping", db.Ping); err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	s := &PostgresStore{db: db, batchSize: defaultBatchSize, logger: logger}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return s, nil
}

// SetBatchSize overrides the chunk size for batched writes. Values below 1
// are ignored.
func (s *PostgresStore) SetBatchSize(n int) {
	if n > 0 {
		s.batchSize = n
	}
}

func (s *PostgresStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS brands (
			id   SERIAL PRIMARY KEY,
			name TEXT UNIQUE NOT NULL
		);

		CREATE TABLE IF NOT EXISTS models (
			id       SERIAL PRIMARY KEY,
			brand_id INTEGER NOT NULL REFERENCES brands(id),
			name     TEXT    NOT NULL
		);

		CREATE TABLE IF NOT EXISTS market_raw_listings (
			id           SERIAL PRIMARY KEY,
			source       VARCHAR(50) NOT NULL,
			url          TEXT UNIQUE,
			title        TEXT,
			brand_text   TEXT,
			model_text   TEXT,
			year         INTEGER,
			mileage      INTEGER,
			price        NUMERIC(14,2),
			currency     VARCHAR(3) NOT NULL DEFAULT 'ARS',
			location     TEXT,
			image_url    TEXT,
			active       BOOLEAN NOT NULL DEFAULT TRUE,
			processed    BOOLEAN NOT NULL DEFAULT FALSE,
			published_at TIMESTAMPTZ,
			scraped_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_raw_source    ON market_raw_listings(source);
		CREATE INDEX IF NOT EXISTS idx_raw_processed ON market_raw_listings(processed);

		CREATE TABLE IF NOT EXISTS market_listings (
			id             SERIAL PRIMARY KEY,
			raw_listing_id INTEGER REFERENCES market_raw_listings(id),
			source         VARCHAR(50) NOT NULL,
			brand_id       INTEGER NOT NULL REFERENCES brands(id),
			model_id       INTEGER NOT NULL REFERENCES models(id),
			year           INTEGER NOT NULL,
			mileage        INTEGER,
			price          NUMERIC(14,2) NOT NULL,
			currency       VARCHAR(3) NOT NULL DEFAULT 'ARS',
			location       TEXT,
			url            TEXT,
			active         BOOLEAN NOT NULL DEFAULT TRUE,
			published_at   TIMESTAMPTZ,
			scraped_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_listings_comparables ON market_listings(brand_id, model_id, year);
		CREATE INDEX IF NOT EXISTS idx_listings_source      ON market_listings(source);

		CREATE TABLE IF NOT EXISTS vehicles (
			id                SERIAL PRIMARY KEY,
			brand_id          INTEGER NOT NULL REFERENCES brands(id),
			model_id          INTEGER NOT NULL REFERENCES models(id),
			year              INTEGER NOT NULL,
			mileage           INTEGER,
			price             NUMERIC(14,2) NOT NULL DEFAULT 0,
			acquisition_price NUMERIC(14,2),
			trade_in          BOOLEAN NOT NULL DEFAULT FALSE,
			in_stock          BOOLEAN NOT NULL DEFAULT TRUE
		);

		CREATE TABLE IF NOT EXISTS sales (
			id         SERIAL PRIMARY KEY,
			vehicle_id INTEGER NOT NULL REFERENCES vehicles(id),
			price      NUMERIC(14,2) NOT NULL,
			status     VARCHAR(20) NOT NULL DEFAULT 'completed',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			sold_at    TIMESTAMPTZ
		);
	`)
	return err
}

// Close closes the underlying database handle.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// ─── Taxonomy ───────────────────────────────────────────────────────────

// Taxonomy loads the full brand/model snapshot in two queries.
func (s *PostgresStore) Taxonomy() (*models.Taxonomy, error) {
	rows, err := s.db.Query(`SELECT id, name FROM brands`)
	if err != nil {
		return nil, fmt.Errorf("postgres: load brands: %w", err)
	}
	defer rows.Close()

	var brands []models.Brand
	for rows.Next() {
		var b models.Brand
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, fmt.Errorf("postgres: scan brand: %w", err)
		}
		brands = append(brands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	modelRows, err := s.db.Query(`SELECT id, brand_id, name FROM models`)
	if err != nil {
		return nil, fmt.Errorf("postgres: load models: %w", err)
	}
	defer modelRows.Close()

	var mods []models.Model
	for modelRows.Next() {
		var m models.Model
		if err := modelRows.Scan(&m.ID, &m.BrandID, &m.Name); err != nil {
			return nil, fmt.Errorf("postgres: scan model: %w", err)
		}
		mods = append(mods, m)
	}
	if err := modelRows.Err(); err != nil {
		return nil, err
	}

	return models.NewTaxonomy(brands, mods), nil
}

// ─── Raw listings ───────────────────────────────────────────────────────

// InsertRaw appends raw listings in chunks, skipping URLs already present.
// Returns how many rows were actually inserted.
func (s *PostgresStore) InsertRaw(listings []*models.RawListing) (int, error) {
	inserted := 0
	for i := 0; i < len(listings); i += s.batchSize {
		end := i + s.batchSize
		if end > len(listings) {
			end = len(listings)
		}
		n, err := s.insertRawBatch(listings[i:end])
		if err != nil {
			return inserted, err
		}
		inserted += n
	}
	return inserted, nil
}

func (s *PostgresStore) insertRawBatch(batch []*models.RawListing) (int, error) {
	const cols = 13
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, l := range batch {
		base := idx * cols
		placeholders := make([]string, cols)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			l.Source, nullString(l.URL), nullString(l.Title),
			nullString(l.BrandText), nullString(l.ModelText),
			nullInt(l.Year), nullInt(l.Mileage), nullFloat(l.Price),
			currencyOrARS(l.Currency), nullString(l.Location), nullString(l.ImageURL),
			nullTime(l.PublishedAt), scrapedOrNow(l.ScrapedAt))
	}

	query := fmt.Sprintf(`
		INSERT INTO market_raw_listings
			(source, url, title, brand_text, model_text, year, mileage, price,
			 currency, location, image_url, published_at, scraped_at)
		VALUES %s
		ON CONFLICT (url) DO NOTHING
	`, strings.Join(valueStrings, ","))

	res, err := s.db.Exec(query, valueArgs...)
	if err != nil {
		return 0, fmt.Errorf("postgres: insert raw batch: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// FetchUnprocessed loads the snapshot a normalization run operates on.
func (s *PostgresStore) FetchUnprocessed() ([]*models.RawListing, error) {
	rows, err := s.db.Query(`
		SELECT id, source, COALESCE(url, ''), COALESCE(title, ''),
		       COALESCE(brand_text, ''), COALESCE(model_text, ''),
		       COALESCE(year, 0), COALESCE(mileage, 0), COALESCE(price, 0),
		       currency, COALESCE(location, ''), COALESCE(image_url, ''),
		       active, processed, published_at, scraped_at
		FROM market_raw_listings
		WHERE processed = FALSE
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch unprocessed: %w", err)
	}
	defer rows.Close()

	var listings []*models.RawListing
	for rows.Next() {
		l := &models.RawListing{}
		var published sql.NullTime
		if err := rows.Scan(
			&l.ID, &l.Source, &l.URL, &l.Title, &l.BrandText, &l.ModelText,
			&l.Year, &l.Mileage, &l.Price, &l.Currency, &l.Location, &l.ImageURL,
			&l.Active, &l.Processed, &published, &l.ScrapedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan raw listing: %w", err)
		}
		l.PublishedAt = published.Time
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// CountRaw counts every raw listing ever captured.
func (s *PostgresStore) CountRaw() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM market_raw_listings`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("postgres: count raw: %w", err)
	}
	return n, nil
}

// PurgeSource removes every raw listing captured from a source.
func (s *PostgresStore) PurgeSource(source string) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM market_raw_listings WHERE source = $1`, source)
	if err != nil {
		return 0, fmt.Errorf("postgres: purge source %q: %w", source, err)
	}
	return res.RowsAffected()
}

// ─── Market listings ────────────────────────────────────────────────────

// ExistingURLs loads the dedup set of already-normalized URLs.
func (s *PostgresStore) ExistingURLs() (map[string]struct{}, error) {
	rows, err := s.db.Query(`SELECT url FROM market_listings WHERE url IS NOT NULL AND url <> ''`)
	if err != nil {
		return nil, fmt.Errorf("postgres: existing urls: %w", err)
	}
	defer rows.Close()

	urls := make(map[string]struct{})
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("postgres: scan url: %w", err)
		}
		urls[u] = struct{}{}
	}
	return urls, rows.Err()
}

// CommitNormalization marks the snapshot processed and inserts the staged
// listings in one transaction, so a crash never leaves raw rows flagged
// without their market counterparts. Statements stay chunked inside the
// transaction to bound their size.
func (s *PostgresStore) CommitNormalization(rawIDs []int64, listings []*models.MarketListing) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin commit: %w", err)
	}
	defer tx.Rollback()

	for i := 0; i < len(rawIDs); i += s.batchSize {
		end := i + s.batchSize
		if end > len(rawIDs) {
			end = len(rawIDs)
		}
		if _, err := tx.Exec(
			`UPDATE market_raw_listings SET processed = TRUE WHERE id = ANY($1)`,
			pq.Array(rawIDs[i:end]),
		); err != nil {
			return fmt.Errorf("postgres: mark processed: %w", err)
		}
	}

	for i := 0; i < len(listings); i += s.batchSize {
		end := i + s.batchSize
		if end > len(listings) {
			end = len(listings)
		}
		if err := insertListingBatch(tx, listings[i:end]); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func insertListingBatch(tx *sql.Tx, batch []*models.MarketListing) error {
	const cols = 13
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, l := range batch {
		base := idx * cols
		placeholders := make([]string, cols)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			nullInt64(l.RawListingID), l.Source, l.BrandID, l.ModelID, l.Year,
			nullInt(l.Mileage), l.Price, currencyOrARS(l.Currency),
			nullString(l.Location), nullString(l.URL), l.Active,
			nullTime(l.PublishedAt), scrapedOrNow(l.ScrapedAt))
	}

	query := fmt.Sprintf(`
		INSERT INTO market_listings
			(raw_listing_id, source, brand_id, model_id, year, mileage, price,
			 currency, location, url, active, published_at, scraped_at)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	if _, err := tx.Exec(query, valueArgs...); err != nil {
		return fmt.Errorf("postgres: insert listing batch: %w", err)
	}
	return nil
}

const listingColumns = `id, COALESCE(raw_listing_id, 0), source, brand_id, model_id, year,
	COALESCE(mileage, 0), price, currency, COALESCE(location, ''), COALESCE(url, ''),
	active, published_at, scraped_at`

func scanListings(rows *sql.Rows) ([]*models.MarketListing, error) {
	var listings []*models.MarketListing
	for rows.Next() {
		l := &models.MarketListing{}
		var published sql.NullTime
		if err := rows.Scan(
			&l.ID, &l.RawListingID, &l.Source, &l.BrandID, &l.ModelID, &l.Year,
			&l.Mileage, &l.Price, &l.Currency, &l.Location, &l.URL,
			&l.Active, &published, &l.ScrapedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan market listing: %w", err)
		}
		l.PublishedAt = published.Time
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// QueryComparables runs a single comparables window query. Widening is the
// caller's job.
func (s *PostgresStore) QueryComparables(f ComparablesFilter) ([]*models.MarketListing, error) {
	query := `
		SELECT ` + listingColumns + `
		FROM market_listings
		WHERE brand_id = $1 AND model_id = $2
		  AND year >= $3 AND year <= $4 AND year > 0
		  AND active = TRUE AND price > 0
		  AND currency = $5`
	args := []interface{}{f.BrandID, f.ModelID, f.Year - f.YearWindow, f.Year + f.YearWindow, f.Currency}

	if f.Mileage > 0 && f.MileagePct > 0 {
		lo := int(float64(f.Mileage) * (1 - f.MileagePct))
		hi := int(float64(f.Mileage) * (1 + f.MileagePct))
		query += fmt.Sprintf(" AND mileage >= $%d AND mileage <= $%d", len(args)+1, len(args)+2)
		args = append(args, lo, hi)
	}

	query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
	args = append(args, f.Limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: query comparables: %w", err)
	}
	defer rows.Close()
	return scanListings(rows)
}

// ClosestByYear is the last-resort comparables query: brand and model only,
// nearest model years first.
func (s *PostgresStore) ClosestByYear(brandID, modelID int64, year, limit int) ([]*models.MarketListing, error) {
	rows, err := s.db.Query(`
		SELECT `+listingColumns+`
		FROM market_listings
		WHERE brand_id = $1 AND model_id = $2 AND year > 0
		  AND active = TRUE AND price > 0
		ORDER BY ABS(year - $3)
		LIMIT $4
	`, brandID, modelID, year, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: closest by year: %w", err)
	}
	defer rows.Close()
	return scanListings(rows)
}

// ActiveListings returns active, positive-priced listings matching the
// filter; zero filter fields are ignored.
func (s *PostgresStore) ActiveListings(f HistoryFilter) ([]*models.MarketListing, error) {
	query := `
		SELECT ` + listingColumns + `
		FROM market_listings
		WHERE active = TRUE AND price > 0`
	var args []interface{}

	if f.BrandID > 0 {
		query += fmt.Sprintf(" AND brand_id = $%d", len(args)+1)
		args = append(args, f.BrandID)
	}
	if f.ModelID > 0 {
		query += fmt.Sprintf(" AND model_id = $%d", len(args)+1)
		args = append(args, f.ModelID)
	}
	if f.YearMin > 0 {
		query += fmt.Sprintf(" AND year >= $%d", len(args)+1)
		args = append(args, f.YearMin)
	}
	if f.YearMax > 0 {
		query += fmt.Sprintf(" AND year <= $%d", len(args)+1)
		args = append(args, f.YearMax)
	}
	query += " ORDER BY year"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: active listings: %w", err)
	}
	defer rows.Close()
	return scanListings(rows)
}

// CountListings counts every normalized market listing.
func (s *PostgresStore) CountListings() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM market_listings`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("postgres: count listings: %w", err)
	}
	return n, nil
}

// ActiveSources lists the distinct sources with active listings.
func (s *PostgresStore) ActiveSources() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT source FROM market_listings WHERE active = TRUE ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("postgres: active sources: %w", err)
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var src string
		if err := rows.Scan(&src); err != nil {
			return nil, fmt.Errorf("postgres: scan source: %w", err)
		}
		sources = append(sources, src)
	}
	return sources, rows.Err()
}

// DeactivateSource soft-deletes every listing from a source.
func (s *PostgresStore) DeactivateSource(source string) (int64, error) {
	res, err := s.db.Exec(`UPDATE market_listings SET active = FALSE WHERE source = $1`, source)
	if err != nil {
		return 0, fmt.Errorf("postgres: deactivate source %q: %w", source, err)
	}
	return res.RowsAffected()
}

// ─── Vehicles & sales ───────────────────────────────────────────────────

const vehicleColumns = `v.id, v.brand_id, v.model_id, b.name, m.name, v.year,
	COALESCE(v.mileage, 0), v.price, COALESCE(v.acquisition_price, 0), v.trade_in, v.in_stock`

func scanVehicle(row interface{ Scan(...interface{}) error }) (*models.Vehicle, error) {
	v := &models.Vehicle{}
	err := row.Scan(&v.ID, &v.BrandID, &v.ModelID, &v.BrandName, &v.ModelName,
		&v.Year, &v.Mileage, &v.Price, &v.AcquisitionPrice, &v.TradeIn, &v.InStock)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// VehicleByID returns (nil, nil) when the vehicle does not exist, so
// callers can signal a distinct not-found condition.
func (s *PostgresStore) VehicleByID(id int64) (*models.Vehicle, error) {
	row := s.db.QueryRow(`
		SELECT `+vehicleColumns+`
		FROM vehicles v
		JOIN brands b ON b.id = v.brand_id
		JOIN models m ON m.id = v.model_id
		WHERE v.id = $1
	`, id)
	v, err := scanVehicle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: vehicle %d: %w", id, err)
	}
	return v, nil
}

// InStockVehicles loads the sellable inventory.
func (s *PostgresStore) InStockVehicles() ([]*models.Vehicle, error) {
	rows, err := s.db.Query(`
		SELECT ` + vehicleColumns + `
		FROM vehicles v
		JOIN brands b ON b.id = v.brand_id
		JOIN models m ON m.id = v.model_id
		WHERE v.in_stock = TRUE
		ORDER BY v.id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: in-stock vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*models.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// UpdateVehicle applies a sparse patch: the row is read under lock, merged
// in memory, and written back whole.
func (s *PostgresStore) UpdateVehicle(id int64, patch *models.VehiclePatch) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin update: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`
		SELECT `+vehicleColumns+`
		FROM vehicles v
		JOIN brands b ON b.id = v.brand_id
		JOIN models m ON m.id = v.model_id
		WHERE v.id = $1
		FOR UPDATE OF v
	`, id)
	v, err := scanVehicle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("postgres: update vehicle %d: not found", id)
	}
	if err != nil {
		return fmt.Errorf("postgres: update vehicle %d: %w", id, err)
	}

	patch.Apply(v)

	if _, err := tx.Exec(`
		UPDATE vehicles
		SET year = $2, mileage = $3, price = $4, acquisition_price = $5,
		    trade_in = $6, in_stock = $7
		WHERE id = $1
	`, id, v.Year, nullInt(v.Mileage), v.Price, nullFloat(v.AcquisitionPrice),
		v.TradeIn, v.InStock); err != nil {
		return fmt.Errorf("postgres: update vehicle %d: %w", id, err)
	}

	return tx.Commit()
}

// CompletedSales loads completed sales of vehicles with the given brand and
// model within a model-year range.
func (s *PostgresStore) CompletedSales(brandID, modelID int64, yearMin, yearMax int) ([]*models.Sale, error) {
	rows, err := s.db.Query(`
		SELECT s.id, s.vehicle_id, s.price, s.status, s.created_at, s.sold_at
		FROM sales s
		JOIN vehicles v ON v.id = s.vehicle_id
		WHERE v.brand_id = $1 AND v.model_id = $2
		  AND v.year >= $3 AND v.year <= $4
		  AND s.status = $5
	`, brandID, modelID, yearMin, yearMax, models.SaleCompleted)
	if err != nil {
		return nil, fmt.Errorf("postgres: completed sales: %w", err)
	}
	defer rows.Close()

	var sales []*models.Sale
	for rows.Next() {
		sale := &models.Sale{}
		var soldAt sql.NullTime
		if err := rows.Scan(&sale.ID, &sale.VehicleID, &sale.Price, &sale.Status,
			&sale.CreatedAt, &soldAt); err != nil {
			return nil, fmt.Errorf("postgres: scan sale: %w", err)
		}
		sale.SoldAt = soldAt.Time
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

// ─── NULL helpers ───────────────────────────────────────────────────────

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}

func nullInt64(n int64) sql.NullInt64 {
	return sql.NullInt64{Int64: n, Valid: n != 0}
}

func nullFloat(f float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: f, Valid: f != 0}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func scrapedOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

func currencyOrARS(c string) string {
	if c == "" {
		return "ARS"
	}
	return c
}
