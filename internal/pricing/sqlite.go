package pricing

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteSource averages recorded price observations per product.
type SQLiteSource struct {
	db *sql.DB
	mu sync.Mutex
}

// ProductPrice is one product's averaged price.
type ProductPrice struct {
	Product      string
	AveragePrice float64
	Samples      int
	LastSeen     time.Time
}

// NewSQLiteSource opens (or creates) the SQLite database and runs migrations.
func NewSQLiteSource(dbPath string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteSource{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite price source opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteSource) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS price_observations (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			product     TEXT NOT NULL,
			price       REAL NOT NULL,
			source      TEXT,
			observed_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_price_product ON price_observations(product)`,
	}
	for _, st := range stmts {
		if _, err := s.db.Exec(st); err != nil {
			return fmt.Errorf("exec %q: %w", st[:40], err)
		}
	}
	return nil
}

// Name identifies the source in costing breakdowns.
func (s *SQLiteSource) Name() string { return "sqlite" }

// Record stores one price observation.
func (s *SQLiteSource) Record(ctx context.Context, product string, price float64, source string, at time.Time) error {
	if normalize(product) == "" {
		return fmt.Errorf("product is required")
	}
	if price < 0 {
		return fmt.Errorf("price must be non-negative, got %.2f", price)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `INSERT INTO price_observations
		(product, price, source, observed_at) VALUES (?,?,?,?)`,
		normalize(product), price, source, at.Unix(),
	)
	return err
}

// AveragePrice returns the mean of all recorded observations for product.
func (s *SQLiteSource) AveragePrice(ctx context.Context, product string) (float64, error) {
	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT AVG(price) FROM price_observations WHERE product = ?`, normalize(product),
	).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("query average price: %w", err)
	}
	if !avg.Valid {
		return 0, fmt.Errorf("%s: %w", product, ErrPriceNotFound)
	}
	return avg.Float64, nil
}

// Products lists averaged prices for every recorded product, ordered by name.
func (s *SQLiteSource) Products(ctx context.Context) ([]ProductPrice, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT product, AVG(price), COUNT(*), MAX(observed_at)
		FROM price_observations GROUP BY product ORDER BY product`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []ProductPrice
	for rows.Next() {
		var p ProductPrice
		var last int64
		if err := rows.Scan(&p.Product, &p.AveragePrice, &p.Samples, &last); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.LastSeen = time.Unix(last, 0)
		out = append(out, p)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteSource) Close() error {
	log.Println("[INFO] closing sqlite price source")
	return s.db.Close()
}
