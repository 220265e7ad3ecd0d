// Package store loads analysis datasets from Postgres. It is one of the
// engine's data sources; the report core itself never touches the database.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noah-isme/seller-insights/internal/report"
)

// Store reads the seller roster, product catalog and purchase history.
type Store struct {
	Pool *pgxpool.Pool
}

// New constructs a Store over the provided pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{Pool: pool}
}

// Ping verifies database connectivity within the timeout.
func (s *Store) Ping(ctx context.Context, timeout time.Duration) error {
	if s == nil || s.Pool == nil {
		return fmt.Errorf("store not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.Pool.Ping(ctx)
}

// LoadDataset assembles a complete in-memory dataset for one analysis run.
// Purchase records come back with their line items attached; records
// without items are kept, matching what the engine expects.
func (s *Store) LoadDataset(ctx context.Context) (*report.Dataset, error) {
	ds := &report.Dataset{}

	var err error
	if ds.Customers, err = s.loadCustomers(ctx); err != nil {
		return nil, err
	}
	if ds.Sellers, err = s.loadSellers(ctx); err != nil {
		return nil, err
	}
	if ds.Products, err = s.loadProducts(ctx); err != nil {
		return nil, err
	}
	if ds.PurchaseRecords, err = s.loadPurchaseRecords(ctx); err != nil {
		return nil, err
	}
	return ds, nil
}

func (s *Store) loadCustomers(ctx context.Context) ([]report.Customer, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id, first_name, last_name FROM customers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	var out []report.Customer
	for rows.Next() {
		var c report.Customer
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) loadSellers(ctx context.Context) ([]report.Seller, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id, first_name, last_name FROM sellers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query sellers: %w", err)
	}
	defer rows.Close()

	var out []report.Seller
	for rows.Next() {
		var sl report.Seller
		if err := rows.Scan(&sl.ID, &sl.FirstName, &sl.LastName); err != nil {
			return nil, fmt.Errorf("scan seller: %w", err)
		}
		out = append(out, sl)
	}
	return out, rows.Err()
}

func (s *Store) loadProducts(ctx context.Context) ([]report.Product, error) {
	rows, err := s.Pool.Query(ctx, `SELECT sku, name, purchase_price FROM products ORDER BY sku`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []report.Product
	for rows.Next() {
		var p report.Product
		if err := rows.Scan(&p.SKU, &p.Name, &p.PurchasePrice); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) loadPurchaseRecords(ctx context.Context) ([]report.PurchaseRecord, error) {
	recordRows, err := s.Pool.Query(ctx, `SELECT id, seller_id FROM purchase_records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query purchase records: %w", err)
	}
	defer recordRows.Close()

	var records []report.PurchaseRecord
	position := make(map[int64]int)
	for recordRows.Next() {
		var (
			id       int64
			sellerID string
		)
		if err := recordRows.Scan(&id, &sellerID); err != nil {
			return nil, fmt.Errorf("scan purchase record: %w", err)
		}
		position[id] = len(records)
		records = append(records, report.PurchaseRecord{SellerID: sellerID})
	}
	if err := recordRows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := s.Pool.Query(ctx, `SELECT record_id, sku, quantity, sale_price, discount FROM purchase_items ORDER BY record_id, id`)
	if err != nil {
		return nil, fmt.Errorf("query purchase items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			recordID int64
			item     report.LineItem
		)
		if err := itemRows.Scan(&recordID, &item.SKU, &item.Quantity, &item.SalePrice, &item.Discount); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		idx, ok := position[recordID]
		if !ok {
			// Orphan item rows are tolerated the same way the engine
			// tolerates orphan references.
			continue
		}
		records[idx].Items = append(records[idx].Items, item)
	}
	return records, itemRows.Err()
}

// InsertDataset seeds the schema from an in-memory dataset. Used by the
// seeder tool and integration fixtures.
func (s *Store) InsertDataset(ctx context.Context, ds *report.Dataset) error {
	return pgx.BeginFunc(ctx, s.Pool, func(tx pgx.Tx) error {
		for _, c := range ds.Customers {
			if _, err := tx.Exec(ctx,
				`INSERT INTO customers (id, first_name, last_name) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`,
				c.ID, c.FirstName, c.LastName); err != nil {
				return fmt.Errorf("insert customer: %w", err)
			}
		}
		for _, sl := range ds.Sellers {
			if _, err := tx.Exec(ctx,
				`INSERT INTO sellers (id, first_name, last_name) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`,
				sl.ID, sl.FirstName, sl.LastName); err != nil {
				return fmt.Errorf("insert seller: %w", err)
			}
		}
		for _, p := range ds.Products {
			if _, err := tx.Exec(ctx,
				`INSERT INTO products (sku, name, purchase_price) VALUES ($1, $2, $3) ON CONFLICT (sku) DO NOTHING`,
				p.SKU, p.Name, p.PurchasePrice); err != nil {
				return fmt.Errorf("insert product: %w", err)
			}
		}
		for _, rec := range ds.PurchaseRecords {
			var recordID int64
			if err := tx.QueryRow(ctx,
				`INSERT INTO purchase_records (seller_id) VALUES ($1) RETURNING id`,
				rec.SellerID).Scan(&recordID); err != nil {
				return fmt.Errorf("insert purchase record: %w", err)
			}
			for _, item := range rec.Items {
				if _, err := tx.Exec(ctx,
					`INSERT INTO purchase_items (record_id, sku, quantity, sale_price, discount) VALUES ($1, $2, $3, $4, $5)`,
					recordID, item.SKU, item.Quantity, item.SalePrice, item.Discount); err != nil {
					return fmt.Errorf("insert purchase item: %w", err)
				}
			}
		}
		return nil
	})
}
