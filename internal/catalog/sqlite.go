package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"offersheet-cli/internal/model"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// SQLiteFetcher serves catalog pages from a local product database.
// Products come back in stable position order with their variants
// attached, so identical (query, page) calls return identical pages.
type SQLiteFetcher struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteFetcher, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	return &SQLiteFetcher{db: db}, nil
}

func (f *SQLiteFetcher) Close() error { return f.db.Close() }

func (f *SQLiteFetcher) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS products (
			remote_id TEXT PRIMARY KEY,
			title     TEXT NOT NULL,
			image_ref TEXT NOT NULL DEFAULT '',
			pos       INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS variants (
			remote_id         TEXT NOT NULL,
			product_remote_id TEXT NOT NULL REFERENCES products(remote_id),
			title             TEXT NOT NULL,
			price_cents       INTEGER NOT NULL,
			pos               INTEGER NOT NULL,
			PRIMARY KEY (product_remote_id, remote_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_variants_product ON variants(product_remote_id, pos)`,
	}
	for _, s := range stmts {
		if _, err := f.db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Seed replaces the database contents with the given products.
func (f *SQLiteFetcher) Seed(ctx context.Context, products []model.Product) error {
	if err := f.ensureSchema(ctx); err != nil {
		return err
	}
	tx, err := f.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, t := range []string{"variants", "products"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}
	for i, p := range products {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO products(remote_id, title, image_ref, pos) VALUES(?, ?, ?, ?)`,
			p.RemoteID, p.Title, p.ImageRef, i,
		); err != nil {
			return err
		}
		for j, v := range p.Variants {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO variants(remote_id, product_remote_id, title, price_cents, pos) VALUES(?, ?, ?, ?, ?)`,
				v.RemoteID, p.RemoteID, v.Title, v.Price.Mul(decimal.NewFromInt(100)).IntPart(), j,
			); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

func (f *SQLiteFetcher) FetchPage(ctx context.Context, query string, page, pageSize int) ([]model.Product, error) {
	if err := f.ensureSchema(ctx); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	rows, err := f.db.QueryContext(ctx,
		`SELECT remote_id, title, image_ref FROM products
		 WHERE title LIKE ? ORDER BY pos LIMIT ? OFFSET ?`,
		"%"+strings.TrimSpace(query)+"%", pageSize, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.RemoteID, &p.Title, &p.ImageRef); err != nil {
			return nil, err
		}
		p.Key = model.NewProductKey()
		p.Expanded = true
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		variants, err := f.fetchVariants(ctx, out[i].RemoteID)
		if err != nil {
			return nil, err
		}
		out[i].Variants = variants
	}
	return out, nil
}

func (f *SQLiteFetcher) fetchVariants(ctx context.Context, productRemoteID string) ([]model.Variant, error) {
	rows, err := f.db.QueryContext(ctx,
		`SELECT remote_id, title, price_cents FROM variants
		 WHERE product_remote_id = ? ORDER BY pos`,
		productRemoteID,
	)
	if err != nil {
		return nil, fmt.Errorf("query variants: %w", err)
	}
	defer rows.Close()

	var out []model.Variant
	for rows.Next() {
		var v model.Variant
		var cents int64
		if err := rows.Scan(&v.RemoteID, &v.Title, &cents); err != nil {
			return nil, err
		}
		v.Key = model.VariantKey(productRemoteID, v.RemoteID)
		v.Price = decimal.New(cents, -2)
		out = append(out, v)
	}
	return out, rows.Err()
}
