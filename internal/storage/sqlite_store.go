package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/denisok6893-rgb/eco-fashion-matching/internal/domain"
)

var productColumns = []string{
	"id", "name", "category", "price", "original_price", "description",
	"materials_json", "certifications_json", "features_json", "impact_json",
}

type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	// position keeps catalog order; rankings break ties by it.
	const createTable = `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  position INTEGER NOT NULL,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  price REAL NOT NULL,
  original_price REAL NOT NULL DEFAULT 0,
  description TEXT NOT NULL DEFAULT '',
  materials_json TEXT NOT NULL DEFAULT '[]',
  certifications_json TEXT NOT NULL DEFAULT '[]',
  features_json TEXT NOT NULL DEFAULT '[]',
  impact_json TEXT NOT NULL DEFAULT '{}'
);
`
	if _, err := s.db.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("create products table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);`); err != nil {
		return fmt.Errorf("create category index: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_products_price ON products(price);`); err != nil {
		return fmt.Errorf("create price index: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

// UpsertMany seeds the catalog without duplicating ids. New rows are appended
// after the existing ones.
func (s *SQLiteStore) UpsertMany(ctx context.Context, items []domain.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var next int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), -1) + 1 FROM products`).Scan(&next); err != nil {
		return fmt.Errorf("next position: %w", err)
	}

	for i, p := range items {
		mat, err := json.Marshal(p.Materials)
		if err != nil {
			return fmt.Errorf("encode materials of %s: %w", p.ID, err)
		}
		certs, err := json.Marshal(p.Certifications)
		if err != nil {
			return fmt.Errorf("encode certifications of %s: %w", p.ID, err)
		}
		feats, err := json.Marshal(p.Features)
		if err != nil {
			return fmt.Errorf("encode features of %s: %w", p.ID, err)
		}
		imp, err := json.Marshal(p.Impact)
		if err != nil {
			return fmt.Errorf("encode impact of %s: %w", p.ID, err)
		}

		query, args, err := sq.Insert("products").
			Options("OR IGNORE").
			Columns(append([]string{"position"}, productColumns...)...).
			Values(next+i, p.ID, p.Name, p.Category, p.Price, p.OriginalPrice, p.Description,
				string(mat), string(certs), string(feats), string(imp)).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (domain.Product, error) {
	query, args, err := sq.Select(productColumns...).From("products").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return domain.Product{}, fmt.Errorf("build get: %w", err)
	}

	p, err := scanProduct(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *SQLiteStore) All(ctx context.Context) ([]domain.Product, error) {
	query, args, err := sq.Select(productColumns...).From("products").OrderBy("position").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build all: %w", err)
	}
	return s.queryProducts(ctx, query, args)
}

func (s *SQLiteStore) List(ctx context.Context, params ListParams) ([]domain.Product, int, error) {
	params = params.Normalized()

	where := sq.And{}
	if params.Category != "" {
		where = append(where, sq.Eq{"category": params.Category})
	}
	if params.MinPrice > 0 {
		where = append(where, sq.GtOrEq{"price": params.MinPrice})
	}
	if params.MaxPrice > 0 {
		where = append(where, sq.LtOrEq{"price": params.MaxPrice})
	}

	countQuery, countArgs, err := sq.Select("COUNT(*)").From("products").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}
	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	order := "position"
	switch params.Sort {
	case SortPriceAsc:
		order = "price ASC, position"
	case SortPriceDesc:
		order = "price DESC, position"
	}

	query, args, err := sq.Select(productColumns...).
		From("products").
		Where(where).
		OrderBy(order).
		Limit(uint64(params.Limit)).
		Offset(uint64(params.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list: %w", err)
	}

	out, err := s.queryProducts(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *SQLiteStore) queryProducts(ctx context.Context, query string, args []any) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(r rowScanner) (domain.Product, error) {
	var p domain.Product
	var matJSON, certJSON, featJSON, impJSON string

	if err := r.Scan(
		&p.ID, &p.Name, &p.Category, &p.Price, &p.OriginalPrice, &p.Description,
		&matJSON, &certJSON, &featJSON, &impJSON,
	); err != nil {
		return domain.Product{}, err
	}

	// Malformed JSON columns leave the field empty, same as missing data.
	_ = json.Unmarshal([]byte(matJSON), &p.Materials)
	_ = json.Unmarshal([]byte(certJSON), &p.Certifications)
	_ = json.Unmarshal([]byte(featJSON), &p.Features)
	_ = json.Unmarshal([]byte(impJSON), &p.Impact)
	return p, nil
}
