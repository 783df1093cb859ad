package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

const productColumns = `id, title, image, price, original_price, rating, rating_count, category, description, in_stock, stock_count`

// PostgresStore is the persistent catalog backend. It keeps the same id
// assignment scheme as MemStore (max+1 computed inside the insert) so
// both backends expose identical id behavior.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			id             BIGINT PRIMARY KEY,
			title          TEXT NOT NULL,
			image          TEXT NOT NULL DEFAULT '',
			price          BIGINT NOT NULL,
			original_price BIGINT NOT NULL,
			rating         DOUBLE PRECISION NOT NULL DEFAULT 0,
			rating_count   INTEGER NOT NULL DEFAULT 0,
			category       TEXT NOT NULL,
			description    TEXT NOT NULL DEFAULT '',
			in_stock       BOOLEAN NOT NULL DEFAULT TRUE,
			stock_count    INTEGER NOT NULL DEFAULT 0
		)
	`)
	return err
}

// SeedIfEmpty loads the fixed demo catalog once, keeping whatever ids the
// seed carries.
func (s *PostgresStore) SeedIfEmpty(ctx context.Context, seed []Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return tx.Rollback()
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range seed {
		_, err := stmt.ExecContext(ctx, p.ID, p.Title, p.Image, p.Price, p.OriginalPrice,
			p.Rating, p.RatingCount, p.Category, p.Description, p.InStock, p.StockCount)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) List(ctx context.Context, f Filter) ([]Product, error) {
	var (
		where []string
		args  []any
	)

	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("lower(category) = lower($%d)", len(args)))
	}
	if f.MinPrice != nil {
		args = append(args, *f.MinPrice)
		where = append(where, fmt.Sprintf("price >= $%d", len(args)))
	}
	if f.MaxPrice != nil {
		args = append(args, *f.MaxPrice)
		where = append(where, fmt.Sprintf("price <= $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, strings.ToLower(f.Search))
		where = append(where, fmt.Sprintf("position($%d in lower(title)) > 0", len(args)))
	}

	q := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY id ASC`

	return s.queryProducts(ctx, q, args...)
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (Product, bool, error) {
	var p Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return scanProduct(s.db.QueryRowContext(ctx, `
			SELECT `+productColumns+`
			FROM products
			WHERE id = $1
		`, id), &p)
	})

	if err == sql.ErrNoRows {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, err
	}
	return p, true, nil
}

func (s *PostgresStore) Create(ctx context.Context, p Product) (Product, error) {
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			INSERT INTO products (`+productColumns+`)
			VALUES (
				(SELECT COALESCE(MAX(id), 0) + 1 FROM products),
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
			)
			RETURNING id
		`, p.Title, p.Image, p.Price, p.OriginalPrice, p.Rating, p.RatingCount,
			p.Category, p.Description, p.InStock, p.StockCount).Scan(&p.ID)
	})

	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (s *PostgresStore) Update(ctx context.Context, id int64, patch Patch) (Product, bool, error) {
	var (
		p     Product
		found bool
	)

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		err = scanProduct(tx.QueryRowContext(ctx, `
			SELECT `+productColumns+`
			FROM products
			WHERE id = $1
			FOR UPDATE
		`, id), &p)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return err
		}

		applyPatch(&p, patch)

		_, err = tx.ExecContext(ctx, `
			UPDATE products
			SET title = $2, image = $3, price = $4, original_price = $5,
				rating = $6, rating_count = $7, category = $8,
				description = $9, in_stock = $10, stock_count = $11
			WHERE id = $1
		`, p.ID, p.Title, p.Image, p.Price, p.OriginalPrice, p.Rating,
			p.RatingCount, p.Category, p.Description, p.InStock, p.StockCount)
		if err != nil {
			return err
		}

		found = true
		return tx.Commit()
	})

	if err != nil {
		return Product{}, false, err
	}
	return p, found, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		deleted = n > 0
		return err
	})

	if err != nil {
		return false, err
	}
	return deleted, nil
}

func (s *PostgresStore) Search(ctx context.Context, query string) ([]Product, error) {
	q := strings.ToLower(query)
	return s.queryProducts(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE position($1 in lower(title)) > 0
		   OR position($1 in lower(description)) > 0
		   OR position($1 in lower(category)) > 0
		ORDER BY id ASC
	`, q)
}

func (s *PostgresStore) Categories(ctx context.Context) ([]string, error) {
	var out []string

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT DISTINCT category
			FROM products
			ORDER BY category ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]string, 0, 8)
		for rows.Next() {
			var c string
			if err := rows.Scan(&c); err != nil {
				return err
			}
			out = append(out, c)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	})
	return n, err
}

func (s *PostgresStore) queryProducts(ctx context.Context, q string, args ...any) ([]Product, error) {
	var out []Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Product, 0, 16)
		for rows.Next() {
			var p Product
			if err := scanProduct(rows, &p); err != nil {
				return err
			}
			out = append(out, p)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner, p *Product) error {
	return row.Scan(&p.ID, &p.Title, &p.Image, &p.Price, &p.OriginalPrice,
		&p.Rating, &p.RatingCount, &p.Category, &p.Description, &p.InStock, &p.StockCount)
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
