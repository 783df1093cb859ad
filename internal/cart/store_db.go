package cart

import (
	"context"
	"database/sql"
	"time"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

// PostgresStore keeps carts in two tables: carts records that a user's
// cart exists (even when empty), cart_lines holds the lines. That split
// preserves the distinction between "never initialized" (ErrCartNotFound)
// and "empty".
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS carts (
			user_id    TEXT PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS cart_lines (
			user_id    TEXT NOT NULL REFERENCES carts(user_id),
			product_id BIGINT NOT NULL,
			quantity   INTEGER NOT NULL,
			added_at   TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (user_id, product_id)
		);
	`)
	return err
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) Lines(ctx context.Context, userID string) ([]Line, error) {
	var out []Line

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO carts (user_id) VALUES ($1)
			ON CONFLICT (user_id) DO NOTHING
		`, userID); err != nil {
			return err
		}

		var err error
		out, err = s.selectLines(ctx, userID)
		return err
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) Add(ctx context.Context, userID string, productID int64, qty int, at time.Time) ([]Line, error) {
	var out []Line

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO carts (user_id) VALUES ($1)
			ON CONFLICT (user_id) DO NOTHING
		`, userID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO cart_lines (user_id, product_id, quantity, added_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id, product_id)
			DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
		`, userID, productID, qty, at); err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return err
		}

		out, err = s.selectLines(ctx, userID)
		return err
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) Remove(ctx context.Context, userID string, productID int64) ([]Line, error) {
	var out []Line

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		exists, err := s.cartExists(ctx, userID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrCartNotFound
		}

		if _, err := s.db.ExecContext(ctx, `
			DELETE FROM cart_lines WHERE user_id = $1 AND product_id = $2
		`, userID, productID); err != nil {
			return err
		}

		out, err = s.selectLines(ctx, userID)
		return err
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) SetQuantity(ctx context.Context, userID string, productID int64, qty int) ([]Line, error) {
	var out []Line

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		exists, err := s.cartExists(ctx, userID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrCartNotFound
		}

		var res sql.Result
		if qty <= 0 {
			res, err = s.db.ExecContext(ctx, `
				DELETE FROM cart_lines WHERE user_id = $1 AND product_id = $2
			`, userID, productID)
		} else {
			res, err = s.db.ExecContext(ctx, `
				UPDATE cart_lines SET quantity = $3
				WHERE user_id = $1 AND product_id = $2
			`, userID, productID, qty)
		}
		if err != nil {
			return err
		}

		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrItemNotFound
		}

		out, err = s.selectLines(ctx, userID)
		return err
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) Clear(ctx context.Context, userID string) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			DELETE FROM cart_lines WHERE user_id = $1
		`, userID)
		return err
	})
}

func (s *PostgresStore) ActiveCarts(ctx context.Context) (int, error) {
	var n int
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM carts`).Scan(&n)
	})
	return n, err
}

func (s *PostgresStore) cartExists(ctx context.Context, userID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM carts WHERE user_id = $1
	`, userID).Scan(&one)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *PostgresStore) selectLines(ctx context.Context, userID string) ([]Line, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_id, quantity, added_at
		FROM cart_lines
		WHERE user_id = $1
		ORDER BY added_at ASC, product_id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Line, 0, 8)
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ProductID, &l.Quantity, &l.AddedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
