// internal/registry/postgres.go
package registry

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"sync"

	"github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS registry_scalars (
	name  TEXT PRIMARY KEY,
	value DOUBLE PRECISION NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS registry_sets (
	set_name TEXT NOT NULL,
	member   TEXT NOT NULL,
	PRIMARY KEY (set_name, member)
);
`

// PostgresStore keeps the registry in two tables, one for scalars and one
// for set membership.
type PostgresStore struct {
	mu sync.Mutex
	db *sql.DB
}

// NewPostgresStore accepts an existing DB handle and creates the tables if
// they are missing.
func NewPostgresStore(ctx context.Context, db *sql.DB) (*PostgresStore, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create registry tables: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// OpenPostgres connects with a connection string such as DATABASE_URL.
func OpenPostgres(ctx context.Context, connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	s, err := NewPostgresStore(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) Scalar(ctx context.Context, name string) (float64, error) {
	var v float64
	err := s.db.QueryRowContext(ctx, `SELECT value FROM registry_scalars WHERE name = $1`, name).Scan(&v)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", name, err)
	}
	return v, nil
}

func (s *PostgresStore) SetScalar(ctx context.Context, name string, value float64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO registry_scalars (name, value)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value
	`, name, value)
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (s *PostgresStore) AddScalar(ctx context.Context, name string, delta float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var v float64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO registry_scalars (name, value)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET value = registry_scalars.value + EXCLUDED.value
		RETURNING value
	`, name, delta).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("add to %s: %w", name, err)
	}
	return v, nil
}

func (s *PostgresStore) Members(ctx context.Context, set string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT member FROM registry_sets WHERE set_name = $1 ORDER BY member`, set)
	if err != nil {
		return nil, fmt.Errorf("read set %s: %w", set, err)
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *PostgresStore) AddMember(ctx context.Context, set, member string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO registry_sets (set_name, member)
		VALUES ($1, $2)
		ON CONFLICT (set_name, member) DO NOTHING
	`, set, member)
	if err != nil {
		return fmt.Errorf("add %s to %s: %w", member, set, err)
	}
	return nil
}

// Purchase runs in one transaction. The coins row is locked first so
// concurrent purchases queue behind each other.
func (s *PostgresStore) Purchase(ctx context.Context, set, member string, cost float64, requires []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin purchase of %s: %w", member, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO registry_scalars (name, value)
		VALUES ($1, 0)
		ON CONFLICT (name) DO NOTHING
	`, KeyCoins); err != nil {
		return fmt.Errorf("purchase %s: %w", member, err)
	}
	var have float64
	if err := tx.QueryRowContext(ctx,
		`SELECT value FROM registry_scalars WHERE name = $1 FOR UPDATE`, KeyCoins,
	).Scan(&have); err != nil {
		return fmt.Errorf("lock %s: %w", KeyCoins, err)
	}

	var owned bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM registry_sets WHERE set_name = $1 AND member = $2)`, set, member,
	).Scan(&owned); err != nil {
		return fmt.Errorf("purchase %s: %w", member, err)
	}
	if owned {
		return fmt.Errorf("%w: %s", ErrAlreadyOwned, member)
	}

	if len(requires) > 0 {
		var present pq.StringArray
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(array_agg(member), '{}') FROM registry_sets WHERE set_name = $1 AND member = ANY($2)`,
			set, pq.Array(requires),
		).Scan(&present); err != nil {
			return fmt.Errorf("purchase %s: %w", member, err)
		}
		for _, pre := range requires {
			if !slices.Contains(present, pre) {
				return fmt.Errorf("%w: %s needs %s", ErrMissingPrerequisite, member, pre)
			}
		}
	}

	if have < cost {
		return fmt.Errorf("%w: %s costs %.0f, have %.0f", ErrInsufficientCoins, member, cost, have)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE registry_scalars SET value = value - $2 WHERE name = $1`, KeyCoins, cost,
	); err != nil {
		return fmt.Errorf("purchase %s: %w", member, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO registry_sets (set_name, member) VALUES ($1, $2)`, set, member,
	); err != nil {
		return fmt.Errorf("purchase %s: %w", member, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit purchase of %s: %w", member, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
