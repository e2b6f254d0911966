package store

import (
	"context"
	"errors"
	"fmt"

	carterrors "github.com/abgdnv/gocart/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of *pgxpool.Pool used by PgStore.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	pgLoadSnapshot = `SELECT data FROM cart_snapshots WHERE cart_key = $1`

	pgSaveSnapshot = `INSERT INTO cart_snapshots (cart_key, data, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (cart_key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`

	pgDeleteSnapshot = `DELETE FROM cart_snapshots WHERE cart_key = $1`
)

type PgStore struct {
	db DBTX
}

// NewPgStore creates a new instance of SnapshotStore using a PostgreSQL connection pool.
func NewPgStore(db DBTX) *PgStore {
	return &PgStore{db: db}
}

func (p *PgStore) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	if err := p.db.QueryRow(ctx, pgLoadSnapshot, key).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, carterrors.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("%w: %v", carterrors.ErrLoadSnapshot, err)
	}
	return data, nil
}

func (p *PgStore) Save(ctx context.Context, key string, data []byte) error {
	if _, err := p.db.Exec(ctx, pgSaveSnapshot, key, string(data)); err != nil {
		return fmt.Errorf("%w: %v", carterrors.ErrSaveSnapshot, err)
	}
	return nil
}

func (p *PgStore) Delete(ctx context.Context, key string) error {
	if _, err := p.db.Exec(ctx, pgDeleteSnapshot, key); err != nil {
		return fmt.Errorf("%w: %v", carterrors.ErrDeleteSnapshot, err)
	}
	return nil
}
