package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	carterrors "github.com/abgdnv/gocart/internal/errors"
)

const (
	mysqlCreateTable = "CREATE TABLE IF NOT EXISTS cart_snapshots (" +
		"cart_key VARCHAR(255) NOT NULL PRIMARY KEY, " +
		"data JSON NOT NULL, " +
		"updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP)"

	mysqlLoadSnapshot = "SELECT data FROM cart_snapshots WHERE cart_key = ?"

	mysqlSaveSnapshot = "INSERT INTO cart_snapshots (cart_key, data) VALUES (?, ?) " +
		"ON DUPLICATE KEY UPDATE data = VALUES(data)"

	mysqlDeleteSnapshot = "DELETE FROM cart_snapshots WHERE cart_key = ?"
)

// MySQLStore implements SnapshotStore on a MySQL table.
type MySQLStore struct {
	db *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

// EnsureSchema creates the snapshot table when it does not exist yet.
func (m *MySQLStore) EnsureSchema(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, mysqlCreateTable); err != nil {
		return fmt.Errorf("create cart_snapshots table: %w", err)
	}
	return nil
}

func (m *MySQLStore) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	if err := m.db.QueryRowContext(ctx, mysqlLoadSnapshot, key).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, carterrors.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("%w: %v", carterrors.ErrLoadSnapshot, err)
	}
	return data, nil
}

func (m *MySQLStore) Save(ctx context.Context, key string, data []byte) error {
	if _, err := m.db.ExecContext(ctx, mysqlSaveSnapshot, key, string(data)); err != nil {
		return fmt.Errorf("%w: %v", carterrors.ErrSaveSnapshot, err)
	}
	return nil
}

func (m *MySQLStore) Delete(ctx context.Context, key string) error {
	if _, err := m.db.ExecContext(ctx, mysqlDeleteSnapshot, key); err != nil {
		return fmt.Errorf("%w: %v", carterrors.ErrDeleteSnapshot, err)
	}
	return nil
}
