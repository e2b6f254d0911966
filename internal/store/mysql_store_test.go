package store

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	carterrors "github.com/abgdnv/gocart/internal/errors"
	_ "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestMySQL opens CART_TEST_MYSQL_DSN and skips the test when it is unset
// or the server does not answer.
func newTestMySQL(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("CART_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("CART_TEST_MYSQL_DSN is not set")
	}
	db, err := sql.Open("mysql", dsn)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		t.Skipf("mysql not available: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMySQLStore(t *testing.T) {
	db := newTestMySQL(t)
	ctx := context.Background()
	s := NewMySQLStore(db)
	require.NoError(t, s.EnsureSchema(ctx))
	key := "lithiumRepublicCart:test-" + time.Now().Format("150405.000000")
	t.Cleanup(func() { _ = s.Delete(context.Background(), key) })

	_, err := s.Load(ctx, key)
	require.ErrorIs(t, err, carterrors.ErrSnapshotNotFound)

	require.NoError(t, s.Save(ctx, key, []byte(`[{"product":"Battery Pack","price":199,"quantity":1}]`)))
	require.NoError(t, s.Save(ctx, key, []byte(`[{"product":"Battery Pack","price":199,"quantity":2}]`)))
	data, err := s.Load(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"product":"Battery Pack","price":199,"quantity":2}]`, string(data))

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Load(ctx, key)
	require.ErrorIs(t, err, carterrors.ErrSnapshotNotFound)
}
