package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	carterrors "github.com/abgdnv/gocart/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgStore_Load(t *testing.T) {
	errDB := errors.New("connection reset")
	testCases := []struct {
		name      string
		setup     func(mock pgxmock.PgxPoolIface)
		expected  string
		expectErr error
	}{
		{
			name: "snapshot found",
			setup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"data"}).AddRow([]byte(`[{"product":"Charger","price":49.5,"quantity":1}]`))
				mock.ExpectQuery(regexp.QuoteMeta(pgLoadSnapshot)).WithArgs("cart:1").WillReturnRows(rows)
			},
			expected: `[{"product":"Charger","price":49.5,"quantity":1}]`,
		},
		{
			name: "no rows is not found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(pgLoadSnapshot)).WithArgs("cart:1").WillReturnError(pgx.ErrNoRows)
			},
			expectErr: carterrors.ErrSnapshotNotFound,
		},
		{
			name: "db error",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(pgLoadSnapshot)).WithArgs("cart:1").WillReturnError(errDB)
			},
			expectErr: carterrors.ErrLoadSnapshot,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			tc.setup(mock)
			s := NewPgStore(mock)

			// when
			data, err := s.Load(context.Background(), "cart:1")

			// then
			if tc.expectErr != nil {
				require.ErrorIs(t, err, tc.expectErr)
				assert.Nil(t, data)
			} else {
				require.NoError(t, err)
				assert.JSONEq(t, tc.expected, string(data))
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPgStore_Save(t *testing.T) {
	// given
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	mock.ExpectExec(regexp.QuoteMeta(pgSaveSnapshot)).
		WithArgs("cart:1", `[]`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta(pgSaveSnapshot)).
		WithArgs("cart:2", `[]`).
		WillReturnError(errors.New("disk full"))
	s := NewPgStore(mock)

	// when
	okErr := s.Save(context.Background(), "cart:1", []byte(`[]`))
	failErr := s.Save(context.Background(), "cart:2", []byte(`[]`))

	// then
	require.NoError(t, okErr)
	require.ErrorIs(t, failErr, carterrors.ErrSaveSnapshot)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgStore_Delete(t *testing.T) {
	// given
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	mock.ExpectExec(regexp.QuoteMeta(pgDeleteSnapshot)).
		WithArgs("cart:1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	s := NewPgStore(mock)

	// when
	err = s.Delete(context.Background(), "cart:1")

	// then
	require.NoError(t, err, "deleting a missing key is not an error")
	require.NoError(t, mock.ExpectationsWereMet())
}
